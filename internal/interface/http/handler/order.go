package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/thestorykeeper/bookkeeper/internal/application/order"
	"github.com/thestorykeeper/bookkeeper/internal/interface/http/dto"
	"github.com/thestorykeeper/bookkeeper/internal/interface/http/middleware"
	apperrors "github.com/thestorykeeper/bookkeeper/pkg/errors"
	"github.com/thestorykeeper/bookkeeper/pkg/response"
)

// OrderHandler 订单与心愿单HTTP处理器
type OrderHandler struct {
	placeUseCase    *apporder.PlaceOrderUseCase
	listUseCase     *apporder.ListOrdersUseCase
	wishlistUseCase *apporder.WishlistUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	placeUseCase *apporder.PlaceOrderUseCase,
	listUseCase *apporder.ListOrdersUseCase,
	wishlistUseCase *apporder.WishlistUseCase,
) *OrderHandler {
	return &OrderHandler{
		placeUseCase:    placeUseCase,
		listUseCase:     listUseCase,
		wishlistUseCase: wishlistUseCase,
	}
}

// PlaceOrder 下单
// POST /orders
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrBindError)
		return
	}

	o, err := h.placeUseCase.Execute(c.Request.Context(), apporder.PlaceOrderRequest{
		ProductID:  req.ProductID,
		BuyerEmail: req.Email,
		BuyerName:  req.BuyerName,
		Phone:      req.Phone,
		Location:   req.Location,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.NewOrderResponse(o))
}

// MyOrders 买家订单列表
// GET /myOrders?email= (auth)
func (h *OrderHandler) MyOrders(c *gin.Context) {
	email := c.Query("email")
	if !middleware.MatchesIdentity(c, email) {
		return
	}

	orders, err := h.listUseCase.ByBuyer(c.Request.Context(), email)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewOrderResponses(orders))
}

// AddToWishlist 加入心愿单
// POST /wishList
func (h *OrderHandler) AddToWishlist(c *gin.Context) {
	var req dto.WishItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrBindError)
		return
	}

	w, err := h.wishlistUseCase.Add(c.Request.Context(), req.ProductID, req.Email)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.NewWishItemResponse(w))
}

// Wishlist 买家心愿单
// GET /wishList?email=
func (h *OrderHandler) Wishlist(c *gin.Context) {
	items, err := h.wishlistUseCase.ListByBuyer(c.Request.Context(), c.Query("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewWishItemResponses(items))
}
