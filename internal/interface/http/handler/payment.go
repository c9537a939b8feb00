package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/thestorykeeper/bookkeeper/internal/application/order"
	apppayment "github.com/thestorykeeper/bookkeeper/internal/application/payment"
	"github.com/thestorykeeper/bookkeeper/internal/interface/http/dto"
	apperrors "github.com/thestorykeeper/bookkeeper/pkg/errors"
	"github.com/thestorykeeper/bookkeeper/pkg/response"
)

// PaymentHandler 支付HTTP处理器
// 设计说明:支付页先按商品加载账本记录(/payment与/payment2),
// 创建支付意向拿client secret,前端确认后PATCH状态完成结算,
// 最后POST凭证落账
type PaymentHandler struct {
	intentUseCase   *apppayment.CreateIntentUseCase
	recordUseCase   *apppayment.RecordPaymentUseCase
	completeUseCase *apporder.CompletePaymentUseCase
	listOrders      *apporder.ListOrdersUseCase
}

// NewPaymentHandler 创建支付处理器
func NewPaymentHandler(
	intentUseCase *apppayment.CreateIntentUseCase,
	recordUseCase *apppayment.RecordPaymentUseCase,
	completeUseCase *apporder.CompletePaymentUseCase,
	listOrders *apporder.ListOrdersUseCase,
) *PaymentHandler {
	return &PaymentHandler{
		intentUseCase:   intentUseCase,
		recordUseCase:   recordUseCase,
		completeUseCase: completeUseCase,
		listOrders:      listOrders,
	}
}

// OrderForPayment 支付页加载订单
// GET /payment/:id (id为商品ID)
func (h *PaymentHandler) OrderForPayment(c *gin.Context) {
	o, err := h.listOrders.ByProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewOrderResponse(o))
}

// WishItemForPayment 支付页加载心愿单条目
// GET /payment2/:id (id为商品ID)
func (h *PaymentHandler) WishItemForPayment(c *gin.Context) {
	w, err := h.listOrders.WishItemByProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewWishItemResponse(w))
}

// CreateIntent 创建支付意向
// POST /create-payment-intent {price}
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var req dto.CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrBindError)
		return
	}

	intent, err := h.intentUseCase.Execute(c.Request.Context(), req.Price)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.IntentResponse{ClientSecret: intent.ClientSecret})
}

// CompletePayment 支付完成结算
// PATCH /payment/status/:id (id为商品ID)
func (h *PaymentHandler) CompletePayment(c *gin.Context) {
	var req dto.PaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrBindError)
		return
	}

	o, err := h.completeUseCase.Execute(c.Request.Context(), c.Param("id"), req.TransactionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.NewOrderResponse(o))
}

// RecordPayment 支付凭证落账
// POST /payments
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrBindError)
		return
	}

	p, err := h.recordUseCase.Execute(c.Request.Context(), apppayment.RecordPaymentRequest{
		ProductID:       req.ProductID,
		BuyerEmail:      req.Email,
		TransactionID:   req.TransactionID,
		PaymentIntentID: req.PaymentIntentID,
		Amount:          req.Amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.NewPaymentResponse(p))
}
