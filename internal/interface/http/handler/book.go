package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appbook "github.com/thestorykeeper/bookkeeper/internal/application/book"
	"github.com/thestorykeeper/bookkeeper/internal/interface/http/dto"
	"github.com/thestorykeeper/bookkeeper/internal/interface/http/middleware"
	apperrors "github.com/thestorykeeper/bookkeeper/pkg/errors"
	"github.com/thestorykeeper/bookkeeper/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	publishUseCase   *appbook.PublishBookUseCase
	listUseCase      *appbook.ListBooksUseCase
	deleteUseCase    *appbook.DeleteProductUseCase
	advertiseUseCase *appbook.AdvertiseUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	publishUseCase *appbook.PublishBookUseCase,
	listUseCase *appbook.ListBooksUseCase,
	deleteUseCase *appbook.DeleteProductUseCase,
	advertiseUseCase *appbook.AdvertiseUseCase,
) *BookHandler {
	return &BookHandler{
		publishUseCase:   publishUseCase,
		listUseCase:      listUseCase,
		deleteUseCase:    deleteUseCase,
		advertiseUseCase: advertiseUseCase,
	}
}

// HomeBooks 首页图书(前两个类目分组)
// GET /books
func (h *BookHandler) HomeBooks(c *gin.Context) {
	groups, err := h.listUseCase.HomeGroups(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewBookGroups(groups))
}

// AllBooks 全部图书按类目分组
// GET /allBooks
func (h *BookHandler) AllBooks(c *gin.Context) {
	groups, err := h.listUseCase.AllGroups(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewBookGroups(groups))
}

// BooksByCategory 指定类目的图书
// GET /category/:id
func (h *BookHandler) BooksByCategory(c *gin.Context) {
	categoryID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, apperrors.ErrInvalidParams)
		return
	}

	books, err := h.listUseCase.ByCategoryID(c.Request.Context(), categoryID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewBookResponses(books))
}

// BookByID 图书详情
// GET /book/:id
func (h *BookHandler) BookByID(c *gin.Context) {
	b, err := h.listUseCase.ByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewBookResponse(b))
}

// Categories 类目名列表
// GET /categories
func (h *BookHandler) Categories(c *gin.Context) {
	categories, err := h.listUseCase.Categories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, categories)
}

// PublishBook 新书上架
// POST /books
func (h *BookHandler) PublishBook(c *gin.Context) {
	var req dto.PublishBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrBindError)
		return
	}

	b, err := h.publishUseCase.Execute(c.Request.Context(), appbook.PublishBookRequest{
		SellerEmail: req.SellerEmail,
		SellerName:  req.SellerName,
		Title:       req.Title,
		Author:      req.Author,
		Category:    req.Category,
		Price:       req.Price,
		Condition:   req.Condition,
		Location:    req.Location,
		Picture:     req.Picture,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.NewBookResponse(b))
}

// MyProducts 卖家在售商品
// GET /myProducts?email= (auth)
func (h *BookHandler) MyProducts(c *gin.Context) {
	email := c.Query("email")
	if !middleware.MatchesIdentity(c, email) {
		return
	}

	books, err := h.listUseCase.SellerProducts(c.Request.Context(), email)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewBookResponses(books))
}

// DeleteMyProduct 卖家下架商品
// DELETE /myProduct/delete/:id (auth)
func (h *BookHandler) DeleteMyProduct(c *gin.Context) {
	err := h.deleteUseCase.Execute(c.Request.Context(), c.Param("id"), middleware.GetEmail(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": true})
}

// AddAdvertise 投放广告
// POST /advertise
func (h *BookHandler) AddAdvertise(c *gin.Context) {
	var req dto.AdvertiseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrBindError)
		return
	}

	item, err := h.advertiseUseCase.Add(c.Request.Context(), req.ProductID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewAdvertiseItemResponse(item))
}

// ListAdvertise 广告位条目
// GET /advertise (auth)
func (h *BookHandler) ListAdvertise(c *gin.Context) {
	items, err := h.advertiseUseCase.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewAdvertiseItemResponses(items))
}
