package dto

import (
	"time"

	"github.com/thestorykeeper/bookkeeper/internal/domain/order"
)

// CreateOrderRequest 下单请求体
type CreateOrderRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	BuyerName string `json:"buyerName"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
}

// OrderResponse 订单响应体
type OrderResponse struct {
	ID            string    `json:"_id"`
	ProductID     string    `json:"productId"`
	Email         string    `json:"email"`
	BuyerName     string    `json:"buyerName,omitempty"`
	Title         string    `json:"title"`
	Price         int64     `json:"price"`
	Phone         string    `json:"phone,omitempty"`
	Location      string    `json:"location,omitempty"`
	Status        string    `json:"status"`
	TransactionID string    `json:"transactionId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NewOrderResponse 从领域实体构建响应
func NewOrderResponse(o *order.Order) *OrderResponse {
	return &OrderResponse{
		ID:            o.ID,
		ProductID:     o.ProductID,
		Email:         o.BuyerEmail,
		BuyerName:     o.BuyerName,
		Title:         o.Title,
		Price:         o.Price,
		Phone:         o.Phone,
		Location:      o.Location,
		Status:        string(o.Status),
		TransactionID: o.TransactionID,
		CreatedAt:     o.CreatedAt,
	}
}

// NewOrderResponses 批量构建
func NewOrderResponses(orders []*order.Order) []*OrderResponse {
	out := make([]*OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, NewOrderResponse(o))
	}
	return out
}

// WishItemRequest 加入心愿单请求体
type WishItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
}

// WishItemResponse 心愿单条目响应体
type WishItemResponse struct {
	ID        string    `json:"_id"`
	ProductID string    `json:"productId"`
	Email     string    `json:"email"`
	Title     string    `json:"title"`
	Price     int64     `json:"price"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewWishItemResponse 从领域实体构建响应
func NewWishItemResponse(w *order.WishItem) *WishItemResponse {
	return &WishItemResponse{
		ID:        w.ID,
		ProductID: w.ProductID,
		Email:     w.BuyerEmail,
		Title:     w.Title,
		Price:     w.Price,
		CreatedAt: w.CreatedAt,
	}
}

// NewWishItemResponses 批量构建
func NewWishItemResponses(items []*order.WishItem) []*WishItemResponse {
	out := make([]*WishItemResponse, 0, len(items))
	for _, w := range items {
		out = append(out, NewWishItemResponse(w))
	}
	return out
}
