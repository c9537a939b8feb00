package dto

import (
	"time"

	"github.com/thestorykeeper/bookkeeper/internal/domain/payment"
)

// CreateIntentRequest 创建支付意向请求体,价格单位为分
type CreateIntentRequest struct {
	Price int64 `json:"price" binding:"required,gt=0"`
}

// IntentResponse 支付意向响应体
type IntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// PaymentStatusRequest 支付完成结算请求体
type PaymentStatusRequest struct {
	TransactionID string `json:"transactionId" binding:"required"`
}

// RecordPaymentRequest 支付凭证写入请求体
type RecordPaymentRequest struct {
	ProductID       string `json:"productId" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	TransactionID   string `json:"transactionId" binding:"required"`
	PaymentIntentID string `json:"paymentIntentId"`
	Amount          int64  `json:"amount" binding:"required,gt=0"`
}

// PaymentResponse 支付凭证响应体
type PaymentResponse struct {
	ID              string    `json:"_id"`
	ProductID       string    `json:"productId"`
	Email           string    `json:"email"`
	TransactionID   string    `json:"transactionId"`
	PaymentIntentID string    `json:"paymentIntentId,omitempty"`
	Amount          int64     `json:"amount"`
	CreatedAt       time.Time `json:"createdAt"`
}

// NewPaymentResponse 从领域实体构建响应
func NewPaymentResponse(p *payment.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:              p.ID,
		ProductID:       p.ProductID,
		Email:           p.BuyerEmail,
		TransactionID:   p.TransactionID,
		PaymentIntentID: p.PaymentIntentID,
		Amount:          p.Amount,
		CreatedAt:       p.CreatedAt,
	}
}
