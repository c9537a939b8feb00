package payment

import (
	"time"
)

// Payment 支付流水(追加写审计记录)
// 设计说明:
// 1. 只插入,永不更新或删除,作为对账审计的最后凭证
// 2. PaymentIntentID来自支付网关,TransactionID为网关返回的交易号
// 3. 金额单位为分,与图书价格一致
type Payment struct {
	ID              string
	PaymentIntentID string
	TransactionID   string
	ProductID       string
	BuyerEmail      string
	Amount          int64
	CreatedAt       time.Time
}

// New 创建支付流水(工厂方法)
func New(paymentIntentID, transactionID, productID, buyerEmail string, amount int64) *Payment {
	return &Payment{
		PaymentIntentID: paymentIntentID,
		TransactionID:   transactionID,
		ProductID:       productID,
		BuyerEmail:      buyerEmail,
		Amount:          amount,
		CreatedAt:       time.Now(),
	}
}
