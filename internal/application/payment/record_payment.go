package payment

import (
	"context"
	"errors"

	"github.com/thestorykeeper/bookkeeper/internal/domain/payment"
)

// RecordPaymentUseCase 支付凭证落账用例
// 凭证只追加不修改:结算(订单状态、图书状态)由独立的结算用例处理,
// 这里仅保留交易事实供对账。同一交易号的重试直接返回已落账凭证
type RecordPaymentUseCase struct {
	paymentRepo payment.Repository
}

// NewRecordPaymentUseCase 创建落账用例
func NewRecordPaymentUseCase(paymentRepo payment.Repository) *RecordPaymentUseCase {
	return &RecordPaymentUseCase{paymentRepo: paymentRepo}
}

// RecordPaymentRequest 落账请求
type RecordPaymentRequest struct {
	ProductID       string
	BuyerEmail      string
	TransactionID   string
	PaymentIntentID string
	Amount          int64
}

// Execute 执行落账
func (uc *RecordPaymentUseCase) Execute(ctx context.Context, req RecordPaymentRequest) (*payment.Payment, error) {
	// 网关回调重试会重复提交同一笔交易,命中同交易号时返回已有凭证
	existing, err := uc.paymentRepo.FindByProduct(ctx, req.ProductID)
	if err == nil && existing.TransactionID == req.TransactionID {
		return existing, nil
	}
	if err != nil && !errors.Is(err, payment.ErrNotFound) {
		return nil, err
	}

	p := payment.New(req.PaymentIntentID, req.TransactionID, req.ProductID, req.BuyerEmail, req.Amount)
	if err := uc.paymentRepo.Insert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
