package payment

import (
	"context"

	infra "github.com/thestorykeeper/bookkeeper/internal/infrastructure/payment"
)

// CreateIntentUseCase 创建支付意向用例
// 金额由前端随支付页请求携带(订单或心愿单条目的价格快照),
// 网关返回的client secret交给前端完成支付确认
type CreateIntentUseCase struct {
	gateway infra.Gateway
}

// NewCreateIntentUseCase 创建支付意向用例
func NewCreateIntentUseCase(gateway infra.Gateway) *CreateIntentUseCase {
	return &CreateIntentUseCase{gateway: gateway}
}

// Execute 执行创建,amount单位为分
func (uc *CreateIntentUseCase) Execute(ctx context.Context, amount int64) (*infra.Intent, error) {
	return uc.gateway.CreateIntent(ctx, amount)
}
