package order

import (
	"context"

	"github.com/thestorykeeper/bookkeeper/internal/domain/order"
)

// ListOrdersUseCase 订单查询用例
type ListOrdersUseCase struct {
	orderRepo order.Repository
}

// NewListOrdersUseCase 创建订单查询用例
func NewListOrdersUseCase(orderRepo order.Repository) *ListOrdersUseCase {
	return &ListOrdersUseCase{orderRepo: orderRepo}
}

// ByBuyer 买家的全部订单
func (uc *ListOrdersUseCase) ByBuyer(ctx context.Context, email string) ([]*order.Order, error) {
	return uc.orderRepo.FindOrdersByBuyer(ctx, email)
}

// ByProduct 按商品查订单(支付页加载用)
func (uc *ListOrdersUseCase) ByProduct(ctx context.Context, productID string) (*order.Order, error) {
	return uc.orderRepo.FindOrderByProduct(ctx, productID)
}

// WishItemByProduct 按商品查心愿单条目(支付页加载用)
func (uc *ListOrdersUseCase) WishItemByProduct(ctx context.Context, productID string) (*order.WishItem, error) {
	return uc.orderRepo.FindWishItemByProduct(ctx, productID)
}
