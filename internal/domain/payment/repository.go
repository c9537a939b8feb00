package payment

import (
	"context"
)

// Repository 支付流水仓储接口
// 集合是追加写的:接口上刻意不提供Update/Delete
type Repository interface {
	// Insert 插入支付流水,回填生成的ID
	Insert(ctx context.Context, p *Payment) error

	// FindByProduct 按商品ID查支付流水;未命中返回ErrNotFound
	FindByProduct(ctx context.Context, productID string) (*Payment, error)
}
