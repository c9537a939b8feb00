package order

import (
	"context"
	"time"
)

// Repository 订单与心愿单仓储接口
// 设计说明:订单与心愿单同属"购买意向账本",接口合并定义,
// infrastructure层分别落到Orders与WishList两个集合
type Repository interface {
	// InsertOrder 插入订单,回填生成的ID
	InsertOrder(ctx context.Context, o *Order) error

	// FindOrderByProduct 按商品ID查找订单;未命中返回ErrNotFound
	FindOrderByProduct(ctx context.Context, productID string) (*Order, error)

	// FindOrdersByBuyer 返回买家的全部订单
	FindOrdersByBuyer(ctx context.Context, email string) ([]*Order, error)

	// FindAllOrders 返回全部订单(卖家删除时的孤儿清理用)
	FindAllOrders(ctx context.Context) ([]*Order, error)

	// MarkOrderPaid 条件流转:仅当订单为pending时置为paid,并记录交易凭证
	// 订单已是paid返回ErrAlreadyPaid,不存在返回ErrNotFound
	MarkOrderPaid(ctx context.Context, productID, transactionID string, paidAt time.Time) error

	// DeleteOrder 按商品ID删除订单
	DeleteOrder(ctx context.Context, productID string) error

	// DeleteOrdersByBuyer 删除买家的全部订单,
	// 返回其中未支付订单引用的商品ID(调用方据此回滚库存状态)
	DeleteOrdersByBuyer(ctx context.Context, email string) ([]string, error)

	// DeleteUnpaidOrdersByProduct 删除指定商品的未支付订单
	// (卖家下架商品时清理;已支付订单保留作为交易凭证)
	DeleteUnpaidOrdersByProduct(ctx context.Context, productID string) error

	// InsertWishItem 插入心愿单条目
	InsertWishItem(ctx context.Context, w *WishItem) error

	// FindWishItemByProduct 按商品ID查找心愿单条目;未命中返回ErrWishItemNotFound
	FindWishItemByProduct(ctx context.Context, productID string) (*WishItem, error)

	// FindWishItemsByBuyer 返回买家的全部心愿单条目
	FindWishItemsByBuyer(ctx context.Context, email string) ([]*WishItem, error)

	// DeleteWishItemByProduct 按商品ID删除心愿单条目
	DeleteWishItemByProduct(ctx context.Context, productID string) error
}
