package order

import (
	"context"

	"github.com/thestorykeeper/bookkeeper/internal/domain/book"
	"github.com/thestorykeeper/bookkeeper/internal/domain/order"
)

// WishlistUseCase 心愿单用例
// 心愿单不锁库存:加入心愿单的图书仍可被他人下单,
// 支付时才与订单一样进入结算链路
type WishlistUseCase struct {
	orderRepo order.Repository
	bookRepo  book.Repository
}

// NewWishlistUseCase 创建心愿单用例
func NewWishlistUseCase(orderRepo order.Repository, bookRepo book.Repository) *WishlistUseCase {
	return &WishlistUseCase{
		orderRepo: orderRepo,
		bookRepo:  bookRepo,
	}
}

// Add 加入心愿单(书名与价格取当前快照)
func (uc *WishlistUseCase) Add(ctx context.Context, productID, buyerEmail string) (*order.WishItem, error) {
	b, err := uc.bookRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	w := order.NewWishItem(b.ID, buyerEmail, b.Title, b.Price)
	if err := uc.orderRepo.InsertWishItem(ctx, w); err != nil {
		return nil, err
	}

	return w, nil
}

// ListByBuyer 买家的心愿单
func (uc *WishlistUseCase) ListByBuyer(ctx context.Context, email string) ([]*order.WishItem, error) {
	return uc.orderRepo.FindWishItemsByBuyer(ctx, email)
}
