package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thestorykeeper/bookkeeper/internal/domain/book"
	"github.com/thestorykeeper/bookkeeper/internal/domain/order"
	"github.com/thestorykeeper/bookkeeper/internal/testsupport"
)

// TestCompletePayment_OrderPath 命中pending订单的结算
func TestCompletePayment_OrderPath(t *testing.T) {
	ctx := context.Background()
	bookRepo := testsupport.NewBookRepo()
	orderRepo := testsupport.NewOrderRepo()
	advertiseRepo := testsupport.NewAdvertiseRepo()
	events := testsupport.NewEventRecorder()

	place := NewPlaceOrderUseCase(orderRepo, bookRepo, advertiseRepo, events)
	complete := NewCompletePaymentUseCase(orderRepo, bookRepo, events)

	b := book.New("seller@example.com", "卖家", "《活着》", "余华", "文学", 1200)
	require.NoError(t, bookRepo.Insert(ctx, b))

	_, err := place.Execute(ctx, PlaceOrderRequest{ProductID: b.ID, BuyerEmail: "buyer@example.com"})
	require.NoError(t, err)

	settled, err := complete.Execute(ctx, b.ID, "txn_123")
	require.NoError(t, err)

	assert.Equal(t, order.StatusPaid, settled.Status)
	assert.Equal(t, "txn_123", settled.TransactionID)
	assert.False(t, settled.PaidAt.IsZero())

	// 图书流转为sold
	got, err := bookRepo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, book.StatusSold, got.Status)

	// 支付完成事件已发布
	require.Len(t, events.PaymentCompleted, 1)
	assert.Equal(t, "txn_123", events.PaymentCompleted[0].TransactionID)
}

// TestCompletePayment_WishlistPath 心愿单条目被提升为已支付订单
// 心愿单不锁库存,结算前图书保持available,结算须直接流转为sold
func TestCompletePayment_WishlistPath(t *testing.T) {
	ctx := context.Background()
	bookRepo := testsupport.NewBookRepo()
	orderRepo := testsupport.NewOrderRepo()
	events := testsupport.NewEventRecorder()
	complete := NewCompletePaymentUseCase(orderRepo, bookRepo, events)

	b := book.New("seller@example.com", "卖家", "《围城》", "钱钟书", "文学", 1500)
	require.NoError(t, bookRepo.Insert(ctx, b))

	w := order.NewWishItem(b.ID, "buyer@example.com", b.Title, b.Price)
	require.NoError(t, orderRepo.InsertWishItem(ctx, w))

	settled, err := complete.Execute(ctx, b.ID, "txn_456")
	require.NoError(t, err)

	assert.Equal(t, order.StatusPaid, settled.Status)
	assert.Equal(t, "《围城》", settled.Title)
	assert.Equal(t, "txn_456", settled.TransactionID)

	// 心愿单条目已摘除
	_, err = orderRepo.FindWishItemByProduct(ctx, b.ID)
	assert.ErrorIs(t, err, order.ErrWishItemNotFound)

	// 图书从available直接流转为sold
	got, err := bookRepo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, book.StatusSold, got.Status)
}

// TestCompletePayment_WishlistSoldNotOrderable 心愿单结算后的图书不可再被下单
func TestCompletePayment_WishlistSoldNotOrderable(t *testing.T) {
	ctx := context.Background()
	bookRepo := testsupport.NewBookRepo()
	orderRepo := testsupport.NewOrderRepo()
	events := testsupport.NewEventRecorder()

	place := NewPlaceOrderUseCase(orderRepo, bookRepo, testsupport.NewAdvertiseRepo(), events)
	complete := NewCompletePaymentUseCase(orderRepo, bookRepo, events)

	b := book.New("seller@example.com", "卖家", "《边城》", "沈从文", "文学", 900)
	require.NoError(t, bookRepo.Insert(ctx, b))

	w := order.NewWishItem(b.ID, "buyer@example.com", b.Title, b.Price)
	require.NoError(t, orderRepo.InsertWishItem(ctx, w))

	_, err := complete.Execute(ctx, b.ID, "txn_sold")
	require.NoError(t, err)

	got, err := bookRepo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	require.Equal(t, book.StatusSold, got.Status)

	// 第二个买家对已售图书下单必须被拒绝
	_, err = place.Execute(ctx, PlaceOrderRequest{ProductID: b.ID, BuyerEmail: "second@example.com"})
	assert.ErrorIs(t, err, book.ErrNotAvailable)

	// 账本里只有心愿单提升出来的那一笔订单
	orders, err := orderRepo.FindOrdersByBuyer(ctx, "second@example.com")
	require.NoError(t, err)
	assert.Empty(t, orders)
}

// TestCompletePayment_WishlistConcurrentLock 心愿单结算窗口内图书被并发下单锁定
// 首次available→sold的CAS落空后,换pending→sold再试仍能完成流转
func TestCompletePayment_WishlistConcurrentLock(t *testing.T) {
	ctx := context.Background()
	bookRepo := testsupport.NewBookRepo()
	orderRepo := testsupport.NewOrderRepo()
	events := testsupport.NewEventRecorder()
	complete := NewCompletePaymentUseCase(orderRepo, bookRepo, events)

	b := book.New("seller@example.com", "卖家", "《子夜》", "茅盾", "文学", 1100)
	require.NoError(t, bookRepo.Insert(ctx, b))

	w := order.NewWishItem(b.ID, "buyer@example.com", b.Title, b.Price)
	require.NoError(t, orderRepo.InsertWishItem(ctx, w))

	// 模拟结算前另一请求已将图书锁为pending
	require.NoError(t, bookRepo.UpdateStatus(ctx, b.ID, book.StatusAvailable, book.StatusPending))

	_, err := complete.Execute(ctx, b.ID, "txn_race")
	require.NoError(t, err)

	got, err := bookRepo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, book.StatusSold, got.Status)
}

// TestCompletePayment_NoLedgerEntry 订单和心愿单均无记录
func TestCompletePayment_NoLedgerEntry(t *testing.T) {
	ctx := context.Background()
	complete := NewCompletePaymentUseCase(
		testsupport.NewOrderRepo(),
		testsupport.NewBookRepo(),
		testsupport.NewEventRecorder(),
	)

	_, err := complete.Execute(ctx, "000000000000000000000000", "txn_789")
	assert.ErrorIs(t, err, order.ErrNoLedgerEntry)
}

// TestCompletePayment_Repeated 重复回调的幂等性
func TestCompletePayment_Repeated(t *testing.T) {
	ctx := context.Background()
	bookRepo := testsupport.NewBookRepo()
	orderRepo := testsupport.NewOrderRepo()
	events := testsupport.NewEventRecorder()

	place := NewPlaceOrderUseCase(orderRepo, bookRepo, testsupport.NewAdvertiseRepo(), events)
	complete := NewCompletePaymentUseCase(orderRepo, bookRepo, events)

	b := book.New("seller@example.com", "卖家", "《书》", "作者", "文学", 1000)
	require.NoError(t, bookRepo.Insert(ctx, b))

	_, err := place.Execute(ctx, PlaceOrderRequest{ProductID: b.ID, BuyerEmail: "buyer@example.com"})
	require.NoError(t, err)

	_, err = complete.Execute(ctx, b.ID, "txn_1")
	require.NoError(t, err)

	// 第二次回调:订单已paid,条件更新不再命中
	_, err = complete.Execute(ctx, b.ID, "txn_2")
	assert.ErrorIs(t, err, order.ErrAlreadyPaid)

	// 交易号保持第一次的值
	settled, err := orderRepo.FindOrderByProduct(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "txn_1", settled.TransactionID)

	// 事件只发布一次
	assert.Len(t, events.PaymentCompleted, 1)
}
