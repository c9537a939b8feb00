package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thestorykeeper/bookkeeper/internal/domain/book"
	"github.com/thestorykeeper/bookkeeper/internal/domain/order"
	"github.com/thestorykeeper/bookkeeper/internal/domain/user"
	"github.com/thestorykeeper/bookkeeper/internal/testsupport"
)

type deleteFixture struct {
	userRepo      *testsupport.UserRepo
	bookRepo      *testsupport.BookRepo
	advertiseRepo *testsupport.AdvertiseRepo
	orderRepo     *testsupport.OrderRepo
	uc            *DeleteUserUseCase
}

func newDeleteFixture() *deleteFixture {
	f := &deleteFixture{
		userRepo:      testsupport.NewUserRepo(),
		bookRepo:      testsupport.NewBookRepo(),
		advertiseRepo: testsupport.NewAdvertiseRepo(),
		orderRepo:     testsupport.NewOrderRepo(),
	}
	f.uc = NewDeleteUserUseCase(f.userRepo, f.bookRepo, f.advertiseRepo, f.orderRepo)
	return f
}

// TestDeleteBuyer 删除买家:pending订单的图书回到货架,paid不动
func TestDeleteBuyer(t *testing.T) {
	ctx := context.Background()
	f := newDeleteFixture()

	require.NoError(t, f.userRepo.Insert(ctx, user.New("buyer@example.com", "买家", user.TypeBuyer)))

	// 图书1:买家下单未支付(pending)
	b1 := book.New("seller@example.com", "卖家", "《书1》", "作者", "文学", 1000)
	b1.Status = book.StatusPending
	require.NoError(t, f.bookRepo.Insert(ctx, b1))
	o1 := order.NewOrder(b1.ID, "buyer@example.com", "买家", b1.Title, b1.Price)
	require.NoError(t, f.orderRepo.InsertOrder(ctx, o1))

	// 图书2:买家已支付(sold)
	b2 := book.New("seller@example.com", "卖家", "《书2》", "作者", "文学", 2000)
	b2.Status = book.StatusSold
	require.NoError(t, f.bookRepo.Insert(ctx, b2))
	o2 := order.NewOrder(b2.ID, "buyer@example.com", "买家", b2.Title, b2.Price)
	o2.Status = order.StatusPaid
	o2.PaidAt = time.Now()
	require.NoError(t, f.orderRepo.InsertOrder(ctx, o2))

	require.NoError(t, f.uc.DeleteBuyer(ctx, "buyer@example.com"))

	// 用户与订单均已删除
	_, err := f.userRepo.FindByEmail(ctx, "buyer@example.com")
	assert.ErrorIs(t, err, user.ErrNotFound)
	orders, err := f.orderRepo.FindOrdersByBuyer(ctx, "buyer@example.com")
	require.NoError(t, err)
	assert.Empty(t, orders)

	// pending订单的图书回到货架
	got1, err := f.bookRepo.FindByID(ctx, b1.ID)
	require.NoError(t, err)
	assert.Equal(t, book.StatusAvailable, got1.Status)

	// 已售出的图书保持sold
	got2, err := f.bookRepo.FindByID(ctx, b2.ID)
	require.NoError(t, err)
	assert.Equal(t, book.StatusSold, got2.Status)
}

// TestDeleteBuyer_OtherBuyersUntouched 其他买家的订单不受影响
func TestDeleteBuyer_OtherBuyersUntouched(t *testing.T) {
	ctx := context.Background()
	f := newDeleteFixture()

	require.NoError(t, f.userRepo.Insert(ctx, user.New("a@example.com", "甲", user.TypeBuyer)))

	b := book.New("seller@example.com", "卖家", "《书》", "作者", "文学", 1000)
	b.Status = book.StatusPending
	require.NoError(t, f.bookRepo.Insert(ctx, b))
	require.NoError(t, f.orderRepo.InsertOrder(ctx, order.NewOrder(b.ID, "b@example.com", "乙", b.Title, b.Price)))

	require.NoError(t, f.uc.DeleteBuyer(ctx, "a@example.com"))

	orders, err := f.orderRepo.FindOrdersByBuyer(ctx, "b@example.com")
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	// 乙的pending订单占用的图书不回退
	got, err := f.bookRepo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, book.StatusPending, got.Status)
}

// TestDeleteSeller 删除卖家:图书、广告条目、孤儿订单级联清理
func TestDeleteSeller(t *testing.T) {
	ctx := context.Background()
	f := newDeleteFixture()

	require.NoError(t, f.userRepo.Insert(ctx, user.New("seller@example.com", "卖家", user.TypeSeller)))

	// 卖家的图书,带广告条目,且有买家的pending订单
	b1 := book.New("seller@example.com", "卖家", "《书1》", "作者", "文学", 1000)
	b1.Advertise = true
	require.NoError(t, f.bookRepo.Insert(ctx, b1))
	require.NoError(t, f.advertiseRepo.Insert(ctx, &book.AdvertiseItem{
		ProductID: b1.ID, Title: b1.Title, Price: b1.Price, Advertise: true,
	}))
	require.NoError(t, f.orderRepo.InsertOrder(ctx, order.NewOrder(b1.ID, "buyer@example.com", "买家", b1.Title, b1.Price)))

	// 其他卖家的图书与订单,不应被波及
	b2 := book.New("other@example.com", "他人", "《书2》", "作者", "文学", 2000)
	require.NoError(t, f.bookRepo.Insert(ctx, b2))
	require.NoError(t, f.orderRepo.InsertOrder(ctx, order.NewOrder(b2.ID, "buyer@example.com", "买家", b2.Title, b2.Price)))

	require.NoError(t, f.uc.DeleteSeller(ctx, "seller@example.com"))

	// 用户与图书已删除
	_, err := f.userRepo.FindByEmail(ctx, "seller@example.com")
	assert.ErrorIs(t, err, user.ErrNotFound)
	_, err = f.bookRepo.FindByID(ctx, b1.ID)
	assert.ErrorIs(t, err, book.ErrNotFound)

	// 广告条目已清理
	_, err = f.advertiseRepo.FindByProduct(ctx, b1.ID)
	assert.ErrorIs(t, err, book.ErrNotFound)

	// 指向已删除图书的孤儿订单已清理
	_, err = f.orderRepo.FindOrderByProduct(ctx, b1.ID)
	assert.ErrorIs(t, err, order.ErrNotFound)

	// 其他卖家的图书与订单完好
	_, err = f.bookRepo.FindByID(ctx, b2.ID)
	require.NoError(t, err)
	_, err = f.orderRepo.FindOrderByProduct(ctx, b2.ID)
	require.NoError(t, err)
}
