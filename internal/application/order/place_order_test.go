package order

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thestorykeeper/bookkeeper/internal/domain/book"
	"github.com/thestorykeeper/bookkeeper/internal/domain/order"
	"github.com/thestorykeeper/bookkeeper/internal/testsupport"
	"github.com/thestorykeeper/bookkeeper/pkg/metrics"
)

func TestMain(m *testing.M) {
	metrics.Init()
	m.Run()
}

// publishBook 上架一本在售图书并返回
func publishBook(t *testing.T, repo *testsupport.BookRepo, advertise bool) *book.Book {
	t.Helper()
	b := book.New("seller@example.com", "卖家", "《三体》", "刘慈欣", "科幻", 2500)
	b.Advertise = advertise
	require.NoError(t, repo.Insert(context.Background(), b))
	return b
}

// TestPlaceOrder 下单主流程
func TestPlaceOrder(t *testing.T) {
	ctx := context.Background()
	bookRepo := testsupport.NewBookRepo()
	orderRepo := testsupport.NewOrderRepo()
	advertiseRepo := testsupport.NewAdvertiseRepo()
	events := testsupport.NewEventRecorder()
	uc := NewPlaceOrderUseCase(orderRepo, bookRepo, advertiseRepo, events)

	b := publishBook(t, bookRepo, true)
	require.NoError(t, advertiseRepo.Insert(ctx, &book.AdvertiseItem{
		ProductID: b.ID, Title: b.Title, Price: b.Price, Advertise: true,
	}))

	o, err := uc.Execute(ctx, PlaceOrderRequest{
		ProductID:  b.ID,
		BuyerEmail: "buyer@example.com",
		BuyerName:  "买家",
		Phone:      "13800000000",
		Location:   "图书馆门口",
	})
	require.NoError(t, err)

	// 订单带下单时的书名与价格快照
	assert.NotEmpty(t, o.ID)
	assert.Equal(t, order.StatusPending, o.Status)
	assert.Equal(t, "《三体》", o.Title)
	assert.Equal(t, int64(2500), o.Price)

	// 图书流转为pending
	got, err := bookRepo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, book.StatusPending, got.Status)
	assert.False(t, got.Advertise, "下单后广告标记应被清除")

	// 广告位条目已摘除
	_, err = advertiseRepo.FindByProduct(ctx, b.ID)
	assert.ErrorIs(t, err, book.ErrNotFound)

	// 下单事件已发布
	require.Len(t, events.OrderPlaced, 1)
	assert.Equal(t, b.ID, events.OrderPlaced[0].ProductID)
}

// TestPlaceOrder_BookNotFound 图书不存在
func TestPlaceOrder_BookNotFound(t *testing.T) {
	uc := NewPlaceOrderUseCase(
		testsupport.NewOrderRepo(),
		testsupport.NewBookRepo(),
		testsupport.NewAdvertiseRepo(),
		testsupport.NewEventRecorder(),
	)

	_, err := uc.Execute(context.Background(), PlaceOrderRequest{
		ProductID:  "000000000000000000000000",
		BuyerEmail: "buyer@example.com",
	})
	assert.ErrorIs(t, err, book.ErrNotFound)
}

// TestPlaceOrder_AlreadyPending 重复下单被拒绝
func TestPlaceOrder_AlreadyPending(t *testing.T) {
	ctx := context.Background()
	bookRepo := testsupport.NewBookRepo()
	uc := NewPlaceOrderUseCase(
		testsupport.NewOrderRepo(), bookRepo,
		testsupport.NewAdvertiseRepo(), testsupport.NewEventRecorder(),
	)

	b := publishBook(t, bookRepo, false)

	_, err := uc.Execute(ctx, PlaceOrderRequest{ProductID: b.ID, BuyerEmail: "a@example.com"})
	require.NoError(t, err)

	// 第二个买家对同一本书下单
	_, err = uc.Execute(ctx, PlaceOrderRequest{ProductID: b.ID, BuyerEmail: "b@example.com"})
	assert.ErrorIs(t, err, book.ErrNotAvailable)
}

// TestPlaceOrder_Concurrent 并发下单只有一个成功
func TestPlaceOrder_Concurrent(t *testing.T) {
	ctx := context.Background()
	bookRepo := testsupport.NewBookRepo()
	orderRepo := testsupport.NewOrderRepo()
	uc := NewPlaceOrderUseCase(
		orderRepo, bookRepo,
		testsupport.NewAdvertiseRepo(), testsupport.NewEventRecorder(),
	)

	b := publishBook(t, bookRepo, false)

	const buyers = 10
	var wg sync.WaitGroup
	results := make(chan error, buyers)

	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(ctx, PlaceOrderRequest{
				ProductID:  b.ID,
				BuyerEmail: "buyer@example.com",
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded, rejected := 0, 0
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, book.ErrNotAvailable):
			rejected++
		default:
			t.Errorf("意外错误: %v", err)
		}
	}

	assert.Equal(t, 1, succeeded, "一本书只能卖一次")
	assert.Equal(t, buyers-1, rejected)

	orders, err := orderRepo.FindOrdersByBuyer(ctx, "buyer@example.com")
	require.NoError(t, err)
	assert.Len(t, orders, 1, "只应写入一条订单")
}

// TestPlaceOrder_CompensateOnInsertFailure 订单写入失败时图书状态回滚
func TestPlaceOrder_CompensateOnInsertFailure(t *testing.T) {
	ctx := context.Background()
	bookRepo := testsupport.NewBookRepo()
	orderRepo := testsupport.NewOrderRepo()
	orderRepo.InsertOrderErr = errors.New("write failed")
	events := testsupport.NewEventRecorder()
	uc := NewPlaceOrderUseCase(orderRepo, bookRepo, testsupport.NewAdvertiseRepo(), events)

	b := publishBook(t, bookRepo, false)

	_, err := uc.Execute(ctx, PlaceOrderRequest{ProductID: b.ID, BuyerEmail: "buyer@example.com"})
	require.Error(t, err)

	// 补偿应把图书恢复为available
	got, err := bookRepo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, book.StatusAvailable, got.Status)

	assert.Empty(t, events.OrderPlaced, "失败的下单不应发布事件")
}
