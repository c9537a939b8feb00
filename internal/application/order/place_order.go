package order

import (
	"context"
	"errors"
	"time"

	"github.com/thestorykeeper/bookkeeper/internal/domain/book"
	"github.com/thestorykeeper/bookkeeper/internal/domain/order"
	"github.com/thestorykeeper/bookkeeper/internal/infrastructure/event"
	"github.com/thestorykeeper/bookkeeper/pkg/metrics"
	"github.com/thestorykeeper/bookkeeper/pkg/saga"
)

// PlaceOrderUseCase 下单用例
// 设计说明:
// 1. 核心竞争问题是同一本书的并发下单,由图书状态的条件流转解决:
//    过滤available置pending,单文档写入原子,并发下仅一个写者成功,
//    失败方收到ErrNotAvailable(而非先读后判再写的竞态)
// 2. 跨集合步骤(状态流转→摘除广告→写入订单)没有事务,
//    以saga组织:后续步骤失败时逆序补偿,把图书恢复为available
// 3. 广告摘除无条件执行,非广告商品也调用(删除不存在的条目不算错误)
type PlaceOrderUseCase struct {
	orderRepo     order.Repository
	bookRepo      book.Repository
	advertiseRepo book.AdvertiseRepository
	events        event.Publisher
}

// NewPlaceOrderUseCase 创建下单用例
func NewPlaceOrderUseCase(
	orderRepo order.Repository,
	bookRepo book.Repository,
	advertiseRepo book.AdvertiseRepository,
	events event.Publisher,
) *PlaceOrderUseCase {
	return &PlaceOrderUseCase{
		orderRepo:     orderRepo,
		bookRepo:      bookRepo,
		advertiseRepo: advertiseRepo,
		events:        events,
	}
}

// PlaceOrderRequest 下单请求
type PlaceOrderRequest struct {
	ProductID  string
	BuyerEmail string
	BuyerName  string
	Phone      string
	Location   string
}

// Execute 执行下单
func (uc *PlaceOrderUseCase) Execute(ctx context.Context, req PlaceOrderRequest) (*order.Order, error) {
	b, err := uc.bookRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		metrics.OrdersRejectedTotal.Inc()
		return nil, err
	}

	o := order.NewOrder(b.ID, req.BuyerEmail, req.BuyerName, b.Title, b.Price)
	o.Phone = req.Phone
	o.Location = req.Location

	sg := saga.New(10 * time.Second)

	// 步骤1:条件流转available→pending,并发下单的竞争在这里决出
	sg.AddStep("transition-book",
		func(ctx context.Context) error {
			return uc.bookRepo.UpdateStatus(ctx, b.ID, book.StatusAvailable, book.StatusPending)
		},
		func(ctx context.Context) error {
			return uc.bookRepo.UpdateStatus(ctx, b.ID, book.StatusPending, book.StatusAvailable)
		},
	)

	// 步骤2:清除广告标记并摘除广告位条目
	sg.AddStep("evict-advertise",
		func(ctx context.Context) error {
			if err := uc.bookRepo.ClearAdvertise(ctx, b.ID); err != nil {
				return err
			}
			return uc.advertiseRepo.DeleteByProduct(ctx, b.ID)
		},
		// 广告位不恢复:补偿只需让图书回到可售状态
		nil,
	)

	// 步骤3:写入订单(最后一步,无需补偿)
	sg.AddStep("insert-order",
		func(ctx context.Context) error {
			return uc.orderRepo.InsertOrder(ctx, o)
		},
		nil,
	)

	if err := sg.Execute(ctx); err != nil {
		metrics.OrdersRejectedTotal.Inc()
		// 竞争失败以领域错误透出,saga包装的其余错误原样上抛
		switch {
		case errors.Is(err, book.ErrNotAvailable):
			return nil, book.ErrNotAvailable
		case errors.Is(err, book.ErrNotFound):
			return nil, book.ErrNotFound
		}
		return nil, err
	}

	metrics.OrdersPlacedTotal.Inc()
	uc.events.PublishOrderPlaced(ctx, event.OrderPlacedEvent{
		OrderID:    o.ID,
		ProductID:  o.ProductID,
		BuyerEmail: o.BuyerEmail,
		Price:      o.Price,
		OccurredAt: time.Now(),
	})

	return o, nil
}
