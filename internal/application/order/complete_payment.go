package order

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/thestorykeeper/bookkeeper/internal/domain/book"
	"github.com/thestorykeeper/bookkeeper/internal/domain/order"
	"github.com/thestorykeeper/bookkeeper/internal/infrastructure/event"
	"github.com/thestorykeeper/bookkeeper/pkg/metrics"
)

// CompletePaymentUseCase 支付完成结算用例
// 设计说明:
// 1. 结算按商品解析:优先命中订单(条件标记paid),未命中再查心愿单
//    (提升为已支付订单并摘除心愿单条目),都未命中返回账本缺失
// 2. 账本先写,图书流转在后:订单状态是审计事实,图书状态只是投影;
//    订单路径图书已被下单锁为pending,心愿单路径不锁库存、图书仍为
//    available,两条路径各自以对应的前置状态流转为sold
// 3. 幂等:订单已paid时条件更新不再命中,重复回调收到ErrAlreadyPaid;
//    商品已sold且无pending记录时返回ErrNoLedgerEntry
type CompletePaymentUseCase struct {
	orderRepo order.Repository
	bookRepo  book.Repository
	events    event.Publisher
}

// NewCompletePaymentUseCase 创建结算用例
func NewCompletePaymentUseCase(
	orderRepo order.Repository,
	bookRepo book.Repository,
	events event.Publisher,
) *CompletePaymentUseCase {
	return &CompletePaymentUseCase{
		orderRepo: orderRepo,
		bookRepo:  bookRepo,
		events:    events,
	}
}

// Execute 执行结算,返回落定后的订单
func (uc *CompletePaymentUseCase) Execute(ctx context.Context, productID, transactionID string) (*order.Order, error) {
	now := time.Now()

	from, err := uc.settleLedger(ctx, productID, transactionID, now)
	if err != nil {
		return nil, err
	}

	// 账本落定后流转图书状态;失败不回滚账本(订单已是paid的审计事实),
	// 但必须向调用方报错,留下的不一致(账本paid、图书未sold)需要介入
	if err := uc.markBookSold(ctx, productID, from); err != nil {
		log.Printf("图书售出流转失败: productID=%s, err=%v", productID, err)
		return nil, err
	}

	settled, err := uc.orderRepo.FindOrderByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	metrics.PaymentsCompletedTotal.Inc()
	uc.events.PublishPaymentCompleted(ctx, event.PaymentCompletedEvent{
		ProductID:     settled.ProductID,
		BuyerEmail:    settled.BuyerEmail,
		TransactionID: transactionID,
		Amount:        settled.Price,
		OccurredAt:    now,
	})

	return settled, nil
}

// settleLedger 解析并落定账本:订单优先,心愿单次之
// 返回图书在该结算路径下的前置状态:订单路径下单时已锁为pending,
// 心愿单路径不锁库存、图书仍为available
func (uc *CompletePaymentUseCase) settleLedger(ctx context.Context, productID, transactionID string, now time.Time) (book.Status, error) {
	err := uc.orderRepo.MarkOrderPaid(ctx, productID, transactionID, now)
	if err == nil {
		return book.StatusPending, nil
	}
	if !errors.Is(err, order.ErrNotFound) {
		return "", err
	}

	// 订单未命中,尝试心愿单提升
	w, err := uc.orderRepo.FindWishItemByProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, order.ErrWishItemNotFound) {
			return "", order.ErrNoLedgerEntry
		}
		return "", err
	}

	promoted := w.Promote()
	promoted.TransactionID = transactionID
	promoted.PaidAt = now
	if err := uc.orderRepo.InsertOrder(ctx, promoted); err != nil {
		return "", err
	}
	if err := uc.orderRepo.DeleteWishItemByProduct(ctx, productID); err != nil {
		log.Printf("摘除心愿单条目失败: productID=%s, err=%v", productID, err)
	}

	return book.StatusAvailable, nil
}

// markBookSold 将图书流转为sold
// 结算窗口内图书可能被并发流转(心愿单结算期间有人下单锁成pending),
// 首次CAS冲突时换另一侧前置状态再试一次
func (uc *CompletePaymentUseCase) markBookSold(ctx context.Context, productID string, from book.Status) error {
	err := uc.bookRepo.UpdateStatus(ctx, productID, from, book.StatusSold)
	if err == nil || !errors.Is(err, book.ErrNotAvailable) {
		return err
	}

	alt := book.StatusPending
	if from == book.StatusPending {
		alt = book.StatusAvailable
	}
	return uc.bookRepo.UpdateStatus(ctx, productID, alt, book.StatusSold)
}
