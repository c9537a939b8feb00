package user

import (
	"context"
	"errors"
	"log"

	"github.com/thestorykeeper/bookkeeper/internal/domain/book"
	"github.com/thestorykeeper/bookkeeper/internal/domain/order"
	"github.com/thestorykeeper/bookkeeper/internal/domain/user"
)

// DeleteUserUseCase 删除用户用例(管理后台)
// 设计说明:
// 1. 买家删除:其pending订单对应的图书回退为available(paid订单的图书
//    保持sold),订单全部删除,最后删除用户
// 2. 卖家删除:其全部图书与广告条目删除,再全量扫描订单清理指向
//    已删除图书的孤儿订单,最后删除用户
// 3. 跨集合级联没有事务,清理失败只记日志;主记录(用户)的删除
//    始终执行到底
type DeleteUserUseCase struct {
	userRepo      user.Repository
	bookRepo      book.Repository
	advertiseRepo book.AdvertiseRepository
	orderRepo     order.Repository
}

// NewDeleteUserUseCase 创建删除用户用例
func NewDeleteUserUseCase(
	userRepo user.Repository,
	bookRepo book.Repository,
	advertiseRepo book.AdvertiseRepository,
	orderRepo order.Repository,
) *DeleteUserUseCase {
	return &DeleteUserUseCase{
		userRepo:      userRepo,
		bookRepo:      bookRepo,
		advertiseRepo: advertiseRepo,
		orderRepo:     orderRepo,
	}
}

// DeleteBuyer 删除买家
func (uc *DeleteUserUseCase) DeleteBuyer(ctx context.Context, email string) error {
	pendingProducts, err := uc.orderRepo.DeleteOrdersByBuyer(ctx, email)
	if err != nil {
		return err
	}

	// pending订单占用的图书回到货架;条件流转,已被他人买走的不动
	for _, productID := range pendingProducts {
		err := uc.bookRepo.UpdateStatus(ctx, productID, book.StatusPending, book.StatusAvailable)
		if err != nil && !errors.Is(err, book.ErrNotFound) && !errors.Is(err, book.ErrNotAvailable) {
			log.Printf("图书状态回退失败: productID=%s, err=%v", productID, err)
		}
	}

	return uc.userRepo.DeleteByEmail(ctx, email)
}

// DeleteSeller 删除卖家
func (uc *DeleteUserUseCase) DeleteSeller(ctx context.Context, email string) error {
	deletedBooks, err := uc.bookRepo.DeleteBySeller(ctx, email)
	if err != nil {
		return err
	}

	for _, productID := range deletedBooks {
		if err := uc.advertiseRepo.DeleteByProduct(ctx, productID); err != nil {
			log.Printf("清理广告条目失败: productID=%s, err=%v", productID, err)
		}
	}

	if err := uc.cleanOrphanOrders(ctx); err != nil {
		log.Printf("孤儿订单清理失败: seller=%s, err=%v", email, err)
	}

	return uc.userRepo.DeleteByEmail(ctx, email)
}

// cleanOrphanOrders 清理指向已删除图书的订单
func (uc *DeleteUserUseCase) cleanOrphanOrders(ctx context.Context) error {
	orders, err := uc.orderRepo.FindAllOrders(ctx)
	if err != nil {
		return err
	}

	for _, o := range orders {
		exists, err := uc.bookRepo.Exists(ctx, o.ProductID)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if err := uc.orderRepo.DeleteOrder(ctx, o.ProductID); err != nil && !errors.Is(err, order.ErrNotFound) {
			return err
		}
	}

	return nil
}
