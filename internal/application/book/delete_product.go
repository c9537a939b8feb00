package book

import (
	"context"
	"log"

	"github.com/thestorykeeper/bookkeeper/internal/domain/book"
	"github.com/thestorykeeper/bookkeeper/internal/domain/order"
)

// DeleteProductUseCase 卖家下架商品用例
// 设计说明:级联清理跨三个集合,文档库不提供跨集合事务,
// 按"先删主记录,再尽力清理投影"的顺序执行;清理失败只记日志,
// 留给卖家删除时的孤儿扫描兜底
type DeleteProductUseCase struct {
	bookRepo      book.Repository
	advertiseRepo book.AdvertiseRepository
	orderRepo     order.Repository
}

// NewDeleteProductUseCase 创建下架用例
func NewDeleteProductUseCase(
	bookRepo book.Repository,
	advertiseRepo book.AdvertiseRepository,
	orderRepo order.Repository,
) *DeleteProductUseCase {
	return &DeleteProductUseCase{
		bookRepo:      bookRepo,
		advertiseRepo: advertiseRepo,
		orderRepo:     orderRepo,
	}
}

// Execute 执行下架
// 仅商品的发布者可以下架;未支付订单一并删除,已支付订单保留作为交易凭证
func (uc *DeleteProductUseCase) Execute(ctx context.Context, productID, sellerEmail string) error {
	b, err := uc.bookRepo.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if !b.IsOwnedBy(sellerEmail) {
		return book.ErrNotOwner
	}

	if err := uc.bookRepo.Delete(ctx, productID); err != nil {
		return err
	}

	if err := uc.advertiseRepo.DeleteByProduct(ctx, productID); err != nil {
		log.Printf("清理广告条目失败: productID=%s, err=%v", productID, err)
	}
	if err := uc.orderRepo.DeleteUnpaidOrdersByProduct(ctx, productID); err != nil {
		log.Printf("清理未支付订单失败: productID=%s, err=%v", productID, err)
	}

	return nil
}
