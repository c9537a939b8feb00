package book

import (
	"context"
	"time"

	"github.com/thestorykeeper/bookkeeper/internal/domain/book"
)

// AdvertiseUseCase 广告位用例
type AdvertiseUseCase struct {
	bookRepo      book.Repository
	advertiseRepo book.AdvertiseRepository
}

// NewAdvertiseUseCase 创建广告位用例
func NewAdvertiseUseCase(bookRepo book.Repository, advertiseRepo book.AdvertiseRepository) *AdvertiseUseCase {
	return &AdvertiseUseCase{
		bookRepo:      bookRepo,
		advertiseRepo: advertiseRepo,
	}
}

// Add 投放广告:图书打上advertise标记,并写入广告位投影
func (uc *AdvertiseUseCase) Add(ctx context.Context, productID string) (*book.AdvertiseItem, error) {
	b, err := uc.bookRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := uc.bookRepo.SetAdvertise(ctx, productID); err != nil {
		return nil, err
	}

	item := &book.AdvertiseItem{
		ProductID: b.ID,
		Title:     b.Title,
		Picture:   b.Picture,
		Price:     b.Price,
		Advertise: true,
		CreatedAt: time.Now(),
	}
	if err := uc.advertiseRepo.Insert(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// List 广告位条目列表
func (uc *AdvertiseUseCase) List(ctx context.Context) ([]*book.AdvertiseItem, error) {
	return uc.advertiseRepo.FindAll(ctx)
}
