package book

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/thestorykeeper/bookkeeper/internal/domain/book"
	"github.com/thestorykeeper/bookkeeper/internal/domain/user"
	"github.com/thestorykeeper/bookkeeper/internal/infrastructure/event"
	"github.com/thestorykeeper/bookkeeper/internal/infrastructure/persistence/redis"
)

// PublishBookUseCase 新书上架用例
// 设计说明:
// 1. 上架时从卖家资料复制verified标记(快照,之后卖家认证状态变化不回填)
// 2. 类目缓存在上架后失效,下次查询重新加载
// 3. 上架事件异步通知,失败不影响主链路
type PublishBookUseCase struct {
	bookService  book.Service
	userRepo     user.Repository
	catalogCache *redis.CatalogCache
	events       event.Publisher
}

// NewPublishBookUseCase 创建上架用例
func NewPublishBookUseCase(
	bookService book.Service,
	userRepo user.Repository,
	catalogCache *redis.CatalogCache,
	events event.Publisher,
) *PublishBookUseCase {
	return &PublishBookUseCase{
		bookService:  bookService,
		userRepo:     userRepo,
		catalogCache: catalogCache,
		events:       events,
	}
}

// PublishBookRequest 上架请求
type PublishBookRequest struct {
	SellerEmail string
	SellerName  string
	Title       string
	Author      string
	Category    string
	Price       int64
	Condition   string
	Location    string
	Picture     string
	Description string
}

// Execute 执行上架
func (uc *PublishBookUseCase) Execute(ctx context.Context, req PublishBookRequest) (*book.Book, error) {
	// 卖家认证状态快照;卖家资料不存在按未认证处理
	sellerVerified := false
	seller, err := uc.userRepo.FindByEmail(ctx, req.SellerEmail)
	if err != nil && !errors.Is(err, user.ErrNotFound) {
		return nil, err
	}
	if seller != nil {
		sellerVerified = seller.Verified
	}

	b := book.New(req.SellerEmail, req.SellerName, req.Title, req.Author, req.Category, req.Price)
	b.Condition = req.Condition
	b.Location = req.Location
	b.Picture = req.Picture
	b.Description = req.Description

	published, err := uc.bookService.Publish(ctx, b, sellerVerified)
	if err != nil {
		return nil, err
	}

	if uc.catalogCache != nil {
		if err := uc.catalogCache.Invalidate(ctx); err != nil {
			log.Printf("类目缓存失效失败: %v", err)
		}
	}

	uc.events.PublishBookPublished(ctx, event.BookPublishedEvent{
		ProductID:   published.ID,
		SellerEmail: published.SellerEmail,
		Category:    published.Category,
		CategoryID:  published.CategoryID,
		Price:       published.Price,
		OccurredAt:  time.Now(),
	})

	return published, nil
}
