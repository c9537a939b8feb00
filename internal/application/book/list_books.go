package book

import (
	"context"
	"log"

	"github.com/thestorykeeper/bookkeeper/internal/domain/book"
	"github.com/thestorykeeper/bookkeeper/internal/infrastructure/persistence/redis"
)

// ListBooksUseCase 图书查询用例(首页分组、全量分组、按类目、详情、类目列表)
type ListBooksUseCase struct {
	bookService  book.Service
	catalogCache *redis.CatalogCache
}

// NewListBooksUseCase 创建查询用例
func NewListBooksUseCase(bookService book.Service, catalogCache *redis.CatalogCache) *ListBooksUseCase {
	return &ListBooksUseCase{
		bookService:  bookService,
		catalogCache: catalogCache,
	}
}

// HomeGroups 首页展示的前两个类目分组
func (uc *ListBooksUseCase) HomeGroups(ctx context.Context) ([][]*book.Book, error) {
	return uc.bookService.HomeGroups(ctx)
}

// AllGroups 全部图书按类目分组
func (uc *ListBooksUseCase) AllGroups(ctx context.Context) ([][]*book.Book, error) {
	return uc.bookService.AllGroups(ctx)
}

// ByCategoryID 指定类目的全部图书
func (uc *ListBooksUseCase) ByCategoryID(ctx context.Context, categoryID int) ([]*book.Book, error) {
	return uc.bookService.ByCategoryID(ctx, categoryID)
}

// ByID 图书详情
func (uc *ListBooksUseCase) ByID(ctx context.Context, id string) (*book.Book, error) {
	return uc.bookService.ByID(ctx, id)
}

// SellerProducts 卖家在售商品列表
func (uc *ListBooksUseCase) SellerProducts(ctx context.Context, email string) ([]*book.Book, error) {
	return uc.bookService.SellerProducts(ctx, email)
}

// Categories 类目名列表(Cache-Aside,缓存故障退化为直查)
func (uc *ListBooksUseCase) Categories(ctx context.Context) ([]string, error) {
	if uc.catalogCache != nil {
		cached, err := uc.catalogCache.GetCategories(ctx)
		if err != nil {
			log.Printf("读取类目缓存失败: %v", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	categories, err := uc.bookService.Categories(ctx)
	if err != nil {
		return nil, err
	}

	if uc.catalogCache != nil {
		if err := uc.catalogCache.SetCategories(ctx, categories); err != nil {
			log.Printf("写入类目缓存失败: %v", err)
		}
	}

	return categories, nil
}
