package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层基于文档库实现
// 2. 状态流转方法带前置状态过滤,由存储层的单文档原子性保证
//    并发下仅一个写者成功(替代历史实现的先读后写)
type Repository interface {
	// Insert 插入图书,回填生成的ID
	Insert(ctx context.Context, b *Book) error

	// FindByID 按ID查找图书;未命中返回ErrNotFound
	FindByID(ctx context.Context, id string) (*Book, error)

	// FindAll 返回全部图书
	FindAll(ctx context.Context) ([]*Book, error)

	// FindBySeller 返回卖家的全部图书
	FindBySeller(ctx context.Context, email string) ([]*Book, error)

	// FindByCategoryID 返回指定类目的全部图书
	FindByCategoryID(ctx context.Context, categoryID int) ([]*Book, error)

	// FindOneByCategory 按类目名查任一图书(类目ID复用时使用);未命中返回ErrNotFound
	FindOneByCategory(ctx context.Context, category string) (*Book, error)

	// DistinctCategories 返回去重后的类目名列表
	DistinctCategories(ctx context.Context) ([]string, error)

	// NextCategoryID 原子分配下一个类目ID
	// 基于专用的计数器文档(find-and-increment upsert),
	// 并发新建类目时不会分配到相同ID
	NextCategoryID(ctx context.Context) (int, error)

	// UpdateStatus 条件状态流转:仅当当前状态为from时置为to
	// 条件不满足(已被并发流转)返回ErrNotAvailable
	UpdateStatus(ctx context.Context, id string, from, to Status) error

	// ClearAdvertise 清除广告标记($unset)
	ClearAdvertise(ctx context.Context, id string) error

	// SetAdvertise 打上广告标记($set)
	SetAdvertise(ctx context.Context, id string) error

	// Exists 检查图书是否存在(卖家删除时的孤儿订单清理用)
	Exists(ctx context.Context, id string) (bool, error)

	// Delete 删除图书
	Delete(ctx context.Context, id string) error

	// DeleteBySeller 删除卖家的全部图书,返回被删图书的ID列表
	DeleteBySeller(ctx context.Context, email string) ([]string, error)
}

// AdvertiseRepository 广告位仓储接口
type AdvertiseRepository interface {
	// Insert 插入广告条目
	Insert(ctx context.Context, item *AdvertiseItem) error

	// FindAll 返回全部广告条目
	FindAll(ctx context.Context) ([]*AdvertiseItem, error)

	// FindByProduct 按商品ID查找广告条目;未命中返回ErrNotFound
	FindByProduct(ctx context.Context, productID string) (*AdvertiseItem, error)

	// DeleteByProduct 按商品ID删除广告条目(条目不存在不算错误)
	DeleteByProduct(ctx context.Context, productID string) error
}
