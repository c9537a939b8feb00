package book

import (
	"context"
	"errors"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 类目分配是跨实体的业务规则(涉及全体图书的类目集合),放在领域服务
// 2. 目录查询的分组逻辑(首页两组、全量分组)也在这里,保持handler轻薄
type Service interface {
	// AssignCategoryID 为类目名计算categoryId
	// 不变式:同名类目的所有图书共享同一个ID;
	// 新类目通过计数器原子分配(1起步,按首次出现顺序递增)
	AssignCategoryID(ctx context.Context, category string) (int, error)

	// Publish 上架图书
	// 业务规则:价格必须>0,类目名非空;
	// categoryId由分配器计算,verified从卖家资料复制
	Publish(ctx context.Context, b *Book, sellerVerified bool) (*Book, error)

	// HomeGroups 首页展示:按类目分组(首次出现顺序),只取前两组
	HomeGroups(ctx context.Context) ([][]*Book, error)

	// AllGroups 商店页:全部图书按类目分组
	AllGroups(ctx context.Context) ([][]*Book, error)

	// ByCategoryID 指定类目的图书
	ByCategoryID(ctx context.Context, categoryID int) ([]*Book, error)

	// ByID 图书详情
	ByID(ctx context.Context, id string) (*Book, error)

	// Categories 去重后的类目名列表
	Categories(ctx context.Context) ([]string, error)

	// SellerProducts 卖家的全部在售商品
	SellerProducts(ctx context.Context, email string) ([]*Book, error)
}

type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// AssignCategoryID 为类目名计算categoryId
func (s *service) AssignCategoryID(ctx context.Context, category string) (int, error) {
	if category == "" {
		return 0, ErrInvalidCategory
	}

	// 1. 类目已存在:复用该类目下任一图书的categoryId
	// (不变式由此保持:读到的ID就是全类目共享的ID)
	existing, err := s.repo.FindOneByCategory(ctx, category)
	if err == nil {
		return existing.CategoryID, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return 0, err
	}

	// 2. 新类目:计数器原子分配下一个ID
	// 两个请求并发上架同一个新类目名时会拿到不同ID,
	// 后写入者的图书与先写入者不同ID,这是计数器方案下
	// 残余的竞争窗口(类目名相同而ID不同),概率极低且可由
	// 后台任务归并;相比历史实现的"去重计数+1"已消除ID撞车
	return s.repo.NextCategoryID(ctx)
}

// Publish 上架图书
func (s *service) Publish(ctx context.Context, b *Book, sellerVerified bool) (*Book, error) {
	if b.Price <= 0 {
		return nil, ErrInvalidPrice
	}
	if b.Category == "" {
		return nil, ErrInvalidCategory
	}

	categoryID, err := s.AssignCategoryID(ctx, b.Category)
	if err != nil {
		return nil, err
	}

	b.CategoryID = categoryID
	b.Verified = sellerVerified
	b.Status = StatusAvailable

	if err := s.repo.Insert(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// HomeGroups 首页展示分组
func (s *service) HomeGroups(ctx context.Context) ([][]*Book, error) {
	groups, err := s.AllGroups(ctx)
	if err != nil {
		return nil, err
	}

	// 首页只展示前两个类目的图书
	if len(groups) > 2 {
		groups = groups[:2]
	}
	return groups, nil
}

// AllGroups 全部图书按类目分组(类目按首次出现顺序)
func (s *service) AllGroups(ctx context.Context) ([][]*Book, error) {
	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	order := make([]int, 0)
	byCategory := make(map[int][]*Book)
	for _, b := range all {
		if _, seen := byCategory[b.CategoryID]; !seen {
			order = append(order, b.CategoryID)
		}
		byCategory[b.CategoryID] = append(byCategory[b.CategoryID], b)
	}

	groups := make([][]*Book, 0, len(order))
	for _, id := range order {
		groups = append(groups, byCategory[id])
	}
	return groups, nil
}

// ByCategoryID 指定类目的图书
func (s *service) ByCategoryID(ctx context.Context, categoryID int) ([]*Book, error) {
	return s.repo.FindByCategoryID(ctx, categoryID)
}

// ByID 图书详情
func (s *service) ByID(ctx context.Context, id string) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// Categories 去重后的类目名列表
func (s *service) Categories(ctx context.Context) ([]string, error) {
	return s.repo.DistinctCategories(ctx)
}

// SellerProducts 卖家的全部商品
func (s *service) SellerProducts(ctx context.Context, email string) ([]*Book, error) {
	return s.repo.FindBySeller(ctx, email)
}
