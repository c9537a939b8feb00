package book

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryRepo 内存版图书仓储,行为与文档库实现对齐:
// 条件状态流转带互斥锁模拟单文档原子性,计数器模拟find-and-increment
type memoryRepo struct {
	mu      sync.Mutex
	books   map[string]*Book
	order   []string // 插入顺序(FindAll按此返回,对应_id升序)
	counter int
	nextID  int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{books: make(map[string]*Book)}
}

func (r *memoryRepo) Insert(ctx context.Context, b *Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	b.ID = fmt.Sprintf("%024x", r.nextID)
	clone := *b
	r.books[b.ID] = &clone
	r.order = append(r.order, b.ID)
	return nil
}

func (r *memoryRepo) FindByID(ctx context.Context, id string) (*Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *memoryRepo) FindAll(ctx context.Context) ([]*Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Book, 0, len(r.order))
	for _, id := range r.order {
		clone := *r.books[id]
		out = append(out, &clone)
	}
	return out, nil
}

func (r *memoryRepo) FindBySeller(ctx context.Context, email string) ([]*Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Book, 0)
	for _, id := range r.order {
		if r.books[id].SellerEmail == email {
			clone := *r.books[id]
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *memoryRepo) FindByCategoryID(ctx context.Context, categoryID int) ([]*Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Book, 0)
	for _, id := range r.order {
		if r.books[id].CategoryID == categoryID {
			clone := *r.books[id]
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *memoryRepo) FindOneByCategory(ctx context.Context, category string) (*Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.order {
		if r.books[id].Category == category {
			clone := *r.books[id]
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryRepo) DistinctCategories(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, id := range r.order {
		c := r.books[id].Category
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memoryRepo) NextCategoryID(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counter++
	return r.counter, nil
}

func (r *memoryRepo) UpdateStatus(ctx context.Context, id string, from, to Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[id]
	if !ok {
		return ErrNotFound
	}
	if b.Status != from {
		return ErrNotAvailable
	}
	b.Status = to
	return nil
}

func (r *memoryRepo) ClearAdvertise(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.books[id]; ok {
		b.Advertise = false
	}
	return nil
}

func (r *memoryRepo) SetAdvertise(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[id]
	if !ok {
		return ErrNotFound
	}
	b.Advertise = true
	return nil
}

func (r *memoryRepo) Exists(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.books[id]
	return ok, nil
}

func (r *memoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[id]; !ok {
		return ErrNotFound
	}
	delete(r.books, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *memoryRepo) DeleteBySeller(ctx context.Context, email string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	deleted := make([]string, 0)
	remain := make([]string, 0, len(r.order))
	for _, id := range r.order {
		if r.books[id].SellerEmail == email {
			deleted = append(deleted, id)
			delete(r.books, id)
		} else {
			remain = append(remain, id)
		}
	}
	r.order = remain
	return deleted, nil
}

// TestAssignCategoryID 类目ID分配
func TestAssignCategoryID(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	svc := NewService(repo)

	t.Run("新类目从1开始按首次出现顺序分配", func(t *testing.T) {
		b1, err := svc.Publish(ctx, New("s@x.com", "卖家", "《围城》", "钱钟书", "文学", 1500), false)
		require.NoError(t, err)
		assert.Equal(t, 1, b1.CategoryID)

		b2, err := svc.Publish(ctx, New("s@x.com", "卖家", "《三体》", "刘慈欣", "科幻", 2500), false)
		require.NoError(t, err)
		assert.Equal(t, 2, b2.CategoryID)
	})

	t.Run("同名类目复用已分配的ID", func(t *testing.T) {
		b3, err := svc.Publish(ctx, New("s@x.com", "卖家", "《活着》", "余华", "文学", 1200), false)
		require.NoError(t, err)
		assert.Equal(t, 1, b3.CategoryID, "文学类目应复用第一次分配的ID")
	})

	t.Run("空类目名被拒绝", func(t *testing.T) {
		_, err := svc.AssignCategoryID(ctx, "")
		assert.ErrorIs(t, err, ErrInvalidCategory)
	})
}

// TestPublish 上架校验
func TestPublish(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	svc := NewService(repo)

	t.Run("价格必须大于零", func(t *testing.T) {
		_, err := svc.Publish(ctx, New("s@x.com", "卖家", "《书》", "作者", "文学", 0), false)
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})

	t.Run("类目名必须非空", func(t *testing.T) {
		_, err := svc.Publish(ctx, New("s@x.com", "卖家", "《书》", "作者", "", 1000), false)
		assert.ErrorIs(t, err, ErrInvalidCategory)
	})

	t.Run("上架后状态为available且回填ID", func(t *testing.T) {
		b, err := svc.Publish(ctx, New("s@x.com", "卖家", "《书》", "作者", "文学", 1000), true)
		require.NoError(t, err)
		assert.NotEmpty(t, b.ID)
		assert.Equal(t, StatusAvailable, b.Status)
		assert.True(t, b.Verified, "verified应从卖家资料复制")
	})
}

// TestGroups 目录分组
func TestGroups(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	svc := NewService(repo)

	// 三个类目,穿插上架
	for _, item := range []struct {
		title, category string
	}{
		{"《围城》", "文学"},
		{"《三体》", "科幻"},
		{"《活着》", "文学"},
		{"《经济学原理》", "经济"},
		{"《球状闪电》", "科幻"},
	} {
		_, err := svc.Publish(ctx, New("s@x.com", "卖家", item.title, "作者", item.category, 1000), false)
		require.NoError(t, err)
	}

	t.Run("全量分组按类目首次出现顺序", func(t *testing.T) {
		groups, err := svc.AllGroups(ctx)
		require.NoError(t, err)
		require.Len(t, groups, 3)

		assert.Equal(t, "文学", groups[0][0].Category)
		assert.Len(t, groups[0], 2)
		assert.Equal(t, "科幻", groups[1][0].Category)
		assert.Len(t, groups[1], 2)
		assert.Equal(t, "经济", groups[2][0].Category)
		assert.Len(t, groups[2], 1)
	})

	t.Run("首页只取前两组", func(t *testing.T) {
		groups, err := svc.HomeGroups(ctx)
		require.NoError(t, err)
		require.Len(t, groups, 2)
		assert.Equal(t, "文学", groups[0][0].Category)
		assert.Equal(t, "科幻", groups[1][0].Category)
	})

	t.Run("类目名列表去重", func(t *testing.T) {
		categories, err := svc.Categories(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"文学", "科幻", "经济"}, categories)
	})
}

// TestStatusMachine 状态机流转
func TestStatusMachine(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	svc := NewService(repo)

	b, err := svc.Publish(ctx, New("s@x.com", "卖家", "《书》", "作者", "文学", 1000), false)
	require.NoError(t, err)

	t.Run("available到pending", func(t *testing.T) {
		require.NoError(t, repo.UpdateStatus(ctx, b.ID, StatusAvailable, StatusPending))
		got, err := repo.FindByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusPending, got.Status)
	})

	t.Run("重复流转被拒绝", func(t *testing.T) {
		err := repo.UpdateStatus(ctx, b.ID, StatusAvailable, StatusPending)
		assert.ErrorIs(t, err, ErrNotAvailable)
	})

	t.Run("pending回退到available", func(t *testing.T) {
		require.NoError(t, repo.UpdateStatus(ctx, b.ID, StatusPending, StatusAvailable))
		got, err := repo.FindByID(ctx, b.ID)
		require.NoError(t, err)
		assert.True(t, got.Orderable())
	})
}
