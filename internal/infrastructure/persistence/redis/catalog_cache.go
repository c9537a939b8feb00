package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/thestorykeeper/bookkeeper/pkg/errors"
)

const (
	categoriesKey = "catalog:categories"
)

// CatalogCache 目录查询缓存(Cache-Aside)
// 设计说明:
// 1. 先查缓存,未命中再查数据库,由调用方回填
// 2. 新书上架时删除缓存而非更新,避免并发写导致的不一致
// 3. 缓存故障不影响主链路,调用方按未命中处理
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalogCache 创建目录缓存
func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	return &CatalogCache{client: client, ttl: ttl}
}

// GetCategories 获取类目列表缓存;未命中返回(nil, nil)
func (c *CatalogCache) GetCategories(ctx context.Context) ([]string, error) {
	val, err := c.client.Get(ctx, categoriesKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, "get categories cache failed")
	}

	var categories []string
	if err := json.Unmarshal([]byte(val), &categories); err != nil {
		return nil, apperrors.Wrap(err, "unmarshal categories cache failed")
	}

	return categories, nil
}

// SetCategories 写入类目列表缓存
func (c *CatalogCache) SetCategories(ctx context.Context, categories []string) error {
	val, err := json.Marshal(categories)
	if err != nil {
		return apperrors.Wrap(err, "marshal categories cache failed")
	}

	if err := c.client.Set(ctx, categoriesKey, val, c.ttl).Err(); err != nil {
		return apperrors.Wrap(err, "set categories cache failed")
	}

	return nil
}

// Invalidate 删除目录缓存(新书上架时调用)
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, categoriesKey).Err(); err != nil {
		return apperrors.Wrap(err, "invalidate catalog cache failed")
	}
	return nil
}
