package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/thestorykeeper/bookkeeper/pkg/errors"
)

// TokenStore 访问令牌黑名单
// 设计说明:
// 1. JWT无状态,服务端无法主动使Token失效,黑名单补足这一能力
// 2. Key设计:blacklist:{token},过期时间与Access Token有效期一致
// 3. 过期后自动删除,无需手动清理
type TokenStore struct {
	client *redis.Client
}

// NewTokenStore 创建令牌黑名单存储
func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

// Revoke 将Token加入黑名单
func (s *TokenStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	key := fmt.Sprintf("blacklist:%s", token)

	if err := s.client.Set(ctx, key, "revoked", ttl).Err(); err != nil {
		return apperrors.Wrap(err, "revoke token failed")
	}

	return nil
}

// IsRevoked 检查Token是否在黑名单中
func (s *TokenStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	key := fmt.Sprintf("blacklist:%s", token)

	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, apperrors.Wrap(err, "check token blacklist failed")
	}

	return exists > 0, nil
}
