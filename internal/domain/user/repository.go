package user

import (
	"context"
)

// Repository 用户仓储接口
type Repository interface {
	// Insert 插入用户,回填生成的ID
	Insert(ctx context.Context, u *User) error

	// FindByEmail 按邮箱查找;未命中返回ErrNotFound
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByType 按角色列出用户(管理后台的买家/卖家列表)
	FindByType(ctx context.Context, t Type) ([]*User, error)

	// SetVerified 将卖家标记为已认证(upsert,与历史行为一致)
	SetVerified(ctx context.Context, email string) error

	// DeleteByEmail 按邮箱删除用户
	DeleteByEmail(ctx context.Context, email string) error
}
