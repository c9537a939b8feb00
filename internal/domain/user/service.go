package user

import (
	"context"
	"errors"
	"regexp"
)

// Service 用户领域服务接口
// 设计说明:注册规则校验与查重在这里;跨聚合的级联删除
// (删买家回退图书状态、删卖家清孤儿订单)由应用层用例编排
type Service interface {
	// Signup 注册用户
	// 业务规则:邮箱格式合法、角色合法、邮箱未注册(重复返回ErrEmailDuplicate)
	Signup(ctx context.Context, email, name string, t Type) (*User, error)

	// ByEmail 按邮箱查用户
	ByEmail(ctx context.Context, email string) (*User, error)

	// TypeByEmail 查用户角色(认证中间件的管理员校验用)
	TypeByEmail(ctx context.Context, email string) (Type, error)

	// ListByType 按角色列出用户
	ListByType(ctx context.Context, t Type) ([]*User, error)

	// Verify 管理员认证卖家
	Verify(ctx context.Context, email string) error
}

type service struct {
	repo Repository
}

// NewService 创建用户领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Signup 注册用户
func (s *service) Signup(ctx context.Context, email, name string, t Type) (*User, error) {
	// 1. 参数校验
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if !t.Valid() {
		return nil, ErrInvalidType
	}

	// 2. 邮箱查重
	// 文档库没有唯一索引约束时的先查后插:两个请求并发注册同一邮箱
	// 存在窗口,依赖Users集合的email唯一索引兜底(见持久化层)
	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailDuplicate
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	// 3. 落库
	u := New(email, name, t)
	if err := s.repo.Insert(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// ByEmail 按邮箱查用户
func (s *service) ByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.FindByEmail(ctx, email)
}

// TypeByEmail 查用户角色
func (s *service) TypeByEmail(ctx context.Context, email string) (Type, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return u.Type, nil
}

// ListByType 按角色列出用户
func (s *service) ListByType(ctx context.Context, t Type) ([]*User, error) {
	return s.repo.FindByType(ctx, t)
}

// Verify 管理员认证卖家
func (s *service) Verify(ctx context.Context, email string) error {
	return s.repo.SetVerified(ctx, email)
}
