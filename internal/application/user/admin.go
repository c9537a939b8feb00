package user

import (
	"context"

	"github.com/thestorykeeper/bookkeeper/internal/domain/user"
)

// AdminUseCase 管理后台用例(买家/卖家列表、卖家认证)
type AdminUseCase struct {
	userService user.Service
}

// NewAdminUseCase 创建管理后台用例
func NewAdminUseCase(userService user.Service) *AdminUseCase {
	return &AdminUseCase{userService: userService}
}

// ListSellers 全部卖家
func (uc *AdminUseCase) ListSellers(ctx context.Context) ([]*user.User, error) {
	return uc.userService.ListByType(ctx, user.TypeSeller)
}

// ListBuyers 全部买家
func (uc *AdminUseCase) ListBuyers(ctx context.Context) ([]*user.User, error) {
	return uc.userService.ListByType(ctx, user.TypeBuyer)
}

// VerifySeller 标记卖家为已认证
// 只影响此后上架的图书;存量图书的verified快照不回填
func (uc *AdminUseCase) VerifySeller(ctx context.Context, email string) error {
	return uc.userService.Verify(ctx, email)
}

// TypeOf 查询用户角色
func (uc *AdminUseCase) TypeOf(ctx context.Context, email string) (user.Type, error) {
	return uc.userService.TypeByEmail(ctx, email)
}
