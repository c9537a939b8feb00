package user

import (
	"context"

	"github.com/thestorykeeper/bookkeeper/internal/domain/user"
)

// SignupUseCase 用户注册用例
type SignupUseCase struct {
	userService user.Service
}

// NewSignupUseCase 创建注册用例
func NewSignupUseCase(userService user.Service) *SignupUseCase {
	return &SignupUseCase{userService: userService}
}

// SignupRequest 注册请求
type SignupRequest struct {
	Email string
	Name  string
	Type  string
}

// Execute 执行注册;邮箱重复返回user.ErrEmailDuplicate
func (uc *SignupUseCase) Execute(ctx context.Context, req SignupRequest) (*user.User, error) {
	return uc.userService.Signup(ctx, req.Email, req.Name, user.Type(req.Type))
}
