package user

import (
	"context"
	"errors"

	"github.com/thestorykeeper/bookkeeper/internal/domain/user"
	apperrors "github.com/thestorykeeper/bookkeeper/pkg/errors"
	"github.com/thestorykeeper/bookkeeper/pkg/jwt"
)

// IssueTokenUseCase 签发Access Token用例
// 为已注册邮箱签发;未注册邮箱默认返回Forbidden,前端据此引导注册。
// 注册握手例外:刚完成注册的客户端在用户记录可见前就会来换Token,
// 携带signupState标记时跳过注册表校验直接签发
type IssueTokenUseCase struct {
	userRepo user.Repository
	tokens   *jwt.Manager
}

// NewIssueTokenUseCase 创建签发用例
func NewIssueTokenUseCase(userRepo user.Repository, tokens *jwt.Manager) *IssueTokenUseCase {
	return &IssueTokenUseCase{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Execute 执行签发
func (uc *IssueTokenUseCase) Execute(ctx context.Context, email string, signupState bool) (string, error) {
	if _, err := uc.userRepo.FindByEmail(ctx, email); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			if signupState {
				return uc.tokens.Generate(email)
			}
			return "", apperrors.ErrForbidden
		}
		return "", err
	}

	return uc.tokens.Generate(email)
}
