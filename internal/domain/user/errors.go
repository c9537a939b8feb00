package user

import (
	apperrors "github.com/thestorykeeper/bookkeeper/pkg/errors"
)

// 用户领域错误定义
var (
	// ErrNotFound 用户不存在
	ErrNotFound = apperrors.New(apperrors.ErrCodeUserNotFound, "user not found")

	// ErrEmailDuplicate 邮箱已注册
	ErrEmailDuplicate = apperrors.New(apperrors.ErrCodeEmailDuplicate, "email already registered")

	// ErrInvalidEmail 邮箱格式不正确
	ErrInvalidEmail = apperrors.New(apperrors.ErrCodeInvalidParams, "invalid email address")

	// ErrInvalidType 非法的用户角色
	ErrInvalidType = apperrors.New(apperrors.ErrCodeInvalidParams, "user type must be buyer, seller or admin")
)
