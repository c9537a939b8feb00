package book

import (
	apperrors "github.com/thestorykeeper/bookkeeper/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrNotFound 图书不存在
	ErrNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "book not found")

	// ErrNotAvailable 图书状态流转冲突(已被并发下单或已售出)
	ErrNotAvailable = apperrors.New(apperrors.ErrCodeStatusConflict, "book is no longer available")

	// ErrInvalidPrice 无效的价格
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "price must be greater than zero")

	// ErrInvalidCategory 类目名为空
	ErrInvalidCategory = apperrors.New(apperrors.ErrCodeInvalidParams, "category must not be empty")

	// ErrInvalidID 商品ID不是合法的文档ID
	ErrInvalidID = apperrors.New(apperrors.ErrCodeInvalidParams, "invalid product id")

	// ErrNotOwner 非本人图书
	ErrNotOwner = apperrors.New(apperrors.ErrCodeForbidden, "Forbidden Access")
)
