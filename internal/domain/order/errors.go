package order

import (
	apperrors "github.com/thestorykeeper/bookkeeper/pkg/errors"
)

// 订单/心愿单领域错误定义
var (
	// ErrNotFound 订单不存在
	ErrNotFound = apperrors.New(apperrors.ErrCodeNotFound, "order not found")

	// ErrWishItemNotFound 心愿单条目不存在
	ErrWishItemNotFound = apperrors.New(apperrors.ErrCodeNotFound, "wishlist item not found")

	// ErrNoLedgerEntry 订单和心愿单均无此商品的记录
	// 支付完成接口在图书已售出后重复调用会走到这里(幂等:不再二次售出)
	ErrNoLedgerEntry = apperrors.New(apperrors.ErrCodeLedgerMiss, "no pending order or wishlist entry for this product")

	// ErrAlreadyPaid 订单已是paid状态
	ErrAlreadyPaid = apperrors.New(apperrors.ErrCodeConflict, "order already paid")
)
