package payment

import (
	apperrors "github.com/thestorykeeper/bookkeeper/pkg/errors"
)

var (
	// ErrNotFound 支付凭证不存在
	ErrNotFound = apperrors.New(apperrors.ErrCodeLedgerMiss, "payment not found")
)
