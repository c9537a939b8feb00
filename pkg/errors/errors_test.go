package errors

import (
	"errors"
	"net/http"
	"testing"
)

// TestHTTPStatus 业务错误码到HTTP状态码的映射
func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want int
	}{
		{"缺少凭证", ErrUnauthorized, http.StatusUnauthorized},
		{"凭证无效", ErrForbidden, http.StatusForbidden},
		{"Token过期", ErrTokenExpired, http.StatusForbidden},
		{"非管理员", ErrNotAdmin, http.StatusForbidden},
		{"资源不存在", ErrNotFound, http.StatusNotFound},
		{"用户不存在", ErrUserNotFound, http.StatusNotFound},
		{"台账未命中", New(ErrCodeLedgerMiss, "no ledger entry"), http.StatusNotFound},
		{"邮箱重复", ErrEmailDuplicate, http.StatusConflict},
		{"状态流转冲突", ErrStatusConflict, http.StatusConflict},
		{"参数错误", ErrInvalidParams, http.StatusBadRequest},
		{"网关错误透传", Upstream(errors.New("card declined"), "card declined"), http.StatusBadRequest},
		{"内部错误", ErrInternal, http.StatusInternalServerError},
		{"文档库错误", ErrDatabaseError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.HTTPStatus(); got != tt.want {
				t.Errorf("code=%d 期望HTTP %d，实际%d", tt.err.Code, tt.want, got)
			}
		})
	}
}

// TestWrap_PreservesCause Wrap后errors.Is仍能识别底层错误
func TestWrap_PreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	wrapped := Wrap(cause, "document store error")

	if !errors.Is(wrapped, cause) {
		t.Error("期望errors.Is能穿透Wrap识别底层错误")
	}

	if wrapped.Code != ErrCodeInternal {
		t.Errorf("期望code=%d，实际%d", ErrCodeInternal, wrapped.Code)
	}
}

// TestErrorString 错误信息格式
func TestErrorString(t *testing.T) {
	e := New(ErrCodeBookNotFound, "book not found")
	if e.Error() != "[40402] book not found" {
		t.Errorf("格式不符: %s", e.Error())
	}

	withCause := Wrap(errors.New("timeout"), "query failed")
	if withCause.Error() != "[50000] query failed: timeout" {
		t.Errorf("格式不符: %s", withCause.Error())
	}
}

// TestErrorsAs 通过errors.As提取AppError(response层依赖这一行为)
func TestErrorsAs(t *testing.T) {
	var appErr *AppError
	err := error(ErrStatusConflict)

	if !errors.As(err, &appErr) {
		t.Fatal("期望errors.As提取成功")
	}
	if appErr.Code != ErrCodeStatusConflict {
		t.Errorf("期望code=%d，实际%d", ErrCodeStatusConflict, appErr.Code)
	}
}
