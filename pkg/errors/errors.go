package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 自定义应用错误
// 设计说明:
// 1. Code用于客户端判断错误类型(业务错误码,不等同于HTTP状态码)
// 2. Message是用户友好的提示信息
// 3. Err是内部错误,仅记录到日志,不返回给客户端(防止泄露敏感信息)
type AppError struct {
	Code    int    `json:"code"`    // 业务错误码
	Message string `json:"message"` // 用户友好的错误提示
	Err     error  `json:"-"`       // 内部错误(不序列化)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误(如文档库错误、网络错误)
// 用途:将底层错误转换为业务错误,隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// Upstream 包装外部网关错误(支付网关等)
// 与Wrap不同:网关返回的message需要透传给客户端
func Upstream(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeUpstream,
		Message: message,
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范:
// - 错误码前三位与对应的HTTP状态码一致,便于排查
// - 4xxxx: 客户端错误(参数错误、认证失败、资源不存在)
// - 5xxxx: 服务端错误(文档库异常、外部服务调用失败)

const (
	// 系统级错误码(50000-50099)
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 文档库错误
	ErrCodeRedisError    = 50002 // Redis错误

	// 参数错误(40000-40099)
	ErrCodeInvalidParams = 40000 // 参数错误
	ErrCodeBindError     = 40001 // 参数绑定失败
	ErrCodeUpstream      = 40002 // 支付网关调用失败(网关消息透传)

	// 认证授权错误(40100-40399)
	ErrCodeUnauthorized = 40100 // 缺少凭证
	ErrCodeForbidden    = 40300 // 凭证无效或身份不匹配
	ErrCodeTokenExpired = 40301 // Token过期
	ErrCodeNotAdmin     = 40302 // 非管理员访问管理接口

	// 资源错误(40400-40499)
	ErrCodeNotFound     = 40400 // 资源不存在(通用)
	ErrCodeUserNotFound = 40401 // 用户不存在
	ErrCodeBookNotFound = 40402 // 图书不存在
	ErrCodeLedgerMiss   = 40403 // 订单和心愿单均无此商品记录

	// 冲突错误(40900-40999)
	ErrCodeConflict       = 40900 // 冲突(通用)
	ErrCodeEmailDuplicate = 40901 // 邮箱已存在
	ErrCodeStatusConflict = 40902 // 图书状态流转冲突(并发下单)
)

// HTTPStatus 业务错误码到HTTP状态码的映射
// 设计说明:历史实现对读未命中返回200+空body,此处统一归一化:
// 未命中一律404,重复冲突409,凭证缺失401,凭证无效403
func (e *AppError) HTTPStatus() int {
	switch {
	case e.Code == ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case e.Code >= 40300 && e.Code < 40400:
		return http.StatusForbidden
	case e.Code >= 40400 && e.Code < 40500:
		return http.StatusNotFound
	case e.Code >= 40900 && e.Code < 41000:
		return http.StatusConflict
	case e.Code >= 40000 && e.Code < 40100:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// =========================================
// 预定义错误(避免每次都New)
// =========================================

var (
	// 系统错误
	ErrInternal      = New(ErrCodeInternal, "internal server error")
	ErrDatabaseError = New(ErrCodeDatabaseError, "document store error")
	ErrRedisError    = New(ErrCodeRedisError, "cache service error")

	// 认证授权
	ErrUnauthorized = New(ErrCodeUnauthorized, "Unauthorized Access")
	ErrForbidden    = New(ErrCodeForbidden, "Forbidden Access")
	ErrTokenExpired = New(ErrCodeTokenExpired, "Forbidden Access")
	ErrNotAdmin     = New(ErrCodeNotAdmin, "Forbidden Access")

	// 资源不存在
	ErrNotFound     = New(ErrCodeNotFound, "resource not found")
	ErrUserNotFound = New(ErrCodeUserNotFound, "user not found")
	ErrBookNotFound = New(ErrCodeBookNotFound, "book not found")

	// 冲突
	ErrEmailDuplicate = New(ErrCodeEmailDuplicate, "email already registered")
	ErrStatusConflict = New(ErrCodeStatusConflict, "book is no longer available")

	// 参数错误
	ErrInvalidParams = New(ErrCodeInvalidParams, "invalid parameters")
	ErrBindError     = New(ErrCodeBindError, "malformed request body")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError(如果不是AppError则包装成Internal错误)
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "internal server error")
}
