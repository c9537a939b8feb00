package response

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/thestorykeeper/bookkeeper/pkg/errors"
	"github.com/thestorykeeper/bookkeeper/pkg/tracing"
)

// 统一响应辅助
// 设计说明:
// 1. 对外JSON结构由各端点自行决定(兼容历史客户端),成功时直接输出payload
// 2. 失败时统一输出 {"message": "..."},HTTP状态码由AppError映射
// 3. 内部错误(Err字段)只进日志,不透传给客户端

// ErrorBody 错误响应体
type ErrorBody struct {
	Message string `json:"message"`
}

// OK 成功响应,直接输出payload
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 创建成功响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Error 错误响应(自动处理AppError)
// 用法:
//
//	result, err := uc.Execute(ctx, req)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)

	// 追踪开启时把TraceID带回响应头,便于按报错对应链路
	traceID := tracing.ExtractTraceID(c.Request.Context())
	if traceID != "" {
		c.Header("X-Trace-Id", traceID)
	}

	// 内部错误只进日志
	if appErr.Err != nil {
		log.Printf("[%s %s] trace=%s %v", c.Request.Method, c.Request.URL.Path, traceID, appErr)
	}

	c.JSON(appErr.HTTPStatus(), ErrorBody{Message: appErr.Message})
}

// ErrorWithStatus 指定HTTP状态码的错误响应
func ErrorWithStatus(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorBody{Message: message})
}
