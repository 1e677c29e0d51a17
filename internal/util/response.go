package util

import (
	"errors"
	"interview_prep_backend/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorData 错误响应附带的类别，便于调用方区分失败阶段
type ErrorData struct {
	Kind string `json:"kind"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err))
	InternalServerError(c)
}

// StatusFor 错误类别到 HTTP 状态码的映射
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrTemplateBinding):
		return http.StatusBadRequest
	case errors.Is(err, ErrExtraction), errors.Is(err, ErrSchema):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrUpstream):
		return http.StatusBadGateway
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrAuth):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// PipelineFailure 按错误类别输出响应，内部错误只记录日志不暴露细节
func PipelineFailure(c *gin.Context, err error) {
	code := StatusFor(err)
	kind := ErrorKind(err)
	if code >= http.StatusInternalServerError && code != http.StatusBadGateway {
		logger.Log.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("kind", kind),
			zap.Error(err))
		c.JSON(code, Response{Code: code, Message: "Internal server error", Data: ErrorData{Kind: kind}})
		return
	}

	logger.Log.Warn("request failed",
		zap.String("path", c.FullPath()),
		zap.String("kind", kind),
		zap.Error(err))
	c.JSON(code, Response{Code: code, Message: Detail(err), Data: ErrorData{Kind: kind}})
}
