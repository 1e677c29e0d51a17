package util

import (
	"errors"
	"fmt"
)

// 错误类别，配合 errors.Is 判断失败发生在哪个阶段
var (
	ErrTemplateBinding = errors.New("template binding error")
	ErrExtraction      = errors.New("extraction error")
	ErrSchema          = errors.New("schema error")
	ErrUpstream        = errors.New("upstream error")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrAuth            = errors.New("authentication failed")
	ErrStorage         = errors.New("storage error")
)

var (
	ErrUserNotFound    = fmt.Errorf("%w: 用户不存在", ErrNotFound)
	ErrEmailRegistered = fmt.Errorf("%w: 该邮箱已被注册", ErrConflict)
	ErrInvalidLogin    = fmt.Errorf("%w: invalid email or password", ErrAuth)
)

// PipelineError 携带失败类别和可读的详情
type PipelineError struct {
	Kind    error
	Op      string
	Detail  string
	Wrapped error
}

func (e *PipelineError) Error() string {
	msg := e.Kind.Error()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

func (e *PipelineError) Unwrap() []error {
	if e.Wrapped == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Wrapped}
}

func NewPipelineError(kind error, op, detail string, wrapped error) *PipelineError {
	return &PipelineError{Kind: kind, Op: op, Detail: detail, Wrapped: wrapped}
}

// ErrorKind 返回错误所属类别的名称，未知错误返回 "internal"
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrTemplateBinding):
		return "template_binding"
	case errors.Is(err, ErrExtraction):
		return "extraction"
	case errors.Is(err, ErrSchema):
		return "schema"
	case errors.Is(err, ErrUpstream):
		return "upstream"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrAuth):
		return "auth"
	case errors.Is(err, ErrStorage):
		return "storage"
	default:
		return "internal"
	}
}

// Detail 返回不带类别前缀的详情文本
func Detail(err error) string {
	var pe *PipelineError
	if errors.As(err, &pe) {
		if pe.Wrapped != nil && pe.Detail != "" {
			return pe.Detail + ": " + pe.Wrapped.Error()
		}
		if pe.Detail != "" {
			return pe.Detail
		}
		if pe.Wrapped != nil {
			return pe.Wrapped.Error()
		}
	}
	return err.Error()
}
