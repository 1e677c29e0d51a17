package service

import (
	"context"
	"errors"
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/prompt"
	"interview_prep_backend/internal/util"
	"interview_prep_backend/pkg/logger"
	"interview_prep_backend/pkg/monitoring"
	"interview_prep_backend/pkg/tracing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// PromptService 绑定模板并发起一次模型调用，不重试
type PromptService struct {
	Prompts *prompt.Set
	Client  ModelClient
}

func NewPromptService(prompts *prompt.Set, client ModelClient) *PromptService {
	if prompts == nil {
		prompts = prompt.Defaults()
	}
	return &PromptService{Prompts: prompts, Client: client}
}

func (s *PromptService) Invoke(ctx context.Context, kind model.OperationKind, params map[string]string) (model.RawModelOutput, error) {
	text, err := s.Prompts.Render(kind, params)
	if err != nil {
		monitoring.PipelineFailures.WithLabelValues(string(kind), "binding").Inc()
		return model.RawModelOutput{}, err
	}

	ctx, span := tracing.Tracer.Start(ctx, "model.invoke",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("operation", string(kind)),
			attribute.Int("prompt.length", len(text)),
		))
	defer span.End()

	start := time.Now()
	out, err := s.Client.Complete(ctx, text)
	elapsed := time.Since(start)

	if err != nil {
		monitoring.ModelCallDuration.WithLabelValues(string(kind), "error").Observe(elapsed.Seconds())
		monitoring.PipelineFailures.WithLabelValues(string(kind), "upstream").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "model call failed")
		logger.Log.Warn("Model call failed",
			zap.String("operation", string(kind)),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
		return model.RawModelOutput{}, asUpstream(kind, err)
	}

	monitoring.ModelCallDuration.WithLabelValues(string(kind), "ok").Observe(elapsed.Seconds())
	span.SetAttributes(attribute.Int("completion.length", len(out)))
	logger.Log.Debug("Model call finished",
		zap.String("operation", string(kind)),
		zap.Duration("elapsed", elapsed),
		zap.Int("length", len(out)))

	return model.RawModelOutput{Kind: kind, Text: out}, nil
}

// asUpstream 统一标记为上游错误并补上操作类型
func asUpstream(kind model.OperationKind, err error) error {
	var pe *util.PipelineError
	if errors.As(err, &pe) && errors.Is(pe.Kind, util.ErrUpstream) {
		if pe.Op == "" {
			return util.NewPipelineError(util.ErrUpstream, string(kind), pe.Detail, pe.Wrapped)
		}
		return err
	}
	return util.NewPipelineError(util.ErrUpstream, string(kind), "", err)
}
