package service

import (
	"context"
	"fmt"
	"interview_prep_backend/internal/config"
	"strings"
	"sync"

	"google.golang.org/genai"
)

// GeminiService 通过 genai SDK 调用 Gemini，api_key 为空时走 Vertex AI
type GeminiService struct {
	mu     sync.RWMutex
	model  string
	client *genai.Client
}

func NewGeminiService(ctx context.Context, cfg config.AIConfig) (*GeminiService, error) {
	client, err := newGenaiClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &GeminiService{model: cfg.Model, client: client}, nil
}

func newGenaiClient(ctx context.Context, cfg config.AIConfig) (*genai.Client, error) {
	cc := &genai.ClientConfig{}
	if cfg.APIKey != "" {
		cc.APIKey = cfg.APIKey
		cc.Backend = genai.BackendGeminiAPI
	} else {
		cc.Project = cfg.Project
		cc.Location = cfg.Location
		cc.Backend = genai.BackendVertexAI
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return client, nil
}

// UpdateConfig 热加载时只切换模型名，凭据变化需要重启
func (s *GeminiService) UpdateConfig(cfg config.AIConfig) {
	s.mu.Lock()
	s.model = cfg.Model
	s.mu.Unlock()
}

func (s *GeminiService) Complete(ctx context.Context, prompt string) (string, error) {
	s.mu.RLock()
	modelName := s.model
	s.mu.RUnlock()

	resp, err := s.client.Models.GenerateContent(ctx, modelName, genai.Text(prompt), nil)
	if err != nil {
		return "", upstream(err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", upstream(errEmptyCompletion)
	}
	return text, nil
}

// NewModelClient 按 ai.provider 构造模型客户端
func NewModelClient(ctx context.Context, cfg config.AIConfig) (ModelClient, error) {
	switch cfg.Provider {
	case "gemini":
		g, err := NewGeminiService(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return g, nil
	case "openai", "":
		return NewAIService(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported ai provider %q", cfg.Provider)
	}
}
