package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"interview_prep_backend/internal/config"
	"interview_prep_backend/internal/util"
	"io"
	"net/http"
	"strings"
	"sync"
)

// ModelClient 对生成模型发起一次阻塞调用，返回完整文本
type ModelClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// AIService OpenAI 兼容接口（Ollama、vLLM、LM Studio 等）
type AIService struct {
	mu     sync.RWMutex
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	// 不设置超时，由调用方的 context 控制
	return &AIService{config: cfg, client: &http.Client{}}
}

// UpdateConfig 配置热加载时替换模型地址、密钥和模型名
func (s *AIService) UpdateConfig(cfg config.AIConfig) {
	s.mu.Lock()
	s.config = cfg
	s.mu.Unlock()
}

func (s *AIService) settings() config.AIConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model    string          `json:"model"`
	Messages []AIChatMessage `json:"messages"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

var (
	errNoChoices       = errors.New("model returned no choices")
	errEmptyCompletion = errors.New("model returned an empty completion")
)

func (s *AIService) Complete(ctx context.Context, prompt string) (string, error) {
	cfg := s.settings()

	reqBody := ChatCompletionRequest{
		Model:    cfg.Model,
		Messages: []AIChatMessage{{Role: "user", Content: prompt}},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := strings.TrimRight(cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", upstream(err)
	}

	req.Header.Set("Content-Type", "application/json")
	if cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.APIKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", upstream(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", upstream(err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", upstream(fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, truncate(string(body), 300)))
	}

	var chatResp ChatCompletionResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", upstream(fmt.Errorf("decode completion: %w", err))
	}

	if chatResp.Error != nil {
		return "", upstream(fmt.Errorf("AI API error: %s", chatResp.Error.Message))
	}

	if len(chatResp.Choices) == 0 {
		return "", upstream(errNoChoices)
	}

	// 空白回复按上游错误处理，两种 provider 行为一致
	content := chatResp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", upstream(errEmptyCompletion)
	}
	return content, nil
}

func upstream(err error) error {
	return util.NewPipelineError(util.ErrUpstream, "", "", err)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
