// Package models 提供各家模型提供方的适配器实现。
package models

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"net/http"
	"runtime"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

// openaiModel 封装 OpenAI 兼容的聊天客户端。
type openaiModel struct {
	client             *openai.Client
	name               string
	versionHeaderValue string
}

func NewOpenAIModel(ctx context.Context, modelName string, cfg *genai.ClientConfig) (model.LLM, error) {
	m, err := newOpenAICompatible(modelName, cfg, "openai-go", "")
	if err != nil {
		return nil, err
	}
	return m, nil
}

// newOpenAICompatible 构造 OpenAI 协议兼容的客户端，baseURL 为空时使用官方地址。
func newOpenAICompatible(modelName string, cfg *genai.ClientConfig, agent, baseURL string) (*openaiModel, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if modelName == "" {
		return nil, fmt.Errorf("model name cannot be empty")
	}

	if cfg.HTTPOptions.BaseURL != "" {
		baseURL = cfg.HTTPOptions.BaseURL
	}

	// 一次调用只发出一次请求，超时与重试由调用方的 context 决定。
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if cfg.HTTPOptions.Timeout != nil {
		opts = append(opts, option.WithRequestTimeout(*cfg.HTTPOptions.Timeout))
	}
	client := openai.NewClient(opts...)

	// 创建时一次性生成 UA 头，避免每次请求重复拼接。
	headerValue := fmt.Sprintf("%s/%s go/%s",
		agent, "1.0.0", strings.TrimPrefix(runtime.Version(), "go"))

	return &openaiModel{
		name:               modelName,
		client:             &client,
		versionHeaderValue: headerValue,
	}, nil
}

func (m *openaiModel) Name() string {
	return m.name
}

// GenerateContent 总是返回完整响应；标注流程不需要流式输出。
func (m *openaiModel) GenerateContent(ctx context.Context, req *model.LLMRequest, stream bool) iter.Seq2[*model.LLMResponse, error] {
	m.maybeAppendUserContent(req)

	if req.Config == nil {
		req.Config = &genai.GenerateContentConfig{}
	}
	if req.Config.HTTPOptions == nil {
		req.Config.HTTPOptions = &genai.HTTPOptions{}
	}
	if req.Config.HTTPOptions.Headers == nil {
		req.Config.HTTPOptions.Headers = make(http.Header)
	}
	m.addHeaders(req.Config.HTTPOptions.Headers)

	return func(yield func(*model.LLMResponse, error) bool) {
		resp, err := m.generate(ctx, req)
		yield(resp, err)
	}
}

func (m *openaiModel) addHeaders(headers http.Header) {
	headers.Set("user-agent", m.versionHeaderValue)
}

func (m *openaiModel) generate(ctx context.Context, req *model.LLMRequest) (*model.LLMResponse, error) {
	params := buildOpenAIParams(req, m.name)

	resp, err := m.client.Chat.Completions.New(ctx, *params, option.WithHeader("User-Agent", m.versionHeaderValue))
	if err != nil {
		slog.Error("failed to call llm API", "model", m.name, "error", err.Error())
		return nil, fmt.Errorf("failed to call %s: %w", m.name, err)
	}

	if resp == nil || len(resp.Choices) == 0 {
		return &model.LLMResponse{}, nil
	}

	choice := resp.Choices[0]
	content := &genai.Content{
		Role:  "model",
		Parts: []*genai.Part{},
	}
	if choice.Message.Content != "" {
		content.Parts = append(content.Parts, &genai.Part{
			Text: choice.Message.Content,
		})
	}

	if choice.FinishReason == "length" {
		slog.Warn("llm response truncated by token limit", "model", m.name)
	}

	return &model.LLMResponse{
		Content:      content,
		TurnComplete: true,
	}, nil
}

func (m *openaiModel) maybeAppendUserContent(req *model.LLMRequest) {
	if len(req.Contents) == 0 {
		req.Contents = append(req.Contents, genai.NewContentFromText("Handle the requests as specified in the System Instruction.", "user"))
	}

	if last := req.Contents[len(req.Contents)-1]; last != nil && last.Role != "user" {
		req.Contents = append(req.Contents, genai.NewContentFromText("Continue processing previous requests as instructed.", "user"))
	}
}
