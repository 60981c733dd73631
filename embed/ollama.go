// Package embed 提供 core.EmbeddingService 的基础设施实现。
//
// 推荐链路不依赖本包：打分只消费已生成的向量。
// 摄取链路用它把行为/商品文本转成向量后落库。
package embed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rushteam/shoprec/core"
)

// DefaultOllamaModel 是原始数据集使用的 embedding 模型。
const DefaultOllamaModel = "all-minilm:33m-l12-v2-fp16"

// OllamaService 是基于本地 Ollama 的 EmbeddingService 实现，
// 通过 HTTP 调用 /api/embed 接口。
//
// 空白文本约定返回空向量哨兵（nil），与"无向量"语义对齐，不报错。
type OllamaService struct {
	// Endpoint Ollama 服务地址，默认 http://localhost:11434
	Endpoint string

	// Model embedding 模型名，默认 DefaultOllamaModel
	Model string

	// Client HTTP 客户端，默认 30s 超时
	Client *http.Client

	// dims 首次成功调用后记录的向量维度
	dims int
}

// ServiceOption 配置 OllamaService。
type ServiceOption func(*OllamaService)

// WithEndpoint 指定 Ollama 服务地址。
func WithEndpoint(endpoint string) ServiceOption {
	return func(s *OllamaService) { s.Endpoint = endpoint }
}

// WithModel 指定 embedding 模型。
func WithModel(model string) ServiceOption {
	return func(s *OllamaService) { s.Model = model }
}

// WithHTTPClient 指定 HTTP 客户端（超时/代理等）。
func WithHTTPClient(client *http.Client) ServiceOption {
	return func(s *OllamaService) { s.Client = client }
}

// NewOllamaService 创建一个 Ollama embedding 服务客户端。
func NewOllamaService(opts ...ServiceOption) *OllamaService {
	s := &OllamaService{
		Endpoint: "http://localhost:11434",
		Model:    DefaultOllamaModel,
		Client:   &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type embedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embedResponse struct {
	Embeddings [][]float64 `json:"embeddings"`
}

func (s *OllamaService) Embed(ctx context.Context, text string) ([]float64, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	vecs, err := s.embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vecs) == 0 {
		return nil, nil
	}
	return vecs[0], nil
}

func (s *OllamaService) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	// 空白文本不发给模型，占位空向量保持输入输出顺序一致
	out := make([][]float64, len(texts))
	nonEmpty := make([]string, 0, len(texts))
	positions := make([]int, 0, len(texts))
	for i, t := range texts {
		if strings.TrimSpace(t) == "" {
			continue
		}
		nonEmpty = append(nonEmpty, t)
		positions = append(positions, i)
	}
	if len(nonEmpty) == 0 {
		return out, nil
	}

	vecs, err := s.embed(ctx, nonEmpty)
	if err != nil {
		return nil, err
	}
	if len(vecs) != len(nonEmpty) {
		return nil, core.NewDomainError(core.ModuleEmbed, core.ErrorCodeInternalError,
			fmt.Sprintf("embed: response count mismatch: sent %d, got %d", len(nonEmpty), len(vecs)))
	}
	for i, pos := range positions {
		out[pos] = vecs[i]
	}
	return out, nil
}

func (s *OllamaService) embed(ctx context.Context, input []string) ([][]float64, error) {
	body, err := json.Marshal(embedRequest{Model: s.Model, Input: input})
	if err != nil {
		return nil, fmt.Errorf("embed: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(s.Endpoint, "/")+"/api/embed", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("embed: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleEmbed, core.ErrorCodeUnavailable,
			fmt.Sprintf("embed: ollama unreachable: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, core.NewDomainError(core.ModuleEmbed, core.ErrorCodeInternalError,
			fmt.Sprintf("embed: ollama status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))))
	}

	var parsed embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("embed: decode response: %w", err)
	}

	if s.dims == 0 && len(parsed.Embeddings) > 0 {
		s.dims = len(parsed.Embeddings[0])
	}
	return parsed.Embeddings, nil
}

// Dimensions 返回向量维度（首次成功调用后可用，未知时返回 0）。
func (s *OllamaService) Dimensions() int { return s.dims }

func (s *OllamaService) Close() error { return nil }

var _ core.EmbeddingService = (*OllamaService)(nil)
