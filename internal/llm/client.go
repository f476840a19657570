// Package llm 封装托管语言模型的 chat completions 流式调用
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sysu-ecnc-dev/onboarding-companion/backend/internal/config"
)

type Message struct {
	Role    string `json:"role" validate:"required,oneof=system user assistant"`
	Content string `json:"content" validate:"required"`
}

type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.OpenAI.BaseURL, "/"),
		apiKey:     cfg.OpenAI.APIKey,
		model:      cfg.OpenAI.Model,
		httpClient: &http.Client{},
	}
}

type chatCompletionsRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type chatCompletionsChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// StreamChat 发起一次流式对话请求，每个增量片段通过 onDelta 回调转发，
// 返回拼接后的完整回复。取消和超时完全由 ctx 控制，不做重试。
func (c *Client) StreamChat(ctx context.Context, system string, messages []Message, onDelta func(delta string)) (string, error) {
	reqBody := chatCompletionsRequest{
		Model:    c.model,
		Messages: append([]Message{{Role: "system", Content: system}}, messages...),
		Stream:   true,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(reqBody); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("模型接口返回 %d: %s", resp.StatusCode, string(raw))
	}

	var full strings.Builder
	err = streamSSE(resp.Body, func(data string) error {
		if strings.TrimSpace(data) == "[DONE]" {
			return nil
		}

		var chunk chatCompletionsChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			// 无法解析的事件直接跳过，保持流继续
			return nil
		}

		if chunk.Error != nil {
			return fmt.Errorf("模型流式响应错误: %s", chunk.Error.Message)
		}

		if len(chunk.Choices) == 0 {
			return nil
		}

		delta := chunk.Choices[0].Delta.Content
		if delta == "" {
			return nil
		}

		full.WriteString(delta)
		if onDelta != nil {
			onDelta(delta)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return full.String(), nil
}
