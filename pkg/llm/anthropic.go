package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const anthropicMaxTokens = 2048

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func newAnthropicCaller(apiKey, model, baseURL string) CallFunc {
	return func(ctx context.Context, prompt string) (string, error) {
		reqBody := anthropicRequest{
			Model:     model,
			MaxTokens: anthropicMaxTokens,
			Messages: []anthropicMessage{
				{Role: "user", Content: prompt},
			},
		}

		var result anthropicResponse
		err := postJSON(ctx, ProviderAnthropic, baseURL+"/v1/messages", map[string]string{
			"x-api-key":         apiKey,
			"anthropic-version": "2023-06-01",
		}, reqBody, &result)
		if err != nil {
			return "", err
		}

		if result.Error != nil {
			return "", fmt.Errorf("anthropic error: %s", result.Error.Message)
		}

		var b strings.Builder
		for _, block := range result.Content {
			if block.Type == "text" {
				b.WriteString(block.Text)
			}
		}
		if b.Len() == 0 {
			return "", errors.New("anthropic returned no content")
		}

		return b.String(), nil
	}
}
