package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

func newGeminiCaller(ctx context.Context, apiKey, model, baseURL string) (CallFunc, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return func(ctx context.Context, prompt string) (string, error) {
		resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
		if err != nil {
			return "", fmt.Errorf("gemini request: %w", err)
		}
		return resp.Text(), nil
	}, nil
}
