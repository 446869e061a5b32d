package lmstudio

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"ai-chatlog-be/pkg/llm"
)

// LMStudioProvider delegates generation to a remote OpenAI-compatible
// completion endpoint (LM Studio's /v1/completions). Streaming arrives as
// Server-Sent Events terminated by a [DONE] sentinel.
type LMStudioProvider struct {
	BaseURL string
	Model   string
	Client  *http.Client
}

var _ llm.LLMProvider = &LMStudioProvider{}

func NewLMStudioProvider(baseURL, model string) *LMStudioProvider {
	if baseURL == "" {
		baseURL = "http://localhost:1234"
	}
	return &LMStudioProvider{
		BaseURL: baseURL,
		Model:   model,
		Client:  &http.Client{},
	}
}

type completionRequest struct {
	Model       string   `json:"model,omitempty"`
	Prompt      string   `json:"prompt"`
	MaxTokens   int      `json:"max_tokens"`
	Temperature float64  `json:"temperature"`
	Stop        []string `json:"stop,omitempty"`
	Stream      bool     `json:"stream,omitempty"`
}

type completionResponse struct {
	Choices []struct {
		Text string `json:"text"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (p *LMStudioProvider) buildRequest(prompt string, stream bool, opts []llm.Option) ([]byte, error) {
	options := llm.ApplyOptions(opts...)

	model := p.Model
	if options.Model != "" {
		model = options.Model
	}

	return json.Marshal(completionRequest{
		Model:       model,
		Prompt:      prompt,
		MaxTokens:   options.MaxTokens,
		Temperature: options.Temperature,
		Stop:        options.Stop,
		Stream:      stream,
	})
}

func (p *LMStudioProvider) Complete(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	jsonData, err := p.buildRequest(prompt, false, opts)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/completions", p.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("lm studio request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("lm studio error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var compResp completionResponse
	if err := json.Unmarshal(bodyBytes, &compResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if compResp.Error != nil {
		return "", fmt.Errorf("lm studio returned error: %s", compResp.Error.Message)
	}
	if len(compResp.Choices) == 0 {
		return "", fmt.Errorf("empty choices from lm studio")
	}

	return compResp.Choices[0].Text, nil
}

func (p *LMStudioProvider) Stream(ctx context.Context, prompt string, opts ...llm.Option) (<-chan llm.Chunk, error) {
	jsonData, err := p.buildRequest(prompt, true, opts)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/completions", p.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lm studio request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("lm studio error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	chunks := make(chan llm.Chunk)
	go func() {
		defer close(chunks)
		defer resp.Body.Close()

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || !strings.HasPrefix(line, "data: ") {
				continue
			}

			data := strings.TrimPrefix(line, "data: ")
			if data == "[DONE]" {
				return
			}

			var compResp completionResponse
			if err := json.Unmarshal([]byte(data), &compResp); err != nil {
				continue
			}
			if len(compResp.Choices) == 0 || compResp.Choices[0].Text == "" {
				continue
			}

			select {
			case chunks <- llm.Chunk{Text: compResp.Choices[0].Text}:
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil && ctx.Err() == nil {
			select {
			case chunks <- llm.Chunk{Err: fmt.Errorf("lm studio stream: %w", err)}:
			case <-ctx.Done():
			}
		}
	}()

	return chunks, nil
}
