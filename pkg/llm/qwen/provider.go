package qwen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"miku-chat-be/pkg/llm"
)

// QwenProvider talks to DashScope's OpenAI-compatible endpoint. The default
// model is qwen-vl-max, which accepts image parts alongside text.
type QwenProvider struct {
	BaseURL   string
	APIKey    string
	ModelName string
	Client    *http.Client
}

var _ llm.LLMProvider = &QwenProvider{}

func NewQwenProvider(baseURL, apiKey, modelName string) *QwenProvider {
	return &QwenProvider{
		BaseURL:   baseURL,
		APIKey:    apiKey,
		ModelName: modelName,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type qwenChatRequest struct {
	Model       string        `json:"model"`
	Messages    []qwenMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type qwenMessage struct {
	Role string `json:"role"`
	// Content is either a plain string or a list of multimodal parts.
	Content interface{} `json:"content"`
}

type qwenTextPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type qwenImagePart struct {
	Type     string       `json:"type"`
	ImageURL qwenImageURL `json:"image_url"`
}

type qwenImageURL struct {
	URL string `json:"url"`
}

type qwenChatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// --- Interface Implementation ---

func (q *QwenProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := &llm.Options{
		Temperature: 0.7, // Default
	}
	for _, opt := range opts {
		opt(options)
	}

	qwenMessages := make([]qwenMessage, len(history))
	for i, msg := range history {
		role := msg.Role
		if role == "model" {
			role = "assistant"
		}
		if msg.ImageURL != "" {
			qwenMessages[i] = qwenMessage{
				Role: role,
				Content: []interface{}{
					qwenTextPart{Type: "text", Text: msg.Content},
					qwenImagePart{Type: "image_url", ImageURL: qwenImageURL{URL: msg.ImageURL}},
				},
			}
		} else {
			qwenMessages[i] = qwenMessage{Role: role, Content: msg.Content}
		}
	}

	model := q.ModelName
	if options.Model != "" {
		model = options.Model
	}

	reqPayload := qwenChatRequest{
		Model:       model,
		Messages:    qwenMessages,
		Temperature: options.Temperature,
	}
	if options.MaxTokens > 0 {
		reqPayload.MaxTokens = options.MaxTokens
	}

	payloadBytes, err := json.Marshal(reqPayload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := q.BaseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+q.APIKey)

	resp, err := q.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("qwen request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("qwen error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var qwenResp qwenChatResponse
	if err := json.Unmarshal(bodyBytes, &qwenResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if qwenResp.Error != nil {
		return "", fmt.Errorf("qwen error: %s", qwenResp.Error.Message)
	}
	if len(qwenResp.Choices) == 0 {
		return "", fmt.Errorf("qwen error: empty choices")
	}

	return qwenResp.Choices[0].Message.Content, nil
}

func (q *QwenProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return q.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}
