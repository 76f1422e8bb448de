package factory

import (
	"fmt"

	"miku-chat-be/pkg/llm"
	"miku-chat-be/pkg/llm/ollama"
	"miku-chat-be/pkg/llm/qwen"
)

func NewLLMProvider(providerType, modelName, ollamaBaseURL, qwenBaseURL, qwenAPIKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if ollamaBaseURL == "" {
			ollamaBaseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(ollamaBaseURL, modelName), nil
	case "qwen":
		if qwenBaseURL == "" {
			qwenBaseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1"
		}
		return qwen.NewQwenProvider(qwenBaseURL, qwenAPIKey, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
