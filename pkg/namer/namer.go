package namer

import (
	"context"
	"fmt"
	"strings"

	"miku-chat-be/pkg/llm"
)

// Namer produces a short display title from a seed text. Implementations may
// fail or time out; callers own the fallback behavior.
type Namer interface {
	Name(ctx context.Context, seed string) (string, error)
}

const titlePrompt = "Generate a very short title (3-5 words max) for a chat conversation that starts with: '%s'. Only output the title, nothing else."

// LLMNamer asks an LLM provider for the title. One shot, no retry.
type LLMNamer struct {
	provider llm.LLMProvider
}

var _ Namer = &LLMNamer{}

func NewLLMNamer(provider llm.LLMProvider) *LLMNamer {
	return &LLMNamer{provider: provider}
}

func (n *LLMNamer) Name(ctx context.Context, seed string) (string, error) {
	prompt := fmt.Sprintf(titlePrompt, seed)
	title, err := n.provider.Generate(ctx, prompt,
		llm.WithTemperature(0.2),
		llm.WithMaxTokens(32),
	)
	if err != nil {
		return "", err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("namer: empty title")
	}
	return title, nil
}
