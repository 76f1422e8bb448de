package namer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"miku-chat-be/pkg/llm"
)

type stubProvider struct {
	reply string
	err   error
	seen  string
}

func (p *stubProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	if len(history) > 0 {
		p.seen = history[len(history)-1].Content
	}
	return p.reply, p.err
}

func (p *stubProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	p.seen = prompt
	return p.reply, p.err
}

func TestNameWrapsSeedInPrompt(t *testing.T) {
	p := &stubProvider{reply: "Miku Concert Plans"}
	n := NewLLMNamer(p)

	title, err := n.Name(context.Background(), "when is the next concert?")
	require.NoError(t, err)
	assert.Equal(t, "Miku Concert Plans", title)
	assert.Contains(t, p.seen, "when is the next concert?")
	assert.Contains(t, p.seen, "short title")
}

func TestNamePropagatesProviderError(t *testing.T) {
	n := NewLLMNamer(&stubProvider{err: errors.New("timeout")})
	_, err := n.Name(context.Background(), "hello")
	assert.Error(t, err)
}

func TestNameRejectsBlankTitle(t *testing.T) {
	n := NewLLMNamer(&stubProvider{reply: "   "})
	_, err := n.Name(context.Background(), "hello")
	assert.Error(t, err)
}
