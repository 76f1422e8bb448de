package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"miku-chat-be/pkg/feed"
)

type countingFetcher struct {
	calls int
	items []feed.Item
}

func (f *countingFetcher) Latest(source string) []feed.Item {
	f.calls++
	return f.items
}

func TestLatestCachesPerSource(t *testing.T) {
	fetcher := &countingFetcher{items: []feed.Item{{Title: "Magical Mirai 2026"}}}
	svc := NewNewsService(fetcher, time.Minute)

	first := svc.Latest(context.Background(), "piapro")
	second := svc.Latest(context.Background(), "piapro")

	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, first, second)

	svc.Latest(context.Background(), "google")
	assert.Equal(t, 2, fetcher.calls)
}

func TestLatestEmptySourceDefaultsToAll(t *testing.T) {
	fetcher := &countingFetcher{items: []feed.Item{{Title: "x"}}}
	svc := NewNewsService(fetcher, time.Minute)

	svc.Latest(context.Background(), "")
	svc.Latest(context.Background(), "all")
	assert.Equal(t, 1, fetcher.calls)
}

func TestLatestEmptyResultIsNotCached(t *testing.T) {
	fetcher := &countingFetcher{}
	svc := NewNewsService(fetcher, time.Minute)

	svc.Latest(context.Background(), "piapro")
	svc.Latest(context.Background(), "piapro")
	assert.Equal(t, 2, fetcher.calls)
}
