package service

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"miku-chat-be/pkg/feed"
)

type INewsService interface {
	Latest(ctx context.Context, source string) []feed.Item
}

// newsFetcher is the slice of feed.Client the service needs.
type newsFetcher interface {
	Latest(source string) []feed.Item
}

// newsService fronts the RSS aggregation with a short-lived cache so bursts of
// dashboard loads do not hammer the upstream feeds.
type newsService struct {
	client newsFetcher
	cache  *cache.Cache
}

func NewNewsService(client newsFetcher, ttl time.Duration) INewsService {
	return &newsService{
		client: client,
		cache:  cache.New(ttl, 2*ttl),
	}
}

func (s *newsService) Latest(ctx context.Context, source string) []feed.Item {
	if source == "" {
		source = "all"
	}

	if cached, found := s.cache.Get(source); found {
		return cached.([]feed.Item)
	}

	items := s.client.Latest(source)
	if len(items) > 0 {
		s.cache.Set(source, items, cache.DefaultExpiration)
	}
	return items
}
