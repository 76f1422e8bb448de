package service

import (
	"context"

	"miku-chat-be/pkg/bilibili"
)

type IVideoService interface {
	Search(ctx context.Context, keyword string, pageSize int) ([]bilibili.Video, error)
}

type videoService struct {
	client *bilibili.Client
}

func NewVideoService(client *bilibili.Client) IVideoService {
	return &videoService{client: client}
}

func (s *videoService) Search(ctx context.Context, keyword string, pageSize int) ([]bilibili.Video, error) {
	return s.client.Search(keyword, pageSize)
}
