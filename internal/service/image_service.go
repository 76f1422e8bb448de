package service

import (
	"context"

	"miku-chat-be/pkg/booru"
)

type IImageService interface {
	Random(ctx context.Context) (*booru.Image, error)
}

type imageService struct {
	client *booru.Client
}

func NewImageService(client *booru.Client) IImageService {
	return &imageService{client: client}
}

func (s *imageService) Random(ctx context.Context) (*booru.Image, error) {
	return s.client.Random()
}
