package controller

import (
	"github.com/gofiber/fiber/v2"

	"miku-chat-be/internal/pkg/serverutils"
	"miku-chat-be/internal/service"
)

type IImageController interface {
	RegisterRoutes(r fiber.Router)
	Random(ctx *fiber.Ctx) error
}

type imageController struct {
	imageService service.IImageService
}

func NewImageController(imageService service.IImageService) IImageController {
	return &imageController{
		imageService: imageService,
	}
}

func (c *imageController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/image/v1")
	h.Get("random", c.Random)
}

func (c *imageController) Random(ctx *fiber.Ctx) error {
	img, err := c.imageService.Random(ctx.Context())
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetch image", img))
}
