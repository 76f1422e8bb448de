package controller

import (
	"github.com/gofiber/fiber/v2"

	"miku-chat-be/internal/pkg/serverutils"
	"miku-chat-be/internal/service"
)

type IVideoController interface {
	RegisterRoutes(r fiber.Router)
	Search(ctx *fiber.Ctx) error
}

type videoController struct {
	videoService service.IVideoService
}

func NewVideoController(videoService service.IVideoService) IVideoController {
	return &videoController{
		videoService: videoService,
	}
}

func (c *videoController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/video/v1")
	h.Get("search", c.Search)
}

func (c *videoController) Search(ctx *fiber.Ctx) error {
	keyword := ctx.Query("q")
	if keyword == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing query parameter q")
	}
	pageSize := ctx.QueryInt("page_size", 10)

	videos, err := c.videoService.Search(ctx.Context(), keyword, pageSize)
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse("Success search videos", videos))
}
