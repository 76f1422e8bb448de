package controller

import (
	"github.com/gofiber/fiber/v2"

	"miku-chat-be/internal/pkg/serverutils"
	"miku-chat-be/internal/service"
)

type INewsController interface {
	RegisterRoutes(r fiber.Router)
	Latest(ctx *fiber.Ctx) error
}

type newsController struct {
	newsService service.INewsService
}

func NewNewsController(newsService service.INewsService) INewsController {
	return &newsController{
		newsService: newsService,
	}
}

func (c *newsController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/news/v1")
	h.Get("", c.Latest)
}

func (c *newsController) Latest(ctx *fiber.Ctx) error {
	source := ctx.Query("source", "all")
	items := c.newsService.Latest(ctx.Context(), source)
	return ctx.JSON(serverutils.SuccessResponse("Success fetch news", items))
}
