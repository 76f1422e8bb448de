package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"miku-chat-be/internal/dto"
	"miku-chat-be/internal/pkg/serverutils"
	"miku-chat-be/internal/service"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Send(ctx *fiber.Ctx) error
	ListSessions(ctx *fiber.Ctx) error
	GetMessages(ctx *fiber.Ctx) error
	RenameSession(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Send)
	h.Get("sessions", c.ListSessions)
	h.Get("sessions/:id/messages", c.GetMessages)
	h.Put("sessions/:id/rename", c.RenameSession)
	h.Delete("sessions/:id", c.DeleteSession)
}

func (c *chatController) Send(ctx *fiber.Ctx) error {
	username := ctx.Locals("username").(string)

	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.SendChat(ctx.Context(), username, &req)
	if err != nil {
		return mapChatError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send chat", res))
}

func (c *chatController) ListSessions(ctx *fiber.Ctx) error {
	username := ctx.Locals("username").(string)

	res, err := c.chatService.ListSessions(ctx.Context(), username)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list sessions", res))
}

func (c *chatController) GetMessages(ctx *fiber.Ctx) error {
	username := ctx.Locals("username").(string)
	sessionId := ctx.Params("id")

	res, err := c.chatService.GetMessages(ctx.Context(), username, sessionId)
	if err != nil {
		return mapChatError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get messages", res))
}

func (c *chatController) RenameSession(ctx *fiber.Ctx) error {
	username := ctx.Locals("username").(string)
	sessionId := ctx.Params("id")

	var req dto.RenameSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.chatService.RenameSession(ctx.Context(), username, sessionId, req.Name); err != nil {
		return mapChatError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success rename session", nil))
}

func (c *chatController) DeleteSession(ctx *fiber.Ctx) error {
	username := ctx.Locals("username").(string)
	sessionId := ctx.Params("id")

	if err := c.chatService.DeleteSession(ctx.Context(), username, sessionId); err != nil {
		return mapChatError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete session", nil))
}

func mapChatError(err error) error {
	if errors.Is(err, service.ErrSessionNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "session not found")
	}
	return err
}
