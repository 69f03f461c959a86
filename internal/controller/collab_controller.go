package controller

import (
	"collabnote-be/internal/dto"
	"collabnote-be/internal/pkg/serverutils"
	"collabnote-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICollabController interface {
	RegisterRoutes(r fiber.Router)
	Authorize(ctx *fiber.Ctx) error
}

type collabController struct {
	service service.IRoomService
}

func NewCollabController(service service.IRoomService) ICollabController {
	return &collabController{service: service}
}

func (c *collabController) RegisterRoutes(r fiber.Router) {
	r.Post("/auth-endpoint", serverutils.JwtMiddleware, c.Authorize)
}

// Authorize issues the token the collaboration provider exchanges for a
// session in one room.
func (c *collabController) Authorize(ctx *fiber.Ctx) error {
	var req dto.CollabAuthRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.AuthorizeCollaboration(ctx.UserContext(), serverutils.CallerFrom(ctx), req.Room)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success authorize room", res))
}
