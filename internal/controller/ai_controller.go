package controller

import (
	"collabnote-be/internal/dto"
	"collabnote-be/internal/pkg/serverutils"
	"collabnote-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAIController interface {
	RegisterRoutes(r fiber.Router)
	Enhance(ctx *fiber.Ctx) error
	Translate(ctx *fiber.Ctx) error
	Ask(ctx *fiber.Ctx) error
}

type aiController struct {
	service service.IAIService
}

func NewAIController(service service.IAIService) IAIController {
	return &aiController{service: service}
}

func (c *aiController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/ai")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/enhance", c.Enhance)
	h.Post("/translate", c.Translate)
	h.Post("/ask", c.Ask)
}

func (c *aiController) Enhance(ctx *fiber.Ctx) error {
	var req dto.EnhanceTextRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Enhance(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success enhance text", res))
}

func (c *aiController) Translate(ctx *fiber.Ctx) error {
	var req dto.TranslateRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Translate(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success translate note", res))
}

func (c *aiController) Ask(ctx *fiber.Ctx) error {
	var req dto.AskRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Ask(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success answer question", res))
}
