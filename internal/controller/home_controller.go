package controller

import (
	"collabnote-be/internal/pkg/serverutils"
	"collabnote-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IHomeController interface {
	RegisterRoutes(r fiber.Router)
	Home(ctx *fiber.Ctx) error
}

type homeController struct {
	service         service.IWorkspaceService
	defaultTimezone string
}

func NewHomeController(service service.IWorkspaceService, defaultTimezone string) IHomeController {
	return &homeController{
		service:         service,
		defaultTimezone: defaultTimezone,
	}
}

func (c *homeController) RegisterRoutes(r fiber.Router) {
	r.Get("/home", serverutils.JwtMiddleware, c.Home)
}

func (c *homeController) Home(ctx *fiber.Ctx) error {
	now, err := localNow(ctx, c.defaultTimezone)
	if err != nil {
		return err
	}

	res, err := c.service.Home(ctx.UserContext(), serverutils.CallerFrom(ctx), ctx.QueryBool("all"), now)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get home", res))
}
