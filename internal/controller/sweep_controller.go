package controller

import (
	"crypto/subtle"
	"time"

	"collabnote-be/internal/pkg/serverutils"
	"collabnote-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISweepController interface {
	RegisterRoutes(r fiber.Router)
	Check(ctx *fiber.Ctx) error
}

type sweepController struct {
	service    service.ISweepService
	cronSecret string
}

func NewSweepController(service service.ISweepService, cronSecret string) ISweepController {
	return &sweepController{
		service:    service,
		cronSecret: cronSecret,
	}
}

// RegisterRoutes must run before the reminder routes so the cron bearer, not
// the user JWT, guards the check endpoint.
func (c *sweepController) RegisterRoutes(r fiber.Router) {
	r.Get("/reminders/check", c.Check)
}

func (c *sweepController) authorized(ctx *fiber.Ctx) bool {
	if c.cronSecret == "" {
		return false
	}
	want := "Bearer " + c.cronSecret
	got := ctx.Get(fiber.HeaderAuthorization)
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

func (c *sweepController) Check(ctx *fiber.Ctx) error {
	if !c.authorized(ctx) {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Unauthorized"))
	}

	res, err := c.service.Run(ctx.UserContext(), time.Now())
	if err != nil {
		// detail is logged by the service
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(fiber.StatusInternalServerError, "Internal Server Error"))
	}
	return ctx.JSON(serverutils.SuccessResponse("Sweep finished", res))
}
