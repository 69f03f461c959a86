package controller

import (
	"collabnote-be/internal/dto"
	"collabnote-be/internal/pkg/serverutils"
	"collabnote-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IReminderController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Grouped(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	ToggleDone(ctx *fiber.Ctx) error
	ToggleImportant(ctx *fiber.Ctx) error
	SetFlags(ctx *fiber.Ctx) error
	ListFlags(ctx *fiber.Ctx) error
	CreateFlag(ctx *fiber.Ctx) error
	SavePushSubscription(ctx *fiber.Ctx) error
}

type reminderController struct {
	service         service.IReminderService
	defaultTimezone string
}

func NewReminderController(service service.IReminderService, defaultTimezone string) IReminderController {
	return &reminderController{
		service:         service,
		defaultTimezone: defaultTimezone,
	}
}

func (c *reminderController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/reminders")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
	h.Post("", c.Create)
	h.Get("/grouped", c.Grouped)
	h.Put("/:id", c.Update)
	h.Delete("/:id", c.Delete)
	h.Patch("/:id/done", c.ToggleDone)
	h.Patch("/:id/important", c.ToggleImportant)
	h.Patch("/:id/flags", c.SetFlags)

	f := r.Group("/flags")
	f.Use(serverutils.JwtMiddleware)
	f.Get("", c.ListFlags)
	f.Post("", c.CreateFlag)

	p := r.Group("/push-subscriptions")
	p.Use(serverutils.JwtMiddleware)
	p.Post("", c.SavePushSubscription)
}

func (c *reminderController) List(ctx *fiber.Ctx) error {
	flagIds, err := queryIDs(ctx, "flags")
	if err != nil {
		return err
	}

	res, err := c.service.List(ctx.UserContext(), serverutils.CallerFrom(ctx), ctx.Query("q"), flagIds)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get reminders", res))
}

func (c *reminderController) Grouped(ctx *fiber.Ctx) error {
	flagIds, err := queryIDs(ctx, "flags")
	if err != nil {
		return err
	}
	now, err := localNow(ctx, c.defaultTimezone)
	if err != nil {
		return err
	}

	res, err := c.service.Grouped(ctx.UserContext(), serverutils.CallerFrom(ctx), ctx.Query("q"), flagIds, now)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get grouped reminders", res))
}

func (c *reminderController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateReminderRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Schedule(ctx.UserContext(), serverutils.CallerFrom(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create reminder", res))
}

func (c *reminderController) Update(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateReminderRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}
	req.Id = id

	res, err := c.service.Update(ctx.UserContext(), serverutils.CallerFrom(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update reminder", res))
}

func (c *reminderController) Delete(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	if err := c.service.Delete(ctx.UserContext(), serverutils.CallerFrom(ctx), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete reminder", nil))
}

func (c *reminderController) ToggleDone(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.ToggleDoneRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}

	if err := c.service.ToggleDone(ctx.UserContext(), serverutils.CallerFrom(ctx), id, *req.IsDone); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success update reminder", nil))
}

func (c *reminderController) ToggleImportant(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.ToggleImportantRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}

	if err := c.service.ToggleImportant(ctx.UserContext(), serverutils.CallerFrom(ctx), id, *req.IsImportant); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success update reminder", nil))
}

func (c *reminderController) SetFlags(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.SetReminderFlagsRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}

	if err := c.service.SetFlags(ctx.UserContext(), serverutils.CallerFrom(ctx), id, req.FlagIds); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success update reminder flags", nil))
}

func (c *reminderController) ListFlags(ctx *fiber.Ctx) error {
	res, err := c.service.ListFlags(ctx.UserContext(), serverutils.CallerFrom(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get flags", res))
}

func (c *reminderController) CreateFlag(ctx *fiber.Ctx) error {
	var req dto.CreateFlagRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.CreateFlag(ctx.UserContext(), serverutils.CallerFrom(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create flag", res))
}

func (c *reminderController) SavePushSubscription(ctx *fiber.Ctx) error {
	var req dto.SavePushSubscriptionRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}

	if err := c.service.SavePushSubscription(ctx.UserContext(), serverutils.CallerFrom(ctx), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success save push subscription", nil))
}
