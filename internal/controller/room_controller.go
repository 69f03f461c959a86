package controller

import (
	"io"
	"net/url"

	"collabnote-be/internal/dto"
	"collabnote-be/internal/pkg/serverutils"
	"collabnote-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const maxCoverSize = 5 << 20

type IRoomController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Grouped(ctx *fiber.Ctx) error
	Tree(ctx *fiber.Ctx) error
	Sidebar(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Users(ctx *fiber.Ctx) error
	Invite(ctx *fiber.Ctx) error
	RemoveUser(ctx *fiber.Ctx) error
	Archive(ctx *fiber.Ctx) error
	Restore(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	RenameTitle(ctx *fiber.Ctx) error
	SetIcon(ctx *fiber.Ctx) error
	RemoveIcon(ctx *fiber.Ctx) error
	SetCover(ctx *fiber.Ctx) error
	RemoveCover(ctx *fiber.Ctx) error
	UploadCover(ctx *fiber.Ctx) error
	ToggleQuickAccess(ctx *fiber.Ctx) error
}

type roomController struct {
	service          service.IRoomService
	workspaceService service.IWorkspaceService
}

func NewRoomController(service service.IRoomService, workspaceService service.IWorkspaceService) IRoomController {
	return &roomController{
		service:          service,
		workspaceService: workspaceService,
	}
}

func (c *roomController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/rooms")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("", c.Grouped)
	h.Get("/tree", c.Tree)
	h.Get("/sidebar", c.Sidebar)
	h.Get("/:id", c.Show)
	h.Delete("/:id", c.Delete)
	h.Get("/:id/users", c.Users)
	h.Post("/:id/invite", c.Invite)
	h.Delete("/:id/users/:email", c.RemoveUser)
	h.Post("/:id/archive", c.Archive)
	h.Post("/:id/restore", c.Restore)
	h.Put("/:id/title", c.RenameTitle)
	h.Put("/:id/icon", c.SetIcon)
	h.Delete("/:id/icon", c.RemoveIcon)
	h.Put("/:id/cover", c.SetCover)
	h.Delete("/:id/cover", c.RemoveCover)
	h.Post("/:id/cover/upload", c.UploadCover)
	h.Put("/:id/quick-access", c.ToggleQuickAccess)
}

func (c *roomController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateRoomRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
	}

	res, err := c.service.Create(ctx.UserContext(), serverutils.CallerFrom(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create note", res))
}

func (c *roomController) Grouped(ctx *fiber.Ctx) error {
	res, err := c.workspaceService.Grouped(ctx.UserContext(), serverutils.CallerFrom(ctx), ctx.Query("sort"), ctx.Query("q"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get notes", res))
}

func (c *roomController) Tree(ctx *fiber.Ctx) error {
	res, err := c.workspaceService.Tree(ctx.UserContext(), serverutils.CallerFrom(ctx), ctx.Query("view"), ctx.Query("sort"), ctx.Query("q"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get note tree", res))
}

func (c *roomController) Sidebar(ctx *fiber.Ctx) error {
	res, err := c.workspaceService.Sidebar(ctx.UserContext(), serverutils.CallerFrom(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get sidebar", res))
}

func (c *roomController) Show(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.Show(ctx.UserContext(), serverutils.CallerFrom(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show note", res))
}

func (c *roomController) Users(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.Users(ctx.UserContext(), serverutils.CallerFrom(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get note users", res))
}

func (c *roomController) Invite(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.InviteUserRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}

	caller := serverutils.CallerFrom(ctx)
	if err := c.service.Invite(ctx.UserContext(), caller, id, req.Email, caller); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success invite user", nil))
}

func (c *roomController) RemoveUser(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	email, err := url.PathUnescape(ctx.Params("email"))
	if err != nil || email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid email")
	}

	if err := c.service.RemoveUser(ctx.UserContext(), serverutils.CallerFrom(ctx), id, email); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success remove user", nil))
}

func (c *roomController) Archive(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	if err := c.service.Archive(ctx.UserContext(), serverutils.CallerFrom(ctx), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success move note to trash", nil))
}

func (c *roomController) Restore(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	if err := c.service.Restore(ctx.UserContext(), serverutils.CallerFrom(ctx), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success restore note", nil))
}

func (c *roomController) Delete(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	if err := c.service.PermanentDelete(ctx.UserContext(), serverutils.CallerFrom(ctx), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete note", nil))
}

func (c *roomController) RenameTitle(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.RenameRoomRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}

	if err := c.service.RenameTitle(ctx.UserContext(), serverutils.CallerFrom(ctx), id, req.Title); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success rename note", nil))
}

func (c *roomController) SetIcon(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.SetIconRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}

	if err := c.service.SetIcon(ctx.UserContext(), serverutils.CallerFrom(ctx), id, req.Icon); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success set icon", nil))
}

func (c *roomController) RemoveIcon(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	if err := c.service.RemoveIcon(ctx.UserContext(), serverutils.CallerFrom(ctx), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success remove icon", nil))
}

func (c *roomController) SetCover(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.SetCoverRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}

	if err := c.service.SetCover(ctx.UserContext(), serverutils.CallerFrom(ctx), id, req.CoverImage); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success set cover", dto.SetCoverResponse{CoverImage: req.CoverImage}))
}

func (c *roomController) RemoveCover(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	if err := c.service.RemoveCover(ctx.UserContext(), serverutils.CallerFrom(ctx), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success remove cover", nil))
}

func (c *roomController) UploadCover(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	fh, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "file is required")
	}
	if fh.Size > maxCoverSize {
		return fiber.NewError(fiber.StatusRequestEntityTooLarge, "file exceeds 5MB")
	}

	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxCoverSize+1))
	if err != nil {
		return err
	}

	res, err := c.service.UploadCover(ctx.UserContext(), serverutils.CallerFrom(ctx), id, fh.Filename, fh.Header.Get("Content-Type"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success upload cover", res))
}

func (c *roomController) ToggleQuickAccess(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.ToggleQuickAccessRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}

	if err := c.service.ToggleQuickAccess(ctx.UserContext(), serverutils.CallerFrom(ctx), id, *req.QuickAccess); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success update quick access", nil))
}
