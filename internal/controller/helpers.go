package controller

import (
	"strings"
	"time"

	"collabnote-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func paramID(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name)
	}
	return id, nil
}

// queryIDs parses a comma separated list of uuids such as ?flags=a,b.
func queryIDs(ctx *fiber.Ctx, name string) ([]uuid.UUID, error) {
	raw := strings.TrimSpace(ctx.Query(name))
	if raw == "" {
		return nil, nil
	}
	ids := make([]uuid.UUID, 0)
	for _, part := range strings.Split(raw, ",") {
		id, err := uuid.Parse(strings.TrimSpace(part))
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// bindBody decodes the request body into req and validates it.
func bindBody(ctx *fiber.Ctx, req interface{}) error {
	if err := ctx.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	return serverutils.ValidateRequest(req)
}

// localNow returns the current time in the ?tz= location, falling back to
// fallback and then UTC.
func localNow(ctx *fiber.Ctx, fallback string) (time.Time, error) {
	name := ctx.Query("tz", fallback)
	if name == "" {
		return time.Now().UTC(), nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Invalid tz")
	}
	return time.Now().In(loc), nil
}
