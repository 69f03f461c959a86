package contract

import (
	"context"
	"time"

	"collabnote-be/internal/entity"

	"github.com/google/uuid"
)

type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	// FindByID returns nil, nil when the note does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Note, error)
	UpdateTitle(ctx context.Context, id uuid.UUID, title string, at time.Time) error
	// ReparentChildren moves every note whose parent is parentId under newParent.
	ReparentChildren(ctx context.Context, parentId uuid.UUID, newParent *uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}
