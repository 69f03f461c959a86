package contract

import (
	"context"
	"time"

	"collabnote-be/internal/entity"

	"github.com/google/uuid"
)

type ReminderRepository interface {
	Create(ctx context.Context, reminder *entity.Reminder) error
	FindOne(ctx context.Context, userId string, id uuid.UUID) (*entity.Reminder, error)
	// FindByUser orders by reminder time ascending.
	FindByUser(ctx context.Context, userId string) ([]*entity.Reminder, error)
	// Update rewrites every column. Only the re-arming edit uses it.
	Update(ctx context.Context, reminder *entity.Reminder) error
	// UpdateFields writes the non-nil patch fields of the caller's reminder;
	// ErrNotFound when no row matches.
	UpdateFields(ctx context.Context, userId string, id uuid.UUID, patch entity.ReminderPatch) error
	Delete(ctx context.Context, userId string, id uuid.UUID) error
	// FindDue returns unsent reminders of every user whose time is at or before now.
	FindDue(ctx context.Context, now time.Time) ([]*entity.Reminder, error)
	MarkSent(ctx context.Context, ids []uuid.UUID) error
}

type FlagRepository interface {
	Create(ctx context.Context, flag *entity.Flag) error
	FindByUser(ctx context.Context, userId string) ([]*entity.Flag, error)
}
