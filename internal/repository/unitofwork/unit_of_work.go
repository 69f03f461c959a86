package unitofwork

import (
	"context"

	"collabnote-be/internal/repository/contract"
)

// UnitOfWork groups repository calls. Writes issued between Begin and Commit
// land together or not at all.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	NoteRepository() contract.NoteRepository
	RoomRepository() contract.RoomRepository
	ReminderRepository() contract.ReminderRepository
	FlagRepository() contract.FlagRepository
	PushSubscriptionRepository() contract.PushSubscriptionRepository
	NotificationRepository() contract.NotificationRepository
}
