package entity

import (
	"time"

	"github.com/google/uuid"
)

type Reminder struct {
	Id           uuid.UUID
	UserId       string
	Message      string
	ReminderTime time.Time
	IsDone       bool
	IsSent       bool
	IsImportant  bool
	FlagIds      []uuid.UUID
	NoteId       *uuid.UUID
	NoteTitle    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasFlags reports whether every id in flagIds is attached to the reminder.
func (r *Reminder) HasFlags(flagIds []uuid.UUID) bool {
	for _, want := range flagIds {
		found := false
		for _, have := range r.FlagIds {
			if have == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// ReminderPatch updates single fields. It never carries IsSent, which only
// the sweep sets.
type ReminderPatch struct {
	IsDone      *bool
	IsImportant *bool
	FlagIds     *[]uuid.UUID
	UpdatedAt   *time.Time
}

func (p ReminderPatch) Apply(r *Reminder) {
	if p.IsDone != nil {
		r.IsDone = *p.IsDone
	}
	if p.IsImportant != nil {
		r.IsImportant = *p.IsImportant
	}
	if p.FlagIds != nil {
		r.FlagIds = append([]uuid.UUID{}, (*p.FlagIds)...)
	}
	if p.UpdatedAt != nil {
		r.UpdatedAt = *p.UpdatedAt
	}
}

func (p ReminderPatch) IsEmpty() bool {
	return p.IsDone == nil && p.IsImportant == nil && p.FlagIds == nil && p.UpdatedAt == nil
}

type Flag struct {
	Id        uuid.UUID
	UserId    string
	Name      string
	Color     string
	CreatedAt time.Time
}
