package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateReminderRequest struct {
	ReminderTime time.Time  `json:"reminder_time" validate:"required"`
	Message      string     `json:"message" validate:"required,max=1000"`
	NoteId       *uuid.UUID `json:"note_id"`
	NoteTitle    string     `json:"note_title" validate:"max=255"`
}

type UpdateReminderRequest struct {
	Id           uuid.UUID
	ReminderTime time.Time `json:"reminder_time" validate:"required"`
	Message      string    `json:"message" validate:"required,max=1000"`
}

type ToggleDoneRequest struct {
	IsDone *bool `json:"is_done" validate:"required"`
}

type ToggleImportantRequest struct {
	IsImportant *bool `json:"is_important" validate:"required"`
}

type SetReminderFlagsRequest struct {
	FlagIds []uuid.UUID `json:"flag_ids"`
}

type ReminderResponse struct {
	Id           uuid.UUID   `json:"id"`
	Message      string      `json:"message"`
	ReminderTime time.Time   `json:"reminder_time"`
	IsDone       bool        `json:"is_done"`
	IsSent       bool        `json:"is_sent"`
	IsImportant  bool        `json:"is_important"`
	FlagIds      []uuid.UUID `json:"flag_ids"`
	NoteId       *uuid.UUID  `json:"note_id"`
	NoteTitle    string      `json:"note_title,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

type GroupedRemindersResponse struct {
	Missed    []ReminderResponse `json:"missed"`
	Today     []ReminderResponse `json:"today"`
	Tomorrow  []ReminderResponse `json:"tomorrow"`
	ThisWeek  []ReminderResponse `json:"this_week"`
	Later     []ReminderResponse `json:"later"`
	Completed []ReminderResponse `json:"completed"`
}

type CreateFlagRequest struct {
	Name  string `json:"name" validate:"required,max=50"`
	Color string `json:"color" validate:"required,max=32"`
}

type FlagResponse struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

type PushSubscriptionKeys struct {
	P256dh string `json:"p256dh" validate:"required"`
	Auth   string `json:"auth" validate:"required"`
}

// SavePushSubscriptionRequest mirrors the browser's PushSubscription.toJSON().
type SavePushSubscriptionRequest struct {
	Endpoint string               `json:"endpoint" validate:"required,url"`
	Keys     PushSubscriptionKeys `json:"keys"`
}

type SweepResponse struct {
	Due        int `json:"due"`
	Sent       int `json:"sent"`
	Deliveries int `json:"deliveries"`
	Failures   int `json:"failures"`
	Pruned     int `json:"pruned"`
}
