package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Reminder struct {
	Id           uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       string                      `gorm:"type:varchar(320);not null;index"`
	Message      string                      `gorm:"type:text;not null"`
	ReminderTime time.Time                   `gorm:"not null;index:idx_reminders_due,priority:1"`
	IsDone       bool                        `gorm:"not null"`
	IsSent       bool                        `gorm:"not null;index:idx_reminders_due,priority:2"`
	IsImportant  bool                        `gorm:"not null"`
	FlagIds      datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	NoteId       *uuid.UUID                  `gorm:"type:uuid"`
	NoteTitle    string                      `gorm:"type:varchar(255)"`
	CreatedAt    time.Time                   `gorm:"autoCreateTime"`
	UpdatedAt    time.Time                   `gorm:"autoUpdateTime"`
}

func (Reminder) TableName() string {
	return "reminders"
}

type Flag struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    string    `gorm:"type:varchar(320);not null;index"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Color     string    `gorm:"type:varchar(32);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Flag) TableName() string {
	return "flags"
}
