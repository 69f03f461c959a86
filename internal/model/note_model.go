package model

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	Id           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title        string     `gorm:"type:varchar(255);not null"`
	ParentNoteId *uuid.UUID `gorm:"type:uuid;index"`
	OwnerId      string     `gorm:"type:varchar(320);not null;index"`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime"`
}

func (Note) TableName() string {
	return "notes"
}
