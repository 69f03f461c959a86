package model

import (
	"time"

	"github.com/google/uuid"
)

// Room timestamps are written explicitly: archive and quick-access changes must
// not bump updated_at, and an invite copies the owner's updated_at.
type Room struct {
	UserId       string     `gorm:"type:varchar(320);primaryKey"`
	RoomId       uuid.UUID  `gorm:"type:uuid;primaryKey;index:idx_rooms_room_id"`
	Role         string     `gorm:"type:varchar(20);not null"`
	Title        string     `gorm:"type:varchar(255);not null"`
	Icon         string     `gorm:"type:varchar(64)"`
	CoverImage   string     `gorm:"type:text"`
	ParentNoteId *uuid.UUID `gorm:"type:uuid;index:idx_rooms_parent_note_id"`
	Archived     bool       `gorm:"not null"`
	QuickAccess  bool       `gorm:"not null"`
	CreatedAt    time.Time  `gorm:"autoCreateTime:false"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime:false"`
}

func (Room) TableName() string {
	return "rooms"
}
