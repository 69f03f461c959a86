package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByRoomID struct {
	RoomID uuid.UUID
}

func (s ByRoomID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("room_id = ?", s.RoomID)
}

type ByRoomIDs struct {
	RoomIDs []uuid.UUID
}

func (s ByRoomIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("room_id IN ?", s.RoomIDs)
}

// ByParentNoteID matches parent_note_id; nil matches roots.
type ByParentNoteID struct {
	ParentID *uuid.UUID
}

func (s ByParentNoteID) Apply(db *gorm.DB) *gorm.DB {
	if s.ParentID == nil {
		return db.Where("parent_note_id IS NULL")
	}
	return db.Where("parent_note_id = ?", s.ParentID)
}

// DueAt matches reminders that are unsent and scheduled at or before Now.
type DueAt struct {
	Now time.Time
}

func (s DueAt) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("reminder_time <= ? AND is_sent = ?", s.Now, false)
}

type ByEndpoint struct {
	Endpoint string
}

func (s ByEndpoint) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("endpoint = ?", s.Endpoint)
}
