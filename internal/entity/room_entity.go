package entity

import (
	"time"

	"github.com/google/uuid"
)

type RoomRole string

const (
	RoomRoleOwner  RoomRole = "owner"
	RoomRoleEditor RoomRole = "editor"
)

// Room is one user's access record for one note. Display fields (title, icon,
// cover, parent, archived) are denormalized copies kept in sync by fan-out.
type Room struct {
	UserId       string
	RoomId       uuid.UUID
	Role         RoomRole
	Title        string
	Icon         string
	CoverImage   string
	ParentNoteId *uuid.UUID
	Archived     bool
	QuickAccess  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (r *Room) IsOwner() bool {
	return r.Role == RoomRoleOwner
}

// RoomPatch is a partial update. Nil fields are left untouched.
type RoomPatch struct {
	Title       *string
	Icon        *string
	CoverImage  *string
	Archived    *bool
	QuickAccess *bool
	UpdatedAt   *time.Time
}

// Apply merges the non-nil fields of the patch into r.
func (p RoomPatch) Apply(r *Room) {
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.Icon != nil {
		r.Icon = *p.Icon
	}
	if p.CoverImage != nil {
		r.CoverImage = *p.CoverImage
	}
	if p.Archived != nil {
		r.Archived = *p.Archived
	}
	if p.QuickAccess != nil {
		r.QuickAccess = *p.QuickAccess
	}
	if p.UpdatedAt != nil {
		r.UpdatedAt = *p.UpdatedAt
	}
}

func (p RoomPatch) IsEmpty() bool {
	return p.Title == nil && p.Icon == nil && p.CoverImage == nil &&
		p.Archived == nil && p.QuickAccess == nil && p.UpdatedAt == nil
}
