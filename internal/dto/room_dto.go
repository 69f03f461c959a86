package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	ParentNoteId *uuid.UUID `json:"parent_note_id"`
}

type CreateRoomResponse struct {
	Id uuid.UUID `json:"id"`
}

type RoomResponse struct {
	RoomId       uuid.UUID  `json:"room_id"`
	Role         string     `json:"role"`
	Title        string     `json:"title"`
	Icon         string     `json:"icon"`
	CoverImage   string     `json:"cover_image"`
	ParentNoteId *uuid.UUID `json:"parent_note_id"`
	Archived     bool       `json:"archived"`
	QuickAccess  bool       `json:"quick_access"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type RoomNodeResponse struct {
	RoomResponse
	Children []*RoomNodeResponse `json:"children"`
}

type RoomTreeResponse struct {
	View  string              `json:"view"`
	Sort  string              `json:"sort"`
	Count int                 `json:"count"`
	Nodes []*RoomNodeResponse `json:"nodes"`
}

// GroupedRoomsResponse backs the All Notes page.
type GroupedRoomsResponse struct {
	Owner  []RoomResponse `json:"owner"`
	Editor []RoomResponse `json:"editor"`
}

type SidebarResponse struct {
	QuickAccess []RoomResponse      `json:"quick_access"`
	Owner       []*RoomNodeResponse `json:"owner"`
	Editor      []*RoomNodeResponse `json:"editor"`
}

// BreadcrumbItem is one ancestor on the path from the root to the note.
type BreadcrumbItem struct {
	Id    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

type RoomUserResponse struct {
	UserId string `json:"user_id"`
	Role   string `json:"role"`
}

type ShowRoomResponse struct {
	Room       RoomResponse       `json:"room"`
	Breadcrumb []BreadcrumbItem   `json:"breadcrumb"`
	Users      []RoomUserResponse `json:"users"`
}

type InviteUserRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type RenameRoomRequest struct {
	Title string `json:"title" validate:"max=255"`
}

type SetIconRequest struct {
	Icon string `json:"icon" validate:"required,max=64"`
}

type SetCoverRequest struct {
	CoverImage string `json:"cover_image" validate:"required,url"`
}

type SetCoverResponse struct {
	CoverImage string `json:"cover_image"`
}

type ToggleQuickAccessRequest struct {
	QuickAccess *bool `json:"quick_access" validate:"required"`
}

type CollabAuthRequest struct {
	Room uuid.UUID `json:"room" validate:"required"`
}

type CollabAuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type HomeResponse struct {
	Pinned               []RoomResponse     `json:"pinned"`
	Recent               []RoomResponse     `json:"recent"`
	MissedRemindersCount int                `json:"missed_reminders_count"`
	UpcomingReminders    []ReminderResponse `json:"upcoming_reminders"`
}
