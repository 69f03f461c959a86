package dto

import "github.com/google/uuid"

const (
	RoomChangeCreated  = "created"
	RoomChangeShared   = "shared"
	RoomChangeRemoved  = "removed"
	RoomChangeArchived = "archived"
	RoomChangeRestored = "restored"
	RoomChangeDeleted  = "deleted"
	RoomChangeUpdated  = "updated"
)

// PublishRoomChangedMessage is the payload of the room.changed topic.
type PublishRoomChangedMessage struct {
	RoomId  uuid.UUID `json:"room_id"`
	Kind    string    `json:"kind"`
	UserIds []string  `json:"user_ids"`
}

// RoomsChangedFrame is pushed to clients, which re-query their listings.
type RoomsChangedFrame struct {
	RoomId uuid.UUID `json:"room_id"`
	Kind   string    `json:"kind"`
}
