package contract

import (
	"context"

	"collabnote-be/internal/entity"

	"github.com/google/uuid"
)

type RoomRepository interface {
	// Save upserts on (user_id, room_id).
	Save(ctx context.Context, room *entity.Room) error
	// FindOne returns nil, nil when the user holds no record for the room.
	FindOne(ctx context.Context, userId string, roomId uuid.UUID) (*entity.Room, error)
	FindByRoomID(ctx context.Context, roomId uuid.UUID) ([]*entity.Room, error)
	// FindByParentNoteID queries across every user.
	FindByParentNoteID(ctx context.Context, parentId uuid.UUID) ([]*entity.Room, error)
	FindByUser(ctx context.Context, userId string) ([]*entity.Room, error)
	UpdateOne(ctx context.Context, userId string, roomId uuid.UUID, patch entity.RoomPatch) error
	// UpdateByRoomIDs applies the patch to every user's record of each room.
	UpdateByRoomIDs(ctx context.Context, roomIds []uuid.UUID, patch entity.RoomPatch) error
	// ReparentChildren moves every user's records under parentId to newParent.
	ReparentChildren(ctx context.Context, parentId uuid.UUID, newParent *uuid.UUID) error
	// DetachChildren clears the parent of one user's records under parentId.
	DetachChildren(ctx context.Context, userId string, parentId uuid.UUID) error
	Delete(ctx context.Context, userId string, roomId uuid.UUID) error
	DeleteByRoomID(ctx context.Context, roomId uuid.UUID) error
}
