package memory

import (
	"context"
	"sort"

	"collabnote-be/internal/entity"

	"github.com/google/uuid"
)

type roomRepository struct {
	u *unitOfWork
}

func (r *roomRepository) collect(match func(entity.Room) bool) []*entity.Room {
	rooms := make([]*entity.Room, 0)
	r.u.store.read(func(s *state) {
		for _, room := range s.rooms {
			if match(room) {
				room := room
				room.ParentNoteId = copyID(room.ParentNoteId)
				rooms = append(rooms, &room)
			}
		}
	})
	sort.Slice(rooms, func(i, j int) bool {
		if !rooms[i].CreatedAt.Equal(rooms[j].CreatedAt) {
			return rooms[i].CreatedAt.Before(rooms[j].CreatedAt)
		}
		if rooms[i].RoomId != rooms[j].RoomId {
			return rooms[i].RoomId.String() < rooms[j].RoomId.String()
		}
		return rooms[i].UserId < rooms[j].UserId
	})
	return rooms
}

func (r *roomRepository) Save(ctx context.Context, room *entity.Room) error {
	v := *room
	v.ParentNoteId = copyID(room.ParentNoteId)
	return r.u.exec(func(s *state) error {
		s.rooms[roomKey{userId: v.UserId, roomId: v.RoomId}] = v
		return nil
	})
}

func (r *roomRepository) FindOne(ctx context.Context, userId string, roomId uuid.UUID) (*entity.Room, error) {
	var found *entity.Room
	r.u.store.read(func(s *state) {
		if room, ok := s.rooms[roomKey{userId: userId, roomId: roomId}]; ok {
			room.ParentNoteId = copyID(room.ParentNoteId)
			found = &room
		}
	})
	return found, nil
}

func (r *roomRepository) FindByRoomID(ctx context.Context, roomId uuid.UUID) ([]*entity.Room, error) {
	return r.collect(func(room entity.Room) bool { return room.RoomId == roomId }), nil
}

func (r *roomRepository) FindByParentNoteID(ctx context.Context, parentId uuid.UUID) ([]*entity.Room, error) {
	return r.collect(func(room entity.Room) bool {
		return room.ParentNoteId != nil && *room.ParentNoteId == parentId
	}), nil
}

func (r *roomRepository) FindByUser(ctx context.Context, userId string) ([]*entity.Room, error) {
	return r.collect(func(room entity.Room) bool { return room.UserId == userId }), nil
}

func (r *roomRepository) UpdateOne(ctx context.Context, userId string, roomId uuid.UUID, patch entity.RoomPatch) error {
	key := roomKey{userId: userId, roomId: roomId}
	return r.u.exec(func(s *state) error {
		room, ok := s.rooms[key]
		if !ok {
			return entity.ErrNotFound
		}
		patch.Apply(&room)
		s.rooms[key] = room
		return nil
	})
}

func (r *roomRepository) UpdateByRoomIDs(ctx context.Context, roomIds []uuid.UUID, patch entity.RoomPatch) error {
	ids := make(map[uuid.UUID]struct{}, len(roomIds))
	for _, id := range roomIds {
		ids[id] = struct{}{}
	}
	return r.u.exec(func(s *state) error {
		for key, room := range s.rooms {
			if _, ok := ids[room.RoomId]; ok {
				patch.Apply(&room)
				s.rooms[key] = room
			}
		}
		return nil
	})
}

func (r *roomRepository) ReparentChildren(ctx context.Context, parentId uuid.UUID, newParent *uuid.UUID) error {
	target := copyID(newParent)
	return r.u.exec(func(s *state) error {
		for key, room := range s.rooms {
			if room.ParentNoteId != nil && *room.ParentNoteId == parentId {
				room.ParentNoteId = copyID(target)
				s.rooms[key] = room
			}
		}
		return nil
	})
}

func (r *roomRepository) DetachChildren(ctx context.Context, userId string, parentId uuid.UUID) error {
	return r.u.exec(func(s *state) error {
		for key, room := range s.rooms {
			if room.UserId == userId && room.ParentNoteId != nil && *room.ParentNoteId == parentId {
				room.ParentNoteId = nil
				s.rooms[key] = room
			}
		}
		return nil
	})
}

func (r *roomRepository) Delete(ctx context.Context, userId string, roomId uuid.UUID) error {
	return r.u.exec(func(s *state) error {
		delete(s.rooms, roomKey{userId: userId, roomId: roomId})
		return nil
	})
}

func (r *roomRepository) DeleteByRoomID(ctx context.Context, roomId uuid.UUID) error {
	return r.u.exec(func(s *state) error {
		for key := range s.rooms {
			if key.roomId == roomId {
				delete(s.rooms, key)
			}
		}
		return nil
	})
}
