package mapper

import (
	"collabnote-be/internal/entity"
	"collabnote-be/internal/model"
)

type RoomMapper struct{}

func NewRoomMapper() *RoomMapper {
	return &RoomMapper{}
}

func (m *RoomMapper) ToEntity(r *model.Room) *entity.Room {
	if r == nil {
		return nil
	}
	return &entity.Room{
		UserId:       r.UserId,
		RoomId:       r.RoomId,
		Role:         entity.RoomRole(r.Role),
		Title:        r.Title,
		Icon:         r.Icon,
		CoverImage:   r.CoverImage,
		ParentNoteId: r.ParentNoteId,
		Archived:     r.Archived,
		QuickAccess:  r.QuickAccess,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func (m *RoomMapper) ToModel(r *entity.Room) *model.Room {
	if r == nil {
		return nil
	}
	return &model.Room{
		UserId:       r.UserId,
		RoomId:       r.RoomId,
		Role:         string(r.Role),
		Title:        r.Title,
		Icon:         r.Icon,
		CoverImage:   r.CoverImage,
		ParentNoteId: r.ParentNoteId,
		Archived:     r.Archived,
		QuickAccess:  r.QuickAccess,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func (m *RoomMapper) ToEntities(rooms []*model.Room) []*entity.Room {
	entities := make([]*entity.Room, len(rooms))
	for i, r := range rooms {
		entities[i] = m.ToEntity(r)
	}
	return entities
}

// ToColumns converts a patch into a column map for UpdateColumns.
func (m *RoomMapper) ToColumns(p entity.RoomPatch) map[string]interface{} {
	cols := make(map[string]interface{})
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.Icon != nil {
		cols["icon"] = *p.Icon
	}
	if p.CoverImage != nil {
		cols["cover_image"] = *p.CoverImage
	}
	if p.Archived != nil {
		cols["archived"] = *p.Archived
	}
	if p.QuickAccess != nil {
		cols["quick_access"] = *p.QuickAccess
	}
	if p.UpdatedAt != nil {
		cols["updated_at"] = *p.UpdatedAt
	}
	return cols
}
