package mapper

import (
	"collabnote-be/internal/entity"
	"collabnote-be/internal/model"
)

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

func (m *NoteMapper) ToEntity(n *model.Note) *entity.Note {
	if n == nil {
		return nil
	}
	return &entity.Note{
		Id:           n.Id,
		Title:        n.Title,
		ParentNoteId: n.ParentNoteId,
		OwnerId:      n.OwnerId,
		CreatedAt:    n.CreatedAt,
		UpdatedAt:    n.UpdatedAt,
	}
}

func (m *NoteMapper) ToModel(n *entity.Note) *model.Note {
	if n == nil {
		return nil
	}
	return &model.Note{
		Id:           n.Id,
		Title:        n.Title,
		ParentNoteId: n.ParentNoteId,
		OwnerId:      n.OwnerId,
		CreatedAt:    n.CreatedAt,
		UpdatedAt:    n.UpdatedAt,
	}
}
