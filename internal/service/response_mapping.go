package service

import (
	"collabnote-be/internal/dto"
	"collabnote-be/internal/entity"
	"collabnote-be/internal/hierarchy"
)

func toRoomResponse(r *entity.Room) dto.RoomResponse {
	return dto.RoomResponse{
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

func toRoomResponses(rooms []*entity.Room) []dto.RoomResponse {
	out := make([]dto.RoomResponse, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, toRoomResponse(r))
	}
	return out
}

func toNodeResponses(nodes []*hierarchy.Node) []*dto.RoomNodeResponse {
	out := make([]*dto.RoomNodeResponse, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, &dto.RoomNodeResponse{
			RoomResponse: toRoomResponse(n.Room),
			Children:     toNodeResponses(n.Children),
		})
	}
	return out
}

func toReminderResponse(r *entity.Reminder) dto.ReminderResponse {
	return dto.ReminderResponse{
		Id:           r.Id,
		Message:      r.Message,
		ReminderTime: r.ReminderTime,
		IsDone:       r.IsDone,
		IsSent:       r.IsSent,
		IsImportant:  r.IsImportant,
		FlagIds:      r.FlagIds,
		NoteId:       r.NoteId,
		NoteTitle:    r.NoteTitle,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func toReminderResponses(reminders []*entity.Reminder) []dto.ReminderResponse {
	out := make([]dto.ReminderResponse, 0, len(reminders))
	for _, r := range reminders {
		out = append(out, toReminderResponse(r))
	}
	return out
}

func toFlagResponse(f *entity.Flag) dto.FlagResponse {
	return dto.FlagResponse{
		Id:        f.Id,
		Name:      f.Name,
		Color:     f.Color,
		CreatedAt: f.CreatedAt,
	}
}
