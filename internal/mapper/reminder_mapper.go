package mapper

import (
	"collabnote-be/internal/entity"
	"collabnote-be/internal/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ReminderMapper struct{}

func NewReminderMapper() *ReminderMapper {
	return &ReminderMapper{}
}

func (m *ReminderMapper) ToEntity(r *model.Reminder) *entity.Reminder {
	if r == nil {
		return nil
	}
	flagIds := make([]uuid.UUID, 0, len(r.FlagIds))
	for _, raw := range r.FlagIds {
		// Unparseable ids are dropped rather than failing the whole read.
		if id, err := uuid.Parse(raw); err == nil {
			flagIds = append(flagIds, id)
		}
	}
	return &entity.Reminder{
		Id:           r.Id,
		UserId:       r.UserId,
		Message:      r.Message,
		ReminderTime: r.ReminderTime,
		IsDone:       r.IsDone,
		IsSent:       r.IsSent,
		IsImportant:  r.IsImportant,
		FlagIds:      flagIds,
		NoteId:       r.NoteId,
		NoteTitle:    r.NoteTitle,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func (m *ReminderMapper) ToModel(r *entity.Reminder) *model.Reminder {
	if r == nil {
		return nil
	}
	flagIds := make(datatypes.JSONSlice[string], 0, len(r.FlagIds))
	for _, id := range r.FlagIds {
		flagIds = append(flagIds, id.String())
	}
	return &model.Reminder{
		Id:           r.Id,
		UserId:       r.UserId,
		Message:      r.Message,
		ReminderTime: r.ReminderTime,
		IsDone:       r.IsDone,
		IsSent:       r.IsSent,
		IsImportant:  r.IsImportant,
		FlagIds:      flagIds,
		NoteId:       r.NoteId,
		NoteTitle:    r.NoteTitle,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// ToColumns converts a patch into a column map for UpdateColumns.
func (m *ReminderMapper) ToColumns(p entity.ReminderPatch) map[string]interface{} {
	cols := make(map[string]interface{})
	if p.IsDone != nil {
		cols["is_done"] = *p.IsDone
	}
	if p.IsImportant != nil {
		cols["is_important"] = *p.IsImportant
	}
	if p.FlagIds != nil {
		flagIds := make(datatypes.JSONSlice[string], 0, len(*p.FlagIds))
		for _, id := range *p.FlagIds {
			flagIds = append(flagIds, id.String())
		}
		cols["flag_ids"] = flagIds
	}
	if p.UpdatedAt != nil {
		cols["updated_at"] = *p.UpdatedAt
	}
	return cols
}

func (m *ReminderMapper) ToEntities(reminders []*model.Reminder) []*entity.Reminder {
	entities := make([]*entity.Reminder, len(reminders))
	for i, r := range reminders {
		entities[i] = m.ToEntity(r)
	}
	return entities
}

func (m *ReminderMapper) FlagToEntity(f *model.Flag) *entity.Flag {
	if f == nil {
		return nil
	}
	return &entity.Flag{
		Id:        f.Id,
		UserId:    f.UserId,
		Name:      f.Name,
		Color:     f.Color,
		CreatedAt: f.CreatedAt,
	}
}

func (m *ReminderMapper) FlagToModel(f *entity.Flag) *model.Flag {
	if f == nil {
		return nil
	}
	return &model.Flag{
		Id:        f.Id,
		UserId:    f.UserId,
		Name:      f.Name,
		Color:     f.Color,
		CreatedAt: f.CreatedAt,
	}
}
