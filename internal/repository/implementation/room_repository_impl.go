package implementation

import (
	"context"
	"errors"

	"collabnote-be/internal/entity"
	"collabnote-be/internal/mapper"
	"collabnote-be/internal/model"
	"collabnote-be/internal/repository/contract"
	"collabnote-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoomRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RoomMapper
}

func NewRoomRepository(db *gorm.DB) contract.RoomRepository {
	return &RoomRepositoryImpl{
		db:     db,
		mapper: mapper.NewRoomMapper(),
	}
}

func (r *RoomRepositoryImpl) findAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Room, error) {
	var models []*model.Room
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *RoomRepositoryImpl) Save(ctx context.Context, room *entity.Room) error {
	m := r.mapper.ToModel(room)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "room_id"}},
			UpdateAll: true,
		}).
		Create(m).Error
}

func (r *RoomRepositoryImpl) FindOne(ctx context.Context, userId string, roomId uuid.UUID) (*entity.Room, error) {
	var m model.Room
	query := applySpecifications(r.db.WithContext(ctx),
		specification.UserOwnedBy{UserID: userId},
		specification.ByRoomID{RoomID: roomId},
	)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *RoomRepositoryImpl) FindByRoomID(ctx context.Context, roomId uuid.UUID) ([]*entity.Room, error) {
	return r.findAll(ctx, specification.ByRoomID{RoomID: roomId}, specification.OrderBy{Field: "created_at"})
}

func (r *RoomRepositoryImpl) FindByParentNoteID(ctx context.Context, parentId uuid.UUID) ([]*entity.Room, error) {
	return r.findAll(ctx, specification.ByParentNoteID{ParentID: &parentId})
}

func (r *RoomRepositoryImpl) FindByUser(ctx context.Context, userId string) ([]*entity.Room, error) {
	return r.findAll(ctx, specification.UserOwnedBy{UserID: userId})
}

func (r *RoomRepositoryImpl) UpdateOne(ctx context.Context, userId string, roomId uuid.UUID, patch entity.RoomPatch) error {
	if patch.IsEmpty() {
		return nil
	}
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Room{}),
		specification.UserOwnedBy{UserID: userId},
		specification.ByRoomID{RoomID: roomId},
	)
	result := query.UpdateColumns(r.mapper.ToColumns(patch))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *RoomRepositoryImpl) UpdateByRoomIDs(ctx context.Context, roomIds []uuid.UUID, patch entity.RoomPatch) error {
	if len(roomIds) == 0 || patch.IsEmpty() {
		return nil
	}
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Room{}),
		specification.ByRoomIDs{RoomIDs: roomIds},
	)
	return query.UpdateColumns(r.mapper.ToColumns(patch)).Error
}

func (r *RoomRepositoryImpl) ReparentChildren(ctx context.Context, parentId uuid.UUID, newParent *uuid.UUID) error {
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Room{}),
		specification.ByParentNoteID{ParentID: &parentId},
	)
	return query.UpdateColumn("parent_note_id", newParent).Error
}

func (r *RoomRepositoryImpl) DetachChildren(ctx context.Context, userId string, parentId uuid.UUID) error {
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Room{}),
		specification.UserOwnedBy{UserID: userId},
		specification.ByParentNoteID{ParentID: &parentId},
	)
	return query.UpdateColumn("parent_note_id", nil).Error
}

func (r *RoomRepositoryImpl) Delete(ctx context.Context, userId string, roomId uuid.UUID) error {
	query := applySpecifications(r.db.WithContext(ctx),
		specification.UserOwnedBy{UserID: userId},
		specification.ByRoomID{RoomID: roomId},
	)
	return query.Delete(&model.Room{}).Error
}

func (r *RoomRepositoryImpl) DeleteByRoomID(ctx context.Context, roomId uuid.UUID) error {
	query := applySpecifications(r.db.WithContext(ctx), specification.ByRoomID{RoomID: roomId})
	return query.Delete(&model.Room{}).Error
}
