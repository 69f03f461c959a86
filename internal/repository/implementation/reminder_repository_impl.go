package implementation

import (
	"context"
	"errors"
	"time"

	"collabnote-be/internal/entity"
	"collabnote-be/internal/mapper"
	"collabnote-be/internal/model"
	"collabnote-be/internal/repository/contract"
	"collabnote-be/internal/repository/scope"
	"collabnote-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReminderRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ReminderMapper
}

func NewReminderRepository(db *gorm.DB) contract.ReminderRepository {
	return &ReminderRepositoryImpl{
		db:     db,
		mapper: mapper.NewReminderMapper(),
	}
}

func (r *ReminderRepositoryImpl) Create(ctx context.Context, reminder *entity.Reminder) error {
	m := r.mapper.ToModel(reminder)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*reminder = *r.mapper.ToEntity(m)
	return nil
}

func (r *ReminderRepositoryImpl) FindOne(ctx context.Context, userId string, id uuid.UUID) (*entity.Reminder, error) {
	var m model.Reminder
	query := applySpecifications(r.db.WithContext(ctx),
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ReminderRepositoryImpl) FindByUser(ctx context.Context, userId string) ([]*entity.Reminder, error) {
	var models []*model.Reminder
	query := applySpecifications(r.db.WithContext(ctx).Scopes(scope.OrderByReminderTimeAsc),
		specification.UserOwnedBy{UserID: userId},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ReminderRepositoryImpl) Update(ctx context.Context, reminder *entity.Reminder) error {
	m := r.mapper.ToModel(reminder)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*reminder = *r.mapper.ToEntity(m)
	return nil
}

func (r *ReminderRepositoryImpl) UpdateFields(ctx context.Context, userId string, id uuid.UUID, patch entity.ReminderPatch) error {
	if patch.IsEmpty() {
		return nil
	}
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Reminder{}),
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
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

func (r *ReminderRepositoryImpl) Delete(ctx context.Context, userId string, id uuid.UUID) error {
	query := applySpecifications(r.db.WithContext(ctx),
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	result := query.Delete(&model.Reminder{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *ReminderRepositoryImpl) FindDue(ctx context.Context, now time.Time) ([]*entity.Reminder, error) {
	var models []*model.Reminder
	query := applySpecifications(r.db.WithContext(ctx).Scopes(scope.OrderByReminderTimeAsc),
		specification.DueAt{Now: now},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ReminderRepositoryImpl) MarkSent(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&model.Reminder{}).
		Where("id IN ?", ids).
		UpdateColumn("is_sent", true).Error
}

type FlagRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ReminderMapper
}

func NewFlagRepository(db *gorm.DB) contract.FlagRepository {
	return &FlagRepositoryImpl{
		db:     db,
		mapper: mapper.NewReminderMapper(),
	}
}

func (r *FlagRepositoryImpl) Create(ctx context.Context, flag *entity.Flag) error {
	m := r.mapper.FlagToModel(flag)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*flag = *r.mapper.FlagToEntity(m)
	return nil
}

func (r *FlagRepositoryImpl) FindByUser(ctx context.Context, userId string) ([]*entity.Flag, error) {
	var models []*model.Flag
	query := applySpecifications(r.db.WithContext(ctx),
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at"},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	flags := make([]*entity.Flag, len(models))
	for i, m := range models {
		flags[i] = r.mapper.FlagToEntity(m)
	}
	return flags, nil
}
