package implementation

import (
	"context"

	"collabnote-be/internal/entity"
	"collabnote-be/internal/mapper"
	"collabnote-be/internal/model"
	"collabnote-be/internal/repository/contract"
	"collabnote-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PushSubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PushSubscriptionMapper
}

func NewPushSubscriptionRepository(db *gorm.DB) contract.PushSubscriptionRepository {
	return &PushSubscriptionRepositoryImpl{
		db:     db,
		mapper: mapper.NewPushSubscriptionMapper(),
	}
}

func (r *PushSubscriptionRepositoryImpl) Save(ctx context.Context, sub *entity.PushSubscription) error {
	m := r.mapper.ToModel(sub)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "endpoint"}},
			DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth"}),
		}).
		Create(m).Error
}

func (r *PushSubscriptionRepositoryImpl) FindByUser(ctx context.Context, userId string) ([]*entity.PushSubscription, error) {
	var models []*model.PushSubscription
	query := applySpecifications(r.db.WithContext(ctx), specification.UserOwnedBy{UserID: userId})
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	subs := make([]*entity.PushSubscription, len(models))
	for i, m := range models {
		subs[i] = r.mapper.ToEntity(m)
	}
	return subs, nil
}

func (r *PushSubscriptionRepositoryImpl) DeleteByEndpoint(ctx context.Context, userId, endpoint string) error {
	query := applySpecifications(r.db.WithContext(ctx),
		specification.UserOwnedBy{UserID: userId},
		specification.ByEndpoint{Endpoint: endpoint},
	)
	return query.Delete(&model.PushSubscription{}).Error
}
