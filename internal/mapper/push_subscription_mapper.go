package mapper

import (
	"collabnote-be/internal/entity"
	"collabnote-be/internal/model"
)

type PushSubscriptionMapper struct{}

func NewPushSubscriptionMapper() *PushSubscriptionMapper {
	return &PushSubscriptionMapper{}
}

func (m *PushSubscriptionMapper) ToEntity(s *model.PushSubscription) *entity.PushSubscription {
	if s == nil {
		return nil
	}
	return &entity.PushSubscription{
		Id:        s.Id,
		UserId:    s.UserId,
		Endpoint:  s.Endpoint,
		P256dh:    s.P256dh,
		Auth:      s.Auth,
		CreatedAt: s.CreatedAt,
	}
}

func (m *PushSubscriptionMapper) ToModel(s *entity.PushSubscription) *model.PushSubscription {
	if s == nil {
		return nil
	}
	return &model.PushSubscription{
		Id:        s.Id,
		UserId:    s.UserId,
		Endpoint:  s.Endpoint,
		P256dh:    s.P256dh,
		Auth:      s.Auth,
		CreatedAt: s.CreatedAt,
	}
}
