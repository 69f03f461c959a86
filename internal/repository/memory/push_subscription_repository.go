package memory

import (
	"context"
	"sort"
	"time"

	"collabnote-be/internal/entity"

	"github.com/google/uuid"
)

type pushSubscriptionRepository struct {
	u *unitOfWork
}

func (r *pushSubscriptionRepository) Save(ctx context.Context, sub *entity.PushSubscription) error {
	if sub.Id == uuid.Nil {
		sub.Id = uuid.New()
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now()
	}
	v := *sub
	key := subKey{userId: v.UserId, endpoint: v.Endpoint}
	return r.u.exec(func(s *state) error {
		if existing, ok := s.subs[key]; ok {
			existing.P256dh = v.P256dh
			existing.Auth = v.Auth
			s.subs[key] = existing
			return nil
		}
		s.subs[key] = v
		return nil
	})
}

func (r *pushSubscriptionRepository) FindByUser(ctx context.Context, userId string) ([]*entity.PushSubscription, error) {
	subs := make([]*entity.PushSubscription, 0)
	r.u.store.read(func(s *state) {
		for key, sub := range s.subs {
			if key.userId == userId {
				sub := sub
				subs = append(subs, &sub)
			}
		}
	})
	sort.Slice(subs, func(i, j int) bool {
		return subs[i].CreatedAt.Before(subs[j].CreatedAt)
	})
	return subs, nil
}

func (r *pushSubscriptionRepository) DeleteByEndpoint(ctx context.Context, userId, endpoint string) error {
	return r.u.exec(func(s *state) error {
		delete(s.subs, subKey{userId: userId, endpoint: endpoint})
		return nil
	})
}
