package contract

import (
	"context"

	"collabnote-be/internal/entity"
)

type PushSubscriptionRepository interface {
	// Save is idempotent per (user, endpoint); keys are refreshed on repeat.
	Save(ctx context.Context, sub *entity.PushSubscription) error
	FindByUser(ctx context.Context, userId string) ([]*entity.PushSubscription, error)
	DeleteByEndpoint(ctx context.Context, userId, endpoint string) error
}
