package entity

import (
	"time"

	"github.com/google/uuid"
)

// PushSubscription is one browser endpoint registered for Web Push.
type PushSubscription struct {
	Id        uuid.UUID
	UserId    string
	Endpoint  string
	P256dh    string
	Auth      string
	CreatedAt time.Time
}
