package model

import (
	"time"

	"github.com/google/uuid"
)

type PushSubscription struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    string    `gorm:"type:varchar(320);not null;uniqueIndex:idx_push_user_endpoint,priority:1"`
	Endpoint  string    `gorm:"type:text;not null;uniqueIndex:idx_push_user_endpoint,priority:2"`
	P256dh    string    `gorm:"type:text;not null"`
	Auth      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (PushSubscription) TableName() string {
	return "push_subscriptions"
}
