package memory

import (
	"context"
	"sort"
	"time"

	"collabnote-be/internal/entity"
	"collabnote-be/internal/model"

	"github.com/google/uuid"
)

type notificationRepository struct {
	u *unitOfWork
}

func (r *notificationRepository) CreateNotification(ctx context.Context, notification *model.Notification) error {
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}
	v := *notification
	return r.u.exec(func(s *state) error {
		s.notifications[v.ID] = v
		return nil
	})
}

func (r *notificationRepository) GetNotificationsByUserID(ctx context.Context, userID string, limit, offset int) ([]model.Notification, int64, error) {
	all := make([]model.Notification, 0)
	r.u.store.read(func(s *state) {
		for _, n := range s.notifications {
			if n.UserID == userID {
				all = append(all, n)
			}
		}
	})
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := int64(len(all))
	if offset >= len(all) {
		return []model.Notification{}, total, nil
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end], total, nil
}

func (r *notificationRepository) GetUnreadCount(ctx context.Context, userID string) (int64, error) {
	var count int64
	r.u.store.read(func(s *state) {
		for _, n := range s.notifications {
			if n.UserID == userID && !n.IsRead {
				count++
			}
		}
	})
	return count, nil
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, userID string, notificationID uuid.UUID) error {
	now := time.Now()
	return r.u.exec(func(s *state) error {
		n, ok := s.notifications[notificationID]
		if !ok || n.UserID != userID {
			return entity.ErrNotFound
		}
		n.IsRead = true
		n.ReadAt = &now
		s.notifications[notificationID] = n
		return nil
	})
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID string) error {
	now := time.Now()
	return r.u.exec(func(s *state) error {
		for id, n := range s.notifications {
			if n.UserID == userID && !n.IsRead {
				n.IsRead = true
				n.ReadAt = &now
				s.notifications[id] = n
			}
		}
		return nil
	})
}

func (r *notificationRepository) GetNotificationTypeByCode(ctx context.Context, code string) (*model.NotificationType, error) {
	var found *model.NotificationType
	r.u.store.read(func(s *state) {
		if t, ok := s.notificationTypes[code]; ok {
			found = &t
		}
	})
	if found == nil {
		return nil, entity.ErrNotFound
	}
	return found, nil
}
