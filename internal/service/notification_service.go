package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"collabnote-be/internal/dto"
	"collabnote-be/internal/entity"
	"collabnote-be/internal/model"
	"collabnote-be/internal/pkg/logger"
	"collabnote-be/internal/repository/unitofwork"
	"collabnote-be/pkg/events"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	NotificationSubject = events.SubjectPrefix + ">"
	NotificationDurable = "notif-service-worker"
)

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(userID string, notification model.Notification)
}

type INotificationService interface {
	Start() error
	HandleEvent(ctx context.Context, event events.Event) error
	GetNotifications(ctx context.Context, userID string, page, limit int) (*dto.NotificationListResponse, error)
	GetUnreadCount(ctx context.Context, userID string) (*dto.UnreadCountResponse, error)
	MarkAsRead(ctx context.Context, userID string, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID string) error
}

type notificationService struct {
	uowFactory unitofwork.RepositoryFactory
	subscriber events.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(uowFactory unitofwork.RepositoryFactory, sub events.Subscriber, delivery NotificationDelivery, log logger.ILogger) INotificationService {
	return &notificationService{
		uowFactory: uowFactory,
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *notificationService) Start() error {
	if err := s.subscriber.Subscribe(NotificationSubject, NotificationDurable, s.HandleEvent); err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err.Error()})
		return err
	}
	s.logger.Info("NotificationService", "Notification service started, listening to "+NotificationSubject, nil)
	return nil
}

func (s *notificationService) HandleEvent(ctx context.Context, event events.Event) error {
	typeCode := strings.TrimPrefix(event.EventType(), events.SubjectPrefix)
	s.logger.Info("NotificationService", "Processing event", map[string]interface{}{"type": typeCode})

	repo := s.uowFactory.NewUnitOfWork(ctx).NotificationRepository()

	config, err := repo.GetNotificationTypeByCode(ctx, typeCode)
	if err != nil {
		s.logger.Warn("NotificationService", fmt.Sprintf("Config not found for code: '%s'", typeCode), map[string]interface{}{"error": err.Error()})
		return nil
	}
	if !config.IsActive {
		s.logger.Info("NotificationService", fmt.Sprintf("Notification type '%s' is inactive", typeCode), nil)
		return nil
	}

	recipient, _ := event.Payload()["user_id"].(string)
	recipient = strings.ToLower(strings.TrimSpace(recipient))
	if recipient == "" {
		s.logger.Warn("NotificationService", "Event has no user_id, dropping", map[string]interface{}{"type": typeCode})
		return nil
	}

	notif := buildNotification(recipient, config, event)
	if err := repo.CreateNotification(ctx, &notif); err != nil {
		s.logger.Error("NotificationService", "Error saving notification", map[string]interface{}{
			"user_id": recipient,
			"error":   err.Error(),
		})
		// redelivered by the bus
		return err
	}

	if s.delivery != nil {
		s.delivery.Send(recipient, notif)
	}
	return nil
}

func actionURL(entityType string, entityID *uuid.UUID) string {
	switch {
	case entityType == "reminder":
		return "/reminders"
	case entityType != "" && entityID != nil:
		return fmt.Sprintf("/%ss/%s", entityType, entityID.String())
	}
	return ""
}

func buildNotification(userID string, config *model.NotificationType, event events.Event) model.Notification {
	msg := config.Template
	payload := event.Payload()

	for k, v := range payload {
		msg = strings.ReplaceAll(msg, fmt.Sprintf("{%s}", k), fmt.Sprintf("%v", v))
	}

	actorID, _ := payload["actor_id"].(string)
	entityType, _ := payload["entity_type"].(string)

	var entityID *uuid.UUID
	if eidStr, ok := payload["entity_id"].(string); ok {
		if eid, err := uuid.Parse(eidStr); err == nil {
			entityID = &eid
		}
	}

	metaMap := make(map[string]interface{}, len(payload)+1)
	for k, v := range payload {
		metaMap[k] = v
	}
	if url := actionURL(entityType, entityID); url != "" {
		metaMap["action_url"] = url
	}
	metaJSON, _ := json.Marshal(metaMap)

	return model.Notification{
		ID:         uuid.New(),
		UserID:     userID,
		ActorID:    actorID,
		TypeCode:   config.Code,
		Title:      config.DisplayName,
		Message:    msg,
		Metadata:   datatypes.JSON(metaJSON),
		EntityType: entityType,
		EntityID:   entityID,
		CreatedAt:  time.Now(),
	}
}

func (s *notificationService) GetNotifications(ctx context.Context, userID string, page, limit int) (*dto.NotificationListResponse, error) {
	if userID == "" {
		return nil, entity.ErrAuthRequired
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}

	items, total, err := s.uowFactory.NewUnitOfWork(ctx).NotificationRepository().
		GetNotificationsByUserID(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	return &dto.NotificationListResponse{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

func (s *notificationService) GetUnreadCount(ctx context.Context, userID string) (*dto.UnreadCountResponse, error) {
	if userID == "" {
		return nil, entity.ErrAuthRequired
	}
	count, err := s.uowFactory.NewUnitOfWork(ctx).NotificationRepository().GetUnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.UnreadCountResponse{Count: count}, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID string, id uuid.UUID) error {
	if userID == "" {
		return entity.ErrAuthRequired
	}
	return s.uowFactory.NewUnitOfWork(ctx).NotificationRepository().MarkAsRead(ctx, userID, id)
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userID string) error {
	if userID == "" {
		return entity.ErrAuthRequired
	}
	return s.uowFactory.NewUnitOfWork(ctx).NotificationRepository().MarkAllAsRead(ctx, userID)
}
