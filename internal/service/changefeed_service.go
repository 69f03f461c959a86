package service

import (
	"context"
	"encoding/json"

	"collabnote-be/internal/dto"
	"collabnote-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
)

// FramePusher is implemented by the WebSocket hub.
type FramePusher interface {
	Push(userID, frameType string, data interface{})
}

const RoomsChangedFrameType = "rooms_changed"

type IChangeFeedService interface {
	Consume(ctx context.Context) error
}

type changeFeedService struct {
	subscriber message.Subscriber
	topicName  string
	pusher     FramePusher
	logger     logger.ILogger
}

func NewChangeFeedService(subscriber message.Subscriber, topicName string, pusher FramePusher, log logger.ILogger) IChangeFeedService {
	return &changeFeedService{
		subscriber: subscriber,
		topicName:  topicName,
		pusher:     pusher,
		logger:     log,
	}
}

func (s *changeFeedService) Consume(ctx context.Context) error {
	messages, err := s.subscriber.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(msg)
		}
	}()

	return nil
}

func (s *changeFeedService) processMessage(msg *message.Message) {
	// The feed is a hint to re-query; nothing is retried.
	defer msg.Ack()

	var payload dto.PublishRoomChangedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.logger.Warn("ChangeFeed", "Dropping malformed room change", map[string]interface{}{"error": err.Error()})
		return
	}

	frame := dto.RoomsChangedFrame{RoomId: payload.RoomId, Kind: payload.Kind}
	seen := make(map[string]struct{}, len(payload.UserIds))
	for _, userID := range payload.UserIds {
		if _, ok := seen[userID]; ok || userID == "" {
			continue
		}
		seen[userID] = struct{}{}
		s.pusher.Push(userID, RoomsChangedFrameType, frame)
	}

	s.logger.Debug("ChangeFeed", "Room change fanned out", map[string]interface{}{
		"room_id": payload.RoomId,
		"kind":    payload.Kind,
		"users":   len(seen),
	})
}
