package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const (
	localTopic    = "domain_events"
	metaEventType = "event_type"
	metaOccurred  = "occurred_at"
)

// LocalBus delivers events in-process over a watermill channel. It stands in
// for NATS when no broker is configured. Delivery is at-most-once per
// subscriber: a failed handler is logged, not retried.
type LocalBus struct {
	pubSub *gochannel.GoChannel
	ctx    context.Context
	cancel context.CancelFunc
}

func NewLocalBus() *LocalBus {
	ctx, cancel := context.WithCancel(context.Background())
	return &LocalBus{
		pubSub: gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 256}, watermill.NopLogger{}),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (b *LocalBus) Publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event.Payload())
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.Metadata.Set(metaEventType, event.EventType())
	msg.Metadata.Set(metaOccurred, event.Timestamp().Format(time.RFC3339Nano))
	return b.pubSub.Publish(localTopic, msg)
}

func (b *LocalBus) Subscribe(subject, durableName string, handler Handler) error {
	messages, err := b.pubSub.Subscribe(b.ctx, localTopic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			b.dispatch(subject, durableName, handler, msg)
		}
	}()
	return nil
}

func (b *LocalBus) dispatch(subject, durableName string, handler Handler, msg *message.Message) {
	defer msg.Ack()

	eventType := msg.Metadata.Get(metaEventType)
	if !MatchSubject(subject, SubjectPrefix+eventType) {
		return
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[%s] dropping malformed event %s: %v", durableName, eventType, err)
		return
	}

	occurredAt, err := time.Parse(time.RFC3339Nano, msg.Metadata.Get(metaOccurred))
	if err != nil {
		occurredAt = time.Now()
	}

	event := BaseEvent{Type: eventType, Data: payload, OccurredAt: occurredAt}
	if err := handler(b.ctx, event); err != nil {
		log.Printf("[%s] handler failed for event %s: %v", durableName, eventType, err)
	}
}

func (b *LocalBus) Close() error {
	b.cancel()
	return b.pubSub.Close()
}

// MatchSubject reports whether subject matches pattern using NATS token
// rules: "*" matches one token and a trailing ">" matches the rest.
func MatchSubject(pattern, subject string) bool {
	pt := strings.Split(pattern, ".")
	st := strings.Split(subject, ".")
	for i, p := range pt {
		if p == ">" {
			return len(st) > i
		}
		if i >= len(st) {
			return false
		}
		if p != "*" && p != st[i] {
			return false
		}
	}
	return len(pt) == len(st)
}
