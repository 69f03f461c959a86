package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"collabnote-be/internal/entity"
	"collabnote-be/internal/model"
	"collabnote-be/internal/pkg/logger"
	"collabnote-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedDelivery struct {
	mu   sync.Mutex
	sent map[string][]model.Notification
}

func (d *recordedDelivery) Send(userID string, n model.Notification) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.sent == nil {
		d.sent = map[string][]model.Notification{}
	}
	d.sent[userID] = append(d.sent[userID], n)
}

func (d *recordedDelivery) count(userID string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.sent[userID])
}

func TestHandleEventStoresAndDelivers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	delivery := &recordedDelivery{}
	svc := NewNotificationService(f.factory, events.NewLocalBus(), delivery, logger.NewNopLogger())

	roomId := "7b0c3c64-54cb-4f5e-9d0c-7d3f3f0f5a11"
	err := svc.HandleEvent(ctx, events.NewEvent(events.TypeNoteShared, map[string]interface{}{
		"user_id":     "Editor@Example.com",
		"actor_id":    owner,
		"note_title":  "Roadmap",
		"entity_type": "note",
		"entity_id":   roomId,
	}))
	require.NoError(t, err)

	require.Equal(t, 1, delivery.count(editor))
	n := delivery.sent[editor][0]
	assert.Equal(t, editor, n.UserID)
	assert.Equal(t, owner, n.ActorID)
	assert.Equal(t, "NOTE_SHARED", n.TypeCode)
	assert.Equal(t, owner+` invited you to "Roadmap"`, n.Message)
	require.NotNil(t, n.EntityID)
	assert.Equal(t, roomId, n.EntityID.String())

	var meta map[string]interface{}
	require.NoError(t, json.Unmarshal(n.Metadata, &meta))
	assert.Equal(t, "/notes/"+roomId, meta["action_url"])

	list, err := svc.GetNotifications(ctx, editor, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)
	unread, err := svc.GetUnreadCount(ctx, editor)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread.Count)
}

func TestHandleEventSkipsUnknownInactiveAndAnonymous(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	delivery := &recordedDelivery{}
	svc := NewNotificationService(f.factory, events.NewLocalBus(), delivery, logger.NewNopLogger())

	f.store.PutNotificationType(model.NotificationType{Code: "NOTE_ACCESS_REVOKED", DisplayName: "Access removed", Template: "x", IsActive: false})

	for _, e := range []events.Event{
		events.NewEvent("UNKNOWN", map[string]interface{}{"user_id": editor}),
		events.NewEvent(events.TypeNoteAccessRevoked, map[string]interface{}{"user_id": editor}),
		events.NewEvent(events.TypeReminderDue, map[string]interface{}{"message": "orphan"}),
	} {
		assert.NoError(t, svc.HandleEvent(ctx, e))
	}
	assert.Zero(t, delivery.count(editor))

	unread, err := svc.GetUnreadCount(ctx, editor)
	require.NoError(t, err)
	assert.Zero(t, unread.Count)
}

func TestNotificationPaginationAndRead(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewNotificationService(f.factory, events.NewLocalBus(), nil, logger.NewNopLogger())

	for i := 0; i < 5; i++ {
		require.NoError(t, svc.HandleEvent(ctx, events.NewEvent(events.TypeReminderDue, map[string]interface{}{
			"user_id":     owner,
			"message":     "ping",
			"entity_type": "reminder",
		})))
	}

	page, err := svc.GetNotifications(ctx, owner, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.Page)

	defaults, err := svc.GetNotifications(ctx, owner, 0, 500)
	require.NoError(t, err)
	assert.Equal(t, 1, defaults.Page)
	assert.Equal(t, 20, defaults.Limit)

	require.NoError(t, svc.MarkAsRead(ctx, owner, page.Items[0].ID))
	unread, err := svc.GetUnreadCount(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(4), unread.Count)

	require.NoError(t, svc.MarkAllAsRead(ctx, owner))
	unread, err = svc.GetUnreadCount(ctx, owner)
	require.NoError(t, err)
	assert.Zero(t, unread.Count)

	_, err = svc.GetUnreadCount(ctx, "")
	assert.ErrorIs(t, err, entity.ErrAuthRequired)
}

func TestStartConsumesBusEvents(t *testing.T) {
	f := newFixture(t)
	bus := events.NewLocalBus()
	t.Cleanup(func() { _ = bus.Close() })
	delivery := &recordedDelivery{}
	svc := NewNotificationService(f.factory, bus, delivery, logger.NewNopLogger())
	require.NoError(t, svc.Start())

	require.NoError(t, bus.Publish(context.Background(), events.NewEvent(events.TypeReminderDue, map[string]interface{}{
		"user_id": owner,
		"message": "stand up",
	})))

	assert.Eventually(t, func() bool { return delivery.count(owner) == 1 }, 2*time.Second, 10*time.Millisecond)
}
