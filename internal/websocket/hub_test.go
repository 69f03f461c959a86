package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"collabnote-be/internal/model"
	"collabnote-be/internal/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T, rdb *redis.Client) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := NewHub(rdb, logger.NewNopLogger())
	go hub.Run(ctx)

	select {
	case <-hub.Ready():
	case <-time.After(2 * time.Second):
		t.Fatal("hub never became ready")
	}
	return hub
}

func attach(hub *Hub, userID string, buffer int) *Client {
	c := &Client{Hub: hub, UserID: userID, Send: make(chan []byte, buffer)}
	hub.Register(c)
	return c
}

func receive(t *testing.T, c *Client) Frame {
	t.Helper()
	select {
	case raw := <-c.Send:
		var f Frame
		require.NoError(t, json.Unmarshal(raw, &f))
		return f
	case <-time.After(2 * time.Second):
		t.Fatal("no frame received")
		return Frame{}
	}
}

func TestPushReachesEveryLocalDevice(t *testing.T) {
	hub := startHub(t, nil)
	phone := attach(hub, "ann@example.com", 4)
	laptop := attach(hub, "ann@example.com", 4)
	other := attach(hub, "bob@example.com", 4)

	hub.Push("ann@example.com", "rooms_changed", map[string]string{"kind": "created"})

	assert.Equal(t, "rooms_changed", receive(t, phone).Type)
	assert.Equal(t, "rooms_changed", receive(t, laptop).Type)
	assert.Len(t, other.Send, 0)
}

func TestSendWrapsNotificationFrame(t *testing.T) {
	hub := startHub(t, nil)
	c := attach(hub, "ann@example.com", 1)

	hub.Send("ann@example.com", model.Notification{Title: "Reminder"})

	f := receive(t, c)
	assert.Equal(t, NotificationFrame, f.Type)
	data, ok := f.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Reminder", data["title"])
}

func TestFullBufferDropsFrameAndKeepsClient(t *testing.T) {
	hub := startHub(t, nil)
	c := attach(hub, "ann@example.com", 1)

	hub.Push("ann@example.com", "rooms_changed", 1)
	hub.Push("ann@example.com", "rooms_changed", 2)

	assert.Len(t, c.Send, 1)
	assert.Equal(t, 1, hub.Connected("ann@example.com"))
}

func TestUnregisterIsIdempotent(t *testing.T) {
	hub := startHub(t, nil)
	c := attach(hub, "ann@example.com", 1)

	hub.Unregister(c)
	hub.Unregister(c)

	assert.Equal(t, 0, hub.Connected("ann@example.com"))
	_, open := <-c.Send
	assert.False(t, open)
}

func TestRedisRelayAcrossInstances(t *testing.T) {
	s := miniredis.RunT(t)
	newClient := func() *redis.Client {
		rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
		t.Cleanup(func() { rdb.Close() })
		return rdb
	}

	a := startHub(t, newClient())
	b := startHub(t, newClient())

	local := attach(a, "ann@example.com", 4)
	remote := attach(b, "ann@example.com", 4)

	a.Push("ann@example.com", "rooms_changed", map[string]string{"kind": "shared"})

	assert.Equal(t, "rooms_changed", receive(t, remote).Type)
	assert.Equal(t, "rooms_changed", receive(t, local).Type)

	// the origin instance must not deliver its own relayed copy
	select {
	case <-local.Send:
		t.Fatal("origin instance delivered the frame twice")
	case <-time.After(200 * time.Millisecond):
	}
}
