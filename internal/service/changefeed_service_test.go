package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"collabnote-be/internal/dto"
	"collabnote-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pushedFrame struct {
	userID    string
	frameType string
	data      interface{}
}

type recordingPusher struct {
	mu     sync.Mutex
	frames []pushedFrame
}

func (p *recordingPusher) Push(userID, frameType string, data interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frames = append(p.frames, pushedFrame{userID, frameType, data})
}

func (p *recordingPusher) snapshot() []pushedFrame {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]pushedFrame(nil), p.frames...)
}

func TestChangeFeedFansOutToEachUserOnce(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = pubSub.Close() })

	pusher := &recordingPusher{}
	feed := NewChangeFeedService(pubSub, "room.changed", pusher, logger.NewNopLogger())
	require.NoError(t, feed.Consume(ctx))

	publisher := NewPublisherService(pubSub, "room.changed")
	roomId := uuid.New()

	require.NoError(t, pubSub.Publish("room.changed", message.NewMessage(watermill.NewUUID(), []byte("not json"))))
	require.NoError(t, publisher.PublishRoomChanged(ctx, dto.PublishRoomChangedMessage{
		RoomId:  roomId,
		Kind:    dto.RoomChangeArchived,
		UserIds: []string{owner, editor, owner, ""},
	}))

	assert.Eventually(t, func() bool { return len(pusher.snapshot()) == 2 }, 2*time.Second, 10*time.Millisecond)

	frames := pusher.snapshot()
	assert.Equal(t, owner, frames[0].userID)
	assert.Equal(t, editor, frames[1].userID)
	for _, f := range frames {
		assert.Equal(t, RoomsChangedFrameType, f.frameType)
		assert.Equal(t, dto.RoomsChangedFrame{RoomId: roomId, Kind: dto.RoomChangeArchived}, f.data)
	}
}
