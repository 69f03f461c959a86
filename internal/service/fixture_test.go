package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"collabnote-be/internal/dto"
	"collabnote-be/internal/entity"
	"collabnote-be/internal/pkg/logger"
	"collabnote-be/internal/repository/memory"
	"collabnote-be/internal/repository/unitofwork"
	"collabnote-be/pkg/events"
	"collabnote-be/pkg/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const (
	owner    = "owner@example.com"
	editor   = "editor@example.com"
	stranger = "stranger@example.com"
)

var fixedNow = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

type recordedChanges struct {
	mu   sync.Mutex
	msgs []dto.PublishRoomChangedMessage
}

func (r *recordedChanges) PublishRoomChanged(ctx context.Context, msg dto.PublishRoomChangedMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
	return nil
}

func (r *recordedChanges) last() dto.PublishRoomChangedMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.msgs) == 0 {
		return dto.PublishRoomChangedMessage{}
	}
	return r.msgs[len(r.msgs)-1]
}

func (r *recordedChanges) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.msgs)
}

type recordedEvents struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recordedEvents) Publish(ctx context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recordedEvents) ofType(eventType string) []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.Event, 0)
	for _, e := range r.events {
		if e.EventType() == eventType {
			out = append(out, e)
		}
	}
	return out
}

type sentInvitation struct {
	to, inviter, title, url string
}

type recordedMail struct {
	mu   sync.Mutex
	sent []sentInvitation
}

func (r *recordedMail) SendInvitation(toEmail, inviterEmail, noteTitle, noteURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sentInvitation{toEmail, inviterEmail, noteTitle, noteURL})
	return nil
}

type fixture struct {
	store   *memory.Store
	factory unitofwork.RepositoryFactory
	rooms   *roomService
	changes *recordedChanges
	events  *recordedEvents
	mail    *recordedMail
	covers  *storage.FileSystem
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	f := &fixture{
		store:   store,
		factory: memory.NewRepositoryFactory(store),
		changes: &recordedChanges{},
		events:  &recordedEvents{},
		mail:    &recordedMail{},
		covers:  storage.NewMemoryFileSystem("http://localhost:3000/uploads"),
	}
	f.rooms = NewRoomService(f.factory, f.changes, f.events, f.mail, f.covers, logger.NewNopLogger(), RoomServiceConfig{
		MaxDepth:       64,
		ClientURL:      "https://app.test",
		CollabSecret:   "collab-secret",
		CollabTokenTTL: 10 * time.Minute,
	}).(*roomService)
	f.rooms.now = func() time.Time { return fixedNow }
	return f
}

func (f *fixture) create(t *testing.T, caller string, parent *uuid.UUID) uuid.UUID {
	t.Helper()
	res, err := f.rooms.Create(context.Background(), caller, &dto.CreateRoomRequest{ParentNoteId: parent})
	require.NoError(t, err)
	return res.Id
}

func (f *fixture) record(t *testing.T, user string, roomId uuid.UUID) *entity.Room {
	t.Helper()
	r, err := f.factory.NewUnitOfWork(context.Background()).RoomRepository().FindOne(context.Background(), user, roomId)
	require.NoError(t, err)
	return r
}

func (f *fixture) note(t *testing.T, id uuid.UUID) *entity.Note {
	t.Helper()
	n, err := f.factory.NewUnitOfWork(context.Background()).NoteRepository().FindByID(context.Background(), id)
	require.NoError(t, err)
	return n
}

// save writes a raw record, bypassing the service rules.
func (f *fixture) save(t *testing.T, r *entity.Room) {
	t.Helper()
	require.NoError(t, f.factory.NewUnitOfWork(context.Background()).RoomRepository().Save(context.Background(), r))
}

func (f *fixture) invite(t *testing.T, roomId uuid.UUID, invitee string) {
	t.Helper()
	require.NoError(t, f.rooms.Invite(context.Background(), owner, roomId, invitee, owner))
}

func ptr(id uuid.UUID) *uuid.UUID {
	return &id
}
