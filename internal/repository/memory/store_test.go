package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"collabnote-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRoom(t *testing.T, store *Store, userId string, roomId uuid.UUID, parent *uuid.UUID) {
	t.Helper()
	uow := NewRepositoryFactory(store).NewUnitOfWork(context.Background())
	require.NoError(t, uow.RoomRepository().Save(context.Background(), &entity.Room{
		UserId:       userId,
		RoomId:       roomId,
		Role:         entity.RoomRoleOwner,
		Title:        "New Note",
		ParentNoteId: parent,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}))
}

func TestTransactionCommitsAllWrites(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	roomId := uuid.New()
	seedRoom(t, store, "a@x.io", roomId, nil)
	seedRoom(t, store, "b@x.io", roomId, nil)

	uow := NewRepositoryFactory(store).NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))
	archived := true
	require.NoError(t, uow.RoomRepository().UpdateByRoomIDs(ctx, []uuid.UUID{roomId}, entity.RoomPatch{Archived: &archived}))

	// Buffered writes are not visible until commit.
	before, err := uow.RoomRepository().FindOne(ctx, "a@x.io", roomId)
	require.NoError(t, err)
	assert.False(t, before.Archived)

	require.NoError(t, uow.Commit())

	rooms, err := uow.RoomRepository().FindByRoomID(ctx, roomId)
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	for _, r := range rooms {
		assert.True(t, r.Archived)
	}
}

func TestTransactionDiscardedOnFailedWrite(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	roomId := uuid.New()
	seedRoom(t, store, "a@x.io", roomId, nil)

	uow := NewRepositoryFactory(store).NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))
	title := "Renamed"
	require.NoError(t, uow.RoomRepository().UpdateByRoomIDs(ctx, []uuid.UUID{roomId}, entity.RoomPatch{Title: &title}))
	require.NoError(t, uow.RoomRepository().UpdateOne(ctx, "missing@x.io", roomId, entity.RoomPatch{Title: &title}))

	err := uow.Commit()
	assert.ErrorIs(t, err, entity.ErrNotFound)

	room, err := uow.RoomRepository().FindOne(ctx, "a@x.io", roomId)
	require.NoError(t, err)
	assert.Equal(t, "New Note", room.Title)
}

func TestCommitHookAbortsCommit(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	roomId := uuid.New()
	seedRoom(t, store, "a@x.io", roomId, nil)

	boom := errors.New("store unavailable")
	store.SetCommitHook(func(int) error { return boom })

	uow := NewRepositoryFactory(store).NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.RoomRepository().DeleteByRoomID(ctx, roomId))
	assert.ErrorIs(t, uow.Commit(), boom)

	store.SetCommitHook(nil)
	rooms, err := uow.RoomRepository().FindByRoomID(ctx, roomId)
	require.NoError(t, err)
	assert.Len(t, rooms, 1)
}

func TestRollbackDropsPendingWrites(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	uow := NewRepositoryFactory(store).NewUnitOfWork(ctx)

	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.NoteRepository().Create(ctx, &entity.Note{Title: "draft", OwnerId: "a@x.io"}))
	require.NoError(t, uow.Rollback())
	assert.Error(t, uow.Rollback())
	assert.Error(t, uow.Commit())

	assert.Empty(t, store.state.notes)
}

func TestSaveRoomUpserts(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	roomId := uuid.New()
	seedRoom(t, store, "a@x.io", roomId, nil)

	uow := NewRepositoryFactory(store).NewUnitOfWork(ctx)
	require.NoError(t, uow.RoomRepository().Save(ctx, &entity.Room{
		UserId: "a@x.io",
		RoomId: roomId,
		Role:   entity.RoomRoleEditor,
		Title:  "Again",
	}))

	rooms, err := uow.RoomRepository().FindByRoomID(ctx, roomId)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, entity.RoomRoleEditor, rooms[0].Role)
}

func TestReparentAndDetachChildren(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	parent := uuid.New()
	grand := uuid.New()
	child := uuid.New()
	seedRoom(t, store, "a@x.io", child, &parent)
	seedRoom(t, store, "b@x.io", child, &parent)

	uow := NewRepositoryFactory(store).NewUnitOfWork(ctx)
	require.NoError(t, uow.RoomRepository().DetachChildren(ctx, "b@x.io", parent))

	b, _ := uow.RoomRepository().FindOne(ctx, "b@x.io", child)
	assert.Nil(t, b.ParentNoteId)
	a, _ := uow.RoomRepository().FindOne(ctx, "a@x.io", child)
	require.NotNil(t, a.ParentNoteId)

	require.NoError(t, uow.RoomRepository().ReparentChildren(ctx, parent, &grand))
	a, _ = uow.RoomRepository().FindOne(ctx, "a@x.io", child)
	require.NotNil(t, a.ParentNoteId)
	assert.Equal(t, grand, *a.ParentNoteId)
}

func TestFindDueReminders(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	uow := NewRepositoryFactory(store).NewUnitOfWork(ctx)
	now := time.Now()

	due := &entity.Reminder{UserId: "a@x.io", Message: "due", ReminderTime: now.Add(-time.Minute)}
	exact := &entity.Reminder{UserId: "b@x.io", Message: "exact", ReminderTime: now}
	future := &entity.Reminder{UserId: "a@x.io", Message: "future", ReminderTime: now.Add(time.Hour)}
	sent := &entity.Reminder{UserId: "a@x.io", Message: "sent", ReminderTime: now.Add(-time.Hour), IsSent: true}
	for _, r := range []*entity.Reminder{due, exact, future, sent} {
		require.NoError(t, uow.ReminderRepository().Create(ctx, r))
	}

	found, err := uow.ReminderRepository().FindDue(ctx, now)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "due", found[0].Message)
	assert.Equal(t, "exact", found[1].Message)

	require.NoError(t, uow.ReminderRepository().MarkSent(ctx, []uuid.UUID{due.Id}))
	found, err = uow.ReminderRepository().FindDue(ctx, now)
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestReminderPatchMergesAtCommit(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	factory := NewRepositoryFactory(store)
	id := uuid.New()
	require.NoError(t, factory.NewUnitOfWork(ctx).ReminderRepository().Create(ctx, &entity.Reminder{
		Id:           id,
		UserId:       "a@x.io",
		Message:      "water plants",
		ReminderTime: time.Now().Add(-time.Minute),
	}))

	uow := factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))
	done := true
	require.NoError(t, uow.ReminderRepository().UpdateFields(ctx, "a@x.io", id, entity.ReminderPatch{IsDone: &done}))

	// the sweep commits while the patch is still pending
	require.NoError(t, factory.NewUnitOfWork(ctx).ReminderRepository().MarkSent(ctx, []uuid.UUID{id}))
	require.NoError(t, uow.Commit())

	got, err := factory.NewUnitOfWork(ctx).ReminderRepository().FindOne(ctx, "a@x.io", id)
	require.NoError(t, err)
	assert.True(t, got.IsDone)
	assert.True(t, got.IsSent)

	assert.ErrorIs(t, factory.NewUnitOfWork(ctx).ReminderRepository().UpdateFields(ctx, "b@x.io", id, entity.ReminderPatch{IsDone: &done}), entity.ErrNotFound)
}
