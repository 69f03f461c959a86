package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"collabnote-be/internal/dto"
	"collabnote-be/internal/entity"
	"collabnote-be/internal/pkg/logger"
	"collabnote-be/internal/repository/contract"
	"collabnote-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReminderFixture(t *testing.T) (*fixture, IReminderService) {
	t.Helper()
	f := newFixture(t)
	return f, NewReminderService(f.factory, logger.NewNopLogger())
}

func TestScheduleReminder(t *testing.T) {
	_, svc := newReminderFixture(t)
	ctx := context.Background()
	noteId := uuid.New()

	linked, err := svc.Schedule(ctx, owner, &dto.CreateReminderRequest{
		ReminderTime: fixedNow.Add(time.Hour),
		Message:      "review draft",
		NoteId:       &noteId,
		NoteTitle:    "Draft",
	})
	require.NoError(t, err)
	assert.Equal(t, "Draft", linked.NoteTitle)
	assert.Equal(t, &noteId, linked.NoteId)
	assert.False(t, linked.IsSent)
	assert.Empty(t, linked.FlagIds)

	plain, err := svc.Schedule(ctx, owner, &dto.CreateReminderRequest{
		ReminderTime: fixedNow.Add(time.Hour),
		Message:      "water plants",
		NoteTitle:    "ignored without a note",
	})
	require.NoError(t, err)
	assert.Empty(t, plain.NoteTitle)
	assert.Nil(t, plain.NoteId)

	_, err = svc.Schedule(ctx, owner, &dto.CreateReminderRequest{ReminderTime: fixedNow, Message: "   "})
	assert.ErrorIs(t, err, entity.ErrInvalidArgument)

	_, err = svc.Schedule(ctx, "", &dto.CreateReminderRequest{ReminderTime: fixedNow, Message: "x"})
	assert.ErrorIs(t, err, entity.ErrAuthRequired)
}

func TestUpdateReArmsReminder(t *testing.T) {
	f, svc := newReminderFixture(t)
	ctx := context.Background()

	created, err := svc.Schedule(ctx, owner, &dto.CreateReminderRequest{ReminderTime: fixedNow, Message: "call"})
	require.NoError(t, err)
	require.NoError(t, svc.ToggleDone(ctx, owner, created.Id, true))
	require.NoError(t, f.factory.NewUnitOfWork(ctx).ReminderRepository().MarkSent(ctx, []uuid.UUID{created.Id}))

	later := fixedNow.Add(24 * time.Hour)
	updated, err := svc.Update(ctx, owner, &dto.UpdateReminderRequest{Id: created.Id, ReminderTime: later, Message: "call back"})
	require.NoError(t, err)
	assert.Equal(t, "call back", updated.Message)
	assert.True(t, later.Equal(updated.ReminderTime))
	assert.False(t, updated.IsDone)
	assert.False(t, updated.IsSent)

	_, err = svc.Update(ctx, editor, &dto.UpdateReminderRequest{Id: created.Id, ReminderTime: later, Message: "x"})
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestToggleAndDeleteStayWithinOwner(t *testing.T) {
	_, svc := newReminderFixture(t)
	ctx := context.Background()

	created, err := svc.Schedule(ctx, owner, &dto.CreateReminderRequest{ReminderTime: fixedNow, Message: "pay rent"})
	require.NoError(t, err)

	require.NoError(t, svc.ToggleImportant(ctx, owner, created.Id, true))
	assert.ErrorIs(t, svc.ToggleImportant(ctx, editor, created.Id, true), entity.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, editor, created.Id), entity.ErrNotFound)

	list, err := svc.List(ctx, owner, "", nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].IsImportant)

	require.NoError(t, svc.Delete(ctx, owner, created.Id))
	list, err = svc.List(ctx, owner, "", nil)
	require.NoError(t, err)
	assert.Empty(t, list)
}

// interleavedFactory calls hook whenever the reminder repository is touched,
// letting a test slip another writer in between read and write.
type interleavedFactory struct {
	unitofwork.RepositoryFactory
	hook func()
}

func (f *interleavedFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &interleavedUnitOfWork{UnitOfWork: f.RepositoryFactory.NewUnitOfWork(ctx), hook: f.hook}
}

type interleavedUnitOfWork struct {
	unitofwork.UnitOfWork
	hook func()
}

func (u *interleavedUnitOfWork) ReminderRepository() contract.ReminderRepository {
	return &interleavedReminders{ReminderRepository: u.UnitOfWork.ReminderRepository(), hook: u.hook}
}

type interleavedReminders struct {
	contract.ReminderRepository
	hook func()
}

func (r *interleavedReminders) FindOne(ctx context.Context, userId string, id uuid.UUID) (*entity.Reminder, error) {
	found, err := r.ReminderRepository.FindOne(ctx, userId, id)
	r.hook()
	return found, err
}

func (r *interleavedReminders) UpdateFields(ctx context.Context, userId string, id uuid.UUID, patch entity.ReminderPatch) error {
	r.hook()
	return r.ReminderRepository.UpdateFields(ctx, userId, id, patch)
}

func TestSingleFieldEditsKeepSweepDelivery(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(svc IReminderService, id uuid.UUID) error
		check func(t *testing.T, r *entity.Reminder)
	}{
		{
			name: "done",
			edit: func(svc IReminderService, id uuid.UUID) error {
				return svc.ToggleDone(context.Background(), owner, id, true)
			},
			check: func(t *testing.T, r *entity.Reminder) { assert.True(t, r.IsDone) },
		},
		{
			name: "important",
			edit: func(svc IReminderService, id uuid.UUID) error {
				return svc.ToggleImportant(context.Background(), owner, id, true)
			},
			check: func(t *testing.T, r *entity.Reminder) { assert.True(t, r.IsImportant) },
		},
		{
			name: "flags",
			edit: func(svc IReminderService, id uuid.UUID) error {
				return svc.SetFlags(context.Background(), owner, id, nil)
			},
			check: func(t *testing.T, r *entity.Reminder) { assert.Empty(t, r.FlagIds) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			sweep := NewSweepService(f.factory, &fakeSender{}, nil, logger.NewNopLogger(), "https://app.test")
			id := f.remind(t, &entity.Reminder{Message: "call the bank", ReminderTime: fixedNow.Add(-time.Minute)})

			var once sync.Once
			svc := NewReminderService(&interleavedFactory{RepositoryFactory: f.factory, hook: func() {
				once.Do(func() {
					res, err := sweep.Run(ctx, fixedNow)
					require.NoError(t, err)
					require.Equal(t, 1, res.Sent)
				})
			}}, logger.NewNopLogger())

			require.NoError(t, tt.edit(svc, id))

			got := f.reminder(t, id)
			assert.True(t, got.IsSent)
			tt.check(t, got)

			again, err := sweep.Run(ctx, fixedNow)
			require.NoError(t, err)
			assert.Equal(t, 0, again.Due)
		})
	}
}

func TestSetFlagsValidatesOwnership(t *testing.T) {
	_, svc := newReminderFixture(t)
	ctx := context.Background()

	work, err := svc.CreateFlag(ctx, owner, &dto.CreateFlagRequest{Name: " Work ", Color: "#f00"})
	require.NoError(t, err)
	assert.Equal(t, "Work", work.Name)
	foreign, err := svc.CreateFlag(ctx, editor, &dto.CreateFlagRequest{Name: "Home", Color: "#0f0"})
	require.NoError(t, err)

	_, err = svc.CreateFlag(ctx, owner, &dto.CreateFlagRequest{Name: "  ", Color: "#000"})
	assert.ErrorIs(t, err, entity.ErrInvalidArgument)

	created, err := svc.Schedule(ctx, owner, &dto.CreateReminderRequest{ReminderTime: fixedNow, Message: "standup"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.SetFlags(ctx, owner, created.Id, []uuid.UUID{foreign.Id}), entity.ErrInvalidArgument)
	require.NoError(t, svc.SetFlags(ctx, owner, created.Id, []uuid.UUID{work.Id, work.Id}))

	list, err := svc.List(ctx, owner, "", []uuid.UUID{work.Id})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []uuid.UUID{work.Id}, list[0].FlagIds)

	flags, err := svc.ListFlags(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, flags, 1)
}

func TestListAndGroupedFilter(t *testing.T) {
	_, svc := newReminderFixture(t)
	ctx := context.Background()

	for _, r := range []struct {
		msg string
		at  time.Time
	}{
		{"Missed standup", fixedNow.Add(-time.Hour)},
		{"Lunch", fixedNow.Add(3 * time.Hour)},
		{"Dentist", fixedNow.Add(24 * time.Hour)},
		{"Report", fixedNow.Add(72 * time.Hour)},
		{"Vacation", fixedNow.Add(30 * 24 * time.Hour)},
	} {
		_, err := svc.Schedule(ctx, owner, &dto.CreateReminderRequest{ReminderTime: r.at, Message: r.msg})
		require.NoError(t, err)
	}

	found, err := svc.List(ctx, owner, "STAND", nil)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Missed standup", found[0].Message)

	g, err := svc.Grouped(ctx, owner, "", nil, fixedNow)
	require.NoError(t, err)
	assert.Len(t, g.Missed, 1)
	assert.Len(t, g.Today, 1)
	assert.Len(t, g.Tomorrow, 1)
	assert.Len(t, g.ThisWeek, 1)
	assert.Len(t, g.Later, 1)
	assert.Empty(t, g.Completed)
}

func TestSavePushSubscription(t *testing.T) {
	f, svc := newReminderFixture(t)
	ctx := context.Background()

	req := &dto.SavePushSubscriptionRequest{
		Endpoint: "https://push.test/abc",
		Keys:     dto.PushSubscriptionKeys{P256dh: "key", Auth: "auth"},
	}
	require.NoError(t, svc.SavePushSubscription(ctx, owner, req))
	require.NoError(t, svc.SavePushSubscription(ctx, owner, req))

	subs, err := f.factory.NewUnitOfWork(ctx).PushSubscriptionRepository().FindByUser(ctx, owner)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "https://push.test/abc", subs[0].Endpoint)

	assert.ErrorIs(t, svc.SavePushSubscription(ctx, "", req), entity.ErrAuthRequired)
}
