package memory

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"collabnote-be/internal/entity"
	"collabnote-be/internal/model"
	"collabnote-be/internal/repository/contract"
	"collabnote-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type roomKey struct {
	userId string
	roomId uuid.UUID
}

type subKey struct {
	userId   string
	endpoint string
}

type state struct {
	notes             map[uuid.UUID]entity.Note
	rooms             map[roomKey]entity.Room
	reminders         map[uuid.UUID]entity.Reminder
	flags             map[uuid.UUID]entity.Flag
	subs              map[subKey]entity.PushSubscription
	notifications     map[uuid.UUID]model.Notification
	notificationTypes map[string]model.NotificationType
}

func newState() *state {
	return &state{
		notes:             make(map[uuid.UUID]entity.Note),
		rooms:             make(map[roomKey]entity.Room),
		reminders:         make(map[uuid.UUID]entity.Reminder),
		flags:             make(map[uuid.UUID]entity.Flag),
		subs:              make(map[subKey]entity.PushSubscription),
		notifications:     make(map[uuid.UUID]model.Notification),
		notificationTypes: make(map[string]model.NotificationType),
	}
}

// clone copies every map. Values are structs; slices inside them are never
// mutated in place, only replaced.
func (s *state) clone() *state {
	next := newState()
	for k, v := range s.notes {
		next.notes[k] = v
	}
	for k, v := range s.rooms {
		next.rooms[k] = v
	}
	for k, v := range s.reminders {
		next.reminders[k] = v
	}
	for k, v := range s.flags {
		next.flags[k] = v
	}
	for k, v := range s.subs {
		next.subs[k] = v
	}
	for k, v := range s.notifications {
		next.notifications[k] = v
	}
	for k, v := range s.notificationTypes {
		next.notificationTypes[k] = v
	}
	return next
}

type op func(s *state) error

// Store is an in-process implementation of the unit-of-work contract used by
// tests and by DB_DRIVER=memory. A transaction buffers its writes and applies
// them to a copy of the state on Commit; the copy replaces the live state only
// if every write succeeded. Reads always observe committed state.
type Store struct {
	mu         sync.RWMutex
	state      *state
	commitHook func(writes int) error
	accesses   atomic.Int64
}

func NewStore() *Store {
	s := &Store{state: newState()}
	for _, t := range model.DefaultNotificationTypes() {
		s.state.notificationTypes[t.Code] = t
	}
	return s
}

// SetCommitHook installs fn to run before a commit is published. A non-nil
// error aborts the commit.
func (s *Store) SetCommitHook(fn func(writes int) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commitHook = fn
}

// PutNotificationType replaces the registry entry for t.Code.
func (s *Store) PutNotificationType(t model.NotificationType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.notificationTypes[t.Code] = t
}

// Accesses counts every repository call made against the store.
func (s *Store) Accesses() int64 {
	return s.accesses.Load()
}

func (s *Store) read(fn func(st *state)) {
	s.accesses.Add(1)
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.state)
}

func (s *Store) apply(ops []op) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.clone()
	for _, o := range ops {
		if err := o(next); err != nil {
			return err
		}
	}
	if s.commitHook != nil {
		if err := s.commitHook(len(ops)); err != nil {
			return err
		}
	}
	s.state = next
	return nil
}

type repositoryFactory struct {
	store *Store
}

func NewRepositoryFactory(store *Store) unitofwork.RepositoryFactory {
	return &repositoryFactory{store: store}
}

func (f *repositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &unitOfWork{store: f.store}
}

type unitOfWork struct {
	store   *Store
	inTx    bool
	pending []op
}

func (u *unitOfWork) exec(o op) error {
	u.store.accesses.Add(1)
	if u.inTx {
		u.pending = append(u.pending, o)
		return nil
	}
	return u.store.apply([]op{o})
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.inTx {
		return fmt.Errorf("transaction already started")
	}
	u.inTx = true
	u.pending = nil
	return nil
}

func (u *unitOfWork) Commit() error {
	if !u.inTx {
		return fmt.Errorf("no transaction to commit")
	}
	ops := u.pending
	u.inTx = false
	u.pending = nil
	return u.store.apply(ops)
}

func (u *unitOfWork) Rollback() error {
	if !u.inTx {
		return fmt.Errorf("no transaction to rollback")
	}
	u.inTx = false
	u.pending = nil
	return nil
}

func (u *unitOfWork) NoteRepository() contract.NoteRepository {
	return &noteRepository{u: u}
}

func (u *unitOfWork) RoomRepository() contract.RoomRepository {
	return &roomRepository{u: u}
}

func (u *unitOfWork) ReminderRepository() contract.ReminderRepository {
	return &reminderRepository{u: u}
}

func (u *unitOfWork) FlagRepository() contract.FlagRepository {
	return &flagRepository{u: u}
}

func (u *unitOfWork) PushSubscriptionRepository() contract.PushSubscriptionRepository {
	return &pushSubscriptionRepository{u: u}
}

func (u *unitOfWork) NotificationRepository() contract.NotificationRepository {
	return &notificationRepository{u: u}
}
