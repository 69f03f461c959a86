package memory

import (
	"context"
	"sort"
	"time"

	"collabnote-be/internal/entity"

	"github.com/google/uuid"
)

type reminderRepository struct {
	u *unitOfWork
}

func cloneReminder(r entity.Reminder) *entity.Reminder {
	r.FlagIds = append([]uuid.UUID(nil), r.FlagIds...)
	r.NoteId = copyID(r.NoteId)
	return &r
}

func sortByReminderTime(reminders []*entity.Reminder) {
	sort.SliceStable(reminders, func(i, j int) bool {
		if !reminders[i].ReminderTime.Equal(reminders[j].ReminderTime) {
			return reminders[i].ReminderTime.Before(reminders[j].ReminderTime)
		}
		return reminders[i].CreatedAt.Before(reminders[j].CreatedAt)
	})
}

func (r *reminderRepository) Create(ctx context.Context, reminder *entity.Reminder) error {
	now := time.Now()
	if reminder.Id == uuid.Nil {
		reminder.Id = uuid.New()
	}
	if reminder.CreatedAt.IsZero() {
		reminder.CreatedAt = now
	}
	reminder.UpdatedAt = now
	if reminder.FlagIds == nil {
		reminder.FlagIds = []uuid.UUID{}
	}
	v := *cloneReminder(*reminder)
	return r.u.exec(func(s *state) error {
		s.reminders[v.Id] = v
		return nil
	})
}

func (r *reminderRepository) FindOne(ctx context.Context, userId string, id uuid.UUID) (*entity.Reminder, error) {
	var found *entity.Reminder
	r.u.store.read(func(s *state) {
		if rem, ok := s.reminders[id]; ok && rem.UserId == userId {
			found = cloneReminder(rem)
		}
	})
	return found, nil
}

func (r *reminderRepository) FindByUser(ctx context.Context, userId string) ([]*entity.Reminder, error) {
	reminders := make([]*entity.Reminder, 0)
	r.u.store.read(func(s *state) {
		for _, rem := range s.reminders {
			if rem.UserId == userId {
				reminders = append(reminders, cloneReminder(rem))
			}
		}
	})
	sortByReminderTime(reminders)
	return reminders, nil
}

func (r *reminderRepository) Update(ctx context.Context, reminder *entity.Reminder) error {
	reminder.UpdatedAt = time.Now()
	v := *cloneReminder(*reminder)
	return r.u.exec(func(s *state) error {
		existing, ok := s.reminders[v.Id]
		if !ok || existing.UserId != v.UserId {
			return entity.ErrNotFound
		}
		s.reminders[v.Id] = v
		return nil
	})
}

// UpdateFields applies the patch to the stored row at commit time, so fields
// outside the patch keep whatever value is current then.
func (r *reminderRepository) UpdateFields(ctx context.Context, userId string, id uuid.UUID, patch entity.ReminderPatch) error {
	if patch.IsEmpty() {
		return nil
	}
	if patch.FlagIds != nil {
		flagIds := append([]uuid.UUID{}, (*patch.FlagIds)...)
		patch.FlagIds = &flagIds
	}
	return r.u.exec(func(s *state) error {
		existing, ok := s.reminders[id]
		if !ok || existing.UserId != userId {
			return entity.ErrNotFound
		}
		patch.Apply(&existing)
		s.reminders[id] = existing
		return nil
	})
}

func (r *reminderRepository) Delete(ctx context.Context, userId string, id uuid.UUID) error {
	return r.u.exec(func(s *state) error {
		existing, ok := s.reminders[id]
		if !ok || existing.UserId != userId {
			return entity.ErrNotFound
		}
		delete(s.reminders, id)
		return nil
	})
}

func (r *reminderRepository) FindDue(ctx context.Context, now time.Time) ([]*entity.Reminder, error) {
	reminders := make([]*entity.Reminder, 0)
	r.u.store.read(func(s *state) {
		for _, rem := range s.reminders {
			if !rem.IsSent && !rem.ReminderTime.After(now) {
				reminders = append(reminders, cloneReminder(rem))
			}
		}
	})
	sortByReminderTime(reminders)
	return reminders, nil
}

func (r *reminderRepository) MarkSent(ctx context.Context, ids []uuid.UUID) error {
	targets := append([]uuid.UUID(nil), ids...)
	return r.u.exec(func(s *state) error {
		for _, id := range targets {
			if rem, ok := s.reminders[id]; ok {
				rem.IsSent = true
				s.reminders[id] = rem
			}
		}
		return nil
	})
}

type flagRepository struct {
	u *unitOfWork
}

func (r *flagRepository) Create(ctx context.Context, flag *entity.Flag) error {
	if flag.Id == uuid.Nil {
		flag.Id = uuid.New()
	}
	if flag.CreatedAt.IsZero() {
		flag.CreatedAt = time.Now()
	}
	v := *flag
	return r.u.exec(func(s *state) error {
		s.flags[v.Id] = v
		return nil
	})
}

func (r *flagRepository) FindByUser(ctx context.Context, userId string) ([]*entity.Flag, error) {
	flags := make([]*entity.Flag, 0)
	r.u.store.read(func(s *state) {
		for _, f := range s.flags {
			if f.UserId == userId {
				f := f
				flags = append(flags, &f)
			}
		}
	})
	sort.Slice(flags, func(i, j int) bool {
		return flags[i].CreatedAt.Before(flags[j].CreatedAt)
	})
	return flags, nil
}
