package memory

import (
	"context"
	"time"

	"collabnote-be/internal/entity"

	"github.com/google/uuid"
)

type noteRepository struct {
	u *unitOfWork
}

func (r *noteRepository) Create(ctx context.Context, note *entity.Note) error {
	now := time.Now()
	if note.Id == uuid.Nil {
		note.Id = uuid.New()
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = now
	}
	if note.UpdatedAt.IsZero() {
		note.UpdatedAt = now
	}
	n := *note
	return r.u.exec(func(s *state) error {
		s.notes[n.Id] = n
		return nil
	})
}

func (r *noteRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Note, error) {
	var found *entity.Note
	r.u.store.read(func(s *state) {
		if n, ok := s.notes[id]; ok {
			found = &n
		}
	})
	return found, nil
}

func (r *noteRepository) UpdateTitle(ctx context.Context, id uuid.UUID, title string, at time.Time) error {
	return r.u.exec(func(s *state) error {
		n, ok := s.notes[id]
		if !ok {
			return entity.ErrNotFound
		}
		n.Title = title
		n.UpdatedAt = at
		s.notes[id] = n
		return nil
	})
}

func (r *noteRepository) ReparentChildren(ctx context.Context, parentId uuid.UUID, newParent *uuid.UUID) error {
	return r.u.exec(func(s *state) error {
		for id, n := range s.notes {
			if n.ParentNoteId != nil && *n.ParentNoteId == parentId {
				n.ParentNoteId = copyID(newParent)
				s.notes[id] = n
			}
		}
		return nil
	})
}

func (r *noteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.u.exec(func(s *state) error {
		delete(s.notes, id)
		return nil
	})
}

func copyID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
