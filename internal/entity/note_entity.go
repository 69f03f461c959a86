package entity

import (
	"time"

	"github.com/google/uuid"
)

const DefaultNoteTitle = "New Note"

// MaxTitleLength is in characters and matches the varchar(255) title columns.
const MaxTitleLength = 255

// Note is the canonical document. Title and parent are mirrored on every Room
// record that references it.
type Note struct {
	Id           uuid.UUID
	Title        string
	ParentNoteId *uuid.UUID
	OwnerId      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
