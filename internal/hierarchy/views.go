package hierarchy

import (
	"collabnote-be/internal/entity"

	"github.com/google/uuid"
)

type RoleGroups struct {
	Owner  []*entity.Room
	Editor []*entity.Room
}

func GroupByRole(records []*entity.Room) RoleGroups {
	groups := RoleGroups{
		Owner:  make([]*entity.Room, 0),
		Editor: make([]*entity.Room, 0),
	}
	for _, r := range records {
		if r.IsOwner() {
			groups.Owner = append(groups.Owner, r)
		} else {
			groups.Editor = append(groups.Editor, r)
		}
	}
	return groups
}

func Active(records []*entity.Room) []*entity.Room {
	kept := make([]*entity.Room, 0, len(records))
	for _, r := range records {
		if !r.Archived {
			kept = append(kept, r)
		}
	}
	return kept
}

// QuickAccess returns the pinned records that are not in the trash.
func QuickAccess(records []*entity.Room) []*entity.Room {
	kept := make([]*entity.Room, 0)
	for _, r := range records {
		if r.QuickAccess && !r.Archived {
			kept = append(kept, r)
		}
	}
	return kept
}

// Recent returns active, unpinned records by last update, at most limit of
// them. A limit of zero or less returns all.
func Recent(records []*entity.Room, limit int) []*entity.Room {
	kept := make([]*entity.Room, 0)
	for _, r := range records {
		if !r.Archived && !r.QuickAccess {
			kept = append(kept, r)
		}
	}
	SortRecords(kept, SortUpdatedAt)
	if limit > 0 && len(kept) > limit {
		kept = kept[:limit]
	}
	return kept
}

// Ancestors walks the parent chain of roomId through the given records and
// returns it root first, excluding roomId itself. The walk stops at a missing
// parent or a repeated id.
func Ancestors(records []*entity.Room, roomId uuid.UUID) []*entity.Room {
	index := make(map[uuid.UUID]*entity.Room, len(records))
	for _, r := range records {
		index[r.RoomId] = r
	}
	current, ok := index[roomId]
	if !ok {
		return []*entity.Room{}
	}

	seen := map[uuid.UUID]bool{roomId: true}
	chain := make([]*entity.Room, 0)
	for current.ParentNoteId != nil {
		pid := *current.ParentNoteId
		if seen[pid] {
			break
		}
		parent, ok := index[pid]
		if !ok {
			break
		}
		seen[pid] = true
		chain = append(chain, parent)
		current = parent
	}

	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}
