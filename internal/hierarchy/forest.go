// Package hierarchy turns one user's flat list of room records into the trees
// shown by the sidebar, the trash page and the note listings.
package hierarchy

import (
	"sort"
	"strings"

	"collabnote-be/internal/entity"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type View string

const (
	ViewActive View = "active"
	ViewTrash  View = "trash"
	ViewAll    View = "all"
)

func ParseView(s string) (View, bool) {
	switch View(s) {
	case ViewActive, ViewTrash, ViewAll:
		return View(s), true
	case "":
		return ViewActive, true
	}
	return "", false
}

func (v View) includes(r *entity.Room) bool {
	switch v {
	case ViewTrash:
		return r.Archived
	case ViewAll:
		return true
	default:
		return !r.Archived
	}
}

type SortKey string

const (
	SortUpdatedAt SortKey = "updatedAt"
	SortCreatedAt SortKey = "createdAt"
	SortTitle     SortKey = "title"
)

func ParseSortKey(s string) (SortKey, bool) {
	switch SortKey(s) {
	case SortUpdatedAt, SortCreatedAt, SortTitle:
		return SortKey(s), true
	case "":
		return SortUpdatedAt, true
	}
	return "", false
}

type Node struct {
	Room     *entity.Room
	Children []*Node
}

// BuildForest groups the records of the view by parentNoteId. A record whose
// parent is absent from the view becomes a root. Records caught in a parent
// cycle are promoted to roots so nothing is dropped.
func BuildForest(records []*entity.Room, view View) []*Node {
	nodes := make(map[uuid.UUID]*Node)
	order := make([]*Node, 0, len(records))
	for _, r := range records {
		if !view.includes(r) {
			continue
		}
		if _, dup := nodes[r.RoomId]; dup {
			continue
		}
		n := &Node{Room: r}
		nodes[r.RoomId] = n
		order = append(order, n)
	}

	parentOf := make(map[uuid.UUID]*Node)
	roots := make([]*Node, 0)
	for _, n := range order {
		pid := n.Room.ParentNoteId
		if pid != nil && *pid != n.Room.RoomId {
			if parent, ok := nodes[*pid]; ok {
				parent.Children = append(parent.Children, n)
				parentOf[n.Room.RoomId] = parent
				continue
			}
		}
		roots = append(roots, n)
	}

	reached := make(map[uuid.UUID]bool, len(order))
	var mark func(*Node)
	mark = func(n *Node) {
		if reached[n.Room.RoomId] {
			return
		}
		reached[n.Room.RoomId] = true
		for _, c := range n.Children {
			mark(c)
		}
	}
	for _, r := range roots {
		mark(r)
	}
	for _, n := range order {
		if reached[n.Room.RoomId] {
			continue
		}
		if parent := parentOf[n.Room.RoomId]; parent != nil {
			parent.Children = removeNode(parent.Children, n)
		}
		roots = append(roots, n)
		mark(n)
	}
	return roots
}

func removeNode(list []*Node, target *Node) []*Node {
	out := list[:0]
	for _, n := range list {
		if n != target {
			out = append(out, n)
		}
	}
	return out
}

// SortForest orders every sibling list in place and returns nodes.
// Dates sort newest first, titles alphabetically; ties fall back to roomId.
func SortForest(nodes []*Node, key SortKey) []*Node {
	less := comparator(key)
	var walk func([]*Node)
	walk = func(list []*Node) {
		sort.SliceStable(list, func(i, j int) bool {
			return less(list[i].Room, list[j].Room)
		})
		for _, n := range list {
			walk(n.Children)
		}
	}
	walk(nodes)
	return nodes
}

// SortRecords orders a flat list with the same rules as SortForest.
func SortRecords(records []*entity.Room, key SortKey) []*entity.Room {
	less := comparator(key)
	sort.SliceStable(records, func(i, j int) bool {
		return less(records[i], records[j])
	})
	return records
}

func comparator(key SortKey) func(a, b *entity.Room) bool {
	tie := func(a, b *entity.Room) bool {
		return a.RoomId.String() < b.RoomId.String()
	}
	switch key {
	case SortTitle:
		c := collate.New(language.Und)
		return func(a, b *entity.Room) bool {
			if r := c.CompareString(a.Title, b.Title); r != 0 {
				return r < 0
			}
			return tie(a, b)
		}
	case SortCreatedAt:
		return func(a, b *entity.Room) bool {
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return tie(a, b)
		}
	default:
		return func(a, b *entity.Room) bool {
			if !a.UpdatedAt.Equal(b.UpdatedAt) {
				return a.UpdatedAt.After(b.UpdatedAt)
			}
			return tie(a, b)
		}
	}
}

// FilterForest keeps nodes whose title contains query (case-insensitive) and
// every ancestor of such a node. An empty query returns nodes unchanged.
func FilterForest(nodes []*Node, query string) []*Node {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nodes
	}
	var filter func([]*Node) []*Node
	filter = func(list []*Node) []*Node {
		kept := make([]*Node, 0)
		for _, n := range list {
			children := filter(n.Children)
			if len(children) > 0 || matches(n.Room, q) {
				kept = append(kept, &Node{Room: n.Room, Children: children})
			}
		}
		return kept
	}
	return filter(nodes)
}

func FilterRecords(records []*entity.Room, query string) []*entity.Room {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return records
	}
	kept := make([]*entity.Room, 0)
	for _, r := range records {
		if matches(r, q) {
			kept = append(kept, r)
		}
	}
	return kept
}

func matches(r *entity.Room, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(r.Title), lowerQuery)
}

// Count returns the number of nodes in the forest.
func Count(nodes []*Node) int {
	total := 0
	for _, n := range nodes {
		total += 1 + Count(n.Children)
	}
	return total
}
