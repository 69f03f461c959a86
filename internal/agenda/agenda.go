// Package agenda buckets a user's reminders the way the reminders and home
// pages present them. Every function is pure; calendar math uses the
// location of the supplied now.
package agenda

import (
	"sort"
	"strings"
	"time"

	"collabnote-be/internal/entity"

	"github.com/google/uuid"
)

const UpcomingLimit = 5

type Groups struct {
	Missed    []*entity.Reminder
	Today     []*entity.Reminder
	Tomorrow  []*entity.Reminder
	ThisWeek  []*entity.Reminder
	Later     []*entity.Reminder
	Completed []*entity.Reminder
}

type Summary struct {
	MissedCount int
	Upcoming    []*entity.Reminder
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the Monday that opens the week containing t.
func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// clock pins reminder times to the location of now.
type clock struct {
	now      time.Time
	tomorrow time.Time
	weekEnd  time.Time
}

func newClock(now time.Time) clock {
	today := startOfDay(now)
	return clock{
		now:      now,
		tomorrow: today.AddDate(0, 0, 1),
		weekEnd:  startOfWeek(now).AddDate(0, 0, 7),
	}
}

func (c clock) local(t time.Time) time.Time { return t.In(c.now.Location()) }

func (c clock) isPast(t time.Time) bool { return t.Before(c.now) }

func (c clock) isToday(t time.Time) bool { return sameDay(c.local(t), c.now) }

func (c clock) isTomorrow(t time.Time) bool { return sameDay(c.local(t), c.tomorrow) }

func (c clock) isThisWeek(t time.Time) bool {
	lt := c.local(t)
	return !lt.Before(startOfWeek(c.now)) && lt.Before(c.weekEnd)
}

func sortedCopy(reminders []*entity.Reminder) []*entity.Reminder {
	out := append([]*entity.Reminder(nil), reminders...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ReminderTime.Before(out[j].ReminderTime)
	})
	return out
}

// Group places each reminder in the first bucket it qualifies for: completed,
// missed, today, tomorrow, this week (weeks start on Monday), later. Each
// bucket is ordered by reminder time.
func Group(reminders []*entity.Reminder, now time.Time) Groups {
	g := Groups{
		Missed:    make([]*entity.Reminder, 0),
		Today:     make([]*entity.Reminder, 0),
		Tomorrow:  make([]*entity.Reminder, 0),
		ThisWeek:  make([]*entity.Reminder, 0),
		Later:     make([]*entity.Reminder, 0),
		Completed: make([]*entity.Reminder, 0),
	}
	c := newClock(now)
	for _, r := range sortedCopy(reminders) {
		switch {
		case r.IsDone:
			g.Completed = append(g.Completed, r)
		case c.isPast(r.ReminderTime):
			g.Missed = append(g.Missed, r)
		case c.isToday(r.ReminderTime):
			g.Today = append(g.Today, r)
		case c.isTomorrow(r.ReminderTime):
			g.Tomorrow = append(g.Tomorrow, r)
		case c.isThisWeek(r.ReminderTime):
			g.ThisWeek = append(g.ThisWeek, r)
		default:
			g.Later = append(g.Later, r)
		}
	}
	return g
}

// Summarize counts open reminders already past due and lists the next open
// reminders due today or tomorrow.
func Summarize(reminders []*entity.Reminder, now time.Time) Summary {
	c := newClock(now)
	s := Summary{Upcoming: make([]*entity.Reminder, 0, UpcomingLimit)}
	for _, r := range sortedCopy(reminders) {
		if r.IsDone {
			continue
		}
		if c.isPast(r.ReminderTime) {
			s.MissedCount++
			continue
		}
		if len(s.Upcoming) < UpcomingLimit && (c.isToday(r.ReminderTime) || c.isTomorrow(r.ReminderTime)) {
			s.Upcoming = append(s.Upcoming, r)
		}
	}
	return s
}

// Filter keeps reminders whose message contains search (case-insensitive)
// and that carry every one of flagIds.
func Filter(reminders []*entity.Reminder, search string, flagIds []uuid.UUID) []*entity.Reminder {
	q := strings.ToLower(strings.TrimSpace(search))
	kept := make([]*entity.Reminder, 0, len(reminders))
	for _, r := range reminders {
		if q != "" && !strings.Contains(strings.ToLower(r.Message), q) {
			continue
		}
		if !r.HasFlags(flagIds) {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}
