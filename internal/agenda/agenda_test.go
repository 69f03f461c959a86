package agenda

import (
	"testing"
	"time"

	"collabnote-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reminder(msg string, at time.Time, done bool) *entity.Reminder {
	return &entity.Reminder{
		Id:           uuid.New(),
		UserId:       "a@x.io",
		Message:      msg,
		ReminderTime: at,
		IsDone:       done,
		FlagIds:      []uuid.UUID{},
	}
}

func messages(reminders []*entity.Reminder) []string {
	out := make([]string, 0, len(reminders))
	for _, r := range reminders {
		out = append(out, r.Message)
	}
	return out
}

// Wednesday.
var now = time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC)

func TestGroup(t *testing.T) {
	reminders := []*entity.Reminder{
		reminder("next monday", time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC), false),
		reminder("sunday night", time.Date(2024, 5, 19, 23, 0, 0, 0, time.UTC), false),
		reminder("saturday", time.Date(2024, 5, 18, 9, 0, 0, 0, time.UTC), false),
		reminder("thursday", time.Date(2024, 5, 16, 9, 0, 0, 0, time.UTC), false),
		reminder("this afternoon", time.Date(2024, 5, 15, 15, 0, 0, 0, time.UTC), false),
		reminder("this morning", time.Date(2024, 5, 15, 9, 0, 0, 0, time.UTC), false),
		reminder("monday", time.Date(2024, 5, 13, 9, 0, 0, 0, time.UTC), false),
		reminder("done tomorrow", time.Date(2024, 5, 16, 8, 0, 0, 0, time.UTC), true),
		reminder("done last week", time.Date(2024, 5, 8, 8, 0, 0, 0, time.UTC), true),
	}

	g := Group(reminders, now)

	assert.Equal(t, []string{"monday", "this morning"}, messages(g.Missed))
	assert.Equal(t, []string{"this afternoon"}, messages(g.Today))
	assert.Equal(t, []string{"thursday"}, messages(g.Tomorrow))
	assert.Equal(t, []string{"saturday", "sunday night"}, messages(g.ThisWeek))
	assert.Equal(t, []string{"next monday"}, messages(g.Later))
	assert.Equal(t, []string{"done last week", "done tomorrow"}, messages(g.Completed))
}

func TestGroupUsesLocationOfNow(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	localNow := time.Date(2024, 5, 15, 23, 30, 0, 0, jakarta)
	// Midnight on the 16th in Jakarta, still the 15th in UTC.
	r := reminder("midnight", time.Date(2024, 5, 15, 17, 0, 0, 0, time.UTC), false)

	g := Group([]*entity.Reminder{r}, localNow)
	assert.Equal(t, []string{"midnight"}, messages(g.Tomorrow))
	assert.Empty(t, g.Today)
}

func TestGroupEmpty(t *testing.T) {
	g := Group(nil, now)
	assert.NotNil(t, g.Missed)
	assert.Empty(t, g.Later)
}

func TestSummarize(t *testing.T) {
	reminders := []*entity.Reminder{
		reminder("missed 1", now.Add(-time.Hour), false),
		reminder("missed 2", now.Add(-48*time.Hour), false),
		reminder("missed but done", now.Add(-time.Hour), true),
		reminder("in a week", now.Add(7*24*time.Hour), false),
	}
	for i := 0; i < 7; i++ {
		reminders = append(reminders, reminder("soon", now.Add(time.Duration(i+1)*time.Hour), false))
	}

	s := Summarize(reminders, now)
	assert.Equal(t, 2, s.MissedCount)
	require.Len(t, s.Upcoming, UpcomingLimit)
	for i := 1; i < len(s.Upcoming); i++ {
		assert.True(t, s.Upcoming[i-1].ReminderTime.Before(s.Upcoming[i].ReminderTime))
	}
}

func TestFilter(t *testing.T) {
	work, home := uuid.New(), uuid.New()
	a := reminder("Call the Dentist", now, false)
	a.FlagIds = []uuid.UUID{work, home}
	b := reminder("dentist invoice", now, false)
	b.FlagIds = []uuid.UUID{work}
	c := reminder("groceries", now, false)

	tests := []struct {
		name   string
		search string
		flags  []uuid.UUID
		want   []string
	}{
		{name: "no filter", want: []string{"Call the Dentist", "dentist invoice", "groceries"}},
		{name: "search is case-insensitive", search: "DENTIST", want: []string{"Call the Dentist", "dentist invoice"}},
		{name: "one flag", flags: []uuid.UUID{work}, want: []string{"Call the Dentist", "dentist invoice"}},
		{name: "all flags required", flags: []uuid.UUID{work, home}, want: []string{"Call the Dentist"}},
		{name: "search and flags", search: "invoice", flags: []uuid.UUID{home}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter([]*entity.Reminder{a, b, c}, tt.search, tt.flags)
			assert.Equal(t, tt.want, messages(got))
		})
	}
}
