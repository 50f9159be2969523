package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sdh-lhota/duty-roster/backend/internal/domain"
)

func intp(v int) *int { return &v }

func night(members ...*domain.Assignment) map[domain.SlotKey]*domain.Assignment {
	slots := make(map[domain.SlotKey]*domain.Assignment)
	keys := domain.SlotKeys
	for i, m := range members {
		slots[keys[i]] = m
	}
	return slots
}

func TestAggregateFutureCutoff(t *testing.T) {
	// u1 serves the 10th and the 20th; today is the 15th, so only the 10th counts
	doc := domain.NewRosterDocument()
	doc.Days[10] = &domain.DayRecord{NightShift: night(&domain.Assignment{UID: "u1", Name: "Jan Novák", Qualified: true})}
	doc.Days[20] = &domain.DayRecord{NightShift: night(&domain.Assignment{UID: "u1", Name: "Jan Novák", Qualified: true})}

	today := time.Date(2026, time.August, 15, 14, 30, 0, 0, time.UTC)
	s := Aggregate(doc, 2026, time.August, today)

	require.Equal(t, "2026-08", s.Month)
	require.Equal(t, domain.DefaultNightHours, s.GrandTotal)
	require.Equal(t, 1, s.ActiveMembers)
	require.Equal(t, 1, s.DaysServed)
	require.Len(t, s.Days, 31)

	require.False(t, s.Days[9].Future)
	require.Equal(t, domain.DefaultNightHours, s.Days[9].Total)

	require.True(t, s.Days[19].Future)
	require.Equal(t, 0, s.Days[19].Total, "a future day contributes nothing")
	require.Equal(t, "Noční: Jan", s.Days[19].Description, "planning data stays visible")
}

func TestAggregateTodayCountsAsServed(t *testing.T) {
	doc := domain.NewRosterDocument()
	doc.Days[15] = &domain.DayRecord{NightShift: night(&domain.Assignment{UID: "u1", Name: "Jan Novák", Qualified: true})}

	// late evening of the 15th, the comparison must ignore the time of day
	today := time.Date(2026, time.August, 15, 23, 59, 0, 0, time.UTC)
	s := Aggregate(doc, 2026, time.August, today)

	require.False(t, s.Days[14].Future)
	require.Equal(t, domain.DefaultNightHours, s.GrandTotal)
}

func TestAggregateTotalsAndLeaderboard(t *testing.T) {
	doc := domain.NewRosterDocument()
	add := func(day int, uid, name string) {
		rec := doc.Days[day]
		if rec == nil {
			rec = &domain.DayRecord{NightShift: map[domain.SlotKey]*domain.Assignment{}}
			doc.Days[day] = rec
		}
		for _, key := range domain.SlotKeys {
			if rec.NightShift[key] == nil {
				rec.NightShift[key] = &domain.Assignment{UID: uid, Name: name, Qualified: true}
				return
			}
		}
	}

	// u1: 3 nights, u2: 2 nights, u3: 1 night
	for day := 1; day <= 3; day++ {
		add(day, "u1", "Jan Novák")
	}
	for day := 1; day <= 2; day++ {
		add(day, "u2", "Petr Dvořák")
	}
	add(1, "u3", "Milan Fiala")

	today := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	s := Aggregate(doc, 2026, time.August, today)

	require.Equal(t, 6*domain.DefaultNightHours, s.GrandTotal)
	require.Equal(t, 0, s.GrandDay)
	require.Equal(t, 6*domain.DefaultNightHours, s.GrandNight)
	require.Equal(t, 3, s.ActiveMembers)
	require.Equal(t, 3, s.DaysServed)
	require.Equal(t, 22, s.AveragePerActive) // 66/3

	require.Len(t, s.Leaderboard, 3)
	require.Equal(t, "u1", s.Leaderboard[0].UID)
	require.Equal(t, "u2", s.Leaderboard[1].UID)
	require.Equal(t, "u3", s.Leaderboard[2].UID)
	require.Equal(t, s.Members, s.Leaderboard)
}

func TestAggregateLeaderboardCapAndTies(t *testing.T) {
	doc := domain.NewRosterDocument()
	// seven members, one night each; names force a Czech collation tie-break
	names := []string{"Šimon A", "Adam B", "Cyril C", "Chvála D", "David E", "Emil F", "Bedřich G"}
	for i, name := range names {
		day := i + 1
		doc.Days[day] = &domain.DayRecord{NightShift: night(&domain.Assignment{
			UID: name[len(name)-1:], Name: name, Qualified: true,
		})}
	}

	today := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	s := Aggregate(doc, 2026, time.August, today)

	require.Equal(t, 7, s.ActiveMembers)
	require.Len(t, s.Leaderboard, LeaderboardSize)
	require.Len(t, s.Members, 7)

	// equal totals sort by name under Czech collation: ch after h, š after s
	got := make([]string, len(s.Members))
	for i, m := range s.Members {
		got[i] = m.Name
	}
	require.Equal(t, []string{"Adam B", "Bedřich G", "Cyril C", "David E", "Emil F", "Chvála D", "Šimon A"}, got)
}

func TestAggregateGhostHours(t *testing.T) {
	// an override for a member who holds no slot that month still counts
	doc := domain.NewRosterDocument()
	doc.Days[3] = &domain.DayRecord{
		Hours: map[string]*domain.HoursOverride{"ghost": {Night: intp(4)}},
	}

	today := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	s := Aggregate(doc, 2026, time.August, today)

	require.Equal(t, 1, s.ActiveMembers)
	require.Equal(t, 4, s.GrandTotal)
	require.Equal(t, "ghost", s.Members[0].UID)
	require.Equal(t, unknownMemberName, s.Members[0].Name)
}

func TestAggregateLegacyHours(t *testing.T) {
	doc := domain.NewRosterDocument()
	doc.Days[3] = &domain.DayRecord{
		NightShift: night(&domain.Assignment{UID: "u1", Name: "Jan Novák", Qualified: true}),
		Hours:      map[string]*domain.HoursOverride{"u1": {Legacy: intp(7)}},
	}

	today := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	s := Aggregate(doc, 2026, time.August, today)

	require.Equal(t, 7, s.GrandTotal)
	require.Equal(t, 0, s.GrandDay)
	require.Equal(t, 0, s.GrandNight, "the legacy number carries no split")
	require.Equal(t, 7, s.Members[0].Total)
}

func TestAggregateZeroOverrideMemberIsInactive(t *testing.T) {
	doc := domain.NewRosterDocument()
	doc.Days[3] = &domain.DayRecord{
		NightShift: night(&domain.Assignment{UID: "u1", Name: "Jan Novák", Qualified: true}),
		Hours:      map[string]*domain.HoursOverride{"u1": {Night: intp(0)}},
	}

	today := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	s := Aggregate(doc, 2026, time.August, today)

	require.Equal(t, 0, s.ActiveMembers)
	require.Equal(t, 0, s.GrandTotal)
	require.Equal(t, 0, s.DaysServed)
	require.Empty(t, s.Members)
}

func TestDescribeDay(t *testing.T) {
	t.Run("night first, first-name tokens, slot order", func(t *testing.T) {
		rec := &domain.DayRecord{
			DayShiftEnabled: true,
			DayShift: map[domain.SlotKey]*domain.Assignment{
				domain.SlotHasic1: {UID: "u3", Name: "Milan Fiala"},
			},
			NightShift: map[domain.SlotKey]*domain.Assignment{
				domain.SlotVelitel: {UID: "u1", Name: "Jan Novák"},
				domain.SlotHasic1:  {UID: "u2", Name: "Petr Dvořák"},
			},
		}
		require.Equal(t, "Noční: Jan, Petr | Denní: Milan", describeDay(rec))
	})

	t.Run("empty days render a dash", func(t *testing.T) {
		require.Equal(t, "-", describeDay(nil))
		require.Equal(t, "-", describeDay(&domain.DayRecord{}))
	})
}

func TestAverageRounding(t *testing.T) {
	// two members, totals 11 and 22 -> average 16.5 rounds to 17
	doc := domain.NewRosterDocument()
	doc.Days[1] = &domain.DayRecord{NightShift: map[domain.SlotKey]*domain.Assignment{
		domain.SlotHasic1: {UID: "u1", Name: "Jan Novák", Qualified: true},
		domain.SlotHasic2: {UID: "u2", Name: "Petr Dvořák", Qualified: true},
	}}
	doc.Days[2] = &domain.DayRecord{NightShift: map[domain.SlotKey]*domain.Assignment{
		domain.SlotHasic1: {UID: "u2", Name: "Petr Dvořák", Qualified: true},
	}}

	today := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	s := Aggregate(doc, 2026, time.August, today)

	require.Equal(t, 33, s.GrandTotal)
	require.Equal(t, 17, s.AveragePerActive)
}
