// Package stats folds the hours derivation over a roster month: totals per
// member, the leaderboard and per-day rows for the overview table. Future
// days stay visible as planning data but contribute nothing to any sum.
package stats

import (
	"math"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/sdh-lhota/duty-roster/backend/internal/domain"
	"github.com/sdh-lhota/duty-roster/backend/internal/engine"
)

const unknownMemberName = "Neznámý uživatel"

// LeaderboardSize caps the leaderboard; the full member list is unbounded.
const LeaderboardSize = 5

type MemberTotal struct {
	UID   string `json:"uid"`
	Name  string `json:"name"`
	Day   int    `json:"day"`
	Night int    `json:"night"`
	Total int    `json:"total"`
}

type DayRow struct {
	Day         int    `json:"day"`
	Description string `json:"description"`
	Total       int    `json:"total"`
	Future      bool   `json:"future"`
}

type MonthStatistics struct {
	Month            string        `json:"month"`
	GrandTotal       int           `json:"grandTotal"`
	GrandDay         int           `json:"grandDay"`
	GrandNight       int           `json:"grandNight"`
	ActiveMembers    int           `json:"activeMembers"`
	AveragePerActive int           `json:"averagePerActive"`
	DaysServed       int           `json:"daysServed"`
	Leaderboard      []MemberTotal `json:"leaderboard"`
	Members          []MemberTotal `json:"members"`
	Days             []DayRow      `json:"days"`
}

// Aggregate computes the month's statistics from a snapshot. today anchors
// the future cut-off; the comparison is date-only, time of day ignored.
func Aggregate(doc *domain.RosterDocument, year int, month time.Month, today time.Time) *MonthStatistics {
	s := &MonthStatistics{
		Month:       domain.FormatMonthID(year, month),
		Leaderboard: []MemberTotal{},
		Members:     []MemberTotal{},
	}

	names := collectMembers(doc)
	daysCount := domain.DaysInMonth(year, month)

	totals := make(map[string]*MemberTotal, len(names))
	for uid, name := range names {
		totals[uid] = &MemberTotal{UID: uid, Name: name}
	}

	for day := 1; day <= daysCount; day++ {
		rec := doc.Day(day)
		future := isFuture(year, month, day, today)

		row := DayRow{Day: day, Description: describeDay(rec), Future: future}
		if !future {
			for uid, t := range totals {
				h := engine.EffectiveHours(rec, uid)
				t.Day += h.Day
				t.Night += h.Night
				t.Total += h.Total
				row.Total += h.Total
			}
			if row.Total > 0 {
				s.DaysServed++
			}
		}
		s.Days = append(s.Days, row)
	}

	active := make([]MemberTotal, 0, len(totals))
	for _, t := range totals {
		if t.Total > 0 {
			active = append(active, *t)
		}
	}

	coll := collate.New(language.Czech)
	sort.Slice(active, func(i, j int) bool {
		if active[i].Total != active[j].Total {
			return active[i].Total > active[j].Total
		}
		if c := coll.CompareString(active[i].Name, active[j].Name); c != 0 {
			return c < 0
		}
		return active[i].UID < active[j].UID
	})

	for _, t := range active {
		s.GrandTotal += t.Total
		s.GrandDay += t.Day
		s.GrandNight += t.Night
	}
	s.ActiveMembers = len(active)
	if s.ActiveMembers > 0 {
		s.AveragePerActive = int(math.Round(float64(s.GrandTotal) / float64(s.ActiveMembers)))
	}
	s.Members = active
	if len(active) > LeaderboardSize {
		s.Leaderboard = append(s.Leaderboard, active[:LeaderboardSize]...)
	} else {
		s.Leaderboard = append(s.Leaderboard, active...)
	}

	return s
}

// collectMembers gathers every uid seen in a slot or an hours override.
// Override-only members (ghost hours) keep the name seen in any slot that
// month, else a placeholder.
func collectMembers(doc *domain.RosterDocument) map[string]string {
	names := make(map[string]string)
	if doc == nil {
		return names
	}
	for _, rec := range doc.Days {
		for _, half := range []domain.ShiftHalf{domain.ShiftDay, domain.ShiftNight} {
			for _, a := range rec.Shift(half) {
				if a != nil && a.UID != "" {
					names[a.UID] = a.Name
				}
			}
		}
	}
	for _, rec := range doc.Days {
		for uid := range rec.Hours {
			if _, ok := names[uid]; !ok {
				names[uid] = unknownMemberName
			}
		}
	}
	return names
}

// describeDay renders the crew summary shown in the overview table, night
// shift first, members by their first name token.
func describeDay(rec *domain.DayRecord) string {
	if rec == nil {
		return "-"
	}
	var parts []string
	if crew := crewNames(rec.NightShift); crew != "" {
		parts = append(parts, "Noční: "+crew)
	}
	if crew := crewNames(rec.DayShift); crew != "" {
		parts = append(parts, "Denní: "+crew)
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " | ")
}

func crewNames(slots map[domain.SlotKey]*domain.Assignment) string {
	var names []string
	for _, key := range domain.SlotKeys {
		a := slots[key]
		if a == nil {
			continue
		}
		if fields := strings.Fields(a.Name); len(fields) > 0 {
			names = append(names, fields[0])
		}
	}
	return strings.Join(names, ", ")
}

func isFuture(year int, month time.Month, day int, today time.Time) bool {
	date := time.Date(year, month, day, 0, 0, 0, 0, today.Location())
	t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	return date.After(t)
}
