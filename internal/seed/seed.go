// Package seed fills a demo month so the frontend has something to render.
package seed

import (
	"log/slog"
	"math/rand"

	"github.com/sdh-lhota/duty-roster/backend/internal/domain"
	"github.com/sdh-lhota/duty-roster/backend/internal/repository"
	"github.com/sdh-lhota/duty-roster/backend/internal/utils"
)

type Member struct {
	UID   string
	Name  string
	Roles []domain.Role
}

func (m *Member) assignment(slot domain.SlotKey) *domain.Assignment {
	return &domain.Assignment{
		UID:       m.UID,
		Name:      m.Name,
		Qualified: domain.IsQualified(slot, m.Roles),
	}
}

// GenerateMembers builds a random brigade. The first two members always carry
// the VD and Strojník roles so every slot type can be filled.
func GenerateMembers(n int) []*Member {
	if n < 3 {
		n = 3
	}

	members := make([]*Member, n)
	for i := range members {
		members[i] = &Member{
			UID:   utils.GenerateRandomUID(20),
			Name:  utils.GenerateRandomCzechName(),
			Roles: domain.NormalizeRoles(utils.GenerateRandomRoles(), ""),
		}
	}
	members[0].Roles = []domain.Role{domain.RoleVD}
	members[1].Roles = []domain.Role{domain.RoleStrojnik}

	return members
}

func membersWithRole(members []*Member, roles ...domain.Role) []*Member {
	out := []*Member{}
	for _, m := range members {
		ident := &domain.Identity{Roles: m.Roles}
		if ident.HasRole(roles...) {
			out = append(out, m)
		}
	}
	return out
}

func pick(members []*Member, used map[string]bool) *Member {
	for _, i := range rand.Perm(len(members)) {
		if !used[members[i].UID] {
			return members[i]
		}
	}
	return nil
}

func crewPatch(patch *domain.DayPatch, half domain.ShiftHalf, members []*Member, leaders []*Member, drivers []*Member) {
	used := map[string]bool{}

	if leader := pick(leaders, used); leader != nil {
		used[leader.UID] = true
		patch.SetSlot(half, domain.SlotVelitel, leader.assignment(domain.SlotVelitel))
	}
	if driver := pick(drivers, used); driver != nil {
		used[driver.UID] = true
		patch.SetSlot(half, domain.SlotStrojnik, driver.assignment(domain.SlotStrojnik))
	}

	for _, slot := range domain.FirefighterSlots {
		if rand.Intn(3) == 0 {
			continue // leave some slots open
		}
		m := pick(members, used)
		if m == nil {
			break
		}
		used[m.UID] = true
		patch.SetSlot(half, slot, m.assignment(slot))
	}
}

// SeedMonth writes a plausible roster for the given month: a night crew most
// days, a handful of day shifts, and an occasional explicit hours override.
func SeedMonth(repo *repository.Repository, monthID string, members []*Member) error {
	year, month, err := domain.ParseMonthID(monthID)
	if err != nil {
		return err
	}

	leaders := membersWithRole(members, domain.RoleVD, domain.RoleVJ, domain.RoleDeputyVJ, domain.RoleAdmin)
	drivers := membersWithRole(members, domain.RoleStrojnik, domain.RoleAdmin)

	days := domain.DaysInMonth(year, month)
	seeded := 0
	for day := 1; day <= days; day++ {
		patch := &domain.DayPatch{}

		if rand.Intn(10) > 0 { // most nights are covered
			crewPatch(patch, domain.ShiftNight, members, leaders, drivers)
		}
		if rand.Intn(4) == 0 { // day shifts are the exception
			enabled := true
			patch.SetDayShiftEnabled = &enabled
			crewPatch(patch, domain.ShiftDay, members, leaders, drivers)
		}
		if rand.Intn(8) == 0 {
			// a member who left early gets a shortened night
			m := members[rand.Intn(len(members))]
			patch.SetSlot(domain.ShiftNight, domain.SlotHasic3, m.assignment(domain.SlotHasic3))
			patch.SetHoursField(m.UID, &domain.HoursField{
				Day:   &domain.ComponentField{Value: 0},
				Night: &domain.ComponentField{Value: rand.Intn(domain.DefaultNightHours) + 1},
			})
		}

		if patch.IsEmpty() {
			continue
		}
		if err := repo.MergeDayPatch(monthID, day, patch); err != nil {
			return err
		}
		seeded++
	}

	slog.Info("demo month seeded", slog.String("month", monthID), slog.Int("days", seeded), slog.Int("members", len(members)))
	return nil
}
