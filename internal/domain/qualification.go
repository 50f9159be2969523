package domain

// IsQualified decides whether a role set qualifies for a slot. Velitel wants
// command roles, strojník wants the driver qualification, firefighter slots
// are open to everyone. Pure; no failure modes.
func IsQualified(slot SlotKey, roles []Role) bool {
	has := func(wanted ...Role) bool {
		for _, w := range wanted {
			for _, r := range roles {
				if r == w {
					return true
				}
			}
		}
		return false
	}

	switch slot {
	case SlotVelitel:
		return has(RoleVD, RoleVJ, RoleDeputyVJ, RoleAdmin)
	case SlotStrojnik:
		return has(RoleStrojnik, RoleAdmin)
	default:
		return true
	}
}
