package domain

import "slices"

type Role string

const (
	RoleHasic    Role = "Hasič"
	RoleStrojnik Role = "Strojník"
	RoleVD       Role = "VD"
	RoleVJ       Role = "VJ"
	RoleDeputyVJ Role = "Zástupce VJ"
	RoleVelitel  Role = "Velitel"
	RoleAdmin    Role = "Admin"
)

// NormalizeRoles canonicalizes the role set coming from the identity
// provider. Legacy records carry a single `role` field instead of the array;
// both spellings of the deputy role collapse into the accented one.
func NormalizeRoles(roles []string, legacyRole string) []Role {
	if len(roles) == 0 {
		if legacyRole != "" {
			roles = []string{legacyRole}
		} else {
			roles = []string{string(RoleHasic)}
		}
	}

	out := make([]Role, 0, len(roles))
	for _, r := range roles {
		role := Role(r)
		if role == "Zastupce VJ" {
			role = RoleDeputyVJ
		}
		if !slices.Contains(out, role) {
			out = append(out, role)
		}
	}
	return out
}

// Identity is the verified session record delivered by the upstream identity
// provider. The engine re-checks Approved/Disabled before every mutation.
type Identity struct {
	UID      string
	Name     string
	Roles    []Role
	Approved bool
	Disabled bool
}

func (i *Identity) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if slices.Contains(i.Roles, r) {
			return true
		}
	}
	return false
}

// CanAct reports whether the member may mutate the roster at all.
func (i *Identity) CanAct() bool {
	return i != nil && i.Approved && !i.Disabled
}

// CanManageHours gates administrative hours edits.
func (i *Identity) CanManageHours() bool {
	return i.HasRole(RoleAdmin, RoleVJ, RoleDeputyVJ, RoleVelitel, RoleVD)
}

// CanEvict gates administrative removal of another member's assignment.
func (i *Identity) CanEvict() bool {
	return i.HasRole(RoleAdmin, RoleVJ)
}
