package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeRoles(t *testing.T) {
	t.Run("empty set falls back to the legacy single role", func(t *testing.T) {
		require.Equal(t, []Role{RoleVelitel}, NormalizeRoles(nil, "Velitel"))
	})

	t.Run("no roles at all means plain firefighter", func(t *testing.T) {
		require.Equal(t, []Role{RoleHasic}, NormalizeRoles(nil, ""))
	})

	t.Run("unaccented deputy spelling is canonicalized", func(t *testing.T) {
		require.Equal(t, []Role{RoleDeputyVJ}, NormalizeRoles([]string{"Zastupce VJ"}, ""))
	})

	t.Run("both spellings collapse into one entry", func(t *testing.T) {
		got := NormalizeRoles([]string{"Zastupce VJ", "Zástupce VJ", "Hasič"}, "")
		require.Equal(t, []Role{RoleDeputyVJ, RoleHasic}, got)
	})

	t.Run("array wins over the legacy field", func(t *testing.T) {
		require.Equal(t, []Role{RoleStrojnik}, NormalizeRoles([]string{"Strojník"}, "Velitel"))
	})
}

func TestIdentityPermissions(t *testing.T) {
	t.Run("CanAct requires approved and not disabled", func(t *testing.T) {
		require.True(t, (&Identity{Approved: true}).CanAct())
		require.False(t, (&Identity{Approved: false}).CanAct())
		require.False(t, (&Identity{Approved: true, Disabled: true}).CanAct())

		var missing *Identity
		require.False(t, missing.CanAct())
	})

	t.Run("hours edits are open to the whole leadership", func(t *testing.T) {
		for _, role := range []Role{RoleAdmin, RoleVJ, RoleDeputyVJ, RoleVelitel, RoleVD} {
			require.True(t, (&Identity{Roles: []Role{role}}).CanManageHours(), string(role))
		}
		require.False(t, (&Identity{Roles: []Role{RoleHasic}}).CanManageHours())
		require.False(t, (&Identity{Roles: []Role{RoleStrojnik}}).CanManageHours())
	})

	t.Run("eviction is admin and VJ only", func(t *testing.T) {
		require.True(t, (&Identity{Roles: []Role{RoleAdmin}}).CanEvict())
		require.True(t, (&Identity{Roles: []Role{RoleVJ}}).CanEvict())
		require.False(t, (&Identity{Roles: []Role{RoleDeputyVJ}}).CanEvict())
		require.False(t, (&Identity{Roles: []Role{RoleVelitel}}).CanEvict())
		require.False(t, (&Identity{Roles: []Role{RoleVD}}).CanEvict())
	})
}

func TestIsQualified(t *testing.T) {
	t.Run("velitel accepts command roles", func(t *testing.T) {
		for _, role := range []Role{RoleVD, RoleVJ, RoleDeputyVJ, RoleAdmin} {
			require.True(t, IsQualified(SlotVelitel, []Role{role}), string(role))
		}
		require.False(t, IsQualified(SlotVelitel, []Role{RoleHasic}))
		require.False(t, IsQualified(SlotVelitel, []Role{RoleStrojnik}))
		require.False(t, IsQualified(SlotVelitel, []Role{RoleVelitel}))
	})

	t.Run("strojnik accepts only the machinist certificate", func(t *testing.T) {
		require.True(t, IsQualified(SlotStrojnik, []Role{RoleStrojnik}))
		require.True(t, IsQualified(SlotStrojnik, []Role{RoleAdmin}))
		require.False(t, IsQualified(SlotStrojnik, []Role{RoleVJ}))
		require.False(t, IsQualified(SlotStrojnik, []Role{RoleVD}))
	})

	t.Run("firefighter slots are open to everyone", func(t *testing.T) {
		for _, slot := range FirefighterSlots {
			require.True(t, IsQualified(slot, []Role{RoleHasic}), string(slot))
			require.True(t, IsQualified(slot, nil), string(slot))
		}
	})
}
