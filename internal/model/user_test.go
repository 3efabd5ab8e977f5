package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoleRank(t *testing.T) {
	require.Less(t, RoleMember.Rank(), RoleOfficer.Rank())
	require.Less(t, RoleOfficer.Rank(), RoleAdmin.Rank())

	// 未知角色不会获得更高等级
	require.Less(t, Role("GUEST").Rank(), RoleOfficer.Rank())
}

func TestRoleValid(t *testing.T) {
	require.True(t, RoleMember.Valid())
	require.True(t, RoleOfficer.Valid())
	require.True(t, RoleAdmin.Valid())
	require.False(t, Role("SUPERUSER").Valid())
	require.False(t, Role("").Valid())
}

func TestRolePrivileged(t *testing.T) {
	require.False(t, RoleMember.IsPrivileged())
	require.True(t, RoleOfficer.IsPrivileged())
	require.True(t, RoleAdmin.IsPrivileged())
}

func TestRegistrationStatusTransitions(t *testing.T) {
	require.True(t, RegistrationPending.Cancellable())
	require.True(t, RegistrationApproved.Cancellable())
	require.False(t, RegistrationRejected.Cancellable())
	require.False(t, RegistrationAttended.Cancellable())
	require.False(t, RegistrationCancelled.Cancellable())

	require.True(t, RegistrationApproved.CountsTowardCapacity())
	require.True(t, RegistrationAttended.CountsTowardCapacity())
	require.False(t, RegistrationPending.CountsTowardCapacity())
	require.False(t, RegistrationRejected.CountsTowardCapacity())
	require.False(t, RegistrationCancelled.CountsTowardCapacity())
}
