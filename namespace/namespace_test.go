package namespace

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestRoles(t *testing.T) {
	for _, tc := range []struct {
		ns   Namespace
		role Role
	}{
		{Default, RoleDefault},
		{UserProfile, RoleUserProfile},
		{UserContacts, RoleUserContacts},
		{ConvoInfoVolatile, RoleConvoVolatile},
		{UserGroups, RoleUserGroups},
		{GroupMessages, RoleGroupMessages},
		{GroupKeys, RoleGroupKeys},
		{GroupInfo, RoleGroupInfo},
		{GroupMembers, RoleGroupMembers},
		{GroupRevokedRetrievable, RoleGroupRevoked},
	} {
		t.Run(string(tc.role), func(t *testing.T) {
			role, err := RoleOf(tc.ns)
			require.NoError(t, err)
			require.Equal(t, tc.role, role)
			require.True(t, IsKnown(tc.ns))
		})
	}
	_, err := RoleOf(Namespace(42))
	require.ErrorIs(t, err, ErrUnknownNamespace)
	_, err = Priority(Namespace(-1))
	require.ErrorIs(t, err, ErrUnknownNamespace)
	require.Equal(t, "unknown(42)", Namespace(42).String())
}

func TestClassification(t *testing.T) {
	for _, ns := range All {
		require.False(t, IsUserConfig(ns) && IsGroupNamespace(ns), ns)
		require.NotEqual(t, IsUserNamespace(ns), IsGroupNamespace(ns), ns)
	}
	require.True(t, IsUserConfig(UserProfile))
	require.False(t, IsUserConfig(Default))
	require.True(t, IsGroupConfig(GroupKeys))
	require.False(t, IsGroupConfig(GroupMessages))
	require.True(t, IsGroupNamespace(GroupMessages))
	require.True(t, IsGroupNamespace(GroupRevokedRetrievable))
}

func TestMaxSizeMap(t *testing.T) {
	t.Run("single namespace", func(t *testing.T) {
		rst, err := MaxSizeMap([]Namespace{Default})
		require.NoError(t, err)
		require.Equal(t, []MaxSize{{Default, -1}}, rst)
	})
	t.Run("user namespaces", func(t *testing.T) {
		rst, err := MaxSizeMap([]Namespace{
			UserProfile, Default, UserContacts, ConvoInfoVolatile, UserGroups,
		})
		require.NoError(t, err)
		require.Equal(t, []MaxSize{
			{Default, -2},
			{UserProfile, -8},
			{UserContacts, -8},
			{ConvoInfoVolatile, -8},
			{UserGroups, -8},
		}, rst)
	})
	t.Run("group namespaces", func(t *testing.T) {
		rst, err := MaxSizeMap([]Namespace{GroupMessages, GroupKeys, GroupInfo, GroupMembers})
		require.NoError(t, err)
		want := []MaxSize{
			{GroupMessages, -2},
			{GroupKeys, -6},
			{GroupInfo, -6},
			{GroupMembers, -6},
		}
		require.Empty(t, cmp.Diff(want, rst))
	})
	t.Run("only config", func(t *testing.T) {
		rst, err := MaxSizeMap([]Namespace{GroupKeys, GroupInfo})
		require.NoError(t, err)
		require.Equal(t, []MaxSize{{GroupKeys, -2}, {GroupInfo, -2}}, rst)
	})
	t.Run("unknown", func(t *testing.T) {
		_, err := MaxSizeMap([]Namespace{Default, Namespace(7)})
		require.ErrorIs(t, err, ErrUnknownNamespace)
	})
	t.Run("properties", func(t *testing.T) {
		inputs := [][]Namespace{
			All,
			{Default, GroupKeys},
			{GroupMessages, GroupInfo, GroupMembers, GroupRevokedRetrievable},
			UserConfig,
		}
		for _, in := range inputs {
			rst, err := MaxSizeMap(in)
			require.NoError(t, err)
			require.Len(t, rst, len(in))
			byTier := map[int]int{}
			for _, item := range rst {
				require.Negative(t, item.MaxSize)
				p, err := Priority(item.Namespace)
				require.NoError(t, err)
				if prev, ok := byTier[p]; ok {
					require.Equal(t, prev, item.MaxSize)
				}
				byTier[p] = item.MaxSize
			}
			if high, ok := byTier[HighPriority]; ok {
				if low, ok := byTier[LowPriority]; ok {
					require.GreaterOrEqual(t, high, low)
				}
			}
		}
	})
}
