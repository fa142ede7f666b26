package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPublicKey(t *testing.T) {
	user := PublicKey(UserPrefix + strings.Repeat("ab", 32))
	group := PublicKey(GroupPrefix + strings.Repeat("cd", 32))

	require.NoError(t, user.Validate())
	require.True(t, user.IsUser())
	require.False(t, user.IsGroup())
	require.Len(t, user.Key(), 32)

	require.NoError(t, group.Validate())
	require.True(t, group.IsGroup())

	parsed, err := ParsePublicKey(strings.ToUpper(string(group)))
	require.NoError(t, err)
	require.Equal(t, group, parsed)

	for _, bad := range []PublicKey{
		"",
		PublicKey(UserPrefix + strings.Repeat("ab", 31)),
		PublicKey("07" + strings.Repeat("ab", 32)),
		PublicKey(UserPrefix + strings.Repeat("zz", 32)),
	} {
		require.ErrorIs(t, bad.Validate(), ErrInvalidPublicKey, bad)
	}
	require.Equal(t, BytesToPublicKey(UserPrefix, user.Key()), user)
	require.Equal(t, "05abababab", user.ShortString())
}

func TestFilterUsable(t *testing.T) {
	nodes := []SwarmNode{
		{IP: "1.1.1.1", Port: 1},
		{IP: "", Port: 2},
		{IP: NullIP, Port: 3},
		{IP: "2.2.2.2", Port: 4},
	}
	rst := FilterUsable(nodes)
	require.Equal(t, []SwarmNode{nodes[0], nodes[3]}, rst)
	require.Equal(t, "1.1.1.1:1", rst[0].Addr())
}
