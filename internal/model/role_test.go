package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, r := range Roles {
		got, err := ParseRole(string(r))
		require.NoError(t, err)
		require.Equal(t, r, got)
		require.True(t, r.Valid())
	}

	_, err := ParseRole("admin")
	require.Error(t, err)
	_, err = ParseRole("")
	require.Error(t, err)
	require.False(t, Role("SYSTEM_ADMIN").Valid())
}
