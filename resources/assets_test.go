package resources

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogo_LoadsAndCaches(t *testing.T) {
	for _, name := range []string{AppLogo, TrayRunning, TrayPaused} {
		first, err := Logo(name)
		require.NoError(t, err, name)
		require.Contains(t, string(first.Content()), "<svg", name)

		second, err := Logo(name)
		require.NoError(t, err)
		require.Same(t, first, second, "expected cached resource for %s", name)
	}
}

func TestLogo_Missing(t *testing.T) {
	_, err := Logo("missing.svg")
	require.Error(t, err)
	require.Panics(t, func() { MustLogo("missing.svg") })
}
