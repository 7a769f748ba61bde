package assert

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTrue(t *testing.T) {
	require.NotPanics(t, func() { True(true, "never") })

	if !Enabled {
		require.NotPanics(t, func() { True(false, "ignored in release builds") })
		return
	}

	defer func() {
		r := recover()
		err, ok := r.(*AssertionError)
		require.True(t, ok, "expected *AssertionError, got %T", r)
		require.Equal(t, "broken 42", err.Error())
	}()
	True(false, "broken %d", 42)
}
