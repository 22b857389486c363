package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_FallsBackToInfoOnBadLevel(t *testing.T) {
	t.Parallel()

	l, err := New("not-a-level")
	require.NoError(t, err)
	require.NotNil(t, l)
}

func TestCheckError_NilLoggerDoesNotPanic(t *testing.T) {
	t.Parallel()

	require.NotPanics(t, func() {
		got := CheckError(errors.New("boom"), nil, "failed")
		require.True(t, got)
	})
	require.False(t, CheckError(nil, nil, "fine"))
}

func TestMakeInfoMakeWarn_NilLoggerDoesNotPanic(t *testing.T) {
	t.Parallel()

	require.NotPanics(t, func() {
		MakeInfo(nil, "hello")
		MakeWarn(nil, "careful")
	})
}
