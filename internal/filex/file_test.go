package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureSubdDir_CreatesDirectoryInCWD(t *testing.T) {
	tmp := t.TempDir()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmp))
	t.Cleanup(func() { _ = os.Chdir(old) })

	got, err := EnsureSubdDir("snapshots")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(tmp, "snapshots"), got)

	fi, err := os.Stat(got)
	require.NoError(t, err)
	require.True(t, fi.IsDir())
}

func TestEnsureSubdDir_AbsolutePathUsedAsIs(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "snap")

	got, err := EnsureSubdDir(abs)
	require.NoError(t, err)
	require.Equal(t, abs, got)

	fi, err := os.Stat(abs)
	require.NoError(t, err)
	require.True(t, fi.IsDir())
}

func TestEnsureSubdDir_Idempotent(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "snap")

	first, err := EnsureSubdDir(abs)
	require.NoError(t, err)
	second, err := EnsureSubdDir(abs)
	require.NoError(t, err)
	require.Equal(t, first, second)
}
