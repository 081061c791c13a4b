package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureParentDir_CreatesNested(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "backups", "2025", "diary.json")

	dir, err := EnsureParentDir(target)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "backups", "2025"), dir)

	st, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, st.IsDir())

	again, err := EnsureParentDir(target)
	require.NoError(t, err)
	require.Equal(t, dir, again)
}

func TestEnsureParentDir_Relative(t *testing.T) {
	root := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(root))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	dir, err := EnsureParentDir(filepath.Join("out", "x.json"))
	require.NoError(t, err)

	resolvedRoot, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	resolvedDir, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(resolvedRoot, "out"), resolvedDir)
}

func TestEnsureParentDir_FileInTheWay(t *testing.T) {
	root := t.TempDir()
	blocker := filepath.Join(root, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	_, err := EnsureParentDir(filepath.Join(blocker, "child", "diary.json"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "mkdir")
}
