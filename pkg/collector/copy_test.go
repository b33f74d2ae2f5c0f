package collector

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyDir(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "copy")

	require.NoError(t, os.MkdirAll(filepath.Join(src, "nested", "deeper"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "top.md"), []byte("top"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "nested", "mid.md"), []byte("mid"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "nested", "deeper", "run.sh"), []byte("#!/bin/sh\n"), 0o755))

	require.NoError(t, copyDir(src, dst))

	content, err := os.ReadFile(filepath.Join(dst, "top.md"))
	require.NoError(t, err)
	assert.Equal(t, "top", string(content))

	content, err = os.ReadFile(filepath.Join(dst, "nested", "mid.md"))
	require.NoError(t, err)
	assert.Equal(t, "mid", string(content))

	info, err := os.Stat(filepath.Join(dst, "nested", "deeper", "run.sh"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestCopyDirMissingSource(t *testing.T) {
	err := copyDir(filepath.Join(t.TempDir(), "nope"), filepath.Join(t.TempDir(), "out"))
	assert.Error(t, err)
}

func TestCopyFile(t *testing.T) {
	src := filepath.Join(t.TempDir(), "in.txt")
	dst := filepath.Join(t.TempDir(), "out.txt")

	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o644))
	require.NoError(t, copyFile(src, dst))

	content, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(content))
}
