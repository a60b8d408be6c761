package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("From: a@b.example\r\n\r\nbody"), 0644))
}

func TestScanFindsMatchingFilesRecursively(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "top.eml"))
	writeFile(t, filepath.Join(root, "nested", "deep.eml"))
	writeFile(t, filepath.Join(root, "nested", "notes.txt"))

	s := New(root, ".eml")
	files, err := s.Scan()
	require.NoError(t, err)

	assert.Equal(t, []string{"nested/deep.eml", "top.eml"}, files)
}

func TestScanMatchesExtensionCaseInsensitively(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "upper.EML"))

	s := New(root, ".eml")
	files, err := s.Scan()
	require.NoError(t, err)

	assert.Equal(t, []string{"upper.EML"}, files)
}

func TestScanEmptyDirectory(t *testing.T) {
	s := New(t.TempDir(), ".eml")
	files, err := s.Scan()
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestResolveRoundTrips(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "nested", "deep.eml"))

	s := New(root, ".eml")
	files, err := s.Scan()
	require.NoError(t, err)
	require.Len(t, files, 1)

	_, err = os.Stat(s.Resolve(files[0]))
	assert.NoError(t, err)
}
