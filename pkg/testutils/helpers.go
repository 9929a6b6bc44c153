package testutils

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// CreateTestFilesWithContent creates test files with specific content and
// returns their absolute paths sorted by name
func CreateTestFilesWithContent(t *testing.T, dir string, files map[string]string) []string {
	t.Helper()
	paths := make([]string, 0, len(files))
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// CreateTestFilesWithDefault creates a small photo-dump style selection
func CreateTestFilesWithDefault(t *testing.T, dir string) []string {
	t.Helper()
	files := map[string]string{
		"IMG_0001.jpg": "image content 1",
		"IMG_0002.jpg": "image content 2",
		"notes.txt":    "text content",
	}
	return CreateTestFilesWithContent(t, dir, files)
}

// ListDir returns the sorted names of the regular files in dir
func ListDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := []string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	return names
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)

// StripANSI removes ANSI escape sequences from a string
func StripANSI(str string) string {
	return ansiPattern.ReplaceAllString(str, "")
}
