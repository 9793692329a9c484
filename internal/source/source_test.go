package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gmlfmt/gmlfmt/internal/testutil"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	testutil.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755), "mkdir")
	testutil.NoError(t, os.WriteFile(path, []byte(content), 0o644), "write")
}

func TestWalkFindsGMLFilesRecursively(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.gml"), "var x = 1;")
	writeFile(t, filepath.Join(root, "scripts", "b.gml"), "var y = 2;")
	writeFile(t, filepath.Join(root, "README.md"), "not gml")
	writeFile(t, filepath.Join(root, ".git", "c.gml"), "should be skipped")

	files, err := Walk(root, nil)
	testutil.NoError(t, err, "Walk")
	testutil.Len(t, files, 2, "gml file count")

	want := []string{filepath.Join(root, "a.gml"), filepath.Join(root, "scripts", "b.gml")}
	testutil.SliceEqual(t, want, files, "file list")
}

func TestWalkCustomExtensions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.gmlinc"), "")
	writeFile(t, filepath.Join(root, "b.gml"), "")

	files, err := Walk(root, []string{".gmlinc"})
	testutil.NoError(t, err, "Walk")
	testutil.SliceEqual(t, []string{filepath.Join(root, "a.gmlinc")}, files, "custom extension filter")
}

func TestWalkEmptyDirectory(t *testing.T) {
	root := t.TempDir()
	files, err := Walk(root, nil)
	testutil.NoError(t, err, "Walk")
	testutil.Len(t, files, 0, "empty dir file count")
}

func TestWalkMissingRoot(t *testing.T) {
	_, err := Walk(filepath.Join(t.TempDir(), "does-not-exist"), nil)
	testutil.Error(t, err, "expected error for missing root")
}

func TestReadFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.gml")
	writeFile(t, path, "var x = 1;")

	content, err := ReadFile(path)
	testutil.NoError(t, err, "ReadFile")
	testutil.Equal(t, "var x = 1;", string(content), "content")
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.gml"))
	testutil.Error(t, err, "expected error for missing file")
}
