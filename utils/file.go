package utils

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// ResolveFile returns the absolute path of fn, given relative to the repository root. Tests use
// it to find fixtures no matter which package they run from.
func ResolveFile(fn string) string {
	//nolint:dogsled
	_, here, _, _ := runtime.Caller(0)
	root, err := filepath.Abs(filepath.Join(filepath.Dir(here), ".."))
	if err != nil {
		panic(err)
	}
	return filepath.Join(root, fn)
}

// ResolveRelative returns path unchanged when it is absolute or empty, otherwise joined onto the
// directory that contains from.
func ResolveRelative(from, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(filepath.Dir(from), path)
}

// HasExtension reports whether path ends in ext, ignoring case. ext includes the leading dot.
func HasExtension(path, ext string) bool {
	return strings.EqualFold(filepath.Ext(path), ext)
}

// SafeJoinDir joins name onto dir and fails when the result would escape dir, as it does for
// mesh keys such as "../etc/passwd".
func SafeJoinDir(dir, name string) (string, error) {
	joined := filepath.Join(dir, name)
	rel, err := filepath.Rel(dir, joined)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return joined, errors.Errorf("%q escapes directory %q", name, dir)
	}
	return joined, nil
}
