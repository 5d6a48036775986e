package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/bwlat/bwlat/pkg/types"
)

// DefaultMarker is the substring a file name must contain to be selected.
const DefaultMarker = "txt"

// logSuffix is stripped from a selected name to build its stem.
const logSuffix = ".txt"

// Options controls which files Discover selects.
type Options struct {
	// Marker is the substring a base name must contain. Empty means DefaultMarker.
	Marker string

	// Exclude lists doublestar patterns matched against the path relative to
	// root, slash-separated. Matching files are skipped.
	Exclude []string
}

// Discover returns a LogFileRef for every file under root whose name
// contains the marker.
//
// A missing or unreadable root returns an error wrapping types.ErrFileAccess.
// An invalid exclude pattern returns doublestar.ErrBadPattern.
func Discover(root string, opts Options) ([]types.LogFileRef, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("discovery: %w: %w", types.ErrFileAccess, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("discovery: %w: %s is not a directory", types.ErrFileAccess, root)
	}
	return discoverFS(os.DirFS(root), root, opts)
}

// discoverFS runs discovery over fsys, joining matches onto root.
func discoverFS(fsys fs.FS, root string, opts Options) ([]types.LogFileRef, error) {
	marker := opts.Marker
	if marker == "" {
		marker = DefaultMarker
	}
	for _, pat := range opts.Exclude {
		if !doublestar.ValidatePattern(pat) {
			return nil, fmt.Errorf("discovery: exclude %q: %w", pat, doublestar.ErrBadPattern)
		}
	}

	pattern := "**/*" + escapeMeta(marker) + "*"
	matches, err := doublestar.Glob(fsys, pattern,
		doublestar.WithFilesOnly(),
		doublestar.WithFailOnIOErrors(),
	)
	if err != nil {
		if errors.Is(err, doublestar.ErrBadPattern) {
			return nil, fmt.Errorf("discovery: marker %q: %w", marker, err)
		}
		return nil, fmt.Errorf("discovery: %w: %w", types.ErrFileAccess, err)
	}

	refs := make([]types.LogFileRef, 0, len(matches))
	for _, rel := range matches {
		if excluded(rel, opts.Exclude) {
			slog.Debug("discovery: skipped excluded path", "path", rel)
			continue
		}
		// The label keeps root exactly as given, so "." yields "./a/b".
		refs = append(refs, types.LogFileRef{
			Stem: Stem(root + "/" + rel),
			Path: filepath.Join(root, filepath.FromSlash(rel)),
		})
	}
	return refs, nil
}

// Stem returns path with a literal trailing ".txt" removed.
func Stem(path string) string {
	return strings.TrimSuffix(path, logSuffix)
}

// excluded reports whether rel matches any of the exclude patterns.
// Patterns are validated up front, so match errors cannot occur here.
func excluded(rel string, patterns []string) bool {
	for _, pat := range patterns {
		if ok, _ := doublestar.Match(pat, rel); ok {
			return true
		}
	}
	return false
}

// escapeMeta backslash-escapes doublestar metacharacters so the marker is
// matched literally.
func escapeMeta(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '{', '}', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
