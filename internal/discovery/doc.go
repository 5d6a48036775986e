// Package discovery finds the log files a scan reports on.
//
// Discover(root, opts) enumerates every regular file under root whose base
// name contains opts.Marker (default "txt") and returns one
// types.LogFileRef per file. Enumeration is delegated to doublestar over an
// fs.FS rooted at root, so traversal order is whatever the walk produces;
// no extra sorting is applied.
//
// A ref's Stem drops a literal trailing ".txt" and nothing else:
// "a/b.txt" → "a/b", while "d/e.txt.bak" is selected but keeps its name.
// Path is always the real file path.
//
// opts.Exclude holds doublestar patterns matched against the slash-separated
// path relative to root ("archive/**", "**/*.tmp.txt").
package discovery
