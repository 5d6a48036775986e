// Package watch re-runs a scan whenever log files under a directory tree
// change.
//
// Every directory below the root is registered with fsnotify; directories
// created later are added as they appear. Events on files whose base name
// contains the marker reset a debounce timer, and the scan runs once the tree
// has been quiet for the debounce interval. Runs never overlap because they
// happen on the watching goroutine.
package watch
