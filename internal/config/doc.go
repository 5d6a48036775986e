// Package config loads the optional bwlat configuration file (bwlat.yaml).
//
// Top-level types:
//   - Config{Scan, Log, Metrics, Watch}: full config tree parsed from YAML
//   - ScanConfig: root, marker, exclude [], skip_empty
//   - LogConfig: level (debug|info|warn|error)
//   - MetricsConfig: textfile path for run metrics; empty disables them
//   - WatchConfig: debounce between a file change and the re-run
//
// Default() returns the built-in configuration, which reproduces the plain
// behaviour: scan ".", select names containing "txt", fail on empty files.
// Load(path) starts from Default(), overlays the YAML file, then validates
// required fields and enums.
//
// Watch(ctx, path, onChange) watches the directory holding the config file
// with fsnotify and calls onChange with each newly parsed Config. Events for
// other names in that directory are ignored, and a file replaced by rename
// is reloaded like one written in place.
package config
