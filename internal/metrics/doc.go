// Package metrics exposes run health as Prometheus text exposition.
//
// After each scan the caller hands a Run to WriteTextfile, which builds
// gauge families with client_model and encodes them with expfmt into a file
// suitable for node_exporter's textfile collector. The file is replaced
// atomically (write to path.tmp, then rename) so a collector never reads a
// half-written exposition.
//
// Exported gauges:
//   - bwlat_files_scanned              files reported in the last run
//   - bwlat_lines_parsed               latency values parsed in the last run
//   - bwlat_files_skipped              empty files skipped (skip_empty only)
//   - bwlat_run_duration_seconds       wall time of the last run
//   - bwlat_last_run_success           1 if the last run completed, else 0
//   - bwlat_last_run_timestamp_seconds unix time the last run finished
package metrics
