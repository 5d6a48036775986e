// Package cli builds the bwlat command tree.
//
//	bwlat [root]         scan once and print a report block per log file
//	bwlat watch [root]   scan, then re-scan whenever log files change
//
// Configuration comes from an optional YAML file (--config); flags that are
// set explicitly override the file. Reports go to stdout, structured logs to
// stderr.
package cli
