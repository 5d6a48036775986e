package metrics

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// Metric names written to the exposition.
const (
	nameFilesScanned = "bwlat_files_scanned"
	nameLinesParsed  = "bwlat_lines_parsed"
	nameFilesSkipped = "bwlat_files_skipped"
	nameRunDuration  = "bwlat_run_duration_seconds"
	nameRunSuccess   = "bwlat_last_run_success"
	nameRunTimestamp = "bwlat_last_run_timestamp_seconds"
)

// Run is the health record of one scan.
type Run struct {
	Files      int
	Lines      int
	Skipped    int
	Duration   time.Duration
	Success    bool
	FinishedAt time.Time
}

// Families returns the gauge families describing r, in a fixed order.
func Families(r Run) []*dto.MetricFamily {
	success := 0.0
	if r.Success {
		success = 1
	}
	return []*dto.MetricFamily{
		gauge(nameFilesScanned, "Log files reported in the last run.", float64(r.Files)),
		gauge(nameLinesParsed, "Latency values parsed in the last run.", float64(r.Lines)),
		gauge(nameFilesSkipped, "Empty log files skipped in the last run.", float64(r.Skipped)),
		gauge(nameRunDuration, "Wall time of the last run in seconds.", r.Duration.Seconds()),
		gauge(nameRunSuccess, "Whether the last run completed without error.", success),
		gauge(nameRunTimestamp, "Unix time the last run finished.", float64(r.FinishedAt.UnixNano())/1e9),
	}
}

// Encode writes r to w in the Prometheus text format.
func Encode(w io.Writer, r Run) error {
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range Families(r) {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("metrics: encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// WriteTextfile encodes r and atomically replaces the file at path.
func WriteTextfile(path string, r Run) error {
	var buf bytes.Buffer
	if err := Encode(&buf, r); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("metrics: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("metrics: rename %s: %w", tmp, err)
	}
	return nil
}

// gauge builds a single-sample gauge family.
func gauge(name, help string, v float64) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name: &name,
		Help: &help,
		Type: dto.MetricType_GAUGE.Enum(),
		Metric: []*dto.Metric{
			{Gauge: &dto.Gauge{Value: &v}},
		},
	}
}
