package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bwlat/bwlat/pkg/types"
)

const sampleLog = "[  3]  0.0-10.0  sec  1  MBytes  8  Mbps\n" +
	"[  3] 10.0-20.0  sec  2  MBytes  1  Gbps\n"

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestRoot_ScansPositionalRoot(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "run1.txt"), sampleLog)
	writeFile(t, filepath.Join(dir, "notes.md"), "ignored")

	out, err := execute(t, dir)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	// 1 MiB at 8 Mbps = 1048.576; 2 MiB at 1 Gbps = 16.777216.
	want := dir + "/run1 \n(min[ms],max[ms],avg[ms]( 16.78 1048.58 532.68 )\n"
	if out != want {
		t.Errorf("stdout:\n got %q\nwant %q", out, want)
	}
}

// chdir switches the working directory for the rest of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestRoot_DefaultRootKeepsDotPrefix(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a", "b.txt"), sampleLog)
	writeFile(t, filepath.Join(dir, "top.txt"), sampleLog)
	chdir(t, dir)

	out, err := execute(t)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	block := " \n(min[ms],max[ms],avg[ms]( 16.78 1048.58 532.68 )\n"
	want := "./a/b" + block + "./top" + block
	if out != want {
		t.Errorf("stdout:\n got %q\nwant %q", out, want)
	}
}

func TestRoot_Errors(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		args    []string
		wantErr error
	}{
		{
			name:    "malformed line",
			files:   map[string]string{"bad.txt": "too short\n"},
			wantErr: types.ErrMalformedLine,
		},
		{
			name:    "empty file",
			files:   map[string]string{"empty.txt": ""},
			wantErr: types.ErrEmptySequence,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tt.files {
				writeFile(t, filepath.Join(dir, name), content)
			}
			_, err := execute(t, append([]string{dir}, tt.args...)...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Execute() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRoot_MissingRoot(t *testing.T) {
	_, err := execute(t, filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, types.ErrFileAccess) {
		t.Errorf("Execute() error = %v, want ErrFileAccess", err)
	}
}

func TestRoot_SkipEmptyFlag(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "empty.txt"), "\n")
	writeFile(t, filepath.Join(dir, "ok.txt"), sampleLog)

	out, err := execute(t, dir, "--skip-empty")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.Contains(out, "empty") || !strings.Contains(out, "ok \n") {
		t.Errorf("stdout = %q, want only the ok block", out)
	}
}

func TestRoot_ExcludeFlag(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "keep.txt"), sampleLog)
	writeFile(t, filepath.Join(dir, "archive", "old.txt"), "garbage\n")

	out, err := execute(t, dir, "--exclude", "archive/**")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.Contains(out, "old") {
		t.Errorf("stdout = %q, excluded file was reported", out)
	}
}

func TestRoot_ConfigFileAndOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.iperf"), sampleLog)
	writeFile(t, filepath.Join(dir, "b.txt"), sampleLog)

	cfgPath := filepath.Join(t.TempDir(), "bwlat.yaml")
	writeFile(t, cfgPath, "scan:\n  root: "+dir+"\n  marker: iperf\n")

	out, err := execute(t, "--config", cfgPath)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.HasPrefix(out, dir+"/a.iperf \n") || strings.Contains(out, "b \n") {
		t.Errorf("stdout = %q, want only the a.iperf block", out)
	}

	out, err = execute(t, "--config", cfgPath, "--marker", "txt")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.HasPrefix(out, dir+"/b \n") {
		t.Errorf("stdout = %q, want the b block after --marker override", out)
	}
}

func TestRoot_MetricsFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "run.txt"), sampleLog)
	prom := filepath.Join(t.TempDir(), "bwlat.prom")

	if _, err := execute(t, dir, "--metrics-file", prom); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	data, err := os.ReadFile(prom)
	if err != nil {
		t.Fatalf("metrics file not written: %v", err)
	}
	for _, want := range []string{"bwlat_files_scanned 1", "bwlat_lines_parsed 2", "bwlat_last_run_success 1"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("metrics file missing %q:\n%s", want, data)
		}
	}
}

func TestRoot_MetricsFileOnFailure(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.txt"), "short line\n")
	prom := filepath.Join(t.TempDir(), "bwlat.prom")

	if _, err := execute(t, dir, "--metrics-file", prom); err == nil {
		t.Fatal("Execute() error = nil, want malformed line error")
	}
	data, err := os.ReadFile(prom)
	if err != nil {
		t.Fatalf("metrics file not written: %v", err)
	}
	if !strings.Contains(string(data), "bwlat_last_run_success 0") {
		t.Errorf("metrics file does not record the failure:\n%s", data)
	}
}

func TestRoot_InvalidInvocation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"too many args", []string{"a", "b"}},
		{"bad log level", []string{"--log-level", "loud"}},
		{"empty marker", []string{"--marker", ""}},
		{"bad exclude", []string{"--exclude", "[unclosed"}},
		{"missing config", []string{"--config", "/nonexistent/bwlat.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, tt.args...); err == nil {
				t.Errorf("Execute(%v) error = nil, want error", tt.args)
			}
		})
	}
}

func TestMain_ExitCodeAndJSONError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.txt"), "short line\n")

	var stdout, stderr bytes.Buffer
	if code := Main([]string{dir}, &stdout, &stderr); code != 1 {
		t.Fatalf("Main() = %d, want 1", code)
	}

	lines := strings.Split(strings.TrimSpace(stderr.String()), "\n")
	var entry struct {
		Level string `json:"level"`
		Msg   string `json:"msg"`
		Err   string `json:"err"`
	}
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &entry); err != nil {
		t.Fatalf("last stderr line is not JSON: %v\n%s", err, stderr.String())
	}
	if entry.Level != "ERROR" || entry.Msg != "bwlat: run failed" {
		t.Errorf("log entry = %+v, want ERROR \"bwlat: run failed\"", entry)
	}
	if !strings.Contains(entry.Err, "malformed line") {
		t.Errorf("err attr = %q, want the malformed line error", entry.Err)
	}
}

func TestMain_Success(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "run.txt"), sampleLog)

	var stdout, stderr bytes.Buffer
	if code := Main([]string{dir}, &stdout, &stderr); code != 0 {
		t.Fatalf("Main() = %d, want 0; stderr:\n%s", code, stderr.String())
	}
	if stderr.Len() != 0 {
		t.Errorf("stderr = %q, want nothing at the default level", stderr.String())
	}
}
