package mesi4sim

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTrace(t *testing.T, dir, prefix string, core int, contents string) {
	t.Helper()
	path := filepath.Join(dir, fmt.Sprintf("%s_proc%d.trace", prefix, core))
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile(%s) error = %v", path, err)
	}
}

func TestRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeTrace(t, dir, "demo", 0, "R 0x0\nR 0x0\n")
	writeTrace(t, dir, "demo", 1, "")
	writeTrace(t, dir, "demo", 2, "")
	writeTrace(t, dir, "demo", 3, "")

	config := DefaultConfig()
	config.TracePrefix = filepath.Join(dir, "demo")
	config.OutPath = filepath.Join(dir, "report.txt")

	result, err := Run(config)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.PerCore[0].Reads != 2 {
		t.Errorf("core0.Reads = %d, want 2", result.PerCore[0].Reads)
	}

	data, err := os.ReadFile(config.OutPath)
	if err != nil {
		t.Fatalf("report file not written: %v", err)
	}
	if !strings.Contains(string(data), "Core 0:") {
		t.Errorf("report missing a core block:\n%s", data)
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	config := DefaultConfig()
	_, err := Run(config)
	if !IsCode(err, ErrCodeConfig) {
		t.Errorf("Run() with no trace prefix = %v, want a config error", err)
	}
}

func TestRunReportsMissingTraceFiles(t *testing.T) {
	dir := t.TempDir()
	config := DefaultConfig()
	config.TracePrefix = filepath.Join(dir, "missing")
	config.OutPath = filepath.Join(dir, "report.txt")

	_, err := Run(config)
	if err == nil {
		t.Fatalf("Run() with missing trace files should fail")
	}
}
