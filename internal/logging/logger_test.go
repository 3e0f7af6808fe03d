package logging_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"slaved/internal/config"
	"slaved/internal/logging"
)

func TestConsoleFormatIncludesComponentPrefix(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logging.WithComponent(logger, "webui").Info("listening", logging.String("address", "0.0.0.0:8081"))

	line := buf.String()
	if !strings.Contains(line, "INFO webui: listening") {
		t.Fatalf("unexpected console line: %q", line)
	}
	if !strings.Contains(line, "address=0.0.0.0:8081") {
		t.Fatalf("missing attr in console line: %q", line)
	}
}

func TestJSONFormatLowercasesLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Warn("disk low", logging.Int64("free_mb", 12))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode json line: %v", err)
	}
	if record["level"] != "warn" {
		t.Fatalf("unexpected level: %v", record["level"])
	}
	if record["msg"] != "disk low" {
		t.Fatalf("unexpected message: %v", record["msg"])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNewFromConfigWritesLeveledFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LogDir = dir
	cfg.Paths.WorkDir = filepath.Join(dir, "work")

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}

	logger.Info("slave starting")
	logger.Error("something failed")

	info, err := os.ReadFile(filepath.Join(dir, "slaved.INFO"))
	if err != nil {
		t.Fatalf("read INFO log: %v", err)
	}
	if !strings.Contains(string(info), "slave starting") || !strings.Contains(string(info), "something failed") {
		t.Fatalf("INFO log should hold all records: %q", info)
	}

	errLog, err := os.ReadFile(filepath.Join(dir, "slaved.ERROR"))
	if err != nil {
		t.Fatalf("read ERROR log: %v", err)
	}
	if strings.Contains(string(errLog), "slave starting") {
		t.Fatalf("ERROR log should not hold info records: %q", errLog)
	}
	if !strings.Contains(string(errLog), "something failed") {
		t.Fatalf("ERROR log missing error record: %q", errLog)
	}
}
