package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"nmjcat/internal/logging"
)

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("scan complete", "files", 3)
	line := buf.String()
	if !strings.Contains(line, "INFO") {
		t.Errorf("line missing level label: %q", line)
	}
	if !strings.Contains(line, "scan complete") {
		t.Errorf("line missing message: %q", line)
	}
	if !strings.Contains(line, "files=3") {
		t.Errorf("line missing attribute: %q", line)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Debug("processing media", "path", "avatar.avi")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not json: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "processing media" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["path"] != "avatar.avi" {
		t.Errorf("path = %v", entry["path"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("quiet")
	if buf.Len() != 0 {
		t.Errorf("info logged at warn level: %q", buf.String())
	}
	logger.Warn("loud")
	if !strings.Contains(buf.String(), "loud") {
		t.Errorf("warn not logged: %q", buf.String())
	}
}

func TestUnknownFormatRejected(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("unknown format accepted")
	}
}
