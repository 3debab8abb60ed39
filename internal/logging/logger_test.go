package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit_Levels(t *testing.T) {
	if err := Init("debug", ""); err != nil {
		t.Fatalf("Init(debug) error: %v", err)
	}

	var buf bytes.Buffer
	SetOutput(&buf)

	Debug("arranged listings", "count", 7)
	if !strings.Contains(buf.String(), "arranged listings") || !strings.Contains(buf.String(), "count=7") {
		t.Errorf("debug message missing from output: %q", buf.String())
	}

	if err := Init("error", ""); err != nil {
		t.Fatalf("Init(error) error: %v", err)
	}
	buf.Reset()
	SetOutput(&buf)

	Info("should be filtered")
	if buf.Len() != 0 {
		t.Errorf("info message logged at error level: %q", buf.String())
	}
}

func TestInit_InvalidLevel(t *testing.T) {
	if err := Init("loud", ""); err == nil {
		t.Error("expected error for invalid level")
	}
}

func TestInit_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "listgrid.log")
	if err := Init("info", path); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	defer Close()

	Info("written to file")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("log file missing message: %q", string(data))
	}
}
