package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, `
source: https://example.com/list.html
out: checked
workers: 40
rate: 10
probeTimeout: 3s
deadline: 10m
insecure: true
`)

	f, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if f.Source != "https://example.com/list.html" {
		t.Errorf("source = %q", f.Source)
	}
	if f.Out != "checked" {
		t.Errorf("out = %q", f.Out)
	}
	if f.Workers != 40 {
		t.Errorf("workers = %d", f.Workers)
	}
	if f.Rate != 10 {
		t.Errorf("rate = %d", f.Rate)
	}
	if f.ProbeTimeoutDuration() != 3*time.Second {
		t.Errorf("probeTimeout = %v", f.ProbeTimeoutDuration())
	}
	if f.DeadlineDuration() != 10*time.Minute {
		t.Errorf("deadline = %v", f.DeadlineDuration())
	}
	if !f.Insecure {
		t.Error("insecure should be true")
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "bad yaml", content: "workers: [not an int"},
		{name: "bad duration", content: "probeTimeout: soon"},
		{name: "bad deadline", content: "deadline: whenever"},
		{name: "negative workers", content: "workers: -3"},
		{name: "negative rate", content: "rate: -1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeFile(t, tt.content)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
