package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// File is the optional YAML configuration. Every field maps to a
// command-line flag; flags given explicitly on the command line win.
type File struct {
	Source       string `yaml:"source"`
	Dir          string `yaml:"dir"`
	Out          string `yaml:"out"`
	Workers      int    `yaml:"workers"`
	Rate         int    `yaml:"rate"`
	ProbeTimeout string `yaml:"probeTimeout"`
	Deadline     string `yaml:"deadline"`
	Strip        string `yaml:"strip"`
	Insecure     bool   `yaml:"insecure"`
	Verbose      bool   `yaml:"verbose"`

	// compiled
	probeTimeoutDur time.Duration
	deadlineDur     time.Duration
}

func (f *File) ProbeTimeoutDuration() time.Duration { return f.probeTimeoutDur }
func (f *File) DeadlineDuration() time.Duration     { return f.deadlineDur }

// Load reads and validates a YAML config file.
func Load(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, err
	}

	if f.Workers < 0 {
		return nil, fmt.Errorf("workers must not be negative, got %d", f.Workers)
	}
	if f.Rate < 0 {
		return nil, fmt.Errorf("rate must not be negative, got %d", f.Rate)
	}
	if f.ProbeTimeout != "" {
		d, err := time.ParseDuration(f.ProbeTimeout)
		if err != nil {
			return nil, fmt.Errorf("probeTimeout: %w", err)
		}
		f.probeTimeoutDur = d
	}
	if f.Deadline != "" {
		d, err := time.ParseDuration(f.Deadline)
		if err != nil {
			return nil, fmt.Errorf("deadline: %w", err)
		}
		f.deadlineDur = d
	}

	return &f, nil
}
