// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

// Package config loads the scanner's settings from a key = value file and
// the environment.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bitfsorg/tariscan-go/network"
)

// Environment variables read by ApplyEnv.
const (
	EnvNetwork  = "TARISCAN_NETWORK"
	EnvLogLevel = "TARISCAN_LOG_LEVEL"
	EnvWorkers  = "TARISCAN_WORKERS"
)

// Config holds the scanner settings.
type Config struct {
	DataDir  string
	Network  string
	LogLevel string
	LogFile  string

	// Workers bounds concurrent scans. Zero means one per CPU.
	Workers int
}

// DefaultDataDir returns ~/.tariscan, or .tariscan if the home directory
// is unknown.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tariscan"
	}
	return filepath.Join(home, ".tariscan")
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		DataDir:  DefaultDataDir(),
		Network:  network.MainNet.String(),
		LogLevel: "info",
	}
}

// ConfigPath returns the config file location inside dataDir.
func ConfigPath(dataDir string) string {
	return filepath.Join(dataDir, "config")
}

// LoadConfig reads a key = value file over DefaultConfig. Blank lines and
// lines starting with # are skipped; unknown keys are ignored.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return cfg, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, err := parseKeyValue(line)
		if err != nil {
			return cfg, fmt.Errorf("%w: line %d: %q", ErrInvalidConfigLine, lineNo, line)
		}
		if err := cfg.set(key, value); err != nil {
			return cfg, fmt.Errorf("%w: line %d: %w", ErrInvalidConfigLine, lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	return cfg, nil
}

// parseKeyValue splits on the first '='.
func parseKeyValue(line string) (string, string, error) {
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return "", "", ErrInvalidConfigLine
	}
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return "", "", ErrInvalidConfigLine
	}
	return key, strings.TrimSpace(value), nil
}

func (c *Config) set(key, value string) error {
	switch key {
	case "datadir":
		c.DataDir = value
	case "network":
		c.Network = value
	case "loglevel":
		c.LogLevel = value
	case "logfile":
		c.LogFile = value
	case "workers":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("workers: %w", err)
		}
		c.Workers = n
	}
	return nil
}

// SaveConfig writes cfg to path, creating parent directories.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}

	var b strings.Builder
	b.WriteString("# tariscan configuration\n\n")
	fmt.Fprintf(&b, "datadir = %s\n", cfg.DataDir)
	fmt.Fprintf(&b, "network = %s\n", cfg.Network)
	fmt.Fprintf(&b, "loglevel = %s\n", cfg.LogLevel)
	fmt.Fprintf(&b, "logfile = %s\n", cfg.LogFile)
	fmt.Fprintf(&b, "workers = %d\n", cfg.Workers)

	if err := os.WriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg with the TARISCAN_* variables present in env.
// Pass os.Environ through EnvMap to use the process environment.
func ApplyEnv(cfg Config, env map[string]string) (Config, error) {
	if v, ok := env[EnvNetwork]; ok && v != "" {
		cfg.Network = v
	}
	if v, ok := env[EnvLogLevel]; ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := env[EnvWorkers]; ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("%w: %s=%q", ErrInvalidWorkers, EnvWorkers, v)
		}
		cfg.Workers = n
	}
	return cfg, nil
}

// EnvMap turns KEY=VALUE pairs, as returned by os.Environ, into a map.
func EnvMap(environ []string) map[string]string {
	m := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			m[k] = v
		}
	}
	return m
}

// NetworkValue returns the parsed network.
func (c Config) NetworkValue() (network.Network, error) {
	n, err := network.ParseNetwork(c.Network)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNetwork, c.Network)
	}
	return n, nil
}

// NewLogger returns a text logger writing to w at cfg.LogLevel.
func NewLogger(cfg Config, w io.Writer) (*slog.Logger, error) {
	level, err := parseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}
