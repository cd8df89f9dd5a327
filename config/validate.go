// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/bitfsorg/tariscan-go/network"
)

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

func parseLogLevel(s string) (slog.Level, error) {
	lvl, ok := logLevels[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, s)
	}
	return lvl, nil
}

// ValidateConfig reports the first setting of cfg that tariscan cannot use.
func ValidateConfig(cfg Config) error {
	switch {
	case strings.TrimSpace(cfg.DataDir) == "":
		return ErrEmptyDataDir
	case cfg.Workers < 0:
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, cfg.Workers)
	}
	if _, err := network.ParseNetwork(cfg.Network); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidNetwork, cfg.Network)
	}
	_, err := parseLogLevel(cfg.LogLevel)
	return err
}
