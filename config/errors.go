// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

package config

import "errors"

// Validation errors. ValidateConfig wraps them with the offending value.
var (
	ErrInvalidNetwork  = errors.New("config: unknown network")
	ErrInvalidWorkers  = errors.New("config: workers must be >= 0 (0 means one per CPU)")
	ErrInvalidLogLevel = errors.New("config: log level must be debug, info, warn or error")
	ErrEmptyDataDir    = errors.New("config: empty data directory")
)

// File errors returned by LoadConfig.
var (
	// ErrConfigNotFound is returned when the file does not exist; callers
	// usually fall back to DefaultConfig.
	ErrConfigNotFound = errors.New("config: file not found")

	ErrInvalidConfigLine = errors.New("config: malformed line")
)
