// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"log"
	"log/slog"
)

// StandardConfig configures the standard library log and log/slog packages.
type StandardConfig struct {
	// Flags are the log package output flags; zero writes the bare message.
	Flags int
	// Prefix is written before every message of the log package.
	Prefix string
	// Level is the minimum level of records bridged from log/slog.
	Level Level
}

// BareMessageConfig returns a StandardConfig writing only the message text.
func BareMessageConfig(level Level) StandardConfig {
	return StandardConfig{Level: level}
}

// configureStandard applies a StandardConfig. It can be overridden for testing purposes.
var configureStandard = func(cfg StandardConfig) {
	log.SetFlags(cfg.Flags)
	log.SetPrefix(cfg.Prefix)
	slog.SetLogLoggerLevel(cfg.Level.slogLevel())
}
