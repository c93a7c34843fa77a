// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

var (
	// ErrInvalidLevel reports a severity outside the supported enumeration.
	ErrInvalidLevel = errors.New("invalid log level")
)

//go:generate ${TOOLS_BIN}/stringer -type=Level
type Level int

// The values match the conventional severity ordinals so they can be compared
// with other logging systems.
const (
	DEBUG    Level = 10
	INFO     Level = 20
	WARNING  Level = 30
	ERROR    Level = 40
	CRITICAL Level = 50
)

// AllLevels returns every supported level, from the least to the most severe.
func AllLevels() []Level {
	return []Level{DEBUG, INFO, WARNING, ERROR, CRITICAL}
}

// LevelFromString converts level into a Level, falling back to DEBUG for unknown values.
func LevelFromString(level string) Level {
	parsed, err := ParseLevel(level)
	if err != nil {
		return DEBUG
	}
	return parsed
}

// ParseLevel converts level into a Level, returning ErrInvalidLevel for unknown values.
func ParseLevel(level string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return DEBUG, nil
	case "INFO":
		return INFO, nil
	case "WARNING", "WARN":
		return WARNING, nil
	case "ERROR":
		return ERROR, nil
	case "CRITICAL":
		return CRITICAL, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, level)
	}
}

// Valid reports whether l is one of the enumerated levels.
func (l Level) Valid() bool {
	switch l {
	case DEBUG, INFO, WARNING, ERROR, CRITICAL:
		return true
	default:
		return false
	}
}

// name is the lowercase label written in the level key of a record.
func (l Level) name() string {
	return strings.ToLower(l.String())
}

func (l Level) slogLevel() slog.Level {
	switch l {
	case DEBUG:
		return slog.LevelDebug
	case INFO:
		return slog.LevelInfo
	case WARNING:
		return slog.LevelWarn
	case ERROR:
		return slog.LevelError
	case CRITICAL:
		return slog.LevelError + 4
	default:
		return slog.LevelDebug
	}
}
