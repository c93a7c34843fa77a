// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"io"
	"time"

	"github.com/hashicorp/go-hclog"
)

var _ Backend = &hclogBackend{}

type hclogBackend struct {
	state

	out io.Writer
}

// NewHCLogBackend returns a Backend rendering records with hclog.
// hclog has no level above Error, so CRITICAL records are written as errors
// and hclog always writes its own time and level header.
func NewHCLogBackend(w io.Writer) Backend {
	return &hclogBackend{out: w}
}

func (b *hclogBackend) Configure(cfg BackendConfig) error {
	return b.apply(cfg, b.build)
}

func (b *hclogBackend) Logger() Emitter {
	return b.logger()
}

func (b *hclogBackend) build(p pipeline, filter LevelFilter) (sink, error) {
	return &hclogSink{
		log: hclog.New(&hclog.LoggerOptions{
			Output:      b.out,
			Level:       filter.MinLevel().hclogLevel(),
			JSONFormat:  p.json,
			Color:       hclog.ColorOff,
			DisableTime: !p.timestamp,
			TimeFormat:  TimestampFormat,
			TimeFn: func() time.Time {
				return time.Now().UTC()
			},
		}),
	}, nil
}

type hclogSink struct {
	log hclog.Logger
}

func (s *hclogSink) emit(level Level, msg string, fields Fields) {
	s.log.Log(level.hclogLevel(), msg, fields.Args()...)
}

func (l Level) hclogLevel() hclog.Level {
	switch l {
	case DEBUG:
		return hclog.Debug
	case INFO:
		return hclog.Info
	case WARNING:
		return hclog.Warn
	case ERROR, CRITICAL:
		return hclog.Error
	default:
		return hclog.Debug
	}
}
