// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

var _ Backend = &logrusBackend{}

type logrusBackend struct {
	state

	out io.Writer
}

// NewLogrusBackend returns a Backend rendering records with logrus.
// CRITICAL records use logrus' fatal level without terminating the process.
// logrus keeps fields in a map, so records do not preserve field order and uuid
// is not guaranteed to be rendered last.
func NewLogrusBackend(w io.Writer) Backend {
	return &logrusBackend{out: w}
}

func (b *logrusBackend) Configure(cfg BackendConfig) error {
	return b.apply(cfg, b.build)
}

func (b *logrusBackend) Logger() Emitter {
	return b.logger()
}

func (b *logrusBackend) build(p pipeline, filter LevelFilter) (sink, error) {
	fieldMap := logrus.FieldMap{
		logrus.FieldKeyTime:  TimestampKey,
		logrus.FieldKeyLevel: LevelKey,
		logrus.FieldKeyMsg:   MessageKey,
	}

	log := logrus.New()
	log.SetOutput(b.out)
	log.SetLevel(filter.MinLevel().logrusLevel())
	if p.json {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat:  TimestampFormat,
			DisableTimestamp: !p.timestamp,
			FieldMap:         fieldMap,
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			DisableColors:    true,
			FullTimestamp:    true,
			TimestampFormat:  TimestampFormat,
			DisableTimestamp: !p.timestamp,
			FieldMap:         fieldMap,
		})
	}

	return &logrusSink{log: log}, nil
}

type logrusSink struct {
	log *logrus.Logger
}

func (s *logrusSink) emit(level Level, msg string, fields Fields) {
	s.log.
		WithFields(logrus.Fields(fields.Map())).
		WithTime(time.Now().UTC()).
		Log(level.logrusLevel(), msg)
}

func (l Level) logrusLevel() logrus.Level {
	switch l {
	case DEBUG:
		return logrus.DebugLevel
	case INFO:
		return logrus.InfoLevel
	case WARNING:
		return logrus.WarnLevel
	case ERROR:
		return logrus.ErrorLevel
	case CRITICAL:
		return logrus.FatalLevel
	default:
		return logrus.DebugLevel
	}
}
