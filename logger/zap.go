// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"io"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ Backend = &zapBackend{}

type zapBackend struct {
	state

	out zapcore.WriteSyncer
}

// NewZapBackend returns a Backend rendering records with zap.
// CRITICAL records use zap's DPanic level, which never panics outside development mode.
func NewZapBackend(w io.Writer) Backend {
	return &zapBackend{out: zapcore.Lock(zapcore.AddSync(w))}
}

func (b *zapBackend) Configure(cfg BackendConfig) error {
	return b.apply(cfg, b.build)
}

func (b *zapBackend) Logger() Emitter {
	return b.logger()
}

func (b *zapBackend) build(p pipeline, filter LevelFilter) (sink, error) {
	encoderConfig := zapcore.EncoderConfig{
		MessageKey:     MessageKey,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    encodeZapLevel,
		EncodeTime:     encodeZapTime,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	if p.addLevel {
		encoderConfig.LevelKey = LevelKey
	}
	if p.timestamp {
		encoderConfig.TimeKey = TimestampKey
	}

	var encoder zapcore.Encoder
	if p.json {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	enabler := zap.LevelEnablerFunc(func(level zapcore.Level) bool {
		return filter.Enabled(levelFromZap(level))
	})

	return &zapSink{log: zap.New(zapcore.NewCore(encoder, b.out, enabler))}, nil
}

type zapSink struct {
	log *zap.Logger
}

func (s *zapSink) emit(level Level, msg string, fields Fields) {
	if entry := s.log.Check(level.zapLevel(), msg); entry != nil {
		entry.Write(zapFields(fields)...)
	}
}

func zapFields(fields Fields) []zap.Field {
	converted := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		converted = append(converted, zap.Any(field.Key, field.Value))
	}
	return converted
}

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case DEBUG:
		return zapcore.DebugLevel
	case INFO:
		return zapcore.InfoLevel
	case WARNING:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	case CRITICAL:
		return zapcore.DPanicLevel
	default:
		return zapcore.DebugLevel
	}
}

func levelFromZap(level zapcore.Level) Level {
	switch {
	case level >= zapcore.DPanicLevel:
		return CRITICAL
	case level >= zapcore.ErrorLevel:
		return ERROR
	case level >= zapcore.WarnLevel:
		return WARNING
	case level >= zapcore.InfoLevel:
		return INFO
	default:
		return DEBUG
	}
}

func encodeZapLevel(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(levelFromZap(level).name())
}

func encodeZapTime(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.UTC().Format(TimestampFormat))
}
