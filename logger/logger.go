// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"fmt"

	"github.com/google/uuid"
)

var (
	// nullLogger is a logger that discards all log messages.
	nullLogger = &Logger{uuid: uuid.Nil.String(), level: CRITICAL, log: nopEmitter{}}

	// newUUID generates identity tags. It can be overridden for testing purposes.
	newUUID = uuid.NewRandom
)

// Logger tags every record with an identity and forwards it to a Backend.
// A Logger is immutable and safe for concurrent use.
type Logger struct {
	uuid  string
	level Level
	log   Emitter

	bound      Fields
	mergeBound bool
}

type options struct {
	level      Level
	uuid       string
	backend    Backend
	processors []Processor
	cache      bool
}

// Option customizes New.
type Option func(*options)

// WithLevel sets the minimum level. The default is DEBUG.
func WithLevel(level Level) Option {
	return func(o *options) {
		o.level = level
	}
}

// WithUUID sets the identity tag. An empty id is replaced by a random v4 UUID.
func WithUUID(id string) Option {
	return func(o *options) {
		o.uuid = id
	}
}

// WithBackend sets the backend to configure and emit through. The default is DefaultBackend.
func WithBackend(backend Backend) Option {
	return func(o *options) {
		o.backend = backend
	}
}

// WithProcessors replaces DefaultProcessors.
func WithProcessors(processors ...Processor) Option {
	return func(o *options) {
		o.processors = processors
	}
}

// WithCacheLoggerOnFirstUse sets the caching policy of the backend handle.
func WithCacheLoggerOnFirstUse(cache bool) Option {
	return func(o *options) {
		o.cache = cache
	}
}

// New configures the process wide logging and returns a Logger bound to it.
// Each call reconfigures the backend; the last configuration wins for every Logger
// sharing it unless caching on first use is enabled.
func New(opts ...Option) (*Logger, error) {
	o := &options{
		level:      DEBUG,
		processors: DefaultProcessors(),
	}
	for _, opt := range opts {
		opt(o)
	}

	if !o.level.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidLevel, o.level)
	}

	p, err := compile(o.processors)
	if err != nil {
		return nil, err
	}

	id := o.uuid
	if id == "" {
		generated, err := newUUID()
		if err != nil {
			return nil, fmt.Errorf("generating logger uuid: %w", err)
		}
		id = generated.String()
	}

	backend := o.backend
	if backend == nil {
		backend = DefaultBackend()
	}

	if err := Setup(SetupConfig{
		Level:                 o.level,
		Processors:            o.processors,
		CacheLoggerOnFirstUse: o.cache,
		Backend:               backend,
	}); err != nil {
		return nil, err
	}

	return &Logger{
		uuid:       id,
		level:      o.level,
		log:        backend.Logger(),
		mergeBound: p.mergeBound,
	}, nil
}

// UUID returns the identity tag added to every record.
func (l *Logger) UUID() string {
	return l.uuid
}

// Level returns the minimum level the Logger was configured with.
func (l *Logger) Level() Level {
	return l.level
}

// Bind returns a Logger adding the given key/value pairs to every record.
// Fields passed to a logging call win over bound ones.
func (l *Logger) Bind(args ...any) *Logger {
	child := *l
	child.bound = l.bound.Merge(FieldsFromArgs(args...))
	return &child
}

// WithIdentity returns a Logger tagging records with id instead. The backend is
// not reconfigured. An empty id is replaced by a random v4 UUID, and a failure
// generating it is returned.
func (l *Logger) WithIdentity(id string) (*Logger, error) {
	if id == "" {
		generated, err := newUUID()
		if err != nil {
			return nil, fmt.Errorf("generating logger uuid: %w", err)
		}
		id = generated.String()
	}
	child := *l
	child.uuid = id
	return &child, nil
}

// Debug emits msg and key/value pairs at the DEBUG level.
func (l *Logger) Debug(msg string, args ...any) {
	l.log.Debug(msg, l.fields(args))
}

// Info emits msg and key/value pairs at the INFO level.
func (l *Logger) Info(msg string, args ...any) {
	l.log.Info(msg, l.fields(args))
}

// Warning emits msg and key/value pairs at the WARNING level.
func (l *Logger) Warning(msg string, args ...any) {
	l.log.Warning(msg, l.fields(args))
}

// Error emits msg and key/value pairs at the ERROR level.
func (l *Logger) Error(msg string, args ...any) {
	l.log.Error(msg, l.fields(args))
}

// Critical emits msg and key/value pairs at the CRITICAL level.
func (l *Logger) Critical(msg string, args ...any) {
	l.log.Critical(msg, l.fields(args))
}

// Log emits msg at level through the matching leveled method.
// Levels outside the enumeration are dropped.
func (l *Logger) Log(level Level, msg string, args ...any) {
	switch level {
	case DEBUG:
		l.Debug(msg, args...)
	case INFO:
		l.Info(msg, args...)
	case WARNING:
		l.Warning(msg, args...)
	case ERROR:
		l.Error(msg, args...)
	case CRITICAL:
		l.Critical(msg, args...)
	}
}

// fields builds the record fields. The identity tag is always set last and
// overrides a caller supplied uuid.
func (l *Logger) fields(args []any) Fields {
	fields := FieldsFromArgs(args...)
	if l.mergeBound && len(l.bound) > 0 {
		fields = l.bound.Merge(fields)
	}
	return fields.Append(UUIDKey, l.uuid)
}
