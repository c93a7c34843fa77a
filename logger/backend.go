// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"errors"
	"fmt"
	"io"
	"sync/atomic"
)

const (
	BackendZap    = "zap"
	BackendHCLog  = "hclog"
	BackendLogrus = "logrus"
)

var (
	// ErrUnknownBackend reports a backend name that NewBackend cannot build.
	ErrUnknownBackend = errors.New("unknown logging backend")
)

// Backend is a structured logging library configured process wide.
type Backend interface {
	// Configure replaces the active configuration of the backend.
	Configure(cfg BackendConfig) error

	// Logger returns a handle emitting through the backend configuration.
	Logger() Emitter
}

// BackendConfig is the configuration applied by Backend.Configure.
type BackendConfig struct {
	// Processors is the ordered chain every record goes through.
	Processors []Processor

	// Filter drops records below its minimum level. A nil Filter lets every record through.
	Filter LevelFilter

	// CacheLoggerOnFirstUse pins a handle to the configuration active when it first emits.
	// When false every emission observes the latest configuration.
	CacheLoggerOnFirstUse bool
}

// Emitter is the handle returned by Backend.Logger.
type Emitter interface {
	Debug(msg string, fields Fields)
	Info(msg string, fields Fields)
	Warning(msg string, fields Fields)
	Error(msg string, fields Fields)
	Critical(msg string, fields Fields)
}

// LevelFilter decides which levels reach the backend.
type LevelFilter interface {
	Enabled(level Level) bool
	MinLevel() Level
}

type filteringLevel Level

// MakeFilteringLevel returns a LevelFilter letting through minLevel and every more severe level.
func MakeFilteringLevel(minLevel Level) LevelFilter {
	return filteringLevel(minLevel)
}

func (f filteringLevel) Enabled(level Level) bool {
	return level >= Level(f)
}

func (f filteringLevel) MinLevel() Level {
	return Level(f)
}

// NewBackend builds the backend registered under name, writing to w.
func NewBackend(name string, w io.Writer) (Backend, error) {
	switch name {
	case BackendZap:
		return NewZapBackend(w), nil
	case BackendHCLog:
		return NewHCLogBackend(w), nil
	case BackendLogrus:
		return NewLogrusBackend(w), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
}

// sink renders records for one applied configuration.
type sink interface {
	emit(level Level, msg string, fields Fields)
}

type configured struct {
	sink     sink
	pipeline pipeline
	filter   LevelFilter
	cache    bool
}

// state holds the active configuration shared by a backend and its handles.
type state struct {
	active atomic.Pointer[configured]
}

func (s *state) apply(cfg BackendConfig, build func(pipeline, LevelFilter) (sink, error)) error {
	p, err := compile(cfg.Processors)
	if err != nil {
		return err
	}

	filter := cfg.Filter
	if filter == nil {
		filter = MakeFilteringLevel(DEBUG)
	}

	sink, err := build(p, filter)
	if err != nil {
		return err
	}

	s.active.Store(&configured{
		sink:     sink,
		pipeline: p,
		filter:   filter,
		cache:    cfg.CacheLoggerOnFirstUse,
	})
	return nil
}

func (s *state) logger() Emitter {
	return &proxy{state: s}
}

// proxy resolves the backend configuration lazily, on every emission.
type proxy struct {
	state  *state
	cached atomic.Pointer[configured]
}

func (p *proxy) resolve() *configured {
	if cached := p.cached.Load(); cached != nil {
		return cached
	}

	current := p.state.active.Load()
	if current != nil && current.cache {
		p.cached.CompareAndSwap(nil, current)
		return p.cached.Load()
	}
	return current
}

func (p *proxy) emit(level Level, msg string, fields Fields) {
	c := p.resolve()
	if c == nil || !c.filter.Enabled(level) {
		return
	}
	c.sink.emit(level, msg, c.pipeline.process(fields))
}

func (p *proxy) Debug(msg string, fields Fields) {
	p.emit(DEBUG, msg, fields)
}

func (p *proxy) Info(msg string, fields Fields) {
	p.emit(INFO, msg, fields)
}

func (p *proxy) Warning(msg string, fields Fields) {
	p.emit(WARNING, msg, fields)
}

func (p *proxy) Error(msg string, fields Fields) {
	p.emit(ERROR, msg, fields)
}

func (p *proxy) Critical(msg string, fields Fields) {
	p.emit(CRITICAL, msg, fields)
}

// nopEmitter discards every record.
type nopEmitter struct{}

func (nopEmitter) Debug(string, Fields)    {}
func (nopEmitter) Info(string, Fields)     {}
func (nopEmitter) Warning(string, Fields)  {}
func (nopEmitter) Error(string, Fields)    {}
func (nopEmitter) Critical(string, Fields) {}
