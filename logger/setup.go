// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"fmt"
	"os"
	"sync"
)

var (
	// setupLock serializes writes to the process wide configuration.
	setupLock sync.Mutex

	defaultBackendLock sync.RWMutex
	defaultBackend     = NewZapBackend(os.Stderr)
)

// DefaultBackend returns the backend used when none is given to New or Setup.
func DefaultBackend() Backend {
	defaultBackendLock.RLock()
	defer defaultBackendLock.RUnlock()
	return defaultBackend
}

// SetDefaultBackend replaces the backend used when none is given to New or Setup.
// A nil backend restores a zap backend writing to stderr.
func SetDefaultBackend(backend Backend) {
	if backend == nil {
		backend = NewZapBackend(os.Stderr)
	}

	defaultBackendLock.Lock()
	defer defaultBackendLock.Unlock()
	defaultBackend = backend
}

// SetupConfig is the process wide logging configuration.
type SetupConfig struct {
	Level                 Level
	Processors            []Processor
	CacheLoggerOnFirstUse bool

	// Backend defaults to DefaultBackend.
	Backend Backend
}

// Setup configures the standard library logging and the structured backend.
// Every call replaces the previous configuration.
func Setup(cfg SetupConfig) error {
	if !cfg.Level.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidLevel, cfg.Level)
	}

	backend := cfg.Backend
	if backend == nil {
		backend = DefaultBackend()
	}

	processors := cfg.Processors
	if processors == nil {
		processors = DefaultProcessors()
	}

	if _, err := compile(processors); err != nil {
		return err
	}

	setupLock.Lock()
	defer setupLock.Unlock()

	configureStandard(BareMessageConfig(cfg.Level))
	return backend.Configure(BackendConfig{
		Processors:            processors,
		Filter:                MakeFilteringLevel(cfg.Level),
		CacheLoggerOnFirstUse: cfg.CacheLoggerOnFirstUse,
	})
}
