// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"sync"
	"testing"
)

var _ Backend = &recordingBackend{}

type recordedCall struct {
	method string
	msg    string
	fields Fields
}

type recordingEmitter struct {
	lock  sync.Mutex
	calls []recordedCall
}

func (e *recordingEmitter) record(method, msg string, fields Fields) {
	e.lock.Lock()
	defer e.lock.Unlock()
	e.calls = append(e.calls, recordedCall{method: method, msg: msg, fields: fields})
}

func (e *recordingEmitter) Debug(msg string, fields Fields)    { e.record("debug", msg, fields) }
func (e *recordingEmitter) Info(msg string, fields Fields)     { e.record("info", msg, fields) }
func (e *recordingEmitter) Warning(msg string, fields Fields)  { e.record("warning", msg, fields) }
func (e *recordingEmitter) Error(msg string, fields Fields)    { e.record("error", msg, fields) }
func (e *recordingEmitter) Critical(msg string, fields Fields) { e.record("critical", msg, fields) }

// recordingBackend records every configuration and every call made through its emitter.
type recordingBackend struct {
	configs []BackendConfig
	emitter *recordingEmitter
	err     error
}

func newRecordingBackend() *recordingBackend {
	return &recordingBackend{emitter: &recordingEmitter{}}
}

func (b *recordingBackend) Configure(cfg BackendConfig) error {
	if b.err != nil {
		return b.err
	}
	b.configs = append(b.configs, cfg)
	return nil
}

func (b *recordingBackend) Logger() Emitter {
	return b.emitter
}

func (b *recordingBackend) calls() []recordedCall {
	b.emitter.lock.Lock()
	defer b.emitter.lock.Unlock()
	return append([]recordedCall(nil), b.emitter.calls...)
}

// recordStandardConfig replaces configureStandard for the duration of the test.
// Tests using it must not run in parallel.
func recordStandardConfig(t *testing.T) *[]StandardConfig {
	t.Helper()

	recorded := make([]StandardConfig, 0)
	original := configureStandard
	configureStandard = func(cfg StandardConfig) {
		recorded = append(recorded, cfg)
	}
	t.Cleanup(func() {
		configureStandard = original
	})

	return &recorded
}
