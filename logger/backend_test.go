// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonLines(t *testing.T, buffer *bytes.Buffer) []map[string]any {
	t.Helper()

	records := make([]map[string]any, 0)
	for _, line := range strings.Split(strings.TrimSpace(buffer.String()), "\n") {
		if line == "" {
			continue
		}
		record := make(map[string]any)
		require.NoError(t, json.Unmarshal([]byte(line), &record), line)
		records = append(records, record)
	}
	return records
}

func TestNewBackend(t *testing.T) {
	t.Parallel()

	for _, name := range []string{BackendZap, BackendHCLog, BackendLogrus} {
		backend, err := NewBackend(name, new(bytes.Buffer))
		require.NoError(t, err, name)
		assert.NotNil(t, backend, name)
	}

	backend, err := NewBackend("syslog", new(bytes.Buffer))
	assert.ErrorIs(t, err, ErrUnknownBackend)
	assert.Nil(t, backend)
}

func TestMakeFilteringLevel(t *testing.T) {
	t.Parallel()

	filter := MakeFilteringLevel(WARNING)
	assert.Equal(t, WARNING, filter.MinLevel())
	assert.False(t, filter.Enabled(DEBUG))
	assert.False(t, filter.Enabled(INFO))
	assert.True(t, filter.Enabled(WARNING))
	assert.True(t, filter.Enabled(ERROR))
	assert.True(t, filter.Enabled(CRITICAL))
}

func TestZapBackendJSON(t *testing.T) {
	t.Parallel()

	buffer := new(bytes.Buffer)
	log, err := New(
		WithBackend(NewZapBackend(buffer)),
		WithLevel(INFO),
		WithUUID("abc-123"),
		WithProcessors(JSONProcessors()...),
	)
	require.NoError(t, err)

	log.Debug("filtered out")
	log.Info("started", "port", 8080)
	log.Critical("on fire")

	records := jsonLines(t, buffer)
	require.Len(t, records, 2)

	assert.Equal(t, "started", records[0][MessageKey])
	assert.Equal(t, "info", records[0][LevelKey])
	assert.Equal(t, "abc-123", records[0][UUIDKey])
	assert.Equal(t, float64(8080), records[0]["port"])

	timestamp, ok := records[0][TimestampKey].(string)
	require.True(t, ok)
	assert.True(t, strings.HasSuffix(timestamp, "Z"), timestamp)
	_, err = time.Parse(TimestampFormat, timestamp)
	assert.NoError(t, err)

	assert.Equal(t, "critical", records[1][LevelKey])
	assert.Equal(t, "on fire", records[1][MessageKey])
}

func TestZapBackendConsole(t *testing.T) {
	t.Parallel()

	buffer := new(bytes.Buffer)
	log, err := New(WithBackend(NewZapBackend(buffer)), WithUUID("abc-123"))
	require.NoError(t, err)

	log.Warning("disk almost full", "free", "2%")

	lines := strings.Split(buffer.String(), "\n")
	require.Len(t, lines, 2) // 1 log line plus 1 trailing empty line
	assert.Contains(t, lines[0], "warning")
	assert.Contains(t, lines[0], "disk almost full")
	assert.Contains(t, lines[0], "abc-123")
	assert.Contains(t, lines[0], "2%")
	assert.False(t, strings.HasPrefix(lines[0], "{"))
}

func TestStackAndExceptionProcessors(t *testing.T) {
	t.Parallel()

	buffer := new(bytes.Buffer)
	log, err := New(
		WithBackend(NewZapBackend(buffer)),
		WithUUID("abc-123"),
		WithProcessors(JSONProcessors()...),
	)
	require.NoError(t, err)

	log.Error("request failed", ExcInfoKey, errors.New("connection refused"), StackInfoKey, true)
	log.Error("no stack", StackInfoKey, false)

	records := jsonLines(t, buffer)
	require.Len(t, records, 2)

	assert.Equal(t, "connection refused", records[0][ExceptionKey])
	assert.Contains(t, records[0][StackKey], "goroutine")
	assert.NotContains(t, records[0], ExcInfoKey)
	assert.NotContains(t, records[0], StackInfoKey)

	assert.NotContains(t, records[1], StackKey)
	assert.NotContains(t, records[1], StackInfoKey)
}

func TestReconfigurationLastWriteWins(t *testing.T) {
	t.Parallel()

	buffer := new(bytes.Buffer)
	backend := NewZapBackend(buffer)

	first, err := New(WithBackend(backend), WithLevel(DEBUG), WithProcessors(JSONProcessors()...))
	require.NoError(t, err)
	first.Debug("before reconfiguration")

	_, err = New(WithBackend(backend), WithLevel(ERROR), WithProcessors(JSONProcessors()...))
	require.NoError(t, err)
	first.Debug("after reconfiguration")
	first.Error("still emitted")

	records := jsonLines(t, buffer)
	require.Len(t, records, 2)
	assert.Equal(t, "before reconfiguration", records[0][MessageKey])
	assert.Equal(t, "still emitted", records[1][MessageKey])
}

func TestCacheLoggerOnFirstUse(t *testing.T) {
	t.Parallel()

	buffer := new(bytes.Buffer)
	backend := NewZapBackend(buffer)

	cached, err := New(
		WithBackend(backend),
		WithLevel(DEBUG),
		WithCacheLoggerOnFirstUse(true),
		WithProcessors(JSONProcessors()...),
	)
	require.NoError(t, err)
	cached.Debug("pins the configuration")

	_, err = New(WithBackend(backend), WithLevel(ERROR), WithProcessors(JSONProcessors()...))
	require.NoError(t, err)
	cached.Debug("uses the pinned configuration")

	records := jsonLines(t, buffer)
	require.Len(t, records, 2)
	assert.Equal(t, "uses the pinned configuration", records[1][MessageKey])
}

func TestCachePolicySwappedWithConfiguration(t *testing.T) {
	t.Parallel()

	buffer := new(bytes.Buffer)
	backend := NewZapBackend(buffer).(*zapBackend)
	handle := backend.Logger()

	require.NoError(t, backend.Configure(BackendConfig{Processors: JSONProcessors()}))
	active := backend.active.Load()
	require.NotNil(t, active)
	assert.False(t, active.cache)

	handle.Info("follows the latest configuration", nil)

	require.NoError(t, backend.Configure(BackendConfig{
		Processors:            JSONProcessors(),
		Filter:                MakeFilteringLevel(INFO),
		CacheLoggerOnFirstUse: true,
	}))
	pinned := backend.active.Load()
	assert.True(t, pinned.cache)

	handle.Info("pins the cached configuration", nil)

	require.NoError(t, backend.Configure(BackendConfig{
		Processors: JSONProcessors(),
		Filter:     MakeFilteringLevel(CRITICAL),
	}))
	assert.False(t, backend.active.Load().cache)

	handle.Info("still emitted through the pinned configuration", nil)
	assert.Same(t, pinned, handle.(*proxy).cached.Load())

	records := jsonLines(t, buffer)
	require.Len(t, records, 3)
	assert.Equal(t, "still emitted through the pinned configuration", records[2][MessageKey])
}

func TestEmitBeforeConfigure(t *testing.T) {
	t.Parallel()

	buffer := new(bytes.Buffer)
	backend := NewZapBackend(buffer)

	backend.Logger().Info("nobody configured me", Fields{{Key: "key", Value: "value"}})
	assert.Empty(t, buffer.String())
}

func TestHCLogBackend(t *testing.T) {
	t.Parallel()

	t.Run("console", func(t *testing.T) {
		t.Parallel()

		buffer := new(bytes.Buffer)
		log, err := New(WithBackend(NewHCLogBackend(buffer)), WithLevel(INFO), WithUUID("abc-123"))
		require.NoError(t, err)

		log.Debug("filtered out")
		log.Info("started", "port", 8080)

		lines := strings.Split(buffer.String(), "\n")
		require.Len(t, lines, 2) // 1 log line plus 1 trailing empty line
		assert.Contains(t, lines[0], "[INFO]")
		assert.Contains(t, lines[0], "started")
		assert.Contains(t, lines[0], "port=8080")
		assert.Contains(t, lines[0], "uuid=abc-123")
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		buffer := new(bytes.Buffer)
		log, err := New(
			WithBackend(NewHCLogBackend(buffer)),
			WithLevel(ERROR),
			WithUUID("abc-123"),
			WithProcessors(JSONProcessors()...),
		)
		require.NoError(t, err)

		log.Warning("filtered out")
		log.Critical("on fire", "attempt", 3)

		records := jsonLines(t, buffer)
		require.Len(t, records, 1)
		assert.Equal(t, "on fire", records[0]["@message"])
		assert.Equal(t, "error", records[0]["@level"])
		assert.Equal(t, "abc-123", records[0][UUIDKey])
		assert.Equal(t, float64(3), records[0]["attempt"])
	})
}

func TestLogrusBackend(t *testing.T) {
	t.Parallel()

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		buffer := new(bytes.Buffer)
		log, err := New(
			WithBackend(NewLogrusBackend(buffer)),
			WithLevel(WARNING),
			WithUUID("abc-123"),
			WithProcessors(JSONProcessors()...),
		)
		require.NoError(t, err)

		log.Info("filtered out")
		log.Warning("slow query", "millis", 1200)
		log.Critical("on fire")

		records := jsonLines(t, buffer)
		require.Len(t, records, 2)

		assert.Equal(t, "slow query", records[0][MessageKey])
		assert.Equal(t, "warning", records[0][LevelKey])
		assert.Equal(t, "abc-123", records[0][UUIDKey])
		assert.Equal(t, float64(1200), records[0]["millis"])

		timestamp, ok := records[0][TimestampKey].(string)
		require.True(t, ok)
		assert.True(t, strings.HasSuffix(timestamp, "Z"), timestamp)

		assert.Equal(t, "fatal", records[1][LevelKey])
	})

	t.Run("console", func(t *testing.T) {
		t.Parallel()

		buffer := new(bytes.Buffer)
		log, err := New(WithBackend(NewLogrusBackend(buffer)), WithUUID("abc-123"))
		require.NoError(t, err)

		log.Debug("details", "step", "init")

		output := buffer.String()
		assert.Contains(t, output, "level=debug")
		assert.Contains(t, output, "uuid=abc-123")
		assert.Contains(t, output, "step=init")
		assert.Contains(t, output, "details")
	})
}
