// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package main

import (
	"bytes"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mia-platform/basiclog/logger"
)

func TestRootCommand(t *testing.T) {
	Version = "test"
	BuildDate = "2024-06-01"

	cmd := rootCmd()
	buffer := new(bytes.Buffer)
	cmd.SetOut(buffer)

	cmd.SetArgs([]string{"--log-level", "WARNING", "version"})
	err := cmd.ExecuteContext(t.Context())
	require.NoError(t, err)

	lines := strings.Split(buffer.String(), "\n")
	assert.Len(t, lines, 2) // version output + empty line
	assert.Equal(t, versionString(Version, BuildDate, runtime.Version())+"\n", buffer.String())

	buffer.Reset()
	BuildDate = ""
	cmd.SetArgs([]string{"--log-level", "WARNING", "version"})
	err = cmd.ExecuteContext(t.Context())
	require.NoError(t, err)
	assert.Equal(t, versionString(Version, "", runtime.Version())+"\n", buffer.String())
}

func TestRootCommandInvalidLogLevel(t *testing.T) {
	cmd := rootCmd()
	buffer := new(bytes.Buffer)
	cmd.SetOut(buffer)
	cmd.SetErr(buffer)

	cmd.SetArgs([]string{"--log-level", "TRACE", "version"})
	err := cmd.ExecuteContext(t.Context())
	require.ErrorIs(t, err, logger.ErrInvalidLevel)
	assert.Contains(t, buffer.String(), "TRACE")
}

func TestRootCommandLogLevelFilter(t *testing.T) {
	for _, key := range []string{"LOG_LEVEL", "LOGGER_UUID", "LOG_BACKEND", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}

	cmd := rootCmd()
	stderr := new(bytes.Buffer)
	cmd.SetErr(stderr)

	cmd.SetArgs([]string{"-v", "ERROR", "info", "ignored record"})
	require.NoError(t, cmd.ExecuteContext(t.Context()))
	assert.Empty(t, stderr.String())

	cmd.SetArgs([]string{"-v", "ERROR", "error", "kept record", "--uuid", "abc-123"})
	require.NoError(t, cmd.ExecuteContext(t.Context()))
	assert.Contains(t, stderr.String(), "kept record")
	assert.Contains(t, stderr.String(), "abc-123")
	assert.Contains(t, stderr.String(), "error")
}

func TestVersionString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1.0.0 (2024-06-01), Go Version: go1.25", versionString("1.0.0", "2024-06-01", "go1.25"))
	assert.Equal(t, "1.0.0, Go Version: go1.25", versionString("1.0.0", "", "go1.25"))
}
