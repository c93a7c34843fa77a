// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"io"
	"strings"

	"github.com/mia-platform/basiclog/logger"
)

// options holds a record ready to be emitted.
type options struct {
	message string
	fields  []any
	config  *logger.Config
}

// validate checks the configured values and reports invalid setups.
func (o *options) validate() error {
	if strings.TrimSpace(o.message) == "" {
		return errNoMessage
	}

	return o.config.Validate()
}

// emit builds a logger writing to w and emits the record at level.
func (o *options) emit(level logger.Level, w io.Writer) error {
	loggerOptions, err := o.config.Options(w)
	if err != nil {
		return err
	}

	log, err := logger.New(loggerOptions...)
	if err != nil {
		return err
	}

	log.Log(level, o.message, o.fields...)
	return nil
}
