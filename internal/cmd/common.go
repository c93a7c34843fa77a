// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mia-platform/basiclog/logger"
)

var (
	errNoMessage    = errors.New("no message provided")
	errInvalidField = errors.New("invalid field, expected key=value")
)

// handleError will do custom print error handling based on the type of error received.
// it will return nil if the command must return 0 exit code, otherwise it will return
// the original error.
func handleError(cmd *cobra.Command, err error) error {
	switch {
	case errors.Is(err, errNoMessage):
		_ = cmd.Usage() // do not check error as we cannot do much about it
		return nil
	case errors.Is(err, errInvalidField), errors.Is(err, logger.ErrConfigNotValid):
		cmd.PrintErrln(err)
		_ = cmd.Usage() // do not check error as we cannot do much about it
		return err
	default:
		cmd.PrintErrln(err)
		return err
	}
}

// parseFields converts key=value arguments into alternating key/value pairs.
func parseFields(args []string) ([]any, error) {
	fields := make([]any, 0, len(args)*2)
	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("%w: %q", errInvalidField, arg)
		}
		fields = append(fields, key, value)
	}

	return fields, nil
}
