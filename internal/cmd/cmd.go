// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/mia-platform/basiclog/logger"
)

const (
	logCmdUsageTemplate = "%s MESSAGE [key=value...]"
	logCmdShort         = "emit a single %s record"
	logCmdLong          = `Emit a single structured record at the %s level.
	The record carries the message, the level, an ISO-8601 UTC timestamp, the
	given key=value fields and the uuid identifying the logger.

	The logger is configured from the LOG_LEVEL, LOGGER_UUID, LOG_BACKEND and
	LOG_FORMAT environment variables, then from the optional configuration file
	and finally from the command line flags.`

	logCmdExample = `# Emit an info record with two fields
	basiclog info "service started" port=8080 env=dev

	# Emit a JSON error record with a fixed uuid through hclog
	basiclog error "connection lost" --uuid abc-123 --backend hclog --format json`
)

// LogCmds returns a Cobra command for every level, from the least to the most severe.
func LogCmds() []*cobra.Command {
	levels := logger.AllLevels()
	commands := make([]*cobra.Command, 0, len(levels))
	for _, level := range levels {
		commands = append(commands, LogCmd(level))
	}
	return commands
}

// LogCmd returns the Cobra command that emits a record at level.
func LogCmd(level logger.Level) *cobra.Command {
	flags := &flags{}
	name := strings.ToLower(level.String())
	cmd := &cobra.Command{
		Use:     fmt.Sprintf(logCmdUsageTemplate, name),
		Short:   heredoc.Doc(fmt.Sprintf(logCmdShort, name)),
		Long:    heredoc.Doc(fmt.Sprintf(logCmdLong, level)),
		Example: heredoc.Doc(logCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.toOptions(cmd, args)
			if err != nil {
				return handleError(cmd, err)
			}

			if err := opts.validate(); err != nil {
				return handleError(cmd, err)
			}

			if err := opts.emit(level, cmd.ErrOrStderr()); err != nil {
				return handleError(cmd, err)
			}

			return nil
		},
	}

	flags.addFlags(cmd)
	return cmd
}
