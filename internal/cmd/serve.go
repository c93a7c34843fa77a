// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/mia-platform/basiclog/internal/server"
	"github.com/mia-platform/basiclog/logger"
)

const (
	serveCmdUsage = "serve"
	serveCmdShort = "start an HTTP service logging every request"
	serveCmdLong  = `Start an HTTP service that logs every request it receives.
	Each request is logged with the value of its x-request-id header, or a new
	random uuid, in the uuid field. The status routes under /-/ are not logged.

	POST /records/<level> with a JSON body {"message": "...", "fields": {...}}
	emits a record at that level tagged with the request id.

	The service listens on HTTP_HOST and HTTP_PORT (default 0.0.0.0:3000) and
	the logger is configured as for the level commands.`

	serveCmdExample = `# Start the service on port 8080 with JSON records
	HTTP_PORT=8080 basiclog serve --format json`
)

// ServeCmd returns the Cobra command that starts the HTTP service.
func ServeCmd() *cobra.Command {
	flags := &flags{}
	cmd := &cobra.Command{
		Use:     serveCmdUsage,
		Short:   heredoc.Doc(serveCmdShort),
		Long:    heredoc.Doc(serveCmdLong),
		Example: heredoc.Doc(serveCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			config, err := flags.loadConfig(cmd)
			if err != nil {
				return handleError(cmd, err)
			}

			loggerOptions, err := config.Options(cmd.ErrOrStderr())
			if err != nil {
				return handleError(cmd, err)
			}

			log, err := logger.New(loggerOptions...)
			if err != nil {
				return handleError(cmd, err)
			}

			serverConfig, err := server.LoadServerConfig()
			if err != nil {
				return handleError(cmd, err)
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if err := server.NewServer(log, serverConfig).Run(ctx); err != nil {
				return handleError(cmd, err)
			}
			return nil
		},
	}

	flags.addFlags(cmd)
	return cmd
}
