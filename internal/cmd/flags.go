// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mia-platform/basiclog/logger"
)

const (
	// LogLevelFlagName is the persistent flag the root command registers for the minimum level.
	LogLevelFlagName = "log-level"

	uuidFlagName  = "uuid"
	uuidFlagUsage = "identity tag written in the uuid field of the record (default a random v4 UUID)"

	backendFlagName  = "backend"
	backendFlagUsage = "logging backend (possible values: zap, hclog, logrus)"

	formatFlagName  = "format"
	formatFlagUsage = "output format (possible values: console, json)"

	configFlagName  = "config"
	configFlagShort = "c"
	configFlagUsage = "path to a YAML file with the logger configuration"
)

// flags collects the CLI options shared by the level commands.
type flags struct {
	uuid       string
	backend    string
	format     string
	configPath string
}

// addFlags registers the CLI flags on cmd.
func (f *flags) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.uuid, uuidFlagName, "", uuidFlagUsage)
	cmd.Flags().StringVar(&f.backend, backendFlagName, logger.BackendZap, backendFlagUsage)
	cmd.Flags().StringVar(&f.format, formatFlagName, logger.FormatConsole, formatFlagUsage)
	cmd.Flags().StringVarP(&f.configPath, configFlagName, configFlagShort, "", configFlagUsage)
}

// toOptions builds an options instance from the parsed flags and CLI arguments.
func (f *flags) toOptions(cmd *cobra.Command, args []string) (*options, error) {
	if len(args) == 0 {
		return nil, errNoMessage
	}

	fields, err := parseFields(args[1:])
	if err != nil {
		return nil, err
	}

	config, err := f.loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	return &options{
		message: args[0],
		fields:  fields,
		config:  config,
	}, nil
}

// loadConfig reads the logger configuration from the environment and the optional file.
// Flags explicitly set on the command line win over the loaded values.
func (f *flags) loadConfig(cmd *cobra.Command) (*logger.Config, error) {
	config, err := logger.LoadConfig(f.configPath)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed(uuidFlagName) {
		config.UUID = f.uuid
	}
	if cmd.Flags().Changed(backendFlagName) {
		config.Backend = f.backend
	}
	if cmd.Flags().Changed(formatFlagName) {
		config.Format = f.format
	}
	if levelFlag := cmd.Flag(LogLevelFlagName); levelFlag != nil && levelFlag.Changed {
		config.Level = levelFlag.Value.String()
	}

	return config, config.Validate()
}
