// SPDX-License-Identifier: MIT
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var logLevel string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "dtwindex",
		Short:         "Cluster and query time-series subsequences by DTW distance",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error, disabled")

	root.AddCommand(
		newInfoCmd(),
		newNormalizeCmd(),
		newGroupCmd(),
		newLoadGroupsCmd(),
		newBestMatchCmd(),
		newKNNCmd(),
		newSetBandRatioCmd(),
	)

	return root
}

func newLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}
