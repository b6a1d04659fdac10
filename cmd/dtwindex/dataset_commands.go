// SPDX-License-Identifier: MIT
package main

import (
	"fmt"

	"github.com/onexAdditional/dtwindex/dataset"
	"github.com/onexAdditional/dtwindex/session"
	"github.com/spf13/cobra"
)

func loadOptionsFromFlags(sep string, startCol, maxRows int) []dataset.LoadOption {
	var opts []dataset.LoadOption
	if sep != "" {
		opts = append(opts, dataset.WithSeparators(sep))
	}
	if startCol > 0 {
		opts = append(opts, dataset.WithStartCol(startCol))
	}
	if maxRows > 0 {
		opts = append(opts, dataset.WithMaxRows(maxRows))
	}

	return opts
}

func newInfoCmd() *cobra.Command {
	var sep string
	var startCol, maxRows int

	cmd := &cobra.Command{
		Use:   "info <dataset>",
		Short: "Print the row and column count of a dataset file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := session.New(newLogger())
			h, err := s.LoadDataset(args[0], loadOptionsFromFlags(sep, startCol, maxRows)...)
			if err != nil {
				return err
			}

			info, err := s.DatasetInfo(h)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "path=%s rows=%d cols=%d grouped=%t\n", info.Path, info.Rows, info.Cols, info.Grouped)

			return nil
		},
	}
	cmd.Flags().StringVar(&sep, "sep", "", "field separator characters (default: any whitespace)")
	cmd.Flags().IntVar(&startCol, "start-col", 0, "number of leading columns to discard as labels")
	cmd.Flags().IntVar(&maxRows, "max-rows", 0, "stop after this many rows (0 = no limit)")

	return cmd
}

func newNormalizeCmd() *cobra.Command {
	var sep string
	var startCol, maxRows int

	cmd := &cobra.Command{
		Use:   "normalize <dataset>",
		Short: "Min-max normalize a dataset and print the min and max it was scaled by",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := session.New(newLogger())
			h, err := s.LoadDataset(args[0], loadOptionsFromFlags(sep, startCol, maxRows)...)
			if err != nil {
				return err
			}

			lo, hi, err := s.NormalizeDataset(h)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "min=%g max=%g\n", lo, hi)

			return nil
		},
	}
	cmd.Flags().StringVar(&sep, "sep", "", "field separator characters (default: any whitespace)")
	cmd.Flags().IntVar(&startCol, "start-col", 0, "number of leading columns to discard as labels")
	cmd.Flags().IntVar(&maxRows, "max-rows", 0, "stop after this many rows (0 = no limit)")

	return cmd
}
