// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"os"

	"github.com/onexAdditional/dtwindex/session"
	"github.com/spf13/cobra"
)

func newGroupCmd() *cobra.Command {
	var metricName string
	var tau float64
	var workers int
	var out string

	cmd := &cobra.Command{
		Use:   "group <dataset>",
		Short: "Cluster every subsequence length of a dataset and save the group index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := session.New(newLogger())
			s.SetWarpingBandRatio(loadBandRatio())

			h, err := s.LoadDataset(args[0])
			if err != nil {
				return err
			}
			if err := s.GroupDataset(h, metricName, tau, workers); err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("dtwindex: create %s: %w", out, err)
			}
			defer f.Close()

			if err := s.SaveGroups(h, f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote group index to %s\n", out)

			return nil
		},
	}
	cmd.Flags().StringVar(&metricName, "metric", "euclidean", "distance metric: euclidean, manhattan, chebyshev")
	cmd.Flags().Float64Var(&tau, "tau", 1.0, "clustering threshold distance")
	cmd.Flags().IntVar(&workers, "workers", 4, "goroutines used to cluster lengths concurrently")
	cmd.Flags().StringVar(&out, "out", "", "path to write the group index to")
	cmd.MarkFlagRequired("out")

	return cmd
}

func newLoadGroupsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load-groups <dataset> <groups>",
		Short: "Load a saved group index and print a summary",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := session.New(newLogger())
			s.SetWarpingBandRatio(loadBandRatio())

			h, err := s.LoadDataset(args[0])
			if err != nil {
				return err
			}

			f, err := os.Open(args[1])
			if err != nil {
				return fmt.Errorf("dtwindex: open %s: %w", args[1], err)
			}
			defer f.Close()

			if err := s.LoadGroups(h, f); err != nil {
				return err
			}

			info, err := s.DatasetInfo(h)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "loaded group index: rows=%d cols=%d grouped=%t\n", info.Rows, info.Cols, info.Grouped)

			return nil
		},
	}

	return cmd
}

func newSetBandRatioCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-band-ratio <ratio>",
		Short: "Persist the default warping band ratio used by future commands",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var ratio float64
			if _, err := fmt.Sscanf(args[0], "%g", &ratio); err != nil {
				return fmt.Errorf("dtwindex: parse ratio %q: %w", args[0], err)
			}
			if ratio <= 0 || ratio > 1 {
				return fmt.Errorf("dtwindex: ratio must lie in (0, 1], got %g", ratio)
			}
			if err := saveBandRatio(ratio); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "default warping band ratio set to %g\n", ratio)

			return nil
		},
	}

	return cmd
}
