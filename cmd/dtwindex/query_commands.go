// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/onexAdditional/dtwindex/session"
	"github.com/spf13/cobra"
)

func loadAndGroup(datasetPath, groupsPath string) (*session.Session, session.Handle, error) {
	s := session.New(newLogger())
	s.SetWarpingBandRatio(loadBandRatio())

	h, err := s.LoadDataset(datasetPath)
	if err != nil {
		return nil, 0, err
	}

	f, err := os.Open(groupsPath)
	if err != nil {
		return nil, 0, fmt.Errorf("dtwindex: open %s: %w", groupsPath, err)
	}
	defer f.Close()

	if err := s.LoadGroups(h, f); err != nil {
		return nil, 0, err
	}

	return s, h, nil
}

func newBestMatchCmd() *cobra.Command {
	var row, start, length int

	cmd := &cobra.Command{
		Use:   "best-match <dataset> <groups>",
		Short: "Find the closest subsequence in the index to a query window",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, h, err := loadAndGroup(args[0], args[1])
			if err != nil {
				return err
			}

			member, matchLength, dist, err := s.BestMatch(context.Background(), h, row, start, length)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "row=%d start=%d length=%d dist=%g\n", member.Row, member.Start, matchLength, dist)

			return nil
		},
	}
	cmd.Flags().IntVar(&row, "row", 0, "query row")
	cmd.Flags().IntVar(&start, "start", 0, "query start offset")
	cmd.Flags().IntVar(&length, "length", 0, "query subsequence length")
	cmd.MarkFlagRequired("length")

	return cmd
}

func newKNNCmd() *cobra.Command {
	var row, start, length, k int

	cmd := &cobra.Command{
		Use:   "knn <dataset> <groups>",
		Short: "Find the k closest subsequences in the index to a query window",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, h, err := loadAndGroup(args[0], args[1])
			if err != nil {
				return err
			}

			matches, err := s.KNN(context.Background(), h, row, start, length, k)
			if err != nil {
				return err
			}
			for _, m := range matches {
				fmt.Fprintf(cmd.OutOrStdout(), "row=%d start=%d length=%d dist=%g\n", m.Member.Row, m.Member.Start, m.Length, m.Dist)
			}

			return nil
		},
	}
	cmd.Flags().IntVar(&row, "row", 0, "query row")
	cmd.Flags().IntVar(&start, "start", 0, "query start offset")
	cmd.Flags().IntVar(&length, "length", 0, "query subsequence length")
	cmd.Flags().IntVar(&k, "k", 5, "number of neighbors to return")
	cmd.MarkFlagRequired("length")

	return cmd
}
