// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package cli

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/cinematch/internal/catalog"
)

func newStatsCmd(root *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show catalog statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := root.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			st := cat.Stats()

			if asJSON {
				data, err := json.MarshalIndent(st, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal stats: %w", err)
				}
				cmd.Println(string(data))
				return nil
			}

			cmd.Printf("Movies:       %d\n", st.Entries)
			cmd.Printf("Mean rating:  %.2f\n", st.MeanRating)
			if st.MinYear != nil && st.MaxYear != nil {
				cmd.Printf("Years:        %d-%d\n", *st.MinYear, *st.MaxYear)
			}
			if st.Skipped > 0 {
				cmd.Printf("Skipped rows: %d\n", st.Skipped)
			}
			if len(st.TopGenres) > 0 {
				cmd.Println("Top genres:")
				for _, g := range st.TopGenres {
					cmd.Printf("  %-12s %d\n", g.Genre, g.Count)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")
	return cmd
}

func newPopularCmd(root *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "popular",
		Short: "List quick-pick titles",
		Long:  "Lists the first titles of the catalog, which for a ranked list such as the IMDB top 1000 are the most popular.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit < 1 {
				return fmt.Errorf("--limit must be positive, got %d", limit)
			}
			cat, err := root.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			for _, title := range cat.Popular(limit) {
				cmd.Println(title)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", catalog.DefaultPopularLimit, "number of titles")
	return cmd
}
