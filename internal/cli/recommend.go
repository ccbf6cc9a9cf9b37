// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/recommend"
)

type recommendOptions struct {
	title     string
	k         int
	minRating float64
	json      bool
}

func newRecommendCmd(root *rootOptions) *cobra.Command {
	opts := &recommendOptions{}

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend movies similar to a title",
		Long: `Builds the similarity index for the catalog and prints the movies most
similar to --title, keeping only those rated at least --min-rating.

Exits 2 when the title is not in the catalog and 3 when no similar movie
passes the rating filter.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRecommend(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.title, "title", "t", "", "movie title (case-insensitive exact match)")
	cmd.Flags().IntVarP(&opts.k, "k", "k", 0, "number of recommendations (default from config)")
	cmd.Flags().Float64Var(&opts.minRating, "min-rating", 0, "minimum rating (default from config)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "output JSON")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func runRecommend(cmd *cobra.Command, root *rootOptions, opts *recommendOptions) error {
	ctx := cmd.Context()

	engine, err := recommend.NewEngine(root.cfg.EngineConfig(), nil, logging.Logger())
	if err != nil {
		return err
	}
	cat, err := root.loadCatalog(ctx)
	if err != nil {
		return err
	}
	snap, err := recommend.BuildSnapshot(ctx, cat, engine.Config().Build)
	if err != nil {
		return fmt.Errorf("build index: %w", err)
	}
	if err := engine.Publish(snap); err != nil {
		return err
	}

	req := recommend.Request{
		Title:     opts.title,
		K:         root.cfg.Recommend.DefaultK,
		MinRating: root.cfg.Recommend.DefaultMinRating,
	}
	if cmd.Flags().Changed("k") {
		req.K = opts.k
	}
	if cmd.Flags().Changed("min-rating") {
		req.MinRating = opts.minRating
	}

	resp, err := engine.Recommend(ctx, req)
	switch {
	case errors.Is(err, recommend.ErrNotFound):
		return &ExitCodeError{Code: ExitTitleNotFound, Err: errors.New(recommend.MessageNotFound)}
	case errors.Is(err, recommend.ErrEmpty):
		return &ExitCodeError{Code: ExitNoRecommendation, Err: errors.New(recommend.MessageEmpty)}
	case err != nil:
		return err
	}

	if opts.json {
		data, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Because you liked %s:\n\n", resp.Query)
	for i, item := range resp.Items {
		year := ""
		if item.Year != nil {
			year = fmt.Sprintf(" (%d)", *item.Year)
		}
		cmd.Printf("  [%d] %s%s  rating %.1f  similarity %.3f\n", i+1, item.Title, year, item.Rating, item.SimilarityScore)
		if len(item.Genres) > 0 {
			cmd.Printf("      %s\n", strings.Join(item.Genres, ", "))
		}
	}
	return nil
}
