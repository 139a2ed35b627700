// Command oddsctl runs the Matchodds core against the live provider from the
// command line and prints JSON.
//
// Usage:
//
//	oddsctl leagues --date 2024-05-01
//	oddsctl matches --date 2024-05-01 --league 39
//	oddsctl details --fixture 1035043
//	oddsctl predict --fixture 1035043
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/matchodds/internal/config"
	"github.com/albapepper/matchodds/internal/fixture"
	"github.com/albapepper/matchodds/internal/predict"
	"github.com/albapepper/matchodds/internal/provider/apifootball"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "oddsctl",
		Short: "Matchodds command line client",
	}

	root.AddCommand(leaguesCmd())
	root.AddCommand(matchesCmd())
	root.AddCommand(detailsCmd())
	root.AddCommand(predictCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func leaguesCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "leagues",
		Short: "List leagues with fixtures on a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, agg *fixture.Aggregator, _ *predict.Engine) (any, error) {
				day, err := parseDay(date)
				if err != nil {
					return nil, err
				}
				return agg.LeaguesForDay(ctx, day), nil
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD), defaults to today")
	return cmd
}

func matchesCmd() *cobra.Command {
	var date string
	var league int
	cmd := &cobra.Command{
		Use:   "matches",
		Short: "List a day's fixtures",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, agg *fixture.Aggregator, _ *predict.Engine) (any, error) {
				day, err := parseDay(date)
				if err != nil {
					return nil, err
				}
				return agg.DayView(ctx, day, league), nil
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD), defaults to today")
	cmd.Flags().IntVar(&league, "league", 0, "league id filter")
	return cmd
}

func detailsCmd() *cobra.Command {
	var fixtureID int
	cmd := &cobra.Command{
		Use:   "details",
		Short: "Show injuries and lineup confirmation for a fixture",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, agg *fixture.Aggregator, _ *predict.Engine) (any, error) {
				return agg.Details(ctx, fixtureID), nil
			})
		},
	}
	cmd.Flags().IntVar(&fixtureID, "fixture", 0, "fixture id")
	_ = cmd.MarkFlagRequired("fixture")
	return cmd
}

func predictCmd() *cobra.Command {
	var fixtureID int
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict a fixture's outcome",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, _ *fixture.Aggregator, engine *predict.Engine) (any, error) {
				return engine.Predict(ctx, fixtureID)
			})
		},
	}
	cmd.Flags().IntVar(&fixtureID, "fixture", 0, "fixture id")
	_ = cmd.MarkFlagRequired("fixture")
	return cmd
}

// run wires config, provider client, and core services, then prints the
// result of fn as indented JSON.
func run(fn func(context.Context, *fixture.Aggregator, *predict.Engine) (any, error)) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	client := apifootball.NewClient(cfg.APIFootballKey, cfg.UpstreamRequestsPerMinute, logger)
	agg := fixture.NewAggregator(client, logger)
	engine := predict.NewEngine(client, logger)

	result, err := fn(ctx, agg, engine)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func parseDay(date string) (time.Time, error) {
	if date == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q: %w", date, err)
	}
	return day, nil
}
