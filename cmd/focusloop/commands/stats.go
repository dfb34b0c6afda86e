package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"focusloop/internal/config"
	"focusloop/internal/services/recorder"
)

// NewStatsCommand creates the stats command
func NewStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print today's focus stats and the current streak",
		RunE:  runStats,
	}
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	client := recorder.NewClient(cfg.API.BaseURL, cfg.API.Token, slog.Default())

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	stats, err := client.FetchDailyStats(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch daily stats: %w", err)
	}
	streak, err := client.FetchStreak(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch streak: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Sessions today:\t%d\n", stats.TodayCount)
	fmt.Fprintf(w, "Focus minutes:\t%d\n", stats.TodayMinutes)
	fmt.Fprintf(w, "Current streak:\t%d days\n", streak.CurrentStreak)
	fmt.Fprintf(w, "Daily goal:\t%.0f%%\n", streak.DailyGoalProgress*100)
	return w.Flush()
}
