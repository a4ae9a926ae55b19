package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/futurologia/internal/service"
)

var (
	analyzeLeague string
	analyzeHome   string
	analyzeAway   string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeLeague, "league", "l", "", "League name")
	analyzeCmd.Flags().StringVar(&analyzeHome, "home", "", "Home team")
	analyzeCmd.Flags().StringVar(&analyzeAway, "away", "", "Away team")
	_ = analyzeCmd.MarkFlagRequired("league")
	_ = analyzeCmd.MarkFlagRequired("home")
	_ = analyzeCmd.MarkFlagRequired("away")
}

var analyzeCmd = &cobra.Command{
	Use:     "analyze",
	Short:   "Analyze one fixture and print the JSON result",
	Example: `  futurologia analyze --league "Premier League" --home Arsenal --away Chelsea`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		app, err := buildApplication(ctx, cfg, false)
		if err != nil {
			return err
		}
		defer app.Close()

		analysis, err := app.service.Analyze(ctx, service.AnalyzeRequest{
			League:   analyzeLeague,
			HomeTeam: analyzeHome,
			AwayTeam: analyzeAway,
		})
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}

		return printJSON(analysis)
	},
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
