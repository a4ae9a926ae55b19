package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/futurologia/internal/datasource"
	"github.com/yourusername/futurologia/internal/service"
)

var catalogJSON bool

func init() {
	leaguesCmd.Flags().BoolVar(&catalogJSON, "json", false, "Print JSON instead of a table")
	plansCmd.Flags().BoolVar(&catalogJSON, "json", false, "Print JSON instead of a table")
}

var leaguesCmd = &cobra.Command{
	Use:   "leagues",
	Short: "List the leagues and teams of the built-in catalog",
	Long: `List the leagues and teams of the built-in catalog. When analysis history
is enabled the table also shows how many analyses were stored per league.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := datasource.DefaultCatalog()
		if err != nil {
			return err
		}
		leagues := catalog.Leagues()
		if catalogJSON {
			return printJSON(leagues)
		}

		counts, err := storedAnalysisCounts()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		if counts == nil {
			fmt.Fprintln(w, "LEAGUE\tCOUNTRY\tTEAMS")
			for i := range leagues {
				fmt.Fprintf(w, "%s\t%s\t%s\n", leagues[i].Name, leagues[i].Country, strings.Join(leagues[i].TeamNames(), ", "))
			}
			return w.Flush()
		}

		fmt.Fprintln(w, "LEAGUE\tCOUNTRY\tANALYSES\tTEAMS")
		for i := range leagues {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
				leagues[i].Name, leagues[i].Country, counts[leagues[i].Name], strings.Join(leagues[i].TeamNames(), ", "))
		}
		return w.Flush()
	},
}

// storedAnalysisCounts returns nil when history is disabled
func storedAnalysisCounts() (map[string]int, error) {
	if !cfg.History.Enabled {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	app, err := buildApplication(ctx, cfg, true)
	if err != nil {
		return nil, err
	}
	defer app.Close()

	counts, err := app.service.LeagueAnalysisCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count stored analyses: %w", err)
	}
	return counts, nil
}

var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "List the subscription plans",
	RunE: func(cmd *cobra.Command, args []string) error {
		plans := service.DefaultPlans()
		if catalogJSON {
			return printJSON(plans)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "PLAN\tPRICE\tFEATURES")
		for i := range plans {
			fmt.Fprintf(w, "%s\t%s %s/%s\t%d\n",
				plans[i].Name, plans[i].Currency, plans[i].Price.StringFixed(2), plans[i].Period, len(plans[i].Features))
		}
		return w.Flush()
	},
}
