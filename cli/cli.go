package main

import (
	"os"

	"github.com/spf13/cobra"
	"stormlightlabs.org/hockey/cmd"
	"stormlightlabs.org/hockey/internal/echo"
)

// RootCmd is the root command for the hockey CLI
var RootCmd = &cobra.Command{
	Use:   "hockey",
	Short: "NHL play-by-play scraping and stats toolkit",
	Long: echo.HeaderStyle().Render("Hockey") + "\n\n" +
		"Scrapes the NHL API and HTML report feeds, reconciles them into a\n" +
		"single play-by-play stream, and aggregates individual, on-ice, line,\n" +
		"and team statistics.",
}

func init() {
	RootCmd.AddCommand(cmd.ScrapeCmd())
	RootCmd.AddCommand(cmd.ScheduleCmd())
	RootCmd.AddCommand(cmd.StandingsCmd())
	RootCmd.AddCommand(cmd.CacheCmd())
}

func main() {
	if err := RootCmd.Execute(); err != nil {
		echo.Errorf("Error: %v", err)
		os.Exit(1)
	}
}
