package cmd

import (
	"github.com/spf13/cobra"

	"stormlightlabs.org/hockey/internal/config"
	"stormlightlabs.org/hockey/internal/core"
	"stormlightlabs.org/hockey/internal/echo"
	"stormlightlabs.org/hockey/internal/season"
)

// ScheduleCmd creates the schedule command
func ScheduleCmd() *cobra.Command {
	var seasonFlag string
	var teamFlag string
	var configFlag string

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Fetch a season schedule",
		Long:  "Fetch the schedule for a season, for one team or the whole league, and export it as CSV.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFlag)
			if err != nil {
				return err
			}

			seasonCode, err := parseSeason(seasonFlag)
			if err != nil {
				return err
			}

			logger := newLogger(cfg)
			client, err := newNHLClient(cfg, logger)
			if err != nil {
				return err
			}

			games, err := season.Schedule(cmd.Context(), client, seasonCode, core.TeamCode(teamFlag))
			if err != nil {
				return err
			}

			path, err := writeCSV(cfg.Output.Dir, "schedule.csv", &games)
			if err != nil {
				return err
			}
			echo.Successf("✓ Wrote %d schedule rows to %s", len(games), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&seasonFlag, "season", "", "Season, e.g. 2023 or 20232024")
	cmd.Flags().StringVar(&teamFlag, "team", "", "3-letter team code; empty for all teams")
	cmd.Flags().StringVar(&configFlag, "config", "", "Path to config file")
	cmd.MarkFlagRequired("season")

	return cmd
}

// StandingsCmd creates the standings command
func StandingsCmd() *cobra.Command {
	var dateFlag string
	var configFlag string

	cmd := &cobra.Command{
		Use:   "standings",
		Short: "Fetch league standings",
		Long:  "Fetch the standings for a date (or the current standings) and export them as CSV.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFlag)
			if err != nil {
				return err
			}

			logger := newLogger(cfg)
			client, err := newNHLClient(cfg, logger)
			if err != nil {
				return err
			}

			teams, err := season.Standings(cmd.Context(), client, dateFlag)
			if err != nil {
				return err
			}

			path, err := writeCSV(cfg.Output.Dir, "standings.csv", &teams)
			if err != nil {
				return err
			}
			echo.Successf("✓ Wrote %d standings rows to %s", len(teams), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Standings date YYYY-MM-DD; empty for current")
	cmd.Flags().StringVar(&configFlag, "config", "", "Path to config file")

	return cmd
}
