package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"stormlightlabs.org/hockey/internal/config"
	"stormlightlabs.org/hockey/internal/echo"
	"stormlightlabs.org/hockey/internal/scraper"
	"stormlightlabs.org/hockey/internal/stats"
)

// ScrapeCmd creates the scrape command
func ScrapeCmd() *cobra.Command {
	var gamesFlag string
	var configFlag string
	var levelFlag string
	var scoreFlag, teammatesFlag, oppositionFlag bool
	var linesFlag, teamsFlag bool

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape games into play-by-play and stats CSVs",
		Long: "Scrape the API and HTML report feeds for the given games, reconcile them into a " +
			"single play-by-play stream, and export the aggregate views as CSV files.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScrape(cmd, scrapeOptions{
				games:      gamesFlag,
				configPath: configFlag,
				level:      levelFlag,
				score:      scoreFlag,
				teammates:  teammatesFlag,
				opposition: oppositionFlag,
				lines:      linesFlag,
				teams:      teamsFlag,
			})
		},
	}

	cmd.Flags().StringVar(&gamesFlag, "games", "", "Comma-separated game IDs or ranges, e.g. 2023020001-2023020010")
	cmd.Flags().StringVar(&configFlag, "config", "", "Path to config file")
	cmd.Flags().StringVar(&levelFlag, "level", "game", "Aggregation level (period, game, session, season)")
	cmd.Flags().BoolVar(&scoreFlag, "score", false, "Split aggregates by score state")
	cmd.Flags().BoolVar(&teammatesFlag, "teammates", false, "Split aggregates by teammates on ice")
	cmd.Flags().BoolVar(&oppositionFlag, "opposition", false, "Split aggregates by opposing players on ice")
	cmd.Flags().BoolVar(&linesFlag, "lines", false, "Also export forward-line and defense-pair stats")
	cmd.Flags().BoolVar(&teamsFlag, "teams", false, "Also export team stats")
	cmd.MarkFlagRequired("games")

	return cmd
}

type scrapeOptions struct {
	games      string
	configPath string
	level      string
	score      bool
	teammates  bool
	opposition bool
	lines      bool
	teams      bool
}

func runScrape(cmd *cobra.Command, opts scrapeOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	gameIDs, err := parseGameIDs(opts.games)
	if err != nil {
		return err
	}

	logger := newLogger(cfg)
	client, err := newNHLClient(cfg, logger)
	if err != nil {
		return err
	}

	echo.Header("Scraping games")
	echo.Infof("Scraping %d games with %d workers...", len(gameIDs), cfg.Scraper.Workers)

	s := scraper.New(client, logger, cfg.Scraper.Workers)

	ctx := cmd.Context()
	if err := s.AddGames(ctx, gameIDs); err != nil {
		return err
	}

	for gameID, gameErr := range s.Failed() {
		echo.Warnf("Skipped game %d: %v", gameID, gameErr)
	}

	events, err := s.PlayByPlay(ctx)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return fmt.Errorf("no games scraped")
	}

	path, err := writeCSV(cfg.Output.Dir, "play_by_play.csv", &events)
	if err != nil {
		return err
	}
	echo.Successf("✓ Wrote %d play-by-play rows to %s", len(events), path)

	rosters, err := s.Rosters(ctx)
	if err != nil {
		return err
	}
	if path, err = writeCSV(cfg.Output.Dir, "rosters.csv", &rosters); err != nil {
		return err
	}
	echo.Successf("✓ Wrote %d roster rows to %s", len(rosters), path)

	shiftList, err := s.Shifts(ctx)
	if err != nil {
		return err
	}
	if path, err = writeCSV(cfg.Output.Dir, "shifts.csv", &shiftList); err != nil {
		return err
	}
	echo.Successf("✓ Wrote %d shift rows to %s", len(shiftList), path)

	aggOpts := stats.Options{
		Level:         stats.Level(opts.level),
		StrengthState: true,
		Score:         opts.score,
		Teammates:     opts.teammates,
		Opposition:    opts.opposition,
	}

	playerStats, err := s.Stats(ctx, aggOpts)
	if err != nil {
		return err
	}
	if path, err = writeCSV(cfg.Output.Dir, "stats.csv", &playerStats); err != nil {
		return err
	}
	echo.Successf("✓ Wrote %d stat rows to %s", len(playerStats), path)

	if opts.lines {
		forwardLines, err := s.Lines(ctx, stats.LineForwards, aggOpts)
		if err != nil {
			return err
		}
		if path, err = writeCSV(cfg.Output.Dir, "lines_f.csv", &forwardLines); err != nil {
			return err
		}
		echo.Successf("✓ Wrote %d forward-line rows to %s", len(forwardLines), path)

		defensePairs, err := s.Lines(ctx, stats.LineDefense, aggOpts)
		if err != nil {
			return err
		}
		if path, err = writeCSV(cfg.Output.Dir, "lines_d.csv", &defensePairs); err != nil {
			return err
		}
		echo.Successf("✓ Wrote %d defense-pair rows to %s", len(defensePairs), path)
	}

	if opts.teams {
		teamStats, err := s.TeamStats(ctx, aggOpts)
		if err != nil {
			return err
		}
		if path, err = writeCSV(cfg.Output.Dir, "team_stats.csv", &teamStats); err != nil {
			return err
		}
		echo.Successf("✓ Wrote %d team-stat rows to %s", len(teamStats), path)
	}

	return nil
}
