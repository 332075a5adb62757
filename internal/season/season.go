// Package season maps the league-wide JSON feeds — club schedules and
// standings — to flat records. It is a thin translation layer; game-level
// scraping lives in internal/scraper.
package season

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"stormlightlabs.org/hockey/internal/core"
	"stormlightlabs.org/hockey/internal/nhl"
)

// Teams lists the franchises to sweep when building a full-league
// schedule. Clubs that did not exist in a season 404 and are skipped.
var Teams = []core.TeamCode{
	"ANA", "ARI", "ATL", "BOS", "BUF", "CAR", "CBJ", "CGY", "CHI", "COL",
	"DAL", "DET", "EDM", "FLA", "LAK", "MIN", "MTL", "NJD", "NSH", "NYI",
	"NYR", "OTT", "PHI", "PIT", "SEA", "SJS", "STL", "TBL", "TOR", "UTA",
	"VAN", "VGK", "WPG", "WSH",
}

// Schedule fetches one team's season schedule, or the whole league's when
// team is empty, deduplicated by game and sorted by date.
func Schedule(ctx context.Context, client *nhl.Client, season core.Season, team core.TeamCode) ([]core.ScheduleGame, error) {
	teams := []core.TeamCode{team}
	if team == "" {
		teams = Teams
	}

	seen := make(map[core.GameID]bool)
	var games []core.ScheduleGame

	for _, t := range teams {
		resp, err := client.ClubScheduleSeason(ctx, t, season)
		if err != nil {
			if errors.Is(err, nhl.ErrNotFound) && team == "" {
				continue
			}
			return nil, fmt.Errorf("schedule %s %d: %w", t, season, err)
		}

		for _, g := range resp.Games {
			gameID := core.GameID(g.ID)
			if seen[gameID] {
				continue
			}
			seen[gameID] = true
			games = append(games, mungeScheduleGame(g))
		}
	}

	sort.SliceStable(games, func(i, j int) bool {
		if games[i].GameDate != games[j].GameDate {
			return games[i].GameDate < games[j].GameDate
		}
		return games[i].GameID < games[j].GameID
	})

	return games, nil
}

// mungeScheduleGame converts a feed row, localizing the start time to the
// venue's timezone.
func mungeScheduleGame(g nhl.ScheduleGame) core.ScheduleGame {
	gameDate := g.GameDate
	startTime := ""

	if parsed, err := time.Parse(time.RFC3339, g.StartTimeUTC); err == nil {
		local := parsed
		if loc, err := time.LoadLocation(g.VenueTimezone); err == nil {
			local = parsed.In(loc)
		}
		gameDate = local.Format("2006-01-02")
		startTime = local.Format("15:04")
	}

	out := core.ScheduleGame{
		Season:        core.Season(g.Season),
		Session:       g.GameType,
		GameID:        core.GameID(g.ID),
		GameDate:      gameDate,
		StartTime:     startTime,
		GameState:     g.GameState,
		HomeTeam:      core.TeamCode(g.HomeTeam.Abbrev),
		HomeTeamID:    g.HomeTeam.ID,
		AwayTeam:      core.TeamCode(g.AwayTeam.Abbrev),
		AwayTeamID:    g.AwayTeam.ID,
		Venue:         g.Venue.Default,
		VenueTimezone: g.VenueTimezone,
	}

	if g.HomeTeam.Score != nil {
		out.HomeScore = *g.HomeTeam.Score
	}
	if g.AwayTeam.Score != nil {
		out.AwayScore = *g.AwayTeam.Score
	}
	if g.NeutralSite {
		out.NeutralSite = 1
	}
	return out
}

// Standings fetches the standings for a date (empty for current).
func Standings(ctx context.Context, client *nhl.Client, date string) ([]core.StandingsTeam, error) {
	resp, err := client.Standings(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("standings %q: %w", date, err)
	}

	teams := make([]core.StandingsTeam, 0, len(resp.Standings))
	for _, row := range resp.Standings {
		teams = append(teams, core.StandingsTeam{
			Season:           core.Season(row.SeasonID),
			Date:             row.Date,
			Team:             core.TeamCode(row.TeamAbbrev.Default),
			TeamName:         row.TeamName.Default,
			Conference:       row.ConferenceName,
			Division:         row.DivisionName,
			GamesPlayed:      row.GamesPlayed,
			Wins:             row.Wins,
			Losses:           row.Losses,
			OTLosses:         row.OTLosses,
			Points:           row.Points,
			PointPctg:        row.PointPctg,
			RegulationWins:   row.RegulationWins,
			GoalsFor:         row.GoalFor,
			GoalsAgainst:     row.GoalAgainst,
			GoalDifferential: row.GoalDifferential,
			StreakCode:       row.StreakCode,
			StreakCount:      row.StreakCount,
		})
	}

	sort.SliceStable(teams, func(i, j int) bool { return teams[i].Points > teams[j].Points })
	return teams, nil
}
