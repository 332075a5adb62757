// Package scraper drives the per-game pipeline and fans out across games.
// Within a game the stages run sequentially, each memoized: API rosters →
// HTML rosters → merged rosters → events → shifts → changes → play-by-play.
// Across games the pipeline is embarrassingly parallel.
package scraper

import (
	"context"
	"fmt"

	"stormlightlabs.org/hockey/internal/core"
	"stormlightlabs.org/hockey/internal/events"
	"stormlightlabs.org/hockey/internal/nhl"
	"stormlightlabs.org/hockey/internal/pbp"
	"stormlightlabs.org/hockey/internal/roster"
	"stormlightlabs.org/hockey/internal/shifts"
)

// Game is one game's scrape pipeline. Accessors fetch and parse on first
// use and memoize; a Game is not safe for concurrent use.
type Game struct {
	client *nhl.Client
	info   core.GameInfo

	gamecenter *nhl.GamecenterResponse

	apiRosters  []core.RosterPlayer
	htmlRosters []core.RosterPlayer
	rosters     []core.RosterPlayer
	apiEvents   []core.Event
	htmlEvents  []core.Event
	shiftList   []core.Shift
	changes     []core.Event
	playByPlay  []core.Event
}

// NewGame fetches the gamecenter feed and prepares the pipeline.
func NewGame(ctx context.Context, client *nhl.Client, gameID core.GameID) (*Game, error) {
	session, err := gameID.Session()
	if err != nil {
		return nil, err
	}

	resp, err := client.Gamecenter(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("game %d: gamecenter: %w", gameID, err)
	}

	return &Game{
		client:     client,
		gamecenter: resp,
		info: core.GameInfo{
			GameID:     gameID,
			Season:     core.Season(resp.Season),
			Session:    session,
			GameDate:   resp.GameDate,
			HomeTeam:   core.TeamCode(resp.HomeTeam.Abbrev),
			AwayTeam:   core.TeamCode(resp.AwayTeam.Abbrev),
			HomeTeamID: resp.HomeTeam.ID,
			AwayTeamID: resp.AwayTeam.ID,
			Venue:      resp.Venue.Default,
			GameState:  resp.GameState,
		},
	}, nil
}

// Info returns the game's metadata.
func (g *Game) Info() core.GameInfo { return g.info }

// APIRosters returns the roster parsed from the gamecenter feed.
func (g *Game) APIRosters() []core.RosterPlayer {
	if g.apiRosters == nil {
		g.apiRosters = roster.FromAPI(g.gamecenter, g.info)
	}
	return g.apiRosters
}

// HTMLRosters returns the roster parsed from the RO report.
func (g *Game) HTMLRosters(ctx context.Context) ([]core.RosterPlayer, error) {
	if g.htmlRosters != nil {
		return g.htmlRosters, nil
	}

	doc, err := g.client.RosterReport(ctx, g.info.GameID)
	if err != nil {
		return nil, fmt.Errorf("game %d: roster report: %w", g.info.GameID, err)
	}

	parsed, err := roster.FromHTML(doc, g.info)
	if err != nil {
		return nil, fmt.Errorf("game %d: %w", g.info.GameID, err)
	}
	g.htmlRosters = parsed
	return g.htmlRosters, nil
}

// Rosters returns the merged roster.
func (g *Game) Rosters(ctx context.Context) ([]core.RosterPlayer, error) {
	if g.rosters != nil {
		return g.rosters, nil
	}

	htmlRosters, err := g.HTMLRosters(ctx)
	if err != nil {
		return nil, err
	}
	g.rosters = roster.Merge(htmlRosters, g.APIRosters())
	return g.rosters, nil
}

// APIEvents returns the events parsed from the gamecenter feed.
func (g *Game) APIEvents() []core.Event {
	if g.apiEvents == nil {
		g.apiEvents = events.FromAPI(g.gamecenter, g.info, g.APIRosters())
	}
	return g.apiEvents
}

// HTMLEvents returns the events parsed from the PL report.
func (g *Game) HTMLEvents(ctx context.Context) ([]core.Event, error) {
	if g.htmlEvents != nil {
		return g.htmlEvents, nil
	}

	htmlRosters, err := g.HTMLRosters(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := g.client.PlayByPlayReport(ctx, g.info.GameID)
	if err != nil {
		return nil, fmt.Errorf("game %d: play-by-play report: %w", g.info.GameID, err)
	}

	parsed, err := events.FromHTML(doc, g.info, htmlRosters)
	if err != nil {
		return nil, err
	}
	g.htmlEvents = parsed
	return g.htmlEvents, nil
}

// Shifts returns the repaired shifts from the TH/TV reports.
func (g *Game) Shifts(ctx context.Context) ([]core.Shift, error) {
	if g.shiftList != nil {
		return g.shiftList, nil
	}

	htmlRosters, err := g.HTMLRosters(ctx)
	if err != nil {
		return nil, err
	}

	homeDoc, err := g.client.HomeShiftReport(ctx, g.info.GameID)
	if err != nil {
		return nil, fmt.Errorf("game %d: home shift report: %w", g.info.GameID, err)
	}
	awayDoc, err := g.client.AwayShiftReport(ctx, g.info.GameID)
	if err != nil {
		return nil, fmt.Errorf("game %d: away shift report: %w", g.info.GameID, err)
	}

	parsed, err := shifts.Parse(homeDoc, awayDoc, g.info, htmlRosters)
	if err != nil {
		return nil, err
	}
	g.shiftList = parsed
	return g.shiftList, nil
}

// Changes returns the CHANGE events derived from the shifts.
func (g *Game) Changes(ctx context.Context) ([]core.Event, error) {
	if g.changes != nil {
		return g.changes, nil
	}

	shiftList, err := g.Shifts(ctx)
	if err != nil {
		return nil, err
	}
	g.changes = shifts.Changes(shiftList, g.info)
	return g.changes, nil
}

// PlayByPlay runs the full pipeline and returns the reconciled, finalized
// stream.
func (g *Game) PlayByPlay(ctx context.Context) ([]core.Event, error) {
	if g.playByPlay != nil {
		return g.playByPlay, nil
	}

	htmlEvents, err := g.HTMLEvents(ctx)
	if err != nil {
		return nil, err
	}
	changes, err := g.Changes(ctx)
	if err != nil {
		return nil, err
	}
	rosters, err := g.Rosters(ctx)
	if err != nil {
		return nil, err
	}

	combined := pbp.Combine(htmlEvents, g.APIEvents(), changes, g.info)
	g.playByPlay = pbp.Finalize(combined, rosters, g.info)
	return g.playByPlay, nil
}
