package season

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stormlightlabs.org/hockey/internal/core"
	"stormlightlabs.org/hockey/internal/nhl"
)

const scheduleBody = `{
	"games": [
		{
			"id": 2023020001,
			"season": 20232024,
			"gameType": 2,
			"gameState": "OFF",
			"gameDate": "2023-10-10",
			"startTimeUTC": "2023-10-10T21:30:00Z",
			"venueTimezone": "America/Chicago",
			"neutralSite": false,
			"venue": {"default": "Bridgestone Arena"},
			"homeTeam": {"id": 18, "abbrev": "NSH", "score": 3},
			"awayTeam": {"id": 14, "abbrev": "TBL", "score": 2}
		}
	]
}`

const standingsBody = `{
	"standings": [
		{
			"seasonId": 20232024,
			"date": "2024-01-15",
			"teamAbbrev": {"default": "NSH"},
			"teamName": {"default": "Nashville Predators"},
			"conferenceName": "Western",
			"divisionName": "Central",
			"gamesPlayed": 45,
			"wins": 25,
			"losses": 17,
			"otLosses": 3,
			"points": 53,
			"pointPctg": 0.5889,
			"regulationWins": 20,
			"goalFor": 140,
			"goalAgainst": 135,
			"goalDifferential": 5,
			"streakCode": "W",
			"streakCount": 2
		}
	]
}`

func seasonClient(t *testing.T, handler http.Handler) *nhl.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return nhl.NewClient(nhl.ClientConfig{
		APIBaseURL:  server.URL,
		HTMLBaseURL: server.URL,
		MaxRetries:  1,
		BackoffBase: time.Millisecond,
	})
}

func TestSchedule(t *testing.T) {
	client := seasonClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/club-schedule-season/NSH/20232024" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(scheduleBody))
	}))

	games, err := Schedule(context.Background(), client, 20232024, "NSH")
	if err != nil {
		t.Fatal(err)
	}
	if len(games) != 1 {
		t.Fatalf("expected 1 game, got %d", len(games))
	}

	g := games[0]
	if g.GameID != 2023020001 {
		t.Errorf("unexpected game id %d", g.GameID)
	}
	if g.Session != 2 {
		t.Errorf("expected session 2 for a regular-season game, got %d", g.Session)
	}
	if g.HomeTeam != "NSH" || g.AwayTeam != "TBL" {
		t.Errorf("unexpected teams %s vs %s", g.HomeTeam, g.AwayTeam)
	}
	if g.HomeScore != 3 || g.AwayScore != 2 {
		t.Errorf("unexpected score %d-%d", g.HomeScore, g.AwayScore)
	}
	// 21:30 UTC is 16:30 in Nashville's timezone.
	if g.StartTime != "16:30" {
		t.Errorf("expected venue-local start 16:30, got %s", g.StartTime)
	}
	if g.GameDate != "2023-10-10" {
		t.Errorf("unexpected game date %s", g.GameDate)
	}
}

func TestStandings(t *testing.T) {
	client := seasonClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/standings/now" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(standingsBody))
	}))

	teams, err := Standings(context.Background(), client, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(teams) != 1 {
		t.Fatalf("expected 1 team, got %d", len(teams))
	}

	nsh := teams[0]
	if nsh.Team != "NSH" || nsh.Points != 53 {
		t.Errorf("unexpected standings row %+v", nsh)
	}
	if nsh.GoalDifferential != 5 {
		t.Errorf("expected goal differential 5, got %d", nsh.GoalDifferential)
	}
}

func TestTeamsListed(t *testing.T) {
	seen := make(map[core.TeamCode]bool)
	for _, team := range Teams {
		if seen[team] {
			t.Errorf("duplicate team %s", team)
		}
		seen[team] = true
		if len(team) != 3 {
			t.Errorf("team code %q is not 3 letters", team)
		}
	}
}
