package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"stormlightlabs.org/hockey/internal/core"
	"stormlightlabs.org/hockey/internal/nhl"
)

const gamecenterBody = `{
	"id": 2023020001,
	"season": 20232024,
	"gameType": 2,
	"gameDate": "2023-10-10",
	"gameState": "OFF",
	"venue": {"default": "Bridgestone Arena"},
	"homeTeam": {"id": 18, "abbrev": "NSH"},
	"awayTeam": {"id": 14, "abbrev": "TBL"},
	"plays": [
		{"sortOrder": 1, "typeDescKey": "period-start", "typeCode": 520,
		 "periodDescriptor": {"number": 1}, "timeInPeriod": "0:00"},
		{"sortOrder": 2, "typeDescKey": "faceoff", "typeCode": 502,
		 "periodDescriptor": {"number": 1}, "timeInPeriod": "0:00",
		 "details": {"eventOwnerTeamId": 18, "zoneCode": "N", "xCoord": 0, "yCoord": 0,
			"winningPlayerId": 8476887, "losingPlayerId": 8476453}},
		{"sortOrder": 10, "typeDescKey": "goal", "typeCode": 505,
		 "periodDescriptor": {"number": 1}, "timeInPeriod": "5:00",
		 "details": {"eventOwnerTeamId": 18, "zoneCode": "O", "xCoord": 80, "yCoord": 1,
			"scoringPlayerId": 8476887, "goalieInNetId": 8476883, "shotType": "wrist"}},
		{"sortOrder": 20, "typeDescKey": "period-end", "typeCode": 521,
		 "periodDescriptor": {"number": 1}, "timeInPeriod": "20:00"}
	],
	"rosterSpots": [
		{"teamId": 18, "playerId": 8476887, "firstName": {"default": "Filip"}, "lastName": {"default": "Forsberg"}, "sweaterNumber": 9, "positionCode": "L"},
		{"teamId": 18, "playerId": 8474600, "firstName": {"default": "Roman"}, "lastName": {"default": "Josi"}, "sweaterNumber": 59, "positionCode": "D"},
		{"teamId": 18, "playerId": 8477424, "firstName": {"default": "Juuse"}, "lastName": {"default": "Saros"}, "sweaterNumber": 74, "positionCode": "G"},
		{"teamId": 14, "playerId": 8476453, "firstName": {"default": "Nikita"}, "lastName": {"default": "Kucherov"}, "sweaterNumber": 86, "positionCode": "R"},
		{"teamId": 14, "playerId": 8475167, "firstName": {"default": "Victor"}, "lastName": {"default": "Hedman"}, "sweaterNumber": 77, "positionCode": "D"},
		{"teamId": 14, "playerId": 8476883, "firstName": {"default": "Andrei"}, "lastName": {"default": "Vasilevskiy"}, "sweaterNumber": 88, "positionCode": "G"}
	]
}`

const rosterBody = `
<html><body>
<table><tr>
<td align="center" class="teamHeading + border" width="50%">TAMPA BAY LIGHTNING</td>
<td align="center" class="teamHeading + border" width="50%">NASHVILLE PREDATORS</td>
</tr></table>
<table align="center" border="0" cellpadding="0" cellspacing="0" width="100%">
<tr><td>#</td><td>Pos</td><td>Name</td></tr>
<tr><td class="bold">77</td><td class="bold">D</td><td class="bold">VICTOR HEDMAN</td></tr>
<tr><td class="bold">86</td><td class="bold">R</td><td class="bold">NIKITA KUCHEROV</td></tr>
<tr><td class="bold">88</td><td class="bold">G</td><td class="bold">ANDREI VASILEVSKIY</td></tr>
</table>
<table align="center" border="0" cellpadding="0" cellspacing="0" width="100%">
<tr><td>#</td><td>Pos</td><td>Name</td></tr>
<tr><td class="bold">9</td><td class="bold">L</td><td class="bold">FILIP FORSBERG</td></tr>
<tr><td class="bold">59</td><td class="bold">D</td><td class="bold">ROMAN JOSI</td></tr>
<tr><td class="bold">74</td><td class="bold">G</td><td class="bold">JUUSE SAROS</td></tr>
</table>
</body></html>`

func plRow(cells ...string) string {
	var sb strings.Builder
	sb.WriteString("<tr>")
	for _, cell := range cells {
		sb.WriteString(`<td class="bborder">` + cell + "</td>")
	}
	sb.WriteString("</tr>")
	return sb.String()
}

func plBody() string {
	var sb strings.Builder
	sb.WriteString("<html><body><table>")
	sb.WriteString(plRow("#", "Per", "Str", "Time", "Event", "Description", "TBL On Ice", "NSH On Ice"))
	sb.WriteString(plRow("1", "1", "", "0:0020:00", "PSTR", "Period Start- Local time: 7:08 CDT", "", ""))
	sb.WriteString(plRow("2", "1", "EV", "0:0020:00", "FAC", "NSH WON NEU. ZONE - NSH #9 FORSBERG VS TBL #86 KUCHEROV", "", ""))
	sb.WriteString(plRow("3", "1", "EV", "5:0015:00", "GOAL", "NSH #9 FORSBERG(1), WRIST, OFF. ZONE, 15 FT.", "", ""))
	sb.WriteString(plRow("4", "1", "", "20:000:00", "PEND", "Period End- Local time: 7:42 CDT", "", ""))
	sb.WriteString("</table></body></html>")
	return sb.String()
}

func shiftBody(teamName string, players [][2]string) string {
	var sb strings.Builder
	sb.WriteString("<html><body>")
	sb.WriteString(`<table><tr><td align="center" class="teamHeading + border">` + teamName + "</td></tr></table>")
	for _, p := range players {
		sb.WriteString(`<table><tr><td class="playerHeading + border">` + p[0] + " " + p[1] + "</td></tr>")
		for _, cell := range []string{"1", "1", "0:00 / 20:00", "20:00 / 0:00", "20:00"} {
			sb.WriteString(`<tr><td class="lborder + bborder">` + cell + "</td></tr>")
		}
		sb.WriteString("</table>")
	}
	sb.WriteString("</body></html>")
	return sb.String()
}

func testServer(t *testing.T) *nhl.Client {
	t.Helper()

	homeShifts := shiftBody("NASHVILLE PREDATORS", [][2]string{
		{"9", "FORSBERG, FILIP"},
		{"59", "JOSI, ROMAN"},
		{"74", "SAROS, JUUSE"},
	})
	awayShifts := shiftBody("TAMPA BAY LIGHTNING", [][2]string{
		{"86", "KUCHEROV, NIKITA"},
		{"77", "HEDMAN, VICTOR"},
		{"88", "VASILEVSKIY, ANDREI"},
	})

	mux := http.NewServeMux()
	mux.HandleFunc("/gamecenter/2023020001/play-by-play", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(gamecenterBody))
	})
	mux.HandleFunc("/20232024/RO020001.HTM", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(rosterBody))
	})
	mux.HandleFunc("/20232024/PL020001.HTM", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(plBody()))
	})
	mux.HandleFunc("/20232024/TH020001.HTM", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(homeShifts))
	})
	mux.HandleFunc("/20232024/TV020001.HTM", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(awayShifts))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return nhl.NewClient(nhl.ClientConfig{
		APIBaseURL:  server.URL,
		HTMLBaseURL: server.URL,
		MaxRetries:  1,
		BackoffBase: time.Millisecond,
	})
}

func TestGamePipeline(t *testing.T) {
	client := testServer(t)
	ctx := context.Background()

	game, err := NewGame(ctx, client, 2023020001)
	if err != nil {
		t.Fatal(err)
	}

	events, err := game.PlayByPlay(ctx)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("stream opens with the period start", func(t *testing.T) {
		if len(events) == 0 {
			t.Fatal("expected events")
		}
		first := events[0]
		if first.Event != "PSTR" && first.Event != "FAC" {
			t.Errorf("expected PSTR or FAC first, got %s", first.Event)
		}
		if first.Period != 1 || first.PeriodSeconds != 0 {
			t.Errorf("expected period 1 at 0 seconds, got %d/%d", first.Period, first.PeriodSeconds)
		}
	})

	t.Run("game seconds invariant", func(t *testing.T) {
		for _, e := range events {
			want := core.GameSeconds(e.Session, e.Period, e.PeriodSeconds)
			if e.GameSeconds != want {
				t.Errorf("event %s: game seconds %d, want %d", e.Event, e.GameSeconds, want)
			}
		}
	})

	t.Run("stream stays sorted", func(t *testing.T) {
		for i := 1; i < len(events); i++ {
			a, b := events[i-1], events[i]
			if a.Period > b.Period {
				t.Fatal("periods out of order")
			}
			if a.Period == b.Period && a.PeriodSeconds > b.PeriodSeconds {
				t.Fatal("seconds out of order")
			}
			if a.Period == b.Period && a.PeriodSeconds == b.PeriodSeconds && a.SortValue > b.SortValue {
				t.Fatal("sort values out of order")
			}
		}
	})

	t.Run("goal reconciled and enriched", func(t *testing.T) {
		var goal *core.Event
		for i := range events {
			if events[i].Event == "GOAL" {
				goal = &events[i]
			}
		}
		if goal == nil {
			t.Fatal("expected the goal in the stream")
		}

		if goal.Player1.EHID != "FILIP.FORSBERG" {
			t.Errorf("unexpected scorer %s", goal.Player1.EHID)
		}
		if goal.Player1.APIID != "8476887" {
			t.Errorf("expected the api id merged in, got %q", goal.Player1.APIID)
		}
		if goal.CoordsX == nil || *goal.CoordsX != 80 {
			t.Errorf("expected merged coords, got %v", goal.CoordsX)
		}
		if goal.HomeScore != 1 || goal.AwayScore != 0 {
			t.Errorf("expected 1-0, got %d-%d", goal.HomeScore, goal.AwayScore)
		}
		if len(goal.HomeGoalie) != 1 || len(goal.AwayGoalie) != 1 {
			t.Error("expected both goalies on ice")
		}
	})

	t.Run("on-ice players have covering shifts", func(t *testing.T) {
		shiftList, err := game.Shifts(ctx)
		if err != nil {
			t.Fatal(err)
		}

		covers := func(ehID string, gameSeconds int) bool {
			for _, s := range shiftList {
				start := (s.Period-1)*1200 + s.StartSeconds
				end := (s.Period-1)*1200 + s.EndSeconds
				if string(s.EHID) == ehID && start <= gameSeconds && gameSeconds <= end {
					return true
				}
			}
			return false
		}

		for _, e := range events {
			for _, ehID := range append(append([]string{}, e.HomeOnEHID...), e.AwayOnEHID...) {
				if !covers(ehID, e.GameSeconds) {
					t.Errorf("event %s at %d: %s has no covering shift", e.Event, e.GameSeconds, ehID)
				}
			}
		}
	})

	t.Run("change balance per period and team", func(t *testing.T) {
		changes, err := game.Changes(ctx)
		if err != nil {
			t.Fatal(err)
		}

		type key struct {
			period int
			team   core.TeamCode
		}
		balance := make(map[key]int)
		for _, c := range changes {
			balance[key{c.Period, c.EventTeam}] += c.ChangeOnCount - c.ChangeOffCount
		}
		for k, v := range balance {
			if v != 0 {
				t.Errorf("period %d team %s: balance %d", k.period, k.team, v)
			}
		}
	})

	t.Run("every html event survives reconciliation", func(t *testing.T) {
		htmlEvents, err := game.HTMLEvents(ctx)
		if err != nil {
			t.Fatal(err)
		}

		for _, h := range htmlEvents {
			found := false
			for _, e := range events {
				if e.Event == h.Event && e.Period == h.Period &&
					e.PeriodSeconds == h.PeriodSeconds && e.Version == h.Version {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("html event %s at %d:%d lost in reconciliation", h.Event, h.Period, h.PeriodSeconds)
			}
		}
	})
}

func TestScraperBatch(t *testing.T) {
	client := testServer(t)

	s := New(client, nil, 2)
	ctx := context.Background()

	// The second game does not exist upstream; the batch continues.
	if err := s.AddGames(ctx, []core.GameID{2023020001, 2023029999}); err != nil {
		t.Fatal(err)
	}

	failed := s.Failed()
	if len(failed) != 1 {
		t.Fatalf("expected exactly one failed game, got %d", len(failed))
	}
	if _, ok := failed[2023029999]; !ok {
		t.Error("expected game 2023029999 recorded as failed")
	}

	events, err := s.PlayByPlay(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) == 0 {
		t.Error("expected events from the completed game")
	}
	for _, e := range events {
		if e.GameID != 2023020001 {
			t.Errorf("unexpected game id %d", e.GameID)
		}
	}
}
