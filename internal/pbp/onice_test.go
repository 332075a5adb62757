package pbp

import (
	"strconv"
	"testing"

	"stormlightlabs.org/hockey/internal/core"
)

// miniRosters builds five skaters and a goalie per side.
func miniRosters() []core.RosterPlayer {
	var rosters []core.RosterPlayer

	build := func(team core.TeamCode, venue core.TeamVenue) {
		positions := []string{"C", "L", "R", "D", "D", "G"}
		for i, pos := range positions {
			jersey := i + 1
			name := string(team) + " PLAYER " + strconv.Itoa(jersey)
			rosters = append(rosters, core.RosterPlayer{
				Team:       team,
				TeamVenue:  venue,
				TeamJersey: string(team) + strconv.Itoa(jersey),
				Jersey:     jersey,
				PlayerName: name,
				EHID:       core.EHID(name),
				APIID:      core.APIPlayerID(8470000 + jersey),
				Position:   pos,
				Status:     core.StatusActive,
			})
		}
	}

	build("NSH", core.VenueHome)
	build("TBL", core.VenueAway)
	return rosters
}

// lineupChange puts a side's full lineup on at a period start.
func lineupChange(team core.TeamCode, venue core.TeamVenue, rosters []core.RosterPlayer, period, seconds int) core.Event {
	e := core.Event{
		Session: core.SessionRegular, GameID: 2023020001,
		Event: core.TagChange, EventTeam: team, TeamVenue: venue,
		Period: period, PeriodSeconds: seconds,
		GameSeconds: core.GameSeconds(core.SessionRegular, period, seconds),
		HomeTeam:    "NSH", AwayTeam: "TBL",
	}
	if venue == core.VenueHome {
		e.IsHome = 1
	} else {
		e.IsAway = 1
	}
	for _, p := range rosters {
		if p.Team != team {
			continue
		}
		e.ChangeOnCount++
		e.ChangeOnJersey = append(e.ChangeOnJersey, p.TeamJersey)
		e.ChangeOn = append(e.ChangeOn, p.PlayerName)
		e.ChangeOnID = append(e.ChangeOnID, string(p.EHID))
		e.ChangeOnPositions = append(e.ChangeOnPositions, p.Position)
	}
	return e
}

func gameEvent(tag string, team core.TeamCode, period, seconds int) core.Event {
	return core.Event{
		Session: core.SessionRegular, GameID: 2023020001,
		Event: tag, EventTeam: team,
		Period: period, PeriodSeconds: seconds,
		GameSeconds: core.GameSeconds(core.SessionRegular, period, seconds),
		HomeTeam:    "NSH", AwayTeam: "TBL",
		Version: 1,
	}
}

func onIceInfo() core.GameInfo {
	return core.GameInfo{
		GameID: 2023020001, Session: core.SessionRegular,
		HomeTeam: "NSH", AwayTeam: "TBL",
	}
}

func TestFinalize(t *testing.T) {
	rosters := miniRosters()

	baseStream := func() []core.Event {
		fac := gameEvent(core.TagFaceoff, "NSH", 1, 0)
		fac.Zone = core.ZoneNeu

		goal := gameEvent(core.TagGoal, "NSH", 1, 300)
		goal.CoordsX = core.IntPtr(80)
		goal.CoordsY = core.IntPtr(0)
		goal.PBPDistance = core.IntPtr(9)
		goal.Zone = core.ZoneOff
		goal.Player1 = core.EventPlayer{Name: "NSH PLAYER 1", EHID: "NSH PLAYER 1"}

		return []core.Event{
			gameEvent(core.TagPeriodStart, "", 1, 0),
			lineupChange("NSH", core.VenueHome, rosters, 1, 0),
			lineupChange("TBL", core.VenueAway, rosters, 1, 0),
			fac,
			goal,
			gameEvent(core.TagPeriodEnd, "", 1, 1200),
		}
	}

	t.Run("scores accumulate", func(t *testing.T) {
		events := Finalize(baseStream(), rosters, onIceInfo())

		var goal, periodEnd *core.Event
		for i := range events {
			switch events[i].Event {
			case core.TagGoal:
				goal = &events[i]
			case core.TagPeriodEnd:
				periodEnd = &events[i]
			}
		}

		if goal.HomeScore != 1 || goal.AwayScore != 0 {
			t.Errorf("expected 1-0 at the goal, got %d-%d", goal.HomeScore, goal.AwayScore)
		}
		if goal.ScoreState != "1v0" {
			t.Errorf("expected score state 1v0 from NSH's perspective, got %s", goal.ScoreState)
		}
		if periodEnd.ScoreDiff != 1 {
			t.Errorf("expected home score diff 1 at period end, got %d", periodEnd.ScoreDiff)
		}
	})

	t.Run("on-ice and strength state", func(t *testing.T) {
		events := Finalize(baseStream(), rosters, onIceInfo())

		var goal *core.Event
		for i := range events {
			if events[i].Event == core.TagGoal {
				goal = &events[i]
			}
		}

		if goal.HomeSkaters != 5 || goal.AwaySkaters != 5 {
			t.Errorf("expected 5v5 skaters, got %d and %d", goal.HomeSkaters, goal.AwaySkaters)
		}
		if goal.StrengthState != "5v5" {
			t.Errorf("expected 5v5, got %s", goal.StrengthState)
		}
		if len(goal.HomeForwards) != 3 || len(goal.HomeDefense) != 2 || len(goal.HomeGoalie) != 1 {
			t.Errorf("unexpected home split %d/%d/%d",
				len(goal.HomeForwards), len(goal.HomeDefense), len(goal.HomeGoalie))
		}
		if goal.Danger != 0 || goal.HighDanger != 1 {
			t.Errorf("expected a high-danger goal, got danger=%d high=%d", goal.Danger, goal.HighDanger)
		}
		if goal.EventDistance == nil || *goal.EventDistance != 9 {
			t.Errorf("unexpected distance %v", goal.EventDistance)
		}
	})

	t.Run("empty net shows as E", func(t *testing.T) {
		stream := baseStream()

		// Pull the away goalie before the goal.
		pull := core.Event{
			Session: core.SessionRegular, GameID: 2023020001,
			Event: core.TagChange, EventTeam: "TBL", TeamVenue: core.VenueAway,
			Period: 1, PeriodSeconds: 200, GameSeconds: 200,
			HomeTeam: "NSH", AwayTeam: "TBL", IsAway: 1,
			ChangeOffCount:  1,
			ChangeOffJersey: []string{"TBL6"},
			ChangeOff:       []string{"TBL PLAYER 6"},
			ChangeOffID:     []string{"TBL PLAYER 6"},
		}
		stream = append(stream[:4:4], append([]core.Event{pull}, stream[4:]...)...)

		events := Finalize(stream, rosters, onIceInfo())

		var goal *core.Event
		for i := range events {
			if events[i].Event == core.TagGoal {
				goal = &events[i]
			}
		}

		if goal.StrengthState != "5vE" {
			t.Errorf("expected 5vE from NSH's perspective, got %s", goal.StrengthState)
		}
		if goal.OppStrengthState != "Ev5" {
			t.Errorf("expected Ev5 for the opponent, got %s", goal.OppStrengthState)
		}
	})

	t.Run("event lengths run to the next event", func(t *testing.T) {
		events := Finalize(baseStream(), rosters, onIceInfo())

		for i := 0; i < len(events)-1; i++ {
			want := events[i+1].GameSeconds - events[i].GameSeconds
			if events[i].EventLength != want {
				t.Errorf("event %d: length %d, want %d", i, events[i].EventLength, want)
			}
		}
		if events[len(events)-1].EventLength != 0 {
			t.Error("last event length should be 0")
		}
	})

	t.Run("event idx renumbered", func(t *testing.T) {
		events := Finalize(baseStream(), rosters, onIceInfo())
		for i, e := range events {
			if e.EventIdx != i+1 {
				t.Errorf("event %d: idx %d", i, e.EventIdx)
			}
		}
	})

	t.Run("change zone start copied from faceoff", func(t *testing.T) {
		stream := baseStream()

		fac := gameEvent(core.TagFaceoff, "NSH", 1, 600)
		fac.Zone = core.ZoneOff
		fac.CoordsX = core.IntPtr(69)
		fac.CoordsY = core.IntPtr(22)

		change := lineupChange("TBL", core.VenueAway, rosters, 1, 600)
		change.ChangeOnCount = 0
		change.ChangeOnJersey = nil
		change.ChangeOn = nil
		change.ChangeOnID = nil
		change.ChangeOnPositions = nil

		stream = append(stream, fac, change)

		events := Finalize(stream, rosters, onIceInfo())

		var midChange *core.Event
		for i := range events {
			if events[i].Event == core.TagChange && events[i].GameSeconds == 600 {
				midChange = &events[i]
			}
		}
		if midChange == nil {
			t.Fatal("expected a change at 600 seconds")
		}

		// TBL's change flips NSH's offensive-zone faceoff to defensive.
		if midChange.ZoneStart != core.ZoneDef {
			t.Errorf("expected DEF zone start, got %s", midChange.ZoneStart)
		}
		if midChange.Dzc != 1 {
			t.Error("expected the dzc indicator set")
		}
	})

	t.Run("on the fly change", func(t *testing.T) {
		stream := baseStream()
		change := lineupChange("TBL", core.VenueAway, rosters, 1, 700)
		change.ChangeOnCount = 0
		change.ChangeOnJersey = nil
		change.ChangeOnID = nil
		stream = append(stream, change)

		events := Finalize(stream, rosters, onIceInfo())
		for i := range events {
			if events[i].Event == core.TagChange && events[i].GameSeconds == 700 {
				if events[i].ZoneStart != core.ZoneOTF {
					t.Errorf("expected OTF, got %s", events[i].ZoneStart)
				}
				if events[i].Otf != 1 {
					t.Error("expected the otf indicator set")
				}
			}
		}
	})
}

func TestFinalizeShootout(t *testing.T) {
	rosters := miniRosters()

	stream := []core.Event{
		gameEvent(core.TagPeriodStart, "", 5, 0),
		gameEvent(core.TagMiss, "TBL", 5, 0),
		gameEvent(core.TagGoal, "NSH", 5, 0),
		gameEvent(core.TagMiss, "NSH", 5, 0),
		gameEvent(core.TagGoal, "TBL", 5, 0),
		gameEvent(core.TagGoal, "NSH", 5, 0), // the decisive conversion
		gameEvent(core.TagShootoutEnd, "", 5, 0),
	}
	for i := range stream {
		stream[i].EventIdx = i + 1
	}

	events := Finalize(stream, rosters, onIceInfo())

	var final *core.Event
	for i := range events {
		if events[i].Event == core.TagShootoutEnd {
			final = &events[i]
		}
	}

	if final.HomeScore != 1 || final.AwayScore != 0 {
		t.Errorf("expected the shootout to settle 1-0, got %d-%d", final.HomeScore, final.AwayScore)
	}

	// Earlier conversions contribute nothing.
	for _, e := range events[:5] {
		if e.HomeScore != 0 || e.AwayScore != 0 {
			t.Errorf("event %s: expected 0-0 before the decisive attempt, got %d-%d",
				e.Event, e.HomeScore, e.AwayScore)
		}
	}

	for _, e := range events {
		if e.StrengthState != "1v0" {
			t.Errorf("expected 1v0 in the shootout, got %s", e.StrengthState)
		}
	}
}
