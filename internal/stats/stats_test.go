package stats

import (
	"math"
	"testing"

	"stormlightlabs.org/hockey/internal/core"
)

// fixtureEvents builds a small finalized stream: a faceoff, two shots, a
// miss, a block, and a goal at 5v5 with full on-ice complements.
func fixtureEvents() []core.Event {
	homeForwards := []string{"NSH F1", "NSH F2", "NSH F3"}
	homeForwardsEHID := []string{"NSH.F1", "NSH.F2", "NSH.F3"}
	homeForwardsAPIID := []string{"1", "2", "3"}
	homeDefense := []string{"NSH D1", "NSH D2"}
	homeDefenseEHID := []string{"NSH.D1", "NSH.D2"}
	homeDefenseAPIID := []string{"4", "5"}
	homeGoalie := []string{"NSH G1"}
	homeGoalieEHID := []string{"NSH.G1"}
	homeGoalieAPIID := []string{"6"}

	awayForwards := []string{"TBL F1", "TBL F2", "TBL F3"}
	awayForwardsEHID := []string{"TBL.F1", "TBL.F2", "TBL.F3"}
	awayForwardsAPIID := []string{"11", "12", "13"}
	awayDefense := []string{"TBL D1", "TBL D2"}
	awayDefenseEHID := []string{"TBL.D1", "TBL.D2"}
	awayDefenseAPIID := []string{"14", "15"}
	awayGoalie := []string{"TBL G1"}
	awayGoalieEHID := []string{"TBL.G1"}
	awayGoalieAPIID := []string{"16"}

	base := func(tag string, team core.TeamCode, seconds, length int) core.Event {
		e := core.Event{
			Season: 20232024, Session: core.SessionRegular, GameID: 2023020001,
			GameDate: "2023-10-10", Event: tag, EventTeam: team,
			HomeTeam: "NSH", AwayTeam: "TBL",
			Period: 1, PeriodSeconds: seconds, GameSeconds: seconds,
			Version: 1, EventLength: length,
			HomeSkaters: 5, AwaySkaters: 5,
			StrengthState: "5v5",

			HomeForwards: homeForwards, HomeForwardsEHID: homeForwardsEHID, HomeForwardsAPIID: homeForwardsAPIID,
			HomeDefense: homeDefense, HomeDefenseEHID: homeDefenseEHID, HomeDefenseAPIID: homeDefenseAPIID,
			HomeGoalie: homeGoalie, HomeGoalieEHID: homeGoalieEHID, HomeGoalieAPIID: homeGoalieAPIID,
			AwayForwards: awayForwards, AwayForwardsEHID: awayForwardsEHID, AwayForwardsAPIID: awayForwardsAPIID,
			AwayDefense: awayDefense, AwayDefenseEHID: awayDefenseEHID, AwayDefenseAPIID: awayDefenseAPIID,
			AwayGoalie: awayGoalie, AwayGoalieEHID: awayGoalieEHID, AwayGoalieAPIID: awayGoalieAPIID,
		}
		if team == "NSH" {
			e.OppTeam = "TBL"
		} else if team == "TBL" {
			e.OppTeam = "NSH"
		}
		return e
	}

	fac := base(core.TagFaceoff, "NSH", 0, 60)
	fac.Zone = core.ZoneNeu
	fac.Fac = 1
	fac.Nzf = 1
	fac.Player1 = core.EventPlayer{Name: "NSH F1", EHID: "NSH.F1", APIID: "1", Position: "C", Role: core.RoleWinner}
	fac.Player2 = core.EventPlayer{Name: "TBL F1", EHID: "TBL.F1", APIID: "11", Position: "C", Role: core.RoleLoser}

	shot1 := base(core.TagShot, "NSH", 60, 120)
	shot1.Shot, shot1.Fenwick, shot1.Corsi = 1, 1, 1
	shot1.Player1 = core.EventPlayer{Name: "NSH F1", EHID: "NSH.F1", APIID: "1", Position: "C", Role: core.RoleShooter}

	shot2 := base(core.TagShot, "TBL", 180, 60)
	shot2.Shot, shot2.Fenwick, shot2.Corsi = 1, 1, 1
	shot2.Player1 = core.EventPlayer{Name: "TBL F1", EHID: "TBL.F1", APIID: "11", Position: "C", Role: core.RoleShooter}

	miss := base(core.TagMiss, "NSH", 240, 60)
	miss.Miss, miss.Fenwick, miss.Corsi = 1, 1, 1
	miss.Player1 = core.EventPlayer{Name: "NSH F2", EHID: "NSH.F2", APIID: "2", Position: "L", Role: core.RoleShooter}

	// TBL blocks an NSH attempt: the block event belongs to TBL.
	block := base(core.TagBlock, "TBL", 300, 60)
	block.Block, block.Corsi = 1, 1
	block.Player1 = core.EventPlayer{Name: "TBL D1", EHID: "TBL.D1", APIID: "14", Position: "D", Role: core.RoleBlocker}
	block.Player2 = core.EventPlayer{Name: "NSH F1", EHID: "NSH.F1", APIID: "1", Position: "C", Role: core.RoleShooter}

	goal := base(core.TagGoal, "NSH", 360, 0)
	goal.Shot, goal.Fenwick, goal.Corsi, goal.Goal = 1, 1, 1, 1
	goal.HighDanger = 1
	goal.Player1 = core.EventPlayer{Name: "NSH F1", EHID: "NSH.F1", APIID: "1", Position: "C", Role: core.RoleGoalScorer}
	goal.Player2 = core.EventPlayer{Name: "NSH F2", EHID: "NSH.F2", APIID: "2", Position: "L", Role: core.RolePrimaryAssist}
	goal.Player3 = core.EventPlayer{Name: "NSH D1", EHID: "NSH.D1", APIID: "4", Position: "D", Role: core.RoleSecondaryAssist}

	return []core.Event{fac, shot1, shot2, miss, block, goal}
}

func findOI(rows []OnIceStats, ehID core.EHID) *OnIceStats {
	for i := range rows {
		if rows[i].EHID == ehID {
			return &rows[i]
		}
	}
	return nil
}

func TestIndividual(t *testing.T) {
	rows := Individual(fixtureEvents(), DefaultOptions())

	var f1 *IndividualStats
	for i := range rows {
		if rows[i].EHID == "NSH.F1" {
			f1 = &rows[i]
		}
	}
	if f1 == nil {
		t.Fatal("expected a row for NSH.F1")
	}

	if f1.G != 1 {
		t.Errorf("expected 1 goal, got %v", f1.G)
	}
	if f1.ISF != 2 { // shot + goal
		t.Errorf("expected 2 shots, got %v", f1.ISF)
	}
	if f1.ISB != 1 {
		t.Errorf("expected 1 blocked attempt, got %v", f1.ISB)
	}
	if f1.ICF != 3 { // shot + goal + blocked attempt
		t.Errorf("expected 3 corsi, got %v", f1.ICF)
	}
	if f1.IFOW != 1 || f1.INZFW != 1 {
		t.Errorf("expected a neutral-zone faceoff win, got fow=%v nzfw=%v", f1.IFOW, f1.INZFW)
	}
	if f1.IHDG != 1 {
		t.Errorf("expected a high-danger goal, got %v", f1.IHDG)
	}

	var blocker *IndividualStats
	for i := range rows {
		if rows[i].EHID == "TBL.D1" {
			blocker = &rows[i]
		}
	}
	if blocker == nil || blocker.IBS != 1 {
		t.Error("expected TBL.D1 credited with a block")
	}

	var a1 *IndividualStats
	for i := range rows {
		if rows[i].EHID == "NSH.F2" {
			a1 = &rows[i]
		}
	}
	if a1 == nil || a1.A1 != 1 {
		t.Error("expected NSH.F2 credited with a primary assist")
	}
}

func TestOnIce(t *testing.T) {
	events := fixtureEvents()
	rows := OnIce(events, DefaultOptions())

	t.Run("corsi and fenwick identities", func(t *testing.T) {
		for _, row := range rows {
			if row.CF != row.SF+row.MSF+row.BSF {
				t.Errorf("%s: cf=%v != sf+msf+bsf=%v", row.EHID, row.CF, row.SF+row.MSF+row.BSF)
			}
			if row.FF != row.SF+row.MSF {
				t.Errorf("%s: ff=%v != sf+msf=%v", row.EHID, row.FF, row.SF+row.MSF)
			}
			if row.CA != row.SA+row.MSA+row.BSA {
				t.Errorf("%s: ca=%v != sa+msa+bsa=%v", row.EHID, row.CA, row.SA+row.MSA+row.BSA)
			}
		}
	})

	t.Run("zone faceoffs sum to faceoffs", func(t *testing.T) {
		for _, row := range rows {
			if row.OZF+row.NZF+row.DZF != row.FOW+row.FOL {
				t.Errorf("%s: zone faceoffs %v don't sum to %v",
					row.EHID, row.OZF+row.NZF+row.DZF, row.FOW+row.FOL)
			}
		}
	})

	t.Run("goals split for and against", func(t *testing.T) {
		nsh := findOI(rows, "NSH.G1")
		tbl := findOI(rows, "TBL.G1")
		if nsh == nil || tbl == nil {
			t.Fatal("expected goalie rows for both sides")
		}
		if nsh.GF != 1 || nsh.GA != 0 {
			t.Errorf("NSH goalie: gf=%v ga=%v", nsh.GF, nsh.GA)
		}
		if tbl.GF != 0 || tbl.GA != 1 {
			t.Errorf("TBL goalie: gf=%v ga=%v", tbl.GF, tbl.GA)
		}
	})

	t.Run("blocked attempt counts for the shooting side", func(t *testing.T) {
		nsh := findOI(rows, "NSH.G1")
		if nsh.BSF != 1 || nsh.BSA != 0 {
			t.Errorf("expected NSH on-ice bsf=1, got bsf=%v bsa=%v", nsh.BSF, nsh.BSA)
		}
	})

	t.Run("toi sums event lengths", func(t *testing.T) {
		totalSeconds := 0
		for _, e := range events {
			totalSeconds += e.EventLength
		}
		want := float64(totalSeconds) / 60

		nsh := findOI(rows, "NSH.G1")
		if math.Abs(nsh.TOI-want) > 1e-9 {
			t.Errorf("expected toi %v, got %v", want, nsh.TOI)
		}
	})

	t.Run("aggregate goals equal stream goals", func(t *testing.T) {
		teamRows := Team(events, DefaultOptions())

		var gfNSH float64
		for _, row := range teamRows {
			if row.Team == "NSH" {
				gfNSH += row.GF
			}
		}

		var streamGoals float64
		for _, e := range events {
			if e.Event == core.TagGoal && e.EventTeam == "NSH" {
				streamGoals++
			}
		}
		if gfNSH != streamGoals {
			t.Errorf("team gf %v != stream goals %v", gfNSH, streamGoals)
		}
	})
}

func TestPlayer(t *testing.T) {
	events := fixtureEvents()

	rows, err := Player(events, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	var f1 *PlayerStats
	for i := range rows {
		if rows[i].EHID == "NSH.F1" {
			f1 = &rows[i]
		}
	}
	if f1 == nil {
		t.Fatal("expected a joined row for NSH.F1")
	}

	if f1.G != 1 {
		t.Errorf("expected the individual goal joined in, got %v", f1.G)
	}
	if f1.TOI <= 0 {
		t.Errorf("expected positive toi, got %v", f1.TOI)
	}

	wantGP60 := 60 * f1.G / f1.TOI
	if math.Abs(f1.GP60-wantGP60) > 1e-9 {
		t.Errorf("g_p60 = %v, want %v", f1.GP60, wantGP60)
	}

	wantCFPct := f1.CF / (f1.CF + f1.CA)
	if math.Abs(f1.CFPercent-wantCFPct) > 1e-9 {
		t.Errorf("cf_percent = %v, want %v", f1.CFPercent, wantCFPct)
	}
}

func TestLines(t *testing.T) {
	events := fixtureEvents()

	t.Run("forward trio", func(t *testing.T) {
		rows := Lines(events, LineForwards, DefaultOptions())

		var nshLine *LineStats
		for i := range rows {
			if rows[i].Team == "NSH" {
				nshLine = &rows[i]
			}
		}
		if nshLine == nil {
			t.Fatal("expected an NSH forward line")
		}
		if nshLine.Player != "NSH F1, NSH F2, NSH F3" {
			t.Errorf("unexpected line %q", nshLine.Player)
		}
		if nshLine.GF != 1 {
			t.Errorf("expected the line on for the goal, got %v", nshLine.GF)
		}
	})

	t.Run("defense pair", func(t *testing.T) {
		rows := Lines(events, LineDefense, DefaultOptions())
		for _, row := range rows {
			if row.Position != "D" {
				t.Errorf("expected position D, got %s", row.Position)
			}
		}
	})
}

func TestValidate(t *testing.T) {
	t.Run("valid stream passes", func(t *testing.T) {
		if err := Validate(fixtureEvents()); err != nil {
			t.Errorf("unexpected validation error: %v", err)
		}
	})

	t.Run("bad strength state surfaces the field", func(t *testing.T) {
		events := fixtureEvents()
		events[0].StrengthState = "7v5"

		err := Validate(events)
		if err == nil {
			t.Fatal("expected a validation error")
		}
	})

	t.Run("double danger flag rejected", func(t *testing.T) {
		events := fixtureEvents()
		events[5].Danger = 1 // already high danger

		if err := Validate(events); err == nil {
			t.Fatal("expected a validation error")
		}
	})
}

func TestAdjustment(t *testing.T) {
	if Adjustment(1, 0) == Adjustment(0, 0) {
		t.Error("expected venue to matter at even score")
	}
	if Adjustment(1, 10) != Adjustment(1, 3) {
		t.Error("expected score differentials beyond 3 to clamp")
	}
}
