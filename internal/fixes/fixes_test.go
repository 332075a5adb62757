package fixes

import (
	"reflect"
	"testing"

	"stormlightlabs.org/hockey/internal/core"
)

func TestAPIEvents(t *testing.T) {
	t.Run("drawn-by fill", func(t *testing.T) {
		e := core.Event{EventIdx: 213}
		APIEvents(2010021176, &e)

		if e.Player3.APIID != "8467396" {
			t.Errorf("expected player 3 api id 8467396, got %s", e.Player3.APIID)
		}
		if e.Player3.Role != core.RoleDrawnBy {
			t.Errorf("expected DRAWN BY, got %s", e.Player3.Role)
		}
	})

	t.Run("clock repair", func(t *testing.T) {
		e := core.Event{EventIdx: 599, PeriodSeconds: 1, GameSeconds: 2401}
		APIEvents(2014020356, &e)

		if e.PeriodSeconds != 970 || e.GameSeconds != 3370 {
			t.Errorf("expected 970/3370, got %d/%d", e.PeriodSeconds, e.GameSeconds)
		}
	})

	t.Run("bench reroute", func(t *testing.T) {
		e := core.Event{EventIdx: 630}
		e.Player1.APIID = "8474141"
		APIEvents(2016020625, &e)

		if e.Player1.APIID != core.SentinelBench {
			t.Errorf("expected bench sentinel, got %s", e.Player1.APIID)
		}
		if e.Player2.APIID != "8474141" {
			t.Errorf("expected original player serving, got %s", e.Player2.APIID)
		}
	})

	t.Run("unknown event is a no-op", func(t *testing.T) {
		e := core.Event{EventIdx: 9999}
		before := e
		APIEvents(2010021176, &e)
		if !reflect.DeepEqual(e, before) {
			t.Error("fix mutated an event it does not reference")
		}
	})

	t.Run("unknown game is a no-op", func(t *testing.T) {
		e := core.Event{EventIdx: 213}
		before := e
		APIEvents(1999020001, &e)
		if !reflect.DeepEqual(e, before) {
			t.Error("fix mutated an event for an unregistered game")
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		e := core.Event{EventIdx: 630}
		e.Player1.APIID = "8474141"
		APIEvents(2016020625, &e)
		once := e
		APIEvents(2016020625, &e)
		if !reflect.DeepEqual(e, once) {
			t.Error("applying the fix twice changed the event")
		}
	})
}

func TestHTMLEvents(t *testing.T) {
	t.Run("whole-game description rewrite", func(t *testing.T) {
		r := HTMLRow{
			EventIdx:    12,
			Description: "FAC - MTL #60 BELZILE VS BOS #92 NOSEK",
		}
		// The broken faceoff line in 2021020224 is missing its team and zone.
		r.Description = " - MTL #60 BELZILE VS BOS #92 NOSEK"
		HTMLEvents(2021020224, &r)

		want := "MTL WON NEU. ZONE - MTL #60 BELZILE VS BOS #92 NOSEK"
		if r.Description != want {
			t.Errorf("expected %q, got %q", want, r.Description)
		}
	})

	t.Run("clock rewrite", func(t *testing.T) {
		r := HTMLRow{EventIdx: 300, Time: "-16:0-120:00"}
		HTMLEvents(2013020083, &r)
		if r.Time != "5:000:00" {
			t.Errorf("expected 5:000:00, got %q", r.Time)
		}
	})

	t.Run("indexed fix", func(t *testing.T) {
		r := HTMLRow{EventIdx: 294}
		HTMLEvents(2011020553, &r)
		if r.Description != "FLA #21 BARCH (10 MIN)" {
			t.Errorf("unexpected description %q", r.Description)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		r := HTMLRow{EventIdx: 1, Period: 3, Time: "12:345:26"}
		HTMLEvents(2013020971, &r)
		once := r
		HTMLEvents(2013020971, &r)
		if r != once {
			t.Error("applying the fix twice changed the row")
		}
		if r.Period != 1 || r.Time != "0:0020:00" {
			t.Errorf("unexpected repair: period %d time %q", r.Period, r.Time)
		}
	})
}

func TestHTMLEventDropped(t *testing.T) {
	if !HTMLEventDropped(2022020194, 134) {
		t.Error("expected 2022020194 idx 134 to be dropped")
	}
	if !HTMLEventDropped(2022020673, 208) {
		t.Error("expected 2022020673 idx 208 to be dropped")
	}
	if HTMLEventDropped(2022020194, 135) {
		t.Error("idx 135 should not be dropped")
	}
	if HTMLEventDropped(2023020001, 134) {
		t.Error("unregistered game should not drop events")
	}
}

func TestHTMLRosters(t *testing.T) {
	p := core.RosterPlayer{GameID: 2019020665, PlayerName: "SEBASTIAN AHO", Status: core.StatusActive}
	HTMLRosters(2019020665, &p)
	if p.Status != core.StatusScratch {
		t.Errorf("expected scratch, got %s", p.Status)
	}

	q := core.RosterPlayer{GameID: 2019020665, PlayerName: "JORDAN EBERLE", Status: core.StatusActive}
	HTMLRosters(2019020665, &q)
	if q.Status != core.StatusActive {
		t.Errorf("expected active, got %s", q.Status)
	}
}

func TestRosters(t *testing.T) {
	p := core.RosterPlayer{GameID: 2015020508, TeamJersey: "ANA5"}
	Rosters(2015020508, &p)
	if p.APIID != 8473560 {
		t.Errorf("expected api id 8473560, got %d", p.APIID)
	}
}

func TestAPIRosterAdditions(t *testing.T) {
	t.Run("nathan horton", func(t *testing.T) {
		added := APIRosterAdditions(2013020971, 20132014, core.SessionRegular)
		if len(added) != 1 {
			t.Fatalf("expected 1 addition, got %d", len(added))
		}

		horton := added[0]
		if horton.PlayerName != "NATHAN HORTON" || horton.Team != "CBJ" {
			t.Errorf("unexpected player %s on %s", horton.PlayerName, horton.Team)
		}
		if horton.APIID != 8470596 {
			t.Errorf("expected api id 8470596, got %d", horton.APIID)
		}
		if horton.EHID != "NATHAN.HORTON" {
			t.Errorf("expected NATHAN.HORTON, got %s", horton.EHID)
		}
	})

	t.Run("no additions elsewhere", func(t *testing.T) {
		if added := APIRosterAdditions(2023020001, 20232024, core.SessionRegular); added != nil {
			t.Errorf("expected no additions, got %d", len(added))
		}
	})
}

func TestShifts(t *testing.T) {
	actives := map[string]core.RosterPlayer{
		"DAL29": {Team: "DAL", TeamVenue: core.VenueHome, TeamJersey: "DAL29", Jersey: 29, Position: "G", PlayerName: "JAKE OETTINGER"},
		"CHI60": {Team: "CHI", TeamVenue: core.VenueAway, TeamJersey: "CHI60", Jersey: 60, Position: "G", PlayerName: "COLLIN DELIA"},
	}

	added := Shifts(2020020860, actives)
	if len(added) != 2 {
		t.Fatalf("expected 2 resolvable synthetic shifts, got %d", len(added))
	}

	for _, s := range added {
		if s.Period != 4 {
			t.Errorf("%s: expected period 4, got %d", s.TeamJersey, s.Period)
		}
		if s.StartTime != "0:00" || s.EndTime != "4:30" {
			t.Errorf("%s: expected 0:00-4:30, got %s-%s", s.TeamJersey, s.StartTime, s.EndTime)
		}
	}

	if Shifts(2023020001, actives) != nil {
		t.Error("expected no synthetic shifts for unregistered game")
	}
}
