// Package fixes is the registry of per-game patches for known defects in
// the upstream feeds. Each registry is an immutable map keyed by game ID;
// values are small field-level mutations applied at the point the owning
// parser emits the record. A fix referencing an event that does not exist
// is a no-op, and applying a fix twice leaves the record unchanged.
package fixes

import "stormlightlabs.org/hockey/internal/core"

// EventFix mutates a canonical event in place.
type EventFix func(e *core.Event)

// HTMLRow is the mutable pre-parse view of a raw HTML play-by-play row
// handed to the registry before the description regexes run.
type HTMLRow struct {
	EventIdx    int
	Period      int
	Time        string
	Description string
}

// HTMLRowFix mutates a raw HTML row in place.
type HTMLRowFix func(r *HTMLRow)

// APIEvents applies registered API-event fixes to e, matching on the
// event's sortOrder index.
func APIEvents(gameID core.GameID, e *core.Event) {
	byIdx, ok := apiEventFixes[gameID]
	if !ok {
		return
	}
	fix, ok := byIdx[e.EventIdx]
	if !ok {
		return
	}
	fix(e)
}

// HTMLEvents applies registered HTML-row fixes to r. Fixes keyed to index
// -1 apply to every row of the game (whole-game time or description
// rewrites).
func HTMLEvents(gameID core.GameID, r *HTMLRow) {
	byIdx, ok := htmlEventFixes[gameID]
	if !ok {
		return
	}
	if fix, ok := byIdx[-1]; ok {
		fix(r)
	}
	if fix, ok := byIdx[r.EventIdx]; ok {
		fix(r)
	}
}

// HTMLEventDropped reports whether the row is one of the documented
// hard drops: events absent from the API feed with no player reference in
// the HTML feed.
func HTMLEventDropped(gameID core.GameID, eventIdx int) bool {
	idxs, ok := htmlEventDrops[gameID]
	if !ok {
		return false
	}
	return idxs[eventIdx]
}

// HTMLRosters applies registered HTML-roster fixes to a player row,
// matching on player name.
func HTMLRosters(gameID core.GameID, p *core.RosterPlayer) {
	byName, ok := htmlRosterFixes[gameID]
	if !ok {
		return
	}
	if fix, ok := byName[p.PlayerName]; ok {
		fix(p)
	}
}

// Rosters applies registered roster-join fixes to a merged roster row,
// matching on team+jersey.
func Rosters(gameID core.GameID, p *core.RosterPlayer) {
	byJersey, ok := rosterJoinFixes[gameID]
	if !ok {
		return
	}
	if fix, ok := byJersey[p.TeamJersey]; ok {
		fix(p)
	}
}

// setDrawnBy fills the third player slot with a drawn-by reference that the
// feed dropped.
func setDrawnBy(apiID string) EventFix {
	return func(e *core.Event) {
		e.Player3.APIID = apiID
		e.Player3.Role = core.RoleDrawnBy
	}
}

// clearPlayer3 removes a spurious third player slot.
func clearPlayer3(e *core.Event) {
	e.Player3 = core.EventPlayer{}
}

// benchPenalty reroutes a penalty charged to a player onto the bench, with
// the original player serving. Guarded so re-application is a no-op.
func benchPenalty(e *core.Event) {
	if e.Player1.APIID == core.SentinelBench {
		return
	}
	e.Player2.APIID = e.Player1.APIID
	e.Player1.Name = core.SentinelBench
	e.Player1.APIID = core.SentinelBench
	e.Player1.EHID = core.SentinelBench
}

// benchPenaltyServed is benchPenalty with the served-by role made explicit.
func benchPenaltyServed(e *core.Event) {
	if e.Player1.APIID == core.SentinelBench {
		return
	}
	e.Player2.APIID = e.Player1.APIID
	e.Player2.Role = core.RoleServedBy
	e.Player1.Name = core.SentinelBench
	e.Player1.APIID = core.SentinelBench
	e.Player1.EHID = core.SentinelBench
}

// setClock repairs a mis-stamped event time.
func setClock(periodSeconds, gameSeconds int) EventFix {
	return func(e *core.Event) {
		e.PeriodSeconds = periodSeconds
		e.GameSeconds = gameSeconds
	}
}
