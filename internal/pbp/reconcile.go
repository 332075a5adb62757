package pbp

import (
	"sort"

	"stormlightlabs.org/hockey/internal/core"
)

// nonTeamTags never carry an event team and reconcile on timing alone.
var nonTeamTags = map[string]bool{
	"STOP": true, "ANTHEM": true, "PGSTR": true, "PGEND": true,
	"PSTR": true, "PEND": true, "EISTR": true, "EIEND": true,
	"GEND": true, "SOC": true, "EGT": true, "PBOX": true,
	"PRDY": true, "POFF": true, "GOFF": true,
}

// sortValues orders co-timestamped events within a tick.
var sortValues = map[string]int{
	"PGSTR": 1, "PGEND": 2,
	"ANTHEM": 3, "EGT": 3, "CHL": 3, "DELPEN": 3, "BLOCK": 3,
	"GIVE": 3, "HIT": 3, "MISS": 3, "SHOT": 3, "TAKE": 3,
	"GOAL": 5, "STOP": 6,
	"PENL": 7, "PBOX": 7, "PSTR": 7,
	"CHANGE": 8, "EISTR": 9, "EIEND": 10,
	"FAC": 12, "PEND": 13, "SOC": 14, "GEND": 15, "GOFF": 16,
}

// Combine matches each HTML event to at most one API event, merges the
// API-only fields into the match, appends the change events, and orders
// the result.
func Combine(htmlEvents, apiEvents, changes []core.Event, info core.GameInfo) []core.Event {
	merged := make([]core.Event, 0, len(htmlEvents)+len(changes))

	for _, event := range htmlEvents {
		if event.Event == "EGPID" {
			continue
		}

		matches := matchAPI(event, apiEvents)
		if len(matches) == 0 {
			merged = append(merged, event)
			continue
		}

		// Multiple matches are not expected; take the first.
		api := matches[0]

		event.EventIdxAPI = api.EventIdx
		event.CoordsX = api.CoordsX
		event.CoordsY = api.CoordsY
		event.Player1EHIDAPI = api.Player1.EHID
		event.Player1.APIID = api.Player1.APIID
		event.Player1.Role = api.Player1.Role
		event.Player2EHIDAPI = api.Player2.EHID
		event.Player2.APIID = api.Player2.APIID
		event.Player2.Role = api.Player2.Role
		event.Player3EHIDAPI = api.Player3.EHID
		event.Player3.APIID = api.Player3.APIID
		event.Player3.Role = api.Player3.Role
		event.VersionAPI = api.Version
		if event.VersionAPI == 0 {
			event.VersionAPI = 1
		}

		// The report cannot name a shot blocked by a teammate; the feed can.
		if event.Event == core.TagBlock && event.Player1.Name == core.SentinelTeammate && !api.Player1.Empty() {
			event.Player1.Name = api.Player1.Name
			event.Player1.EHID = api.Player1.EHID
			event.Player1.Position = api.Player1.Position
		}

		merged = append(merged, event)
	}

	merged = append(merged, changes...)

	for i := range merged {
		e := &merged[i]

		e.GameDate = info.GameDate
		e.HomeTeam = info.HomeTeam
		e.AwayTeam = info.AwayTeam

		if e.Version == 0 {
			e.Version = 1
		}

		// The shootout frame interleaves attempts; feed order is the only
		// reliable ordering there.
		if e.Period == 5 && e.Session == core.SessionRegular {
			e.SortValue = e.EventIdx
		} else {
			e.SortValue = sortValues[e.Event]
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		a, b := merged[i], merged[j]
		if a.Period != b.Period {
			return a.Period < b.Period
		}
		if a.PeriodSeconds != b.PeriodSeconds {
			return a.PeriodSeconds < b.PeriodSeconds
		}
		if a.SortValue != b.SortValue {
			return a.SortValue < b.SortValue
		}
		return a.Version < b.Version
	})

	return merged
}

// matchAPI finds the API events matching an HTML event under the
// per-class predicates.
func matchAPI(event core.Event, apiEvents []core.Event) []core.Event {
	var matches []core.Event

	timingMatch := func(api core.Event) bool {
		return api.Event == event.Event &&
			api.Period == event.Period &&
			api.PeriodSeconds == event.PeriodSeconds &&
			api.Version == event.Version
	}

	switch {
	case nonTeamTags[event.Event],
		event.Event == core.TagChallenge && event.EventTeam == "":
		for _, api := range apiEvents {
			if timingMatch(api) {
				matches = append(matches, api)
			}
		}

	case event.Event == core.TagChallenge:
		for _, api := range apiEvents {
			if timingMatch(api) && api.EventTeam != "" && api.EventTeam == event.EventTeam {
				matches = append(matches, api)
			}
		}

	case event.Event == core.TagPenalty:
		for _, api := range apiEvents {
			if api.Event == event.Event &&
				api.EventTeam == event.EventTeam &&
				api.Player1.EHID == event.Player1.EHID &&
				api.Player2.EHID == event.Player2.EHID &&
				api.Player3.EHID == event.Player3.EHID &&
				api.Period == event.Period &&
				api.PeriodSeconds == event.PeriodSeconds {
				matches = append(matches, api)
			}
		}

	case event.Event == core.TagBlock && event.Player1.Name == core.SentinelTeammate:
		for _, api := range apiEvents {
			if timingMatch(api) && api.EventTeam != "" && api.EventTeam == event.EventTeam {
				matches = append(matches, api)
			}
		}

	default:
		for _, api := range apiEvents {
			if timingMatch(api) &&
				api.EventTeam != "" && api.EventTeam == event.EventTeam &&
				api.Player1.EHID != "" && event.Player1.EHID != "" &&
				api.Player1.EHID == event.Player1.EHID {
				matches = append(matches, api)
			}
		}
	}

	// Faceoff descriptions occasionally misattribute the winning team;
	// fall back to timing alone.
	if event.Event == core.TagFaceoff && len(matches) == 0 {
		for _, api := range apiEvents {
			if timingMatch(api) {
				matches = append(matches, api)
			}
		}
	}

	return matches
}
