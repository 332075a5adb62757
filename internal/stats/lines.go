package stats

import (
	"strings"

	"stormlightlabs.org/hockey/internal/core"
)

// LinePosition selects which unit the lines view groups by.
type LinePosition string

// Line positions: forward trios or defense pairs.
const (
	LineForwards LinePosition = "f"
	LineDefense  LinePosition = "d"
)

// Lines aggregates on-ice counts grouped by the forward trio (or defense
// pair) on the ice, for both sides of every event.
func Lines(events []core.Event, position LinePosition, opts Options) []LineStats {
	acc := make(map[Key]*OnIceCounters)

	for i := range events {
		e := &events[i]

		for _, s := range sides(e) {
			var unit, unitEHID, unitAPIID []string
			if position == LineDefense {
				unit, unitEHID, unitAPIID = s.defense, s.defenseEHID, s.defenseAPIID
			} else {
				unit, unitEHID, unitAPIID = s.forwards, s.forwardsEHID, s.forwardsAPIID
			}
			if len(unit) == 0 {
				continue
			}

			k := sideKey(e, s, opts)
			k.Player = strings.Join(unit, ", ")
			k.EHID = core.EHID(strings.Join(unitEHID, ", "))
			k.APIID = strings.Join(unitAPIID, ", ")
			k.Position = strings.ToUpper(string(position))

			counters, ok := acc[k]
			if !ok {
				counters = &OnIceCounters{}
				acc[k] = counters
			}
			accumulateSide(counters, e, s)
		}
	}

	out := make([]LineStats, 0, len(acc))
	for k, counters := range acc {
		out = append(out, LineStats{Key: k, OnIceCounters: *counters})
	}
	sortByKey(out, func(s LineStats) Key { return s.Key })
	return out
}

// Team aggregates on-ice counts per team with no player keys.
func Team(events []core.Event, opts Options) []TeamStats {
	acc := make(map[Key]*OnIceCounters)

	for i := range events {
		e := &events[i]

		for _, s := range sides(e) {
			k := sideKey(e, s, opts)

			counters, ok := acc[k]
			if !ok {
				counters = &OnIceCounters{}
				acc[k] = counters
			}
			accumulateSide(counters, e, s)
		}
	}

	out := make([]TeamStats, 0, len(acc))
	for k, counters := range acc {
		out = append(out, TeamStats{Key: k, OnIceCounters: *counters})
	}
	sortByKey(out, func(s TeamStats) Key { return s.Key })
	return out
}
