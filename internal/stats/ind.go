package stats

import (
	"sort"

	"stormlightlabs.org/hockey/internal/core"
)

// Individual aggregates per-player individual counts from the play-by-play
// stream.
func Individual(events []core.Event, opts Options) []IndividualStats {
	acc := make(map[Key]*IndCounters)

	bump := func(e *core.Event, p core.EventPlayer, eventSide bool, apply func(*IndCounters, float64)) {
		if p.Empty() || p.Name == core.SentinelBench || p.Name == core.SentinelReferee {
			return
		}

		pair := sides(e)
		s := pair[0]
		if (e.EventTeam == e.AwayTeam) == eventSide {
			s = pair[1]
		}

		k := sideKey(e, s, opts)
		k.Player = p.Name
		k.EHID = p.EHID
		k.APIID = p.APIID
		k.Position = p.Position

		counters, ok := acc[k]
		if !ok {
			counters = &IndCounters{}
			acc[k] = counters
		}
		apply(counters, Adjustment(b2i(s.team == e.HomeTeam), s.score-s.oppScore))
	}

	for i := range events {
		e := &events[i]

		switch e.Event {
		case core.TagGoal:
			bump(e, e.Player1, true, func(c *IndCounters, weight float64) {
				c.G++
				c.GAdj += weight
				c.ISF++
				c.ISFAdj += weight
				c.IFF++
				c.IFFAdj += weight
				c.ICF++
				c.ICFAdj += weight
				c.IxG += e.XG
				c.IxGAdj += weight * e.XG
				if e.HighDanger == 1 {
					c.IHDG++
					c.IHDSF++
					c.IHDF++
				}
			})
			bump(e, e.Player2, true, func(c *IndCounters, _ float64) {
				c.A1++
				c.A1xG += e.XG
			})
			bump(e, e.Player3, true, func(c *IndCounters, _ float64) {
				c.A2++
				c.A2xG += e.XG
			})

		case core.TagShot:
			bump(e, e.Player1, true, func(c *IndCounters, weight float64) {
				c.ISF++
				c.ISFAdj += weight
				c.IFF++
				c.IFFAdj += weight
				c.ICF++
				c.ICFAdj += weight
				c.IxG += e.XG
				c.IxGAdj += weight * e.XG
				if e.HighDanger == 1 {
					c.IHDSF++
					c.IHDF++
				}
			})

		case core.TagMiss:
			bump(e, e.Player1, true, func(c *IndCounters, weight float64) {
				c.IMSF++
				c.IFF++
				c.IFFAdj += weight
				c.ICF++
				c.ICFAdj += weight
				c.IxG += e.XG
				c.IxGAdj += weight * e.XG
				if e.HighDanger == 1 {
					c.IHDM++
					c.IHDF++
				}
			})

		case core.TagBlock:
			// The event team blocked; the shooter is on the other side.
			bump(e, e.Player1, true, func(c *IndCounters, _ float64) { c.IBS++ })
			bump(e, e.Player2, false, func(c *IndCounters, weight float64) {
				c.ISB++
				c.ICF++
				c.ICFAdj += weight
			})

		case core.TagHit:
			bump(e, e.Player1, true, func(c *IndCounters, _ float64) { c.IHF++ })
			bump(e, e.Player2, false, func(c *IndCounters, _ float64) { c.IHT++ })

		case core.TagGiveaway:
			bump(e, e.Player1, true, func(c *IndCounters, _ float64) { c.IGive++ })

		case core.TagTakeaway:
			bump(e, e.Player1, true, func(c *IndCounters, _ float64) { c.ITake++ })

		case core.TagFaceoff:
			zone := e.Zone
			bump(e, e.Player1, true, func(c *IndCounters, _ float64) {
				c.IFOW++
				switch zone {
				case core.ZoneOff:
					c.IOZFW++
				case core.ZoneNeu:
					c.INZFW++
				case core.ZoneDef:
					c.IDZFW++
				}
			})
			// The loser sees the mirrored zone.
			bump(e, e.Player2, false, func(c *IndCounters, _ float64) {
				c.IFOL++
				switch zone {
				case core.ZoneOff:
					c.IDZFL++
				case core.ZoneNeu:
					c.INZFL++
				case core.ZoneDef:
					c.IOZFL++
				}
			})

		case core.TagPenalty:
			if e.PenaltyLength == nil {
				continue
			}
			length := *e.PenaltyLength

			bump(e, e.Player1, true, func(c *IndCounters, _ float64) {
				switch length {
				case 0:
					c.IPent0++
				case 2:
					c.IPent2++
				case 4:
					c.IPent4++
				case 5:
					c.IPent5++
				case 10:
					c.IPent10++
				}
			})

			if e.Player2.Role == core.RoleDrawnBy {
				bump(e, e.Player2, false, func(c *IndCounters, _ float64) {
					switch length {
					case 0:
						c.IPend0++
					case 2:
						c.IPend2++
					case 4:
						c.IPend4++
					case 5:
						c.IPend5++
					case 10:
						c.IPend10++
					}
				})
			}
		}
	}

	out := make([]IndividualStats, 0, len(acc))
	for k, counters := range acc {
		out = append(out, IndividualStats{Key: k, IndCounters: *counters})
	}
	sortByKey(out, func(s IndividualStats) Key { return s.Key })
	return out
}

// sortByKey orders aggregate rows deterministically.
func sortByKey[T any](rows []T, key func(T) Key) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := key(rows[i]), key(rows[j])
		if a.GameID != b.GameID {
			return a.GameID < b.GameID
		}
		if a.Team != b.Team {
			return a.Team < b.Team
		}
		if a.Player != b.Player {
			return a.Player < b.Player
		}
		if a.EHID != b.EHID {
			return a.EHID < b.EHID
		}
		if a.Period != b.Period {
			return a.Period < b.Period
		}
		if a.StrengthState != b.StrengthState {
			return a.StrengthState < b.StrengthState
		}
		if a.ScoreState != b.ScoreState {
			return a.ScoreState < b.ScoreState
		}
		if a.Forwards != b.Forwards {
			return a.Forwards < b.Forwards
		}
		return a.OppForwards < b.OppForwards
	})
}
