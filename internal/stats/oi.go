package stats

import (
	"stormlightlabs.org/hockey/internal/core"
)

// accumulateSide folds one event into a side's on-ice counters. For-stats
// belong to the side that generated the event; against-stats to the side
// defending it. A BLOCK event's attempt belongs to the shooting side, which
// is the opponent of the blocking (event) team.
func accumulateSide(c *OnIceCounters, e *core.Event, s side) {
	c.TOI += float64(e.EventLength) / 60

	attackingSide := s.isEvent
	if e.Event == core.TagBlock {
		attackingSide = !s.isEvent
	}

	weight := Adjustment(b2i(s.team == e.HomeTeam), s.score-s.oppScore)

	if attackingSide {
		c.GF += float64(e.Goal)
		c.GFAdj += weight * float64(e.Goal)
		c.XGF += e.XG * float64(e.Fenwick)
		c.XGFAdj += weight * e.XG * float64(e.Fenwick)
		c.SF += float64(e.Shot)
		c.SFAdj += weight * float64(e.Shot)
		c.FF += float64(e.Fenwick)
		c.FFAdj += weight * float64(e.Fenwick)
		c.CF += float64(e.Corsi)
		c.CFAdj += weight * float64(e.Corsi)
		c.MSF += float64(e.Miss)
		c.BSF += float64(e.Block)
		if e.HighDanger == 1 {
			c.HDGF += float64(e.Goal)
			c.HDSF += float64(e.Shot)
			c.HDFF += float64(e.Fenwick)
			c.HDMSF += float64(e.Miss)
		}
	} else {
		c.GA += float64(e.Goal)
		c.GAAdj += weight * float64(e.Goal)
		c.XGA += e.XG * float64(e.Fenwick)
		c.XGAAdj += weight * e.XG * float64(e.Fenwick)
		c.SA += float64(e.Shot)
		c.SAAdj += weight * float64(e.Shot)
		c.FA += float64(e.Fenwick)
		c.FAAdj += weight * float64(e.Fenwick)
		c.CA += float64(e.Corsi)
		c.CAAdj += weight * float64(e.Corsi)
		c.MSA += float64(e.Miss)
		c.BSA += float64(e.Block)
		if e.HighDanger == 1 {
			c.HDGA += float64(e.Goal)
			c.HDSA += float64(e.Shot)
			c.HDFA += float64(e.Fenwick)
			c.HDMSA += float64(e.Miss)
		}
	}

	if s.isEvent {
		c.HF += float64(e.Hit)
		c.FOW += float64(e.Fac)
		c.OZF += float64(e.Ozf)
		c.NZF += float64(e.Nzf)
		c.DZF += float64(e.Dzf)
		c.OZFW += float64(e.Ozf)
		c.NZFW += float64(e.Nzf)
		c.DZFW += float64(e.Dzf)
		c.Pent0 += float64(e.Pen0)
		c.Pent2 += float64(e.Pen2)
		c.Pent4 += float64(e.Pen4)
		c.Pent5 += float64(e.Pen5)
		c.Pent10 += float64(e.Pen10)
	} else {
		c.HT += float64(e.Hit)
		c.FOL += float64(e.Fac)
		// Zone faceoffs mirror for the defending side.
		c.OZF += float64(e.Dzf)
		c.NZF += float64(e.Nzf)
		c.DZF += float64(e.Ozf)
		c.OZFL += float64(e.Dzf)
		c.NZFL += float64(e.Nzf)
		c.DZFL += float64(e.Ozf)
		c.Pend0 += float64(e.Pen0)
		c.Pend2 += float64(e.Pen2)
		c.Pend4 += float64(e.Pen4)
		c.Pend5 += float64(e.Pen5)
		c.Pend10 += float64(e.Pen10)
	}
}

// OnIce aggregates per-player on-ice counts. Every event charges each
// skater and goalie on the ice, from their own side's perspective.
func OnIce(events []core.Event, opts Options) []OnIceStats {
	acc := make(map[Key]*OnIceCounters)

	get := func(k Key) *OnIceCounters {
		counters, ok := acc[k]
		if !ok {
			counters = &OnIceCounters{}
			acc[k] = counters
		}
		return counters
	}

	for i := range events {
		e := &events[i]

		for _, s := range sides(e) {
			players := onIcePlayers(s)

			for _, p := range players {
				k := sideKey(e, s, opts)
				k.Player = p.name
				k.EHID = core.EHID(p.ehID)
				k.APIID = p.apiID
				k.Position = p.position

				counters := get(k)
				accumulateSide(counters, e, s)

				// Zone starts are charged to the players going on.
				if e.Event == core.TagChange && s.isEvent && containsString(e.ChangeOnID, p.ehID) {
					counters.OZS += float64(e.Ozc)
					counters.NZS += float64(e.Nzc)
					counters.DZS += float64(e.Dzc)
					counters.OTF += float64(e.Otf)
				}
			}
		}
	}

	out := make([]OnIceStats, 0, len(acc))
	for k, counters := range acc {
		out = append(out, OnIceStats{Key: k, OnIceCounters: *counters})
	}
	sortByKey(out, func(s OnIceStats) Key { return s.Key })
	return out
}

// onIcePlayer is one skater or goalie on the ice during an event.
type onIcePlayer struct {
	name, ehID, apiID, position string
}

// onIcePlayers flattens a side's on-ice groups.
func onIcePlayers(s side) []onIcePlayer {
	players := make([]onIcePlayer, 0, len(s.forwards)+len(s.defense)+len(s.goalie))
	for i := range s.forwards {
		players = append(players, onIcePlayer{s.forwards[i], s.forwardsEHID[i], s.forwardsAPIID[i], "F"})
	}
	for i := range s.defense {
		players = append(players, onIcePlayer{s.defense[i], s.defenseEHID[i], s.defenseAPIID[i], "D"})
	}
	for i := range s.goalie {
		players = append(players, onIcePlayer{s.goalie[i], s.goalieEHID[i], s.goalieAPIID[i], "G"})
	}
	return players
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func b2i(v bool) int {
	if v {
		return 1
	}
	return 0
}
