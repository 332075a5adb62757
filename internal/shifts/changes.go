package shifts

import (
	"sort"
	"strings"

	"stormlightlabs.org/hockey/internal/core"
)

var forwardPositions = map[string]bool{"L": true, "C": true, "R": true}

// Changes derives CHANGE events from shifts: for each (period, team,
// second) the players going on and coming off, split by position. On- and
// off-changes at the same second merge into one event; home changes sort
// before away within a tick.
func Changes(shiftList []core.Shift, info core.GameInfo) []core.Event {
	periodSet := make(map[int]bool)
	for _, s := range shiftList {
		periodSet[s.Period] = true
	}
	periods := make([]int, 0, len(periodSet))
	for p := range periodSet {
		periods = append(periods, p)
	}
	sort.Ints(periods)

	var changes []core.Event

	for _, period := range periods {
		for _, venue := range []core.TeamVenue{core.VenueHome, core.VenueAway} {
			bydSecond := make(map[int]*core.Event)

			onSeconds := distinctSeconds(shiftList, period, venue, true)
			for _, second := range onSeconds {
				on := shiftsAt(shiftList, period, venue, second, true)
				if len(on) == 0 {
					continue
				}

				e := newChangeEvent(info, on[0], period)
				e.PeriodTime = on[0].StartTime
				e.PeriodSeconds = on[0].StartSeconds
				fillOn(e, on)
				bydSecond[second] = e
			}

			offSeconds := distinctSeconds(shiftList, period, venue, false)
			for _, second := range offSeconds {
				off := shiftsAt(shiftList, period, venue, second, false)
				if len(off) == 0 {
					continue
				}

				e, merged := bydSecond[second]
				if !merged {
					e = newChangeEvent(info, off[0], period)
					e.PeriodTime = off[0].EndTime
					e.PeriodSeconds = off[0].EndSeconds
					bydSecond[second] = e
				}
				fillOff(e, off)
			}

			for _, e := range bydSecond {
				changes = append(changes, *e)
			}
		}
	}

	sort.SliceStable(changes, func(i, j int) bool {
		if changes[i].Period != changes[j].Period {
			return changes[i].Period < changes[j].Period
		}
		if changes[i].PeriodSeconds != changes[j].PeriodSeconds {
			return changes[i].PeriodSeconds < changes[j].PeriodSeconds
		}
		return changes[i].IsAway < changes[j].IsAway
	})

	for i := range changes {
		e := &changes[i]

		on := strings.Join(e.ChangeOn, ", ")
		off := strings.Join(e.ChangeOff, ", ")
		switch {
		case e.ChangeOnCount > 0 && e.ChangeOffCount > 0:
			e.Description = "PLAYERS ON: " + on + " / PLAYERS OFF: " + off
		case e.ChangeOnCount > 0:
			e.Description = "PLAYERS ON: " + on
		case e.ChangeOffCount > 0:
			e.Description = "PLAYERS OFF: " + off
		}

		e.GameSeconds = core.GameSeconds(info.Session, e.Period, e.PeriodSeconds)

		if e.IsHome == 1 {
			e.EventType = "HOME CHANGE"
		} else {
			e.EventType = "AWAY CHANGE"
		}
	}

	return changes
}

func newChangeEvent(info core.GameInfo, from core.Shift, period int) *core.Event {
	return &core.Event{
		Season:    info.Season,
		Session:   info.Session,
		GameID:    info.GameID,
		Event:     core.TagChange,
		EventTeam: from.Team,
		TeamVenue: from.TeamVenue,
		IsHome:    from.IsHome,
		IsAway:    from.IsAway,
		Period:    period,
		HomeTeam:  info.HomeTeam,
		AwayTeam:  info.AwayTeam,
	}
}

// distinctSeconds collects the distinct start (or end) seconds for a
// period-team, ascending.
func distinctSeconds(shiftList []core.Shift, period int, venue core.TeamVenue, starts bool) []int {
	set := make(map[int]bool)
	for _, s := range shiftList {
		if s.Period != period || s.TeamVenue != venue {
			continue
		}
		if starts {
			set[s.StartSeconds] = true
		} else {
			set[s.EndSeconds] = true
		}
	}
	seconds := make([]int, 0, len(set))
	for s := range set {
		seconds = append(seconds, s)
	}
	sort.Ints(seconds)
	return seconds
}

// shiftsAt returns the shifts starting (or ending) at a second, sorted by
// jersey.
func shiftsAt(shiftList []core.Shift, period int, venue core.TeamVenue, second int, starts bool) []core.Shift {
	var out []core.Shift
	for _, s := range shiftList {
		if s.Period != period || s.TeamVenue != venue {
			continue
		}
		if starts && s.StartSeconds == second {
			out = append(out, s)
		}
		if !starts && s.EndSeconds == second {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Jersey < out[j].Jersey })
	return out
}

func fillOn(e *core.Event, on []core.Shift) {
	e.ChangeOnCount = len(on)
	for _, s := range on {
		e.ChangeOnJersey = append(e.ChangeOnJersey, s.TeamJersey)
		e.ChangeOn = append(e.ChangeOn, s.PlayerName)
		e.ChangeOnID = append(e.ChangeOnID, string(s.EHID))
		e.ChangeOnPositions = append(e.ChangeOnPositions, s.Position)

		switch {
		case forwardPositions[s.Position]:
			e.ChangeOnForwardsCount++
			e.ChangeOnForwards = append(e.ChangeOnForwards, s.PlayerName)
			e.ChangeOnForwardsID = append(e.ChangeOnForwardsID, string(s.EHID))
		case s.Position == "D":
			e.ChangeOnDefenseCount++
			e.ChangeOnDefense = append(e.ChangeOnDefense, s.PlayerName)
			e.ChangeOnDefenseID = append(e.ChangeOnDefenseID, string(s.EHID))
		case s.Position == "G":
			e.ChangeOnGoalieCount++
			e.ChangeOnGoalie = append(e.ChangeOnGoalie, s.PlayerName)
			e.ChangeOnGoalieID = append(e.ChangeOnGoalieID, string(s.EHID))
		}
	}
}

func fillOff(e *core.Event, off []core.Shift) {
	e.ChangeOffCount = len(off)
	for _, s := range off {
		e.ChangeOffJersey = append(e.ChangeOffJersey, s.TeamJersey)
		e.ChangeOff = append(e.ChangeOff, s.PlayerName)
		e.ChangeOffID = append(e.ChangeOffID, string(s.EHID))
		e.ChangeOffPositions = append(e.ChangeOffPositions, s.Position)

		switch {
		case forwardPositions[s.Position]:
			e.ChangeOffForwardsCount++
			e.ChangeOffForwards = append(e.ChangeOffForwards, s.PlayerName)
			e.ChangeOffForwardsID = append(e.ChangeOffForwardsID, string(s.EHID))
		case s.Position == "D":
			e.ChangeOffDefenseCount++
			e.ChangeOffDefense = append(e.ChangeOffDefense, s.PlayerName)
			e.ChangeOffDefenseID = append(e.ChangeOffDefenseID, string(s.EHID))
		case s.Position == "G":
			e.ChangeOffGoalieCount++
			e.ChangeOffGoalie = append(e.ChangeOffGoalie, s.PlayerName)
			e.ChangeOffGoalieID = append(e.ChangeOffGoalieID, string(s.EHID))
		}
	}
}
