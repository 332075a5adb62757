package stats

import (
	"strconv"
	"strings"

	"stormlightlabs.org/hockey/internal/core"
)

// side is one team's perspective on an event: its identity, skater counts,
// and on-ice groups, with the opposing side attached.
type side struct {
	team    core.TeamCode
	oppTeam core.TeamCode
	isEvent bool // the event team's side

	skaters    int
	oppSkaters int
	goalieOut  bool
	oppGoalieOut bool

	score    int
	oppScore int

	forwards, forwardsEHID, forwardsAPIID []string
	defense, defenseEHID, defenseAPIID    []string
	goalie, goalieEHID, goalieAPIID       []string

	oppForwards, oppForwardsEHID, oppForwardsAPIID []string
	oppDefense, oppDefenseEHID, oppDefenseAPIID    []string
	oppGoalie, oppGoalieEHID, oppGoalieAPIID       []string
}

// sides returns the home and away perspectives for an event.
func sides(e *core.Event) [2]side {
	home := side{
		team:       e.HomeTeam,
		oppTeam:    e.AwayTeam,
		isEvent:    e.EventTeam == e.HomeTeam,
		skaters:    e.HomeSkaters,
		oppSkaters: e.AwaySkaters,
		goalieOut:  len(e.HomeGoalie) == 0,
		oppGoalieOut: len(e.AwayGoalie) == 0,
		score:      e.HomeScore,
		oppScore:   e.AwayScore,

		forwards: e.HomeForwards, forwardsEHID: e.HomeForwardsEHID, forwardsAPIID: e.HomeForwardsAPIID,
		defense: e.HomeDefense, defenseEHID: e.HomeDefenseEHID, defenseAPIID: e.HomeDefenseAPIID,
		goalie: e.HomeGoalie, goalieEHID: e.HomeGoalieEHID, goalieAPIID: e.HomeGoalieAPIID,

		oppForwards: e.AwayForwards, oppForwardsEHID: e.AwayForwardsEHID, oppForwardsAPIID: e.AwayForwardsAPIID,
		oppDefense: e.AwayDefense, oppDefenseEHID: e.AwayDefenseEHID, oppDefenseAPIID: e.AwayDefenseAPIID,
		oppGoalie: e.AwayGoalie, oppGoalieEHID: e.AwayGoalieEHID, oppGoalieAPIID: e.AwayGoalieAPIID,
	}

	away := side{
		team:       e.AwayTeam,
		oppTeam:    e.HomeTeam,
		isEvent:    e.EventTeam == e.AwayTeam,
		skaters:    e.AwaySkaters,
		oppSkaters: e.HomeSkaters,
		goalieOut:  len(e.AwayGoalie) == 0,
		oppGoalieOut: len(e.HomeGoalie) == 0,
		score:      e.AwayScore,
		oppScore:   e.HomeScore,

		forwards: e.AwayForwards, forwardsEHID: e.AwayForwardsEHID, forwardsAPIID: e.AwayForwardsAPIID,
		defense: e.AwayDefense, defenseEHID: e.AwayDefenseEHID, defenseAPIID: e.AwayDefenseAPIID,
		goalie: e.AwayGoalie, goalieEHID: e.AwayGoalieEHID, goalieAPIID: e.AwayGoalieAPIID,

		oppForwards: e.HomeForwards, oppForwardsEHID: e.HomeForwardsEHID, oppForwardsAPIID: e.HomeForwardsAPIID,
		oppDefense: e.HomeDefense, oppDefenseEHID: e.HomeDefenseEHID, oppDefenseAPIID: e.HomeDefenseAPIID,
		oppGoalie: e.HomeGoalie, oppGoalieEHID: e.HomeGoalieEHID, oppGoalieAPIID: e.HomeGoalieAPIID,
	}

	return [2]side{home, away}
}

// strengthState renders the side's strength state, honoring the special
// states already stamped on the event (ILLEGAL, 1v0).
func (s side) strengthState(e *core.Event) string {
	if e.StrengthState == "ILLEGAL" || e.StrengthState == "1v0" {
		return e.StrengthState
	}

	own := strconv.Itoa(s.skaters)
	if s.goalieOut {
		own = "E"
	}
	opp := strconv.Itoa(s.oppSkaters)
	if s.oppGoalieOut {
		opp = "E"
	}
	return own + "v" + opp
}

func (s side) scoreState() string {
	return strconv.Itoa(s.score) + "v" + strconv.Itoa(s.oppScore)
}

// baseKey builds the level portion of the grouping key.
func baseKey(e *core.Event, opts Options) Key {
	k := Key{
		Season:  e.Season,
		Session: e.Session,
	}

	switch opts.Level {
	case LevelPeriod:
		k.GameID = e.GameID
		k.GameDate = e.GameDate
		k.Period = e.Period
	case LevelGame:
		k.GameID = e.GameID
		k.GameDate = e.GameDate
	case LevelSeason:
		k.Session = ""
	}

	return k
}

// sideKey extends the base key with one side's identity and splits.
func sideKey(e *core.Event, s side, opts Options) Key {
	k := baseKey(e, opts)
	k.Team = s.team
	k.OppTeam = s.oppTeam

	if opts.StrengthState {
		k.StrengthState = s.strengthState(e)
	}
	if opts.Score {
		k.ScoreState = s.scoreState()
	}
	if opts.Teammates {
		k.Forwards = strings.Join(s.forwards, ", ")
		k.ForwardsEHID = strings.Join(s.forwardsEHID, ", ")
		k.ForwardsAPIID = strings.Join(s.forwardsAPIID, ", ")
		k.Defense = strings.Join(s.defense, ", ")
		k.DefenseEHID = strings.Join(s.defenseEHID, ", ")
		k.DefenseAPIID = strings.Join(s.defenseAPIID, ", ")
		k.OwnGoalie = joinOrEmptyNet(s.goalie)
		k.OwnGoalieEHID = joinOrEmptyNet(s.goalieEHID)
		k.OwnGoalieAPIID = joinOrEmptyNet(s.goalieAPIID)
	}
	if opts.Opposition {
		k.OppForwards = strings.Join(s.oppForwards, ", ")
		k.OppForwardsEHID = strings.Join(s.oppForwardsEHID, ", ")
		k.OppForwardsAPIID = strings.Join(s.oppForwardsAPIID, ", ")
		k.OppDefense = strings.Join(s.oppDefense, ", ")
		k.OppDefenseEHID = strings.Join(s.oppDefenseEHID, ", ")
		k.OppDefenseAPIID = strings.Join(s.oppDefenseAPIID, ", ")
		k.OppGoalie = joinOrEmptyNet(s.oppGoalie)
		k.OppGoalieEHID = joinOrEmptyNet(s.oppGoalieEHID)
		k.OppGoalieAPIID = joinOrEmptyNet(s.oppGoalieAPIID)
	}

	return k
}

// joinOrEmptyNet renders a goalie group, defaulting to the empty-net
// sentinel when no goalie is on the ice.
func joinOrEmptyNet(goalies []string) string {
	if len(goalies) == 0 {
		return core.SentinelEmptyNet
	}
	return strings.Join(goalies, ", ")
}
