package pbp

import (
	"sort"
	"strconv"
	"strings"

	"stormlightlabs.org/hockey/internal/core"
)

var fenwickTags = map[string]bool{core.TagShot: true, core.TagGoal: true, core.TagMiss: true}

// Shot types that legitimately come from close range despite a long
// recorded distance; the wrong-side mirror never applies to them.
var closeRangeShotTypes = map[string]bool{
	"TIP-IN": true, "WRAP-AROUND": true, "WRAP": true,
	"DEFLECTED": true, "BAT": true, "BETWEEN LEGS": true, "POKE": true,
}

// Finalize threads game state through the combined, sorted stream: scores
// (with the shootout decisive-attempt rule), on-ice rosters, strength and
// score states, shot geometry and danger classification, zone starts for
// changes, indicator columns, and event lengths.
func Finalize(combined []core.Event, rosters []core.RosterPlayer, info core.GameInfo) []core.Event {
	events := make([]core.Event, len(combined))
	copy(events, combined)

	for i := range events {
		switch events[i].EventTeam {
		case info.HomeTeam:
			events[i].OppTeam = info.AwayTeam
		case info.AwayTeam:
			events[i].OppTeam = info.HomeTeam
		}
	}

	applyScores(events, info)
	applyOnIce(events, rosters)

	maxGameSeconds := 0
	for _, e := range events {
		if e.GameSeconds > maxGameSeconds {
			maxGameSeconds = e.GameSeconds
		}
	}

	for i := range events {
		e := &events[i]

		e.IsHome = b2i(e.EventTeam == e.HomeTeam)
		e.IsAway = b2i(e.EventTeam == e.AwayTeam)

		applyGeometry(e)
		applyStrength(e)

		if e.Event == core.TagChange {
			applyZoneStart(e, events, maxGameSeconds)
		}

		applyIndicators(e)
	}

	for i := range events {
		if i+1 < len(events) {
			events[i].EventLength = events[i+1].GameSeconds - events[i].GameSeconds
		} else {
			events[i].EventLength = 0
		}
		events[i].EventIdx = i + 1
	}

	return events
}

// applyScores accumulates the score through the stream. In a
// regular-season shootout only the final decisive attempt counts, and only
// for the side with more conversions.
func applyScores(events []core.Event, info core.GameInfo) {
	lastShootoutAttempt := -1
	homeShootoutGoals, awayShootoutGoals := 0, 0
	for i, e := range events {
		if info.Session == core.SessionRegular && e.Period == 5 {
			if fenwickTags[e.Event] {
				lastShootoutAttempt = i
			}
			if e.Event == core.TagGoal {
				if e.EventTeam == info.HomeTeam {
					homeShootoutGoals++
				} else if e.EventTeam == info.AwayTeam {
					awayShootoutGoals++
				}
			}
		}
	}

	homeScore, awayScore := 0, 0

	for i := range events {
		e := &events[i]

		if e.Event == core.TagGoal {
			shootout := info.Session == core.SessionRegular && e.Period == 5

			switch {
			case !shootout:
				if e.EventTeam == info.HomeTeam {
					homeScore++
				} else if e.EventTeam == info.AwayTeam {
					awayScore++
				}
			case i == lastShootoutAttempt && e.EventTeam == info.HomeTeam && homeShootoutGoals > awayShootoutGoals:
				homeScore++
			case i == lastShootoutAttempt && e.EventTeam == info.AwayTeam && awayShootoutGoals > homeShootoutGoals:
				awayScore++
			}
		}

		e.HomeScore = homeScore
		e.AwayScore = awayScore
		e.HomeScoreDiff = homeScore - awayScore
		e.AwayScoreDiff = awayScore - homeScore
		e.ScoreState = strconv.Itoa(homeScore) + "v" + strconv.Itoa(awayScore)
		e.ScoreDiff = homeScore - awayScore
	}
}

// applyOnIce replays the change stream to reconstruct each event's on-ice
// skaters and goalies, split by venue and position.
func applyOnIce(events []core.Event, rosters []core.RosterPlayer) {
	actives := make([]core.RosterPlayer, 0, len(rosters))
	for _, p := range rosters {
		if p.Status == core.StatusActive {
			actives = append(actives, p)
		}
	}
	sort.SliceStable(actives, func(i, j int) bool {
		if actives[i].TeamVenue != actives[j].TeamVenue {
			return actives[i].TeamVenue < actives[j].TeamVenue
		}
		return actives[i].Jersey < actives[j].Jersey
	})

	counters := make(map[string]int, len(actives))

	for i := range events {
		e := &events[i]

		if e.Event == core.TagChange {
			for _, jersey := range e.ChangeOnJersey {
				counters[jersey]++
			}
			for _, jersey := range e.ChangeOffJersey {
				counters[jersey]--
			}
		}

		for _, p := range actives {
			if counters[p.TeamJersey] <= 0 {
				continue
			}

			apiID := strconv.Itoa(int(p.APIID))
			isForward := p.Position == "L" || p.Position == "C" || p.Position == "R"

			if p.TeamVenue == core.VenueHome {
				switch {
				case isForward:
					e.HomeForwards = append(e.HomeForwards, p.PlayerName)
					e.HomeForwardsEHID = append(e.HomeForwardsEHID, string(p.EHID))
					e.HomeForwardsAPIID = append(e.HomeForwardsAPIID, apiID)
					e.HomeForwardsPositions = append(e.HomeForwardsPositions, p.Position)
				case p.Position == "D":
					e.HomeDefense = append(e.HomeDefense, p.PlayerName)
					e.HomeDefenseEHID = append(e.HomeDefenseEHID, string(p.EHID))
					e.HomeDefenseAPIID = append(e.HomeDefenseAPIID, apiID)
					e.HomeDefensePositions = append(e.HomeDefensePositions, p.Position)
				case p.Position == "G":
					e.HomeGoalie = append(e.HomeGoalie, p.PlayerName)
					e.HomeGoalieEHID = append(e.HomeGoalieEHID, string(p.EHID))
					e.HomeGoalieAPIID = append(e.HomeGoalieAPIID, apiID)
				}
			} else {
				switch {
				case isForward:
					e.AwayForwards = append(e.AwayForwards, p.PlayerName)
					e.AwayForwardsEHID = append(e.AwayForwardsEHID, string(p.EHID))
					e.AwayForwardsAPIID = append(e.AwayForwardsAPIID, apiID)
					e.AwayForwardsPositions = append(e.AwayForwardsPositions, p.Position)
				case p.Position == "D":
					e.AwayDefense = append(e.AwayDefense, p.PlayerName)
					e.AwayDefenseEHID = append(e.AwayDefenseEHID, string(p.EHID))
					e.AwayDefenseAPIID = append(e.AwayDefenseAPIID, apiID)
					e.AwayDefensePositions = append(e.AwayDefensePositions, p.Position)
				case p.Position == "G":
					e.AwayGoalie = append(e.AwayGoalie, p.PlayerName)
					e.AwayGoalieEHID = append(e.AwayGoalieEHID, string(p.EHID))
					e.AwayGoalieAPIID = append(e.AwayGoalieAPIID, apiID)
				}
			}
		}

		e.HomeOn = append(append([]string{}, e.HomeForwards...), e.HomeDefense...)
		e.HomeOnEHID = append(append([]string{}, e.HomeForwardsEHID...), e.HomeDefenseEHID...)
		e.HomeOnAPIID = append(append([]string{}, e.HomeForwardsAPIID...), e.HomeDefenseAPIID...)
		e.AwayOn = append(append([]string{}, e.AwayForwards...), e.AwayDefense...)
		e.AwayOnEHID = append(append([]string{}, e.AwayForwardsEHID...), e.AwayDefenseEHID...)
		e.AwayOnAPIID = append(append([]string{}, e.AwayForwardsAPIID...), e.AwayDefenseAPIID...)

		e.HomeSkaters = len(e.HomeOnEHID)
		e.AwaySkaters = len(e.AwayOnEHID)
	}
}

// applyGeometry computes shot distance and angle, repairs the wrong-side
// coordinate artifact and the mislabeled defensive zone, and classifies
// danger.
func applyGeometry(e *core.Event) {
	isFenwick := fenwickTags[e.Event]

	if e.CoordsX != nil && e.CoordsY != nil {
		x := float64(*e.CoordsX)
		y := float64(*e.CoordsY)

		pbpDistance := 0
		if e.PBPDistance != nil {
			pbpDistance = *e.PBPDistance
		}

		shotType := e.ShotType
		if shotType == "" {
			shotType = "WRIST"
		}

		// A fenwick event recorded >89ft from a non-deflection is on the
		// wrong side of the ice unless the zone confirms the distance.
		mirror := isFenwick &&
			pbpDistance > 89 &&
			!closeRangeShotTypes[shotType] &&
			!(pbpDistance > 89 && e.Zone == core.ZoneOff)

		distance, angle := shotGeometry(x, y, mirror)
		e.EventDistance = core.FloatPtr(distance)
		e.EventAngle = core.FloatPtr(angle)
	}

	eventDistance := 0.0
	if e.EventDistance != nil {
		eventDistance = *e.EventDistance
	}

	if isFenwick && e.Zone == core.ZoneDef && eventDistance <= 64 {
		e.Zone = core.ZoneOff
	}

	if isFenwick {
		if e.Zone == core.ZoneOff && e.CoordsX != nil && e.CoordsY != nil {
			e.Danger, e.HighDanger = classifyDanger(float64(*e.CoordsX), float64(*e.CoordsY))
		} else {
			e.Danger, e.HighDanger = 0, 0
		}
	}
}

// applyStrength derives the strength state and the perspective fields for
// the event team.
func applyStrength(e *core.Event) {
	homeOn := strconv.Itoa(e.HomeSkaters)
	if len(e.HomeGoalie) == 0 {
		homeOn = "E"
	}
	awayOn := strconv.Itoa(e.AwaySkaters)
	if len(e.AwayGoalie) == 0 {
		awayOn = "E"
	}

	// CHANGE events, and events with no event team, take the home
	// perspective.
	e.StrengthState = homeOn + "v" + awayOn

	perspective := e.EventTeam
	if e.Event == core.TagChange {
		perspective = e.HomeTeam
	}

	switch perspective {
	case e.HomeTeam:
		e.StrengthState = homeOn + "v" + awayOn
		e.ScoreState = strconv.Itoa(e.HomeScore) + "v" + strconv.Itoa(e.AwayScore)
		e.ScoreDiff = e.HomeScoreDiff
		e.EventTeamSkaters = e.HomeSkaters
		e.Teammates, e.TeammatesEHID, e.TeammatesAPIID = e.HomeOn, e.HomeOnEHID, e.HomeOnAPIID
		e.Forwards, e.ForwardsEHID, e.ForwardsAPIID = e.HomeForwards, e.HomeForwardsEHID, e.HomeForwardsAPIID
		e.Defense, e.DefenseEHID, e.DefenseAPIID = e.HomeDefense, e.HomeDefenseEHID, e.HomeDefenseAPIID
		e.OwnGoalie, e.OwnGoalieEHID, e.OwnGoalieAPIID = e.HomeGoalie, e.HomeGoalieEHID, e.HomeGoalieAPIID
		e.OppStrengthState = awayOn + "v" + homeOn
		e.OppScoreState = strconv.Itoa(e.AwayScore) + "v" + strconv.Itoa(e.HomeScore)
		e.OppScoreDiff = e.AwayScoreDiff
		e.OppTeamOn, e.OppTeamOnEHID, e.OppTeamOnAPIID = e.AwayOn, e.AwayOnEHID, e.AwayOnAPIID
		e.OppForwards, e.OppForwardsEHID, e.OppForwardsAPIID = e.AwayForwards, e.AwayForwardsEHID, e.AwayForwardsAPIID
		e.OppDefense, e.OppDefenseEHID, e.OppDefenseAPIID = e.AwayDefense, e.AwayDefenseEHID, e.AwayDefenseAPIID
		e.OppGoalieOn, e.OppGoalieOnEHID, e.OppGoalieOnAPIID = e.AwayGoalie, e.AwayGoalieEHID, e.AwayGoalieAPIID

	case e.AwayTeam:
		e.StrengthState = awayOn + "v" + homeOn
		e.ScoreState = strconv.Itoa(e.AwayScore) + "v" + strconv.Itoa(e.HomeScore)
		e.ScoreDiff = e.AwayScoreDiff
		e.EventTeamSkaters = e.AwaySkaters
		e.Teammates, e.TeammatesEHID, e.TeammatesAPIID = e.AwayOn, e.AwayOnEHID, e.AwayOnAPIID
		e.Forwards, e.ForwardsEHID, e.ForwardsAPIID = e.AwayForwards, e.AwayForwardsEHID, e.AwayForwardsAPIID
		e.Defense, e.DefenseEHID, e.DefenseAPIID = e.AwayDefense, e.AwayDefenseEHID, e.AwayDefenseAPIID
		e.OwnGoalie, e.OwnGoalieEHID, e.OwnGoalieAPIID = e.AwayGoalie, e.AwayGoalieEHID, e.AwayGoalieAPIID
		e.OppStrengthState = homeOn + "v" + awayOn
		e.OppScoreState = strconv.Itoa(e.HomeScore) + "v" + strconv.Itoa(e.AwayScore)
		e.OppScoreDiff = e.HomeScoreDiff
		e.OppTeamOn, e.OppTeamOnEHID, e.OppTeamOnAPIID = e.HomeOn, e.HomeOnEHID, e.HomeOnAPIID
		e.OppForwards, e.OppForwardsEHID, e.OppForwardsAPIID = e.HomeForwards, e.HomeForwardsEHID, e.HomeForwardsAPIID
		e.OppDefense, e.OppDefenseEHID, e.OppDefenseAPIID = e.HomeDefense, e.HomeDefenseEHID, e.HomeDefenseAPIID
		e.OppGoalieOn, e.OppGoalieOnEHID, e.OppGoalieOnAPIID = e.HomeGoalie, e.HomeGoalieEHID, e.HomeGoalieAPIID
	}

	if (e.HomeSkaters > 5 && len(e.HomeGoalie) > 0) || (e.AwaySkaters > 5 && len(e.AwayGoalie) > 0) {
		e.StrengthState = "ILLEGAL"
		e.OppStrengthState = "ILLEGAL"
	}

	if e.Period == 5 && e.Session == core.SessionRegular {
		e.StrengthState = "1v0"
	}

	if strings.Contains(e.Description, "PENALTY SHOT") {
		e.StrengthState = "1v0"
	}
}

// applyZoneStart copies the zone from a faceoff at the same tick onto the
// change, flipping offensive and defensive zones when the faceoff belongs
// to the other team. Changes at period boundaries, or with no matching
// faceoff, are on-the-fly.
func applyZoneStart(e *core.Event, events []core.Event, maxGameSeconds int) {
	var faceoff *core.Event
	for i := range events {
		if events[i].Event == core.TagFaceoff &&
			events[i].GameSeconds == e.GameSeconds &&
			events[i].Period == e.Period {
			faceoff = &events[i]
			break
		}
	}

	if faceoff == nil {
		e.ZoneStart = core.ZoneOTF
		return
	}

	boundarySeconds := map[int]bool{0: true, 1200: true, 2400: true, 3600: true, 3900: true, maxGameSeconds: true}
	if boundarySeconds[e.GameSeconds] {
		e.ZoneStart = core.ZoneOTF
		return
	}

	e.CoordsX = faceoff.CoordsX
	e.CoordsY = faceoff.CoordsY

	if e.EventTeam == faceoff.EventTeam {
		e.ZoneStart = faceoff.Zone
		return
	}
	flipped := map[string]string{core.ZoneOff: core.ZoneDef, core.ZoneDef: core.ZoneOff, core.ZoneNeu: core.ZoneNeu}
	e.ZoneStart = flipped[faceoff.Zone]
}

// applyIndicators emits the indicator columns the aggregator consumes.
func applyIndicators(e *core.Event) {
	e.Shot = b2i(e.Event == core.TagShot || e.Event == core.TagGoal)
	e.Goal = b2i(e.Event == core.TagGoal)
	e.Miss = b2i(e.Event == core.TagMiss)
	e.Block = b2i(e.Event == core.TagBlock)
	e.Hit = b2i(e.Event == core.TagHit)
	e.Give = b2i(e.Event == core.TagGiveaway)
	e.Take = b2i(e.Event == core.TagTakeaway)
	e.Fac = b2i(e.Event == core.TagFaceoff)
	e.Penl = b2i(e.Event == core.TagPenalty)
	e.Change = b2i(e.Event == core.TagChange)
	e.Stop = b2i(e.Event == core.TagStoppage)
	e.Chl = b2i(e.Event == core.TagChallenge)

	e.Fenwick = b2i(fenwickTags[e.Event])
	e.Corsi = b2i(fenwickTags[e.Event] || e.Event == core.TagBlock)

	e.Ozf = b2i(e.Event == core.TagFaceoff && e.Zone == core.ZoneOff)
	e.Nzf = b2i(e.Event == core.TagFaceoff && e.Zone == core.ZoneNeu)
	e.Dzf = b2i(e.Event == core.TagFaceoff && e.Zone == core.ZoneDef)

	if e.Event == core.TagChange && e.ZoneStart != "" {
		e.Ozc = b2i(e.ZoneStart == core.ZoneOff)
		e.Nzc = b2i(e.ZoneStart == core.ZoneNeu)
		e.Dzc = b2i(e.ZoneStart == core.ZoneDef)
		e.Otf = b2i(e.ZoneStart == core.ZoneOTF)
	} else {
		e.Ozc, e.Nzc, e.Dzc, e.Otf = 0, 0, 0, 0
	}

	e.Pen0, e.Pen2, e.Pen4, e.Pen5, e.Pen10 = 0, 0, 0, 0, 0
	if e.Event == core.TagPenalty && e.PenaltyLength != nil {
		switch *e.PenaltyLength {
		case 0:
			e.Pen0 = 1
		case 2:
			e.Pen2 = 1
		case 4:
			e.Pen4 = 1
		case 5:
			e.Pen5 = 1
		case 10:
			e.Pen10 = 1
		}
	}
}

func b2i(v bool) int {
	if v {
		return 1
	}
	return 0
}
