// Package events decodes game events from the two sources: the gamecenter
// JSON feed and the PL HTML report. Both parsers emit the canonical event
// record; the reconciler in internal/pbp joins them.
package events

import (
	"strconv"
	"strings"

	"stormlightlabs.org/hockey/internal/core"
	"stormlightlabs.org/hockey/internal/fixes"
	"stormlightlabs.org/hockey/internal/nhl"
)

// apiTagTranslations maps gamecenter typeDescKey values to normalized tags.
var apiTagTranslations = map[string]string{
	"period-start":        core.TagPeriodStart,
	"period-end":          core.TagPeriodEnd,
	"game-end":            core.TagGameEnd,
	"shootout-complete":   core.TagShootoutEnd,
	"faceoff":             core.TagFaceoff,
	"stoppage":            core.TagStoppage,
	"hit":                 core.TagHit,
	"giveaway":            core.TagGiveaway,
	"takeaway":            core.TagTakeaway,
	"shot-on-goal":        core.TagShot,
	"missed-shot":         core.TagMiss,
	"blocked-shot":        core.TagBlock,
	"goal":                core.TagGoal,
	"penalty":             core.TagPenalty,
	"delayed-penalty":     core.TagDelayedPen,
	"failed-shot-attempt": core.TagMiss,
}

// FromAPI decodes the gamecenter plays into canonical events, resolving
// player references through the API roster.
func FromAPI(resp *nhl.GamecenterResponse, info core.GameInfo, apiRoster []core.RosterPlayer) []core.Event {
	byAPIID := make(map[string]core.RosterPlayer, len(apiRoster))
	for _, p := range apiRoster {
		byAPIID[strconv.Itoa(int(p.APIID))] = p
	}

	teamsByID := map[int]core.TeamCode{
		info.HomeTeamID: info.HomeTeam,
		info.AwayTeamID: info.AwayTeam,
	}

	out := make([]core.Event, 0, len(resp.Plays))

	for _, play := range resp.Plays {
		e := decodeAPIPlay(play, info, teamsByID)

		fixes.APIEvents(info.GameID, &e)

		resolveAPIPlayers(&e, byAPIID)

		out = append(out, e)
	}

	assignAPIVersions(out)

	return out
}

func decodeAPIPlay(play nhl.Play, info core.GameInfo, teamsByID map[int]core.TeamCode) core.Event {
	period := play.PeriodDescriptor.Number
	periodSeconds := clockSeconds(play.TimeInPeriod)

	// The feed stamps every shootout attempt at the top of the frame.
	gameSeconds := (period-1)*1200 + periodSeconds
	if info.Session == core.SessionRegular && period == 5 {
		gameSeconds = 3900
	}

	e := core.Event{
		Season:                info.Season,
		Session:               info.Session,
		GameID:                info.GameID,
		EventIdx:              play.SortOrder,
		Period:                period,
		PeriodSeconds:         periodSeconds,
		GameSeconds:           gameSeconds,
		Event:                 play.TypeDescKey,
		EventCode:             play.TypeCode,
		Strength:              play.SituationCode,
		HomeTeamDefendingSide: play.HomeTeamDefendingSide,
		HomeTeam:              info.HomeTeam,
		AwayTeam:              info.AwayTeam,
	}

	if tag, ok := apiTagTranslations[e.Event]; ok && play.Details == nil {
		e.Event = tag
		return e
	}
	if play.Details == nil {
		return e
	}

	d := play.Details

	e.EventTeam = teamsByID[d.EventOwnerTeamID]
	e.CoordsX = d.XCoord
	e.CoordsY = d.YCoord
	e.Zone = d.ZoneCode

	switch play.TypeDescKey {
	case "faceoff":
		setSlot(&e.Player1, d.WinningPlayerID, core.RoleWinner)
		setSlot(&e.Player2, d.LosingPlayerID, core.RoleLoser)

	case "stoppage":
		e.StoppageReason = strings.ToUpper(strings.ReplaceAll(d.Reason, "-", " "))
		e.StoppageReasonSecondary = strings.ToUpper(strings.ReplaceAll(d.SecondaryReason, "-", " "))

	case "hit":
		setSlot(&e.Player1, d.HittingPlayerID, core.RoleHitter)
		setSlot(&e.Player2, d.HitteePlayerID, core.RoleHittee)

	case "giveaway":
		setSlot(&e.Player1, d.PlayerID, core.RoleGiver)

	case "takeaway":
		setSlot(&e.Player1, d.PlayerID, core.RoleTaker)

	case "shot-on-goal", "missed-shot":
		setSlot(&e.Player1, d.ShootingPlayerID, core.RoleShooter)
		setGoalie(&e.OppGoalie, d.GoalieInNetID)
		e.ShotType = shotTypeOrWrist(d.ShotType)
		if play.TypeDescKey == "missed-shot" {
			e.MissReason = strings.ToUpper(strings.ReplaceAll(d.Reason, "-", " "))
		}

	case "blocked-shot":
		if d.BlockingPlayerID == nil {
			e.EventTeam = "OTHER"
			e.Player1 = core.EventPlayer{
				Name:  core.SentinelReferee,
				APIID: core.SentinelReferee,
				EHID:  core.SentinelReferee,
				Role:  core.RoleBlocker,
			}
		} else {
			setSlot(&e.Player1, d.BlockingPlayerID, core.RoleBlocker)
		}
		setSlot(&e.Player2, d.ShootingPlayerID, core.RoleShooter)

	case "goal":
		setSlot(&e.Player1, d.ScoringPlayerID, core.RoleGoalScorer)
		setSlot(&e.Player2, d.Assist1PlayerID, core.RolePrimaryAssist)
		setSlot(&e.Player3, d.Assist2PlayerID, core.RoleSecondaryAssist)
		setGoalie(&e.OppGoalie, d.GoalieInNetID)
		e.ShotType = shotTypeOrWrist(d.ShotType)

	case "penalty":
		e.PenaltyType = d.TypeCode
		e.PenaltyReason = strings.ToUpper(d.DescKey)
		e.PenaltyDuration = d.Duration

		benchType := e.PenaltyType == "BEN" && d.CommittedByPlayerID == nil
		staffReason := (strings.Contains(e.PenaltyReason, "HEAD-COACH") ||
			strings.Contains(e.PenaltyReason, "TEAM-STAFF")) && d.CommittedByPlayerID == nil

		if benchType || staffReason {
			e.Player1 = core.EventPlayer{
				Name:  core.SentinelBench,
				APIID: core.SentinelBench,
				EHID:  core.SentinelBench,
				Role:  core.RoleCommittedBy,
			}
			setSlot(&e.Player2, d.ServedByPlayerID, core.RoleServedBy)
		} else {
			setSlot(&e.Player1, d.CommittedByPlayerID, core.RoleCommittedBy)
			if d.DrawnByPlayerID == nil {
				setSlot(&e.Player2, d.ServedByPlayerID, core.RoleServedBy)
			} else {
				setSlot(&e.Player2, d.DrawnByPlayerID, core.RoleDrawnBy)
				setSlot(&e.Player3, d.ServedByPlayerID, core.RoleServedBy)
			}
		}

	case "failed-shot-attempt":
		setSlot(&e.Player1, d.ShootingPlayerID, core.RoleShooter)
		setGoalie(&e.OppGoalie, d.GoalieInNetID)
	}

	if tag, ok := apiTagTranslations[play.TypeDescKey]; ok {
		e.Event = tag
	}

	return e
}

// setSlot populates a player slot with an API ID and role, leaving the
// slot empty when the reference is absent.
func setSlot(slot *core.EventPlayer, id *int, role string) {
	if id == nil {
		return
	}
	slot.APIID = strconv.Itoa(*id)
	slot.Role = role
}

// setGoalie populates the opposing-goalie slot, falling back to the empty
// net sentinel.
func setGoalie(slot *core.EventPlayer, id *int) {
	if id == nil {
		slot.APIID = core.SentinelEmptyNet
		slot.Name = core.SentinelEmptyNet
		slot.EHID = core.SentinelEmptyNet
		return
	}
	slot.APIID = strconv.Itoa(*id)
}

func shotTypeOrWrist(shotType string) string {
	if shotType == "" {
		return "WRIST"
	}
	return strings.ToUpper(shotType)
}

// resolveAPIPlayers fills names, text IDs, jerseys, and positions for every
// numeric player reference on the event.
func resolveAPIPlayers(e *core.Event, byAPIID map[string]core.RosterPlayer) {
	slots := []*core.EventPlayer{&e.Player1, &e.Player2, &e.Player3, &e.OppGoalie}
	for _, slot := range slots {
		switch slot.APIID {
		case "", core.SentinelBench, core.SentinelReferee, core.SentinelEmptyNet:
			continue
		}

		p, ok := byAPIID[slot.APIID]
		if !ok {
			continue
		}
		slot.Name = p.PlayerName
		slot.EHID = p.EHID
		slot.TeamJersey = p.TeamJersey
		slot.Position = p.Position
	}
}

// assignAPIVersions disambiguates co-timestamped duplicates: within a
// bucket of (event, period, game_seconds, player_1_api_id), versions run
// 1, 2, … in encounter order.
func assignAPIVersions(events []core.Event) {
	type bucket struct {
		event       string
		period      int
		gameSeconds int
		player1     string
	}

	seen := make(map[bucket]int, len(events))
	for i := range events {
		b := bucket{
			event:       events[i].Event,
			period:      events[i].Period,
			gameSeconds: events[i].GameSeconds,
			player1:     events[i].Player1.APIID,
		}
		seen[b]++
		events[i].Version = seen[b]
	}
}

// clockSeconds parses a mm:ss clock value into seconds.
func clockSeconds(clock string) int {
	minutes, seconds, found := strings.Cut(clock, ":")
	if !found {
		return 0
	}
	m, _ := strconv.Atoi(minutes)
	s, _ := strconv.Atoi(seconds)
	return m*60 + s
}
