// Package core defines the canonical record types shared across the
// scraping and aggregation pipeline. Records mirror the two upstream
// sources: the NHL gamecenter JSON feed and the legacy HTML report suite
// (RO/PL/TH/TV pages), reconciled into a single play-by-play stream.
package core

import (
	"fmt"
	"strconv"
)

// GameID is the 10-digit NHL game identifier (e.g., 2023020001).
type GameID int

// Season is the 8-digit season code (e.g., 20232024).
type Season int

// SessionCode identifies the competition phase.
type SessionCode string

// Session codes as they appear in scraped records.
const (
	SessionPreseason SessionCode = "PR"
	SessionRegular   SessionCode = "R"
	SessionPlayoffs  SessionCode = "P"
)

// TeamCode is the 3-letter team abbreviation (e.g., NSH).
type TeamCode string

// EHID is the dotted canonical text ID for a player (e.g., FILIP.FORSBERG).
// Treat as opaque once derived; collision handling happens in the name
// normalizer and must not be re-applied downstream.
type EHID string

// APIPlayerID is the integer player ID assigned by the NHL API.
type APIPlayerID int

// TeamVenue is HOME or AWAY.
type TeamVenue string

const (
	VenueHome TeamVenue = "HOME"
	VenueAway TeamVenue = "AWAY"
)

// Roster statuses.
const (
	StatusActive  = "ACTIVE"
	StatusScratch = "SCRATCH"
)

// Season derives the 8-digit season code from the game ID's leading year.
func (id GameID) Season() Season {
	year := int(id) / 1000000
	return Season(year*10000 + year + 1)
}

// SessionNumber returns the 2-digit session component of the game ID
// (1 pre-season, 2 regular season, 3 playoffs).
func (id GameID) SessionNumber() int {
	return (int(id) / 10000) % 100
}

// Session maps the game ID's session component to a session code.
func (id GameID) Session() (SessionCode, error) {
	switch id.SessionNumber() {
	case 1:
		return SessionPreseason, nil
	case 2:
		return SessionRegular, nil
	case 3:
		return SessionPlayoffs, nil
	default:
		return "", fmt.Errorf("game %d: unknown session number %d", id, id.SessionNumber())
	}
}

// HTMLReportID returns the 6-digit suffix used in HTML report URLs
// (game_id[4:]).
func (id GameID) HTMLReportID() string {
	s := strconv.Itoa(int(id))
	if len(s) < 10 {
		return s
	}
	return s[4:]
}

// String implements fmt.Stringer.
func (id GameID) String() string { return strconv.Itoa(int(id)) }

// RosterPlayer is one player row keyed by (game, team, jersey). Entries come
// from the API rosterSpots feed, the HTML roster report, or their merge.
type RosterPlayer struct {
	Season     Season      `csv:"season" json:"season"`
	Session    SessionCode `csv:"session" json:"session"`
	GameID     GameID      `csv:"game_id" json:"game_id"`
	Team       TeamCode    `csv:"team" json:"team"`
	TeamName   string      `csv:"team_name,omitempty" json:"team_name,omitempty"`
	TeamVenue  TeamVenue   `csv:"team_venue" json:"team_venue"`
	PlayerName string      `csv:"player_name" json:"player_name"`
	FirstName  string      `csv:"first_name,omitempty" json:"first_name,omitempty"`
	LastName   string      `csv:"last_name,omitempty" json:"last_name,omitempty"`
	EHID       EHID        `csv:"eh_id" json:"eh_id"`
	APIID      APIPlayerID `csv:"api_id" json:"api_id"`
	TeamJersey string      `csv:"team_jersey" json:"team_jersey"`
	Jersey     int         `csv:"jersey" json:"jersey"`
	Position   string      `csv:"position" json:"position"`
	Starter    int         `csv:"starter" json:"starter"`
	Status     string      `csv:"status" json:"status"`
	Headshot   string      `csv:"headshot_url,omitempty" json:"headshot_url,omitempty"`
}

// Shift is one shift row from the TH/TV shift reports, after repair.
// Times are elapsed seconds within the period.
type Shift struct {
	Season          Season      `csv:"season" json:"season"`
	Session         SessionCode `csv:"session" json:"session"`
	GameID          GameID      `csv:"game_id" json:"game_id"`
	Team            TeamCode    `csv:"team" json:"team"`
	TeamName        string      `csv:"team_name" json:"team_name"`
	TeamVenue       TeamVenue   `csv:"team_venue" json:"team_venue"`
	PlayerName      string      `csv:"player_name" json:"player_name"`
	EHID            EHID        `csv:"eh_id" json:"eh_id"`
	TeamJersey      string      `csv:"team_jersey" json:"team_jersey"`
	Jersey          int         `csv:"jersey" json:"jersey"`
	Position        string      `csv:"position" json:"position"`
	ShiftCount      int         `csv:"shift_count" json:"shift_count"`
	Period          int         `csv:"period" json:"period"`
	ShiftStart      string      `csv:"shift_start" json:"shift_start"`
	ShiftEnd        string      `csv:"shift_end" json:"shift_end"`
	Duration        string      `csv:"duration" json:"duration"`
	StartTime       string      `csv:"start_time" json:"start_time"`
	EndTime         string      `csv:"end_time" json:"end_time"`
	StartSeconds    int         `csv:"start_time_seconds" json:"start_time_seconds"`
	EndSeconds      int         `csv:"end_time_seconds" json:"end_time_seconds"`
	DurationSeconds int         `csv:"duration_seconds" json:"duration_seconds"`
	Goalie          int         `csv:"goalie" json:"goalie"`
	IsHome          int         `csv:"is_home" json:"is_home"`
	IsAway          int         `csv:"is_away" json:"is_away"`
}

// GameInfo carries game-level metadata shared by every event of a game.
type GameInfo struct {
	GameID      GameID
	Season      Season
	Session     SessionCode
	GameDate    string
	HomeTeam    TeamCode
	AwayTeam    TeamCode
	HomeTeamID  int
	AwayTeamID  int
	Venue       string
	StartTimeET string
	GameState   string
}

// ScheduleGame is one row of the club-schedule-season feed, mapped to the
// local venue timezone.
type ScheduleGame struct {
	Season        Season   `csv:"season" json:"season"`
	Session       int      `csv:"session" json:"session"`
	GameID        GameID   `csv:"game_id" json:"game_id"`
	GameDate      string   `csv:"game_date" json:"game_date"`
	StartTime     string   `csv:"start_time" json:"start_time"`
	GameState     string   `csv:"game_state" json:"game_state"`
	HomeTeam      TeamCode `csv:"home_team" json:"home_team"`
	HomeTeamID    int      `csv:"home_team_id" json:"home_team_id"`
	HomeScore     int      `csv:"home_score" json:"home_score"`
	AwayTeam      TeamCode `csv:"away_team" json:"away_team"`
	AwayTeamID    int      `csv:"away_team_id" json:"away_team_id"`
	AwayScore     int      `csv:"away_score" json:"away_score"`
	Venue         string   `csv:"venue" json:"venue"`
	VenueTimezone string   `csv:"venue_timezone" json:"venue_timezone"`
	NeutralSite   int      `csv:"neutral_site" json:"neutral_site"`
}

// StandingsTeam is one row of the standings feed.
type StandingsTeam struct {
	Season           Season   `csv:"season" json:"season"`
	Date             string   `csv:"date" json:"date"`
	Team             TeamCode `csv:"team" json:"team"`
	TeamName         string   `csv:"team_name" json:"team_name"`
	Conference       string   `csv:"conference" json:"conference"`
	Division         string   `csv:"division" json:"division"`
	GamesPlayed      int      `csv:"games_played" json:"games_played"`
	Wins             int      `csv:"wins" json:"wins"`
	Losses           int      `csv:"losses" json:"losses"`
	OTLosses         int      `csv:"ot_losses" json:"ot_losses"`
	Points           int      `csv:"points" json:"points"`
	PointPctg        float64  `csv:"point_pctg" json:"point_pctg"`
	RegulationWins   int      `csv:"regulation_wins" json:"regulation_wins"`
	GoalsFor         int      `csv:"goals_for" json:"goals_for"`
	GoalsAgainst     int      `csv:"goals_against" json:"goals_against"`
	GoalDifferential int      `csv:"goal_differential" json:"goal_differential"`
	StreakCode       string   `csv:"streak_code" json:"streak_code"`
	StreakCount      int      `csv:"streak_count" json:"streak_count"`
}

// PeriodLength returns the length of a period in seconds given the session.
// Regulation periods run 1200 seconds; regular-season overtime runs 300;
// playoff overtime runs a full 1200.
func PeriodLength(session SessionCode, period int) int {
	if period <= 3 {
		return 1200
	}
	if session == SessionPlayoffs {
		return 1200
	}
	return 300
}

// GameSeconds converts a (period, period_seconds) pair to elapsed game
// seconds, with the regular-season shootout pinned to 3900.
func GameSeconds(session SessionCode, period, periodSeconds int) int {
	if session == SessionRegular && period == 5 {
		return 3900 + periodSeconds
	}
	return (period-1)*1200 + periodSeconds
}
