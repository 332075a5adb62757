// Package nhl talks to the two upstream sources: the api-web JSON feeds and
// the legacy HTML report suite. It owns transport concerns only — retries,
// backoff, timeouts, rate limiting, payload caching, and charset decoding —
// and returns raw decoded payloads for the parsers.
package nhl

// GamecenterResponse is the play-by-play feed for a game.
type GamecenterResponse struct {
	ID           int          `json:"id"`
	Season       int          `json:"season"`
	GameType     int          `json:"gameType"`
	GameDate     string       `json:"gameDate"`
	Venue        NameDefault  `json:"venue"`
	StartTimeUTC string       `json:"startTimeUTC"`
	EasternUTCOffset string   `json:"easternUTCOffset"`
	GameState    string       `json:"gameState"`
	HomeTeam     GameTeam     `json:"homeTeam"`
	AwayTeam     GameTeam     `json:"awayTeam"`
	Plays        []Play       `json:"plays"`
	RosterSpots  []RosterSpot `json:"rosterSpots"`
}

// NameDefault is the API's localized-name wrapper.
type NameDefault struct {
	Default string `json:"default"`
}

// GameTeam describes one side of a game.
type GameTeam struct {
	ID     int         `json:"id"`
	Abbrev string      `json:"abbrev"`
	Name   NameDefault `json:"commonName"`
	Score  int         `json:"score"`
}

// Play is a single event in the gamecenter feed, ordered by SortOrder.
type Play struct {
	EventID          int              `json:"eventId"`
	SortOrder        int              `json:"sortOrder"`
	PeriodDescriptor PeriodDescriptor `json:"periodDescriptor"`
	TimeInPeriod     string           `json:"timeInPeriod"`
	TimeRemaining    string           `json:"timeRemaining"`
	SituationCode    string           `json:"situationCode"`
	HomeTeamDefendingSide string      `json:"homeTeamDefendingSide"`
	TypeDescKey      string           `json:"typeDescKey"`
	TypeCode         int              `json:"typeCode"`
	Details          *PlayDetails     `json:"details"`
}

// PeriodDescriptor carries the period number and type.
type PeriodDescriptor struct {
	Number     int    `json:"number"`
	PeriodType string `json:"periodType"`
}

// PlayDetails holds the per-class detail fields. Player references are
// pointers because absence is meaningful (a blocked shot without a blocker,
// a penalty without a committed-by player, an empty net).
type PlayDetails struct {
	XCoord              *int   `json:"xCoord"`
	YCoord              *int   `json:"yCoord"`
	ZoneCode            string `json:"zoneCode"`
	ShotType            string `json:"shotType"`
	Reason              string `json:"reason"`
	SecondaryReason     string `json:"secondaryReason"`
	TypeCode            string `json:"typeCode"`
	DescKey             string `json:"descKey"`
	Duration            *int   `json:"duration"`
	EventOwnerTeamID    int    `json:"eventOwnerTeamId"`
	WinningPlayerID     *int   `json:"winningPlayerId"`
	LosingPlayerID      *int   `json:"losingPlayerId"`
	HittingPlayerID     *int   `json:"hittingPlayerId"`
	HitteePlayerID      *int   `json:"hitteePlayerId"`
	ShootingPlayerID    *int   `json:"shootingPlayerId"`
	GoalieInNetID       *int   `json:"goalieInNetId"`
	BlockingPlayerID    *int   `json:"blockingPlayerId"`
	ScoringPlayerID     *int   `json:"scoringPlayerId"`
	Assist1PlayerID     *int   `json:"assist1PlayerId"`
	Assist2PlayerID     *int   `json:"assist2PlayerId"`
	CommittedByPlayerID *int   `json:"committedByPlayerId"`
	DrawnByPlayerID     *int   `json:"drawnByPlayerId"`
	ServedByPlayerID    *int   `json:"servedByPlayerId"`
	PlayerID            *int   `json:"playerId"`
}

// RosterSpot is one player in the gamecenter roster.
type RosterSpot struct {
	TeamID        int         `json:"teamId"`
	PlayerID      int         `json:"playerId"`
	FirstName     NameDefault `json:"firstName"`
	LastName      NameDefault `json:"lastName"`
	SweaterNumber int         `json:"sweaterNumber"`
	PositionCode  string      `json:"positionCode"`
	Headshot      string      `json:"headshot"`
}

// ScheduleResponse is the club-schedule-season feed.
type ScheduleResponse struct {
	Games []ScheduleGame `json:"games"`
}

// ScheduleGame is one scheduled game.
type ScheduleGame struct {
	ID            int          `json:"id"`
	Season        int          `json:"season"`
	GameType      int          `json:"gameType"`
	GameState     string       `json:"gameState"`
	GameDate      string       `json:"gameDate"`
	StartTimeUTC  string       `json:"startTimeUTC"`
	VenueTimezone string       `json:"venueTimezone"`
	NeutralSite   bool         `json:"neutralSite"`
	Venue         NameDefault  `json:"venue"`
	HomeTeam      ScheduleTeam `json:"homeTeam"`
	AwayTeam      ScheduleTeam `json:"awayTeam"`
}

// ScheduleTeam is one side of a scheduled game.
type ScheduleTeam struct {
	ID     int    `json:"id"`
	Abbrev string `json:"abbrev"`
	Score  *int   `json:"score"`
}

// StandingsResponse is the standings feed.
type StandingsResponse struct {
	Standings []StandingsRow `json:"standings"`
}

// StandingsRow is one team's standings line.
type StandingsRow struct {
	SeasonID         int         `json:"seasonId"`
	Date             string      `json:"date"`
	TeamAbbrev       NameDefault `json:"teamAbbrev"`
	TeamName         NameDefault `json:"teamName"`
	ConferenceName   string      `json:"conferenceName"`
	DivisionName     string      `json:"divisionName"`
	GamesPlayed      int         `json:"gamesPlayed"`
	Wins             int         `json:"wins"`
	Losses           int         `json:"losses"`
	OTLosses         int         `json:"otLosses"`
	Points           int         `json:"points"`
	PointPctg        float64     `json:"pointPctg"`
	RegulationWins   int         `json:"regulationWins"`
	GoalFor          int         `json:"goalFor"`
	GoalAgainst      int         `json:"goalAgainst"`
	GoalDifferential int         `json:"goalDifferential"`
	StreakCode       string      `json:"streakCode"`
	StreakCount      int         `json:"streakCount"`
}
