package events

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"stormlightlabs.org/hockey/internal/core"
	"stormlightlabs.org/hockey/internal/fixes"
	"stormlightlabs.org/hockey/internal/htmlutil"
	"stormlightlabs.org/hockey/internal/names"
)

// Compiled once; the description grammar is stable across seasons.
var (
	eventTeamRe     = regexp.MustCompile(`^([A-Z]{3}|[A-Z]\.[A-Z])`)
	numbersRe       = regexp.MustCompile(`#([0-9]{1,2})`)
	eventPlayersRe  = regexp.MustCompile(`([A-Z]{3}\s+#[0-9]{1,2})`)
	foTeamRe        = regexp.MustCompile(`([A-Z]{3}) WON`)
	blockTeamRe     = regexp.MustCompile(`BLOCKED BY\s+([A-Z]{3})`)
	zoneRe          = regexp.MustCompile(`([A-Za-z]{3})\. ZONE`)
	penaltyRe       = regexp.MustCompile(`([A-Za-z]*|[A-Za-z]*-[A-Za-z]*|[A-Za-z]*\s+\(.*\))\s*\(`)
	penaltyLengthRe = regexp.MustCompile(`(\d+) MIN`)
	shotTypeRe      = regexp.MustCompile(`,\s+([A-Za-z]*|[A-Za-z]*-[A-Za-z]*)\s+,`)
	distanceRe      = regexp.MustCompile(`(\d+) FT`)
	servedRe        = regexp.MustCompile(`([A-Z]{3})\s.+SERVED BY: #([0-9]+)`)
	drawnRe         = regexp.MustCompile(`DRAWN BY: ([A-Z]{3}) #([0-9]+)`)
)

// nonTeamEvents never carry an event team.
var nonTeamEvents = map[string]bool{
	"STOP": true, "ANTHEM": true, "PGSTR": true, "PGEND": true,
	"PSTR": true, "PEND": true, "EISTR": true, "EIEND": true,
	"GEND": true, "SOC": true, "PBOX": true,
}

// nonDescriptDescriptions replace the blank description column on
// administrative rows.
var nonDescriptDescriptions = map[string]string{
	"PGSTR":  "PRE-GAME START",
	"PGEND":  "PRE-GAME END",
	"ANTHEM": "NATIONAL ANTHEM",
	"EISTR":  "EARLY INTERMISSION START",
	"EIEND":  "EARLY INTERMISSION END",
}

// htmlRow is one raw row of the PL report's event table.
type htmlRow struct {
	eventIdx    int
	period      int
	strength    string
	time        string
	event       string
	description string
}

// FromHTML parses the PL report into canonical events, resolving players
// by team and jersey through the merged HTML roster.
func FromHTML(doc string, info core.GameInfo, htmlRoster []core.RosterPlayer) ([]core.Event, error) {
	rows, err := scrapeRows(doc, info.GameID)
	if err != nil {
		return nil, err
	}

	actives := make(map[string]core.RosterPlayer)
	scratches := make(map[string]core.RosterPlayer)
	for _, p := range htmlRoster {
		if p.Status == core.StatusActive {
			actives[p.TeamJersey] = p
		} else {
			scratches[p.TeamJersey] = p
		}
	}

	events := make([]core.Event, 0, len(rows))
	for _, row := range rows {
		e, err := mungeRow(row, rows, info, actives, scratches)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	sort.SliceStable(events, func(i, j int) bool { return events[i].EventIdx < events[j].EventIdx })

	assignHTMLVersions(events)

	return events, nil
}

// scrapeRows extracts and repairs the raw 8-column event rows.
func scrapeRows(doc string, gameID core.GameID) ([]htmlRow, error) {
	root, err := htmlutil.Parse(doc)
	if err != nil {
		return nil, fmt.Errorf("play-by-play report: %w", err)
	}

	cells := htmlutil.FindAll(root, func(n *html.Node) bool {
		return n.Data == "td" && htmlutil.HasClass(n, "bborder")
	})
	if len(cells) == 0 {
		return nil, fmt.Errorf("play-by-play report: event table not found")
	}

	texts := make([]string, len(cells))
	for i, cell := range cells {
		texts[i] = names.StripAccents(htmlutil.CellText(cell))
	}

	var rows []htmlRow
	for i := 0; i+8 <= len(texts); i += 8 {
		row := texts[i : i+8]

		// Repeated header rows carry the literal column markers.
		if headerRow(row) {
			continue
		}

		eventIdx, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			continue
		}

		if fixes.HTMLEventDropped(gameID, eventIdx) {
			continue
		}

		period, _ := strconv.Atoi(strings.TrimSpace(row[1]))

		rows = append(rows, htmlRow{
			eventIdx:    eventIdx,
			period:      period,
			strength:    strings.TrimSpace(row[2]),
			time:        row[3],
			event:       strings.TrimSpace(row[4]),
			description: strings.ToUpper(names.StripAccents(row[5])),
		})
	}

	return rows, nil
}

func headerRow(row []string) bool {
	for _, cell := range row {
		if cell == "#" {
			return true
		}
	}
	return false
}

// mungeRow parses one raw row into a canonical event.
func mungeRow(row htmlRow, rows []htmlRow, info core.GameInfo, actives, scratches map[string]core.RosterPlayer) (core.Event, error) {
	if desc, ok := nonDescriptDescriptions[row.event]; ok {
		row.description = desc
	}

	for old, canonical := range core.LegacyTeamAbbrevs {
		row.description = strings.ReplaceAll(row.description, old, canonical)
	}

	fixRow := fixes.HTMLRow{
		EventIdx:    row.eventIdx,
		Period:      row.period,
		Time:        row.time,
		Description: row.description,
	}
	fixes.HTMLEvents(info.GameID, &fixRow)
	row.period = fixRow.Period
	row.time = fixRow.Time
	row.description = fixRow.Description

	// A period end stamped with the corrupt clock is re-timed from the last
	// goal in the period, or the period's full length when there were none.
	if row.event == "PEND" && row.time == "-16:0-120:00" {
		row.time = repairPeriodEndClock(row, rows, info.Session)
	}

	e := core.Event{
		Season:      info.Season,
		Session:     info.Session,
		GameID:      info.GameID,
		EventIdx:    row.eventIdx,
		Period:      row.period,
		Event:       row.event,
		Description: row.description,
		Strength:    row.strength,
		HomeTeam:    info.HomeTeam,
		AwayTeam:    info.AwayTeam,
	}

	// Clock: the cell concatenates elapsed and remaining time; the leading
	// mm:ss is the elapsed period time.
	timeSplit := strings.SplitN(row.time, ":", 2)
	if len(timeSplit) == 2 {
		rest := timeSplit[1]
		if len(rest) > 2 {
			rest = rest[:2]
		}
		e.PeriodTime = timeSplit[0] + ":" + rest
		e.PeriodSeconds = clockSeconds(e.PeriodTime)
		e.GameSeconds = core.GameSeconds(info.Session, e.Period, e.PeriodSeconds)
	}

	if !nonTeamEvents[row.event] {
		m := eventTeamRe.FindStringSubmatch(row.description)
		if m == nil {
			// Rows with no leading team reference keep their timing only.
			return e, nil
		}
		e.EventTeam = core.TeamCode(m[1])
		if e.EventTeam == "LEA" {
			e.EventTeam = ""
		}
	}

	if row.event == "FAC" {
		if m := foTeamRe.FindStringSubmatch(row.description); m != nil {
			e.EventTeam = core.TeamCode(m[1])
		}
	}
	if row.event == "BLOCK" && strings.Contains(row.description, "BLOCKED BY") {
		if m := blockTeamRe.FindStringSubmatch(row.description); m != nil {
			e.EventTeam = core.TeamCode(m[1])
		}
	}

	eventPlayers := extractEventPlayers(row, e.EventTeam)

	if row.event == "FAC" && len(eventPlayers) >= 2 && !strings.Contains(eventPlayers[0], string(e.EventTeam)) {
		eventPlayers[0], eventPlayers[1] = eventPlayers[1], eventPlayers[0]
	}

	switch {
	case row.event == "BLOCK" && strings.Contains(row.description, "TEAMMATE"):
		e.EventTeam = core.TeamCode(row.description[:3])
		eventPlayers = append([]string{core.SentinelTeammate}, eventPlayers...)
	case row.event == "BLOCK" && strings.Contains(row.description, "BLOCKED BY OTHER"):
		e.EventTeam = "OTHER"
		eventPlayers = append([]string{core.SentinelReferee}, eventPlayers...)
	case row.event == "BLOCK" && len(eventPlayers) >= 2 && !strings.Contains(eventPlayers[0], string(e.EventTeam)):
		eventPlayers[0], eventPlayers[1] = eventPlayers[1], eventPlayers[0]
	}

	slots := []*core.EventPlayer{&e.Player1, &e.Player2, &e.Player3}
	for idx, jersey := range eventPlayers {
		if idx >= len(slots) {
			break
		}
		player, err := resolveHTMLPlayer(jersey, actives, scratches)
		if err != nil {
			return e, fmt.Errorf("game %d event %d: %w", info.GameID, row.eventIdx, err)
		}
		*slots[idx] = player
	}

	if m := zoneRe.FindStringSubmatch(row.description); m != nil {
		e.Zone = strings.ToUpper(m[1])

		// The report logs a block in the blocker's zone; the canonical zone
		// is the shooter's.
		if strings.Contains(row.event, "BLOCK") && e.Zone == core.ZoneDef {
			e.Zone = core.ZoneOff
		}
	}

	if row.event == "PENL" {
		mungePenalty(&e, row, actives)
	}

	switch row.event {
	case "GOAL", "SHOT", "MISS", "BLOCK":
		if m := shotTypeRe.FindStringSubmatch(row.description); m != nil {
			e.ShotType = strings.ToUpper(m[1])
		} else {
			e.ShotType = "WRIST"
		}
		if strings.Contains(row.description, "BETWEEN LEGS") {
			e.ShotType = "BETWEEN LEGS"
		}
	}

	if m := distanceRe.FindStringSubmatch(row.description); m != nil {
		dist, _ := strconv.Atoi(m[1])
		e.PBPDistance = core.IntPtr(dist)
	} else if row.event == "GOAL" || row.event == "SHOT" || row.event == "MISS" {
		e.PBPDistance = core.IntPtr(0)
	}

	return e, nil
}

// repairPeriodEndClock re-times a corrupt period-end row.
func repairPeriodEndClock(row htmlRow, rows []htmlRow, session core.SessionCode) string {
	var lastGoalTime string
	for _, other := range rows {
		if other.period == row.period && other.event == "GOAL" {
			lastGoalTime = other.time
		}
	}
	if lastGoalTime != "" {
		return lastGoalTime
	}
	if row.period == 4 && session == core.SessionRegular {
		return "5:000:00"
	}
	return "20:000:00"
}

// extractEventPlayers pulls the referenced team+jersey tokens out of a
// description. Goals, shots, takeaways, and giveaways reference jerseys
// without team prefixes; everything else carries explicit team numbers.
func extractEventPlayers(row htmlRow, eventTeam core.TeamCode) []string {
	switch row.event {
	case "GOAL", "SHOT", "TAKE", "GIVE":
		nums := numbersRe.FindAllStringSubmatch(row.description, -1)
		players := make([]string, 0, len(nums))
		for _, m := range nums {
			players = append(players, string(eventTeam)+m[1])
		}
		return players
	default:
		matches := eventPlayersRe.FindAllString(row.description, -1)
		players := make([]string, 0, len(matches))
		for _, m := range matches {
			players = append(players, strings.ReplaceAll(m, " #", ""))
		}
		return players
	}
}

// resolveHTMLPlayer looks a team+jersey token up in the active roster, then
// the scratches. A reference found in neither is a reference failure.
func resolveHTMLPlayer(teamJersey string, actives, scratches map[string]core.RosterPlayer) (core.EventPlayer, error) {
	teamJersey = strings.ReplaceAll(teamJersey, " #", "")

	switch teamJersey {
	case core.SentinelTeammate:
		return core.EventPlayer{Name: core.SentinelTeammate, EHID: core.SentinelTeammate}, nil
	case core.SentinelReferee:
		return core.EventPlayer{Name: core.SentinelReferee, EHID: core.SentinelReferee}, nil
	}

	if p, ok := actives[teamJersey]; ok {
		return core.EventPlayer{Name: p.PlayerName, EHID: p.EHID, TeamJersey: p.TeamJersey, Position: p.Position}, nil
	}
	if p, ok := scratches[teamJersey]; ok {
		return core.EventPlayer{Name: p.PlayerName, EHID: p.EHID, TeamJersey: p.TeamJersey, Position: p.Position}, nil
	}
	return core.EventPlayer{}, fmt.Errorf("player %s not on roster", teamJersey)
}

// assignHTMLVersions disambiguates co-timestamped duplicates keyed on the
// first player's text ID.
func assignHTMLVersions(events []core.Event) {
	type bucket struct {
		event       string
		period      int
		gameSeconds int
		player1     core.EHID
	}

	seen := make(map[bucket]int, len(events))
	for i := range events {
		if events[i].Player1.EHID == "" {
			events[i].Version = 1
			continue
		}
		b := bucket{
			event:       events[i].Event,
			period:      events[i].Period,
			gameSeconds: events[i].GameSeconds,
			player1:     events[i].Player1.EHID,
		}
		seen[b]++
		events[i].Version = seen[b]
	}
}
