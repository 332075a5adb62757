// Package shifts parses the TH/TV shift reports into per-player shifts,
// repairs the known end-of-period defects, and derives the CHANGE events
// that drive on-ice reconstruction.
package shifts

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

var firstNameParentheticalRe = regexp.MustCompile(`\(\s?(.+)\)`)

// Parse extracts and repairs both teams' shifts. The HTML roster supplies
// player identity and positions; a shift referencing a player on neither
// the active nor scratch roster is a reference failure.
func Parse(homeDoc, awayDoc string, info core.GameInfo, htmlRoster []core.RosterPlayer) ([]core.Shift, error) {
	actives := make(map[string]core.RosterPlayer)
	scratches := make(map[string]core.RosterPlayer)
	starters := make(map[core.TeamVenue]core.RosterPlayer)
	for _, p := range htmlRoster {
		if p.Status == core.StatusActive {
			actives[p.TeamJersey] = p
			if p.Position == "G" && p.Starter == 1 {
				starters[p.TeamVenue] = p
			}
		} else {
			scratches[p.TeamJersey] = p
		}
	}

	var shifts []core.Shift
	docs := []struct {
		venue core.TeamVenue
		doc   string
	}{
		{core.VenueHome, homeDoc},
		{core.VenueAway, awayDoc},
	}

	for _, d := range docs {
		parsed, err := scrapeTeamShifts(d.doc, d.venue, info)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, parsed...)
	}

	shifts = append(shifts, fixes.Shifts(info.GameID, actives)...)

	if err := mungeShifts(shifts, info, actives, scratches); err != nil {
		return nil, err
	}

	shifts = synthesizeGoalieShifts(shifts, info, starters)

	repairZeroGoalieEnds(shifts, info.Session)

	return shifts, nil
}

// scrapeTeamShifts reads one team's report into raw shift rows.
func scrapeTeamShifts(doc string, venue core.TeamVenue, info core.GameInfo) ([]core.Shift, error) {
	root, err := htmlutil.Parse(doc)
	if err != nil {
		return nil, fmt.Errorf("shift report: %w", err)
	}

	heading := htmlutil.First(root, func(n *html.Node) bool {
		return n.Data == "td" && htmlutil.HasClass(n, "teamHeading")
	})
	if heading == nil {
		return nil, nil
	}

	teamName := core.CanonicalTeamName(strings.ToUpper(names.StripAccents(htmlutil.Text(heading))))
	team, ok := core.TeamCodes[teamName]
	if !ok {
		return nil, fmt.Errorf("shift report: unknown team %q", teamName)
	}

	cells := htmlutil.FindAll(root, func(n *html.Node) bool {
		if n.Data != "td" {
			return false
		}
		return htmlutil.HasClass(n, "playerHeading") || htmlutil.HasClass(n, "lborder")
	})

	type playerShifts struct {
		name   string
		jersey string
		cells  []string
	}

	var players []*playerShifts
	var current *playerShifts

	for _, cell := range cells {
		text := htmlutil.CellText(cell)

		if strings.Contains(text, ", ") {
			// A "12 SMITH, JOHN" row opens a new player block.
			head, tail, _ := strings.Cut(text, ",")
			headFields := strings.SplitN(strings.TrimSpace(head), " ", 2)
			if len(headFields) < 2 {
				continue
			}

			jersey := strings.TrimSpace(headFields[0])
			lastName := strings.TrimSpace(headFields[1])
			firstName := strings.TrimSpace(firstNameParentheticalRe.ReplaceAllString(tail, ""))

			fullName := strings.TrimSpace(firstName + " " + lastName)
			if fullName == "" {
				current = nil
				continue
			}

			current = &playerShifts{name: fullName, jersey: jersey}
			players = append(players, current)
			continue
		}

		if current != nil {
			current.cells = append(current.cells, text)
		}
	}

	var shifts []core.Shift
	for _, p := range players {
		jersey, err := strconv.Atoi(p.jersey)
		if err != nil {
			continue
		}

		for i := 0; i+5 <= len(p.cells); i += 5 {
			row := p.cells[i : i+5]

			shiftCount, err := strconv.Atoi(strings.TrimSpace(row[0]))
			if err != nil {
				continue
			}

			periodText := strings.TrimSpace(row[1])
			periodText = strings.ReplaceAll(periodText, "OT", "4")
			periodText = strings.ReplaceAll(periodText, "SO", "5")
			period, err := strconv.Atoi(periodText)
			if err != nil {
				continue
			}

			shiftStart := strings.TrimSpace(names.StripAccents(row[2]))
			shiftEnd := strings.TrimSpace(names.StripAccents(row[3]))

			startTime := strings.TrimSpace(strings.SplitN(shiftStart, "/", 2)[0])
			endTime := shiftEnd
			if idx := strings.Index(shiftEnd, "/"); idx >= 0 {
				endTime = strings.TrimSpace(shiftEnd[:idx])
			}

			// A known report defect stamps phantom shifts at 31:23.
			if startTime == "31:23" {
				continue
			}

			shifts = append(shifts, core.Shift{
				Season:     info.Season,
				Session:    info.Session,
				GameID:     info.GameID,
				Team:       team,
				TeamName:   teamName,
				TeamVenue:  venue,
				PlayerName: strings.ToUpper(names.StripAccents(p.name)),
				TeamJersey: string(team) + p.jersey,
				Jersey:     jersey,
				Period:     period,
				ShiftCount: shiftCount,
				ShiftStart: shiftStart,
				StartTime:  startTime,
				ShiftEnd:   shiftEnd,
				EndTime:    endTime,
				Duration:   strings.TrimSpace(row[4]),
			})
		}
	}

	return shifts, nil
}

// mungeShifts resolves identity, converts clocks to seconds, and repairs
// blank or inverted shift ends.
func mungeShifts(shifts []core.Shift, info core.GameInfo, actives, scratches map[string]core.RosterPlayer) error {
	for i := range shifts {
		s := &shifts[i]

		p, ok := actives[s.TeamJersey]
		if !ok {
			p, ok = scratches[s.TeamJersey]
		}
		if !ok {
			return fmt.Errorf("game %d: shift references %s who is not on the roster", info.GameID, s.TeamJersey)
		}
		s.EHID = p.EHID
		s.Position = p.Position

		s.PlayerName = names.Normalize(s.PlayerName)

		s.StartSeconds = clockSeconds(s.StartTime)
		s.DurationSeconds = clockSeconds(s.Duration)

		if strings.TrimSpace(s.EndTime) == "" {
			s.EndSeconds = s.StartSeconds + s.DurationSeconds
			s.EndTime = secondsToClock(s.EndSeconds)
		} else {
			s.EndSeconds = clockSeconds(s.EndTime)
		}

		if s.StartSeconds > s.EndSeconds {
			repairInvertedShift(s, shifts, info.Session)
		}

		if s.Position == "G" {
			s.Goalie = 1
		}
		if s.TeamVenue == core.VenueHome {
			s.IsHome = 1
		} else {
			s.IsAway = 1
		}
	}

	return nil
}

// repairInvertedShift clamps a shift whose recorded start is after its end.
func repairInvertedShift(s *core.Shift, shifts []core.Shift, session core.SessionCode) {
	if s.Period < 4 {
		s.EndTime = "20:00"
		s.EndSeconds = 1200
		s.ShiftEnd = "20:00 / 0:00"
		s.DurationSeconds = s.EndSeconds - s.StartSeconds
		s.Duration = secondsToClock(s.DurationSeconds)
		return
	}

	totalSeconds := 300
	if session == core.SessionPlayoffs {
		totalSeconds = 1200
	}

	maxPeriod := 0
	for _, other := range shifts {
		if other.Period > maxPeriod {
			maxPeriod = other.Period
		}
	}
	maxSeconds := 0
	for _, other := range shifts {
		if other.Period == maxPeriod && other.EndSeconds > maxSeconds {
			maxSeconds = other.EndSeconds
		}
	}

	s.EndSeconds = maxSeconds
	s.EndTime = secondsToClock(maxSeconds)
	s.ShiftEnd = fmt.Sprintf("%s / %s", s.EndTime, secondsToClock(totalSeconds-maxSeconds))
}

// synthesizeGoalieShifts ensures each team has at least one goalie shift
// per period, manufacturing one from the starter (period one) or the
// goalie who last appeared (later periods).
func synthesizeGoalieShifts(shifts []core.Shift, info core.GameInfo, starters map[core.TeamVenue]core.RosterPlayer) []core.Shift {
	periodSet := make(map[int]bool)
	for _, s := range shifts {
		periodSet[s.Period] = true
	}
	periods := make([]int, 0, len(periodSet))
	for p := range periodSet {
		periods = append(periods, p)
	}
	sort.Ints(periods)

	for _, period := range periods {
		maxSeconds := 0
		for _, s := range shifts {
			if s.Period == period && s.EndSeconds > maxSeconds {
				maxSeconds = s.EndSeconds
			}
		}

		for _, venue := range []core.TeamVenue{core.VenueHome, core.VenueAway} {
			var teamGoalies []core.Shift
			hasPeriodGoalie := false
			for _, s := range shifts {
				if s.Goalie == 1 && s.TeamVenue == venue {
					teamGoalies = append(teamGoalies, s)
					if s.Period == period {
						hasPeriodGoalie = true
					}
				}
			}
			if hasPeriodGoalie {
				continue
			}

			var goalieShift core.Shift
			if period == 1 || len(teamGoalies) == 0 {
				if len(teamGoalies) > 0 {
					goalieShift = teamGoalies[0]
				} else {
					starter, ok := starters[venue]
					if !ok {
						continue
					}
					goalieShift = core.Shift{
						Season:     info.Season,
						Session:    info.Session,
						GameID:     info.GameID,
						Team:       starter.Team,
						TeamName:   starter.TeamName,
						TeamVenue:  venue,
						PlayerName: starter.PlayerName,
						EHID:       starter.EHID,
						TeamJersey: starter.TeamJersey,
						Jersey:     starter.Jersey,
						Position:   "G",
						Goalie:     1,
						ShiftCount: 1,
					}
					if venue == core.VenueHome {
						goalieShift.IsHome = 1
					} else {
						goalieShift.IsAway = 1
					}
				}
			} else {
				// The goalie who finished the previous period stays out.
				var prev *core.Shift
				for i := range teamGoalies {
					if teamGoalies[i].Period == period-1 {
						prev = &teamGoalies[i]
					}
				}
				if prev == nil {
					prev = &teamGoalies[len(teamGoalies)-1]
				}
				goalieShift = *prev
			}

			goalieShift.Period = period
			goalieShift.StartTime = "0:00"
			goalieShift.StartSeconds = 0

			if period < 4 {
				goalieShift.ShiftStart = "0:00 / 20:00"
				if maxSeconds < 1200 {
					goalieShift.EndTime = "20:00"
					goalieShift.EndSeconds = 1200
					goalieShift.Duration = "20:00"
					goalieShift.DurationSeconds = 1200
					goalieShift.ShiftEnd = "20:00 / 0:00"
				} else {
					goalieShift.EndSeconds = maxSeconds
					goalieShift.EndTime = secondsToClock(maxSeconds)
					goalieShift.DurationSeconds = maxSeconds
					goalieShift.Duration = secondsToClock(maxSeconds)
					goalieShift.ShiftEnd = goalieShift.EndTime + " / 0:00"
				}
			} else {
				totalSeconds := 300
				goalieShift.ShiftStart = "0:00 / 5:00"
				if info.Session == core.SessionPlayoffs {
					totalSeconds = 1200
					goalieShift.ShiftStart = "0:00 / 20:00"
				}

				end := maxSeconds
				if end > totalSeconds || end == 0 {
					end = totalSeconds
				}
				goalieShift.EndSeconds = end
				goalieShift.EndTime = secondsToClock(end)
				goalieShift.DurationSeconds = end
				goalieShift.Duration = secondsToClock(end)
				goalieShift.ShiftEnd = fmt.Sprintf("%s / %s", goalieShift.EndTime, secondsToClock(totalSeconds-end))
			}

			shifts = append(shifts, goalieShift)
		}
	}

	return shifts
}

// repairZeroGoalieEnds clamps goalie shifts recorded as ending at
// "0:00 / 0:00" to the end of their period.
func repairZeroGoalieEnds(shifts []core.Shift, session core.SessionCode) {
	maxByPeriod := make(map[int]int)
	for _, s := range shifts {
		if s.EndSeconds > maxByPeriod[s.Period] {
			maxByPeriod[s.Period] = s.EndSeconds
		}
	}

	for i := range shifts {
		s := &shifts[i]
		if s.Goalie != 1 || s.ShiftEnd != "0:00 / 0:00" {
			continue
		}

		if s.Period < 4 {
			s.ShiftEnd = "20:00 / 0:00"
			s.EndTime = "20:00"
			s.EndSeconds = 1200
			continue
		}

		totalSeconds := 300
		if session != core.SessionRegular {
			totalSeconds = 1200
		}

		maxSeconds := maxByPeriod[s.Period]
		s.EndSeconds = maxSeconds
		s.EndTime = secondsToClock(maxSeconds)
		s.ShiftEnd = fmt.Sprintf("%s / %s", s.EndTime, secondsToClock(totalSeconds-maxSeconds))
	}
}

// clockSeconds parses "m:ss" into seconds; blanks parse to zero.
func clockSeconds(clock string) int {
	minutes, seconds, found := strings.Cut(strings.TrimSpace(clock), ":")
	if !found {
		return 0
	}
	m, _ := strconv.Atoi(strings.TrimSpace(minutes))
	s, _ := strconv.Atoi(strings.TrimSpace(seconds))
	return m*60 + s
}

// secondsToClock renders seconds as "m:ss".
func secondsToClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
