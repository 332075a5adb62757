package roster

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"stormlightlabs.org/hockey/internal/core"
	"stormlightlabs.org/hockey/internal/fixes"
	"stormlightlabs.org/hockey/internal/htmlutil"
	"stormlightlabs.org/hockey/internal/names"
)

var parentheticalRe = regexp.MustCompile(`\(\s?(.*)\)`)

// rosterTable matches the player tables on the RO report: two active
// tables (away, home) followed, when present, by two scratch tables.
func rosterTable(n *html.Node) bool {
	return n.Data == "table" &&
		htmlutil.Attr(n, "align") == "center" &&
		htmlutil.Attr(n, "border") == "0" &&
		htmlutil.Attr(n, "cellpadding") == "0" &&
		htmlutil.Attr(n, "cellspacing") == "0" &&
		htmlutil.Attr(n, "width") == "100%"
}

// FromHTML extracts the active and scratched rosters, with starters
// flagged, from the RO report page.
func FromHTML(doc string, info core.GameInfo) ([]core.RosterPlayer, error) {
	root, err := htmlutil.Parse(doc)
	if err != nil {
		return nil, fmt.Errorf("roster report: %w", err)
	}

	headings := htmlutil.FindAll(root, func(n *html.Node) bool {
		return n.Data == "td" && htmlutil.HasClass(n, "teamHeading")
	})
	if len(headings) < 2 {
		return nil, fmt.Errorf("roster report: team headings not found")
	}

	teamNames := map[core.TeamVenue]string{
		core.VenueAway: core.CanonicalTeamName(strings.ToUpper(names.StripAccents(htmlutil.Text(headings[0])))),
		core.VenueHome: core.CanonicalTeamName(strings.ToUpper(names.StripAccents(htmlutil.Text(headings[1])))),
	}

	tables := htmlutil.FindAll(root, rosterTable)
	if len(tables) < 2 {
		return nil, fmt.Errorf("roster report: player tables not found")
	}

	venues := []core.TeamVenue{core.VenueAway, core.VenueHome}

	var players []core.RosterPlayer

	for idx, venue := range venues {
		starters := boldStarters(tables[idx])

		rows, ok := reshapeCells(tables[idx])
		if !ok {
			continue
		}

		for _, row := range rows {
			p, ok := parsePlayerRow(row, venue, teamNames[venue], core.StatusActive)
			if !ok {
				continue
			}
			if starters[p.PlayerName] {
				p.Starter = 1
			}
			players = append(players, p)
		}
	}

	// Scratch tables follow the active tables when the report carries them.
	if len(tables) > 2 {
		for idx, venue := range venues {
			if idx+2 >= len(tables) {
				break
			}
			rows, ok := reshapeCells(tables[idx+2])
			if !ok {
				continue
			}
			for _, row := range rows {
				p, ok := parsePlayerRow(row, venue, teamNames[venue], core.StatusScratch)
				if !ok {
					continue
				}
				players = append(players, p)
			}
		}
	}

	finalized := make([]core.RosterPlayer, 0, len(players))
	for _, p := range players {
		fixes.HTMLRosters(info.GameID, &p)

		p.Season = info.Season
		p.Session = info.Session
		p.GameID = info.GameID

		p.PlayerName = names.Normalize(p.PlayerName)
		ehID := names.EHIDFor(p.PlayerName)
		p.EHID = names.Dedup(names.Player{
			EHID:     ehID,
			Position: p.Position,
			Season:   p.Season,
		})

		p.Team = core.TeamCodes[p.TeamName]
		p.TeamJersey = string(p.Team) + strconv.Itoa(p.Jersey)

		finalized = append(finalized, p)
	}

	return finalized, nil
}

// reshapeCells flattens a table's cells into 3-wide (or 2-wide when the
// position column is missing) rows, dropping the header row. Tables whose
// header carries no Name column are not player tables.
func reshapeCells(table *html.Node) ([][]string, bool) {
	cells := htmlutil.FindAllTag(table, "td")

	texts := make([]string, len(cells))
	for i, cell := range cells {
		texts[i] = strings.TrimSpace(htmlutil.CellText(cell))
	}

	width := 3
	if len(texts)%3 != 0 && len(texts)%2 == 0 {
		width = 2
	}
	if len(texts) < width*2 {
		return nil, false
	}

	header := texts[:width]
	hasName := false
	for _, h := range header {
		if h == "Name" || h == "Nom/Name" {
			hasName = true
		}
	}
	if !hasName {
		return nil, false
	}

	var rows [][]string
	for i := width; i+width <= len(texts); i += width {
		rows = append(rows, texts[i:i+width])
	}
	return rows, true
}

// boldStarters collects the names rendered bold in an active table; bold
// rows are the starting lineup.
func boldStarters(table *html.Node) map[string]bool {
	bolds := htmlutil.FindAll(table, func(n *html.Node) bool {
		return n.Data == "td" && htmlutil.Attr(n, "class") == "bold"
	})

	starters := make(map[string]bool)
	for i := 2; i < len(bolds); i += 3 {
		name := cleanPlayerName(htmlutil.CellText(bolds[i]))
		starters[name] = true
	}
	return starters
}

func parsePlayerRow(row []string, venue core.TeamVenue, teamName, status string) (core.RosterPlayer, bool) {
	var jerseyText, position, name string
	switch len(row) {
	case 3:
		jerseyText, position, name = row[0], row[1], row[2]
	case 2:
		jerseyText, name = row[0], row[1]
	default:
		return core.RosterPlayer{}, false
	}

	jersey, err := strconv.Atoi(strings.TrimSpace(jerseyText))
	if err != nil {
		return core.RosterPlayer{}, false
	}

	name = cleanPlayerName(name)
	if name == "" {
		return core.RosterPlayer{}, false
	}

	return core.RosterPlayer{
		TeamName:   teamName,
		TeamVenue:  venue,
		PlayerName: name,
		Jersey:     jersey,
		Position:   position,
		Status:     status,
	}, true
}

// cleanPlayerName drops captaincy parentheticals and normalizes case.
func cleanPlayerName(raw string) string {
	name := parentheticalRe.ReplaceAllString(raw, "")
	name = strings.ToUpper(strings.TrimSpace(name))
	return names.StripAccents(name)
}
