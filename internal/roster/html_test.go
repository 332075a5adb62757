package roster

import (
	"strings"
	"testing"

	"stormlightlabs.org/hockey/internal/core"
)

const rosterDoc = `
<html><body>
<table><tr>
<td align="center" class="teamHeading + border" width="50%">CHICAGO BLACKHAWKS</td>
<td align="center" class="teamHeading + border" width="50%">DALLAS STARS</td>
</tr></table>

<table align="center" border="0" cellpadding="0" cellspacing="0" width="100%">
<tr><td class="heading">#</td><td class="heading">Pos</td><td class="heading">Name</td></tr>
<tr><td class="bold">88</td><td class="bold">R</td><td class="bold">PATRICK KANE (A)</td></tr>
<tr><td>19</td><td>C</td><td>JONATHAN TOEWS (C)</td></tr>
</table>

<table align="center" border="0" cellpadding="0" cellspacing="0" width="100%">
<tr><td class="heading">#</td><td class="heading">Pos</td><td class="heading">Name</td></tr>
<tr><td class="bold">14</td><td class="bold">L</td><td class="bold">JAMIE BENN (C)</td></tr>
<tr><td>29</td><td>G</td><td>JAKE OETTINGER</td></tr>
</table>

<table align="center" border="0" cellpadding="0" cellspacing="0" width="100%">
<tr><td class="heading">#</td><td class="heading">Pos</td><td class="heading">Name</td></tr>
<tr><td>11</td><td>C</td><td>COLE GUTTMAN</td></tr>
</table>

<table align="center" border="0" cellpadding="0" cellspacing="0" width="100%">
<tr><td class="heading">#</td><td class="heading">Pos</td><td class="heading">Name</td></tr>
<tr><td>21</td><td>C</td><td>JASON ROBERTSON</td></tr>
</table>
</body></html>
`

func rosterInfo() core.GameInfo {
	return core.GameInfo{
		GameID:   2022020999,
		Season:   20222023,
		Session:  core.SessionRegular,
		HomeTeam: "DAL",
		AwayTeam: "CHI",
	}
}

func TestFromHTML(t *testing.T) {
	players, err := FromHTML(rosterDoc, rosterInfo())
	if err != nil {
		t.Fatal(err)
	}

	byJersey := make(map[string]core.RosterPlayer)
	for _, p := range players {
		byJersey[p.TeamJersey] = p
	}

	t.Run("actives parsed with teams resolved", func(t *testing.T) {
		kane, ok := byJersey["CHI88"]
		if !ok {
			t.Fatal("expected CHI88 in roster")
		}
		if kane.PlayerName != "PATRICK KANE" {
			t.Errorf("expected captaincy parenthetical stripped, got %q", kane.PlayerName)
		}
		if kane.Team != "CHI" || kane.TeamVenue != core.VenueAway {
			t.Errorf("unexpected team %s / %s", kane.Team, kane.TeamVenue)
		}
		if kane.EHID != "PATRICK.KANE" {
			t.Errorf("unexpected eh id %s", kane.EHID)
		}
		if kane.Status != core.StatusActive {
			t.Errorf("expected active, got %s", kane.Status)
		}
	})

	t.Run("bold rows are starters", func(t *testing.T) {
		if byJersey["CHI88"].Starter != 1 {
			t.Error("expected KANE flagged as a starter")
		}
		if byJersey["CHI19"].Starter != 0 {
			t.Error("expected TOEWS not flagged")
		}
	})

	t.Run("scratch tables parsed", func(t *testing.T) {
		guttman, ok := byJersey["CHI11"]
		if !ok {
			t.Fatal("expected CHI11 scratch in roster")
		}
		if guttman.Status != core.StatusScratch {
			t.Errorf("expected scratch, got %s", guttman.Status)
		}
		if byJersey["DAL21"].Status != core.StatusScratch {
			t.Error("expected DAL21 scratched")
		}
	})

	t.Run("missing tables error", func(t *testing.T) {
		if _, err := FromHTML("<html><body></body></html>", rosterInfo()); err == nil {
			t.Error("expected an error for a report without roster tables")
		}
	})
}

func TestMerge(t *testing.T) {
	info := rosterInfo()

	htmlRosters, err := FromHTML(rosterDoc, info)
	if err != nil {
		t.Fatal(err)
	}

	apiRosters := []core.RosterPlayer{
		{GameID: info.GameID, Team: "CHI", TeamJersey: "CHI88", APIID: 8474141, Headshot: "https://assets.nhle.com/mugs/8474141.png"},
		{GameID: info.GameID, Team: "CHI", TeamJersey: "CHI19", APIID: 8473604},
		{GameID: info.GameID, Team: "DAL", TeamJersey: "DAL14", APIID: 8473994},
		{GameID: info.GameID, Team: "DAL", TeamJersey: "DAL29", APIID: 8479979},
	}

	merged := Merge(htmlRosters, apiRosters)

	byJersey := make(map[string]core.RosterPlayer)
	for _, p := range merged {
		byJersey[p.TeamJersey] = p
	}

	if byJersey["CHI88"].APIID != 8474141 {
		t.Errorf("expected api id joined, got %d", byJersey["CHI88"].APIID)
	}
	if !strings.HasPrefix(byJersey["CHI88"].Headshot, "https://") {
		t.Error("expected headshot joined")
	}
	if byJersey["CHI11"].APIID != 0 {
		t.Errorf("expected scratch to keep zero api id, got %d", byJersey["CHI11"].APIID)
	}
}
