// Package roster extracts player rosters from the gamecenter feed and the
// RO HTML report, and joins them into the per-game roster used for player
// resolution everywhere else in the pipeline.
package roster

import (
	"sort"
	"strconv"

	"stormlightlabs.org/hockey/internal/core"
	"stormlightlabs.org/hockey/internal/fixes"
	"stormlightlabs.org/hockey/internal/names"
	"stormlightlabs.org/hockey/internal/nhl"
)

// FromAPI builds roster entries from the gamecenter rosterSpots feed.
func FromAPI(resp *nhl.GamecenterResponse, info core.GameInfo) []core.RosterPlayer {
	teamByID := map[int]struct {
		venue core.TeamVenue
		team  core.TeamCode
	}{
		info.HomeTeamID: {core.VenueHome, info.HomeTeam},
		info.AwayTeamID: {core.VenueAway, info.AwayTeam},
	}

	players := make([]core.RosterPlayer, 0, len(resp.RosterSpots)+1)

	for _, spot := range resp.RosterSpots {
		firstName := names.Normalize(spot.FirstName.Default)
		lastName := names.Normalize(spot.LastName.Default)
		playerName := names.Normalize(firstName + " " + lastName)

		ehID := names.EHIDFor(playerName)
		ehID = names.ByAPIID(core.APIPlayerID(spot.PlayerID), ehID)

		team := teamByID[spot.TeamID]

		players = append(players, core.RosterPlayer{
			Season:     info.Season,
			Session:    info.Session,
			GameID:     info.GameID,
			Team:       team.team,
			TeamVenue:  team.venue,
			PlayerName: playerName,
			FirstName:  firstName,
			LastName:   lastName,
			APIID:      core.APIPlayerID(spot.PlayerID),
			EHID:       ehID,
			TeamJersey: string(team.team) + strconv.Itoa(spot.SweaterNumber),
			Jersey:     spot.SweaterNumber,
			Position:   spot.PositionCode,
			Headshot:   spot.Headshot,
		})
	}

	players = append(players, fixes.APIRosterAdditions(info.GameID, info.Season, info.Session)...)

	return players
}

// Merge joins HTML roster entries with API IDs by team+jersey. Scratches
// are absent from the API roster and keep a zero ID. Roster-join fixes
// patch games where the API roster itself is missing a player ID.
func Merge(htmlRosters, apiRosters []core.RosterPlayer) []core.RosterPlayer {
	apiByJersey := make(map[string]core.RosterPlayer, len(apiRosters))
	for _, p := range apiRosters {
		apiByJersey[p.TeamJersey] = p
	}

	merged := make([]core.RosterPlayer, 0, len(htmlRosters))
	for _, p := range htmlRosters {
		if p.Status == core.StatusActive {
			if api, ok := apiByJersey[p.TeamJersey]; ok {
				p.APIID = api.APIID
				p.Headshot = api.Headshot
			}
		}
		fixes.Rosters(p.GameID, &p)
		merged = append(merged, p)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].TeamVenue != merged[j].TeamVenue {
			return merged[i].TeamVenue < merged[j].TeamVenue
		}
		return merged[i].Jersey < merged[j].Jersey
	})

	return merged
}

// ActivesByJersey indexes active players by team+jersey.
func ActivesByJersey(roster []core.RosterPlayer) map[string]core.RosterPlayer {
	return byJersey(roster, core.StatusActive)
}

// ScratchesByJersey indexes scratched players by team+jersey.
func ScratchesByJersey(roster []core.RosterPlayer) map[string]core.RosterPlayer {
	return byJersey(roster, core.StatusScratch)
}

// ByAPIID indexes players by API ID.
func ByAPIID(roster []core.RosterPlayer) map[core.APIPlayerID]core.RosterPlayer {
	out := make(map[core.APIPlayerID]core.RosterPlayer, len(roster))
	for _, p := range roster {
		out[p.APIID] = p
	}
	return out
}

func byJersey(roster []core.RosterPlayer, status string) map[string]core.RosterPlayer {
	out := make(map[string]core.RosterPlayer)
	for _, p := range roster {
		if p.Status == status {
			out[p.TeamJersey] = p
		}
	}
	return out
}
