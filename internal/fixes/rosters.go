package fixes

import "stormlightlabs.org/hockey/internal/core"

// RosterFix mutates a roster row in place.
type RosterFix func(p *core.RosterPlayer)

// htmlRosterFixes patches the HTML roster report, keyed by game ID and
// canonical player name.
var htmlRosterFixes = map[core.GameID]map[string]RosterFix{
	// The report lists these players as active; they were scratched.
	2019020665: {
		"ROSS JOHNSTON":   markScratch,
		"SEBASTIAN AHO":   markScratch,
		"CONNOR CARRICK":  markScratch,
		"JESPER BRATT":    markScratch,
		"JACK HUGHES":     markScratch,
	},
}

func markScratch(p *core.RosterPlayer) { p.Status = core.StatusScratch }

// rosterJoinFixes patches the merged roster, keyed by game ID and
// team+jersey, for players the API roster is missing an ID for.
var rosterJoinFixes = map[core.GameID]map[string]RosterFix{
	2015020508: {
		"ANA5": func(p *core.RosterPlayer) {
			p.APIID = 8473560
			p.Headshot = "https://assets.nhle.com/mugs/nhl/20152016/ANA/8473560.png"
		},
	},
	2015021197: {
		"LAK13": func(p *core.RosterPlayer) {
			p.APIID = 8475160
			p.Headshot = "https://assets.nhle.com/mugs/nhl/20152016/LAK/8475160.png"
		},
	},
}

// APIRosterAdditions returns players missing from the rosterSpots feed for
// a game. Nathan Horton appears in the 2013020971 HTML reports but not in
// the API roster.
func APIRosterAdditions(gameID core.GameID, season core.Season, session core.SessionCode) []core.RosterPlayer {
	if gameID != 2013020971 {
		return nil
	}
	return []core.RosterPlayer{
		{
			Season:     season,
			Session:    session,
			GameID:     gameID,
			Team:       "CBJ",
			TeamVenue:  core.VenueAway,
			PlayerName: "NATHAN HORTON",
			FirstName:  "NATHAN",
			LastName:   "HORTON",
			APIID:      8470596,
			EHID:       "NATHAN.HORTON",
			TeamJersey: "CBJ8",
			Jersey:     8,
			Position:   "R",
		},
	}
}
