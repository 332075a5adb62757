package fixes

import "stormlightlabs.org/hockey/internal/core"

// syntheticShift describes one shift missing from a TH/TV report.
type syntheticShift struct {
	teamJersey string
	shiftCount int
	shiftStart string
	shiftEnd   string
	duration   string
	startTime  string
	endTime    string
}

// missingShifts lists shifts the shift reports dropped. The 2020020860
// overtime is missing both goalies and several skaters.
var missingShifts = map[core.GameID][]syntheticShift{
	2020020860: {
		{"DAL29", 5, "0:00 / 5:00", "4:30 / 0:30", "4:30", "0:00", "4:30"},
		{"CHI60", 4, "0:00 / 5:00", "4:30 / 0:30", "4:30", "0:00", "4:30"},
		{"DAL14", 27, "3:47 / 1:13", "4:30 / 0:30", "00:43", "3:47", "4:30"},
		{"DAL21", 22, "3:47 / 1:13", "4:30 / 0:30", "00:43", "3:47", "4:30"},
		{"DAL3", 28, "3:47 / 1:13", "4:30 / 0:30", "00:43", "3:47", "4:30"},
		{"CHI5", 27, "3:47 / 1:13", "4:30 / 0:30", "00:43", "3:47", "4:30"},
		{"CHI88", 26, "3:51 / 1:09", "4:30 / 0:30", "00:39", "3:51", "4:30"},
		{"CHI12", 26, "4:14 / 0:46", "4:30 / 0:30", "00:16", "4:14", "4:30"},
	},
}

// Shifts returns shifts missing from the game's shift reports, resolved
// against the active roster (keyed by team+jersey).
func Shifts(gameID core.GameID, actives map[string]core.RosterPlayer) []core.Shift {
	specs, ok := missingShifts[gameID]
	if !ok {
		return nil
	}

	shifts := make([]core.Shift, 0, len(specs))
	for _, spec := range specs {
		player, ok := actives[spec.teamJersey]
		if !ok {
			continue
		}

		shifts = append(shifts, core.Shift{
			Season:     player.Season,
			Session:    player.Session,
			GameID:     gameID,
			Team:       player.Team,
			TeamName:   player.TeamName,
			TeamVenue:  player.TeamVenue,
			PlayerName: player.PlayerName,
			EHID:       player.EHID,
			TeamJersey: player.TeamJersey,
			Jersey:     player.Jersey,
			Position:   player.Position,
			ShiftCount: spec.shiftCount,
			Period:     4,
			ShiftStart: spec.shiftStart,
			ShiftEnd:   spec.shiftEnd,
			Duration:   spec.duration,
			StartTime:  spec.startTime,
			EndTime:    spec.endTime,
		})
	}
	return shifts
}
