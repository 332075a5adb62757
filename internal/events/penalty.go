package events

import (
	"strconv"
	"strings"

	"stormlightlabs.org/hockey/internal/core"
)

// mungePenalty extracts the penalized/drawing/serving players and the
// canonical penalty label from a PENL description.
func mungePenalty(e *core.Event, row htmlRow, actives map[string]core.RosterPlayer) {
	desc := row.description

	teamServed := strings.Contains(desc, "TEAM") && strings.Contains(desc, "SERVED BY")
	headCoach := strings.Contains(desc, "HEAD COACH")

	if teamServed || headCoach {
		e.Player1 = core.EventPlayer{Name: core.SentinelBench, EHID: core.SentinelBench}

		name, ok := servedByJersey(desc)
		if !ok {
			name, ok = drawnByJersey(desc)
		}
		if !ok {
			return
		}

		p, found := actives[name]
		if !found {
			return
		}
		e.Player2 = core.EventPlayer{Name: p.PlayerName, EHID: p.EHID, TeamJersey: p.TeamJersey, Position: p.Position}
	}

	if strings.Contains(desc, "SERVED BY") && strings.Contains(desc, "DRAWN BY") {
		if name, ok := drawnByJersey(desc); ok {
			if p, found := actives[name]; found {
				e.Player2 = core.EventPlayer{Name: p.PlayerName, EHID: p.EHID, TeamJersey: p.TeamJersey, Position: p.Position}

				if e.Player1.EHID == e.Player2.EHID {
					e.Player1 = core.EventPlayer{Name: core.SentinelBench, EHID: core.SentinelBench}
				}

				if served, ok := servedByJersey(desc); ok {
					if sp, found := actives[served]; found {
						e.Player3 = core.EventPlayer{Name: sp.PlayerName, EHID: sp.EHID, TeamJersey: sp.TeamJersey, Position: sp.Position}

						if strings.Contains(desc, "TEAM") || headCoach {
							e.Player2, e.Player3 = e.Player3, e.Player2
						}
					}
				}
			}
		}
	} else if strings.Contains(desc, "SERVED BY") {
		if name, ok := servedByJersey(desc); ok {
			if p, found := actives[name]; found {
				e.Player2 = core.EventPlayer{Name: p.PlayerName, EHID: p.EHID, TeamJersey: p.TeamJersey, Position: p.Position}
			}
		}
	} else if strings.Contains(desc, "DRAWN BY") {
		if name, ok := drawnByJersey(desc); ok {
			if p, found := actives[name]; found {
				e.Player2 = core.EventPlayer{Name: p.PlayerName, EHID: p.EHID, TeamJersey: p.TeamJersey, Position: p.Position}
			}
		}
	}

	if e.Player1.Empty() {
		e.Player1 = core.EventPlayer{Name: core.SentinelBench, EHID: core.SentinelBench}
	}

	if m := penaltyLengthRe.FindStringSubmatch(desc); m != nil {
		length, _ := strconv.Atoi(m[1])
		e.PenaltyLength = core.IntPtr(length)
	}

	m := penaltyRe.FindStringSubmatch(desc)
	if m == nil {
		return
	}
	e.Penalty = canonicalPenalty(strings.ToUpper(m[1]), desc)
}

func servedByJersey(desc string) (string, bool) {
	m := servedRe.FindStringSubmatch(desc)
	if m == nil {
		return "", false
	}
	return m[1] + m[2], true
}

func drawnByJersey(desc string) (string, bool) {
	m := drawnRe.FindStringSubmatch(desc)
	if m == nil {
		return "", false
	}
	return m[1] + m[2], true
}

// canonicalPenalty maps the extracted label plus description context to the
// canonical penalty name. The cascade is ordered; broader substring checks
// must not run before narrower ones.
func canonicalPenalty(extracted, desc string) string {
	has := func(subs ...string) bool {
		for _, sub := range subs {
			if !strings.Contains(desc, sub) {
				return false
			}
		}
		return true
	}

	switch {
	case has("INTERFERENCE", "GOALKEEPER"):
		return "GOALKEEPER INTERFERENCE"
	case has("CROSS", "CHECKING"):
		return "CROSS-CHECKING"
	case has("DELAY", "GAME", "PUCK OVER"):
		return "DELAY OF GAME - PUCK OVER GLASS"
	case has("DELAY", "GAME", "FO VIOL"):
		return "DELAY OF GAME - FACEOFF VIOLATION"
	case has("DELAY", "GAME", "EQUIPMENT"):
		return "DELAY OF GAME - EQUIPMENT"
	case has("DELAY", "GAME", "UNSUCC"):
		return "DELAY OF GAME - UNSUCCESSFUL CHALLENGE"
	case has("DELAY", "GAME", "SMOTHERING"):
		return "DELAY OF GAME - SMOTHERING THE PUCK"
	case has("ILLEGAL", "CHECK", "HEAD"):
		return "ILLEGAL CHECK TO HEAD"
	case has("HIGH-STICKING", "- DOUBLE"), has("HI-STICKING", "- DOUBLE"):
		return "HIGH-STICKING - DOUBLE MINOR"
	case has("GAME MISCONDUCT"):
		return "GAME MISCONDUCT"
	case has("MATCH PENALTY"):
		return "MATCH PENALTY"
	case has("NET", "DISPLACED"):
		return "DISPLACED NET"
	case has("THROW", "OBJECT", "AT PUCK"):
		return "THROWING OBJECT AT PUCK"
	case has("INSTIGATOR", "FACE SHIELD"):
		return "INSTIGATOR - FACE SHIELD"
	case has("GOALIE LEAVE CREASE"):
		return "LEAVING THE CREASE"
	case has("REMOVING", "HELMET"):
		return "REMOVING OPPONENT HELMET"
	case has("BROKEN", "STICK"):
		return "HOLDING BROKEN STICK"
	case has("HOOKING", "BREAKAWAY"):
		return "HOOKING - BREAKAWAY"
	case has("HOLDING", "BREAKAWAY"):
		return "HOLDING - BREAKAWAY"
	case has("TRIPPING", "BREAKAWAY"):
		return "TRIPPING - BREAKAWAY"
	case has("SLASH", "BREAKAWAY"):
		return "SLASHING - BREAKAWAY"
	case has("TEAM TOO MANY"):
		return "TOO MANY MEN ON THE ICE"
	case has("HOLDING", "STICK"):
		return "HOLDING THE STICK"
	case has("THROWING", "STICK"):
		return "THROWING STICK"
	case has("CLOSING", "HAND"):
		return "CLOSING HAND ON PUCK"
	case has("ABUSE", "OFFICIALS"):
		return "ABUSE OF OFFICIALS"
	case has("UNSPORTSMANLIKE CONDUCT"):
		return "UNSPORTSMANLIKE CONDUCT"
	case has("PUCK", "THROWN", "FWD"):
		return "PUCK THROWN FORWARD - GOALKEEPER"
	case has("DELAY", "GAME"):
		return "DELAY OF GAME"
	case extracted == "MISCONDUCT":
		return "GAME MISCONDUCT"
	default:
		return extracted
	}
}
