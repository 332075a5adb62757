package fixes

import (
	"strings"

	"stormlightlabs.org/hockey/internal/core"
)

// replaceDescription rewrites a broken description in place.
func replaceDescription(old, new string) HTMLRowFix {
	return func(r *HTMLRow) {
		if strings.Contains(new, old) && strings.Contains(r.Description, new) {
			return
		}
		r.Description = strings.ReplaceAll(r.Description, old, new)
	}
}

// setDescription overrides the row's description entirely.
func setDescription(desc string) HTMLRowFix {
	return func(r *HTMLRow) { r.Description = desc }
}

// repairClock replaces the corrupt end-of-period time code.
func repairClock(replacement string) HTMLRowFix {
	return func(r *HTMLRow) {
		r.Time = strings.ReplaceAll(r.Time, "-16:0-120:00", replacement)
	}
}

// htmlEventDrops lists events missing from the API feed that carry no
// player reference in the HTML feed either; they are removed at scrape
// time rather than parsed.
var htmlEventDrops = map[core.GameID]map[int]bool{
	2022020194: {134: true},
	2022020673: {208: true},
}

// htmlEventFixes patches raw HTML play-by-play rows before parsing. Index
// -1 applies the fix to every row of the game.
var htmlEventFixes = map[core.GameID]map[int]HTMLRowFix{
	2011020069: {312: replaceDescription("BOS #", "BOS #17 LUCIC ")},
	2011020553: {294: setDescription("FLA #21 BARCH (10 MIN)")},
	2012020660: {150: setDescription(
		"NJD BENCH PS-HOOKING ON BREAKAWAY(0 MIN) NJD SERVED BY: #2 ZIDLICKY DRAWN BY: FLA #42 HOWDEN",
	)},
	2012020018: {-1: func(r *HTMLRow) {
		badNames := [][2]string{
			{"EDM #9", "VAN #9"},
			{"VAN #93", "EDM #93"},
			{"VAN #94", "EDM #94"},
		}
		for _, pair := range badNames {
			r.Description = strings.ReplaceAll(r.Description, pair[0], pair[1])
		}
	}},
	2013020083: {-1: repairClock("5:000:00")},
	2013020274: {-1: repairClock("5:000:00")},
	2013020644: {-1: repairClock("5:000:00")},
	2013020971: {1: func(r *HTMLRow) {
		r.Period = 1
		r.Time = "0:0020:00"
	}},
	2014020120: {341: setDescription(
		"SJS TEAM PLAYER LEAVES BENCH - BENCH(2 MIN), OFF. ZONE SJS SERVED BY: #20 SCOTT DRAWN BY: " +
			"ANA #47 LINDHOLM",
	)},
	2014020600: {328: setDescription("CAR # BLOCKED BY BUF #6 WEBER, WRIST, DEF. ZONE")},
	2014020672: {297: setDescription("NYR #22 HIT PIT #16 SUTTER, DEF. ZONE")},
	2014021118: {-1: repairClock("5:000:00")},
	2015020193: {196: setDescription("FLA #27 BJUGSTAD, WRIST, OFF. ZONE, 16 FT.")},
	2015020904: {-1: repairClock("5:000:00")},
	2015020917: {76: setDescription(
		"WSH #43 WILSON TRIPPING(2 MIN) OFF. ZONE DRAWN BY: MIN #46 SPURGEON",
	)},
	2016020256: {117: setDescription(
		"WSH #14 WILLIAMS ROUGHING(2 MIN) NEU. ZONE DRAWN BY: DET #21 TATAR",
	)},
	2016020625: {311: setDescription(
		"PIT HEAD COACH GAME MISCONDUCT(0 MIN) PIT SERVED BY: #61 OLEKSY, NEU. ZONE",
	)},
	2016021070: {206: setDescription("TOR # HIT BOS # , DEF. ZONE")},
	2016021127: {-1: replaceDescription(
		"BOS #55 ACCIARI ( MIN), DEF. ZONE",
		"BOS #55 ACCIARI MISCONDUCT (10 MIN), DEF. ZONE",
	)},
	2017020463: {-1: repairClock("2:022:58")},
	2017020796: {338: setDescription(
		"DET HEAD COACH GAME MISCONDUCT(0 MIN) DET SERVED BY: #3 JENSEN, NEU. ZONE",
	)},
	2017021161: {253: setDescription(
		"NSH HEAD COACH GAME MISCONDUCT(0 MIN) NSH SERVED BY: #2 BITETTO, NEU. ZONE",
	)},
	2018020009: {231: setDescription(
		"CHI TEAM FACE-OFF VIOLATION(2 MIN) CHI SERVED BY: #12 DEBRINCAT",
	)},
	2018020989: {-1: repairClock("5:000:00")},
	2018020363: {156: setDescription(
		"NJD TEAM TOO MANY MEN/ICE(2 MIN) NJD SERVED BY: #44 WOOD, OFF. ZONE",
	)},
	2018021087: {289: setDescription(
		"TBL TEAM DELAY OF GAME(2 MIN) TBL SERVED BY: #10 MILLER, DEF. ZONE",
	)},
	2018021133: {-1: replaceDescription(
		"WSH TAKEAWAY - #71 CIRELLI", "TBL TAKEAWAY - #71 CIRELLI",
	)},
	2019020179: {259: setDescription(
		"SJS HEAD COACH GAME MISCONDUCT (0 MIN), SERVED BY: #65 KARLSSON, DEF. ZONE",
	)},
	2019020316: {212: setDescription(
		"ANA #6 GUDBRANSON ROUGHING(2 MIN) SERVED BY: #24 ROWNEY, DEF. ZONE DRAWN BY: WSH #21 HATHAWAY",
	)},
	2021020224: {-1: replaceDescription(
		" - MTL #60 BELZILE VS BOS #92 NOSEK",
		"MTL WON NEU. ZONE - MTL #60 BELZILE VS BOS #92 NOSEK",
	)},
	2023020838: {216: setDescription(
		"FLA #17 RODRIGUES HIGH-STICKING(2 MIN), NEU. ZONE DRAWN BY: BUF #72 THOMPSON",
	)},
	2023021279: {264: setDescription(
		"PIT #10 O'CONNOR SLASHING(2 MIN), DEF. ZONE DRAWN BY: BOS #63 MARCHAND",
	)},
}
