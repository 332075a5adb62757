package core

import "strings"

// TeamCodes maps full team names, as printed on the HTML report headings,
// to 3-letter codes matching the API feed.
var TeamCodes = map[string]TeamCode{
	"ANAHEIM DUCKS":         "ANA",
	"ARIZONA COYOTES":       "ARI",
	"ATLANTA THRASHERS":     "ATL",
	"BOSTON BRUINS":         "BOS",
	"BUFFALO SABRES":        "BUF",
	"CALGARY FLAMES":        "CGY",
	"CAROLINA HURRICANES":   "CAR",
	"CHICAGO BLACKHAWKS":    "CHI",
	"COLORADO AVALANCHE":    "COL",
	"COLUMBUS BLUE JACKETS": "CBJ",
	"DALLAS STARS":          "DAL",
	"DETROIT RED WINGS":     "DET",
	"EDMONTON OILERS":       "EDM",
	"FLORIDA PANTHERS":      "FLA",
	"LOS ANGELES KINGS":     "LAK",
	"MINNESOTA WILD":        "MIN",
	"MONTREAL CANADIENS":    "MTL",
	"NASHVILLE PREDATORS":   "NSH",
	"NEW JERSEY DEVILS":     "NJD",
	"NEW YORK ISLANDERS":    "NYI",
	"NEW YORK RANGERS":      "NYR",
	"OTTAWA SENATORS":       "OTT",
	"PHILADELPHIA FLYERS":   "PHI",
	"PITTSBURGH PENGUINS":   "PIT",
	"SAN JOSE SHARKS":       "SJS",
	"SEATTLE KRAKEN":        "SEA",
	"ST. LOUIS BLUES":       "STL",
	"TAMPA BAY LIGHTNING":   "TBL",
	"TORONTO MAPLE LEAFS":   "TOR",
	"UTAH HOCKEY CLUB":      "UTA",
	"UTAH MAMMOTH":          "UTA",
	"VANCOUVER CANUCKS":     "VAN",
	"VEGAS GOLDEN KNIGHTS":  "VGK",
	"WASHINGTON CAPITALS":   "WSH",
	"WINNIPEG JETS":         "WPG",
}

// LegacyTeamAbbrevs maps the report-style abbreviations embedded in event
// descriptions to the canonical API codes.
var LegacyTeamAbbrevs = map[string]string{
	"L.A": "LAK",
	"N.J": "NJD",
	"S.J": "SJS",
	"T.B": "TBL",
	"PHX": "ARI",
}

// CanonicalTeamName repairs report team headings that predate a franchise
// rename.
func CanonicalTeamName(name string) string {
	switch {
	case name == "PHOENIX COYOTES":
		return "ARIZONA COYOTES"
	case strings.Contains(name, "CANADIENS"):
		return "MONTREAL CANADIENS"
	default:
		return name
	}
}
