package names

import "stormlightlabs.org/hockey/internal/core"

// correctNames maps misspelled or alternate report names to their canonical
// forms. Keys are post-normalization (accent-stripped, uppercased).
var correctNames = map[string]string{
	"AJ GREER":             "A.J. GREER",
	"ANTHONY DEANGELO":     "TONY DEANGELO",
	"BJ CROMBEEN":          "B.J. CROMBEEN",
	"BRADLEY MARCHAND":     "BRAD MARCHAND",
	"CAL PETERSEN":         "CALVIN PETERSEN",
	"CHASE DELEO":          "CHASE DE LEO",
	"DAN CLEARY":           "DANNY CLEARY",
	"DANIEL CARCILLO":      "DAN CARCILLO",
	"EGOR SHARANGOVICH":    "YEGOR SHARANGOVICH",
	"EVGENII DADONOV":      "EVGENY DADONOV",
	"FREDDY MODIN":         "FREDRIK MODIN",
	"GERRY MAYHEW":         "GERALD MAYHEW",
	"JEAN-FRANCOIS BERUBE": "J-F BERUBE",
	"JOSHUA MORRISSEY":    "JOSH MORRISSEY",
	"J T COMPHER":         "J.T. COMPHER",
	"JT COMPHER":          "J.T. COMPHER",
	"JT BROWN":            "J.T. BROWN",
	"MATHEW DUMBA":        "MATT DUMBA",
	"MATTHEW BENNING":     "MATT BENNING",
	"MATTHEW IRWIN":       "MATT IRWIN",
	"MATTHEW MURRAY":      "MATT MURRAY",
	"MATTHEW NIETO":       "MATT NIETO",
	"MAXIME TALBOT":       "MAX TALBOT",
	"MAXWELL REINHART":    "MAX REINHART",
	"MICHAEL CAMMALLERI":  "MIKE CAMMALLERI",
	"MICHAEL FERLAND":     "MICHEAL FERLAND",
	"MICHAEL MATHESON":    "MIKE MATHESON",
	"MITCHELL MARNER":     "MITCH MARNER",
	"NICOLAS PETAN":       "NIC PETAN",
	"NICKLAS GROSSMAN":    "NICKLAS GROSSMANN",
	"PA PARENTEAU":        "P.A. PARENTEAU",
	"PIERRE-ALEX PARENTEAU": "P.A. PARENTEAU",
	"QUINTIN HUGHES":      "QUINN HUGHES",
	"SAMMY BLAIS":         "SAMUEL BLAIS",
	"STEVEN KAMPFER":      "STEVE KAMPFER",
	"TJ GALIARDI":         "T.J. GALIARDI",
	"TJ OSHIE":            "T.J. OSHIE",
	"TOMMY NOVAK":         "THOMAS NOVAK",
	"VINNY LECAVALIER":    "VINCENT LECAVALIER",
	"WILL BORGEN":         "WILLIAM BORGEN",
	"ZACH SANFORD":        "ZACHARY SANFORD",
	"ZACHARY ASTON-REESE": "ZACH ASTON-REESE",
	"ZACHARY WERENSKI":    "ZACH WERENSKI",
}

// correctAPINames overrides derived text IDs for API player IDs whose
// derived form collides with or diverges from the established identifier.
var correctAPINames = map[core.APIPlayerID]core.EHID{
	8474744: "SEBASTIAN.AHO2",   // defenseman, not the CAR forward
	8480222: "ERIK.GUSTAFSSON2", // post-2015 Erik Gustafsson
	8478444: "COLIN.WHITE2",
	8480145: "NATHAN.SMITH2",
	8481033: "DANIIL.TARASOV2",
	8481692: "MIKKO.LEHTONEN2",
	8476525: "ALEX.PICARD2",
	8476779: "SEAN.COLLINS2",
}
