// Package names canonicalizes player names and derives the dotted text IDs
// used to join the API and HTML feeds. Derivation is deterministic: the same
// (name, position, season, api_id) always yields the same output.
package names

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"stormlightlabs.org/hockey/internal/core"
)

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// StripAccents removes combining marks from s (é → e, ü → u).
func StripAccents(s string) string {
	out, _, err := transform.String(deaccent, s)
	if err != nil {
		return s
	}
	return out
}

// Normalize canonicalizes a raw player name: accents stripped, uppercased,
// whitespace collapsed, common given-name variants folded, and the static
// override table applied.
func Normalize(raw string) string {
	name := strings.ToUpper(strings.TrimSpace(StripAccents(raw)))
	name = strings.Join(strings.Fields(name), " ")

	name = strings.ReplaceAll(name, "ALEXANDRE", "ALEX")
	name = strings.ReplaceAll(name, "ALEXANDER", "ALEX")
	name = strings.ReplaceAll(name, "CHRISTOPHER", "CHRIS")

	if fixed, ok := correctNames[name]; ok {
		return fixed
	}
	return name
}

// EHIDFor derives the dotted text ID from a canonical name: first token,
// a dot, then the remainder of the name.
func EHIDFor(name string) core.EHID {
	first, rest, found := strings.Cut(name, " ")
	if !found {
		return core.EHID(name)
	}
	id := first + "." + rest
	id = strings.ReplaceAll(id, "..", ".")
	return core.EHID(id)
}

// Player holds the attributes the collision table can condition on.
type Player struct {
	EHID     core.EHID
	Position string
	Season   core.Season
	APIID    core.APIPlayerID
}

// duplicate is one entry of the collision table: when the predicate holds
// for a player carrying the base ID, the ID gains a "2" suffix.
type duplicate struct {
	id   core.EHID
	cond func(Player) bool
}

var duplicates = []duplicate{
	{"SEBASTIAN.AHO", func(p Player) bool { return p.Position == "D" }},
	{"COLIN.WHITE", func(p Player) bool { return p.Season >= 20162017 }},
	{"SEAN.COLLINS", func(p Player) bool { return p.Position != "D" }},
	{"ALEX.PICARD", func(p Player) bool { return p.Position != "D" }},
	{"ERIK.GUSTAFSSON", func(p Player) bool { return p.Season >= 20152016 }},
	{"MIKKO.LEHTONEN", func(p Player) bool { return p.Season >= 20202021 }},
	{"NATHAN.SMITH", func(p Player) bool { return p.Season >= 20212022 }},
	{"DANIIL.TARASOV", func(p Player) bool { return p.Position == "G" }},
}

// Dedup applies the collision table to a derived ID. The COLIN. repair
// covers a truncated surname seen in older reports.
func Dedup(p Player) core.EHID {
	id := p.EHID

	for _, d := range duplicates {
		if id == d.id && d.cond(p) {
			id = d.id + "2"
		}
	}

	if id == "COLIN." {
		id = "COLIN.WHITE2"
	}
	return id
}

// ByAPIID overrides a derived ID using the API-ID table, for players whose
// derived text IDs do not match the established identifiers.
func ByAPIID(apiID core.APIPlayerID, derived core.EHID) core.EHID {
	if fixed, ok := correctAPINames[apiID]; ok {
		return fixed
	}
	return derived
}
