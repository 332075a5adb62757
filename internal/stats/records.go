// Package stats aggregates the play-by-play stream into individual,
// on-ice, joined, line, and team views. Every view follows the same shape:
// filter rows by event class, group by a composable key, sum a fixed stat
// vocabulary, then optionally derive per-60 rates and share percentages.
package stats

import (
	"stormlightlabs.org/hockey/internal/core"
)

// Level selects the aggregation granularity.
type Level string

// Aggregation levels.
const (
	LevelPeriod  Level = "period"
	LevelGame    Level = "game"
	LevelSession Level = "session"
	LevelSeason  Level = "season"
)

// Options compose the grouping key. Level is always applied; the toggles
// add strength state, score state, teammate, and opposition splits.
type Options struct {
	Level         Level
	StrengthState bool
	Score         bool
	Teammates     bool
	Opposition    bool
}

// DefaultOptions aggregates to game level with strength states.
func DefaultOptions() Options {
	return Options{Level: LevelGame, StrengthState: true}
}

// Key is the composable grouping key. Fields outside the selected
// dimensions stay zero so rows collapse together.
type Key struct {
	Season   core.Season
	Session  core.SessionCode
	GameID   core.GameID
	GameDate string

	Player   string
	EHID     core.EHID
	APIID    string
	Position string

	Team    core.TeamCode
	OppTeam core.TeamCode

	Period        int
	StrengthState string
	ScoreState    string

	Forwards       string
	ForwardsEHID   string
	ForwardsAPIID  string
	Defense        string
	DefenseEHID    string
	DefenseAPIID   string
	OwnGoalie      string
	OwnGoalieEHID  string
	OwnGoalieAPIID string

	OppForwards      string
	OppForwardsEHID  string
	OppForwardsAPIID string
	OppDefense       string
	OppDefenseEHID   string
	OppDefenseAPIID  string
	OppGoalie        string
	OppGoalieEHID    string
	OppGoalieAPIID   string
}

// IndCounters is the individual stat vocabulary summed by the ind view.
type IndCounters struct {
	G      float64 `csv:"g" json:"g"`
	IHDG   float64 `csv:"ihdg" json:"ihdg"`
	A1     float64 `csv:"a1" json:"a1"`
	A2     float64 `csv:"a2" json:"a2"`
	IxG    float64 `csv:"ixg" json:"ixg"`
	A1xG   float64 `csv:"a1_xg" json:"a1_xg"`
	A2xG   float64 `csv:"a2_xg" json:"a2_xg"`
	GAdj   float64 `csv:"g_adj" json:"g_adj"`
	IxGAdj float64 `csv:"ixg_adj" json:"ixg_adj"`
	ISF    float64 `csv:"isf" json:"isf"`
	ISFAdj float64 `csv:"isf_adj" json:"isf_adj"`
	IHDSF  float64 `csv:"ihdsf" json:"ihdsf"`
	IMSF   float64 `csv:"imsf" json:"imsf"`
	IHDM   float64 `csv:"ihdm" json:"ihdm"`
	IFF    float64 `csv:"iff" json:"iff"`
	IFFAdj float64 `csv:"iff_adj" json:"iff_adj"`
	IHDF   float64 `csv:"ihdf" json:"ihdf"`
	ISB    float64 `csv:"isb" json:"isb"`
	ICF    float64 `csv:"icf" json:"icf"`
	ICFAdj float64 `csv:"icf_adj" json:"icf_adj"`
	IBS    float64 `csv:"ibs" json:"ibs"`
	IGive  float64 `csv:"igive" json:"igive"`
	ITake  float64 `csv:"itake" json:"itake"`
	IHF    float64 `csv:"ihf" json:"ihf"`
	IHT    float64 `csv:"iht" json:"iht"`
	IFOW   float64 `csv:"ifow" json:"ifow"`
	IFOL   float64 `csv:"ifol" json:"ifol"`
	IOZFW  float64 `csv:"iozfw" json:"iozfw"`
	IOZFL  float64 `csv:"iozfl" json:"iozfl"`
	INZFW  float64 `csv:"inzfw" json:"inzfw"`
	INZFL  float64 `csv:"inzfl" json:"inzfl"`
	IDZFW  float64 `csv:"idzfw" json:"idzfw"`
	IDZFL  float64 `csv:"idzfl" json:"idzfl"`
	IPent0  float64 `csv:"ipent0" json:"ipent0"`
	IPent2  float64 `csv:"ipent2" json:"ipent2"`
	IPent4  float64 `csv:"ipent4" json:"ipent4"`
	IPent5  float64 `csv:"ipent5" json:"ipent5"`
	IPent10 float64 `csv:"ipent10" json:"ipent10"`
	IPend0  float64 `csv:"ipend0" json:"ipend0"`
	IPend2  float64 `csv:"ipend2" json:"ipend2"`
	IPend4  float64 `csv:"ipend4" json:"ipend4"`
	IPend5  float64 `csv:"ipend5" json:"ipend5"`
	IPend10 float64 `csv:"ipend10" json:"ipend10"`
}

// IndividualStats is the per-player individual view (the "ind" frame).
type IndividualStats struct {
	Key
	IndCounters
}

// OnIceCounters is the shared on-ice stat vocabulary summed by the oi,
// lines, and team views.
type OnIceCounters struct {
	TOI float64 `csv:"toi" json:"toi"`

	GF    float64 `csv:"gf" json:"gf"`
	GFAdj float64 `csv:"gf_adj" json:"gf_adj"`
	GA    float64 `csv:"ga" json:"ga"`
	GAAdj float64 `csv:"ga_adj" json:"ga_adj"`
	HDGF  float64 `csv:"hdgf" json:"hdgf"`
	HDGA  float64 `csv:"hdga" json:"hdga"`
	XGF    float64 `csv:"xgf" json:"xgf"`
	XGFAdj float64 `csv:"xgf_adj" json:"xgf_adj"`
	XGA    float64 `csv:"xga" json:"xga"`
	XGAAdj float64 `csv:"xga_adj" json:"xga_adj"`
	SF    float64 `csv:"sf" json:"sf"`
	SFAdj float64 `csv:"sf_adj" json:"sf_adj"`
	SA    float64 `csv:"sa" json:"sa"`
	SAAdj float64 `csv:"sa_adj" json:"sa_adj"`
	HDSF  float64 `csv:"hdsf" json:"hdsf"`
	HDSA  float64 `csv:"hdsa" json:"hdsa"`
	FF    float64 `csv:"ff" json:"ff"`
	FFAdj float64 `csv:"ff_adj" json:"ff_adj"`
	FA    float64 `csv:"fa" json:"fa"`
	FAAdj float64 `csv:"fa_adj" json:"fa_adj"`
	HDFF  float64 `csv:"hdff" json:"hdff"`
	HDFA  float64 `csv:"hdfa" json:"hdfa"`
	CF    float64 `csv:"cf" json:"cf"`
	CFAdj float64 `csv:"cf_adj" json:"cf_adj"`
	CA    float64 `csv:"ca" json:"ca"`
	CAAdj float64 `csv:"ca_adj" json:"ca_adj"`
	BSF   float64 `csv:"bsf" json:"bsf"`
	BSA   float64 `csv:"bsa" json:"bsa"`
	MSF   float64 `csv:"msf" json:"msf"`
	MSA   float64 `csv:"msa" json:"msa"`
	HDMSF float64 `csv:"hdmsf" json:"hdmsf"`
	HDMSA float64 `csv:"hdmsa" json:"hdmsa"`
	HF    float64 `csv:"hf" json:"hf"`
	HT    float64 `csv:"ht" json:"ht"`

	OZF float64 `csv:"ozf" json:"ozf"`
	NZF float64 `csv:"nzf" json:"nzf"`
	DZF float64 `csv:"dzf" json:"dzf"`
	FOW float64 `csv:"fow" json:"fow"`
	FOL float64 `csv:"fol" json:"fol"`
	OZFW float64 `csv:"ozfw" json:"ozfw"`
	OZFL float64 `csv:"ozfl" json:"ozfl"`
	NZFW float64 `csv:"nzfw" json:"nzfw"`
	NZFL float64 `csv:"nzfl" json:"nzfl"`
	DZFW float64 `csv:"dzfw" json:"dzfw"`
	DZFL float64 `csv:"dzfl" json:"dzfl"`

	Pent0  float64 `csv:"pent0" json:"pent0"`
	Pent2  float64 `csv:"pent2" json:"pent2"`
	Pent4  float64 `csv:"pent4" json:"pent4"`
	Pent5  float64 `csv:"pent5" json:"pent5"`
	Pent10 float64 `csv:"pent10" json:"pent10"`
	Pend0  float64 `csv:"pend0" json:"pend0"`
	Pend2  float64 `csv:"pend2" json:"pend2"`
	Pend4  float64 `csv:"pend4" json:"pend4"`
	Pend5  float64 `csv:"pend5" json:"pend5"`
	Pend10 float64 `csv:"pend10" json:"pend10"`

	OZS float64 `csv:"ozs" json:"ozs"`
	NZS float64 `csv:"nzs" json:"nzs"`
	DZS float64 `csv:"dzs" json:"dzs"`
	OTF float64 `csv:"otf" json:"otf"`
}

// OnIceStats is the per-player on-ice view (the "oi" frame).
type OnIceStats struct {
	Key
	OnIceCounters
}

// PlayerStats joins the individual and on-ice views and carries the
// derived per-60 and share fields (the "stats" frame).
type PlayerStats struct {
	Key
	IndCounters
	OnIceCounters

	GP60   float64 `csv:"g_p60" json:"g_p60"`
	A1P60  float64 `csv:"a1_p60" json:"a1_p60"`
	A2P60  float64 `csv:"a2_p60" json:"a2_p60"`
	IxGP60 float64 `csv:"ixg_p60" json:"ixg_p60"`
	ISFP60 float64 `csv:"isf_p60" json:"isf_p60"`
	IFFP60 float64 `csv:"iff_p60" json:"iff_p60"`
	ICFP60 float64 `csv:"icf_p60" json:"icf_p60"`

	GFP60  float64 `csv:"gf_p60" json:"gf_p60"`
	GAP60  float64 `csv:"ga_p60" json:"ga_p60"`
	XGFP60 float64 `csv:"xgf_p60" json:"xgf_p60"`
	XGAP60 float64 `csv:"xga_p60" json:"xga_p60"`
	SFP60  float64 `csv:"sf_p60" json:"sf_p60"`
	SAP60  float64 `csv:"sa_p60" json:"sa_p60"`
	FFP60  float64 `csv:"ff_p60" json:"ff_p60"`
	FAP60  float64 `csv:"fa_p60" json:"fa_p60"`
	CFP60  float64 `csv:"cf_p60" json:"cf_p60"`
	CAP60  float64 `csv:"ca_p60" json:"ca_p60"`

	GFPercent  float64 `csv:"gf_percent" json:"gf_percent"`
	XGFPercent float64 `csv:"xgf_percent" json:"xgf_percent"`
	SFPercent  float64 `csv:"sf_percent" json:"sf_percent"`
	FFPercent  float64 `csv:"ff_percent" json:"ff_percent"`
	CFPercent  float64 `csv:"cf_percent" json:"cf_percent"`
}

// LineStats is the on-ice view grouped by forward trio or defense pair.
type LineStats struct {
	Key
	OnIceCounters
}

// TeamStats is the on-ice view without player keys.
type TeamStats struct {
	Key
	OnIceCounters
}
