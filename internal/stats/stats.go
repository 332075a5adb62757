package stats

import "stormlightlabs.org/hockey/internal/core"

// Player joins the individual and on-ice views on the shared key and
// derives per-60 rates and share percentages. Rows with no time on ice
// are dropped.
func Player(events []core.Event, opts Options) ([]PlayerStats, error) {
	if err := Validate(events); err != nil {
		return nil, err
	}

	indByKey := make(map[Key]IndCounters)
	for _, row := range Individual(events, opts) {
		indByKey[row.Key] = row.IndCounters
	}

	oi := OnIce(events, opts)

	out := make([]PlayerStats, 0, len(oi))
	for _, row := range oi {
		if row.TOI <= 0 {
			continue
		}

		joined := PlayerStats{
			Key:           row.Key,
			OnIceCounters: row.OnIceCounters,
		}

		// The oi view keys positions to F/D/G groups; individual rows carry
		// the roster position. Match on identity, not position.
		indKey := row.Key
		for _, position := range []string{row.Key.Position, "L", "C", "R", "D", "G"} {
			indKey.Position = position
			if counters, ok := indByKey[indKey]; ok {
				joined.IndCounters = counters
				delete(indByKey, indKey)
				break
			}
		}

		applyRates(&joined)
		out = append(out, joined)
	}

	return out, nil
}

// applyRates computes the per-60 and share fields from the summed counts.
func applyRates(s *PlayerStats) {
	if s.TOI > 0 {
		per60 := func(v float64) float64 { return 60 * v / s.TOI }

		s.GP60 = per60(s.G)
		s.A1P60 = per60(s.A1)
		s.A2P60 = per60(s.A2)
		s.IxGP60 = per60(s.IxG)
		s.ISFP60 = per60(s.ISF)
		s.IFFP60 = per60(s.IFF)
		s.ICFP60 = per60(s.ICF)

		s.GFP60 = per60(s.GF)
		s.GAP60 = per60(s.GA)
		s.XGFP60 = per60(s.XGF)
		s.XGAP60 = per60(s.XGA)
		s.SFP60 = per60(s.SF)
		s.SAP60 = per60(s.SA)
		s.FFP60 = per60(s.FF)
		s.FAP60 = per60(s.FA)
		s.CFP60 = per60(s.CF)
		s.CAP60 = per60(s.CA)
	}

	s.GFPercent = share(s.GF, s.GA)
	s.XGFPercent = share(s.XGF, s.XGA)
	s.SFPercent = share(s.SF, s.SA)
	s.FFPercent = share(s.FF, s.FA)
	s.CFPercent = share(s.CF, s.CA)
}

func share(forCount, againstCount float64) float64 {
	total := forCount + againstCount
	if total == 0 {
		return 0
	}
	return forCount / total
}

// scoreVenueAdjustments weights raw counts by venue and score differential
// to remove score-effects bias. Keyed on (is_home, clamped score_diff).
var scoreVenueAdjustments = map[[2]int]float64{
	{1, -3}: 1.052, {1, -2}: 1.044, {1, -1}: 1.034, {1, 0}: 1.014,
	{1, 1}: 0.981, {1, 2}: 0.963, {1, 3}: 0.950,
	{0, -3}: 1.053, {0, -2}: 1.041, {0, -1}: 1.021, {0, 0}: 0.986,
	{0, 1}: 0.966, {0, 2}: 0.960, {0, 3}: 0.949,
}

// Adjustment returns the score- and venue-adjustment multiplier for a raw
// count generated at the given state. Score differentials beyond ±3 clamp.
func Adjustment(isHome int, scoreDiff int) float64 {
	if scoreDiff > 3 {
		scoreDiff = 3
	}
	if scoreDiff < -3 {
		scoreDiff = -3
	}
	if w, ok := scoreVenueAdjustments[[2]int{isHome, scoreDiff}]; ok {
		return w
	}
	return 1
}
