// Chronicle emission: pressure crystallizing into history.
package meaning

import (
	"fmt"

	"seosa/internal/params"
)

// chronicleSummary renders the human-readable line for an emitted entry.
func chronicleSummary(t Type, year int, pressure float64) string {
	switch t {
	case TypeFear:
		return fmt.Sprintf("Year %d: dread has settled over the land (weight %.1f)", year, pressure)
	case TypeTrust:
		return fmt.Sprintf("Year %d: bonds of trust knit the people together (weight %.1f)", year, pressure)
	case TypeRespect:
		return fmt.Sprintf("Year %d: deeds of force have earned grudging respect (weight %.1f)", year, pressure)
	}
	return fmt.Sprintf("Year %d: an age of %s begins (weight %.1f)", year, t, pressure)
}

// Emit produces one chronicle entry for every meaning type whose pressure
// has reached the threshold and whose last emission is at least the minimum
// gap in the past. Emitted types have their pressure relieved by the decay
// factor (scaled, not zeroed) and their emission turn recorded; other types
// are left untouched. Returns new maps; inputs are not mutated.
func Emit(p Pressure, lastEmit map[Type]uint64, turn uint64, year int) ([]Chronicle, Pressure, map[Type]uint64) {
	outP := p.Clone()
	outLast := make(map[Type]uint64, len(lastEmit))
	for t, v := range lastEmit {
		outLast[t] = v
	}

	var chronicles []Chronicle
	for _, t := range outP.sortedTypes() {
		if outP[t] < params.ChronicleThreshold {
			continue
		}
		if last, ok := outLast[t]; ok && turn-last < params.ChronicleMinGap {
			continue
		}

		chronicles = append(chronicles, Chronicle{
			Year:    year,
			Turn:    turn,
			Type:    t,
			Summary: chronicleSummary(t, year, outP[t]),
			Scope:   LocalScope,
		})
		outP[t] *= params.ChronicleRelief
		outLast[t] = turn
	}

	return chronicles, outP, outLast
}
