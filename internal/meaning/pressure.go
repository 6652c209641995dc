// Pressure accumulation and echo amplification.
package meaning

import (
	"seosa/internal/entropy"
	"seosa/internal/params"
)

// Sensitivity returns how strongly a meaning type responds to echo
// amplification. Unmapped types use the default.
func Sensitivity(t Type) float64 {
	switch t {
	case TypeFear:
		return params.FearSensitivity
	case TypeTrust:
		return params.TrustSensitivity
	case TypeRespect:
		return params.RespectSensitivity
	}
	return params.DefaultSensitivity
}

// toneFactor weights amplification by echo tone.
func toneFactor(t Tone) float64 {
	switch t {
	case TonePositive:
		return params.TonePositiveFactor
	case ToneNegative:
		return params.ToneNegativeFactor
	}
	return params.ToneAmbiguousFactor
}

// Accumulate adds each event's intensity to its type's running pressure.
// No cap; returns a new map.
func Accumulate(p Pressure, events []Event) Pressure {
	out := p.Clone()
	for _, ev := range events {
		out[ev.Type] += ev.Intensity
	}
	return out
}

// Amplify re-inflates every pressure entry once per live echo:
// pressure += pressure × toneFactor × sensitivity × amplification.
// Runs once per turn, before chronicle emission. Echoes amplify existing
// magnitude only; a zero entry stays zero.
func Amplify(p Pressure, echoes []Echo) Pressure {
	out := p.Clone()
	for _, echo := range echoes {
		factor := toneFactor(echo.Tone)
		for _, t := range out.sortedTypes() {
			out[t] += out[t] * factor * Sensitivity(t) * params.EchoAmplification
		}
	}
	return out
}

// SpawnEchoes creates one echo per meaning event this turn: fear echoes
// negative, everything else positive, all with the standard TTL and a
// deterministic distortion derived from the event context.
func SpawnEchoes(events []Event, turn uint64) []Echo {
	echoes := make([]Echo, 0, len(events))
	for i, ev := range events {
		tone := TonePositive
		if ev.Type == TypeFear {
			tone = ToneNegative
		}
		echoes = append(echoes, Echo{
			Tone:       tone,
			Distortion: entropy.Hash01(turn, uint64(i), entropy.HashString(string(ev.Type))),
			TTL:        params.EchoTTL,
			Scope:      LocalScope,
		})
	}
	return echoes
}

// AgeEchoes decrements every echo's TTL and drops those at or below zero.
// An echo never persists past the turn that exhausted it.
func AgeEchoes(echoes []Echo) []Echo {
	var alive []Echo
	for _, e := range echoes {
		e.TTL--
		if e.TTL > 0 {
			alive = append(alive, e)
		}
	}
	return alive
}
