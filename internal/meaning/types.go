// Package meaning interprets raw action logs into qualitative meaning
// events, accumulates them into pressure, crystallizes pressure into
// irreversible chronicle entries, and converts chronicles into world
// tendencies that bias the next turn.
package meaning

import (
	"sort"

	"seosa/internal/agents"
)

// Type is a meaning category.
type Type string

const (
	TypeFear    Type = "FEAR"
	TypeTrust   Type = "TRUST"
	TypeRespect Type = "RESPECT"
)

// typeOrder fixes iteration order for the built-in types; unknown types
// follow in sorted order. Pressure math is commutative, but emission and
// summaries must be reproducible.
var typeOrder = []Type{TypeFear, TypeTrust, TypeRespect}

// Event is a qualitative interpretation derived from one or more action
// logs. Transient: consumed the turn it's produced; its intensity persists
// in pressure.
type Event struct {
	Type      Type    `json:"type"`
	Intensity float64 `json:"intensity"`
	Scope     string  `json:"scope"` // Audience: a location or faction label
	Turn      uint64  `json:"turn"`
}

// Tone colors an echo's amplification.
type Tone uint8

const (
	TonePositive Tone = iota
	ToneNegative
	ToneAmbiguous
)

// Echo is a decaying, scoped aftereffect of a meaning event. Echoes never
// create pressure, they only amplify what exists while they live.
type Echo struct {
	Tone       Tone    `json:"tone"`
	Distortion float64 `json:"distortion"` // [0, 1)
	TTL        int     `json:"ttl"`
	Scope      string  `json:"scope"`
}

// Chronicle is an immutable historical record emitted when a meaning
// type's pressure crosses the threshold. Append-only; never edited.
type Chronicle struct {
	Year    int    `json:"year"`
	Turn    uint64 `json:"turn"`
	Type    Type   `json:"type"`
	Summary string `json:"summary"`
	Scope   string `json:"scope"`
}

// Pressure maps each meaning type to its accumulated unresolved weight.
type Pressure map[Type]float64

// Clone returns a copy of the pressure map.
func (p Pressure) Clone() Pressure {
	c := make(Pressure, len(p))
	for t, v := range p {
		c[t] = v
	}
	return c
}

// sortedTypes returns the pressure's types: built-ins first in fixed order,
// then any others ascending.
func (p Pressure) sortedTypes() []Type {
	seen := make(map[Type]bool, len(p))
	var out []Type
	for _, t := range typeOrder {
		if _, ok := p[t]; ok {
			out = append(out, t)
			seen[t] = true
		}
	}
	var rest []Type
	for t := range p {
		if !seen[t] {
			rest = append(rest, t)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	return append(out, rest...)
}

// Tendency maps an action tag to a signed weight in [-0.6, 0.6] that
// shifts future action likelihood.
type Tendency map[agents.Tag]float64

// Clone returns a copy of the tendency map.
func (t Tendency) Clone() Tendency {
	c := make(Tendency, len(t))
	for tag, w := range t {
		c[tag] = w
	}
	return c
}
