// World tendencies: chronicles becoming behavioral gravity.
package meaning

import (
	"seosa/internal/agents"
	"seosa/internal/params"
)

// tendencyDelta is one chronicle type's nudge to one action tag.
type tendencyDelta struct {
	tag   agents.Tag
	delta float64
}

// chronicleDeltas: what each chronicle type does to the world's appetite
// for tagged actions. An age of fear discourages risk and rewards caution;
// an age of trust rewards sociability; an age of respect emboldens
// aggression.
var chronicleDeltas = map[Type][]tendencyDelta{
	TypeFear: {
		{agents.TagRisky, -0.10},
		{agents.TagSafe, 0.08},
	},
	TypeTrust: {
		{agents.TagSocial, 0.08},
		{agents.TagPassive, -0.04},
	},
	TypeRespect: {
		{agents.TagAggressive, 0.05},
	},
}

// ApplyChronicles folds this turn's emitted chronicles into the tendency
// map. Multiple chronicles apply cumulatively before clamping; every weight
// ends within the clamp range. Returns a new map.
func ApplyChronicles(t Tendency, chronicles []Chronicle) Tendency {
	out := t.Clone()
	for _, c := range chronicles {
		for _, d := range chronicleDeltas[c.Type] {
			out[d.tag] += d.delta
		}
	}
	for tag, w := range out {
		if w > params.TendencyClamp {
			out[tag] = params.TendencyClamp
		}
		if w < -params.TendencyClamp {
			out[tag] = -params.TendencyClamp
		}
	}
	return out
}

// InclineProbability biases an action's base probability by the summed
// tendency weights of every tag it carries, with a hard floor so no action
// kind's likelihood ever reaches zero.
func InclineProbability(base float64, tags []agents.Tag, t Tendency) float64 {
	p := base
	for _, tag := range tags {
		p += t[tag]
	}
	if p < params.ProbabilityFloor {
		return params.ProbabilityFloor
	}
	return p
}
