// Package decision selects, per character per turn, the action and target
// maximizing expected utility under the hierarchical needs model.
package decision

import (
	"math"

	"seosa/internal/agents"
	"seosa/internal/params"
)

// NeedWeights returns the urgency weight of each need tier under the
// hierarchical-gate model: weight = (1 - satisfaction) × basePriority ×
// gate, where a tier's gate is the product of sigmoid-smoothed satisfaction
// of all lower tiers relative to the gate threshold. Esteem-seeking is
// suppressed while survival is critically unmet, without a hard cutoff.
func NeedWeights(needs agents.NeedsState) [agents.NumNeeds]float64 {
	var weights [agents.NumNeeds]float64
	gate := 1.0
	for t := agents.NeedType(0); t < agents.NumNeeds; t++ {
		sat := needs.Level(t)
		weights[t] = (1 - sat) * params.NeedBasePriority[t] * gate
		// This tier's satisfaction gates everything above it.
		gate *= sigmoid((sat - params.NeedGateThreshold) * params.NeedGateSteepness)
	}
	return weights
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
