// Bayesian update kernel and the alignment measure between belief states.
package belief

import (
	"math"

	"seosa/internal/params"
)

// Bayes applies Bayes' rule:
//
//	posterior = (L_true × prior) / (L_true × prior + L_false × (1 - prior))
//
// A zero denominator means the evidence rules out every hypothesis the
// observer entertains; the prior is returned unchanged rather than failing.
func Bayes(prior, likelihoodTrue, likelihoodFalse float64) float64 {
	denom := likelihoodTrue*prior + likelihoodFalse*(1-prior)
	if denom == 0 {
		return prior
	}
	return likelihoodTrue * prior / denom
}

// CosineSimilarity measures ideological alignment between two belief states
// over the union of their propositions, treating a missing proposition as
// held at the 0.5 prior. Returns 1 for identical outlooks, 0 only in the
// degenerate all-zero case.
func CosineSimilarity(a, b *State) float64 {
	props := make(map[string]bool)
	for _, p := range a.Propositions() {
		props[p] = true
	}
	for _, p := range b.Propositions() {
		props[p] = true
	}

	var dot, normA, normB float64
	for p := range props {
		ca := params.BeliefPrior
		if v, ok := a.Get(p); ok {
			ca = v.Confidence
		}
		cb := params.BeliefPrior
		if v, ok := b.Get(p); ok {
			cb = v.Confidence
		}
		dot += ca * cb
		normA += ca * ca
		normB += cb * cb
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
