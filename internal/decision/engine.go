// Expected-utility action selection with bounded rationality.
package decision

import (
	"fmt"

	"seosa/internal/agents"
	"seosa/internal/entropy"
	"seosa/internal/params"
	"seosa/internal/socialgraph"
)

// Engine scores candidate actions for one character per call. Tendency
// weights, when set, fold additively into every candidate's utility by the
// tags it carries.
type Engine struct {
	Graph    *socialgraph.Graph
	Tendency map[agents.Tag]float64
}

// ExpectedUtility is Σ outcomeProbability × Σ(needWeight × needImpact),
// perturbed by a deterministic bounded-rationality noise term sized
// (1 - intelligence) × 0.3 and derived from a hash of the decision context.
// Low-intelligence characters behave less optimally without breaking
// reproducibility.
func (e *Engine) ExpectedUtility(c *agents.Character, kind agents.ActionKind, target *agents.CharacterID) float64 {
	weights := NeedWeights(c.Needs)

	trust := 0.0
	hasTarget := target != nil
	if hasTarget {
		trust = e.Graph.Trust(c.ID, *target)
	}

	eu := 0.0
	for _, out := range Outcomes(kind, hasTarget, trust) {
		gain := 0.0
		for t := agents.NeedType(0); t < agents.NumNeeds; t++ {
			gain += weights[t] * out.Impacts[t]
		}
		eu += out.Probability * gain
	}

	// Tendency bias: the world's accumulated history pushes tagged actions.
	for _, tag := range agents.KindTags[kind] {
		eu += e.Tendency[tag]
	}

	// Bounded rationality.
	tid := uint64(0)
	if hasTarget {
		tid = uint64(*target)
	}
	noise := entropy.Hash01(uint64(c.ID), uint64(kind), tid)*2 - 1
	eu += noise * (1 - c.Traits.Intelligence) * params.RationalityNoiseScale

	return eu
}

// Decide selects the utility-maximizing action for the character over
// {MOVE, WAIT, SPEAK×candidates, ATTACK×candidates}. Candidates must be in
// deterministic order; ties resolve to whichever candidate was evaluated
// first.
func (e *Engine) Decide(c *agents.Character, candidates []agents.CharacterID) agents.Action {
	best := agents.Action{
		ActorID: c.ID,
		Kind:    agents.ActionMove,
		Tags:    agents.KindTags[agents.ActionMove],
		Detail:  fmt.Sprintf("%s moves on", c.Name),
	}
	bestEU := e.ExpectedUtility(c, agents.ActionMove, nil)

	if eu := e.ExpectedUtility(c, agents.ActionWait, nil); eu > bestEU {
		bestEU = eu
		best = agents.Action{
			ActorID: c.ID,
			Kind:    agents.ActionWait,
			Tags:    agents.KindTags[agents.ActionWait],
			Detail:  fmt.Sprintf("%s waits and watches", c.Name),
		}
	}

	for _, cand := range candidates {
		if cand == c.ID {
			continue
		}
		cand := cand
		if eu := e.ExpectedUtility(c, agents.ActionSpeak, &cand); eu > bestEU {
			bestEU = eu
			best = agents.Action{
				ActorID:  c.ID,
				TargetID: &cand,
				Kind:     agents.ActionSpeak,
				Tags:     agents.KindTags[agents.ActionSpeak],
				Detail:   fmt.Sprintf("%s speaks with a companion", c.Name),
			}
		}
	}

	for _, cand := range candidates {
		if cand == c.ID {
			continue
		}
		cand := cand
		if eu := e.ExpectedUtility(c, agents.ActionAttack, &cand); eu > bestEU {
			bestEU = eu
			best = agents.Action{
				ActorID:  c.ID,
				TargetID: &cand,
				Kind:     agents.ActionAttack,
				Tags:     agents.KindTags[agents.ActionAttack],
				Detail:   fmt.Sprintf("%s lashes out", c.Name),
			}
		}
	}

	return best
}

// SpeakTarget returns the candidate maximizing intimacy × (1 + trust), or
// false when no candidates exist. Absent relationships fall back to the
// neutral defaults.
func (e *Engine) SpeakTarget(actor agents.CharacterID, candidates []agents.CharacterID) (agents.CharacterID, bool) {
	found := false
	var best agents.CharacterID
	bestScore := 0.0
	for _, cand := range candidates {
		if cand == actor {
			continue
		}
		score := e.Graph.Intimacy(actor, cand) * (1 + e.Graph.Trust(actor, cand))
		if !found || score > bestScore {
			found = true
			best = cand
			bestScore = score
		}
	}
	return best, found
}

// AttackTarget returns the candidate with the lowest trust, or false when
// no candidates exist.
func (e *Engine) AttackTarget(actor agents.CharacterID, candidates []agents.CharacterID) (agents.CharacterID, bool) {
	found := false
	var best agents.CharacterID
	bestTrust := 0.0
	for _, cand := range candidates {
		if cand == actor {
			continue
		}
		trust := e.Graph.Trust(actor, cand)
		if !found || trust < bestTrust {
			found = true
			best = cand
			bestTrust = trust
		}
	}
	return best, found
}
