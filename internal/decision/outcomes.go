// Outcome tables: each action kind enumerates a small set of probabilistic
// outcomes over need impacts.
package decision

import "seosa/internal/agents"

// Outcome is one possible result of an action: a probability and the need
// satisfaction deltas it would cause for the actor.
type Outcome struct {
	Probability float64
	Impacts     [agents.NumNeeds]float64
}

// moveOutcomes: relocation is safe but costs a little sustenance.
func moveOutcomes() []Outcome {
	return []Outcome{
		{
			Probability: 1.0,
			Impacts: [agents.NumNeeds]float64{
				agents.NeedSurvival: -0.02,
				agents.NeedSafety:   0.06,
			},
		},
	}
}

// waitOutcomes: resting recovers the body and cedes standing.
func waitOutcomes() []Outcome {
	return []Outcome{
		{
			Probability: 1.0,
			Impacts: [agents.NumNeeds]float64{
				agents.NeedSurvival: 0.05,
				agents.NeedSafety:   0.02,
				agents.NeedEsteem:   -0.01,
			},
		},
	}
}

// speakOutcomes: conversation with a trusted target skews toward the
// positive social-gain outcome; distrust makes rebuff likelier.
func speakOutcomes(trust float64) []Outcome {
	pGood := 0.5 + 0.4*trust
	if pGood < 0.1 {
		pGood = 0.1
	}
	if pGood > 0.9 {
		pGood = 0.9
	}
	return []Outcome{
		{
			Probability: pGood,
			Impacts: [agents.NumNeeds]float64{
				agents.NeedBelonging: 0.15,
				agents.NeedEsteem:    0.05,
				agents.NeedPurpose:   0.02,
			},
		},
		{
			Probability: 1 - pGood,
			Impacts: [agents.NumNeeds]float64{
				agents.NeedBelonging: -0.05,
				agents.NeedEsteem:    -0.02,
			},
		},
	}
}

// attackOutcomes: violence always carries a majority-probability
// self-endangering outcome, whatever the target.
func attackOutcomes() []Outcome {
	return []Outcome{
		{
			Probability: 0.6,
			Impacts: [agents.NumNeeds]float64{
				agents.NeedSurvival: -0.2,
				agents.NeedSafety:   -0.15,
				agents.NeedEsteem:   0.05,
			},
		},
		{
			Probability: 0.4,
			Impacts: [agents.NumNeeds]float64{
				agents.NeedEsteem:    0.15,
				agents.NeedSafety:    0.05,
				agents.NeedBelonging: -0.1,
			},
		},
	}
}

// Outcomes returns the outcome set for a kind against an optional target
// with the given trust. Target-requiring kinds degrade to a no-op outcome
// set when no target exists.
func Outcomes(kind agents.ActionKind, hasTarget bool, trust float64) []Outcome {
	switch kind {
	case agents.ActionMove:
		return moveOutcomes()
	case agents.ActionWait:
		return waitOutcomes()
	case agents.ActionSpeak:
		if !hasTarget {
			return nil
		}
		return speakOutcomes(trust)
	case agents.ActionAttack:
		if !hasTarget {
			return nil
		}
		return attackOutcomes()
	}
	return nil
}
