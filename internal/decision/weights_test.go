package decision

import (
	"testing"

	"seosa/internal/agents"
)

func TestNeedWeightsHierarchicalGate(t *testing.T) {
	// Critically unmet survival suppresses the tiers above it even when
	// they are also unmet.
	starving := agents.NeedsState{Survival: 0.1, Safety: 0.9, Belonging: 0.9, Esteem: 0.1, Purpose: 0.9}
	w := NeedWeights(starving)

	if w[agents.NeedSurvival] <= w[agents.NeedEsteem] {
		t.Errorf("survival weight %v should dominate esteem weight %v", w[agents.NeedSurvival], w[agents.NeedEsteem])
	}
	// Esteem is just as unmet (0.1) and carries a 2x base priority against
	// survival's 5x, but the gate should crush it well below that ratio.
	if w[agents.NeedEsteem] > w[agents.NeedSurvival]*0.1 {
		t.Errorf("gated esteem weight %v too large against survival %v", w[agents.NeedEsteem], w[agents.NeedSurvival])
	}
}

func TestNeedWeightsSatisfiedTiersNearZero(t *testing.T) {
	content := agents.NeedsState{Survival: 1, Safety: 1, Belonging: 1, Esteem: 1, Purpose: 1}
	w := NeedWeights(content)
	for tier, v := range w {
		if v != 0 {
			t.Errorf("fully satisfied tier %d has weight %v", tier, v)
		}
	}
}

func TestNeedWeightsSmoothNotCliff(t *testing.T) {
	// The gate is a sigmoid, not a step: slightly-below and slightly-above
	// threshold survival should produce close but ordered esteem weights.
	below := agents.NeedsState{Survival: 0.29, Safety: 0.9, Belonging: 0.9, Esteem: 0.2, Purpose: 0.9}
	above := agents.NeedsState{Survival: 0.31, Safety: 0.9, Belonging: 0.9, Esteem: 0.2, Purpose: 0.9}

	wBelow := NeedWeights(below)
	wAbove := NeedWeights(above)
	if wBelow[agents.NeedEsteem] >= wAbove[agents.NeedEsteem] {
		t.Errorf("esteem weight should grow with survival satisfaction: %v vs %v",
			wBelow[agents.NeedEsteem], wAbove[agents.NeedEsteem])
	}
	if wAbove[agents.NeedEsteem] > 2*wBelow[agents.NeedEsteem]+0.5 {
		t.Errorf("gate behaves like a cliff: %v vs %v", wBelow[agents.NeedEsteem], wAbove[agents.NeedEsteem])
	}
}

func TestOutcomesTargetRequired(t *testing.T) {
	if got := Outcomes(agents.ActionSpeak, false, 0); got != nil {
		t.Errorf("SPEAK without target should have no outcomes, got %v", got)
	}
	if got := Outcomes(agents.ActionAttack, false, 0); got != nil {
		t.Errorf("ATTACK without target should have no outcomes, got %v", got)
	}
	if got := Outcomes(agents.ActionMove, false, 0); len(got) != 1 {
		t.Errorf("MOVE outcomes = %v", got)
	}
}

func TestSpeakOutcomeProbabilityTracksTrust(t *testing.T) {
	high := Outcomes(agents.ActionSpeak, true, 1.0)
	low := Outcomes(agents.ActionSpeak, true, -1.0)

	if high[0].Probability != 0.9 {
		t.Errorf("max-trust good outcome probability = %v, want 0.9 cap", high[0].Probability)
	}
	if low[0].Probability != 0.1 {
		t.Errorf("min-trust good outcome probability = %v, want 0.1 floor", low[0].Probability)
	}

	for _, outcomes := range [][]Outcome{high, low} {
		sum := 0.0
		for _, o := range outcomes {
			sum += o.Probability
		}
		if sum < 0.999 || sum > 1.001 {
			t.Errorf("outcome probabilities sum to %v", sum)
		}
	}
}
