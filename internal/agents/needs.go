// NeedsState implements the Maslow-inspired needs hierarchy.
// Lower needs dominate behavior when unmet.
package agents

import (
	"fmt"

	"seosa/internal/params"
)

// NeedType enumerates the hierarchy layers, bottom-up.
type NeedType uint8

const (
	NeedSurvival NeedType = iota
	NeedSafety
	NeedBelonging
	NeedEsteem
	NeedPurpose
)

// NumNeeds is the number of hierarchy layers.
const NumNeeds = 5

// String returns the display name of the need tier.
func (n NeedType) String() string {
	switch n {
	case NeedSurvival:
		return "survival"
	case NeedSafety:
		return "safety"
	case NeedBelonging:
		return "belonging"
	case NeedEsteem:
		return "esteem"
	case NeedPurpose:
		return "purpose"
	}
	return "unknown"
}

// NeedsState tracks the fulfillment level of each need layer.
// All values range from 0.0 (completely unmet) to 1.0 (fully satisfied).
type NeedsState struct {
	Survival  float64 `json:"survival" yaml:"survival"`
	Safety    float64 `json:"safety" yaml:"safety"`
	Belonging float64 `json:"belonging" yaml:"belonging"` // Social connection
	Esteem    float64 `json:"esteem" yaml:"esteem"`
	Purpose   float64 `json:"purpose" yaml:"purpose"` // Self-actualization
}

// Level returns the satisfaction of one tier.
func (n NeedsState) Level(t NeedType) float64 {
	switch t {
	case NeedSurvival:
		return n.Survival
	case NeedSafety:
		return n.Safety
	case NeedBelonging:
		return n.Belonging
	case NeedEsteem:
		return n.Esteem
	default:
		return n.Purpose
	}
}

// Adjust adds delta to one tier and clamps to [0, 1]. Clamp-after-compute is
// the policy for runtime mutation; only constructor input fails fast.
func (n *NeedsState) Adjust(t NeedType, delta float64) {
	switch t {
	case NeedSurvival:
		n.Survival = clamp01(n.Survival + delta)
	case NeedSafety:
		n.Safety = clamp01(n.Safety + delta)
	case NeedBelonging:
		n.Belonging = clamp01(n.Belonging + delta)
	case NeedEsteem:
		n.Esteem = clamp01(n.Esteem + delta)
	case NeedPurpose:
		n.Purpose = clamp01(n.Purpose + delta)
	}
}

// Priority returns the most urgent unmet need, evaluated bottom-up: a
// starving character doesn't chase esteem, they look for food.
func (n NeedsState) Priority() NeedType {
	if n.Survival < params.NeedGateThreshold {
		return NeedSurvival
	}
	if n.Safety < params.NeedGateThreshold {
		return NeedSafety
	}
	if n.Belonging < params.NeedGateThreshold {
		return NeedBelonging
	}
	if n.Esteem < params.NeedGateThreshold {
		return NeedEsteem
	}
	return NeedPurpose
}

// OverallSatisfaction returns a weighted average of all needs, with lower
// needs weighted more heavily.
func (n NeedsState) OverallSatisfaction() float64 {
	total := 0.0
	weight := 0.0
	for t := NeedType(0); t < NumNeeds; t++ {
		w := params.NeedBasePriority[t]
		total += n.Level(t) * w
		weight += w
	}
	return total / weight
}

// Validate fails fast on out-of-range levels supplied by a caller.
func (n NeedsState) Validate() error {
	for t := NeedType(0); t < NumNeeds; t++ {
		if v := n.Level(t); v < 0 || v > 1 {
			return fmt.Errorf("need %s out of range [0,1]: %v", t, v)
		}
	}
	return nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
