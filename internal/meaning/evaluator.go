// The evaluator registry is the engine's extension point for new meaning
// types.
package meaning

import (
	"seosa/internal/agents"
	"seosa/internal/params"
)

// LocalScope is the audience label for meanings without a wider reach.
const LocalScope = "local"

// Evaluator converts one turn's action logs into meaning events. Evaluators
// are pure and independent; their outputs are concatenated.
type Evaluator interface {
	Type() Type
	Evaluate(logs []agents.ActionLog) []Event
}

// Registry holds the registered evaluator set. Register-only, no priority:
// call order is registration order, which has no semantic effect since
// pressure accumulation is commutative.
type Registry struct {
	evaluators []Evaluator
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// DefaultRegistry returns a registry with the three built-in evaluators.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(FearEvaluator{})
	r.Register(TrustEvaluator{})
	r.Register(RespectEvaluator{})
	return r
}

// Register appends an evaluator.
func (r *Registry) Register(e Evaluator) {
	r.evaluators = append(r.evaluators, e)
}

// Len returns the number of registered evaluators.
func (r *Registry) Len() int {
	return len(r.evaluators)
}

// EvaluateAll runs every evaluator over the logs and concatenates results.
func (r *Registry) EvaluateAll(logs []agents.ActionLog) []Event {
	var events []Event
	for _, e := range r.evaluators {
		events = append(events, e.Evaluate(logs)...)
	}
	return events
}

// tagEvents emits one event per log carrying the tag.
func tagEvents(logs []agents.ActionLog, tag agents.Tag, typ Type, intensity float64) []Event {
	var events []Event
	for _, log := range logs {
		if log.Action.HasTag(tag) {
			events = append(events, Event{
				Type:      typ,
				Intensity: intensity,
				Scope:     LocalScope,
				Turn:      log.Turn,
			})
		}
	}
	return events
}

// FearEvaluator reads risky actions as frightening.
type FearEvaluator struct{}

func (FearEvaluator) Type() Type { return TypeFear }

func (FearEvaluator) Evaluate(logs []agents.ActionLog) []Event {
	return tagEvents(logs, agents.TagRisky, TypeFear, params.FearIntensity)
}

// TrustEvaluator reads social actions as trust-building.
type TrustEvaluator struct{}

func (TrustEvaluator) Type() Type { return TypeTrust }

func (TrustEvaluator) Evaluate(logs []agents.ActionLog) []Event {
	return tagEvents(logs, agents.TagSocial, TypeTrust, params.TrustIntensity)
}

// RespectEvaluator reads aggressive actions as commanding respect.
type RespectEvaluator struct{}

func (RespectEvaluator) Type() Type { return TypeRespect }

func (RespectEvaluator) Evaluate(logs []agents.ActionLog) []Event {
	return tagEvents(logs, agents.TagAggressive, TypeRespect, params.RespectIntensity)
}
