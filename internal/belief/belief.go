// Package belief tracks each character's subjective probability estimates
// about propositions, updated from observed events by Bayesian inference.
package belief

import (
	"fmt"
	"math"
	"sort"

	"seosa/internal/agents"
	"seosa/internal/params"
)

// Belief is one character's confidence in a proposition. Created on first
// relevant observation, relaxed toward the prior when unobserved, never
// deleted.
type Belief struct {
	Proposition string   `json:"proposition"`
	Confidence  float64  `json:"confidence"` // [0, 1]
	UpdatedTurn uint64   `json:"updated_turn"`
	Sources     []uint64 `json:"sources"` // Originating event ids
}

// New creates a validated belief. An out-of-range confidence is a
// programming-contract violation and fails rather than clamps.
func New(proposition string, confidence float64, turn uint64) (*Belief, error) {
	if proposition == "" {
		return nil, fmt.Errorf("belief: empty proposition")
	}
	if confidence < 0 || confidence > 1 {
		return nil, fmt.Errorf("belief %q: confidence out of range [0,1]: %v", proposition, confidence)
	}
	return &Belief{Proposition: proposition, Confidence: confidence, UpdatedTurn: turn}, nil
}

// State is one character's belief set: proposition → belief.
type State struct {
	beliefs map[string]*Belief
}

// NewState creates an empty belief state.
func NewState() *State {
	return &State{beliefs: make(map[string]*Belief)}
}

// Confidence returns the character's confidence in a proposition, or the
// 0.5 prior when the proposition has never been observed.
func (s *State) Confidence(proposition string) float64 {
	if b, ok := s.beliefs[proposition]; ok {
		return b.Confidence
	}
	return params.BeliefPrior
}

// Get returns the belief for a proposition, if one exists.
func (s *State) Get(proposition string) (Belief, bool) {
	b, ok := s.beliefs[proposition]
	if !ok {
		return Belief{}, false
	}
	return *b, true
}

// Len returns the number of tracked propositions.
func (s *State) Len() int {
	return len(s.beliefs)
}

// Propositions returns the tracked propositions in sorted order.
func (s *State) Propositions() []string {
	out := make([]string, 0, len(s.beliefs))
	for p := range s.beliefs {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Clone returns a deep copy of the state.
func (s *State) Clone() *State {
	c := NewState()
	for p, b := range s.beliefs {
		copied := *b
		copied.Sources = append([]uint64(nil), b.Sources...)
		c.beliefs[p] = &copied
	}
	return c
}

// Event is an ephemeral world observation fed to Update. Not persisted;
// consumed once per call.
type Event struct {
	ID         uint64
	Location   string
	Visibility float64 // [0, 1], how conspicuous the event is
}

// Context describes the observer's situation when the event happened.
type Context struct {
	ObserverLocation string
	Attention        float64 // [0, 1]
}

// Impact states how likely an event is under a proposition being true
// versus false.
type Impact struct {
	Proposition     string
	LikelihoodTrue  float64
	LikelihoodFalse float64
}

// Observability scores how visible an event is to an observer:
// visibility × location factor × attention. Sharing the event's location
// keeps the factor at 1.0; otherwise it drops to 0.3.
func Observability(ev Event, ctx Context) float64 {
	locFactor := params.RemoteLocationFactor
	if ev.Location == ctx.ObserverLocation {
		locFactor = params.SharedLocationFactor
	}
	return ev.Visibility * locFactor * ctx.Attention
}

// Observed reports whether the event clears the fixed observation
// threshold. Deterministic; observation is never sampled.
func Observed(ev Event, ctx Context) bool {
	return Observability(ev, ctx) >= params.ObservationThreshold
}

// Update applies the event's proposition impacts to the state. A no-op if
// the event is unobserved. Likelihoods are first attenuated toward 0.5 by
// the observer's intelligence (low intelligence flattens evidentiary
// discrimination), then run through Bayes' rule against the current
// confidence (prior 0.5 for unseen propositions).
func (s *State) Update(observer agents.Traits, ev Event, ctx Context, impacts []Impact, turn uint64) {
	if !Observed(ev, ctx) {
		return
	}

	for _, imp := range impacts {
		lTrue := attenuate(imp.LikelihoodTrue, observer.Intelligence)
		lFalse := attenuate(imp.LikelihoodFalse, observer.Intelligence)

		prior := s.Confidence(imp.Proposition)
		posterior := Bayes(prior, lTrue, lFalse)

		b, ok := s.beliefs[imp.Proposition]
		if !ok {
			b = &Belief{Proposition: imp.Proposition, Confidence: params.BeliefPrior}
			s.beliefs[imp.Proposition] = b
		}
		b.Confidence = clamp01(posterior)
		b.UpdatedTurn = turn
		b.Sources = append(b.Sources, ev.ID)
	}
}

// Decay relaxes every belief toward the 0.5 equilibrium in proportion to
// turns since its last update, the same exponential shape relationships
// decay with.
func (s *State) Decay(turn uint64) {
	for _, b := range s.beliefs {
		if turn <= b.UpdatedTurn {
			continue
		}
		idle := float64(turn - b.UpdatedTurn)
		b.Confidence = params.BeliefPrior + (b.Confidence-params.BeliefPrior)*math.Pow(1-params.BeliefDecayRate, idle)
	}
}

// attenuate pulls a likelihood toward 0.5 by the observer's intelligence.
func attenuate(likelihood, intelligence float64) float64 {
	return 0.5 + (likelihood-0.5)*intelligence
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
