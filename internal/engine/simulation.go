// Simulation ties the cast, graph, beliefs, and decision engine together
// and runs them through the turn pipeline.
package engine

import (
	"fmt"
	"log/slog"
	"sort"

	"seosa/internal/agents"
	"seosa/internal/belief"
	"seosa/internal/decision"
	"seosa/internal/entropy"
	"seosa/internal/meaning"
	"seosa/internal/params"
	"seosa/internal/socialgraph"
)

// Simulation holds one world lineage: the cast, its relationship graph and
// belief states, the feedback-loop world state, and the seeded entropy
// source. Turns execute strictly sequentially; independent Simulations are
// fully isolated.
type Simulation struct {
	Characters []*agents.Character
	Index      map[agents.CharacterID]*agents.Character
	Graph      *socialgraph.Graph
	Beliefs    map[agents.CharacterID]*belief.State
	World      *WorldState
	Registry   *meaning.Registry

	// Observer, when set, receives every turn's result read-only.
	Observer func(TurnResult)

	src *entropy.Source
	dec *decision.Engine

	Stats SimStats
}

// SimStats tracks aggregate world statistics, refreshed each turn.
type SimStats struct {
	Population      int     `json:"population"`
	AvgSatisfaction float64 `json:"avg_satisfaction"`
	TotalPressure   float64 `json:"total_pressure"`
	Chronicles      int     `json:"chronicles"`
}

// NewSimulation assembles a simulation from a cast. The seed fixes every
// roll the lineage will ever make.
func NewSimulation(cast []*agents.Character, reg *meaning.Registry, seed int64) *Simulation {
	index := make(map[agents.CharacterID]*agents.Character, len(cast))
	graph := socialgraph.New()
	beliefs := make(map[agents.CharacterID]*belief.State, len(cast))
	for _, c := range cast {
		index[c.ID] = c
		graph.AddNode(c.ID)
		beliefs[c.ID] = belief.NewState()
	}

	sim := &Simulation{
		Characters: cast,
		Index:      index,
		Graph:      graph,
		Beliefs:    beliefs,
		World:      NewWorldState(),
		Registry:   reg,
		src:        entropy.NewSource(seed),
	}
	sim.dec = &decision.Engine{Graph: graph}
	sim.updateStats()
	return sim
}

// Step runs one full turn: decay, propose, simulate, apply effects,
// observe. The prior world state is left untouched.
func (s *Simulation) Step() TurnResult {
	turn := s.World.Turn + 1

	// Idle decay on relationships and beliefs, applied to fresh snapshots so a
	// caller holding last turn's graph never sees it change.
	graph := s.Graph.Clone()
	graph.Decay(turn)
	s.Graph = graph
	for id, st := range s.Beliefs {
		next := st.Clone()
		next.Decay(turn)
		s.Beliefs[id] = next
	}

	s.dec.Graph = s.Graph
	s.dec.Tendency = s.World.Tendency

	proposals := s.proposeActions()
	world, result := SimulateTurn(s.World, proposals, s.Registry)

	s.applyEffects(result.Logs)
	s.observeLogs(result.Logs, turn)

	s.World = world
	s.updateStats()

	if s.Observer != nil {
		s.Observer(result)
	}
	return result
}

// Run executes n turns and returns the last result.
func (s *Simulation) Run(n int) TurnResult {
	var last TurnResult
	for i := 0; i < n; i++ {
		last = s.Step()
	}
	return last
}

// aliveIDs returns living character ids ascending, the enumeration order
// every per-turn loop uses.
func (s *Simulation) aliveIDs() []agents.CharacterID {
	ids := make([]agents.CharacterID, 0, len(s.Characters))
	for _, c := range s.Characters {
		if c.Alive {
			ids = append(ids, c.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// proposeActions picks one action per living character. Deliberative
// characters run the full expected-utility argmax; reactive characters
// sample a kind from tendency-inclined base probabilities and pick targets
// with the engine's heuristics.
func (s *Simulation) proposeActions() []agents.Action {
	ids := s.aliveIDs()
	proposals := make([]agents.Action, 0, len(ids))

	for _, id := range ids {
		c := s.Index[id]
		candidates := make([]agents.CharacterID, 0, len(ids)-1)
		for _, other := range ids {
			if other != id {
				candidates = append(candidates, other)
			}
		}

		if c.Mode == agents.Deliberative {
			proposals = append(proposals, s.dec.Decide(c, candidates))
			continue
		}
		proposals = append(proposals, s.reactiveAction(c, candidates))
	}

	return proposals
}

// reactiveAction rolls an action kind from the inclined base probability
// distribution, scaled by disposition: bold characters escalate, warm ones
// talk.
func (s *Simulation) reactiveAction(c *agents.Character, candidates []agents.CharacterID) agents.Action {
	base := map[agents.ActionKind]float64{
		agents.ActionMove:   params.BaseProbMove,
		agents.ActionSpeak:  params.BaseProbSpeak * (0.5 + c.Traits.Warmth),
		agents.ActionWait:   params.BaseProbWait,
		agents.ActionAttack: params.BaseProbAttack * (0.5 + c.Traits.Boldness),
	}

	total := 0.0
	inclined := make([]float64, len(agents.Kinds))
	for i, kind := range agents.Kinds {
		inclined[i] = meaning.InclineProbability(base[kind], agents.KindTags[kind], s.World.Tendency)
		total += inclined[i]
	}

	roll := s.src.Float() * total
	kind := agents.Kinds[len(agents.Kinds)-1]
	for i, p := range inclined {
		if roll < p {
			kind = agents.Kinds[i]
			break
		}
		roll -= p
	}

	action := agents.Action{ActorID: c.ID, Kind: kind, Tags: agents.KindTags[kind]}
	switch kind {
	case agents.ActionSpeak:
		target, ok := s.dec.SpeakTarget(c.ID, candidates)
		if !ok {
			return s.waitAction(c)
		}
		action.TargetID = &target
		action.Detail = fmt.Sprintf("%s seeks out %s", c.Name, s.Index[target].Name)
	case agents.ActionAttack:
		target, ok := s.dec.AttackTarget(c.ID, candidates)
		if !ok {
			return s.waitAction(c)
		}
		action.TargetID = &target
		action.Detail = fmt.Sprintf("%s turns on %s", c.Name, s.Index[target].Name)
	case agents.ActionMove:
		action.Detail = fmt.Sprintf("%s moves on", c.Name)
	default:
		action.Detail = fmt.Sprintf("%s waits and watches", c.Name)
	}
	return action
}

func (s *Simulation) waitAction(c *agents.Character) agents.Action {
	return agents.Action{
		ActorID: c.ID,
		Kind:    agents.ActionWait,
		Tags:    agents.KindTags[agents.ActionWait],
		Detail:  fmt.Sprintf("%s waits and watches", c.Name),
	}
}

// applyEffects realizes each log's outcome against needs and
// relationships. Which outcome occurs is rolled from the seeded stream.
func (s *Simulation) applyEffects(logs []agents.ActionLog) {
	for _, log := range logs {
		actor, ok := s.Index[log.Action.ActorID]
		if !ok || !actor.Alive {
			continue
		}

		hasTarget := log.Action.TargetID != nil
		trust := 0.0
		if hasTarget {
			trust = s.Graph.Trust(actor.ID, *log.Action.TargetID)
		}

		outcomes := decision.Outcomes(log.Action.Kind, hasTarget, trust)
		if len(outcomes) == 0 {
			continue
		}

		// Roll the realized outcome.
		roll := s.src.Float()
		realized := outcomes[len(outcomes)-1]
		for _, out := range outcomes {
			if roll < out.Probability {
				realized = out
				break
			}
			roll -= out.Probability
		}
		for t := agents.NeedType(0); t < agents.NumNeeds; t++ {
			actor.Needs.Adjust(t, realized.Impacts[t])
		}

		if !hasTarget {
			continue
		}
		target, ok := s.Index[*log.Action.TargetID]
		if !ok || !target.Alive {
			continue
		}

		switch log.Action.Kind {
		case agents.ActionSpeak:
			s.Graph.Upsert(actor.ID, target.ID, params.SpeakTrustGain, params.SpeakIntimacyGain, log.Turn)
			s.Graph.Upsert(target.ID, actor.ID, params.SpeakReplyTrustGain, params.SpeakIntimacyGain, log.Turn)
			target.Needs.Adjust(agents.NeedBelonging, 0.05)
		case agents.ActionAttack:
			s.Graph.Upsert(actor.ID, target.ID, -params.AttackTrustLoss, -params.AttackIntimacyLoss, log.Turn)
			s.Graph.Upsert(target.ID, actor.ID, -params.AttackTrustLoss, -params.AttackIntimacyLoss, log.Turn)
			target.Needs.Adjust(agents.NeedSafety, -params.AttackVictimSafetyLoss)
		}
	}
}

// observeLogs turns notable logs into world events and runs every other
// character's belief update over them.
func (s *Simulation) observeLogs(logs []agents.ActionLog, turn uint64) {
	for _, log := range logs {
		actor, ok := s.Index[log.Action.ActorID]
		if !ok {
			continue
		}

		var ev belief.Event
		var impacts []belief.Impact
		switch log.Action.Kind {
		case agents.ActionAttack:
			ev = belief.Event{ID: log.ID, Location: actor.Location, Visibility: params.AttackVisibility}
			impacts = []belief.Impact{{
				Proposition:     fmt.Sprintf("%s is dangerous", actor.Name),
				LikelihoodTrue:  params.DangerousLikelihoodTrue,
				LikelihoodFalse: params.DangerousLikelihoodFalse,
			}}
		case agents.ActionSpeak:
			ev = belief.Event{ID: log.ID, Location: actor.Location, Visibility: params.SpeakVisibility}
			impacts = []belief.Impact{{
				Proposition:     fmt.Sprintf("%s is friendly", actor.Name),
				LikelihoodTrue:  params.FriendlyLikelihoodTrue,
				LikelihoodFalse: params.FriendlyLikelihoodFalse,
			}}
		default:
			continue
		}

		for _, id := range s.aliveIDs() {
			if id == actor.ID {
				continue
			}
			observer := s.Index[id]
			ctx := belief.Context{
				ObserverLocation: observer.Location,
				Attention:        0.6 + 0.4*observer.Traits.Intelligence,
			}
			s.Beliefs[id].Update(observer.Traits, ev, ctx, impacts, turn)
		}
	}
}

// Alignment returns the ideological alignment (belief cosine similarity)
// between two characters.
func (s *Simulation) Alignment(a, b agents.CharacterID) float64 {
	sa, oka := s.Beliefs[a]
	sb, okb := s.Beliefs[b]
	if !oka || !okb {
		return 0
	}
	return belief.CosineSimilarity(sa, sb)
}

func (s *Simulation) updateStats() {
	alive := 0
	totalSat := 0.0
	for _, c := range s.Characters {
		if c.Alive {
			alive++
			totalSat += c.Needs.OverallSatisfaction()
		}
	}
	s.Stats.Population = alive
	if alive > 0 {
		s.Stats.AvgSatisfaction = totalSat / float64(alive)
	}
	total := 0.0
	for _, v := range s.World.Pressure {
		total += v
	}
	s.Stats.TotalPressure = total
	s.Stats.Chronicles = len(s.World.Chronicles)
}

// LogTurnSummary writes the standard slog line for a turn result.
func LogTurnSummary(stats SimStats, result TurnResult) {
	slog.Info("turn complete",
		"turn", result.Turn,
		"year", result.Year,
		"population", stats.Population,
		"avg_satisfaction", fmt.Sprintf("%.3f", stats.AvgSatisfaction),
		"actions", len(result.Logs),
		"meanings", len(result.Meanings),
		"chronicles", len(result.Chronicles),
		"total_pressure", fmt.Sprintf("%.2f", stats.TotalPressure),
	)
	for _, c := range result.Chronicles {
		slog.Info("chronicle", "type", c.Type, "summary", c.Summary)
	}
}
