// The atomic turn pipeline.
package engine

import (
	"seosa/internal/agents"
	"seosa/internal/meaning"
	"seosa/internal/params"
)

// TurnResult is what one turn hands to the renderer and observability
// boundaries: read-only outputs, no feedback path into the core.
type TurnResult struct {
	Turn       uint64              `json:"turn"`
	Year       int                 `json:"year"`
	Logs       []agents.ActionLog  `json:"logs"`
	Meanings   []meaning.Event     `json:"meanings"`
	Strongest  []meaning.Event     `json:"strongest"` // Deduplicated by type, max intensity
	Chronicles []meaning.Chronicle `json:"chronicles"`
	Pressure   meaning.Pressure    `json:"pressure"`
	Tendency   meaning.Tendency    `json:"tendency"`
}

// SimulateTurn advances the world by one atomic step. Fixed pipeline order:
// execute actions into logs, evaluate meanings, accumulate pressure,
// amplify via echoes, emit chronicles, apply tendency, age and regenerate
// echoes, advance the turn (and year every tenth turn), append history.
//
// The transformation is pure: the input state is cloned, never mutated, and
// callers thread the returned state into the next turn.
func SimulateTurn(ws *WorldState, proposed []agents.Action, reg *meaning.Registry) (*WorldState, TurnResult) {
	next := ws.Clone()
	turn := next.Turn + 1

	// Execute: proposals become immutable logs with ids and timestamps.
	logs := make([]agents.ActionLog, 0, len(proposed))
	for _, action := range proposed {
		logs = append(logs, agents.ActionLog{
			ID:     next.nextLogID,
			Turn:   turn,
			Action: action,
		})
		next.nextLogID++
	}

	// Interpret: plugins turn raw logs into typed meaning events.
	events := reg.EvaluateAll(logs)

	// Accumulate, then let the past's echoes inflate what the present laid
	// down; amplification always precedes emission.
	next.Pressure = meaning.Accumulate(next.Pressure, events)
	next.Pressure = meaning.Amplify(next.Pressure, next.Echoes)

	// Crystallize: threshold-crossing pressure becomes history.
	chronicles, pressure, lastEmit := meaning.Emit(next.Pressure, next.LastChronicle, turn, next.Year)
	next.Pressure = pressure
	next.LastChronicle = lastEmit
	next.Tendency = meaning.ApplyChronicles(next.Tendency, chronicles)

	// Echoes: survivors age first; this turn's meanings spawn fresh ones
	// that begin aging next turn.
	next.Echoes = append(meaning.AgeEchoes(next.Echoes), meaning.SpawnEchoes(events, turn)...)

	// Advance time.
	next.Turn = turn
	if turn%params.TurnsPerYear == 0 {
		next.Year++
	}

	// History.
	next.Logs = append(next.Logs, logs...)
	next.Meanings = append(next.Meanings, events...)
	next.Chronicles = append(next.Chronicles, chronicles...)

	return next, TurnResult{
		Turn:       turn,
		Year:       next.Year,
		Logs:       logs,
		Meanings:   events,
		Strongest:  StrongestMeanings(events),
		Chronicles: chronicles,
		Pressure:   next.Pressure.Clone(),
		Tendency:   next.Tendency.Clone(),
	}
}

// StrongestMeanings deduplicates events by type, keeping the highest
// intensity of each. Order follows first appearance.
func StrongestMeanings(events []meaning.Event) []meaning.Event {
	index := make(map[meaning.Type]int)
	var out []meaning.Event
	for _, ev := range events {
		if i, ok := index[ev.Type]; ok {
			if ev.Intensity > out[i].Intensity {
				out[i] = ev
			}
			continue
		}
		index[ev.Type] = len(out)
		out = append(out, ev)
	}
	return out
}
