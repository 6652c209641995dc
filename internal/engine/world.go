// Package engine sequences the subsystems into atomic simulation turns and
// owns the world-level feedback state.
package engine

import (
	"seosa/internal/agents"
	"seosa/internal/meaning"
)

// WorldState aggregates everything the feedback loop carries between turns.
// Each turn produces a new state value; a prior turn's state is never
// mutated.
type WorldState struct {
	Year int    `json:"year"`
	Turn uint64 `json:"turn"` // Completed turns

	// Append-only history.
	Logs       []agents.ActionLog  `json:"logs"`
	Meanings   []meaning.Event     `json:"meanings"`
	Chronicles []meaning.Chronicle `json:"chronicles"`

	// Live feedback state.
	Pressure      meaning.Pressure        `json:"pressure"`
	LastChronicle map[meaning.Type]uint64 `json:"last_chronicle"`
	Tendency      meaning.Tendency        `json:"tendency"`
	Echoes        []meaning.Echo          `json:"echoes"`

	nextLogID uint64
}

// NewWorldState returns the year-one empty world.
func NewWorldState() *WorldState {
	return &WorldState{
		Year:          1,
		Pressure:      make(meaning.Pressure),
		LastChronicle: make(map[meaning.Type]uint64),
		Tendency:      make(meaning.Tendency),
		nextLogID:     1,
	}
}

// Clone returns a deep copy of the state.
func (w *WorldState) Clone() *WorldState {
	c := &WorldState{
		Year:          w.Year,
		Turn:          w.Turn,
		Logs:          append([]agents.ActionLog(nil), w.Logs...),
		Meanings:      append([]meaning.Event(nil), w.Meanings...),
		Chronicles:    append([]meaning.Chronicle(nil), w.Chronicles...),
		Pressure:      w.Pressure.Clone(),
		LastChronicle: make(map[meaning.Type]uint64, len(w.LastChronicle)),
		Tendency:      w.Tendency.Clone(),
		Echoes:        append([]meaning.Echo(nil), w.Echoes...),
		nextLogID:     w.nextLogID,
	}
	for t, turn := range w.LastChronicle {
		c.LastChronicle[t] = turn
	}
	return c
}
