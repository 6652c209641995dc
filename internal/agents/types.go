// Package agents provides the character data model, needs hierarchy, and
// action vocabulary shared by every engine.
package agents

import "fmt"

// CharacterID is a unique identifier for a character.
type CharacterID uint64

// CognitionMode determines how a character selects actions.
type CognitionMode uint8

const (
	// Reactive characters roll an action kind from tendency-inclined base
	// probabilities. The bulk of a cast.
	Reactive CognitionMode = 0

	// Deliberative characters run the full expected-utility argmax.
	Deliberative CognitionMode = 1
)

// Traits are a character's fixed dispositions, all in [0, 1].
type Traits struct {
	Intelligence float64 `json:"intelligence" yaml:"intelligence"` // Evidentiary discrimination, decision optimality
	Boldness     float64 `json:"boldness" yaml:"boldness"`         // Willingness to take risky actions
	Warmth       float64 `json:"warmth" yaml:"warmth"`             // Disposition toward social actions
}

// Validate fails fast on out-of-range trait values supplied by a caller.
func (t Traits) Validate() error {
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"intelligence", t.Intelligence},
		{"boldness", t.Boldness},
		{"warmth", t.Warmth},
	} {
		if v.val < 0 || v.val > 1 {
			return fmt.Errorf("trait %s out of range [0,1]: %v", v.name, v.val)
		}
	}
	return nil
}

// Character is the core entity representing a person in the simulation.
// Relationship data lives in the social graph; the adjacency id lists here
// mirror the graph's edge keys for O(1) neighbor walks.
type Character struct {
	ID   CharacterID `json:"id"`
	Name string      `json:"name"`

	Location string        `json:"location"`
	Mode     CognitionMode `json:"mode"`
	Traits   Traits        `json:"traits"`
	Needs    NeedsState    `json:"needs"`

	Alive bool `json:"alive"`
}

// NewCharacter creates a validated character. Out-of-range traits or needs
// are programming-contract violations and fail rather than clamp.
func NewCharacter(id CharacterID, name, location string, mode CognitionMode, traits Traits, needs NeedsState) (*Character, error) {
	if name == "" {
		return nil, fmt.Errorf("character %d: empty name", id)
	}
	if err := traits.Validate(); err != nil {
		return nil, fmt.Errorf("character %q: %w", name, err)
	}
	if err := needs.Validate(); err != nil {
		return nil, fmt.Errorf("character %q: %w", name, err)
	}
	return &Character{
		ID:       id,
		Name:     name,
		Location: location,
		Mode:     mode,
		Traits:   traits,
		Needs:    needs,
		Alive:    true,
	}, nil
}

// ActionKind enumerates the possible actions.
type ActionKind uint8

const (
	ActionMove ActionKind = iota
	ActionSpeak
	ActionWait
	ActionAttack
)

// Kinds lists all action kinds in enumeration order. Selection ties resolve
// to whichever kind appears first here.
var Kinds = [4]ActionKind{ActionMove, ActionSpeak, ActionWait, ActionAttack}

// String returns the wire name of the action kind.
func (k ActionKind) String() string {
	switch k {
	case ActionMove:
		return "MOVE"
	case ActionSpeak:
		return "SPEAK"
	case ActionWait:
		return "WAIT"
	case ActionAttack:
		return "ATTACK"
	}
	return "UNKNOWN"
}

// NeedsTarget reports whether the kind is meaningless without a target.
func (k ActionKind) NeedsTarget() bool {
	return k == ActionSpeak || k == ActionAttack
}

// Tag is a descriptive label carried by actions; the meaning evaluators and
// world tendencies key on tags, not kinds.
type Tag string

const (
	TagRisky      Tag = "RISKY"
	TagSafe       Tag = "SAFE"
	TagSocial     Tag = "SOCIAL"
	TagPassive    Tag = "PASSIVE"
	TagAggressive Tag = "AGGRESSIVE"
)

// KindTags maps each action kind to its fixed tag set.
var KindTags = map[ActionKind][]Tag{
	ActionMove:   {TagPassive},
	ActionSpeak:  {TagSocial},
	ActionWait:   {TagSafe, TagPassive},
	ActionAttack: {TagAggressive, TagRisky},
}

// Action is a proposal: what a character intends to do this turn.
type Action struct {
	ActorID  CharacterID  `json:"actor_id"`
	TargetID *CharacterID `json:"target_id,omitempty"`
	Kind     ActionKind   `json:"kind"`
	Tags     []Tag        `json:"tags"`
	Detail   string       `json:"detail"` // Human-readable line for the log
}

// ActionLog is the immutable executed record of an action.
type ActionLog struct {
	ID     uint64 `json:"id"`
	Turn   uint64 `json:"turn"`
	Action Action `json:"action"`
}

// HasTag reports whether the action carries the given tag.
func (a Action) HasTag(tag Tag) bool {
	for _, t := range a.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
