// Package scenario loads cast definitions from YAML files.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"seosa/internal/agents"
	"seosa/internal/socialgraph"
)

// Scenario describes a starting world: a named cast with traits, needs, and
// optional pre-existing relationships.
type Scenario struct {
	Name          string               `yaml:"name"`
	Seed          int64                `yaml:"seed"`
	Location      string               `yaml:"location"`
	Characters    []CharacterConfig    `yaml:"characters"`
	Relationships []RelationshipConfig `yaml:"relationships"`
}

// RelationshipConfig is one directed starting edge, named by character.
type RelationshipConfig struct {
	Source   string  `yaml:"source"`
	Target   string  `yaml:"target"`
	Trust    float64 `yaml:"trust"`
	Intimacy float64 `yaml:"intimacy"`
}

// CharacterConfig is one cast member as written in a scenario file.
type CharacterConfig struct {
	Name     string            `yaml:"name"`
	Location string            `yaml:"location"`
	Traits   agents.Traits     `yaml:"traits"`
	Needs    agents.NeedsState `yaml:"needs"`

	// Mode is "reactive" or "deliberative". Empty picks by intelligence.
	Mode string `yaml:"mode"`
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &sc, nil
}

// Validate checks the scenario for structural problems before any character
// is built from it.
func (sc *Scenario) Validate() error {
	if sc.Name == "" {
		return fmt.Errorf("missing name")
	}
	if len(sc.Characters) == 0 {
		return fmt.Errorf("no characters defined")
	}

	seen := make(map[string]bool, len(sc.Characters))
	for i, cc := range sc.Characters {
		if cc.Name == "" {
			return fmt.Errorf("character %d: missing name", i)
		}
		if seen[cc.Name] {
			return fmt.Errorf("duplicate character name %q", cc.Name)
		}
		seen[cc.Name] = true

		switch cc.Mode {
		case "", "reactive", "deliberative":
		default:
			return fmt.Errorf("character %q: unknown mode %q", cc.Name, cc.Mode)
		}
	}

	for i, rc := range sc.Relationships {
		if !seen[rc.Source] {
			return fmt.Errorf("relationship %d: unknown source %q", i, rc.Source)
		}
		if !seen[rc.Target] {
			return fmt.Errorf("relationship %d: unknown target %q", i, rc.Target)
		}
		if rc.Source == rc.Target {
			return fmt.Errorf("relationship %d: %q relates to itself", i, rc.Source)
		}
		if rc.Trust < -1 || rc.Trust > 1 {
			return fmt.Errorf("relationship %d: trust out of range [-1,1]: %v", i, rc.Trust)
		}
		if rc.Intimacy < 0 || rc.Intimacy > 1 {
			return fmt.Errorf("relationship %d: intimacy out of range [0,1]: %v", i, rc.Intimacy)
		}
	}
	return nil
}

// Build constructs the cast. Character ids are assigned by file order
// starting at 1, so a scenario always produces the same cast.
func (sc *Scenario) Build() ([]*agents.Character, error) {
	cast := make([]*agents.Character, 0, len(sc.Characters))
	for i, cc := range sc.Characters {
		location := cc.Location
		if location == "" {
			location = sc.Location
		}

		mode := agents.Reactive
		switch cc.Mode {
		case "deliberative":
			mode = agents.Deliberative
		case "reactive":
		default:
			if cc.Traits.Intelligence > 0.6 {
				mode = agents.Deliberative
			}
		}

		c, err := agents.NewCharacter(agents.CharacterID(i+1), cc.Name, location, mode, cc.Traits, cc.Needs)
		if err != nil {
			return nil, fmt.Errorf("character %q: %w", cc.Name, err)
		}
		cast = append(cast, c)
	}
	return cast, nil
}

// SeedGraph writes the scenario's starting relationships into the graph at
// turn zero. Cast must be the slice Build returned.
func (sc *Scenario) SeedGraph(cast []*agents.Character, g *socialgraph.Graph) {
	byName := make(map[string]agents.CharacterID, len(cast))
	for _, c := range cast {
		byName[c.Name] = c.ID
	}
	for _, rc := range sc.Relationships {
		g.Upsert(byName[rc.Source], byName[rc.Target], rc.Trust, rc.Intimacy, 0)
	}
}

// Default returns the built-in village scenario used when no file is given.
func Default() *Scenario {
	return &Scenario{
		Name:     "hollow-vale",
		Seed:     42,
		Location: "village",
		Characters: []CharacterConfig{
			{
				Name:   "Dara",
				Traits: agents.Traits{Intelligence: 0.8, Boldness: 0.4, Warmth: 0.6},
				Needs:  agents.NeedsState{Survival: 0.9, Safety: 0.8, Belonging: 0.5, Esteem: 0.5, Purpose: 0.4},
			},
			{
				Name:   "Maro",
				Traits: agents.Traits{Intelligence: 0.3, Boldness: 0.9, Warmth: 0.2},
				Needs:  agents.NeedsState{Survival: 0.8, Safety: 0.6, Belonging: 0.3, Esteem: 0.7, Purpose: 0.5},
			},
			{
				Name:   "Sena",
				Traits: agents.Traits{Intelligence: 0.6, Boldness: 0.3, Warmth: 0.9},
				Needs:  agents.NeedsState{Survival: 0.9, Safety: 0.7, Belonging: 0.6, Esteem: 0.4, Purpose: 0.6},
			},
			{
				Name:   "Ilya",
				Traits: agents.Traits{Intelligence: 0.7, Boldness: 0.6, Warmth: 0.5},
				Needs:  agents.NeedsState{Survival: 0.85, Safety: 0.75, Belonging: 0.45, Esteem: 0.55, Purpose: 0.5},
			},
		},
		Relationships: []RelationshipConfig{
			{Source: "Dara", Target: "Sena", Trust: 0.4, Intimacy: 0.5},
			{Source: "Sena", Target: "Dara", Trust: 0.5, Intimacy: 0.5},
			{Source: "Maro", Target: "Dara", Trust: -0.3, Intimacy: 0.1},
		},
	}
}
