package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"seosa/internal/agents"
	"seosa/internal/socialgraph"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAndBuild(t *testing.T) {
	path := writeScenario(t, `
name: test-hamlet
seed: 99
location: hamlet
characters:
  - name: Arin
    mode: deliberative
    traits:
      intelligence: 0.4
      boldness: 0.5
      warmth: 0.6
    needs:
      survival: 0.9
      safety: 0.8
      belonging: 0.5
      esteem: 0.5
      purpose: 0.4
  - name: Beka
    location: forest
    traits:
      intelligence: 0.9
      boldness: 0.2
      warmth: 0.7
    needs:
      survival: 0.8
      safety: 0.7
      belonging: 0.6
      esteem: 0.5
      purpose: 0.5
`)

	sc, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if sc.Name != "test-hamlet" || sc.Seed != 99 {
		t.Errorf("header = %q, %d", sc.Name, sc.Seed)
	}

	cast, err := sc.Build()
	if err != nil {
		t.Fatal(err)
	}
	if len(cast) != 2 {
		t.Fatalf("built %d characters", len(cast))
	}

	arin := cast[0]
	if arin.ID != 1 || arin.Location != "hamlet" {
		t.Errorf("Arin = id %d at %q, want 1 at hamlet", arin.ID, arin.Location)
	}
	// Explicit mode wins over the intelligence rule.
	if arin.Mode != agents.Deliberative {
		t.Error("explicit deliberative mode ignored")
	}

	beka := cast[1]
	if beka.Location != "forest" {
		t.Errorf("per-character location ignored: %q", beka.Location)
	}
	// No explicit mode: intelligence 0.9 > 0.6 implies deliberative.
	if beka.Mode != agents.Deliberative {
		t.Error("intelligence rule not applied")
	}
}

func TestSeedGraph(t *testing.T) {
	sc := Default()
	cast, err := sc.Build()
	if err != nil {
		t.Fatal(err)
	}

	g := socialgraph.New()
	for _, c := range cast {
		g.AddNode(c.ID)
	}
	sc.SeedGraph(cast, g)

	// Dara is cast[0], Sena cast[2] in the default scenario.
	e, ok := g.Edge(cast[0].ID, cast[2].ID)
	if !ok {
		t.Fatal("starting relationship missing")
	}
	if e.Trust != 0.4 || e.Intimacy != 0.5 {
		t.Errorf("edge = %+v", e)
	}
	if e.LastTurn != 0 {
		t.Errorf("starting edge lastTurn = %d, want 0", e.LastTurn)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing name", "characters:\n  - name: A\n"},
		{"empty cast", "name: x\ncharacters: []\n"},
		{"duplicate names", "name: x\ncharacters:\n  - name: A\n  - name: A\n"},
		{"unknown mode", "name: x\ncharacters:\n  - name: A\n    mode: clairvoyant\n"},
		{"unknown relationship endpoint", "name: x\ncharacters:\n  - name: A\nrelationships:\n  - source: A\n    target: B\n"},
		{"out-of-range trust", "name: x\ncharacters:\n  - name: A\n  - name: B\nrelationships:\n  - source: A\n    target: B\n    trust: 2.0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeScenario(t, tt.content)); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestBuildRejectsBadTraits(t *testing.T) {
	sc := &Scenario{
		Name: "x",
		Characters: []CharacterConfig{
			{Name: "A", Traits: agents.Traits{Intelligence: 2.0}},
		},
	}
	if _, err := sc.Build(); err == nil {
		t.Error("out-of-range trait should fail the build")
	}
}

func TestDefaultScenarioBuilds(t *testing.T) {
	sc := Default()
	if err := sc.Validate(); err != nil {
		t.Fatalf("default scenario invalid: %v", err)
	}
	cast, err := sc.Build()
	if err != nil {
		t.Fatal(err)
	}
	if len(cast) < 3 {
		t.Errorf("default cast too small: %d", len(cast))
	}
}
