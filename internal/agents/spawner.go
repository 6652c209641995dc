// Character spawning creates a cast with trait variation drawn from
// seeded noise so the same seed always produces the same people.
package agents

import (
	"fmt"

	opensimplex "github.com/ojrac/opensimplex-go"

	"seosa/internal/entropy"
)

// Spawner creates characters for the simulation.
type Spawner struct {
	src    *entropy.Source
	noise  opensimplex.Noise
	nextID CharacterID
}

// NewSpawner creates a character spawner with the given seed.
func NewSpawner(seed int64) *Spawner {
	return &Spawner{
		src:    entropy.NewSource(seed + 300),
		noise:  opensimplex.NewNormalized(seed),
		nextID: 1,
	}
}

// SetNextID sets the next character ID to be issued.
func (s *Spawner) SetNextID(id CharacterID) {
	s.nextID = id
}

// defaultNames cycles when a cast outgrows it; overflow gets a numeric suffix.
var defaultNames = []string{
	"Seo-yeon", "Ji-ho", "Ha-eun", "Min-jun", "Da-som", "Tae-yang",
	"Yeon-woo", "Su-bin", "Kang-dae", "Mi-rae", "Hyun-woo", "Bo-ra",
}

// SpawnCast creates count characters at the given location. Trait fields are
// sampled from smooth seeded noise so neighboring ids get correlated but
// distinct dispositions.
func (s *Spawner) SpawnCast(count int, location string) []*Character {
	cast := make([]*Character, 0, count)
	for i := 0; i < count; i++ {
		cast = append(cast, s.spawnOne(location))
	}
	return cast
}

func (s *Spawner) spawnOne(location string) *Character {
	id := s.nextID
	s.nextID++

	name := defaultNames[int(id-1)%len(defaultNames)]
	if int(id-1) >= len(defaultNames) {
		name = fmt.Sprintf("%s %d", name, (int(id-1)/len(defaultNames))+1)
	}

	x := float64(id)
	traits := Traits{
		Intelligence: s.noise.Eval2(x, 0),
		Boldness:     s.noise.Eval2(x, 1),
		Warmth:       s.noise.Eval2(x, 2),
	}

	// Needs start mostly met, with a little per-character spread.
	needs := NeedsState{
		Survival:  0.7 + s.src.Float()*0.3,
		Safety:    0.6 + s.src.Float()*0.3,
		Belonging: 0.5 + s.src.Float()*0.3,
		Esteem:    0.3 + s.src.Float()*0.3,
		Purpose:   0.2 + s.src.Float()*0.3,
	}

	mode := Reactive
	if traits.Intelligence > 0.6 {
		mode = Deliberative
	}

	return &Character{
		ID:       id,
		Name:     name,
		Location: location,
		Mode:     mode,
		Traits:   traits,
		Needs:    needs,
		Alive:    true,
	}
}
