package meaning

import (
	"math"
	"testing"

	"seosa/internal/agents"
	"seosa/internal/params"
)

func attackLog(id, turn uint64) agents.ActionLog {
	target := agents.CharacterID(2)
	return agents.ActionLog{
		ID:   id,
		Turn: turn,
		Action: agents.Action{
			ActorID:  1,
			TargetID: &target,
			Kind:     agents.ActionAttack,
			Tags:     agents.KindTags[agents.ActionAttack],
		},
	}
}

func speakLog(id, turn uint64) agents.ActionLog {
	target := agents.CharacterID(2)
	return agents.ActionLog{
		ID:   id,
		Turn: turn,
		Action: agents.Action{
			ActorID:  1,
			TargetID: &target,
			Kind:     agents.ActionSpeak,
			Tags:     agents.KindTags[agents.ActionSpeak],
		},
	}
}

func TestDefaultRegistryEvaluation(t *testing.T) {
	reg := DefaultRegistry()
	if reg.Len() != 3 {
		t.Fatalf("default registry has %d evaluators, want 3", reg.Len())
	}

	logs := []agents.ActionLog{attackLog(1, 5), speakLog(2, 5)}
	events := reg.EvaluateAll(logs)

	// Attack is RISKY+AGGRESSIVE, speak is SOCIAL: fear, trust, respect.
	counts := map[Type]int{}
	for _, ev := range events {
		counts[ev.Type]++
		if ev.Turn != 5 {
			t.Errorf("event turn = %d, want 5", ev.Turn)
		}
	}
	if counts[TypeFear] != 1 || counts[TypeTrust] != 1 || counts[TypeRespect] != 1 {
		t.Errorf("event counts = %v", counts)
	}
}

func TestCustomEvaluatorExtension(t *testing.T) {
	reg := NewRegistry()
	reg.Register(waitDullness{})

	logs := []agents.ActionLog{{
		ID: 1, Turn: 1,
		Action: agents.Action{ActorID: 1, Kind: agents.ActionWait, Tags: agents.KindTags[agents.ActionWait]},
	}}
	events := reg.EvaluateAll(logs)
	if len(events) != 1 || events[0].Type != Type("BOREDOM") {
		t.Errorf("custom evaluator events = %v", events)
	}
}

type waitDullness struct{}

func (waitDullness) Type() Type { return "BOREDOM" }
func (waitDullness) Evaluate(logs []agents.ActionLog) []Event {
	return tagEvents(logs, agents.TagSafe, "BOREDOM", 0.2)
}

func TestAccumulateIsPure(t *testing.T) {
	p := Pressure{TypeFear: 1.0}
	out := Accumulate(p, []Event{{Type: TypeFear, Intensity: 0.7}, {Type: TypeTrust, Intensity: 0.6}})

	if p[TypeFear] != 1.0 || len(p) != 1 {
		t.Errorf("input mutated: %v", p)
	}
	if math.Abs(out[TypeFear]-1.7) > 1e-12 || math.Abs(out[TypeTrust]-0.6) > 1e-12 {
		t.Errorf("accumulated = %v", out)
	}
}

func TestAmplify(t *testing.T) {
	p := Pressure{TypeFear: 1.0, TypeTrust: 0.0}
	echoes := []Echo{{Tone: ToneNegative, TTL: 2}}

	out := Amplify(p, echoes)
	// 1.0 + 1.0*1.0*0.8*0.1
	if math.Abs(out[TypeFear]-1.08) > 1e-12 {
		t.Errorf("fear amplified to %v, want 1.08", out[TypeFear])
	}
	// Echoes only amplify existing magnitude.
	if out[TypeTrust] != 0 {
		t.Errorf("zero pressure amplified: %v", out[TypeTrust])
	}
	if p[TypeFear] != 1.0 {
		t.Errorf("input mutated: %v", p)
	}

	// Each live echo applies once.
	two := Amplify(p, []Echo{{Tone: ToneNegative, TTL: 2}, {Tone: ToneNegative, TTL: 1}})
	want := 1.08 * 1.08
	if math.Abs(two[TypeFear]-want) > 1e-12 {
		t.Errorf("double amplification = %v, want %v", two[TypeFear], want)
	}
}

func TestEchoLifecycle(t *testing.T) {
	events := []Event{{Type: TypeFear, Intensity: 0.7}, {Type: TypeTrust, Intensity: 0.6}}
	echoes := SpawnEchoes(events, 4)

	if len(echoes) != 2 {
		t.Fatalf("spawned %d echoes, want 2", len(echoes))
	}
	if echoes[0].Tone != ToneNegative {
		t.Error("fear echo should be negative")
	}
	if echoes[1].Tone != TonePositive {
		t.Error("trust echo should be positive")
	}
	for i, e := range echoes {
		if e.TTL != params.EchoTTL {
			t.Errorf("echo %d TTL = %d, want %d", i, e.TTL, params.EchoTTL)
		}
		if e.Distortion < 0 || e.Distortion >= 1 {
			t.Errorf("echo %d distortion out of [0,1): %v", i, e.Distortion)
		}
	}

	// Distortion is deterministic for the same context.
	again := SpawnEchoes(events, 4)
	if again[0].Distortion != echoes[0].Distortion {
		t.Error("distortion not reproducible")
	}

	// Three agings exhaust the standard TTL.
	alive := echoes
	for i := 0; i < params.EchoTTL-1; i++ {
		alive = AgeEchoes(alive)
		if len(alive) != 2 {
			t.Fatalf("aging %d killed echoes early: %d left", i+1, len(alive))
		}
	}
	alive = AgeEchoes(alive)
	if len(alive) != 0 {
		t.Errorf("%d echoes survived past TTL", len(alive))
	}
}

func TestEmitThresholdAndRelief(t *testing.T) {
	p := Pressure{TypeFear: 2.5, TypeTrust: 1.9}
	chronicles, outP, outLast := Emit(p, map[Type]uint64{}, 10, 2)

	if len(chronicles) != 1 {
		t.Fatalf("emitted %d chronicles, want 1: %v", len(chronicles), chronicles)
	}
	c := chronicles[0]
	if c.Type != TypeFear || c.Turn != 10 || c.Year != 2 {
		t.Errorf("chronicle = %+v", c)
	}
	if c.Summary == "" {
		t.Error("chronicle missing summary")
	}

	if math.Abs(outP[TypeFear]-1.0) > 1e-12 {
		t.Errorf("relieved fear pressure = %v, want 1.0", outP[TypeFear])
	}
	if outP[TypeTrust] != 1.9 {
		t.Errorf("sub-threshold pressure touched: %v", outP[TypeTrust])
	}
	if outLast[TypeFear] != 10 {
		t.Errorf("lastEmit = %v", outLast)
	}
	// Inputs untouched.
	if p[TypeFear] != 2.5 {
		t.Errorf("input pressure mutated: %v", p)
	}
}

func TestEmitCooldown(t *testing.T) {
	// Emitted at turn 10; still hot at turn 11: gap of 1 blocks.
	p := Pressure{TypeFear: 3.0}
	last := map[Type]uint64{TypeFear: 10}

	chronicles, _, _ := Emit(p, last, 11, 2)
	if len(chronicles) != 0 {
		t.Errorf("emitted during cooldown: %v", chronicles)
	}

	// Gap of exactly ChronicleMinGap allows emission again.
	chronicles, outP, _ := Emit(p, last, 10+params.ChronicleMinGap, 2)
	if len(chronicles) != 1 {
		t.Fatalf("gap of %d should emit, got %v", params.ChronicleMinGap, chronicles)
	}
	if math.Abs(outP[TypeFear]-3.0*params.ChronicleRelief) > 1e-12 {
		t.Errorf("relieved pressure = %v", outP[TypeFear])
	}
}

func TestApplyChroniclesTendency(t *testing.T) {
	chronicles := []Chronicle{{Type: TypeFear}, {Type: TypeTrust}}
	out := ApplyChronicles(Tendency{}, chronicles)

	if math.Abs(out[agents.TagRisky]-(-0.10)) > 1e-12 {
		t.Errorf("RISKY = %v, want -0.10", out[agents.TagRisky])
	}
	if math.Abs(out[agents.TagSafe]-0.08) > 1e-12 {
		t.Errorf("SAFE = %v, want 0.08", out[agents.TagSafe])
	}
	if math.Abs(out[agents.TagSocial]-0.08) > 1e-12 {
		t.Errorf("SOCIAL = %v, want 0.08", out[agents.TagSocial])
	}
	if math.Abs(out[agents.TagPassive]-(-0.04)) > 1e-12 {
		t.Errorf("PASSIVE = %v, want -0.04", out[agents.TagPassive])
	}
}

func TestApplyChroniclesClamps(t *testing.T) {
	t10 := Tendency{}
	fearAge := make([]Chronicle, 10)
	for i := range fearAge {
		fearAge[i] = Chronicle{Type: TypeFear}
	}
	out := ApplyChronicles(t10, fearAge)

	if out[agents.TagRisky] != -params.TendencyClamp {
		t.Errorf("RISKY = %v, want clamp %v", out[agents.TagRisky], -params.TendencyClamp)
	}
	if math.Abs(out[agents.TagSafe]-params.TendencyClamp) > 1e-12 {
		t.Errorf("SAFE = %v, want clamp %v", out[agents.TagSafe], params.TendencyClamp)
	}
	// Input untouched.
	if len(t10) != 0 {
		t.Errorf("input tendency mutated: %v", t10)
	}
}

func TestInclineProbabilityFloor(t *testing.T) {
	tend := Tendency{agents.TagRisky: -0.6, agents.TagAggressive: -0.6}
	got := InclineProbability(0.15, agents.KindTags[agents.ActionAttack], tend)
	if got != params.ProbabilityFloor {
		t.Errorf("inclined probability = %v, want floor %v", got, params.ProbabilityFloor)
	}

	boosted := InclineProbability(0.35, agents.KindTags[agents.ActionSpeak], Tendency{agents.TagSocial: 0.2})
	if math.Abs(boosted-0.55) > 1e-12 {
		t.Errorf("boosted probability = %v, want 0.55", boosted)
	}
}
