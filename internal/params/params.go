// Package params holds every simulation tuning constant in one place.
// No magic numbers at call sites; everything traces back here.
package params

// Social graph.
const (
	// PageRankDamping is the standard damping factor.
	PageRankDamping = 0.85

	// PageRankEpsilon stops iteration once the largest per-node change
	// falls below it.
	PageRankEpsilon = 1e-6

	// PageRankMaxIter caps iteration regardless of convergence.
	PageRankMaxIter = 20

	// TrustDecayRate and IntimacyDecayRate shrink idle edges per turn of
	// inactivity. Decay never flips sign.
	TrustDecayRate    = 0.02
	IntimacyDecayRate = 0.01

	// DefaultTrust and DefaultIntimacy are the neutral values assumed for
	// an absent relationship.
	DefaultTrust    = 0.0
	DefaultIntimacy = 0.1
)

// Beliefs.
const (
	// ObservationThreshold: events with observability below it go unseen.
	ObservationThreshold = 0.5

	// SharedLocationFactor and RemoteLocationFactor scale observability by
	// whether the observer shares the event's location.
	SharedLocationFactor = 1.0
	RemoteLocationFactor = 0.3

	// BeliefPrior is the default confidence for a proposition never
	// observed before, and the equilibrium decay relaxes toward.
	BeliefPrior = 0.5

	// BeliefDecayRate relaxes confidence toward the prior per idle turn.
	BeliefDecayRate = 0.05
)

// Need hierarchy.
const (
	// NeedGateThreshold is the satisfaction level below which a lower
	// tier suppresses the tiers above it.
	NeedGateThreshold = 0.3

	// NeedGateSteepness controls how sharp the sigmoid suppression is.
	NeedGateSteepness = 10.0
)

// NeedBasePriority orders the hierarchy: survival dominates, purpose trails.
var NeedBasePriority = [5]float64{5.0, 4.0, 3.0, 2.0, 1.0}

// Decision engine.
const (
	// RationalityNoiseScale sizes the bounded-rationality perturbation:
	// noise amplitude = (1 - intelligence) * RationalityNoiseScale.
	RationalityNoiseScale = 0.3
)

// Meaning / pressure / chronicle loop.
const (
	// ChronicleThreshold is the pressure level that triggers emission.
	ChronicleThreshold = 2.0

	// ChronicleMinGap is the minimum number of turns between two
	// chronicles of the same meaning type.
	ChronicleMinGap = 3

	// ChronicleRelief scales (not zeroes) a type's pressure at emission.
	ChronicleRelief = 0.4

	// TendencyClamp bounds every action-tag weight to [-TendencyClamp, +TendencyClamp].
	TendencyClamp = 0.6

	// ProbabilityFloor: no action kind's inclined likelihood drops below it.
	ProbabilityFloor = 0.05

	// EchoTTL is the lifetime of a freshly spawned echo, in turns.
	EchoTTL = 3

	// EchoAmplification scales echo re-inflation of existing pressure.
	EchoAmplification = 0.1
)

// Echo tone factors weight amplification by tone.
const (
	TonePositiveFactor  = 0.6
	ToneNegativeFactor  = 1.0
	ToneAmbiguousFactor = 0.3
)

// Meaning-type sensitivity to echo amplification.
const (
	FearSensitivity    = 0.8
	TrustSensitivity   = 0.6
	RespectSensitivity = 0.5
	DefaultSensitivity = 0.7
)

// Default meaning event intensities per triggering action log.
const (
	FearIntensity    = 0.7
	TrustIntensity   = 0.6
	RespectIntensity = 0.6
)

// Orchestration.
const (
	// TurnsPerYear: the year counter advances every TurnsPerYear turns.
	TurnsPerYear = 10
)

// Base action probabilities for reactive characters, before tendency
// inclination. They need not sum to one; the roll normalizes.
const (
	BaseProbMove   = 0.25
	BaseProbSpeak  = 0.35
	BaseProbWait   = 0.25
	BaseProbAttack = 0.15
)

// Action outcome side effects on relationships and victims.
const (
	SpeakTrustGain         = 0.05
	SpeakIntimacyGain      = 0.04
	SpeakReplyTrustGain    = 0.03
	AttackTrustLoss        = 0.25
	AttackIntimacyLoss     = 0.05
	AttackVictimSafetyLoss = 0.1
)

// How conspicuous executed actions are to onlookers, and the evidence they
// carry about their actor.
const (
	AttackVisibility = 0.9
	SpeakVisibility  = 0.6

	DangerousLikelihoodTrue  = 0.8
	DangerousLikelihoodFalse = 0.2
	FriendlyLikelihoodTrue   = 0.7
	FriendlyLikelihoodFalse  = 0.3
)
