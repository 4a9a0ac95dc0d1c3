package services

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"mirrormirror/internal/models/db_models"
	"mirrormirror/pkg/utils"
)

const (
	maxComposeAttempts  = 3
	minFortuneLength    = 40
	phraseRepeatLimit   = 3
	safeFallbackFortune = "The mirror is quiet right now. Stand before it and speak your truth."
)

type FortuneResult struct {
	Text    string
	Zodiac  string
	Element string
	Tone    string
}

type FortuneServiceInterface interface {
	Generate(ctx context.Context, name, birthdate string, profile db_models.Profile) *FortuneResult
	Hints(profile db_models.Profile) map[string]string
}

type FortuneService struct {
	astro          AstrologyServiceInterface
	oracle         OracleClient
	forceRuleBased bool
	logger         *zap.Logger

	rng *rand.Rand
}

type FortuneOption func(*FortuneService)

// WithSeed enables seeded variability; without it selection is a pure
// function of the profile, which is what the tests rely on.
func WithSeed(seed int64) FortuneOption {
	return func(s *FortuneService) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

func WithVariability() FortuneOption {
	return func(s *FortuneService) {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
}

func NewFortuneService(
	astro AstrologyServiceInterface,
	oracle OracleClient,
	forceRuleBased bool,
	logger *zap.Logger,
	opts ...FortuneOption,
) FortuneServiceInterface {
	s := &FortuneService{
		astro:          astro,
		oracle:         oracle,
		forceRuleBased: forceRuleBased,
		logger:         logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Phrase pools keyed by trait and bucket. Unknown traits draw from the
// fallback pool so a stray category never fails a whole submission.
var phrasePools = map[string]map[db_models.Bucket][]string{
	"mood": {
		db_models.BucketLow: {
			"shadows stir where the mirror does not reach",
			"a hush settles over your reflection tonight",
			"quiet weather moves across your inner sky",
		},
		db_models.BucketMedium: {
			"balance lingers at the glass; take another breath",
			"your spirits hold a steady, workable light",
			"an even keel carries you past small storms",
		},
		db_models.BucketHigh: {
			"a golden light crowns your choices today",
			"radiant energy gathers wherever you linger",
			"the mirror smiles upon this turning of the page",
		},
	},
	"focus": {
		db_models.BucketLow: {
			"your thoughts drift like clouds seeking a shore",
			"you are learning to see the unseen",
			"a wandering eye still gathers scattered treasure",
		},
		db_models.BucketMedium: {
			"your inner lens adjusts slowly toward truth",
			"attention flickers, then settles where it matters",
			"you hold the thread even when it thins",
		},
		db_models.BucketHigh: {
			"your focus cuts through illusions",
			"perception is acute; details arrive vivid",
			"directed energy parts the fog before you",
		},
	},
	"trust": {
		db_models.BucketLow: {
			"you guard your truth like a sacred flame",
			"doubt guides your learning, wisely",
			"your gates open only to the patient",
		},
		db_models.BucketMedium: {
			"you balance faith with careful observation",
			"trust flows where your intuition points",
			"you lend your hand before your heart",
		},
		db_models.BucketHigh: {
			"your heart opens easily to connection",
			"even past wounds teach you grace",
			"faith walks ahead of you, clearing the path",
		},
	},
	"creativity": {
		db_models.BucketLow: {
			"innovation simmers quietly within",
			"hidden sparks of brilliance await discovery",
			"an idle hand still sketches in the dark",
		},
		db_models.BucketMedium: {
			"you weave ideas with unhurried ease",
			"invention visits you in ordinary hours",
			"your craft grows a ring each season",
		},
		db_models.BucketHigh: {
			"a torrent of imagination flows through you",
			"new shapes spill from your smallest gestures",
			"your hands turn plain things luminous",
		},
	},
	"patience": {
		db_models.BucketLow: {
			"action moves faster than thought tonight",
			"urgency sharpens you; mind its edge",
			"you leap where others pause, and sometimes land",
		},
		db_models.BucketMedium: {
			"you balance urgency with deliberation",
			"you wait exactly as long as the moment asks",
			"measured steps carry you past the hasty",
		},
		db_models.BucketHigh: {
			"time bends around your calm resolve",
			"stillness is the strongest of your tools",
			"what you tend slowly will outlast the quick",
		},
	},
	"empathy": {
		db_models.BucketLow: {
			"observation over feeling guides you",
			"you read the room from a clear distance",
			"your cool gaze misses little and spares much",
		},
		db_models.BucketMedium: {
			"you connect meaningfully, when prompted",
			"hearts open to you at their own pace",
			"you carry others lightly, and set them down whole",
		},
		db_models.BucketHigh: {
			"hearts open wherever you tread",
			"you feel the tide beneath every conversation",
			"strangers hand you their weather without asking",
		},
	},
}

var fallbackPhrases = map[db_models.Bucket][]string{
	db_models.BucketLow: {
		"an unnamed current runs low and slow in you",
		"something unmeasured rests, gathering itself",
	},
	db_models.BucketMedium: {
		"an unnamed current moves evenly through you",
		"something unmeasured keeps its own steady time",
	},
	db_models.BucketHigh: {
		"an unnamed current runs bright and strong in you",
		"something unmeasured surges toward the surface",
	},
}

var literalPhrases = []string{
	"the choice of %q says more than a number could",
	"%q sits close to your center; keep it near",
	"you answered %q, and the mirror took note",
}

var adjectives = []string{
	"celestial", "velvet", "luminous", "resonant", "ancient",
	"radiant", "opalescent", "gilded", "nocturnal", "quiet",
}

var omens = []string{
	"a bird's wing caught in the current of morning",
	"the scent of rain on ancient stone",
	"a laugh from a stranger who knows your secret",
	"a folded note you've not yet found",
	"a glint that isn't yours",
}

var toneLines = map[string][]string{
	"bright": {
		"new paths unfold just beyond your steady step",
		"the glass warms at your approach",
	},
	"neutral": {
		"a quiet clarity ripples beneath your surface",
		"consider the space between intent and action",
	},
	"dark": {
		"not all reflections are truth; tread with curiosity",
		"measured caution suits the hour",
	},
}

// Generate renders a fortune for a finalized profile. It never fails: the
// rule-based composer retries with shifted phrase selections when the
// validator rejects an attempt, and after the attempt budget a safe generic
// fortune is returned.
func (s *FortuneService) Generate(ctx context.Context, name, birthdate string, profile db_models.Profile) *FortuneResult {
	zodiac, element := s.astro.Analyze(birthdate)
	tone := deriveTone(profile)

	if s.oracle != nil && !s.forceRuleBased {
		if text, err := s.oracle.Fortune(ctx, name, zodiac, element, tone, profile); err == nil {
			if validateFortune(text, nil) == nil {
				return &FortuneResult{Text: text, Zodiac: zodiac, Element: element, Tone: tone}
			}
			s.logger.Warn("oracle fortune rejected by validator, using rule-based composer")
		} else {
			s.logger.Warn("oracle fortune generation failed", zap.Error(err))
		}
	}

	for attempt := 0; attempt < maxComposeAttempts; attempt++ {
		text, phrases := s.compose(name, zodiac, element, tone, profile, attempt)
		err := validateFortune(text, phrases)
		if err == nil {
			return &FortuneResult{Text: text, Zodiac: zodiac, Element: element, Tone: tone}
		}
		s.logger.Debug("fortune attempt rejected",
			zap.Int("attempt", attempt), zap.Error(err))
	}

	s.logger.Warn("fortune composer exhausted attempts, returning safe fallback",
		zap.String("name", name))
	return &FortuneResult{Text: safeFallbackFortune, Zodiac: zodiac, Element: element, Tone: tone}
}

func (s *FortuneService) compose(name, zodiac, element, tone string, profile db_models.Profile, attempt int) (string, []string) {
	adj := s.pick(adjectives, name, "adjective", attempt)
	omen := s.pick(omens, name, "omen", attempt)
	toneLine := s.pick(toneLines[tone], name, "tone", attempt)

	traits := sortedTraits(profile)
	phrases := make([]string, 0, len(traits))
	for _, trait := range traits {
		phrases = append(phrases, s.traitPhrase(name, trait, profile[trait], attempt))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s, the %s child of %s, %s.\n", name, adj, zodiac, toneLine)
	for _, p := range phrases {
		b.WriteString(strings.ToUpper(p[:1]) + p[1:] + ".\n")
	}
	fmt.Fprintf(&b, "As %s passes, %s\n", omen, s.astro.Hint(element))
	b.WriteString("May your reflection reveal what your eyes do not.")

	return b.String(), phrases
}

func (s *FortuneService) traitPhrase(name, trait string, answer db_models.Answer, attempt int) string {
	if !answer.IsBucket() {
		tmpl := s.pick(literalPhrases, name, trait, attempt)
		return fmt.Sprintf(tmpl, answer.Literal)
	}
	pool, known := phrasePools[trait]
	if !known {
		return s.pick(fallbackPhrases[answer.Bucket], name, trait, attempt)
	}
	return s.pick(pool[answer.Bucket], name, trait, attempt)
}

// pick selects from a pool deterministically by (name, salt, attempt) unless
// seeded variability was requested. Bumping attempt shifts every selection,
// which is how retries escape the validator.
func (s *FortuneService) pick(pool []string, name, salt string, attempt int) string {
	if len(pool) == 0 {
		return ""
	}
	if s.rng != nil {
		return pool[s.rng.Intn(len(pool))]
	}
	h := fnv.New64a()
	h.Write([]byte(name))
	h.Write([]byte{'|'})
	h.Write([]byte(salt))
	idx := (h.Sum64() + uint64(attempt)) % uint64(len(pool))
	return pool[idx]
}

// Hints is the per-trait one-line summary shown next to the fortune.
var hintLines = map[string]map[db_models.Bucket]string{
	"mood": {
		db_models.BucketLow:    "Turbulent energy seeking clarity.",
		db_models.BucketMedium: "Balanced energy, quietly powerful.",
		db_models.BucketHigh:   "Radiant energy, bold and eager.",
	},
	"focus": {
		db_models.BucketLow:    "You are learning to see the unseen.",
		db_models.BucketMedium: "Your inner lens adjusts to truth.",
		db_models.BucketHigh:   "Your focus cuts through illusions.",
	},
	"trust": {
		db_models.BucketLow:    "You guard your truth like a sacred flame.",
		db_models.BucketMedium: "You balance faith with careful observation.",
		db_models.BucketHigh:   "Your heart opens easily to connection.",
	},
	"creativity": {
		db_models.BucketLow:    "Innovation simmers quietly within.",
		db_models.BucketMedium: "You weave ideas with ease.",
		db_models.BucketHigh:   "A torrent of imagination flows through you.",
	},
	"patience": {
		db_models.BucketLow:    "Action moves faster than thought.",
		db_models.BucketMedium: "You balance urgency with deliberation.",
		db_models.BucketHigh:   "Time bends around your calm resolve.",
	},
	"empathy": {
		db_models.BucketLow:    "Observation over feeling guides you.",
		db_models.BucketMedium: "You connect meaningfully, when prompted.",
		db_models.BucketHigh:   "Hearts open wherever you tread.",
	},
}

func (s *FortuneService) Hints(profile db_models.Profile) map[string]string {
	hints := make(map[string]string, len(profile))
	for trait, answer := range profile {
		if !answer.IsBucket() {
			hints[trait] = fmt.Sprintf("You chose %s.", answer.Literal)
			continue
		}
		if pool, ok := hintLines[trait]; ok {
			hints[trait] = pool[answer.Bucket]
			continue
		}
		hints[trait] = "An undefined aura surrounds you."
	}
	return hints
}

// deriveTone averages bucket scores: 1 for low, 3 for medium, 5 for high.
// Literal answers carry no score. An empty or all-literal profile is neutral.
func deriveTone(profile db_models.Profile) string {
	sum, n := 0, 0
	for _, answer := range profile {
		if answer.IsBucket() {
			sum += bucketScore(answer.Bucket)
			n++
		}
	}
	if n == 0 {
		return "neutral"
	}
	avg := float64(sum) / float64(n)
	switch {
	case avg >= 4.2:
		return "bright"
	case avg >= 2.6:
		return "neutral"
	default:
		return "dark"
	}
}

// validateFortune rejects degenerate output: empty or too-short text, the
// same phrase serving too many traits, or any single word dominating the
// text (the signature of junk generative output).
func validateFortune(text string, phrases []string) error {
	t := strings.TrimSpace(text)
	if t == "" {
		return fmt.Errorf("%w: empty text", utils.ErrFortuneRejected)
	}
	if len(t) < minFortuneLength {
		return fmt.Errorf("%w: below minimum length (%d)", utils.ErrFortuneRejected, len(t))
	}

	counts := map[string]int{}
	for _, p := range phrases {
		counts[p]++
		if counts[p] >= phraseRepeatLimit {
			return fmt.Errorf("%w: phrase repeated for %d traits", utils.ErrFortuneRejected, counts[p])
		}
	}

	words := strings.Fields(strings.ToLower(t))
	if len(words) > 5 {
		wordCounts := map[string]int{}
		most := 0
		for _, w := range words {
			wordCounts[w]++
			if wordCounts[w] > most {
				most = wordCounts[w]
			}
		}
		if float64(most) > float64(len(words))*0.6 {
			return fmt.Errorf("%w: one word covers %d of %d", utils.ErrFortuneRejected, most, len(words))
		}
	}
	return nil
}

func sortedTraits(profile db_models.Profile) []string {
	traits := make([]string, 0, len(profile))
	for trait := range profile {
		traits = append(traits, trait)
	}
	sort.Strings(traits)
	return traits
}
