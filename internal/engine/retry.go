package engine

import (
	"fmt"
	"sort"
	"time"
)

// AttemptState is the per-(baby, ingredient) position in the retry state
// machine. Each rejection advances one step, capped at the terminal state;
// an acceptance removes the pair from tracking entirely.
type AttemptState string

const (
	StateUntried            AttemptState = "untried"
	StateTriedOnce          AttemptState = "tried_once"
	StateRejectedTwice      AttemptState = "rejected_twice"
	StateRejectedThricePlus AttemptState = "rejected_thrice_plus"
)

// StrategyKind names the retry policy chosen for an attempt state.
type StrategyKind string

const (
	StrategyFirstTaste         StrategyKind = "first_taste"
	StrategyAlternateStyle     StrategyKind = "alternate_style"
	StrategyMixWithLiked       StrategyKind = "mix_with_liked"
	StrategyDeferAndSubstitute StrategyKind = "defer_and_substitute"
)

// AttemptRecord is a materialized view over the feedback log for one
// (baby, ingredient) pair. It is rebuilt from the log on every request and
// never stored, so it cannot drift from the events it summarizes.
type AttemptRecord struct {
	Ingredient  string
	Rejections  int
	StylesTried []PreparationStyle // in attempt order, deduplicated
	LastAttempt time.Time
}

// State maps the rejection count onto the retry state machine.
func (r AttemptRecord) State() AttemptState {
	switch {
	case r.Rejections == 0:
		return StateUntried
	case r.Rejections == 1:
		return StateTriedOnce
	case r.Rejections == 2:
		return StateRejectedTwice
	default:
		return StateRejectedThricePlus
	}
}

// BuildAttemptRecords replays the feedback log and produces the attempt view
// for every ingredient the baby currently dislikes. Events must be ordered
// oldest first. An acceptance of a recipe containing the ingredient resets
// the pair to untried.
func BuildAttemptRecords(profile ProfileContext, catalog *Catalog, history FeedbackHistory) map[string]AttemptRecord {
	records := make(map[string]AttemptRecord, len(profile.Disliked()))

	for _, ingredient := range profile.Disliked() {
		rec := AttemptRecord{Ingredient: ingredient}
		for _, ev := range history {
			recipe, ok := catalog.RecipeByID(ev.RecipeID)
			if !ok || !catalog.RecipeContains(recipe, ingredient) {
				continue
			}
			if ev.Accepted {
				rec = AttemptRecord{Ingredient: ingredient}
				continue
			}
			rec.Rejections++
			rec.LastAttempt = ev.OccurredAt
			if !stylesContain(rec.StylesTried, recipe.Style) {
				rec.StylesTried = append(rec.StylesTried, recipe.Style)
			}
		}
		records[ingredient] = rec
	}
	return records
}

// RetrySuggestion is the engine's proposal for the next attempt at a
// previously rejected ingredient.
type RetrySuggestion struct {
	Ingredient     string           `json:"ingredient"`
	State          AttemptState     `json:"state"`
	AttemptCount   int              `json:"attempt_count"`
	ShouldRetry    bool             `json:"should_retry"`
	Reason         string           `json:"reason"`
	Strategy       StrategyKind     `json:"strategy"`
	SuggestedStyle PreparationStyle `json:"suggested_style,omitempty"`
	MixWith        string           `json:"mix_with,omitempty"`
	NextRetryAt    time.Time        `json:"next_retry_at,omitempty"`
}

// RetryStrategyTracker derives progressive retry strategies from the attempt
// view. It holds no per-baby state of its own.
type RetryStrategyTracker struct {
	retryInterval time.Duration
}

// DefaultRetryInterval is the minimum spacing between attempts at the same
// ingredient. Taste acceptance in infants improves with spaced re-exposure.
const DefaultRetryInterval = 14 * 24 * time.Hour

// NewRetryStrategyTracker creates a tracker. A zero interval falls back to
// the default two weeks.
func NewRetryStrategyTracker(retryInterval time.Duration) *RetryStrategyTracker {
	if retryInterval <= 0 {
		retryInterval = DefaultRetryInterval
	}
	return &RetryStrategyTracker{retryInterval: retryInterval}
}

// NextStrategy proposes the next approach for one (baby, ingredient) pair.
func (t *RetryStrategyTracker) NextStrategy(profile ProfileContext, rec AttemptRecord, now time.Time) RetrySuggestion {
	s := RetrySuggestion{
		Ingredient:   rec.Ingredient,
		State:        rec.State(),
		AttemptCount: rec.Rejections,
	}

	if !rec.LastAttempt.IsZero() {
		nextAt := rec.LastAttempt.Add(t.retryInterval)
		if now.Before(nextAt) {
			s.ShouldRetry = false
			s.NextRetryAt = nextAt
			s.Strategy = strategyForState(s.State)
			s.Reason = fmt.Sprintf("last attempt was %d days ago; wait before retrying",
				int(now.Sub(rec.LastAttempt).Hours()/24))
			return s
		}
	}

	s.ShouldRetry = true
	s.Strategy = strategyForState(s.State)
	switch s.State {
	case StateUntried:
		s.SuggestedStyle = t.nextStyle(rec)
		s.Reason = "never tried before"
	case StateTriedOnce:
		s.SuggestedStyle = t.nextStyle(rec)
		s.Reason = "one rejection; a different preparation may land better"
	case StateRejectedTwice:
		s.MixWith = firstLiked(profile)
		s.Reason = "two rejections; masking with a familiar favorite helps acceptance"
	default:
		s.ShouldRetry = false
		s.Reason = "multiple rejections; focus on nutritional alternatives for now"
	}
	return s
}

// Suggestions builds retry suggestions for every disliked ingredient,
// sorted by ingredient name for deterministic output.
func (t *RetryStrategyTracker) Suggestions(profile ProfileContext, catalog *Catalog, history FeedbackHistory, now time.Time) []RetrySuggestion {
	records := BuildAttemptRecords(profile, catalog, history)
	ingredients := make([]string, 0, len(records))
	for name := range records {
		ingredients = append(ingredients, name)
	}
	sort.Strings(ingredients)

	out := make([]RetrySuggestion, 0, len(ingredients))
	for _, name := range ingredients {
		out = append(out, t.NextStrategy(profile, records[name], now))
	}
	return out
}

// nextStyle picks the first rotation style not yet attempted for the pair.
// Once every style has been tried the rotation restarts after the most
// recently attempted one, so repeats only happen after exhaustion.
func (t *RetryStrategyTracker) nextStyle(rec AttemptRecord) PreparationStyle {
	for _, style := range StyleRotation {
		if !stylesContain(rec.StylesTried, style) {
			return style
		}
	}
	last := rec.StylesTried[len(rec.StylesTried)-1]
	for i, style := range StyleRotation {
		if style == last {
			return StyleRotation[(i+1)%len(StyleRotation)]
		}
	}
	return StyleRotation[0]
}

func strategyForState(state AttemptState) StrategyKind {
	switch state {
	case StateUntried:
		return StrategyFirstTaste
	case StateTriedOnce:
		return StrategyAlternateStyle
	case StateRejectedTwice:
		return StrategyMixWithLiked
	default:
		return StrategyDeferAndSubstitute
	}
}

func firstLiked(profile ProfileContext) string {
	liked := profile.Liked()
	if len(liked) == 0 {
		return ""
	}
	return liked[0]
}

func stylesContain(styles []PreparationStyle, style PreparationStyle) bool {
	for _, s := range styles {
		if s == style {
			return true
		}
	}
	return false
}
