package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/sproutspoon/backend/internal/engine"
)

func suggestionFor(t *testing.T, list []engine.RetrySuggestion, ingredient string) engine.RetrySuggestion {
	t.Helper()
	for _, s := range list {
		if s.Ingredient == ingredient {
			return s
		}
	}
	t.Fatalf("no suggestion for %q", ingredient)
	return engine.RetrySuggestion{}
}

func TestRetry_StateAdvancesPerRejection(t *testing.T) {
	catalog := testCatalog()
	profile := testProfile(10, nil, []string{"banana"}, []string{"spinach"})
	tracker := engine.NewRetryStrategyTracker(0)

	history := engine.FeedbackHistory{
		rejectionAt(idRecipeSpinachPuree, 40),
		rejectionAt(idRecipeSpinachBake, 20),
	}
	s := suggestionFor(t, tracker.Suggestions(profile, catalog, history, time.Now()), "spinach")

	assert.Equal(t, engine.StateRejectedTwice, s.State)
	assert.Equal(t, 2, s.AttemptCount)
	assert.Equal(t, engine.StrategyMixWithLiked, s.Strategy)
	assert.Equal(t, "banana", s.MixWith)
	assert.True(t, s.ShouldRetry)
}

func TestRetry_AlternateStyleNeverRepeats(t *testing.T) {
	catalog := testCatalog()
	profile := testProfile(10, nil, nil, []string{"spinach"})
	tracker := engine.NewRetryStrategyTracker(0)

	history := engine.FeedbackHistory{rejectionAt(idRecipeSpinachPuree, 20)}
	s := suggestionFor(t, tracker.Suggestions(profile, catalog, history, time.Now()), "spinach")

	assert.Equal(t, engine.StateTriedOnce, s.State)
	assert.Equal(t, engine.StrategyAlternateStyle, s.Strategy)
	assert.NotEqual(t, engine.StylePureed, s.SuggestedStyle,
		"the rejected preparation style is not proposed again before the rotation is exhausted")
	assert.True(t, s.ShouldRetry)
}

func TestRetry_StyleRotationWrapsAfterExhaustion(t *testing.T) {
	tracker := engine.NewRetryStrategyTracker(0)
	profile := testProfile(10, nil, nil, []string{"spinach"})
	rec := engine.AttemptRecord{
		Ingredient: "spinach",
		Rejections: 1,
		StylesTried: []engine.PreparationStyle{
			engine.StylePureed, engine.StyleMashed, engine.StyleRoasted,
			engine.StyleBakedMixed, engine.StyleFingerFood, engine.StyleSteamed,
		},
		LastAttempt: time.Now().AddDate(0, 0, -30),
	}

	s := tracker.NextStrategy(profile, rec, time.Now())
	assert.Equal(t, engine.StyleRoasted, s.SuggestedStyle,
		"after exhaustion the rotation restarts from the successor of the last attempted style")
}

func TestRetry_IntervalGateDefersAttempt(t *testing.T) {
	catalog := testCatalog()
	profile := testProfile(10, nil, nil, []string{"spinach"})
	tracker := engine.NewRetryStrategyTracker(0)

	history := engine.FeedbackHistory{rejectionAt(idRecipeSpinachPuree, 5)}
	s := suggestionFor(t, tracker.Suggestions(profile, catalog, history, time.Now()), "spinach")

	assert.False(t, s.ShouldRetry, "a 5-day-old rejection is inside the 14-day spacing window")
	assert.False(t, s.NextRetryAt.IsZero())
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 9), s.NextRetryAt, time.Hour)
}

func TestRetry_ThreeRejectionsDeferToSubstitutes(t *testing.T) {
	catalog := testCatalog()
	profile := testProfile(10, nil, nil, []string{"spinach"})
	tracker := engine.NewRetryStrategyTracker(0)

	history := engine.FeedbackHistory{
		rejectionAt(idRecipeSpinachPuree, 60),
		rejectionAt(idRecipeSpinachBake, 40),
		rejectionAt(idRecipeSpinachPuree, 20),
	}
	s := suggestionFor(t, tracker.Suggestions(profile, catalog, history, time.Now()), "spinach")

	assert.Equal(t, engine.StateRejectedThricePlus, s.State)
	assert.Equal(t, engine.StrategyDeferAndSubstitute, s.Strategy)
	assert.False(t, s.ShouldRetry)
}

func TestRetry_AcceptanceResetsTheRecord(t *testing.T) {
	catalog := testCatalog()
	profile := testProfile(10, nil, nil, []string{"spinach"})

	history := engine.FeedbackHistory{
		rejectionAt(idRecipeSpinachPuree, 40),
		rejectionAt(idRecipeSpinachBake, 30),
		acceptanceAt(idRecipeSpinachPuree, 20, 4),
	}
	records := engine.BuildAttemptRecords(profile, catalog, history)

	rec, ok := records["spinach"]
	require.True(t, ok)
	assert.Equal(t, engine.StateUntried, rec.State())
	assert.Zero(t, rec.Rejections)
}

func TestRetry_SuggestionsSortedByIngredient(t *testing.T) {
	catalog := testCatalog()
	profile := testProfile(10, nil, nil, []string{"spinach", "carrot", "banana"})
	tracker := engine.NewRetryStrategyTracker(0)

	list := tracker.Suggestions(profile, catalog, nil, time.Now())
	require.Len(t, list, 3)
	assert.Equal(t, "banana", list[0].Ingredient)
	assert.Equal(t, "carrot", list[1].Ingredient)
	assert.Equal(t, "spinach", list[2].Ingredient)
}

func TestRetry_RejectionsOnRetiredVersionsStillCount(t *testing.T) {
	catalog := testCatalogWithRetired(idRecipeSpinachPuree)
	profile := testProfile(10, nil, []string{"banana"}, []string{"spinach"})
	tracker := engine.NewRetryStrategyTracker(0)

	history := engine.FeedbackHistory{
		rejectionAt(idRecipeSpinachPuree, 40),
		rejectionAt(idRecipeSpinachBake, 20),
	}
	s := suggestionFor(t, tracker.Suggestions(profile, catalog, history, time.Now()), "spinach")

	assert.Equal(t, engine.StateRejectedTwice, s.State)
	assert.Equal(t, 2, s.AttemptCount)
	assert.Equal(t, engine.StrategyMixWithLiked, s.Strategy)
}
