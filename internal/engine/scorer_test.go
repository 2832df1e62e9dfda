package engine_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/sproutspoon/backend/internal/engine"
)

func TestScore_DislikeIsSoftPenaltyNotExclusion(t *testing.T) {
	catalog := testCatalog()
	scorer := engine.NewPreferenceScorer(engine.DefaultScoreWeights)
	profile := testProfile(10, nil, []string{"banana"}, []string{"carrot"})

	ranked := scorer.Score(profile, catalog, testRecipes(), nil)

	var pancakes *engine.ScoredRecipe
	for i := range ranked {
		if ranked[i].Recipe.ID == idRecipeCarrotBanana {
			pancakes = &ranked[i]
		}
	}
	require.NotNil(t, pancakes, "recipe with a disliked ingredient must stay in the result set")
	assert.True(t, pancakes.PenaltyApplied)
	assert.True(t, pancakes.IsRetry)
	assert.Greater(t, pancakes.Score, 0.0)
	assert.Greater(t, pancakes.OriginalScore, pancakes.Score,
		"penalty lowers the score relative to the unpenalized one")
}

func TestScore_LikedIngredientsRankHigher(t *testing.T) {
	catalog := testCatalog()
	scorer := engine.NewPreferenceScorer(engine.DefaultScoreWeights)
	profile := testProfile(10, nil, []string{"banana"}, []string{"carrot"})

	ranked := scorer.Score(profile, catalog, testRecipes(), nil)
	require.NotEmpty(t, ranked)

	pos := make(map[uuid.UUID]int, len(ranked))
	for i, r := range ranked {
		pos[r.Recipe.ID] = i
	}
	assert.Less(t, pos[idRecipeBananaMash], pos[idRecipeCarrotBanana],
		"an all-liked recipe outranks a half-disliked one")
}

func TestScore_Deterministic(t *testing.T) {
	catalog := testCatalog()
	scorer := engine.NewPreferenceScorer(engine.DefaultScoreWeights)
	profile := testProfile(10, nil, []string{"banana", "spinach"}, []string{"carrot"})
	history := engine.FeedbackHistory{
		acceptanceAt(idRecipeBananaMash, 3, 5),
		rejectionAt(idRecipeSpinachPuree, 10),
	}

	first := scorer.Score(profile, catalog, testRecipes(), history)
	second := scorer.Score(profile, catalog, testRecipes(), history)
	require.Equal(t, first, second, "identical inputs must produce identical ordering")
}

func TestScore_TieBreaksOnRecipeID(t *testing.T) {
	ing := engine.Ingredient{
		ID:   idBanana,
		Name: "banana",
		Nutrients: engine.NutrientVector{
			engine.NutrientCalories: 89,
			engine.NutrientFiber:    2.6,
		},
	}
	idLow := uuid.MustParse("30000000-0000-0000-0000-000000000001")
	idHigh := uuid.MustParse("30000000-0000-0000-0000-000000000002")
	twin := func(id uuid.UUID, name string) engine.Recipe {
		return engine.Recipe{
			ID: id, Name: name, MinAgeMonths: 6, PrepTimeMinutes: 5,
			Style: engine.StyleMashed, MealType: "breakfast",
			Portions: []engine.RecipePortion{{IngredientID: idBanana, QuantityGrams: 80, Unit: "g"}},
		}
	}
	catalog := engine.NewCatalog([]engine.Ingredient{ing}, []engine.Recipe{
		twin(idHigh, "Twin B"),
		twin(idLow, "Twin A"),
	})

	scorer := engine.NewPreferenceScorer(engine.DefaultScoreWeights)
	ranked := scorer.Score(testProfile(10, nil, nil, nil), catalog, catalog.Recipes(), nil)

	require.Len(t, ranked, 2)
	assert.Equal(t, ranked[0].Score, ranked[1].Score)
	assert.Equal(t, idLow, ranked[0].Recipe.ID, "equal scores break on recipe ID ascending")
}

func TestScore_HistoryInfluencesRanking(t *testing.T) {
	catalog := testCatalog()
	scorer := engine.NewPreferenceScorer(engine.DefaultScoreWeights)
	profile := testProfile(10, nil, nil, nil)

	history := engine.FeedbackHistory{
		acceptanceAt(idRecipeSpinachPuree, 2, 5),
		acceptanceAt(idRecipeSpinachPuree, 5, 5),
	}
	ranked := scorer.Score(profile, catalog, testRecipes(), history)
	baseline := scorer.Score(profile, catalog, testRecipes(), nil)

	scoreOf := func(list []engine.ScoredRecipe, id uuid.UUID) float64 {
		for _, r := range list {
			if r.Recipe.ID == id {
				return r.Score
			}
		}
		t.Fatalf("recipe %s not in result", id)
		return 0
	}
	assert.Greater(t,
		scoreOf(ranked, idRecipeSpinachPuree),
		scoreOf(baseline, idRecipeSpinachPuree),
		"consistently top-rated recipes score above their no-history baseline")
}

func TestScore_DropsAllergenViolatorsDefensively(t *testing.T) {
	catalog := testCatalog()
	scorer := engine.NewPreferenceScorer(engine.DefaultScoreWeights)
	profile := testProfile(10, []string{"peanuts"}, nil, nil)

	// Hand the scorer the unfiltered candidate list on purpose.
	ranked := scorer.Score(profile, catalog, testRecipes(), nil)
	for _, r := range ranked {
		assert.NotEqual(t, idRecipePeanutOats, r.Recipe.ID)
	}
}
