package engine_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/sproutspoon/backend/internal/engine"
)

func newResolver() *engine.AlternativeResolver {
	return engine.NewAlternativeResolver(engine.NewSafetyFilter(testCeilings()), 0, 0)
}

func TestFindAlternatives_SuggestsSimilarIngredient(t *testing.T) {
	catalog := testCatalog()
	profile := testProfile(10, nil, nil, []string{"carrot"})

	set, err := newResolver().FindAlternatives(profile, catalog, "carrot")
	require.NoError(t, err)

	require.True(t, set.Found)
	names := make([]string, 0, len(set.Substitutes))
	for _, s := range set.Substitutes {
		names = append(names, s.Name)
	}
	assert.Contains(t, names, "sweet potato",
		"sweet potato shares carrot's nutrient shape and should clear the threshold")
	assert.NotContains(t, names, "carrot", "an ingredient is never its own substitute")
	for _, s := range set.Substitutes {
		assert.GreaterOrEqual(t, s.Similarity, engine.DefaultMinSimilarity)
	}
}

func TestFindAlternatives_SubstitutesAreOrderedBySimilarity(t *testing.T) {
	catalog := testCatalog()
	profile := testProfile(10, nil, nil, []string{"carrot"})

	set, err := newResolver().FindAlternatives(profile, catalog, "carrot")
	require.NoError(t, err)
	for i := 1; i < len(set.Substitutes); i++ {
		assert.GreaterOrEqual(t, set.Substitutes[i-1].Similarity, set.Substitutes[i].Similarity)
	}
}

func TestFindAlternatives_SkipsDislikedAndAllergenicCandidates(t *testing.T) {
	catalog := testCatalog()
	profile := testProfile(10, []string{"peanuts"}, nil, []string{"carrot", "sweet potato"})

	set, err := newResolver().FindAlternatives(profile, catalog, "carrot")
	require.NoError(t, err)
	for _, s := range set.Substitutes {
		assert.NotEqual(t, "sweet potato", s.Name, "a substitute the baby dislikes is no help")
		assert.NotEqual(t, "peanut butter", s.Name, "allergenic substitutes are excluded outright")
	}
}

func TestFindAlternatives_NoSimilarIngredientIsExplicit(t *testing.T) {
	// Lemon shares no nutrient dimensions with the rest of this catalog, so
	// every similarity is zero and nothing clears the threshold.
	lemon := engine.Ingredient{
		ID:        uuid.MustParse("00000000-0000-0000-0000-0000000000aa"),
		Name:      "lemon",
		Nutrients: engine.NutrientVector{engine.NutrientVitaminD: 1},
	}
	oat := engine.Ingredient{
		ID:        uuid.MustParse("00000000-0000-0000-0000-0000000000ab"),
		Name:      "oat",
		Nutrients: engine.NutrientVector{engine.NutrientFiber: 10},
	}
	catalog := engine.NewCatalog([]engine.Ingredient{lemon, oat}, nil)
	profile := testProfile(10, nil, nil, []string{"lemon"})

	set, err := newResolver().FindAlternatives(profile, catalog, "lemon")
	require.NoError(t, err)
	assert.False(t, set.Found)
	assert.Empty(t, set.Substitutes)
	assert.Empty(t, set.Recipes)
}

func TestFindAlternatives_UnknownIngredient(t *testing.T) {
	catalog := testCatalog()
	profile := testProfile(10, nil, nil, nil)

	_, err := newResolver().FindAlternatives(profile, catalog, "dragonfruit")
	require.Error(t, err)
	var valErr *engine.ValidationError
	assert.ErrorAs(t, err, &valErr)
}

func TestFindAlternatives_RecipesOmitTheReplacedIngredient(t *testing.T) {
	catalog := testCatalog()
	profile := testProfile(10, nil, nil, []string{"carrot"})

	set, err := newResolver().FindAlternatives(profile, catalog, "carrot")
	require.NoError(t, err)
	for _, alt := range set.Recipes {
		assert.False(t, catalog.RecipeContains(alt.Recipe, "carrot"),
			"alternative recipes must not contain the ingredient being replaced")
		assert.True(t, alt.Recipe.SuitableForAge(profile.AgeMonths),
			"alternative recipes still pass the safety filter")
	}
}
