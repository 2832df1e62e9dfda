package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/sproutspoon/backend/internal/engine"
)

func recipeIDs(recipes []engine.Recipe) []string {
	ids := make([]string, 0, len(recipes))
	for _, r := range recipes {
		ids = append(ids, r.ID.String())
	}
	return ids
}

func TestSafetyFilter_ExcludesAllergens(t *testing.T) {
	catalog := testCatalog()
	filter := engine.NewSafetyFilter(testCeilings())
	profile := testProfile(10, []string{"peanuts"}, nil, nil)

	safe, err := filter.Filter(profile, catalog, catalog.Recipes())
	require.NoError(t, err)

	assert.NotContains(t, recipeIDs(safe), idRecipePeanutOats.String(),
		"recipes containing a declared allergen must never surface")
	assert.Contains(t, recipeIDs(safe), idRecipeBananaMash.String())
}

func TestSafetyFilter_ExcludesOutsideAgeWindow(t *testing.T) {
	catalog := testCatalog()
	filter := engine.NewSafetyFilter(testCeilings())
	profile := testProfile(7, nil, nil, nil)

	safe, err := filter.Filter(profile, catalog, catalog.Recipes())
	require.NoError(t, err)

	ids := recipeIDs(safe)
	assert.Contains(t, ids, idRecipeBananaMash.String(), "min age 6 suits a 7-month-old")
	assert.NotContains(t, ids, idRecipeSweetPotato.String(), "min age 9 excludes a 7-month-old")
	assert.NotContains(t, ids, idRecipeToddlerStew.String())
}

func TestSafetyFilter_ExcludesAboveSodiumCeiling(t *testing.T) {
	catalog := testCatalog()
	filter := engine.NewSafetyFilter(testCeilings())

	// 70g of salted chicken is 630mg sodium: over the infant ceiling of
	// 370mg, under the toddler ceiling of 800mg.
	infant := testProfile(10, nil, nil, nil)
	safe, err := filter.Filter(infant, catalog, catalog.Recipes())
	require.NoError(t, err)
	assert.NotContains(t, recipeIDs(safe), idRecipeSaltyChicken.String())

	toddler := testProfile(20, nil, nil, nil)
	safe, err = filter.Filter(toddler, catalog, catalog.Recipes())
	require.NoError(t, err)
	assert.Contains(t, recipeIDs(safe), idRecipeSaltyChicken.String())
}

func TestSafetyFilter_EmptyResultIsNotAnError(t *testing.T) {
	catalog := testCatalog()
	filter := engine.NewSafetyFilter(testCeilings())
	profile := testProfile(4, nil, nil, nil) // younger than every recipe's min age

	safe, err := filter.Filter(profile, catalog, catalog.Recipes())
	require.NoError(t, err)
	assert.Empty(t, safe)
}

func TestSafetyFilter_MissingCeilingBracket(t *testing.T) {
	catalog := testCatalog()
	filter := engine.NewSafetyFilter(testCeilings())
	profile := testProfile(48, nil, nil, nil) // beyond the configured brackets

	_, err := filter.Filter(profile, catalog, catalog.Recipes())
	require.Error(t, err)
	var cfgErr *engine.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}
