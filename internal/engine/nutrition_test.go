package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/sproutspoon/backend/internal/engine"
)

func TestAnalyze_FlagsIronDeficiency(t *testing.T) {
	catalog := testCatalog()
	agg := engine.NewNutrientAggregator(testTargets())
	profile := testProfile(10, nil, nil, nil)

	// Four accepted spinach purees in the window: 4 * 60g * 2.7mg/100g =
	// 6.48mg iron against an 11mg weekly target, roughly 59%.
	history := engine.FeedbackHistory{
		acceptanceAt(idRecipeSpinachPuree, 1, 4),
		acceptanceAt(idRecipeSpinachPuree, 2, 4),
		acceptanceAt(idRecipeSpinachPuree, 4, 5),
		acceptanceAt(idRecipeSpinachPuree, 6, 3),
	}
	report, err := agg.Analyze(profile, catalog, history, 7, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 7, report.WindowDays)
	assert.Equal(t, 4, report.TotalMeals)

	iron, ok := report.Nutrients[engine.NutrientIron]
	require.True(t, ok)
	assert.InDelta(t, 6.48, iron.Total, 1e-9)
	assert.InDelta(t, 11.0, iron.Target, 1e-9)
	assert.InDelta(t, 58.9, iron.Percentage, 0.1)
	assert.Equal(t, engine.StatusDeficient, iron.Status)
	assert.Contains(t, report.Deficient, engine.NutrientIron)

	// 237.6mg calcium against 260mg is 91%, comfortably adequate.
	calcium := report.Nutrients[engine.NutrientCalcium]
	assert.Equal(t, engine.StatusAdequate, calcium.Status)
	assert.NotContains(t, report.Excessive, engine.NutrientCalcium)
}

func TestAnalyze_NoMealsYieldsEmptyReport(t *testing.T) {
	catalog := testCatalog()
	agg := engine.NewNutrientAggregator(testTargets())
	profile := testProfile(10, nil, nil, nil)

	report, err := agg.Analyze(profile, catalog, nil, 7, time.Now())
	require.NoError(t, err)

	assert.Zero(t, report.TotalMeals)
	assert.Empty(t, report.Nutrients, "no data means no adequacy lines, never fabricated zeros")
	assert.Empty(t, report.Deficient)
}

func TestAnalyze_IgnoresEventsOutsideWindow(t *testing.T) {
	catalog := testCatalog()
	agg := engine.NewNutrientAggregator(testTargets())
	profile := testProfile(10, nil, nil, nil)

	history := engine.FeedbackHistory{
		acceptanceAt(idRecipeSpinachPuree, 30, 5),
		rejectionAt(idRecipeBananaMash, 2), // rejected meals never count
	}
	report, err := agg.Analyze(profile, catalog, history, 7, time.Now())
	require.NoError(t, err)
	assert.Zero(t, report.TotalMeals)
}

func TestAnalyze_InvalidWindow(t *testing.T) {
	agg := engine.NewNutrientAggregator(testTargets())
	profile := testProfile(10, nil, nil, nil)

	_, err := agg.Analyze(profile, testCatalog(), nil, 0, time.Now())
	require.Error(t, err)
	var valErr *engine.ValidationError
	assert.ErrorAs(t, err, &valErr)
}

func TestAnalyze_MissingTargetBracket(t *testing.T) {
	agg := engine.NewNutrientAggregator(testTargets())
	profile := testProfile(48, nil, nil, nil)

	_, err := agg.Analyze(profile, testCatalog(), nil, 7, time.Now())
	require.Error(t, err)
	var cfgErr *engine.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestAnalyze_CountsMealsOnRetiredRecipeVersions(t *testing.T) {
	catalog := testCatalogWithRetired(idRecipeSpinachPuree)
	agg := engine.NewNutrientAggregator(testTargets())
	profile := testProfile(10, nil, nil, nil)

	// The accepted meals reference a version that has since been retired.
	// Its nutrients must still count, it just can't be recommended again.
	history := engine.FeedbackHistory{
		acceptanceAt(idRecipeSpinachPuree, 1, 4),
		acceptanceAt(idRecipeSpinachPuree, 3, 4),
	}
	report, err := agg.Analyze(profile, catalog, history, 7, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalMeals)
	iron, ok := report.Nutrients[engine.NutrientIron]
	require.True(t, ok)
	assert.InDelta(t, 3.24, iron.Total, 1e-9)

	for _, r := range catalog.Recipes() {
		assert.NotEqual(t, idRecipeSpinachPuree, r.ID, "retired versions are not candidates")
	}
}
