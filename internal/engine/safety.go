package engine

// SafetyFilter is the hard exclusion pass that runs before any scoring.
// Exclusions here are never overridden downstream: allergen conflicts, age
// window violations and per-serving sugar/sodium above the age-indexed
// ceiling all remove a recipe outright.
type SafetyFilter struct {
	ceilings CeilingTable
}

// NewSafetyFilter creates a safety filter backed by the given ceiling table.
func NewSafetyFilter(ceilings CeilingTable) *SafetyFilter {
	return &SafetyFilter{ceilings: ceilings}
}

// Filter returns the subset of candidates that are safe for the baby. An
// empty result is a valid terminal state, not an error; the only error case
// is a missing ceiling bracket, which aborts the request because the safety
// model would otherwise be incomplete.
func (f *SafetyFilter) Filter(profile ProfileContext, catalog *Catalog, candidates []Recipe) ([]Recipe, error) {
	ceiling, err := f.ceilings.For(profile.AgeMonths)
	if err != nil {
		return nil, err
	}

	safe := make([]Recipe, 0, len(candidates))
	for _, recipe := range candidates {
		if !recipe.SuitableForAge(profile.AgeMonths) {
			continue
		}
		if profile.AllergicToAny(catalog.AllergenTags(recipe)) {
			continue
		}
		nutrients := catalog.RecipeNutrients(recipe)
		if nutrients[NutrientSugar] > ceiling.MaxSugarG {
			continue
		}
		if nutrients[NutrientSodium] > ceiling.MaxSodiumMG {
			continue
		}
		safe = append(safe, recipe)
	}
	return safe, nil
}
