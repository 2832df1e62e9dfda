package engine

import "sort"

// SubstituteIngredient is one nutritionally similar replacement candidate.
type SubstituteIngredient struct {
	Name       string  `json:"name"`
	Similarity float64 `json:"similarity"`
}

// AlternativeRecipe is a safe recipe that uses a substitute ingredient.
type AlternativeRecipe struct {
	Recipe     Recipe  `json:"-"`
	RecipeID   string  `json:"recipe_id"`
	RecipeName string  `json:"recipe_name"`
	Substitute string  `json:"substitute"`
	Similarity float64 `json:"similarity"`
}

// AlternativeSet is the full answer for one disliked ingredient. Found is
// false when no catalog ingredient clears the similarity threshold; that is
// an expected outcome for nutritionally unique foods, not an error.
type AlternativeSet struct {
	Ingredient  string                 `json:"ingredient"`
	Found       bool                   `json:"found"`
	Substitutes []SubstituteIngredient `json:"substitutes"`
	Recipes     []AlternativeRecipe    `json:"recipes"`
}

// AlternativeResolver finds nutritionally equivalent substitutes for
// disliked ingredients by cosine similarity over their nutrient profiles,
// then surfaces safe recipes that use those substitutes.
type AlternativeResolver struct {
	safety        *SafetyFilter
	minSimilarity float64
	topN          int
}

// Resolver defaults: candidates below the threshold are rejected rather
// than returned as poor substitutes.
const (
	DefaultMinSimilarity     = 0.60
	DefaultMaxSubstitutes    = 5
	maxRecipesPerAlternative = 5
)

// NewAlternativeResolver creates a resolver. Zero values for threshold or
// topN fall back to the defaults.
func NewAlternativeResolver(safety *SafetyFilter, minSimilarity float64, topN int) *AlternativeResolver {
	if minSimilarity <= 0 {
		minSimilarity = DefaultMinSimilarity
	}
	if topN <= 0 {
		topN = DefaultMaxSubstitutes
	}
	return &AlternativeResolver{safety: safety, minSimilarity: minSimilarity, topN: topN}
}

// FindAlternatives resolves substitutes for one disliked ingredient. The
// disliked ingredient must exist in the catalog; an unknown name is a
// ValidationError. A result with Found=false is the explicit "no similar
// ingredient" state.
func (r *AlternativeResolver) FindAlternatives(profile ProfileContext, catalog *Catalog, dislikedIngredient string) (AlternativeSet, error) {
	set := AlternativeSet{Ingredient: normalizeName(dislikedIngredient)}

	disliked, ok := catalog.IngredientByName(dislikedIngredient)
	if !ok {
		return set, &ValidationError{Field: "ingredient", Reason: "unknown ingredient " + dislikedIngredient}
	}

	for _, candidate := range catalog.Ingredients() {
		if candidate.ID == disliked.ID {
			continue
		}
		// A substitute the baby also dislikes or is allergic to is no help.
		if profile.Dislikes(candidate.Name) || profile.AllergicToAny(candidate.AllergenTags) {
			continue
		}
		sim := disliked.Nutrients.CosineSimilarity(candidate.Nutrients)
		if sim < r.minSimilarity {
			continue
		}
		set.Substitutes = append(set.Substitutes, SubstituteIngredient{
			Name:       normalizeName(candidate.Name),
			Similarity: sim,
		})
	}

	sort.SliceStable(set.Substitutes, func(i, j int) bool {
		if set.Substitutes[i].Similarity != set.Substitutes[j].Similarity {
			return set.Substitutes[i].Similarity > set.Substitutes[j].Similarity
		}
		return set.Substitutes[i].Name < set.Substitutes[j].Name
	})
	if len(set.Substitutes) > r.topN {
		set.Substitutes = set.Substitutes[:r.topN]
	}
	if len(set.Substitutes) == 0 {
		return set, nil
	}
	set.Found = true

	safe, err := r.safety.Filter(profile, catalog, catalog.Recipes())
	if err != nil {
		return AlternativeSet{Ingredient: set.Ingredient}, err
	}
	for _, sub := range set.Substitutes {
		for _, recipe := range safe {
			if !catalog.RecipeContains(recipe, sub.Name) {
				continue
			}
			// Skip recipes that still contain the ingredient being replaced.
			if catalog.RecipeContains(recipe, set.Ingredient) {
				continue
			}
			set.Recipes = append(set.Recipes, AlternativeRecipe{
				Recipe:     recipe,
				RecipeID:   recipe.ID.String(),
				RecipeName: recipe.Name,
				Substitute: sub.Name,
				Similarity: sub.Similarity,
			})
			if len(set.Recipes) >= maxRecipesPerAlternative {
				return set, nil
			}
		}
	}
	return set, nil
}
