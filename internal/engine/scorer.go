package engine

import (
	"sort"

	"github.com/google/uuid"
)

// ScoreWeights configures the preference scorer. Weights for the three
// sub-scores should sum to 1; DislikePenalty is the per-ingredient deduction
// applied to the preference sub-score.
type ScoreWeights struct {
	Preference     float64
	Nutrition      float64
	History        float64
	DislikePenalty float64
}

// DefaultScoreWeights are the documented defaults: preference and nutrition
// carry equal weight, history less, so un-tried recipes are not starved.
var DefaultScoreWeights = ScoreWeights{
	Preference:     0.4,
	Nutrition:      0.4,
	History:        0.2,
	DislikePenalty: 0.3,
}

// neutralHistory is the sub-score for recipes with no feedback yet. It keeps
// new recipes competitive instead of cold-starting them at zero.
const neutralHistory = 0.5

// ScoredRecipe is one ranked entry of a recommendation result.
type ScoredRecipe struct {
	Recipe         Recipe  `json:"recipe"`
	Score          float64 `json:"score"`
	OriginalScore  float64 `json:"original_score"` // score before the dislike penalty
	PenaltyApplied bool    `json:"penalty_applied"`
	IsRetry        bool    `json:"is_retry"` // recipe contains a currently disliked ingredient
	Explanation    string  `json:"explanation"`
	NutritionScore float64 `json:"nutrition_score"`
}

// PreferenceScorer ranks safe recipes by a weighted sum of preference match,
// nutrition value and historical performance. Disliked ingredients apply a
// soft penalty only: they lower the score but never exclude the recipe.
type PreferenceScorer struct {
	weights ScoreWeights
}

// NewPreferenceScorer creates a scorer with the given weights. Zero-valued
// weights fall back to the defaults.
func NewPreferenceScorer(weights ScoreWeights) *PreferenceScorer {
	if weights == (ScoreWeights{}) {
		weights = DefaultScoreWeights
	}
	return &PreferenceScorer{weights: weights}
}

// Score ranks the recipes for the baby. Ordering is deterministic for
// identical inputs: ties break on nutrition score, then preparation time,
// then recipe ID.
//
// As defense in depth the scorer re-checks the allergy intersection and
// drops violators even if a caller handed it unfiltered candidates.
func (s *PreferenceScorer) Score(profile ProfileContext, catalog *Catalog, recipes []Recipe, history FeedbackHistory) []ScoredRecipe {
	scored := make([]ScoredRecipe, 0, len(recipes))
	for _, recipe := range recipes {
		if profile.AllergicToAny(catalog.AllergenTags(recipe)) {
			continue
		}

		prefScore, rawPref, penalized := s.preferenceScore(profile, catalog, recipe)
		nutritionScore := catalog.NutritionScore(recipe)
		nutrition := nutritionScore / 100.0
		historical := historyScore(recipe.ID, history)

		final := s.weights.Preference*prefScore +
			s.weights.Nutrition*nutrition +
			s.weights.History*historical
		original := s.weights.Preference*rawPref +
			s.weights.Nutrition*nutrition +
			s.weights.History*historical

		scored = append(scored, ScoredRecipe{
			Recipe:         recipe,
			Score:          final,
			OriginalScore:  original,
			PenaltyApplied: penalized,
			IsRetry:        containsDisliked(profile, catalog, recipe),
			Explanation:    buildReason(prefScore, nutrition, historical),
			NutritionScore: nutritionScore,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.NutritionScore != b.NutritionScore {
			return a.NutritionScore > b.NutritionScore
		}
		if a.Recipe.PrepTimeMinutes != b.Recipe.PrepTimeMinutes {
			return a.Recipe.PrepTimeMinutes < b.Recipe.PrepTimeMinutes
		}
		return a.Recipe.ID.String() < b.Recipe.ID.String()
	})
	return scored
}

// preferenceScore returns the penalized sub-score, the sub-score without the
// dislike penalty, and whether a penalty was applied. Both values are
// clamped to [0,1]; the penalty can lower the score but never excludes.
func (s *PreferenceScorer) preferenceScore(profile ProfileContext, catalog *Catalog, recipe Recipe) (float64, float64, bool) {
	names := catalog.IngredientNames(recipe)
	if len(names) == 0 {
		return neutralHistory, neutralHistory, false
	}

	liked, disliked := 0, 0
	for _, name := range names {
		if profile.Likes(name) {
			liked++
		}
		if profile.Dislikes(name) {
			disliked++
		}
	}

	raw := float64(liked) / float64(len(names))
	if liked == 0 {
		raw = neutralHistory
	}
	penalized := raw - s.weights.DislikePenalty*float64(disliked)

	return clamp01(penalized), clamp01(raw), disliked > 0 && penalized < raw
}

// historyScore is the mean past rating for this baby+recipe pair normalized
// to [0,1], or a neutral default when the pair has never been tried.
func historyScore(recipeID uuid.UUID, history FeedbackHistory) float64 {
	var sum float64
	var count int
	for _, ev := range history {
		if ev.RecipeID == recipeID {
			sum += ev.Rating
			count++
		}
	}
	if count == 0 {
		return neutralHistory
	}
	return clamp01(sum / float64(count) / 5.0)
}

func containsDisliked(profile ProfileContext, catalog *Catalog, recipe Recipe) bool {
	for _, name := range catalog.IngredientNames(recipe) {
		if profile.Dislikes(name) {
			return true
		}
	}
	return false
}

// buildReason assembles the rule-based explanation used when the external
// explanation provider is unavailable.
func buildReason(pref, nutrition, historical float64) string {
	switch {
	case nutrition > 0.7 && pref > 0.6:
		return "High nutritional value and matches taste preferences"
	case nutrition > 0.7:
		return "High nutritional value"
	case pref > 0.6:
		return "Matches taste preferences"
	case historical > 0.7:
		return "Similar meals were enjoyed before"
	default:
		return "Suitable for baby's age"
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
