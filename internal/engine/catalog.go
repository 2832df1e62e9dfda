package engine

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// PreparationStyle describes how a recipe presents its main ingredients.
type PreparationStyle string

const (
	StylePureed     PreparationStyle = "pureed"
	StyleMashed     PreparationStyle = "mashed"
	StyleSteamed    PreparationStyle = "steamed"
	StyleRoasted    PreparationStyle = "roasted"
	StyleBakedMixed PreparationStyle = "baked_mixed"
	StyleFingerFood PreparationStyle = "finger_food"
	StyleUnknown    PreparationStyle = "other"
)

// StyleRotation is the fixed order retry suggestions walk through when
// proposing a new preparation style. See RetryStrategyTracker.
var StyleRotation = []PreparationStyle{
	StylePureed,
	StyleMashed,
	StyleSteamed,
	StyleRoasted,
	StyleBakedMixed,
	StyleFingerFood,
}

// Ingredient is immutable reference data: a food item with its per-100g
// nutrient profile and the allergen tags it carries.
type Ingredient struct {
	ID           uuid.UUID
	Name         string
	Nutrients    NutrientVector
	AllergenTags []string
}

// RecipePortion is one entry in a recipe's ordered ingredient list.
type RecipePortion struct {
	IngredientID  uuid.UUID `json:"ingredient_id"`
	QuantityGrams float64   `json:"quantity_grams"`
	Unit          string    `json:"unit"`
}

// Recipe is an immutable snapshot of one recipe version.
type Recipe struct {
	ID              uuid.UUID        `json:"id"`
	Name            string           `json:"name"`
	MinAgeMonths    int              `json:"min_age_months"`
	MaxAgeMonths    int              `json:"max_age_months"` // 0 = no upper bound
	PrepTimeMinutes int              `json:"prep_time_minutes"`
	Style           PreparationStyle `json:"style"`
	MealType        string           `json:"meal_type"`
	Portions        []RecipePortion  `json:"portions"`
}

// SuitableForAge reports whether the recipe's age window covers ageMonths.
func (r Recipe) SuitableForAge(ageMonths int) bool {
	if ageMonths < r.MinAgeMonths {
		return false
	}
	if r.MaxAgeMonths > 0 && ageMonths > r.MaxAgeMonths {
		return false
	}
	return true
}

// Catalog is a consistent, read-only snapshot of the ingredient and recipe
// reference data for one engine invocation. It is safe for concurrent reads.
type Catalog struct {
	ingredients map[uuid.UUID]Ingredient
	byName      map[string]Ingredient
	recipes     []Recipe
	byID        map[uuid.UUID]Recipe
}

// NewCatalog builds a catalog snapshot. Recipes are kept sorted by ID so
// every downstream iteration order is deterministic.
func NewCatalog(ingredients []Ingredient, recipes []Recipe) *Catalog {
	c := &Catalog{
		ingredients: make(map[uuid.UUID]Ingredient, len(ingredients)),
		byName:      make(map[string]Ingredient, len(ingredients)),
		recipes:     make([]Recipe, len(recipes)),
		byID:        make(map[uuid.UUID]Recipe, len(recipes)),
	}
	for _, ing := range ingredients {
		c.ingredients[ing.ID] = ing
		c.byName[normalizeName(ing.Name)] = ing
	}
	copy(c.recipes, recipes)
	sort.Slice(c.recipes, func(i, j int) bool {
		return c.recipes[i].ID.String() < c.recipes[j].ID.String()
	})
	for _, r := range c.recipes {
		c.byID[r.ID] = r
	}
	return c
}

// NewCatalogWithRetired builds a catalog whose active recipes are the
// recommendation candidates while retired versions stay resolvable by ID.
// Feedback recorded against a superseded recipe version must still account
// for its nutrients and retry attempts.
func NewCatalogWithRetired(ingredients []Ingredient, active, retired []Recipe) *Catalog {
	c := NewCatalog(ingredients, active)
	for _, r := range retired {
		if _, ok := c.byID[r.ID]; !ok {
			c.byID[r.ID] = r
		}
	}
	return c
}

// Recipes returns the catalog's active recipes in ID order. Retired
// versions are excluded; resolve those with RecipeByID.
func (c *Catalog) Recipes() []Recipe { return c.recipes }

// RecipeByID resolves a recipe by ID, retired versions included.
func (c *Catalog) RecipeByID(id uuid.UUID) (Recipe, bool) {
	r, ok := c.byID[id]
	return r, ok
}

// Ingredient looks up an ingredient by ID.
func (c *Catalog) Ingredient(id uuid.UUID) (Ingredient, bool) {
	ing, ok := c.ingredients[id]
	return ing, ok
}

// IngredientByName looks up an ingredient by case-insensitive name.
func (c *Catalog) IngredientByName(name string) (Ingredient, bool) {
	ing, ok := c.byName[normalizeName(name)]
	return ing, ok
}

// Ingredients returns all ingredients sorted by name.
func (c *Catalog) Ingredients() []Ingredient {
	out := make([]Ingredient, 0, len(c.ingredients))
	for _, ing := range c.ingredients {
		out = append(out, ing)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// IngredientNames returns the names of a recipe's ingredients, normalized.
func (c *Catalog) IngredientNames(r Recipe) []string {
	names := make([]string, 0, len(r.Portions))
	for _, p := range r.Portions {
		if ing, ok := c.ingredients[p.IngredientID]; ok {
			names = append(names, normalizeName(ing.Name))
		}
	}
	return names
}

// RecipeContains reports whether the recipe uses the named ingredient.
func (c *Catalog) RecipeContains(r Recipe, ingredientName string) bool {
	want := normalizeName(ingredientName)
	for _, p := range r.Portions {
		ing, ok := c.ingredients[p.IngredientID]
		if ok && normalizeName(ing.Name) == want {
			return true
		}
	}
	return false
}

// RecipeNutrients sums the per-serving nutrient amounts of a recipe from its
// ingredient portions. Ingredient profiles are per 100g, so each portion
// contributes quantity/100 of its profile.
func (c *Catalog) RecipeNutrients(r Recipe) NutrientVector {
	total := make(NutrientVector)
	for _, p := range r.Portions {
		ing, ok := c.ingredients[p.IngredientID]
		if !ok {
			continue
		}
		total.Add(ing.Nutrients.Scale(p.QuantityGrams / 100.0))
	}
	return total
}

// NutritionScore derives a 0-100 nutrition score for a recipe serving.
// Protein, fiber and micronutrients raise it, sugar lowers it.
func (c *Catalog) NutritionScore(r Recipe) float64 {
	n := c.RecipeNutrients(r)
	score := 50.0
	score += minf(n[NutrientProtein]*2, 20)
	score += minf(n[NutrientFiber]*3, 10)
	score += minf(n[NutrientIron], 5)
	score += minf(n[NutrientCalcium]/20, 5)
	score += minf(n[NutrientVitaminA]/50, 5)
	score -= minf(n[NutrientSugar], 20)
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// AllergenTags collects the distinct allergen tags across a recipe's
// ingredients, normalized and sorted.
func (c *Catalog) AllergenTags(r Recipe) []string {
	seen := map[string]struct{}{}
	for _, p := range r.Portions {
		ing, ok := c.ingredients[p.IngredientID]
		if !ok {
			continue
		}
		for _, tag := range ing.AllergenTags {
			seen[normalizeName(tag)] = struct{}{}
		}
	}
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
