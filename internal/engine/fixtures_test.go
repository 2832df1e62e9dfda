package engine_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/pageza/sproutspoon/backend/internal/engine"
)

// Deterministic IDs so test failures are reproducible and readable.
var (
	idBanana      = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	idCarrot      = uuid.MustParse("00000000-0000-0000-0000-000000000002")
	idSweetPotato = uuid.MustParse("00000000-0000-0000-0000-000000000003")
	idSpinach     = uuid.MustParse("00000000-0000-0000-0000-000000000004")
	idPeanut      = uuid.MustParse("00000000-0000-0000-0000-000000000005")
	idChickenSalt = uuid.MustParse("00000000-0000-0000-0000-000000000006")

	idRecipeBananaMash   = uuid.MustParse("10000000-0000-0000-0000-000000000001")
	idRecipeCarrotBanana = uuid.MustParse("10000000-0000-0000-0000-000000000002")
	idRecipePeanutOats   = uuid.MustParse("10000000-0000-0000-0000-000000000003")
	idRecipeSweetPotato  = uuid.MustParse("10000000-0000-0000-0000-000000000004")
	idRecipeSpinachPuree = uuid.MustParse("10000000-0000-0000-0000-000000000005")
	idRecipeSpinachBake  = uuid.MustParse("10000000-0000-0000-0000-000000000006")
	idRecipeSaltyChicken = uuid.MustParse("10000000-0000-0000-0000-000000000007")
	idRecipeToddlerStew  = uuid.MustParse("10000000-0000-0000-0000-000000000008")
)

func testIngredients() []engine.Ingredient {
	return []engine.Ingredient{
		{
			ID:   idBanana,
			Name: "banana",
			Nutrients: engine.NutrientVector{
				engine.NutrientCalories: 89,
				engine.NutrientCarbs:    23,
				engine.NutrientSugar:    12,
				engine.NutrientFiber:    2.6,
				engine.NutrientVitaminC: 8.7,
			},
		},
		{
			ID:   idCarrot,
			Name: "carrot",
			Nutrients: engine.NutrientVector{
				engine.NutrientCalories: 41,
				engine.NutrientCarbs:    10,
				engine.NutrientFiber:    2.8,
				engine.NutrientVitaminA: 835,
				engine.NutrientVitaminC: 5.9,
			},
		},
		{
			ID:   idSweetPotato,
			Name: "sweet potato",
			Nutrients: engine.NutrientVector{
				engine.NutrientCalories: 86,
				engine.NutrientCarbs:    20,
				engine.NutrientFiber:    3.0,
				engine.NutrientVitaminA: 709,
				engine.NutrientVitaminC: 2.4,
			},
		},
		{
			ID:   idSpinach,
			Name: "spinach",
			Nutrients: engine.NutrientVector{
				engine.NutrientCalories: 23,
				engine.NutrientProtein:  2.9,
				engine.NutrientIron:     2.7,
				engine.NutrientCalcium:  99,
				engine.NutrientVitaminA: 469,
			},
		},
		{
			ID:           idPeanut,
			Name:         "peanut butter",
			AllergenTags: []string{"peanuts"},
			Nutrients: engine.NutrientVector{
				engine.NutrientCalories: 588,
				engine.NutrientProtein:  25,
				engine.NutrientFat:      50,
			},
		},
		{
			ID:   idChickenSalt,
			Name: "salted chicken",
			Nutrients: engine.NutrientVector{
				engine.NutrientCalories: 200,
				engine.NutrientProtein:  27,
				engine.NutrientSodium:   900,
			},
		},
	}
}

func testRecipes() []engine.Recipe {
	return []engine.Recipe{
		{
			ID:              idRecipeBananaMash,
			Name:            "Banana Mash",
			MinAgeMonths:    6,
			PrepTimeMinutes: 5,
			Style:           engine.StyleMashed,
			MealType:        "breakfast",
			Portions: []engine.RecipePortion{
				{IngredientID: idBanana, QuantityGrams: 80, Unit: "g"},
			},
		},
		{
			ID:              idRecipeCarrotBanana,
			Name:            "Carrot Banana Pancakes",
			MinAgeMonths:    8,
			PrepTimeMinutes: 20,
			Style:           engine.StyleBakedMixed,
			MealType:        "breakfast",
			Portions: []engine.RecipePortion{
				{IngredientID: idCarrot, QuantityGrams: 50, Unit: "g"},
				{IngredientID: idBanana, QuantityGrams: 50, Unit: "g"},
			},
		},
		{
			ID:              idRecipePeanutOats,
			Name:            "Peanut Butter Oats",
			MinAgeMonths:    8,
			PrepTimeMinutes: 10,
			Style:           engine.StyleMashed,
			MealType:        "breakfast",
			Portions: []engine.RecipePortion{
				{IngredientID: idPeanut, QuantityGrams: 20, Unit: "g"},
				{IngredientID: idBanana, QuantityGrams: 40, Unit: "g"},
			},
		},
		{
			ID:              idRecipeSweetPotato,
			Name:            "Sweet Potato Wedges",
			MinAgeMonths:    9,
			PrepTimeMinutes: 30,
			Style:           engine.StyleRoasted,
			MealType:        "lunch",
			Portions: []engine.RecipePortion{
				{IngredientID: idSweetPotato, QuantityGrams: 90, Unit: "g"},
			},
		},
		{
			ID:              idRecipeSpinachPuree,
			Name:            "Spinach Puree",
			MinAgeMonths:    6,
			PrepTimeMinutes: 10,
			Style:           engine.StylePureed,
			MealType:        "lunch",
			Portions: []engine.RecipePortion{
				{IngredientID: idSpinach, QuantityGrams: 60, Unit: "g"},
			},
		},
		{
			ID:              idRecipeSpinachBake,
			Name:            "Spinach Banana Bake",
			MinAgeMonths:    9,
			PrepTimeMinutes: 25,
			Style:           engine.StyleBakedMixed,
			MealType:        "dinner",
			Portions: []engine.RecipePortion{
				{IngredientID: idSpinach, QuantityGrams: 40, Unit: "g"},
				{IngredientID: idBanana, QuantityGrams: 40, Unit: "g"},
			},
		},
		{
			ID:              idRecipeSaltyChicken,
			Name:            "Salted Chicken Bites",
			MinAgeMonths:    10,
			PrepTimeMinutes: 15,
			Style:           engine.StyleFingerFood,
			MealType:        "dinner",
			Portions: []engine.RecipePortion{
				{IngredientID: idChickenSalt, QuantityGrams: 70, Unit: "g"},
			},
		},
		{
			ID:              idRecipeToddlerStew,
			Name:            "Toddler Stew",
			MinAgeMonths:    18,
			PrepTimeMinutes: 40,
			Style:           engine.StyleSteamed,
			MealType:        "dinner",
			Portions: []engine.RecipePortion{
				{IngredientID: idSweetPotato, QuantityGrams: 60, Unit: "g"},
				{IngredientID: idSpinach, QuantityGrams: 30, Unit: "g"},
			},
		},
	}
}

func testCatalog() *engine.Catalog {
	return engine.NewCatalog(testIngredients(), testRecipes())
}

func testCeilings() engine.CeilingTable {
	return engine.CeilingTable{
		{Bracket: engine.AgeBracket{MinMonths: 0, MaxMonths: 11}, MaxSugarG: 12, MaxSodiumMG: 370},
		{Bracket: engine.AgeBracket{MinMonths: 12, MaxMonths: 36}, MaxSugarG: 18, MaxSodiumMG: 800},
	}
}

func testTargets() engine.TargetTable {
	return engine.TargetTable{
		{
			Bracket: engine.AgeBracket{MinMonths: 0, MaxMonths: 11},
			Daily: engine.NutrientVector{
				engine.NutrientIron:    11.0 / 7.0,
				engine.NutrientCalcium: 260.0 / 7.0,
				engine.NutrientProtein: 11.0,
			},
		},
		{
			Bracket: engine.AgeBracket{MinMonths: 12, MaxMonths: 36},
			Daily: engine.NutrientVector{
				engine.NutrientIron:    7.0,
				engine.NutrientCalcium: 700.0,
				engine.NutrientProtein: 13.0,
			},
		},
	}
}

func testProfile(ageMonths int, allergies, liked, disliked []string) engine.ProfileContext {
	return engine.NewProfileContext(
		uuid.MustParse("20000000-0000-0000-0000-000000000001"),
		"Milo", ageMonths, 9.2, 74, allergies, liked, disliked,
	)
}

func rejectionAt(recipeID uuid.UUID, daysAgo int) engine.FeedbackEvent {
	return engine.FeedbackEvent{
		BabyID:          uuid.MustParse("20000000-0000-0000-0000-000000000001"),
		RecipeID:        recipeID,
		OccurredAt:      time.Now().AddDate(0, 0, -daysAgo),
		Accepted:        false,
		Rating:          1,
		RejectionReason: engine.RejectionBabyRefused,
	}
}

func acceptanceAt(recipeID uuid.UUID, daysAgo int, rating float64) engine.FeedbackEvent {
	return engine.FeedbackEvent{
		BabyID:          uuid.MustParse("20000000-0000-0000-0000-000000000001"),
		RecipeID:        recipeID,
		OccurredAt:      time.Now().AddDate(0, 0, -daysAgo),
		Accepted:        true,
		Rating:          rating,
		RejectionReason: engine.RejectionNone,
	}
}

// testCatalogWithRetired moves one recipe out of the active candidate list
// into the retired set, mimicking a superseded recipe version.
func testCatalogWithRetired(retiredID uuid.UUID) *engine.Catalog {
	var active, retired []engine.Recipe
	for _, r := range testRecipes() {
		if r.ID == retiredID {
			retired = append(retired, r)
		} else {
			active = append(active, r)
		}
	}
	return engine.NewCatalogWithRetired(testIngredients(), active, retired)
}
