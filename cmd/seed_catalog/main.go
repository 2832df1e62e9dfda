// Command seed_catalog populates the ingredient and recipe catalog with a
// starter set suitable for development and demos. Existing rows are matched
// by name, so the seeder is safe to run repeatedly.
package main

import (
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/sproutspoon/backend/config"
	"github.com/pageza/sproutspoon/backend/internal/database"
	"github.com/pageza/sproutspoon/backend/internal/models"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewGorm(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seedIngredients(db); err != nil {
		log.Fatalf("Failed to seed ingredients: %v", err)
	}
	if err := seedRecipes(db); err != nil {
		log.Fatalf("Failed to seed recipes: %v", err)
	}
	log.Println("Catalog seeded")
}

func seedIngredients(db *gorm.DB) error {
	ingredients := []models.Ingredient{
		{Name: "banana", Calories: 89, ProteinG: 1.1, CarbsG: 22.8, FiberG: 2.6, SugarG: 12.2, SodiumMG: 1, IronMG: 0.26, CalciumMG: 5, VitaminCMG: 8.7, AllergenTags: models.JSONBStringArray{}},
		{Name: "apple", Calories: 52, CarbsG: 13.8, FiberG: 2.4, SugarG: 10.4, SodiumMG: 1, IronMG: 0.12, CalciumMG: 6, VitaminCMG: 4.6, AllergenTags: models.JSONBStringArray{}},
		{Name: "carrot", Calories: 41, ProteinG: 0.9, CarbsG: 9.6, FiberG: 2.8, SugarG: 4.7, SodiumMG: 69, IronMG: 0.3, CalciumMG: 33, VitaminAMcg: 835, VitaminCMG: 5.9, AllergenTags: models.JSONBStringArray{}},
		{Name: "sweet potato", Calories: 86, ProteinG: 1.6, CarbsG: 20.1, FiberG: 3.0, SugarG: 4.2, SodiumMG: 55, IronMG: 0.61, CalciumMG: 30, VitaminAMcg: 709, VitaminCMG: 2.4, AllergenTags: models.JSONBStringArray{}},
		{Name: "spinach", Calories: 23, ProteinG: 2.9, CarbsG: 3.6, FiberG: 2.2, SodiumMG: 79, IronMG: 2.7, CalciumMG: 99, VitaminAMcg: 469, VitaminCMG: 28.1, AllergenTags: models.JSONBStringArray{}},
		{Name: "oatmeal", Calories: 68, ProteinG: 2.4, CarbsG: 12.0, FatG: 1.4, FiberG: 1.7, SodiumMG: 49, IronMG: 0.9, CalciumMG: 80, AllergenTags: models.JSONBStringArray{"gluten"}},
		{Name: "whole milk yogurt", Calories: 61, ProteinG: 3.5, CarbsG: 4.7, FatG: 3.3, SugarG: 4.7, SodiumMG: 46, CalciumMG: 121, VitaminDMcg: 1.2, AllergenTags: models.JSONBStringArray{"dairy"}},
		{Name: "egg", Calories: 155, ProteinG: 13.0, FatG: 11.0, SodiumMG: 124, IronMG: 1.8, CalciumMG: 56, VitaminAMcg: 160, VitaminDMcg: 2.0, AllergenTags: models.JSONBStringArray{"eggs"}},
		{Name: "peanut butter", Calories: 588, ProteinG: 25.0, CarbsG: 20.0, FatG: 50.0, FiberG: 6.0, SugarG: 9.0, SodiumMG: 17, IronMG: 1.9, CalciumMG: 49, AllergenTags: models.JSONBStringArray{"peanuts"}},
		{Name: "chicken breast", Calories: 165, ProteinG: 31.0, FatG: 3.6, SodiumMG: 74, IronMG: 1.0, CalciumMG: 15, AllergenTags: models.JSONBStringArray{}},
		{Name: "salmon", Calories: 208, ProteinG: 20.0, FatG: 13.0, SodiumMG: 59, IronMG: 0.8, CalciumMG: 9, VitaminDMcg: 11.0, AllergenTags: models.JSONBStringArray{"fish"}},
		{Name: "lentils", Calories: 116, ProteinG: 9.0, CarbsG: 20.1, FiberG: 7.9, SodiumMG: 2, IronMG: 3.3, CalciumMG: 19, AllergenTags: models.JSONBStringArray{}},
		{Name: "avocado", Calories: 160, ProteinG: 2.0, CarbsG: 8.5, FatG: 14.7, FiberG: 6.7, SodiumMG: 7, IronMG: 0.55, CalciumMG: 12, AllergenTags: models.JSONBStringArray{}},
		{Name: "pear", Calories: 57, CarbsG: 15.2, FiberG: 3.1, SugarG: 9.8, SodiumMG: 1, IronMG: 0.18, CalciumMG: 9, VitaminCMG: 4.3, AllergenTags: models.JSONBStringArray{}},
		{Name: "broccoli", Calories: 34, ProteinG: 2.8, CarbsG: 6.6, FiberG: 2.6, SodiumMG: 33, IronMG: 0.73, CalciumMG: 47, VitaminAMcg: 31, VitaminCMG: 89.2, AllergenTags: models.JSONBStringArray{}},
	}

	for i := range ingredients {
		ingredients[i].RefreshEmbedding()
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&ingredients[i]).Error
		if err != nil {
			return err
		}
	}
	log.Printf("Seeded %d ingredients", len(ingredients))
	return nil
}

type seedRecipe struct {
	name         string
	description  string
	mealType     string
	style        string
	minAge       int
	maxAge       int
	prepMinutes  int
	instructions []string
	portions     []seedPortion // ordered, positions follow slice order
}

type seedPortion struct {
	name  string
	grams float64
}

func seedRecipes(db *gorm.DB) error {
	recipes := []seedRecipe{
		{
			name: "Banana Oat Porridge", description: "Creamy oats sweetened with mashed banana.",
			mealType: "breakfast", style: "mashed", minAge: 6, prepMinutes: 10,
			instructions: []string{"Cook the oats in water until soft.", "Mash the banana and stir it through.", "Cool to lukewarm before serving."},
			portions:     []seedPortion{{"oatmeal", 120}, {"banana", 60}},
		},
		{
			name: "Carrot Sweet Potato Puree", description: "Smooth orange veggie puree rich in vitamin A.",
			mealType: "lunch", style: "pureed", minAge: 6, maxAge: 11, prepMinutes: 20,
			instructions: []string{"Steam the carrot and sweet potato until tender.", "Blend with a splash of water until smooth."},
			portions:     []seedPortion{{"carrot", 80}, {"sweet potato", 80}},
		},
		{
			name: "Spinach Lentil Mash", description: "Iron-packed lentils with wilted spinach.",
			mealType: "dinner", style: "mashed", minAge: 8, prepMinutes: 25,
			instructions: []string{"Simmer the lentils until very soft.", "Wilt the spinach in the last two minutes.", "Mash together to a coarse texture."},
			portions:     []seedPortion{{"lentils", 100}, {"spinach", 40}},
		},
		{
			name: "Avocado Egg Toast Fingers", description: "Soft toast strips topped with avocado and egg.",
			mealType: "breakfast", style: "finger_food", minAge: 10, prepMinutes: 12,
			instructions: []string{"Hard-boil and finely chop the egg.", "Mash the avocado and spread on toast.", "Top with the egg and cut into strips."},
			portions:     []seedPortion{{"avocado", 50}, {"egg", 50}},
		},
		{
			name: "Baked Salmon with Broccoli", description: "Flaked salmon and soft broccoli florets.",
			mealType: "dinner", style: "baked_mixed", minAge: 12, prepMinutes: 30,
			instructions: []string{"Bake the salmon until it flakes easily.", "Steam the broccoli until soft.", "Flake and serve together, checking for bones."},
			portions:     []seedPortion{{"salmon", 70}, {"broccoli", 60}},
		},
		{
			name: "Pear Yogurt Cup", description: "Whole milk yogurt with soft pear pieces.",
			mealType: "snack", style: "mashed", minAge: 8, prepMinutes: 5,
			instructions: []string{"Dice the pear into very small soft pieces.", "Stir into the yogurt."},
			portions:     []seedPortion{{"whole milk yogurt", 100}, {"pear", 60}},
		},
		{
			name: "Chicken Veggie Dinner", description: "Shredded chicken with steamed vegetables.",
			mealType: "dinner", style: "steamed", minAge: 12, prepMinutes: 35,
			instructions: []string{"Poach the chicken breast and shred finely.", "Steam the carrot and broccoli until soft.", "Combine and moisten with cooking liquid."},
			portions:     []seedPortion{{"chicken breast", 60}, {"carrot", 50}, {"broccoli", 40}},
		},
		{
			name: "Apple Cinnamon Puree", description: "Gently stewed apple, blended smooth.",
			mealType: "snack", style: "pureed", minAge: 6, maxAge: 11, prepMinutes: 15,
			instructions: []string{"Stew the apple with a little water until soft.", "Blend until completely smooth."},
			portions:     []seedPortion{{"apple", 120}},
		},
	}

	for _, sr := range recipes {
		var count int64
		if err := db.Model(&models.Recipe{}).Where("name = ?", sr.name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			recipe := models.Recipe{
				Name:            sr.name,
				Description:     sr.description,
				MealType:        sr.mealType,
				Style:           sr.style,
				MinAgeMonths:    sr.minAge,
				MaxAgeMonths:    sr.maxAge,
				PrepTimeMinutes: sr.prepMinutes,
				Instructions:    models.JSONBStringArray(sr.instructions),
			}
			if err := tx.Create(&recipe).Error; err != nil {
				return err
			}

			for position, p := range sr.portions {
				var ingredient models.Ingredient
				if err := tx.Where("name = ?", p.name).First(&ingredient).Error; err != nil {
					return err
				}
				portion := models.RecipeIngredient{
					RecipeID:      recipe.ID,
					IngredientID:  ingredient.ID,
					QuantityGrams: p.grams,
					Unit:          "g",
					Position:      position,
				}
				if err := tx.Create(&portion).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	log.Printf("Seeded %d recipes", len(recipes))
	return nil
}
