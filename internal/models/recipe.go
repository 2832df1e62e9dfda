package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/sproutspoon/backend/internal/engine"
)

// Recipe is a versioned catalog entry. Published versions are never edited
// in place: an update creates a new row pointing at its predecessor via
// ParentID, so past feedback always references the exact recipe it rated.
type Recipe struct {
	ID        uuid.UUID      `gorm:"type:uuid;primarykey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	ImageURL    string `gorm:"size:255" json:"image_url"`

	MealType        string `gorm:"size:20;index" json:"meal_type"` // breakfast, lunch, dinner, snack
	Style           string `gorm:"size:30" json:"style"`
	MinAgeMonths    int    `gorm:"not null" json:"min_age_months"`
	MaxAgeMonths    int    `gorm:"default:0" json:"max_age_months"` // 0 = no upper bound
	PrepTimeMinutes int    `json:"prep_time_minutes"`

	Instructions JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`

	Version  int        `gorm:"not null;default:1" json:"version"`
	ParentID *uuid.UUID `gorm:"type:uuid;index" json:"parent_id,omitempty"`

	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"ingredients,omitempty"`
}

// RecipeIngredient joins a recipe to one ingredient portion. Position keeps
// the ingredient list ordered.
type RecipeIngredient struct {
	ID           uuid.UUID   `gorm:"type:uuid;primarykey;default:gen_random_uuid()" json:"id"`
	RecipeID     uuid.UUID   `gorm:"type:uuid;not null;index" json:"recipe_id"`
	IngredientID uuid.UUID   `gorm:"type:uuid;not null" json:"ingredient_id"`
	Ingredient   *Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`

	QuantityGrams float64 `gorm:"type:float;not null" json:"quantity_grams"`
	Unit          string  `gorm:"size:20;default:'g'" json:"unit"`
	Position      int     `gorm:"not null;default:0" json:"position"`
}

// ToEngine converts the row into the engine's catalog snapshot type. The
// Ingredients association must be loaded.
func (r *Recipe) ToEngine() engine.Recipe {
	portions := make([]engine.RecipePortion, 0, len(r.Ingredients))
	for _, ri := range r.Ingredients {
		portions = append(portions, engine.RecipePortion{
			IngredientID:  ri.IngredientID,
			QuantityGrams: ri.QuantityGrams,
			Unit:          ri.Unit,
		})
	}
	return engine.Recipe{
		ID:              r.ID,
		Name:            r.Name,
		MinAgeMonths:    r.MinAgeMonths,
		MaxAgeMonths:    r.MaxAgeMonths,
		PrepTimeMinutes: r.PrepTimeMinutes,
		Style:           engine.PreparationStyle(r.Style),
		MealType:        r.MealType,
		Portions:        portions,
	}
}
