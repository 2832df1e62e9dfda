package types

import (
	"time"

	"github.com/google/uuid"
)

// Auth API types

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
}

// Baby API types

type CreateBabyRequest struct {
	Name                string    `json:"name" binding:"required,max=100"`
	BirthDate           time.Time `json:"birth_date" binding:"required"`
	WeightKg            float64   `json:"weight_kg"`
	HeightCm            float64   `json:"height_cm"`
	Allergies           []string  `json:"allergies"`
	LikedIngredients    []string  `json:"liked_ingredients"`
	DislikedIngredients []string  `json:"disliked_ingredients"`
}

type UpdateBabyRequest struct {
	Name                *string    `json:"name,omitempty"`
	BirthDate           *time.Time `json:"birth_date,omitempty"`
	WeightKg            *float64   `json:"weight_kg,omitempty"`
	HeightCm            *float64   `json:"height_cm,omitempty"`
	Allergies           []string   `json:"allergies,omitempty"`
	LikedIngredients    []string   `json:"liked_ingredients,omitempty"`
	DislikedIngredients []string   `json:"disliked_ingredients,omitempty"`
}

// Recipe API types

type RecipeIngredientInput struct {
	IngredientID  uuid.UUID `json:"ingredient_id" binding:"required"`
	QuantityGrams float64   `json:"quantity_grams" binding:"required,gt=0"`
	Unit          string    `json:"unit"`
}

type CreateRecipeRequest struct {
	Name            string                  `json:"name" binding:"required,max=255"`
	Description     string                  `json:"description"`
	MealType        string                  `json:"meal_type" binding:"required,oneof=breakfast lunch dinner snack"`
	Style           string                  `json:"style" binding:"omitempty,oneof=pureed mashed steamed roasted baked_mixed finger_food"`
	MinAgeMonths    int                     `json:"min_age_months" binding:"required,gte=4"`
	MaxAgeMonths    int                     `json:"max_age_months"`
	PrepTimeMinutes int                     `json:"prep_time_minutes"`
	Instructions    []string                `json:"instructions" binding:"required"`
	Ingredients     []RecipeIngredientInput `json:"ingredients" binding:"required,min=1"`
}

type UpdateRecipeRequest struct {
	Name            string                  `json:"name"`
	Description     string                  `json:"description"`
	MealType        string                  `json:"meal_type"`
	Style           string                  `json:"style"`
	MinAgeMonths    int                     `json:"min_age_months"`
	MaxAgeMonths    int                     `json:"max_age_months"`
	PrepTimeMinutes int                     `json:"prep_time_minutes"`
	Instructions    []string                `json:"instructions"`
	Ingredients     []RecipeIngredientInput `json:"ingredients"`
}

// Feedback API types

type CreateFeedbackRequest struct {
	BabyID          uuid.UUID `json:"baby_id" binding:"required"`
	RecipeID        uuid.UUID `json:"recipe_id" binding:"required"`
	Accepted        bool      `json:"accepted"`
	Rating          float64   `json:"rating" binding:"gte=0,lte=5"`
	RejectionReason string    `json:"rejection_reason" binding:"omitempty,oneof=baby_refused allergic_reaction texture_issue other"`
	Notes           string    `json:"notes" binding:"max=2000"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// Recommendation API types

type RecommendationQuery struct {
	Count            int    `form:"count"`
	MealType         string `form:"meal_type" binding:"omitempty,oneof=breakfast lunch dinner snack"`
	WindowDays       int    `form:"window_days"`
	IncludeNutrition bool   `form:"include_nutrition"`
}

type NutritionQuery struct {
	WindowDays int `form:"window_days"`
}
