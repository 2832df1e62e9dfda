package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/sproutspoon/backend/internal/engine"
	"github.com/pageza/sproutspoon/backend/internal/models"
	"github.com/pageza/sproutspoon/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, name, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// IBabyService defines the interface for baby profile operations
type IBabyService interface {
	CreateBaby(ctx context.Context, userID uuid.UUID, req *types.CreateBabyRequest) (*models.Baby, error)
	GetBaby(ctx context.Context, userID, babyID uuid.UUID) (*models.Baby, error)
	ListBabies(ctx context.Context, userID uuid.UUID) ([]*models.Baby, error)
	UpdateBaby(ctx context.Context, userID, babyID uuid.UUID, req *types.UpdateBabyRequest) (*models.Baby, error)
	DeleteBaby(ctx context.Context, userID, babyID uuid.UUID) error
}

// IRecipeService defines the interface for catalog operations
type IRecipeService interface {
	CreateRecipe(ctx context.Context, req *types.CreateRecipeRequest) (*models.Recipe, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	UpdateRecipe(ctx context.Context, id uuid.UUID, req *types.UpdateRecipeRequest) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, id uuid.UUID) error
	ListRecipes(ctx context.Context, mealType string, ageMonths int) ([]*models.Recipe, error)
	SearchRecipes(ctx context.Context, query string) ([]*models.Recipe, error)
	ListIngredients(ctx context.Context) ([]*models.Ingredient, error)
	SimilarIngredients(ctx context.Context, ingredientID uuid.UUID, limit int) ([]*models.Ingredient, error)
	FavoriteRecipe(ctx context.Context, userID, recipeID uuid.UUID) error
	UnfavoriteRecipe(ctx context.Context, userID, recipeID uuid.UUID) error
	GetFavoriteRecipes(ctx context.Context, userID uuid.UUID) ([]*models.Recipe, error)
}

// IFeedbackService defines the interface for meal feedback operations
type IFeedbackService interface {
	RecordFeedback(ctx context.Context, userID uuid.UUID, req *types.CreateFeedbackRequest) (*models.FeedbackEvent, error)
	ListFeedback(ctx context.Context, userID, babyID uuid.UUID, limit, offset int) ([]*models.FeedbackEvent, error)
}

// IRecommendationService defines the interface for the recommendation pipeline
type IRecommendationService interface {
	Recommend(ctx context.Context, userID, babyID uuid.UUID, opts engine.RecommendOptions) (*engine.Recommendation, error)
	Alternatives(ctx context.Context, userID, babyID uuid.UUID, ingredient string) (engine.AlternativeSet, error)
	RetryPlan(ctx context.Context, userID, babyID uuid.UUID) ([]engine.RetrySuggestion, error)
	NutritionReport(ctx context.Context, userID, babyID uuid.UUID, windowDays int) (engine.NutrientReport, error)
}

// IImageService defines the interface for recipe image storage
type IImageService interface {
	UploadRecipeImage(ctx context.Context, recipeID uuid.UUID, data []byte, contentType string) (string, error)
	PresignedImageURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error)
}
