package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/sproutspoon/backend/internal/engine"
	"github.com/pageza/sproutspoon/backend/internal/models"
	"github.com/pageza/sproutspoon/backend/internal/types"
)

var ErrRecipeNotFound = errors.New("recipe not found")

type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

func (s *RecipeService) CreateRecipe(ctx context.Context, req *types.CreateRecipeRequest) (*models.Recipe, error) {
	style := req.Style
	if style == "" {
		style = inferStyle(req.Name, req.Instructions)
	}
	recipe := &models.Recipe{
		Name:            req.Name,
		Description:     req.Description,
		MealType:        req.MealType,
		Style:           style,
		MinAgeMonths:    req.MinAgeMonths,
		MaxAgeMonths:    req.MaxAgeMonths,
		PrepTimeMinutes: req.PrepTimeMinutes,
		Instructions:    models.JSONBStringArray(req.Instructions),
		Version:         1,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return fmt.Errorf("failed to create recipe: %w", err)
		}
		return s.createPortions(tx, recipe.ID, req.Ingredients)
	})
	if err != nil {
		return nil, err
	}
	return s.GetRecipe(ctx, recipe.ID)
}

func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Ingredients.Ingredient").
		First(&recipe, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return &recipe, nil
}

// UpdateRecipe publishes a new version of the recipe rather than editing it
// in place. The old row is soft-deleted so past feedback still resolves, and
// the new row records its predecessor via ParentID.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id uuid.UUID, req *types.UpdateRecipeRequest) (*models.Recipe, error) {
	current, err := s.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}

	next := &models.Recipe{
		Name:            current.Name,
		Description:     current.Description,
		ImageURL:        current.ImageURL,
		MealType:        current.MealType,
		Style:           current.Style,
		MinAgeMonths:    current.MinAgeMonths,
		MaxAgeMonths:    current.MaxAgeMonths,
		PrepTimeMinutes: current.PrepTimeMinutes,
		Instructions:    current.Instructions,
		Version:         current.Version + 1,
		ParentID:        &current.ID,
	}
	if req.Name != "" {
		next.Name = req.Name
	}
	if req.Description != "" {
		next.Description = req.Description
	}
	if req.MealType != "" {
		next.MealType = req.MealType
	}
	if req.Style != "" {
		next.Style = req.Style
	}
	if req.MinAgeMonths > 0 {
		next.MinAgeMonths = req.MinAgeMonths
	}
	if req.MaxAgeMonths > 0 {
		next.MaxAgeMonths = req.MaxAgeMonths
	}
	if req.PrepTimeMinutes > 0 {
		next.PrepTimeMinutes = req.PrepTimeMinutes
	}
	if req.Instructions != nil {
		next.Instructions = models.JSONBStringArray(req.Instructions)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(next).Error; err != nil {
			return fmt.Errorf("failed to create recipe version: %w", err)
		}

		if req.Ingredients != nil {
			if err := s.createPortions(tx, next.ID, req.Ingredients); err != nil {
				return err
			}
		} else {
			for _, ri := range current.Ingredients {
				portion := models.RecipeIngredient{
					RecipeID:      next.ID,
					IngredientID:  ri.IngredientID,
					QuantityGrams: ri.QuantityGrams,
					Unit:          ri.Unit,
					Position:      ri.Position,
				}
				if err := tx.Create(&portion).Error; err != nil {
					return fmt.Errorf("failed to copy recipe portion: %w", err)
				}
			}
		}

		return tx.Delete(current).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetRecipe(ctx, next.ID)
}

func (s *RecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.Recipe{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete recipe: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecipeNotFound
	}
	return nil
}

// ListRecipes returns catalog recipes, optionally filtered by meal type and
// by an age in months the recipe window must cover.
func (s *RecipeService) ListRecipes(ctx context.Context, mealType string, ageMonths int) ([]*models.Recipe, error) {
	query := s.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Ingredients.Ingredient")

	if mealType != "" {
		query = query.Where("meal_type = ?", mealType)
	}
	if ageMonths > 0 {
		query = query.Where("min_age_months <= ? AND (max_age_months = 0 OR max_age_months >= ?)", ageMonths, ageMonths)
	}

	var recipes []*models.Recipe
	if err := query.Order("name ASC").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

func (s *RecipeService) SearchRecipes(ctx context.Context, query string) ([]*models.Recipe, error) {
	var recipes []*models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Ingredients.Ingredient").
		Where("name ILIKE ? OR description ILIKE ?", "%"+query+"%", "%"+query+"%").
		Order("name ASC").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search recipes: %w", err)
	}
	return recipes, nil
}

func (s *RecipeService) ListIngredients(ctx context.Context) ([]*models.Ingredient, error) {
	var ingredients []*models.Ingredient
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	return ingredients, nil
}

// SimilarIngredients finds the nearest neighbors of an ingredient's nutrient
// embedding using pgvector's cosine distance operator. This is the SQL-side
// counterpart of the in-memory alternative resolver, useful for catalog
// curation queries.
func (s *RecipeService) SimilarIngredients(ctx context.Context, ingredientID uuid.UUID, limit int) ([]*models.Ingredient, error) {
	if limit <= 0 {
		limit = 5
	}

	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).First(&ingredient, "id = ?", ingredientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("ingredient not found")
		}
		return nil, fmt.Errorf("failed to get ingredient: %w", err)
	}

	var neighbors []*models.Ingredient
	err := s.db.WithContext(ctx).
		Raw("SELECT * FROM ingredients WHERE id != ? ORDER BY embedding <=> ? LIMIT ?",
			ingredientID, ingredient.Embedding, limit).
		Scan(&neighbors).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query similar ingredients: %w", err)
	}
	return neighbors, nil
}

func (s *RecipeService) FavoriteRecipe(ctx context.Context, userID, recipeID uuid.UUID) error {
	var existing models.RecipeFavorite
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		First(&existing).Error
	if err == nil {
		return nil // already favorited
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check favorite: %w", err)
	}

	favorite := models.RecipeFavorite{UserID: userID, RecipeID: recipeID}
	if err := s.db.WithContext(ctx).Create(&favorite).Error; err != nil {
		return fmt.Errorf("failed to favorite recipe: %w", err)
	}
	return nil
}

func (s *RecipeService) UnfavoriteRecipe(ctx context.Context, userID, recipeID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.RecipeFavorite{})
	if result.Error != nil {
		return fmt.Errorf("failed to unfavorite recipe: %w", result.Error)
	}
	return nil
}

func (s *RecipeService) GetFavoriteRecipes(ctx context.Context, userID uuid.UUID) ([]*models.Recipe, error) {
	var recipes []*models.Recipe
	err := s.db.WithContext(ctx).
		Joins("JOIN recipe_favorites ON recipe_favorites.recipe_id = recipes.id").
		Where("recipe_favorites.user_id = ?", userID).
		Preload("Ingredients.Ingredient").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get favorite recipes: %w", err)
	}
	return recipes, nil
}

// createPortions validates that every referenced ingredient exists, then
// writes the ordered portion rows for a recipe version.
func (s *RecipeService) createPortions(tx *gorm.DB, recipeID uuid.UUID, inputs []types.RecipeIngredientInput) error {
	for i, in := range inputs {
		var count int64
		if err := tx.Model(&models.Ingredient{}).Where("id = ?", in.IngredientID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check ingredient: %w", err)
		}
		if count == 0 {
			return fmt.Errorf("unknown ingredient %s", in.IngredientID)
		}

		unit := in.Unit
		if unit == "" {
			unit = "g"
		}
		portion := models.RecipeIngredient{
			RecipeID:      recipeID,
			IngredientID:  in.IngredientID,
			QuantityGrams: in.QuantityGrams,
			Unit:          unit,
			Position:      i,
		}
		if err := tx.Create(&portion).Error; err != nil {
			return fmt.Errorf("failed to create recipe portion: %w", err)
		}
	}
	return nil
}

// inferStyle guesses a preparation style from the recipe name and
// instructions when the author left it blank. Explicit styles always win.
func inferStyle(name string, instructions []string) string {
	text := strings.ToLower(name + " " + strings.Join(instructions, " "))
	switch {
	case strings.Contains(text, "puree") || strings.Contains(text, "blend"):
		return string(engine.StylePureed)
	case strings.Contains(text, "mash"):
		return string(engine.StyleMashed)
	case strings.Contains(text, "steam"):
		return string(engine.StyleSteamed)
	case strings.Contains(text, "roast"):
		return string(engine.StyleRoasted)
	case strings.Contains(text, "bake") || strings.Contains(text, "oven"):
		return string(engine.StyleBakedMixed)
	case strings.Contains(text, "stick") || strings.Contains(text, "finger") || strings.Contains(text, "pieces"):
		return string(engine.StyleFingerFood)
	default:
		return string(engine.StyleUnknown)
	}
}
