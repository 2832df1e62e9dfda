package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/sproutspoon/backend/internal/models"
	"github.com/pageza/sproutspoon/backend/internal/testhelpers"
	"github.com/pageza/sproutspoon/backend/internal/types"
)

func seedBabyAndRecipe(t *testing.T, db *gorm.DB, userID uuid.UUID) (uuid.UUID, uuid.UUID) {
	t.Helper()
	babySvc := NewBabyService(db)
	baby, err := babySvc.CreateBaby(context.Background(), userID, &types.CreateBabyRequest{
		Name:      "Milo",
		BirthDate: time.Now().AddDate(0, -8, 0),
	})
	require.NoError(t, err)

	ingredientID := seedIngredient(t, db, models.Ingredient{Name: "banana", Calories: 89})
	recipe, err := NewRecipeService(db).CreateRecipe(context.Background(), &types.CreateRecipeRequest{
		Name:         "Banana Mash",
		MealType:     "breakfast",
		Style:        "mashed",
		MinAgeMonths: 6,
		Instructions: []string{"Mash the banana."},
		Ingredients: []types.RecipeIngredientInput{
			{IngredientID: ingredientID, QuantityGrams: 60},
		},
	})
	require.NoError(t, err)
	return baby.ID, recipe.ID
}

func TestRecordFeedback(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewFeedbackService(db, nil)
	userID := createTestUser(t, db, "parent@example.com")
	babyID, recipeID := seedBabyAndRecipe(t, db, userID)

	event, err := svc.RecordFeedback(context.Background(), userID, &types.CreateFeedbackRequest{
		BabyID:   babyID,
		RecipeID: recipeID,
		Accepted: true,
		Rating:   4.5,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.False(t, event.OccurredAt.IsZero(), "occurred_at defaults to now")
}

func TestRecordFeedbackRejectionNeedsReason(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewFeedbackService(db, nil)
	userID := createTestUser(t, db, "parent@example.com")
	babyID, recipeID := seedBabyAndRecipe(t, db, userID)

	_, err := svc.RecordFeedback(context.Background(), userID, &types.CreateFeedbackRequest{
		BabyID:   babyID,
		RecipeID: recipeID,
		Accepted: false,
	})
	assert.Error(t, err)

	event, err := svc.RecordFeedback(context.Background(), userID, &types.CreateFeedbackRequest{
		BabyID:          babyID,
		RecipeID:        recipeID,
		Accepted:        false,
		RejectionReason: "texture_issue",
	})
	require.NoError(t, err)
	assert.Equal(t, "texture_issue", event.RejectionReason)
}

func TestRecordFeedbackOwnershipAndExistence(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewFeedbackService(db, nil)
	userID := createTestUser(t, db, "parent@example.com")
	babyID, recipeID := seedBabyAndRecipe(t, db, userID)

	otherID := createTestUser(t, db, "other@example.com")
	_, err := svc.RecordFeedback(context.Background(), otherID, &types.CreateFeedbackRequest{
		BabyID:   babyID,
		RecipeID: recipeID,
		Accepted: true,
	})
	assert.ErrorIs(t, err, ErrBabyNotFound)

	_, err = svc.RecordFeedback(context.Background(), userID, &types.CreateFeedbackRequest{
		BabyID:   babyID,
		RecipeID: uuid.New(),
		Accepted: true,
	})
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestListFeedbackOrderedNewestFirst(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewFeedbackService(db, nil)
	userID := createTestUser(t, db, "parent@example.com")
	babyID, recipeID := seedBabyAndRecipe(t, db, userID)

	older := time.Now().AddDate(0, 0, -3)
	newer := time.Now().AddDate(0, 0, -1)
	for _, at := range []time.Time{older, newer} {
		_, err := svc.RecordFeedback(context.Background(), userID, &types.CreateFeedbackRequest{
			BabyID:     babyID,
			RecipeID:   recipeID,
			Accepted:   true,
			Rating:     4,
			OccurredAt: at,
		})
		require.NoError(t, err)
	}

	events, err := svc.ListFeedback(context.Background(), userID, babyID, 10, 0)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.True(t, events[0].OccurredAt.After(events[1].OccurredAt))
}
