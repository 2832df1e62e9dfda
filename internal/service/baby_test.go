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

func createTestUser(t *testing.T, db *gorm.DB, email string) uuid.UUID {
	t.Helper()
	user := models.User{Name: "Test Parent", Email: email, PasswordHash: "hashed"}
	require.NoError(t, db.Create(&user).Error)
	return user.ID
}

func TestCreateAndGetBaby(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewBabyService(db)
	userID := createTestUser(t, db, "parent@example.com")

	baby, err := svc.CreateBaby(context.Background(), userID, &types.CreateBabyRequest{
		Name:                "Milo",
		BirthDate:           time.Now().AddDate(0, -8, -5),
		WeightKg:            8.2,
		Allergies:           []string{"peanuts"},
		LikedIngredients:    []string{"banana"},
		DislikedIngredients: []string{"carrot"},
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, baby.ID)

	got, err := svc.GetBaby(context.Background(), userID, baby.ID)
	require.NoError(t, err)
	assert.Equal(t, "Milo", got.Name)
	assert.Equal(t, models.JSONBStringArray{"peanuts"}, got.Allergies)
	assert.Equal(t, 8, got.AgeMonths(time.Now()))

	// Another account must not be able to read the profile.
	otherID := createTestUser(t, db, "other@example.com")
	_, err = svc.GetBaby(context.Background(), otherID, baby.ID)
	assert.ErrorIs(t, err, ErrBabyNotFound)
}

func TestCreateBabyRejectsFutureBirthDate(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewBabyService(db)
	userID := createTestUser(t, db, "parent@example.com")

	_, err := svc.CreateBaby(context.Background(), userID, &types.CreateBabyRequest{
		Name:      "Nova",
		BirthDate: time.Now().AddDate(0, 1, 0),
	})
	assert.Error(t, err)
}

func TestUpdateBabyPartial(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewBabyService(db)
	userID := createTestUser(t, db, "parent@example.com")

	baby, err := svc.CreateBaby(context.Background(), userID, &types.CreateBabyRequest{
		Name:             "Milo",
		BirthDate:        time.Now().AddDate(0, -8, 0),
		LikedIngredients: []string{"banana"},
	})
	require.NoError(t, err)

	newName := "Milo Jr"
	updated, err := svc.UpdateBaby(context.Background(), userID, baby.ID, &types.UpdateBabyRequest{
		Name:                &newName,
		DislikedIngredients: []string{"spinach"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Milo Jr", updated.Name)
	assert.Equal(t, models.JSONBStringArray{"spinach"}, updated.DislikedIngredients)
	// Untouched fields keep their values.
	assert.Equal(t, models.JSONBStringArray{"banana"}, updated.LikedIngredients)
}

func TestDeleteBaby(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewBabyService(db)
	userID := createTestUser(t, db, "parent@example.com")

	baby, err := svc.CreateBaby(context.Background(), userID, &types.CreateBabyRequest{
		Name:      "Milo",
		BirthDate: time.Now().AddDate(0, -8, 0),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteBaby(context.Background(), userID, baby.ID))

	_, err = svc.GetBaby(context.Background(), userID, baby.ID)
	assert.ErrorIs(t, err, ErrBabyNotFound)

	err = svc.DeleteBaby(context.Background(), userID, uuid.New())
	assert.ErrorIs(t, err, ErrBabyNotFound)
}
