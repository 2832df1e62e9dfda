package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/sproutspoon/backend/internal/models"
	"github.com/pageza/sproutspoon/backend/internal/types"
)

var ErrBabyNotFound = errors.New("baby not found")

type BabyService struct {
	db *gorm.DB
}

func NewBabyService(db *gorm.DB) *BabyService {
	return &BabyService{db: db}
}

func (s *BabyService) CreateBaby(ctx context.Context, userID uuid.UUID, req *types.CreateBabyRequest) (*models.Baby, error) {
	if req.BirthDate.After(time.Now()) {
		return nil, fmt.Errorf("birth date cannot be in the future")
	}

	baby := &models.Baby{
		UserID:              userID,
		Name:                req.Name,
		BirthDate:           req.BirthDate,
		WeightKg:            req.WeightKg,
		HeightCm:            req.HeightCm,
		Allergies:           models.JSONBStringArray(req.Allergies),
		LikedIngredients:    models.JSONBStringArray(req.LikedIngredients),
		DislikedIngredients: models.JSONBStringArray(req.DislikedIngredients),
	}
	if err := s.db.WithContext(ctx).Create(baby).Error; err != nil {
		return nil, fmt.Errorf("failed to create baby profile: %w", err)
	}
	return baby, nil
}

// GetBaby loads one baby profile, scoped to its owning user so one account
// can never read another account's children.
func (s *BabyService) GetBaby(ctx context.Context, userID, babyID uuid.UUID) (*models.Baby, error) {
	var baby models.Baby
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", babyID, userID).
		First(&baby).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBabyNotFound
		}
		return nil, fmt.Errorf("failed to get baby profile: %w", err)
	}
	return &baby, nil
}

func (s *BabyService) ListBabies(ctx context.Context, userID uuid.UUID) ([]*models.Baby, error) {
	var babies []*models.Baby
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&babies).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list baby profiles: %w", err)
	}
	return babies, nil
}

func (s *BabyService) UpdateBaby(ctx context.Context, userID, babyID uuid.UUID, req *types.UpdateBabyRequest) (*models.Baby, error) {
	baby, err := s.GetBaby(ctx, userID, babyID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		baby.Name = *req.Name
	}
	if req.BirthDate != nil {
		if req.BirthDate.After(time.Now()) {
			return nil, fmt.Errorf("birth date cannot be in the future")
		}
		baby.BirthDate = *req.BirthDate
	}
	if req.WeightKg != nil {
		baby.WeightKg = *req.WeightKg
	}
	if req.HeightCm != nil {
		baby.HeightCm = *req.HeightCm
	}
	if req.Allergies != nil {
		baby.Allergies = models.JSONBStringArray(req.Allergies)
	}
	if req.LikedIngredients != nil {
		baby.LikedIngredients = models.JSONBStringArray(req.LikedIngredients)
	}
	if req.DislikedIngredients != nil {
		baby.DislikedIngredients = models.JSONBStringArray(req.DislikedIngredients)
	}

	if err := s.db.WithContext(ctx).Save(baby).Error; err != nil {
		return nil, fmt.Errorf("failed to update baby profile: %w", err)
	}
	return baby, nil
}

// DeleteBaby soft-deletes the profile. The feedback log is kept: it is
// append-only history, and a restore brings the derived views back intact.
func (s *BabyService) DeleteBaby(ctx context.Context, userID, babyID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", babyID, userID).
		Delete(&models.Baby{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete baby profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBabyNotFound
	}
	return nil
}
