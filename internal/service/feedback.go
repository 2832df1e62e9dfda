package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/sproutspoon/backend/internal/models"
	"github.com/pageza/sproutspoon/backend/internal/types"
)

type FeedbackService struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewFeedbackService creates the feedback service. The Redis client is
// optional; without it recommendation caches are simply not invalidated.
func NewFeedbackService(db *gorm.DB, redisClient *redis.Client) *FeedbackService {
	return &FeedbackService{db: db, redis: redisClient}
}

// RecordFeedback appends one meal outcome to the event log. Events are
// immutable: corrections are new events, never updates.
func (s *FeedbackService) RecordFeedback(ctx context.Context, userID uuid.UUID, req *types.CreateFeedbackRequest) (*models.FeedbackEvent, error) {
	// The baby must belong to the caller.
	var baby models.Baby
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", req.BabyID, userID).
		First(&baby).Error
	if err != nil {
		return nil, ErrBabyNotFound
	}

	var recipeCount int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", req.RecipeID).Count(&recipeCount).Error; err != nil {
		return nil, fmt.Errorf("failed to check recipe: %w", err)
	}
	if recipeCount == 0 {
		return nil, ErrRecipeNotFound
	}

	if !req.Accepted && req.RejectionReason == "" {
		return nil, fmt.Errorf("rejection_reason is required when a meal is rejected")
	}

	occurredAt := req.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	event := &models.FeedbackEvent{
		BabyID:          req.BabyID,
		RecipeID:        req.RecipeID,
		Accepted:        req.Accepted,
		Rating:          req.Rating,
		RejectionReason: req.RejectionReason,
		Notes:           req.Notes,
		OccurredAt:      occurredAt,
	}
	if err := s.db.WithContext(ctx).Create(event).Error; err != nil {
		return nil, fmt.Errorf("failed to record feedback: %w", err)
	}

	s.invalidateRecommendationCache(ctx, req.BabyID)
	return event, nil
}

func (s *FeedbackService) ListFeedback(ctx context.Context, userID, babyID uuid.UUID, limit, offset int) ([]*models.FeedbackEvent, error) {
	var baby models.Baby
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", babyID, userID).
		First(&baby).Error
	if err != nil {
		return nil, ErrBabyNotFound
	}

	if limit <= 0 {
		limit = 50
	}

	var events []*models.FeedbackEvent
	err = s.db.WithContext(ctx).
		Where("baby_id = ?", babyID).
		Order("occurred_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return events, nil
}

// invalidateRecommendationCache drops the cached recommendation and report
// entries for a baby after new feedback changes the derived views.
func (s *FeedbackService) invalidateRecommendationCache(ctx context.Context, babyID uuid.UUID) {
	if s.redis == nil {
		return
	}
	pattern := fmt.Sprintf("rec:%s:*", babyID)
	iter := s.redis.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := s.redis.Del(ctx, iter.Val()).Err(); err != nil {
			log.Printf("[FeedbackService] failed to invalidate cache key %s: %v", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		log.Printf("[FeedbackService] cache invalidation scan failed: %v", err)
	}
}
