package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/sproutspoon/backend/internal/engine"
	"github.com/pageza/sproutspoon/backend/internal/models"
)

// RecommendationService loads consistent snapshots from storage and runs the
// recommendation engine over them. Results are cached per baby in Redis and
// invalidated by the feedback service when new events arrive.
type RecommendationService struct {
	db     *gorm.DB
	engine *engine.Engine
	redis  *redis.Client
}

const recommendationCacheTTL = 15 * time.Minute

func NewRecommendationService(db *gorm.DB, eng *engine.Engine, redisClient *redis.Client) *RecommendationService {
	return &RecommendationService{db: db, engine: eng, redis: redisClient}
}

func (s *RecommendationService) Recommend(ctx context.Context, userID, babyID uuid.UUID, opts engine.RecommendOptions) (*engine.Recommendation, error) {
	// Ownership is the only check a cache hit may not skip; the catalog and
	// history snapshots are loaded after the cache lookup misses.
	baby, err := s.loadBaby(ctx, userID, babyID)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("rec:%s:recommend:%d:%s:%d:%t",
		babyID, opts.Count, opts.MealType, opts.WindowDays, opts.IncludeNutrition)
	if cached := s.cachedRecommendation(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	profile, catalog, history, err := s.snapshotsFor(ctx, baby)
	if err != nil {
		return nil, err
	}

	rec, err := s.engine.Recommend(ctx, profile, catalog, history, opts)
	if err != nil {
		return nil, err
	}

	s.cacheRecommendation(ctx, cacheKey, rec)
	return rec, nil
}

func (s *RecommendationService) Alternatives(ctx context.Context, userID, babyID uuid.UUID, ingredient string) (engine.AlternativeSet, error) {
	profile, catalog, _, err := s.loadSnapshots(ctx, userID, babyID)
	if err != nil {
		return engine.AlternativeSet{}, err
	}
	return s.engine.Resolver().FindAlternatives(profile, catalog, ingredient)
}

func (s *RecommendationService) RetryPlan(ctx context.Context, userID, babyID uuid.UUID) ([]engine.RetrySuggestion, error) {
	profile, catalog, history, err := s.loadSnapshots(ctx, userID, babyID)
	if err != nil {
		return nil, err
	}
	return s.engine.Tracker().Suggestions(profile, catalog, history, time.Now()), nil
}

func (s *RecommendationService) NutritionReport(ctx context.Context, userID, babyID uuid.UUID, windowDays int) (engine.NutrientReport, error) {
	profile, catalog, history, err := s.loadSnapshots(ctx, userID, babyID)
	if err != nil {
		return engine.NutrientReport{}, err
	}
	if windowDays <= 0 {
		windowDays = 7
	}
	return s.engine.Aggregator().Analyze(profile, catalog, history, windowDays, time.Now())
}

// loadBaby fetches the profile and enforces ownership.
func (s *RecommendationService) loadBaby(ctx context.Context, userID, babyID uuid.UUID) (*models.Baby, error) {
	var baby models.Baby
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", babyID, userID).
		First(&baby).Error
	if err != nil {
		return nil, ErrBabyNotFound
	}
	return &baby, nil
}

// loadSnapshots reads the baby profile, the full catalog and the baby's
// feedback log and converts them into the engine's immutable snapshot types.
func (s *RecommendationService) loadSnapshots(ctx context.Context, userID, babyID uuid.UUID) (engine.ProfileContext, *engine.Catalog, engine.FeedbackHistory, error) {
	baby, err := s.loadBaby(ctx, userID, babyID)
	if err != nil {
		return engine.ProfileContext{}, nil, nil, err
	}
	return s.snapshotsFor(ctx, baby)
}

// snapshotsFor builds the engine inputs for an already-authorized baby.
// Recipes are loaded unscoped: live versions become scoring candidates,
// soft-deleted predecessors stay resolvable so the feedback log always maps
// back to the exact recipe version it rated.
func (s *RecommendationService) snapshotsFor(ctx context.Context, baby *models.Baby) (engine.ProfileContext, *engine.Catalog, engine.FeedbackHistory, error) {
	var ingredients []models.Ingredient
	if err := s.db.WithContext(ctx).Find(&ingredients).Error; err != nil {
		return engine.ProfileContext{}, nil, nil, fmt.Errorf("failed to load ingredients: %w", err)
	}

	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Unscoped().
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Find(&recipes).Error
	if err != nil {
		return engine.ProfileContext{}, nil, nil, fmt.Errorf("failed to load recipes: %w", err)
	}

	var events []models.FeedbackEvent
	err = s.db.WithContext(ctx).
		Where("baby_id = ?", baby.ID).
		Order("occurred_at ASC").
		Find(&events).Error
	if err != nil {
		return engine.ProfileContext{}, nil, nil, fmt.Errorf("failed to load feedback history: %w", err)
	}

	engIngredients := make([]engine.Ingredient, 0, len(ingredients))
	for i := range ingredients {
		engIngredients = append(engIngredients, ingredients[i].ToEngine())
	}
	active := make([]engine.Recipe, 0, len(recipes))
	var retired []engine.Recipe
	for i := range recipes {
		if recipes[i].DeletedAt.Valid {
			retired = append(retired, recipes[i].ToEngine())
		} else {
			active = append(active, recipes[i].ToEngine())
		}
	}
	history := make(engine.FeedbackHistory, 0, len(events))
	for i := range events {
		history = append(history, events[i].ToEngine())
	}

	catalog := engine.NewCatalogWithRetired(engIngredients, active, retired)
	return baby.ToProfileContext(time.Now()), catalog, history, nil
}

func (s *RecommendationService) cachedRecommendation(ctx context.Context, key string) *engine.Recommendation {
	if s.redis == nil {
		return nil
	}
	data, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	var rec engine.Recommendation
	if err := json.Unmarshal(data, &rec); err != nil {
		log.Printf("[RecommendationService] dropping unreadable cache entry %s: %v", key, err)
		return nil
	}
	return &rec
}

func (s *RecommendationService) cacheRecommendation(ctx context.Context, key string, rec *engine.Recommendation) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(rec)
	if err != nil {
		log.Printf("[RecommendationService] failed to marshal recommendation for cache: %v", err)
		return
	}
	if err := s.redis.Set(ctx, key, data, recommendationCacheTTL).Err(); err != nil {
		log.Printf("[RecommendationService] failed to cache recommendation: %v", err)
	}
}
