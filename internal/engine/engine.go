// Package engine implements the recommendation and nutrition-reconciliation
// core: safety filtering, preference scoring, alternative resolution,
// retry-strategy tracking and nutrient aggregation. The engine operates on
// immutable in-memory snapshots loaded by the service layer and never
// touches storage, so every invariant is unit-testable in isolation.
package engine

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// ExplanationContext is the input handed to the external explanation
// provider. The engine never depends on the provider for correctness.
type ExplanationContext struct {
	BabySummary      string
	Shortlist        []string
	RetryCount       int
	AlternativeCount int
}

// ExplanationProvider generates natural-language explanations for a
// recommendation shortlist. Implementations may fail or time out; the
// engine treats any failure as "no explanation available".
type ExplanationProvider interface {
	Generate(ctx context.Context, ec ExplanationContext) (string, error)
}

// RecommendOptions tunes a single Recommend invocation.
type RecommendOptions struct {
	Count            int    // top-K recommendations, default 10
	MealType         string // optional filter
	WindowDays       int    // nutrient analysis window, default 7
	IncludeNutrition bool
}

// Recommendation is the full engine output for one request.
type Recommendation struct {
	Results            []ScoredRecipe            `json:"results"`
	Alternatives       map[string]AlternativeSet `json:"alternatives"`
	RetrySuggestions   []RetrySuggestion         `json:"retry_suggestions"`
	Nutrition          *NutrientReport           `json:"nutrition,omitempty"`
	OverallExplanation string                    `json:"overall_explanation"`
}

// Engine wires the pipeline together: SafetyFilter → PreferenceScorer →
// top-K, with alternative resolution and retry tracking fanned out over the
// disliked ingredients.
type Engine struct {
	safety       *SafetyFilter
	scorer       *PreferenceScorer
	alternatives *AlternativeResolver
	retry        *RetryStrategyTracker
	nutrition    *NutrientAggregator
	explainer    ExplanationProvider

	explainTimeout time.Duration
	now            func() time.Time
}

// Options configures a new Engine. Zero values fall back to documented
// defaults.
type Options struct {
	Weights        ScoreWeights
	MinSimilarity  float64
	MaxSubstitutes int
	RetryInterval  time.Duration
	ExplainTimeout time.Duration
}

// DefaultExplainTimeout bounds each call to the explanation provider.
const DefaultExplainTimeout = 5 * time.Second

// New assembles an engine from the static reference tables and an optional
// explanation provider (nil means rule-based explanations only).
func New(targets TargetTable, ceilings CeilingTable, explainer ExplanationProvider, opts Options) *Engine {
	if opts.ExplainTimeout <= 0 {
		opts.ExplainTimeout = DefaultExplainTimeout
	}
	safety := NewSafetyFilter(ceilings)
	return &Engine{
		safety:         safety,
		scorer:         NewPreferenceScorer(opts.Weights),
		alternatives:   NewAlternativeResolver(safety, opts.MinSimilarity, opts.MaxSubstitutes),
		retry:          NewRetryStrategyTracker(opts.RetryInterval),
		nutrition:      NewNutrientAggregator(targets),
		explainer:      explainer,
		explainTimeout: opts.ExplainTimeout,
		now:            time.Now,
	}
}

// SafetyFilter exposes the engine's hard-exclusion pass for callers that
// need it standalone (alternative lookups, catalog browsing).
func (e *Engine) SafetyFilter() *SafetyFilter { return e.safety }

// Aggregator exposes the nutrient aggregator for the nutrition endpoint.
func (e *Engine) Aggregator() *NutrientAggregator { return e.nutrition }

// Resolver exposes the alternative resolver for the alternatives endpoint.
func (e *Engine) Resolver() *AlternativeResolver { return e.alternatives }

// Tracker exposes the retry strategy tracker.
func (e *Engine) Tracker() *RetryStrategyTracker { return e.retry }

// Recommend runs the full pipeline for one baby. Zero safe recipes, zero
// alternatives and zero nutrient data are all valid terminal states carried
// in the result; the only error cases are validation and configuration
// failures.
func (e *Engine) Recommend(ctx context.Context, profile ProfileContext, catalog *Catalog, history FeedbackHistory, opts RecommendOptions) (*Recommendation, error) {
	if opts.Count <= 0 {
		opts.Count = 10
	}
	if opts.WindowDays <= 0 {
		opts.WindowDays = 7
	}

	candidates := catalog.Recipes()
	if opts.MealType != "" {
		filtered := make([]Recipe, 0, len(candidates))
		for _, r := range candidates {
			if r.MealType == opts.MealType {
				filtered = append(filtered, r)
			}
		}
		candidates = filtered
	}

	safe, err := e.safety.Filter(profile, catalog, candidates)
	if err != nil {
		return nil, err
	}

	ranked := e.scorer.Score(profile, catalog, safe, history)
	if len(ranked) > opts.Count {
		ranked = ranked[:opts.Count]
	}

	rec := &Recommendation{
		Results:      ranked,
		Alternatives: e.resolveAlternatives(profile, catalog),
	}
	rec.RetrySuggestions = e.retry.Suggestions(profile, catalog, history, e.now())

	if opts.IncludeNutrition {
		report, err := e.nutrition.Analyze(profile, catalog, history, opts.WindowDays, e.now())
		if err != nil {
			return nil, err
		}
		rec.Nutrition = &report
	}

	rec.OverallExplanation = e.explain(ctx, profile, rec)
	return rec, nil
}

// resolveAlternatives fans out one lookup per disliked ingredient. The
// lookups are read-only over the immutable snapshot, so they run
// concurrently without coordination beyond the result slots.
func (e *Engine) resolveAlternatives(profile ProfileContext, catalog *Catalog) map[string]AlternativeSet {
	disliked := profile.Disliked()
	results := make([]AlternativeSet, len(disliked))

	var wg sync.WaitGroup
	for i, ingredient := range disliked {
		wg.Add(1)
		go func(i int, ingredient string) {
			defer wg.Done()
			set, err := e.alternatives.FindAlternatives(profile, catalog, ingredient)
			if err != nil {
				// Unknown disliked ingredients are a profile data quirk, not
				// a reason to fail the whole recommendation.
				log.Printf("[Engine] alternatives for %q: %v", ingredient, err)
				set = AlternativeSet{Ingredient: ingredient}
			}
			results[i] = set
		}(i, ingredient)
	}
	wg.Wait()

	out := make(map[string]AlternativeSet, len(results))
	for _, set := range results {
		out[set.Ingredient] = set
	}
	return out
}

// explain asks the external provider for an overall explanation with a hard
// timeout and a single retry, then falls back to a templated summary. The
// degrade-gracefully contract is mandatory: this method never fails the
// request.
func (e *Engine) explain(ctx context.Context, profile ProfileContext, rec *Recommendation) string {
	fallback := fmt.Sprintf("Personalized recommendations for %s based on age, preferences and nutrition.", profile.Name)
	if e.explainer == nil {
		return fallback
	}

	ec := ExplanationContext{
		BabySummary:      fmt.Sprintf("%s, %d months", profile.Name, profile.AgeMonths),
		RetryCount:       len(rec.RetrySuggestions),
		AlternativeCount: len(rec.Alternatives),
	}
	for i, r := range rec.Results {
		if i == 5 {
			break
		}
		ec.Shortlist = append(ec.Shortlist, r.Recipe.Name)
	}

	for attempt := 0; attempt < 2; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, e.explainTimeout)
		text, err := e.explainer.Generate(callCtx, ec)
		cancel()
		if err == nil && text != "" {
			return text
		}
		log.Printf("[Engine] explanation attempt %d failed: %v", attempt+1, err)
	}
	return fallback
}
