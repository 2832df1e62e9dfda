package engine

import (
	"time"

	"github.com/google/uuid"
)

// RejectionReason enumerates why a recommended meal was rejected.
type RejectionReason string

const (
	RejectionNone             RejectionReason = "none"
	RejectionBabyRefused      RejectionReason = "baby_refused"
	RejectionAllergicReaction RejectionReason = "allergic_reaction"
	RejectionTextureIssue     RejectionReason = "texture_issue"
	RejectionOther            RejectionReason = "other"
)

// FeedbackEvent is one entry of the append-only feedback log, as loaded for
// a single engine invocation. Events are never mutated.
type FeedbackEvent struct {
	BabyID          uuid.UUID
	RecipeID        uuid.UUID
	OccurredAt      time.Time
	Accepted        bool
	Rating          float64 // 0-5
	RejectionReason RejectionReason
}

// FeedbackHistory is a consistent slice of the feedback log for one baby,
// ordered oldest first.
type FeedbackHistory []FeedbackEvent

// RatingsFor returns all ratings the baby gave for the recipe.
func (h FeedbackHistory) RatingsFor(recipeID uuid.UUID) []float64 {
	var ratings []float64
	for _, ev := range h {
		if ev.RecipeID == recipeID {
			ratings = append(ratings, ev.Rating)
		}
	}
	return ratings
}

// AcceptedWithin returns accepted events with OccurredAt in (from, to].
func (h FeedbackHistory) AcceptedWithin(from, to time.Time) []FeedbackEvent {
	var out []FeedbackEvent
	for _, ev := range h {
		if ev.Accepted && ev.OccurredAt.After(from) && !ev.OccurredAt.After(to) {
			out = append(out, ev)
		}
	}
	return out
}
