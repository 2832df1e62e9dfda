package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/pageza/sproutspoon/backend/internal/engine"
)

// FeedbackEvent is one append-only meal outcome. Events are never updated
// or deleted; retry state and nutrition reports are derived views over this
// log, which is why it carries no UpdatedAt or DeletedAt.
type FeedbackEvent struct {
	ID        uuid.UUID `gorm:"type:uuid;primarykey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	BabyID   uuid.UUID `gorm:"type:uuid;not null;index" json:"baby_id"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`

	Accepted        bool    `gorm:"not null" json:"accepted"`
	Rating          float64 `gorm:"type:float;check:rating >= 0 AND rating <= 5" json:"rating"`
	RejectionReason string  `gorm:"size:30" json:"rejection_reason,omitempty"` // baby_refused, allergic_reaction, texture_issue, other
	Notes           string  `gorm:"type:text" json:"notes,omitempty"`

	OccurredAt time.Time `gorm:"not null;index" json:"occurred_at"`
}

// TableName returns the table name for the FeedbackEvent model
func (FeedbackEvent) TableName() string {
	return "feedback_events"
}

// ToEngine converts the row into the engine's history event type.
func (f *FeedbackEvent) ToEngine() engine.FeedbackEvent {
	return engine.FeedbackEvent{
		BabyID:          f.BabyID,
		RecipeID:        f.RecipeID,
		OccurredAt:      f.OccurredAt,
		Accepted:        f.Accepted,
		Rating:          f.Rating,
		RejectionReason: engine.RejectionReason(f.RejectionReason),
	}
}
