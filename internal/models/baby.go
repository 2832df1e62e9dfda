package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/sproutspoon/backend/internal/engine"
)

// Baby is a child profile owned by a user account. Preference lists hold
// normalized ingredient names; allergies hold allergen tags. Age is always
// derived from the birth date, never stored.
type Baby struct {
	ID        uuid.UUID      `gorm:"type:uuid;primarykey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	BirthDate time.Time `gorm:"not null" json:"birth_date"`
	WeightKg  float64   `gorm:"type:float" json:"weight_kg"`
	HeightCm  float64   `gorm:"type:float" json:"height_cm"`

	Allergies           JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"allergies"`
	LikedIngredients    JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"liked_ingredients"`
	DislikedIngredients JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"disliked_ingredients"`
}

// AgeMonths computes the baby's age in whole months at the given time.
func (b *Baby) AgeMonths(now time.Time) int {
	if now.Before(b.BirthDate) {
		return 0
	}
	months := (now.Year()-b.BirthDate.Year())*12 + int(now.Month()) - int(b.BirthDate.Month())
	if now.Day() < b.BirthDate.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// ToProfileContext builds the engine's immutable profile snapshot.
func (b *Baby) ToProfileContext(now time.Time) engine.ProfileContext {
	return engine.NewProfileContext(
		b.ID, b.Name, b.AgeMonths(now), b.WeightKg, b.HeightCm,
		b.Allergies, b.LikedIngredients, b.DislikedIngredients,
	)
}
