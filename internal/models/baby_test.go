package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBabyAgeMonths(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		birthDate time.Time
		want      int
	}{
		{"ten months", time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC), 10},
		{"day not yet reached", time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC), 9},
		{"exactly one year", time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC), 12},
		{"newborn", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), 0},
		{"birth date in the future", time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Baby{BirthDate: tt.birthDate}
			assert.Equal(t, tt.want, b.AgeMonths(now))
		})
	}
}

func TestBabyToProfileContext(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	b := Baby{
		Name:                "Milo",
		BirthDate:           time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		Allergies:           JSONBStringArray{"Peanuts"},
		LikedIngredients:    JSONBStringArray{"Banana"},
		DislikedIngredients: JSONBStringArray{"Carrot"},
	}

	profile := b.ToProfileContext(now)
	assert.Equal(t, 10, profile.AgeMonths)
	assert.True(t, profile.AllergicTo("peanuts"), "allergen matching is case-insensitive")
	assert.True(t, profile.Likes("banana"))
	assert.True(t, profile.Dislikes("carrot"))
}
