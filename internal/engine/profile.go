package engine

import (
	"sort"

	"github.com/google/uuid"
)

// ProfileContext is an immutable snapshot of a baby taken at the start of an
// engine invocation. Allergy and preference lookups are precomputed so the
// hot scoring path stays allocation-free.
type ProfileContext struct {
	BabyID    uuid.UUID
	Name      string
	AgeMonths int
	WeightKg  float64
	HeightCm  float64

	allergies map[string]struct{}
	liked     map[string]struct{}
	disliked  map[string]struct{}
}

// NewProfileContext builds a profile snapshot. Names and tags are normalized
// to lowercase so matching is case-insensitive throughout the engine.
func NewProfileContext(babyID uuid.UUID, name string, ageMonths int, weightKg, heightCm float64, allergies, liked, disliked []string) ProfileContext {
	return ProfileContext{
		BabyID:    babyID,
		Name:      name,
		AgeMonths: ageMonths,
		WeightKg:  weightKg,
		HeightCm:  heightCm,
		allergies: toSet(allergies),
		liked:     toSet(liked),
		disliked:  toSet(disliked),
	}
}

// AllergicTo reports whether the baby is allergic to the given allergen tag.
func (p ProfileContext) AllergicTo(tag string) bool {
	_, ok := p.allergies[normalizeName(tag)]
	return ok
}

// AllergicToAny reports whether any of the tags intersects the allergy set.
func (p ProfileContext) AllergicToAny(tags []string) bool {
	for _, tag := range tags {
		if p.AllergicTo(tag) {
			return true
		}
	}
	return false
}

// Likes reports whether the ingredient name is in the liked set.
func (p ProfileContext) Likes(ingredient string) bool {
	_, ok := p.liked[normalizeName(ingredient)]
	return ok
}

// Dislikes reports whether the ingredient name is in the disliked set.
func (p ProfileContext) Dislikes(ingredient string) bool {
	_, ok := p.disliked[normalizeName(ingredient)]
	return ok
}

// Disliked returns the disliked ingredient names in sorted order.
func (p ProfileContext) Disliked() []string { return sortedKeys(p.disliked) }

// Liked returns the liked ingredient names in sorted order.
func (p ProfileContext) Liked() []string { return sortedKeys(p.liked) }

// Allergies returns the allergy tags in sorted order.
func (p ProfileContext) Allergies() []string { return sortedKeys(p.allergies) }

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		if n := normalizeName(item); n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
