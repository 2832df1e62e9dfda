package engine

import "math"

// Nutrient identifies a tracked nutrient dimension. Values match the
// per-100g columns on the ingredients table.
type Nutrient string

const (
	NutrientCalories Nutrient = "calories"
	NutrientProtein  Nutrient = "protein_g"
	NutrientCarbs    Nutrient = "carbs_g"
	NutrientFat      Nutrient = "fat_g"
	NutrientFiber    Nutrient = "fiber_g"
	NutrientSugar    Nutrient = "sugar_g"
	NutrientSodium   Nutrient = "sodium_mg"
	NutrientIron     Nutrient = "iron_mg"
	NutrientCalcium  Nutrient = "calcium_mg"
	NutrientVitaminA Nutrient = "vitamin_a_mcg"
	NutrientVitaminC Nutrient = "vitamin_c_mg"
	NutrientVitaminD Nutrient = "vitamin_d_mcg"
)

// AllNutrients lists every tracked nutrient in canonical order. The order is
// load-bearing: it is used for deterministic report output and for encoding
// ingredient nutrient profiles as fixed-length vectors.
var AllNutrients = []Nutrient{
	NutrientCalories,
	NutrientProtein,
	NutrientCarbs,
	NutrientFat,
	NutrientFiber,
	NutrientSugar,
	NutrientSodium,
	NutrientIron,
	NutrientCalcium,
	NutrientVitaminA,
	NutrientVitaminC,
	NutrientVitaminD,
}

// NutrientVector maps nutrients to amounts. For ingredients the amounts are
// per 100g; aggregated values carry whatever unit the caller summed.
type NutrientVector map[Nutrient]float64

// Scale returns a copy of the vector with every amount multiplied by factor.
func (v NutrientVector) Scale(factor float64) NutrientVector {
	out := make(NutrientVector, len(v))
	for n, amount := range v {
		out[n] = amount * factor
	}
	return out
}

// Add accumulates other into v in place.
func (v NutrientVector) Add(other NutrientVector) {
	for n, amount := range other {
		v[n] += amount
	}
}

// CosineSimilarity computes cosine similarity between two nutrient profiles
// over the dimensions both vectors define. Dimensions only one side knows
// about are ignored so that sparse reference data does not drag unrelated
// ingredients apart. Returns 0 when there is no shared dimension or either
// shared profile is all zero.
func (v NutrientVector) CosineSimilarity(other NutrientVector) float64 {
	var dot, normA, normB float64
	shared := false
	for n, a := range v {
		b, ok := other[n]
		if !ok {
			continue
		}
		shared = true
		dot += a * b
		normA += a * a
		normB += b * b
	}
	if !shared || normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Floats64 encodes the vector as a fixed-length slice in AllNutrients order,
// suitable for storage as a pgvector embedding.
func (v NutrientVector) Floats64() []float64 {
	out := make([]float64, len(AllNutrients))
	for i, n := range AllNutrients {
		out[i] = v[n]
	}
	return out
}
