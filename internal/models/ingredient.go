package models

import (
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"

	"github.com/pageza/sproutspoon/backend/internal/engine"
)

// Ingredient is catalog reference data: a food item with its per-100g
// nutrient profile. Rows are treated as immutable once seeded; corrections
// are made by reseeding, so recipes never silently change nutrition.
type Ingredient struct {
	ID        uuid.UUID `gorm:"type:uuid;primarykey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name         string           `gorm:"size:100;uniqueIndex;not null" json:"name"`
	AllergenTags JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"allergen_tags"`

	// Per-100g nutrient columns.
	Calories    float64 `gorm:"type:float" json:"calories"`
	ProteinG    float64 `gorm:"type:float" json:"protein_g"`
	CarbsG      float64 `gorm:"type:float" json:"carbs_g"`
	FatG        float64 `gorm:"type:float" json:"fat_g"`
	FiberG      float64 `gorm:"type:float" json:"fiber_g"`
	SugarG      float64 `gorm:"type:float" json:"sugar_g"`
	SodiumMG    float64 `gorm:"type:float" json:"sodium_mg"`
	IronMG      float64 `gorm:"type:float" json:"iron_mg"`
	CalciumMG   float64 `gorm:"type:float" json:"calcium_mg"`
	VitaminAMcg float64 `gorm:"type:float" json:"vitamin_a_mcg"`
	VitaminCMG  float64 `gorm:"type:float" json:"vitamin_c_mg"`
	VitaminDMcg float64 `gorm:"type:float" json:"vitamin_d_mcg"`

	// Embedding mirrors the nutrient columns as a fixed-length vector for
	// similarity queries in SQL. Kept in sync by RefreshEmbedding.
	Embedding pgvector.Vector `gorm:"type:vector(12)" json:"-"`
}

// NutrientVector assembles the per-100g profile. Zero-valued columns are
// omitted so sparse reference data stays sparse for similarity math.
func (i *Ingredient) NutrientVector() engine.NutrientVector {
	v := make(engine.NutrientVector)
	set := func(n engine.Nutrient, amount float64) {
		if amount != 0 {
			v[n] = amount
		}
	}
	set(engine.NutrientCalories, i.Calories)
	set(engine.NutrientProtein, i.ProteinG)
	set(engine.NutrientCarbs, i.CarbsG)
	set(engine.NutrientFat, i.FatG)
	set(engine.NutrientFiber, i.FiberG)
	set(engine.NutrientSugar, i.SugarG)
	set(engine.NutrientSodium, i.SodiumMG)
	set(engine.NutrientIron, i.IronMG)
	set(engine.NutrientCalcium, i.CalciumMG)
	set(engine.NutrientVitaminA, i.VitaminAMcg)
	set(engine.NutrientVitaminC, i.VitaminCMG)
	set(engine.NutrientVitaminD, i.VitaminDMcg)
	return v
}

// RefreshEmbedding re-encodes the nutrient columns into the pgvector
// embedding. Call after setting or changing nutrient values.
func (i *Ingredient) RefreshEmbedding() {
	floats := i.NutrientVector().Floats64()
	vec := make([]float32, len(floats))
	for idx, f := range floats {
		vec[idx] = float32(f)
	}
	i.Embedding = pgvector.NewVector(vec)
}

// ToEngine converts the row into the engine's catalog snapshot type.
func (i *Ingredient) ToEngine() engine.Ingredient {
	return engine.Ingredient{
		ID:           i.ID,
		Name:         i.Name,
		Nutrients:    i.NutrientVector(),
		AllergenTags: i.AllergenTags,
	}
}
