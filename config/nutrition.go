package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pageza/sproutspoon/backend/internal/engine"
)

// NutritionTables bundles the two static reference tables the engine needs:
// age-indexed daily nutrient targets and per-serving sugar/sodium ceilings.
type NutritionTables struct {
	Targets  engine.TargetTable  `json:"targets"`
	Ceilings engine.CeilingTable `json:"ceilings"`
}

// DefaultNutritionTables returns the compiled-in reference tables, derived
// from WHO/AAP guidance for infants and toddlers. Deployments can override
// them with a JSON file via NUTRITION_TABLES_FILE.
func DefaultNutritionTables() NutritionTables {
	return NutritionTables{
		Targets: engine.TargetTable{
			{
				Bracket: engine.AgeBracket{MinMonths: 6, MaxMonths: 11},
				Daily: engine.NutrientVector{
					engine.NutrientCalories: 750,
					engine.NutrientProtein:  11,
					engine.NutrientFiber:    5,
					engine.NutrientIron:     11,
					engine.NutrientCalcium:  260,
					engine.NutrientVitaminA: 500,
					engine.NutrientVitaminC: 50,
					engine.NutrientVitaminD: 10,
				},
			},
			{
				Bracket: engine.AgeBracket{MinMonths: 12, MaxMonths: 23},
				Daily: engine.NutrientVector{
					engine.NutrientCalories: 900,
					engine.NutrientProtein:  13,
					engine.NutrientFiber:    19,
					engine.NutrientIron:     7,
					engine.NutrientCalcium:  700,
					engine.NutrientVitaminA: 300,
					engine.NutrientVitaminC: 15,
					engine.NutrientVitaminD: 15,
				},
			},
			{
				Bracket: engine.AgeBracket{MinMonths: 24, MaxMonths: 47},
				Daily: engine.NutrientVector{
					engine.NutrientCalories: 1100,
					engine.NutrientProtein:  13,
					engine.NutrientFiber:    19,
					engine.NutrientIron:     7,
					engine.NutrientCalcium:  700,
					engine.NutrientVitaminA: 300,
					engine.NutrientVitaminC: 15,
					engine.NutrientVitaminD: 15,
				},
			},
		},
		Ceilings: engine.CeilingTable{
			// No added salt or sugar in the first year; the allowance here
			// covers naturally occurring sugars in fruit.
			{Bracket: engine.AgeBracket{MinMonths: 6, MaxMonths: 11}, MaxSugarG: 12, MaxSodiumMG: 370},
			{Bracket: engine.AgeBracket{MinMonths: 12, MaxMonths: 23}, MaxSugarG: 18, MaxSodiumMG: 800},
			{Bracket: engine.AgeBracket{MinMonths: 24, MaxMonths: 47}, MaxSugarG: 25, MaxSodiumMG: 1200},
		},
	}
}

// LoadNutritionTables returns the reference tables, reading the override
// file when path is non-empty.
func LoadNutritionTables(path string) (NutritionTables, error) {
	if path == "" {
		return DefaultNutritionTables(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return NutritionTables{}, fmt.Errorf("failed to read nutrition tables %s: %w", path, err)
	}
	var tables NutritionTables
	if err := json.Unmarshal(data, &tables); err != nil {
		return NutritionTables{}, fmt.Errorf("failed to parse nutrition tables %s: %w", path, err)
	}
	if len(tables.Targets) == 0 || len(tables.Ceilings) == 0 {
		return NutritionTables{}, fmt.Errorf("nutrition tables %s must define both targets and ceilings", path)
	}
	return tables, nil
}
