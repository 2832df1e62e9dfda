package engine

// AgeBracket is an inclusive month range used to key the static nutrition
// reference tables.
type AgeBracket struct {
	MinMonths int `json:"min_months"`
	MaxMonths int `json:"max_months"`
}

// Covers reports whether ageMonths falls inside the bracket.
func (b AgeBracket) Covers(ageMonths int) bool {
	return ageMonths >= b.MinMonths && ageMonths <= b.MaxMonths
}

// NutrientTarget holds the daily reference intake for one age bracket.
type NutrientTarget struct {
	Bracket AgeBracket     `json:"bracket"`
	Daily   NutrientVector `json:"daily"`
}

// TargetTable is the age-indexed daily nutrient reference table. Externally
// loaded static configuration; the engine treats a missing bracket as a
// ConfigurationError.
type TargetTable []NutrientTarget

// DailyFor returns the daily targets covering ageMonths.
func (t TargetTable) DailyFor(ageMonths int) (NutrientVector, error) {
	for _, entry := range t {
		if entry.Bracket.Covers(ageMonths) {
			return entry.Daily, nil
		}
	}
	return nil, &ConfigurationError{Table: "nutrient target", AgeMonths: ageMonths}
}

// CeilingRule caps per-serving sugar and sodium for one age bracket.
type CeilingRule struct {
	Bracket     AgeBracket `json:"bracket"`
	MaxSugarG   float64    `json:"max_sugar_g"`
	MaxSodiumMG float64    `json:"max_sodium_mg"`
}

// CeilingTable is the age-indexed sugar/sodium ceiling table used by the
// safety filter.
type CeilingTable []CeilingRule

// For returns the ceiling rule covering ageMonths.
func (t CeilingTable) For(ageMonths int) (CeilingRule, error) {
	for _, rule := range t {
		if rule.Bracket.Covers(ageMonths) {
			return rule, nil
		}
	}
	return CeilingRule{}, &ConfigurationError{Table: "serving ceiling", AgeMonths: ageMonths}
}
