package engine

import (
	"sort"
	"time"
)

// NutrientStatus classifies intake against the age-indexed target.
type NutrientStatus string

const (
	StatusDeficient NutrientStatus = "deficient"
	StatusAdequate  NutrientStatus = "adequate"
	StatusExcessive NutrientStatus = "excessive"
)

// Classification thresholds as percentages of target. Fixed design
// constants, deliberately not caller-configurable.
const (
	deficientBelowPct = 70.0
	excessiveAbovePct = 150.0
)

// NutrientAdequacy is the per-nutrient line of a report.
type NutrientAdequacy struct {
	Total      float64        `json:"total"`
	Target     float64        `json:"target"`
	Percentage float64        `json:"percentage"`
	Status     NutrientStatus `json:"status"`
}

// NutrientReport is the rolling adequacy analysis over a time window.
// TotalMeals == 0 is the explicit "no data" state: Nutrients is empty and
// nothing was divided or fabricated.
type NutrientReport struct {
	WindowDays int                           `json:"window_days"`
	TotalMeals int                           `json:"total_meals"`
	Nutrients  map[Nutrient]NutrientAdequacy `json:"nutrients,omitempty"`
	Deficient  []Nutrient                    `json:"deficient,omitempty"`
	Excessive  []Nutrient                    `json:"excessive,omitempty"`
}

// NutrientAggregator sums accepted-meal nutrients over a window and
// reconciles them against the age-indexed daily targets.
type NutrientAggregator struct {
	targets TargetTable
}

// NewNutrientAggregator creates an aggregator backed by the target table.
func NewNutrientAggregator(targets TargetTable) *NutrientAggregator {
	return &NutrientAggregator{targets: targets}
}

// Analyze produces the adequacy report for the baby over the last
// windowDays. A missing age bracket in the target table is a
// ConfigurationError and aborts the request.
func (a *NutrientAggregator) Analyze(profile ProfileContext, catalog *Catalog, history FeedbackHistory, windowDays int, now time.Time) (NutrientReport, error) {
	if windowDays <= 0 {
		return NutrientReport{}, &ValidationError{Field: "window_days", Reason: "must be positive"}
	}

	daily, err := a.targets.DailyFor(profile.AgeMonths)
	if err != nil {
		return NutrientReport{}, err
	}

	report := NutrientReport{WindowDays: windowDays}

	from := now.AddDate(0, 0, -windowDays)
	accepted := history.AcceptedWithin(from, now)
	if len(accepted) == 0 {
		return report, nil
	}
	report.TotalMeals = len(accepted)

	totals := make(NutrientVector)
	for _, ev := range accepted {
		recipe, ok := catalog.RecipeByID(ev.RecipeID)
		if !ok {
			continue
		}
		totals.Add(catalog.RecipeNutrients(recipe))
	}

	report.Nutrients = make(map[Nutrient]NutrientAdequacy, len(AllNutrients))
	for _, nutrient := range AllNutrients {
		target := daily[nutrient] * float64(windowDays)
		if target <= 0 {
			continue
		}
		total := totals[nutrient]
		pct := total / target * 100.0
		status := StatusAdequate
		switch {
		case pct < deficientBelowPct:
			status = StatusDeficient
			report.Deficient = append(report.Deficient, nutrient)
		case pct > excessiveAbovePct:
			status = StatusExcessive
			report.Excessive = append(report.Excessive, nutrient)
		}
		report.Nutrients[nutrient] = NutrientAdequacy{
			Total:      total,
			Target:     target,
			Percentage: pct,
			Status:     status,
		}
	}
	sortNutrients(report.Deficient)
	sortNutrients(report.Excessive)
	return report, nil
}

func sortNutrients(list []Nutrient) {
	sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
}
