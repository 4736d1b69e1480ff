package costing

import (
	"math"
	"testing"

	"mise/internal/models"
)

func line(name string, qty float64, unit string, unitCost float64, baseUnit string) models.DishIngredient {
	return models.DishIngredient{
		Quantity: qty,
		Unit:     unit,
		Ingredient: models.Ingredient{
			Name:     name,
			UnitCost: unitCost,
			BaseUnit: baseUnit,
		},
	}
}

func TestCalculateDishCostEmpty(t *testing.T) {
	result := CalculateDishCost(nil)

	if len(result.LineItems) != 0 {
		t.Errorf("expected no line items, got %d", len(result.LineItems))
	}
	if result.TotalCost != 0 {
		t.Errorf("TotalCost = %v, want 0", result.TotalCost)
	}
	if result.LineItems == nil {
		t.Error("LineItems should be an empty slice, not nil")
	}
}

func TestCalculateDishCost(t *testing.T) {
	lines := []models.DishIngredient{
		line("Beef Cheek", 200, "g", 0.015, "g"),
		line("Red Wine", 50, "ml", 0.005, "ml"),
	}

	result := CalculateDishCost(lines)

	if math.Abs(result.TotalCost-3.25) > 1e-9 {
		t.Errorf("TotalCost = %v, want 3.25", result.TotalCost)
	}
	if result.LineItems[0].Cost == nil || *result.LineItems[0].Cost != 3.00 {
		t.Errorf("first line cost = %v, want 3.00", result.LineItems[0].Cost)
	}
	if result.LineItems[1].Cost == nil || *result.LineItems[1].Cost != 0.25 {
		t.Errorf("second line cost = %v, want 0.25", result.LineItems[1].Cost)
	}
}

func TestCalculateDishCostConvertsUnits(t *testing.T) {
	// 0.5 kg priced per gram
	result := CalculateDishCost([]models.DishIngredient{
		line("Flour", 0.5, "kg", 0.002, "g"),
	})

	if math.Abs(result.TotalCost-1.00) > 1e-9 {
		t.Errorf("TotalCost = %v, want 1.00", result.TotalCost)
	}
}

func TestCalculateDishCostNoCostData(t *testing.T) {
	result := CalculateDishCost([]models.DishIngredient{
		line("Mystery Truffle", 9999, "g", 0, "g"),
		line("Butter", 100, "g", 0.01, "g"),
	})

	first := result.LineItems[0]
	if first.Cost != nil {
		t.Errorf("line without cost data should have nil cost, got %v", *first.Cost)
	}
	if first.Warning != "No cost data" {
		t.Errorf("Warning = %q, want %q", first.Warning, "No cost data")
	}
	if result.TotalCost != 1.00 {
		t.Errorf("TotalCost = %v, want 1.00 (uncosted line contributes nothing)", result.TotalCost)
	}
}

func TestCalculateDishCostIncompatibleUnits(t *testing.T) {
	result := CalculateDishCost([]models.DishIngredient{
		line("Parsley", 2, "bunch", 0.50, "g"),
	})

	item := result.LineItems[0]
	if item.Cost != nil {
		t.Errorf("unconvertible line should have nil cost, got %v", *item.Cost)
	}
	if item.Warning != "Cannot convert bunch to g" {
		t.Errorf("Warning = %q, want %q", item.Warning, "Cannot convert bunch to g")
	}
	if result.TotalCost != 0 {
		t.Errorf("TotalCost = %v, want 0", result.TotalCost)
	}
}

func TestTotalRoundsSumNotLines(t *testing.T) {
	// Each line is 0.015 * 333 = 4.995, rounding to 5.00 per line.
	// The correct total rounds the raw sum 9.99, not 5.00 + 5.00.
	result := CalculateDishCost([]models.DishIngredient{
		line("Salt", 333, "g", 0.015, "g"),
		line("Sugar", 333, "g", 0.015, "g"),
	})

	if result.TotalCost != 9.99 {
		t.Errorf("TotalCost = %v, want 9.99", result.TotalCost)
	}
}

func TestFoodCostPercent(t *testing.T) {
	if got := FoodCostPercent(3, 0); got != nil {
		t.Errorf("FoodCostPercent(3, 0) = %v, want nil", *got)
	}
	if got := FoodCostPercent(3, -5); got != nil {
		t.Errorf("FoodCostPercent(3, -5) = %v, want nil", *got)
	}
	got := FoodCostPercent(3, 10)
	if got == nil || *got != 30 {
		t.Errorf("FoodCostPercent(3, 10) = %v, want 30", got)
	}
}

func TestSuggestPrice(t *testing.T) {
	for _, cost := range []float64{0, -1} {
		if got := SuggestPrice(cost, 30); got != nil {
			t.Errorf("SuggestPrice(%v, 30) = %v, want nil", cost, *got)
		}
	}

	got := SuggestPrice(3, 30)
	if got == nil || math.Abs(*got-10.00) > 1e-9 {
		t.Errorf("SuggestPrice(3, 30) = %v, want 10.00", got)
	}

	// Zero target falls back to the default 30 percent.
	got = SuggestPrice(3, 0)
	if got == nil || math.Abs(*got-10.00) > 1e-9 {
		t.Errorf("SuggestPrice(3, 0) = %v, want 10.00", got)
	}
}

func TestPerPortion(t *testing.T) {
	if got := PerPortion(10, 4); got != 2.5 {
		t.Errorf("PerPortion(10, 4) = %v, want 2.5", got)
	}
	// Yields below one are floored at one.
	if got := PerPortion(10, 0); got != 10 {
		t.Errorf("PerPortion(10, 0) = %v, want 10", got)
	}
}

func TestRound2HalfAwayFromZero(t *testing.T) {
	cases := map[float64]float64{
		2.005:  2.01,
		-2.005: -2.01,
		2.004:  2.00,
		1.115:  1.12,
	}
	for in, want := range cases {
		if got := Round2(in); got != want {
			t.Errorf("Round2(%v) = %v, want %v", in, got, want)
		}
	}
}
