// Package costing rolls ingredient prices up into per-dish and
// per-portion costs. Missing cost data and unconvertible units degrade
// to per-line warnings instead of failing the whole dish.
package costing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"mise/internal/models"
	"mise/internal/units"
)

// DefaultTargetPercent is the food-cost percentage used for price
// suggestions when the caller does not supply one.
const DefaultTargetPercent = 30

// LineResult is the costing outcome for a single ingredient line.
// Cost is nil when the line could not be costed; Warning says why.
type LineResult struct {
	Ingredient string   `json:"ingredient"`
	Quantity   float64  `json:"quantity"`
	Unit       string   `json:"unit"`
	Cost       *float64 `json:"cost"`
	Warning    string   `json:"warning,omitempty"`
}

// DishCost is the full costing result for one dish.
type DishCost struct {
	LineItems []LineResult `json:"line_items"`
	TotalCost float64      `json:"total_cost"`
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(x float64) float64 {
	out, _ := decimal.NewFromFloat(x).Round(2).Float64()
	return out
}

// CalculateDishCost prices every ingredient line of a dish and sums
// the costable ones. The total rounds the raw sum, not the sum of
// pre-rounded lines, so per-line rounding error does not compound.
func CalculateDishCost(lines []models.DishIngredient) DishCost {
	result := DishCost{LineItems: []LineResult{}}

	total := 0.0
	for _, line := range lines {
		item := LineResult{
			Ingredient: line.Ingredient.Name,
			Quantity:   line.Quantity,
			Unit:       line.Unit,
		}

		if line.Ingredient.UnitCost == 0 {
			item.Warning = "No cost data"
			result.LineItems = append(result.LineItems, item)
			continue
		}

		converted, ok := units.Convert(line.Quantity, line.Unit, line.Ingredient.BaseUnit)
		if !ok {
			item.Warning = fmt.Sprintf("Cannot convert %s to %s", line.Unit, line.Ingredient.BaseUnit)
			result.LineItems = append(result.LineItems, item)
			continue
		}

		lineCost := converted * line.Ingredient.UnitCost
		total += lineCost
		rounded := Round2(lineCost)
		item.Cost = &rounded
		result.LineItems = append(result.LineItems, item)
	}

	result.TotalCost = Round2(total)
	return result
}

// FoodCostPercent returns the dish cost as a percentage of the selling
// price, or nil when there is no usable selling price.
func FoodCostPercent(cost, sellingPrice float64) *float64 {
	if sellingPrice <= 0 {
		return nil
	}
	percent := Round2(cost / sellingPrice * 100)
	return &percent
}

// SuggestPrice proposes a selling price that would put the dish at the
// target food-cost percentage. Returns nil when the cost is unknown or
// non-positive. A target of zero falls back to DefaultTargetPercent.
func SuggestPrice(cost, targetPercent float64) *float64 {
	if cost <= 0 {
		return nil
	}
	if targetPercent <= 0 {
		targetPercent = DefaultTargetPercent
	}
	price := Round2(cost / (targetPercent / 100))
	return &price
}

// PerPortion divides a batch cost by the dish's batch yield. Yields
// below one are treated as one.
func PerPortion(batchCost, batchYield float64) float64 {
	if batchYield < 1 {
		batchYield = 1
	}
	return Round2(batchCost / batchYield)
}
