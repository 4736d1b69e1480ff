// Package shopping aggregates ingredient usage across every dish on a
// menu into a sectioned shopping list, with optional proportional
// scaling to a target cover count.
package shopping

import (
	"fmt"
	"sort"
	"strconv"

	"mise/internal/costing"
	"mise/internal/models"
	"mise/internal/repository"
	"mise/internal/units"
)

// Item is the aggregated usage of one ingredient across a menu.
type Item struct {
	Ingredient    string   `json:"ingredient"`
	TotalQuantity float64  `json:"total_quantity"`
	Unit          string   `json:"unit"`
	EstimatedCost *float64 `json:"estimated_cost"`
	UsedIn        []string `json:"used_in"`
}

// Group is one category section of the shopping list.
type Group struct {
	Category string `json:"category"`
	Items    []Item `json:"items"`
}

// List is a complete shopping list for a menu.
type List struct {
	Groups             []Group `json:"groups"`
	TotalEstimatedCost float64 `json:"total_estimated_cost"`
}

// Base-covers sources for a scaled list
const (
	BaseCoversExpected = "expected"
	BaseCoversComputed = "computed"
)

// ScaledList is a shopping list scaled to a target cover count.
type ScaledList struct {
	List
	Covers           int     `json:"covers"`
	BaseCovers       float64 `json:"base_covers"`
	BaseCoversSource string  `json:"base_covers_source"`
	ScaleFactor      float64 `json:"scale_factor"`
}

// Service builds shopping lists from persisted menus.
type Service struct {
	menus repository.MenuRepository
}

// NewService wires the aggregator to a menu store.
func NewService(menus repository.MenuRepository) *Service {
	return &Service{menus: menus}
}

// BuildList aggregates a menu's ingredient usage into a shopping list.
func (s *Service) BuildList(menuID string) (*List, error) {
	menu, err := s.menus.GetMenu(menuID)
	if err != nil {
		return nil, err
	}
	return Aggregate(menu), nil
}

// BuildScaledList builds the menu's shopping list and scales every
// quantity and cost to the target cover count.
func (s *Service) BuildScaledList(menuID string, covers int) (*ScaledList, error) {
	menu, err := s.menus.GetMenu(menuID)
	if err != nil {
		return nil, err
	}
	return Scale(menu, covers), nil
}

// aggregate carries per-ingredient running state before items are
// grouped and rounded.
type aggregate struct {
	ingredient models.Ingredient
	quantity   float64
	unit       string
	usedIn     []string
}

// Aggregate sums ingredient usage across the menu's dishes. Lines are
// merged by ingredient identity, never by display name; two records
// that happen to share a name stay separate.
func Aggregate(menu *models.Menu) *List {
	totals := make(map[string]*aggregate)
	var order []string

	for _, menuDish := range menu.Dishes {
		for _, line := range menuDish.Dish.Ingredients {
			adjusted := line.Quantity * menuDish.Servings
			usage := fmt.Sprintf("%s (%s%s)", menuDish.Dish.Name, formatQuantity(adjusted), line.Unit)

			agg, seen := totals[line.IngredientID]
			if !seen {
				agg = &aggregate{ingredient: line.Ingredient, unit: line.Unit}
				totals[line.IngredientID] = agg
				order = append(order, line.IngredientID)
			}

			if converted, ok := units.Convert(adjusted, line.Unit, agg.unit); ok {
				agg.quantity += converted
			} else {
				// Known inconsistency with dish costing, which refuses to
				// price unconvertible lines: the aggregator adds the raw
				// quantity as a best effort so the item still appears.
				agg.quantity += adjusted
			}
			agg.usedIn = append(agg.usedIn, usage)
		}
	}

	grouped := make(map[string][]Item)
	total := 0.0
	for _, id := range order {
		agg := totals[id]

		quantity, unit := units.Upscale(agg.quantity, agg.unit)
		quantity = costing.Round2(quantity)

		item := Item{
			Ingredient:    agg.ingredient.Name,
			TotalQuantity: quantity,
			Unit:          unit,
			UsedIn:        agg.usedIn,
		}
		if cost, ok := estimateCost(quantity, unit, agg.ingredient); ok {
			item.EstimatedCost = &cost
			total += cost
		}

		category := agg.ingredient.Category
		if category == "" {
			category = models.CategoryOther
		}
		grouped[category] = append(grouped[category], item)
	}

	list := &List{Groups: []Group{}, TotalEstimatedCost: costing.Round2(total)}

	categories := make([]string, 0, len(grouped))
	for category := range grouped {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		items := grouped[category]
		sort.Slice(items, func(i, j int) bool { return items[i].Ingredient < items[j].Ingredient })
		list.Groups = append(list.Groups, Group{Category: category, Items: items})
	}

	return list
}

// Scale rebuilds the menu's list with every quantity and cost
// multiplied up to the target cover count. The unit escalation rule
// runs again after scaling since scaling can push a gram or milliliter
// total back over the threshold.
func Scale(menu *models.Menu, covers int) *ScaledList {
	base, source := baseCovers(menu)

	factor := 1.0
	if base > 0 {
		factor = float64(covers) / base
	}

	list := Aggregate(menu)
	total := 0.0
	for g := range list.Groups {
		for i := range list.Groups[g].Items {
			item := &list.Groups[g].Items[i]

			quantity, unit := units.Upscale(item.TotalQuantity*factor, item.Unit)
			item.TotalQuantity = costing.Round2(quantity)
			item.Unit = unit

			if item.EstimatedCost != nil {
				cost := costing.Round2(*item.EstimatedCost * factor)
				item.EstimatedCost = &cost
				total += cost
			}
		}
	}
	list.TotalEstimatedCost = costing.Round2(total)

	return &ScaledList{
		List:             *list,
		Covers:           covers,
		BaseCovers:       base,
		BaseCoversSource: source,
		ScaleFactor:      costing.Round2(factor),
	}
}

// baseCovers derives the menu's baseline guest count: the planner's
// expected covers when set, otherwise the portions the menu yields as
// written (batches x batch yield, summed across dishes).
func baseCovers(menu *models.Menu) (float64, string) {
	if menu.ExpectedCovers != nil && *menu.ExpectedCovers > 0 {
		return float64(*menu.ExpectedCovers), BaseCoversExpected
	}
	total := 0.0
	for _, menuDish := range menu.Dishes {
		total += menuDish.Servings * menuDish.Dish.Yield()
	}
	return total, BaseCoversComputed
}

// estimateCost prices the final aggregated quantity in the
// ingredient's base unit. Unknown costs and unconvertible display
// units both leave the item uncosted.
func estimateCost(quantity float64, unit string, ingredient models.Ingredient) (float64, bool) {
	if ingredient.UnitCost == 0 {
		return 0, false
	}
	inBase, ok := units.Convert(quantity, unit, ingredient.BaseUnit)
	if !ok {
		return 0, false
	}
	return costing.Round2(inBase * ingredient.UnitCost), true
}

func formatQuantity(quantity float64) string {
	return strconv.FormatFloat(quantity, 'f', -1, 64)
}
