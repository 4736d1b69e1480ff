package models

import (
	"strings"
	"time"
)

// Ingredient represents a purchasable ingredient in the larder.
// UnitCost is denominated in currency per BaseUnit; a zero cost means
// the cost is unknown and costing degrades gracefully for that line.
type Ingredient struct {
	ID        string     `gorm:"primary_key;size:36" json:"id"`
	Name      string     `gorm:"unique_index;not null" json:"name"`
	UnitCost  float64    `json:"unit_cost"`
	BaseUnit  string     `json:"base_unit"`
	Category  string     `json:"category"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `sql:"index" json:"-"`
}

// TableName sets the table name for Ingredient
func (Ingredient) TableName() string {
	return "ingredients"
}

// Ingredient categories used to section shopping lists
const (
	CategoryProduce = "produce"
	CategoryDairy   = "dairy"
	CategoryProtein = "protein"
	CategoryBakery  = "bakery"
	CategoryPantry  = "pantry"
	CategorySpices  = "spices"
	CategoryOther   = "other"
)

var categoryHints = []struct {
	category string
	words    []string
}{
	{CategoryProtein, []string{"chicken", "beef", "pork", "lamb", "fish", "salmon", "prawn", "bacon", "guanciale", "duck"}},
	{CategoryDairy, []string{"milk", "cream", "butter", "cheese", "pecorino", "parmesan", "yoghurt", "yogurt", "egg"}},
	{CategoryProduce, []string{"onion", "garlic", "tomato", "lettuce", "carrot", "celery", "lemon", "herb", "parsley", "basil", "apple", "potato"}},
	{CategoryBakery, []string{"bread", "flour", "brioche", "baguette"}},
	{CategorySpices, []string{"salt", "pepper", "paprika", "cumin", "spice", "chilli", "chili"}},
	{CategoryPantry, []string{"oil", "vinegar", "sugar", "rice", "pasta", "stock", "wine"}},
}

// GuessCategory picks a shopping category from substrings of the
// ingredient name, falling back to "other".
func GuessCategory(name string) string {
	lower := strings.ToLower(name)
	for _, hint := range categoryHints {
		for _, word := range hint.words {
			if strings.Contains(lower, word) {
				return hint.category
			}
		}
	}
	return CategoryOther
}
