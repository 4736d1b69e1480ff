package models

import "time"

// Dish represents a recipe on the back-of-house menu along with its
// ordered ingredient lines and the chef's free-text prep notes.
type Dish struct {
	ID         string  `gorm:"primary_key;size:36" json:"id"`
	Name       string  `gorm:"not null" json:"name"`
	Category   string  `json:"category"`
	BatchYield float64 `gorm:"default:1" json:"batch_yield"`
	ChefsNotes string  `gorm:"type:text" json:"chefs_notes"`
	Ingredients []DishIngredient `gorm:"foreignkey:DishID" json:"ingredients"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   *time.Time       `sql:"index" json:"-"`
}

// TableName sets the table name for Dish
func (Dish) TableName() string {
	return "dishes"
}

// Yield returns the batch yield floored at one portion.
func (d *Dish) Yield() float64 {
	if d.BatchYield < 1 {
		return 1
	}
	return d.BatchYield
}

// DishIngredient is one ingredient line of a dish: a quantity in a
// free-text unit as entered, plus an optional prep note.
type DishIngredient struct {
	ID           string     `gorm:"primary_key;size:36" json:"id"`
	DishID       string     `gorm:"size:36;index" json:"dish_id"`
	IngredientID string     `gorm:"size:36;index" json:"ingredient_id"`
	Ingredient   Ingredient `gorm:"foreignkey:IngredientID" json:"ingredient"`
	Quantity     float64    `json:"quantity"`
	Unit         string     `json:"unit"`
	PrepNote     string     `json:"prep_note"`
	SortOrder    int        `json:"sort_order"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName sets the table name for DishIngredient
func (DishIngredient) TableName() string {
	return "dish_ingredients"
}
