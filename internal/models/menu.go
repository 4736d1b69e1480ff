package models

import "time"

// Menu represents a service menu: an ordered set of dishes with the
// number of batches to prepare for each.
type Menu struct {
	ID             string     `gorm:"primary_key;size:36" json:"id"`
	Name           string     `gorm:"not null" json:"name"`
	SellPrice      *float64   `json:"sell_price"`
	ExpectedCovers *int       `json:"expected_covers"`
	Dishes         []MenuDish `gorm:"foreignkey:MenuID" json:"dishes"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `sql:"index" json:"-"`
}

// TableName sets the table name for Menu
func (Menu) TableName() string {
	return "menus"
}

// MenuDish links a dish onto a menu. Servings is the number of batches
// of the dish to make, not the number of portions.
type MenuDish struct {
	ID         string      `gorm:"primary_key;size:36" json:"id"`
	MenuID     string      `gorm:"size:36;index" json:"menu_id"`
	DishID     string      `gorm:"size:36;index" json:"dish_id"`
	Dish       Dish        `gorm:"foreignkey:DishID" json:"dish"`
	Servings   float64     `gorm:"default:1" json:"servings"`
	ActiveDays StringSlice `gorm:"type:text" json:"active_days"`
	SortOrder  int         `json:"sort_order"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// TableName sets the table name for MenuDish
func (MenuDish) TableName() string {
	return "menu_dishes"
}
