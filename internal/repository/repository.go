// Package repository provides the persistence layer behind the
// planning services: one interface per aggregate, with a gorm-backed
// implementation for the server and an in-memory one for tests.
package repository

import (
	"errors"

	"mise/internal/models"
)

// ErrNotFound is returned when a looked-up record does not exist. It
// is the only failure the planning core propagates; the HTTP layer
// turns it into a 404.
var ErrNotFound = errors.New("record not found")

// IngredientRepository manages the larder.
type IngredientRepository interface {
	// Upsert creates the ingredient or, when one with the same name
	// already exists (case-insensitive), updates its cost data.
	Upsert(ingredient *models.Ingredient) error
	FindByName(name string) (*models.Ingredient, error)
	List() ([]models.Ingredient, error)
}

// DishRepository manages dishes and their ingredient lines.
type DishRepository interface {
	Save(dish *models.Dish) error
	// GetDish loads a dish with its ingredient lines in sort order and
	// each line's ingredient record.
	GetDish(id string) (*models.Dish, error)
	// FindByName matches a non-deleted dish by exact name.
	FindByName(name string) (*models.Dish, error)
	List() ([]models.Dish, error)
}

// MenuRepository manages menus and their dish entries.
type MenuRepository interface {
	Save(menu *models.Menu) error
	// GetMenu loads a menu with its dish entries in sort order, each
	// dish's ingredient lines, and each line's ingredient record.
	GetMenu(id string) (*models.Menu, error)
}

// TaskRepository manages persisted task rows.
type TaskRepository interface {
	// ReplaceAutoTasks atomically deletes the menu's auto-generated
	// rows and inserts the given batch. Manual rows are untouched, and
	// a failed insert must leave the prior rows intact.
	ReplaceAutoTasks(menuID string, rows []models.Task) error
	TasksForMenu(menuID string) ([]models.Task, error)
	GetTask(id string) (*models.Task, error)
	// UpdateContent applies a content patch. Patching an auto row
	// promotes it to manual.
	UpdateContent(id string, patch models.TaskPatch) (*models.Task, error)
}
