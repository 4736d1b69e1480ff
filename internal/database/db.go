package database

import (
	"fmt"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres" // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3"              // SQLite driver

	"mise/internal/models"
)

// Open connects to the configured database. Supported dialects are
// "sqlite3" and "postgres".
func Open(dialect, dsn string) (*gorm.DB, error) {
	switch dialect {
	case "sqlite3", "postgres":
	default:
		return nil, fmt.Errorf("unsupported database dialect %q", dialect)
	}

	db, err := gorm.Open(dialect, dsn)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates and updates all planner tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Ingredient{},
		&models.Dish{},
		&models.DishIngredient{},
		&models.Menu{},
		&models.MenuDish{},
		&models.Task{},
	).Error
}
