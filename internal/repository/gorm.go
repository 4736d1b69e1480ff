package repository

import (
	"strings"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"

	"mise/internal/models"
)

func bySortOrder(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order")
}

func notFound(err error) error {
	if gorm.IsRecordNotFoundError(err) {
		return ErrNotFound
	}
	return err
}

// GormIngredientRepository is the database-backed larder.
type GormIngredientRepository struct {
	db *gorm.DB
}

// NewGormIngredientRepository creates a gorm-backed ingredient repository
func NewGormIngredientRepository(db *gorm.DB) *GormIngredientRepository {
	return &GormIngredientRepository{db: db}
}

func (r *GormIngredientRepository) Upsert(ingredient *models.Ingredient) error {
	var existing models.Ingredient
	err := r.db.Where("LOWER(name) = ?", strings.ToLower(ingredient.Name)).First(&existing).Error
	if err == nil {
		// Only overwrite cost data that was actually supplied, so
		// re-saving a dish without costs does not wipe the larder.
		if ingredient.UnitCost != 0 {
			existing.UnitCost = ingredient.UnitCost
		}
		if ingredient.BaseUnit != "" {
			existing.BaseUnit = ingredient.BaseUnit
		}
		if ingredient.Category != "" {
			existing.Category = ingredient.Category
		}
		*ingredient = existing
		return r.db.Save(&existing).Error
	}
	if !gorm.IsRecordNotFoundError(err) {
		return err
	}

	if ingredient.ID == "" {
		ingredient.ID = uuid.New().String()
	}
	if ingredient.Category == "" {
		ingredient.Category = models.GuessCategory(ingredient.Name)
	}
	return r.db.Create(ingredient).Error
}

func (r *GormIngredientRepository) FindByName(name string) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := r.db.Where("LOWER(name) = ?", strings.ToLower(name)).First(&ingredient).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &ingredient, nil
}

func (r *GormIngredientRepository) List() ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := r.db.Order("name").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// GormDishRepository is the database-backed dish store.
type GormDishRepository struct {
	db *gorm.DB
}

// NewGormDishRepository creates a gorm-backed dish repository
func NewGormDishRepository(db *gorm.DB) *GormDishRepository {
	return &GormDishRepository{db: db}
}

func (r *GormDishRepository) Save(dish *models.Dish) error {
	if dish.ID == "" {
		dish.ID = uuid.New().String()
	}
	if dish.BatchYield == 0 {
		dish.BatchYield = 1
	}
	for i := range dish.Ingredients {
		if dish.Ingredients[i].ID == "" {
			dish.Ingredients[i].ID = uuid.New().String()
		}
		dish.Ingredients[i].DishID = dish.ID
		dish.Ingredients[i].SortOrder = i
	}

	tx := r.db.Begin()
	if err := tx.Error; err != nil {
		return err
	}
	// Replace the line set wholesale; lines are owned by the dish.
	if err := tx.Where("dish_id = ?", dish.ID).Delete(&models.DishIngredient{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Save(dish).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

func (r *GormDishRepository) GetDish(id string) (*models.Dish, error) {
	var dish models.Dish
	err := r.db.
		Preload("Ingredients", bySortOrder).
		Preload("Ingredients.Ingredient").
		Where("id = ?", id).
		First(&dish).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &dish, nil
}

func (r *GormDishRepository) FindByName(name string) (*models.Dish, error) {
	var dish models.Dish
	err := r.db.Where("name = ?", name).First(&dish).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &dish, nil
}

func (r *GormDishRepository) List() ([]models.Dish, error) {
	var dishes []models.Dish
	if err := r.db.Order("name").Find(&dishes).Error; err != nil {
		return nil, err
	}
	return dishes, nil
}

// GormMenuRepository is the database-backed menu store.
type GormMenuRepository struct {
	db *gorm.DB
}

// NewGormMenuRepository creates a gorm-backed menu repository
func NewGormMenuRepository(db *gorm.DB) *GormMenuRepository {
	return &GormMenuRepository{db: db}
}

func (r *GormMenuRepository) Save(menu *models.Menu) error {
	if menu.ID == "" {
		menu.ID = uuid.New().String()
	}
	for i := range menu.Dishes {
		if menu.Dishes[i].ID == "" {
			menu.Dishes[i].ID = uuid.New().String()
		}
		menu.Dishes[i].MenuID = menu.ID
		menu.Dishes[i].SortOrder = i
		if menu.Dishes[i].Servings == 0 {
			menu.Dishes[i].Servings = 1
		}
	}

	tx := r.db.Begin()
	if err := tx.Error; err != nil {
		return err
	}
	if err := tx.Where("menu_id = ?", menu.ID).Delete(&models.MenuDish{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Save(menu).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

func (r *GormMenuRepository) GetMenu(id string) (*models.Menu, error) {
	var menu models.Menu
	err := r.db.
		Preload("Dishes", bySortOrder).
		Preload("Dishes.Dish").
		Preload("Dishes.Dish.Ingredients", bySortOrder).
		Preload("Dishes.Dish.Ingredients.Ingredient").
		Where("id = ?", id).
		First(&menu).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &menu, nil
}

// GormTaskRepository is the database-backed task store.
type GormTaskRepository struct {
	db *gorm.DB
}

// NewGormTaskRepository creates a gorm-backed task repository
func NewGormTaskRepository(db *gorm.DB) *GormTaskRepository {
	return &GormTaskRepository{db: db}
}

func (r *GormTaskRepository) ReplaceAutoTasks(menuID string, rows []models.Task) error {
	tx := r.db.Begin()
	if err := tx.Error; err != nil {
		return err
	}
	err := tx.Where("menu_id = ? AND source = ?", menuID, models.TaskSourceAuto).
		Delete(&models.Task{}).Error
	if err != nil {
		tx.Rollback()
		return err
	}
	for i := range rows {
		if rows[i].ID == "" {
			rows[i].ID = uuid.New().String()
		}
		if err := tx.Create(&rows[i]).Error; err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit().Error
}

func (r *GormTaskRepository) TasksForMenu(menuID string) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.Where("menu_id = ?", menuID).Order("sort_order").Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *GormTaskRepository) GetTask(id string) (*models.Task, error) {
	var task models.Task
	if err := r.db.Where("id = ?", id).First(&task).Error; err != nil {
		return nil, notFound(err)
	}
	return &task, nil
}

func (r *GormTaskRepository) UpdateContent(id string, patch models.TaskPatch) (*models.Task, error) {
	task, err := r.GetTask(id)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return task, nil
	}

	patch.Apply(task)
	if task.Source == models.TaskSourceAuto {
		task.Source = models.TaskSourceManual
	}
	if err := r.db.Save(task).Error; err != nil {
		return nil, err
	}
	return task, nil
}
