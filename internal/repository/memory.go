package repository

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"mise/internal/models"
)

// InMemoryIngredientRepository keeps ingredients in a map, for tests.
type InMemoryIngredientRepository struct {
	mu          sync.RWMutex
	ingredients map[string]*models.Ingredient
}

// NewInMemoryIngredientRepository creates an empty in-memory larder
func NewInMemoryIngredientRepository() *InMemoryIngredientRepository {
	return &InMemoryIngredientRepository{ingredients: make(map[string]*models.Ingredient)}
}

func (r *InMemoryIngredientRepository) Upsert(ingredient *models.Ingredient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.ingredients {
		if strings.EqualFold(existing.Name, ingredient.Name) {
			if ingredient.UnitCost != 0 {
				existing.UnitCost = ingredient.UnitCost
			}
			if ingredient.BaseUnit != "" {
				existing.BaseUnit = ingredient.BaseUnit
			}
			if ingredient.Category != "" {
				existing.Category = ingredient.Category
			}
			*ingredient = *existing
			return nil
		}
	}

	if ingredient.ID == "" {
		ingredient.ID = uuid.New().String()
	}
	if ingredient.Category == "" {
		ingredient.Category = models.GuessCategory(ingredient.Name)
	}
	stored := *ingredient
	r.ingredients[ingredient.ID] = &stored
	return nil
}

func (r *InMemoryIngredientRepository) FindByName(name string) (*models.Ingredient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, ingredient := range r.ingredients {
		if strings.EqualFold(ingredient.Name, name) {
			found := *ingredient
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryIngredientRepository) List() ([]models.Ingredient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Ingredient, 0, len(r.ingredients))
	for _, ingredient := range r.ingredients {
		out = append(out, *ingredient)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// InMemoryDishRepository keeps dishes in a map, for tests.
type InMemoryDishRepository struct {
	mu     sync.RWMutex
	dishes map[string]*models.Dish
}

// NewInMemoryDishRepository creates an empty in-memory dish store
func NewInMemoryDishRepository() *InMemoryDishRepository {
	return &InMemoryDishRepository{dishes: make(map[string]*models.Dish)}
}

func (r *InMemoryDishRepository) Save(dish *models.Dish) error {
	r.mu.Lock()
	defer r.mu.Unlock()

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
	stored := *dish
	r.dishes[dish.ID] = &stored
	return nil
}

func (r *InMemoryDishRepository) GetDish(id string) (*models.Dish, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dish, ok := r.dishes[id]
	if !ok || dish.DeletedAt != nil {
		return nil, ErrNotFound
	}
	found := *dish
	return &found, nil
}

func (r *InMemoryDishRepository) FindByName(name string) (*models.Dish, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, dish := range r.dishes {
		if dish.Name == name && dish.DeletedAt == nil {
			found := *dish
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryDishRepository) List() ([]models.Dish, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Dish, 0, len(r.dishes))
	for _, dish := range r.dishes {
		if dish.DeletedAt == nil {
			out = append(out, *dish)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// InMemoryMenuRepository keeps menus in a map, for tests.
type InMemoryMenuRepository struct {
	mu    sync.RWMutex
	menus map[string]*models.Menu
}

// NewInMemoryMenuRepository creates an empty in-memory menu store
func NewInMemoryMenuRepository() *InMemoryMenuRepository {
	return &InMemoryMenuRepository{menus: make(map[string]*models.Menu)}
}

func (r *InMemoryMenuRepository) Save(menu *models.Menu) error {
	r.mu.Lock()
	defer r.mu.Unlock()

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
	stored := *menu
	r.menus[menu.ID] = &stored
	return nil
}

func (r *InMemoryMenuRepository) GetMenu(id string) (*models.Menu, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	menu, ok := r.menus[id]
	if !ok || menu.DeletedAt != nil {
		return nil, ErrNotFound
	}
	found := *menu
	return &found, nil
}

// InMemoryTaskRepository keeps task rows in a slice, for tests.
type InMemoryTaskRepository struct {
	mu    sync.Mutex
	tasks []*models.Task
}

// NewInMemoryTaskRepository creates an empty in-memory task store
func NewInMemoryTaskRepository() *InMemoryTaskRepository {
	return &InMemoryTaskRepository{}
}

func (r *InMemoryTaskRepository) ReplaceAutoTasks(menuID string, rows []models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.tasks[:0]
	for _, task := range r.tasks {
		auto := task.Source == models.TaskSourceAuto
		forMenu := task.MenuID != nil && *task.MenuID == menuID
		if auto && forMenu {
			continue
		}
		kept = append(kept, task)
	}
	r.tasks = kept

	for i := range rows {
		if rows[i].ID == "" {
			rows[i].ID = uuid.New().String()
		}
		stored := rows[i]
		r.tasks = append(r.tasks, &stored)
	}
	return nil
}

func (r *InMemoryTaskRepository) TasksForMenu(menuID string) ([]models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Task
	for _, task := range r.tasks {
		if task.MenuID != nil && *task.MenuID == menuID {
			out = append(out, *task)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (r *InMemoryTaskRepository) GetTask(id string) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, task := range r.tasks {
		if task.ID == id {
			found := *task
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryTaskRepository) UpdateContent(id string, patch models.TaskPatch) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, task := range r.tasks {
		if task.ID != id {
			continue
		}
		if !patch.Empty() {
			patch.Apply(task)
			if task.Source == models.TaskSourceAuto {
				task.Source = models.TaskSourceManual
			}
		}
		found := *task
		return &found, nil
	}
	return nil, ErrNotFound
}
