// Package tasks bridges the shopping aggregator and prep extractor
// into persisted task rows, replacing a menu's auto-generated rows
// while leaving manually edited ones alone.
package tasks

import (
	"strings"
	"sync"

	"mise/internal/models"
	"mise/internal/prep"
	"mise/internal/repository"
	"mise/internal/shopping"
)

// PriorityMedium is the priority every generated row starts with.
const PriorityMedium = "medium"

// Summary reports what a generation run wrote.
type Summary struct {
	Total         int `json:"total"`
	ShoppingCount int `json:"shopping_count"`
	PrepCount     int `json:"prep_count"`
}

// Generator derives task rows for a menu and persists them.
type Generator struct {
	menus  repository.MenuRepository
	dishes repository.DishRepository
	tasks  repository.TaskRepository

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewGenerator wires the bridge to its stores.
func NewGenerator(menus repository.MenuRepository, dishes repository.DishRepository, tasks repository.TaskRepository) *Generator {
	return &Generator{
		menus:  menus,
		dishes: dishes,
		tasks:  tasks,
		locks:  make(map[string]*sync.Mutex),
	}
}

// menuLock serializes regeneration per menu; different menus proceed
// in parallel.
func (g *Generator) menuLock(menuID string) *sync.Mutex {
	g.mu.Lock()
	defer g.mu.Unlock()

	lock, ok := g.locks[menuID]
	if !ok {
		lock = &sync.Mutex{}
		g.locks[menuID] = lock
	}
	return lock
}

// Generate rebuilds the menu's auto tasks from its shopping list and
// prep timeline: one shopping row per aggregated ingredient followed
// by one prep row per extracted task, sort_order matching position.
func (g *Generator) Generate(menuID string) (*Summary, error) {
	lock := g.menuLock(menuID)
	lock.Lock()
	defer lock.Unlock()

	menu, err := g.menus.GetMenu(menuID)
	if err != nil {
		return nil, err
	}

	list := shopping.Aggregate(menu)
	timeline := prep.Extract(menu)

	rows := g.buildRows(menu, list, timeline)
	if err := g.tasks.ReplaceAutoTasks(menu.ID, rows); err != nil {
		return nil, err
	}

	summary := &Summary{Total: len(rows)}
	for _, row := range rows {
		switch row.Type {
		case models.TaskTypeShopping:
			summary.ShoppingCount++
		case models.TaskTypePrep:
			summary.PrepCount++
		}
	}
	return summary, nil
}

func (g *Generator) buildRows(menu *models.Menu, list *shopping.List, timeline *prep.Result) []models.Task {
	var rows []models.Task

	for _, group := range list.Groups {
		for _, item := range group.Items {
			quantity := item.TotalQuantity
			rows = append(rows, models.Task{
				MenuID:      &menu.ID,
				Type:        models.TaskTypeShopping,
				Title:       item.Ingredient,
				Description: strings.Join(item.UsedIn, ", "),
				Category:    group.Category,
				Quantity:    &quantity,
				Unit:        item.Unit,
				Priority:    PriorityMedium,
				Source:      models.TaskSourceAuto,
			})
		}
	}

	for _, group := range timeline.TaskGroups {
		for _, task := range group.Tasks {
			rows = append(rows, models.Task{
				MenuID:       &menu.ID,
				SourceDishID: g.resolveDish(task.Dish),
				Type:         models.TaskTypePrep,
				Title:        task.Task,
				Description:  task.Dish,
				TimingBucket: string(task.Timing),
				Priority:     PriorityMedium,
				Source:       models.TaskSourceAuto,
			})
		}
	}

	for i := range rows {
		rows[i].SortOrder = i
	}
	return rows
}

// resolveDish finds the non-deleted dish a prep task came from by
// exact name match. Best effort: a renamed or removed dish leaves the
// row without a source reference.
func (g *Generator) resolveDish(name string) *string {
	dish, err := g.dishes.FindByName(name)
	if err != nil {
		return nil
	}
	return &dish.ID
}
