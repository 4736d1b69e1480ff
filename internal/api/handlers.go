package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mise/internal/costing"
	"mise/internal/models"
	"mise/internal/monitoring"
	"mise/internal/repository"
)

func respondNotFound(c *gin.Context, what string) {
	c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
}

func respondError(c *gin.Context, err error, what string) {
	if errors.Is(err, repository.ErrNotFound) {
		respondNotFound(c, what)
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// Larder handlers

type ingredientRequest struct {
	Name     string  `json:"name" binding:"required"`
	UnitCost float64 `json:"unit_cost"`
	BaseUnit string  `json:"base_unit"`
	Category string  `json:"category"`
}

func (p *PlanningAPI) CreateIngredient(c *gin.Context) {
	var req ingredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ingredient := models.Ingredient{
		Name:     req.Name,
		UnitCost: req.UnitCost,
		BaseUnit: req.BaseUnit,
		Category: req.Category,
	}
	if err := p.Ingredients.Upsert(&ingredient); err != nil {
		respondError(c, err, "Ingredient")
		return
	}

	c.JSON(http.StatusCreated, ingredient)
}

func (p *PlanningAPI) ListIngredients(c *gin.Context) {
	ingredients, err := p.Ingredients.List()
	if err != nil {
		respondError(c, err, "Ingredient")
		return
	}
	c.JSON(http.StatusOK, ingredients)
}

// Dish handlers

type dishLineRequest struct {
	Ingredient string  `json:"ingredient" binding:"required"`
	Quantity   float64 `json:"quantity"`
	Unit       string  `json:"unit"`
	PrepNote   string  `json:"prep_note"`
	UnitCost   float64 `json:"unit_cost"`
	BaseUnit   string  `json:"base_unit"`
	Category   string  `json:"category"`
}

type dishRequest struct {
	Name        string            `json:"name" binding:"required"`
	Category    string            `json:"category"`
	BatchYield  float64           `json:"batch_yield"`
	ChefsNotes  string            `json:"chefs_notes"`
	Ingredients []dishLineRequest `json:"ingredients"`
}

func (p *PlanningAPI) CreateDish(c *gin.Context) {
	var req dishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dish := models.Dish{
		Name:       req.Name,
		Category:   req.Category,
		BatchYield: req.BatchYield,
		ChefsNotes: req.ChefsNotes,
	}

	for _, line := range req.Ingredients {
		ingredient := models.Ingredient{
			Name:     line.Ingredient,
			UnitCost: line.UnitCost,
			BaseUnit: line.BaseUnit,
			Category: line.Category,
		}
		if err := p.Ingredients.Upsert(&ingredient); err != nil {
			respondError(c, err, "Ingredient")
			return
		}
		dish.Ingredients = append(dish.Ingredients, models.DishIngredient{
			IngredientID: ingredient.ID,
			Ingredient:   ingredient,
			Quantity:     line.Quantity,
			Unit:         line.Unit,
			PrepNote:     line.PrepNote,
		})
	}

	if err := p.Dishes.Save(&dish); err != nil {
		respondError(c, err, "Dish")
		return
	}
	c.JSON(http.StatusCreated, dish)
}

func (p *PlanningAPI) ListDishes(c *gin.Context) {
	dishes, err := p.Dishes.List()
	if err != nil {
		respondError(c, err, "Dish")
		return
	}
	c.JSON(http.StatusOK, dishes)
}

func (p *PlanningAPI) GetDish(c *gin.Context) {
	dish, err := p.Dishes.GetDish(c.Param("id"))
	if err != nil {
		respondError(c, err, "Dish")
		return
	}
	c.JSON(http.StatusOK, dish)
}

func (p *PlanningAPI) GetDishCost(c *gin.Context) {
	dish, err := p.Dishes.GetDish(c.Param("id"))
	if err != nil {
		respondError(c, err, "Dish")
		return
	}

	cost := costing.CalculateDishCost(dish.Ingredients)
	perPortion := costing.PerPortion(cost.TotalCost, dish.BatchYield)

	c.JSON(http.StatusOK, gin.H{
		"dish":             dish.Name,
		"line_items":       cost.LineItems,
		"total_cost":       cost.TotalCost,
		"batch_yield":      dish.Yield(),
		"cost_per_portion": perPortion,
		"suggested_price":  costing.SuggestPrice(perPortion, 0),
	})
}

// Menu handlers

type menuDishRequest struct {
	DishID     string   `json:"dish_id" binding:"required"`
	Servings   float64  `json:"servings"`
	ActiveDays []string `json:"active_days"`
}

type menuRequest struct {
	Name           string            `json:"name" binding:"required"`
	SellPrice      *float64          `json:"sell_price"`
	ExpectedCovers *int              `json:"expected_covers"`
	Dishes         []menuDishRequest `json:"dishes"`
}

func (p *PlanningAPI) CreateMenu(c *gin.Context) {
	var req menuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	menu := models.Menu{
		Name:           req.Name,
		SellPrice:      req.SellPrice,
		ExpectedCovers: req.ExpectedCovers,
	}
	for _, entry := range req.Dishes {
		dish, err := p.Dishes.GetDish(entry.DishID)
		if err != nil {
			respondError(c, err, "Dish")
			return
		}
		menu.Dishes = append(menu.Dishes, models.MenuDish{
			DishID:     dish.ID,
			Dish:       *dish,
			Servings:   entry.Servings,
			ActiveDays: entry.ActiveDays,
		})
	}

	if err := p.Menus.Save(&menu); err != nil {
		respondError(c, err, "Menu")
		return
	}
	c.JSON(http.StatusCreated, menu)
}

func (p *PlanningAPI) GetMenu(c *gin.Context) {
	menu, err := p.Menus.GetMenu(c.Param("id"))
	if err != nil {
		respondError(c, err, "Menu")
		return
	}
	c.JSON(http.StatusOK, menu)
}

func (p *PlanningAPI) GetMenuCost(c *gin.Context) {
	menu, err := p.Menus.GetMenu(c.Param("id"))
	if err != nil {
		respondError(c, err, "Menu")
		return
	}

	dishes := make([]gin.H, 0, len(menu.Dishes))
	total := 0.0
	portions := 0.0
	for _, menuDish := range menu.Dishes {
		cost := costing.CalculateDishCost(menuDish.Dish.Ingredients)
		perPortion := costing.PerPortion(cost.TotalCost, menuDish.Dish.BatchYield)
		total += cost.TotalCost * menuDish.Servings
		portions += menuDish.Servings * menuDish.Dish.Yield()

		dishes = append(dishes, gin.H{
			"dish":             menuDish.Dish.Name,
			"servings":         menuDish.Servings,
			"batch_cost":       cost.TotalCost,
			"cost_per_portion": perPortion,
			"suggested_price":  costing.SuggestPrice(perPortion, 0),
		})
	}

	response := gin.H{
		"menu":       menu.Name,
		"dishes":     dishes,
		"total_cost": costing.Round2(total),
	}
	if portions > 0 {
		costPerCover := costing.Round2(total / portions)
		response["cost_per_cover"] = costPerCover
		if menu.SellPrice != nil {
			response["food_cost_percent"] = costing.FoodCostPercent(costPerCover, *menu.SellPrice)
		}
	}

	c.JSON(http.StatusOK, response)
}

// Planning handlers

func (p *PlanningAPI) GetShoppingList(c *gin.Context) {
	list, err := p.Shopping.BuildList(c.Param("id"))
	if err != nil {
		respondError(c, err, "Menu")
		return
	}

	monitoring.ShoppingListsBuilt.Inc()
	c.JSON(http.StatusOK, list)
}

func (p *PlanningAPI) GetScaledShoppingList(c *gin.Context) {
	covers, err := strconv.Atoi(c.Query("covers"))
	if err != nil || covers <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "covers must be a positive integer"})
		return
	}

	list, err := p.Shopping.BuildScaledList(c.Param("id"), covers)
	if err != nil {
		respondError(c, err, "Menu")
		return
	}

	monitoring.ShoppingListsBuilt.Inc()
	c.JSON(http.StatusOK, list)
}

func (p *PlanningAPI) GetPrepTasks(c *gin.Context) {
	timeline, err := p.Prep.BuildTimeline(c.Param("id"))
	if err != nil {
		respondError(c, err, "Menu")
		return
	}

	monitoring.PrepTimelinesBuilt.Inc()
	c.JSON(http.StatusOK, timeline)
}

// Task handlers

func (p *PlanningAPI) GenerateTasks(c *gin.Context) {
	menuID := c.Param("id")
	summary, err := p.Generator.Generate(menuID)
	if err != nil {
		respondError(c, err, "Menu")
		return
	}

	monitoring.TaskGenerations.Inc()
	monitoring.TasksWritten.Add(float64(summary.Total))
	p.Monitor.RecordGeneration(menuID, summary.Total, summary.ShoppingCount, summary.PrepCount)

	c.JSON(http.StatusOK, summary)
}

func (p *PlanningAPI) ListMenuTasks(c *gin.Context) {
	menuID := c.Param("id")
	if _, err := p.Menus.GetMenu(menuID); err != nil {
		respondError(c, err, "Menu")
		return
	}

	rows, err := p.Tasks.TasksForMenu(menuID)
	if err != nil {
		respondError(c, err, "Task")
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (p *PlanningAPI) UpdateTask(c *gin.Context) {
	var patch models.TaskPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := p.Tasks.UpdateContent(c.Param("id"), patch)
	if err != nil {
		respondError(c, err, "Task")
		return
	}
	c.JSON(http.StatusOK, task)
}

// Runtime stats

func (p *PlanningAPI) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, p.Monitor.GetMetrics())
}
