package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mise/internal/monitoring"
	"mise/internal/prep"
	"mise/internal/repository"
	"mise/internal/shopping"
	"mise/internal/tasks"
)

// PlanningAPI represents the main API handler for the planner
type PlanningAPI struct {
	Router      *gin.Engine
	Ingredients repository.IngredientRepository
	Dishes      repository.DishRepository
	Menus       repository.MenuRepository
	Tasks       repository.TaskRepository
	Shopping    *shopping.Service
	Prep        *prep.Service
	Generator   *tasks.Generator
	Monitor     *monitoring.Monitor
}

// NewPlanningAPI creates a new planning API instance wired to the
// given repositories.
func NewPlanningAPI(
	ingredients repository.IngredientRepository,
	dishes repository.DishRepository,
	menus repository.MenuRepository,
	taskRepo repository.TaskRepository,
) *PlanningAPI {
	router := gin.Default()

	api := &PlanningAPI{
		Router:      router,
		Ingredients: ingredients,
		Dishes:      dishes,
		Menus:       menus,
		Tasks:       taskRepo,
		Shopping:    shopping.NewService(menus),
		Prep:        prep.NewService(menus),
		Generator:   tasks.NewGenerator(menus, dishes, taskRepo),
		Monitor:     monitoring.NewMonitor(),
	}

	api.setupRoutes()
	return api
}

// setupRoutes configures all API endpoints
func (p *PlanningAPI) setupRoutes() {
	// Health check
	p.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "mise API is running"})
	})

	v1 := p.Router.Group("/api/v1")
	{
		// Larder
		v1.POST("/ingredients", p.CreateIngredient)
		v1.GET("/ingredients", p.ListIngredients)

		// Dishes
		v1.POST("/dishes", p.CreateDish)
		v1.GET("/dishes", p.ListDishes)
		v1.GET("/dishes/:id", p.GetDish)
		v1.GET("/dishes/:id/cost", p.GetDishCost)

		// Menus and planning
		v1.POST("/menus", p.CreateMenu)
		v1.GET("/menus/:id", p.GetMenu)
		v1.GET("/menus/:id/cost", p.GetMenuCost)
		v1.GET("/menus/:id/shopping-list", p.GetShoppingList)
		v1.GET("/menus/:id/scaled-shopping-list", p.GetScaledShoppingList)
		v1.GET("/menus/:id/prep-tasks", p.GetPrepTasks)

		// Task rows
		v1.POST("/menus/:id/generate-tasks", p.GenerateTasks)
		v1.GET("/menus/:id/tasks", p.ListMenuTasks)
		v1.PUT("/tasks/:id", p.UpdateTask)

		// Runtime stats
		v1.GET("/stats", p.GetStats)
	}
}
