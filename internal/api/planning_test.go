package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"mise/internal/repository"
)

func newTestAPI() *PlanningAPI {
	gin.SetMode(gin.TestMode)
	return NewPlanningAPI(
		repository.NewInMemoryIngredientRepository(),
		repository.NewInMemoryDishRepository(),
		repository.NewInMemoryMenuRepository(),
		repository.NewInMemoryTaskRepository(),
	)
}

func doJSON(api *PlanningAPI, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	api.Router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	api := newTestAPI()

	w := doJSON(api, "GET", "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestShoppingListMenuNotFound(t *testing.T) {
	api := newTestAPI()

	w := doJSON(api, "GET", "/api/v1/menus/nope/shopping-list", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Menu not found", response["error"])
}

func TestScaledShoppingListRejectsBadCovers(t *testing.T) {
	api := newTestAPI()

	for _, query := range []string{"", "?covers=0", "?covers=-3", "?covers=abc"} {
		w := doJSON(api, "GET", "/api/v1/menus/nope/scaled-shopping-list"+query, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "query %q", query)
	}
}

func TestPlanningFlow(t *testing.T) {
	api := newTestAPI()

	// Create a dish; its ingredients are upserted by name.
	w := doJSON(api, "POST", "/api/v1/dishes", map[string]interface{}{
		"name":        "Pasta Carbonara",
		"batch_yield": 4,
		"chefs_notes": "Cure the guanciale overnight. Grate the cheese just before service.",
		"ingredients": []map[string]interface{}{
			{"ingredient": "Spaghetti", "quantity": 400, "unit": "g", "unit_cost": 0.002, "base_unit": "g"},
			{"ingredient": "Pecorino", "quantity": 100, "unit": "g", "unit_cost": 0.03, "base_unit": "g", "category": "dairy"},
		},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var dish map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &dish))
	dishID := dish["id"].(string)
	assert.NotEmpty(t, dishID)

	// Dish costing: 400g @0.002 + 100g @0.03 = 3.80 per batch.
	w = doJSON(api, "GET", "/api/v1/dishes/"+dishID+"/cost", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var cost map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &cost))
	assert.InDelta(t, 3.80, cost["total_cost"], 1e-9)
	assert.InDelta(t, 0.95, cost["cost_per_portion"], 1e-9)

	// Put the dish on a menu, two batches.
	w = doJSON(api, "POST", "/api/v1/menus", map[string]interface{}{
		"name": "Saturday Service",
		"dishes": []map[string]interface{}{
			{"dish_id": dishID, "servings": 2},
		},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var menu map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &menu))
	menuID := menu["id"].(string)

	// Shopping list aggregates both lines.
	w = doJSON(api, "GET", "/api/v1/menus/"+menuID+"/shopping-list", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Groups []struct {
			Category string `json:"category"`
			Items    []struct {
				Ingredient    string  `json:"ingredient"`
				TotalQuantity float64 `json:"total_quantity"`
			} `json:"items"`
		} `json:"groups"`
		TotalEstimatedCost float64 `json:"total_estimated_cost"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.NotEmpty(t, list.Groups)
	assert.InDelta(t, 7.60, list.TotalEstimatedCost, 1e-9)

	// Prep tasks come from the chef's notes.
	w = doJSON(api, "GET", "/api/v1/menus/"+menuID+"/prep-tasks", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var timeline struct {
		TotalTasks int `json:"total_tasks"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &timeline))
	assert.Equal(t, 2, timeline.TotalTasks)

	// Generate task rows and edit one to promote it.
	w = doJSON(api, "POST", "/api/v1/menus/"+menuID+"/generate-tasks", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var summary struct {
		Total         int `json:"total"`
		ShoppingCount int `json:"shopping_count"`
		PrepCount     int `json:"prep_count"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 2, summary.ShoppingCount)
	assert.Equal(t, 2, summary.PrepCount)
	assert.Equal(t, 4, summary.Total)

	w = doJSON(api, "GET", "/api/v1/menus/"+menuID+"/tasks", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var rows []map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	assert.Len(t, rows, 4)

	taskID := rows[0]["id"].(string)
	w = doJSON(api, "PUT", "/api/v1/tasks/"+taskID, map[string]interface{}{
		"title": "Order the good pecorino",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var updated map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "manual", updated["source"])
}
