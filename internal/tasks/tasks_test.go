package tasks

import (
	"testing"

	"mise/internal/models"
	"mise/internal/repository"
)

type fixture struct {
	menus     *repository.InMemoryMenuRepository
	dishes    *repository.InMemoryDishRepository
	tasks     *repository.InMemoryTaskRepository
	generator *Generator
	menuID    string
}

func setup(t *testing.T) *fixture {
	t.Helper()

	menus := repository.NewInMemoryMenuRepository()
	dishes := repository.NewInMemoryDishRepository()
	taskRepo := repository.NewInMemoryTaskRepository()

	pecorino := models.Ingredient{ID: "ing-pecorino", Name: "Pecorino", UnitCost: 0.03, BaseUnit: "g", Category: "dairy"}
	guanciale := models.Ingredient{ID: "ing-guanciale", Name: "Guanciale", UnitCost: 0.02, BaseUnit: "g", Category: "protein"}

	carbonara := models.Dish{
		Name:       "Pasta Carbonara",
		BatchYield: 4,
		ChefsNotes: "Cure the guanciale overnight",
		Ingredients: []models.DishIngredient{
			{IngredientID: pecorino.ID, Ingredient: pecorino, Quantity: 100, Unit: "g"},
			{IngredientID: guanciale.ID, Ingredient: guanciale, Quantity: 150, Unit: "g", PrepNote: "dice into lardons"},
		},
	}
	if err := dishes.Save(&carbonara); err != nil {
		t.Fatal(err)
	}

	menu := models.Menu{
		Name: "Saturday Service",
		Dishes: []models.MenuDish{
			{Dish: carbonara, DishID: carbonara.ID, Servings: 2},
		},
	}
	if err := menus.Save(&menu); err != nil {
		t.Fatal(err)
	}

	return &fixture{
		menus:     menus,
		dishes:    dishes,
		tasks:     taskRepo,
		generator: NewGenerator(menus, dishes, taskRepo),
		menuID:    menu.ID,
	}
}

func TestGenerate(t *testing.T) {
	f := setup(t)

	summary, err := f.generator.Generate(f.menuID)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if summary.ShoppingCount != 2 {
		t.Errorf("ShoppingCount = %d, want 2", summary.ShoppingCount)
	}
	if summary.PrepCount != 2 {
		t.Errorf("PrepCount = %d, want 2", summary.PrepCount)
	}
	if summary.Total != 4 {
		t.Errorf("Total = %d, want 4", summary.Total)
	}

	rows, err := f.tasks.TasksForMenu(f.menuID)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 4 {
		t.Fatalf("persisted %d rows, want 4", len(rows))
	}

	// Shopping rows come before prep rows, sort_order matches position.
	for i, row := range rows {
		if row.SortOrder != i {
			t.Errorf("row[%d].SortOrder = %d, want %d", i, row.SortOrder, i)
		}
		if row.Source != models.TaskSourceAuto {
			t.Errorf("row[%d].Source = %q, want auto", i, row.Source)
		}
		if row.Priority != PriorityMedium {
			t.Errorf("row[%d].Priority = %q, want medium", i, row.Priority)
		}
	}
	if rows[0].Type != models.TaskTypeShopping || rows[1].Type != models.TaskTypeShopping {
		t.Error("first two rows should be shopping rows")
	}
	if rows[2].Type != models.TaskTypePrep || rows[3].Type != models.TaskTypePrep {
		t.Error("last two rows should be prep rows")
	}

	// Prep rows point back at the dish they came from.
	for _, row := range rows[2:] {
		if row.Description != "Pasta Carbonara" {
			t.Errorf("prep row description = %q, want dish name", row.Description)
		}
		if row.SourceDishID == nil {
			t.Error("prep row has no source dish reference")
		}
		if row.TimingBucket == "" {
			t.Error("prep row has no timing bucket")
		}
	}

	// Shopping rows carry the aggregate quantities.
	for _, row := range rows[:2] {
		if row.Quantity == nil || row.Unit == "" {
			t.Errorf("shopping row %q missing quantity/unit", row.Title)
		}
		if row.Description == "" {
			t.Errorf("shopping row %q missing used-in description", row.Title)
		}
	}
}

func TestGenerateIsIdempotent(t *testing.T) {
	f := setup(t)

	first, err := f.generator.Generate(f.menuID)
	if err != nil {
		t.Fatal(err)
	}
	second, err := f.generator.Generate(f.menuID)
	if err != nil {
		t.Fatal(err)
	}

	if first.Total != second.Total {
		t.Errorf("second run wrote %d rows, first wrote %d", second.Total, first.Total)
	}

	rows, _ := f.tasks.TasksForMenu(f.menuID)
	if len(rows) != first.Total {
		t.Errorf("persisted %d rows after two runs, want %d (no duplication)", len(rows), first.Total)
	}
}

func TestGeneratePreservesManualRows(t *testing.T) {
	f := setup(t)

	if _, err := f.generator.Generate(f.menuID); err != nil {
		t.Fatal(err)
	}

	// Hand-edit one generated row; it becomes manual.
	rows, _ := f.tasks.TasksForMenu(f.menuID)
	title := "Order the good pecorino"
	edited, err := f.tasks.UpdateContent(rows[0].ID, models.TaskPatch{Title: &title})
	if err != nil {
		t.Fatal(err)
	}
	if edited.Source != models.TaskSourceManual {
		t.Fatalf("edited row source = %q, want manual", edited.Source)
	}

	if _, err := f.generator.Generate(f.menuID); err != nil {
		t.Fatal(err)
	}

	rows, _ = f.tasks.TasksForMenu(f.menuID)
	var manual *models.Task
	autoCount := 0
	for i := range rows {
		if rows[i].Source == models.TaskSourceManual {
			manual = &rows[i]
		} else {
			autoCount++
		}
	}

	if manual == nil {
		t.Fatal("manual row was lost on regeneration")
	}
	if manual.Title != title {
		t.Errorf("manual row title = %q, want %q", manual.Title, title)
	}
	if autoCount != 4 {
		t.Errorf("auto row count after regeneration = %d, want 4", autoCount)
	}
}

func TestGenerateMenuNotFound(t *testing.T) {
	f := setup(t)

	if _, err := f.generator.Generate("missing"); err != repository.ErrNotFound {
		t.Errorf("Generate on missing menu: err = %v, want ErrNotFound", err)
	}
}

func TestUpdateContentEmptyPatchKeepsSource(t *testing.T) {
	f := setup(t)

	if _, err := f.generator.Generate(f.menuID); err != nil {
		t.Fatal(err)
	}
	rows, _ := f.tasks.TasksForMenu(f.menuID)

	task, err := f.tasks.UpdateContent(rows[0].ID, models.TaskPatch{})
	if err != nil {
		t.Fatal(err)
	}
	if task.Source != models.TaskSourceAuto {
		t.Errorf("empty patch changed source to %q, want auto", task.Source)
	}
}

func TestResolveDishSkipsMissing(t *testing.T) {
	f := setup(t)

	// A dish that exists only on the menu snapshot, not in the store.
	ghost := models.Dish{Name: "Ghost Dish", ChefsNotes: "Stir the pot gently all night"}
	menu := models.Menu{
		Name:   "Ghost Menu",
		Dishes: []models.MenuDish{{Dish: ghost, Servings: 1}},
	}
	if err := f.menus.Save(&menu); err != nil {
		t.Fatal(err)
	}

	if _, err := f.generator.Generate(menu.ID); err != nil {
		t.Fatal(err)
	}

	rows, _ := f.tasks.TasksForMenu(menu.ID)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].SourceDishID != nil {
		t.Error("unresolvable dish should leave SourceDishID nil")
	}
}
