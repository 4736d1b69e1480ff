package models

import "time"

// Task types
const (
	TaskTypeShopping = "shopping"
	TaskTypePrep     = "prep"
	TaskTypeCustom   = "custom"
)

// Task sources. Auto rows are replaced wholesale every time generation
// runs for their menu; manual rows survive regeneration.
const (
	TaskSourceAuto   = "auto"
	TaskSourceManual = "manual"
)

// Task is a persisted to-do row for the kitchen team, either generated
// from a menu's shopping list and prep notes or authored by hand.
type Task struct {
	ID           string     `gorm:"primary_key;size:36" json:"id"`
	MenuID       *string    `gorm:"size:36;index" json:"menu_id"`
	SourceDishID *string    `gorm:"size:36" json:"source_dish_id"`
	Type         string     `gorm:"not null" json:"type"`
	Title        string     `gorm:"not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	Category     string     `json:"category"`
	Quantity     *float64   `json:"quantity"`
	Unit         string     `json:"unit"`
	TimingBucket string     `json:"timing_bucket"`
	Priority     string     `gorm:"default:'medium'" json:"priority"`
	Source       string     `gorm:"default:'auto'" json:"source"`
	SortOrder    int        `json:"sort_order"`
	DueDate      *time.Time `json:"due_date"`
	DueTime      string     `json:"due_time"`
	DayPhase     string     `json:"day_phase"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `sql:"index" json:"-"`
}

// TableName sets the table name for Task
func (Task) TableName() string {
	return "tasks"
}

// TaskPatch carries the editable content fields of a task. Nil fields
// are left untouched. Applying a non-empty patch to an auto-generated
// row promotes it to manual so it survives the next regeneration.
type TaskPatch struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	DueTime     *string    `json:"due_time"`
	DayPhase    *string    `json:"day_phase"`
}

// Empty reports whether the patch changes nothing.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Priority == nil &&
		p.DueDate == nil && p.DueTime == nil && p.DayPhase == nil
}

// Apply copies the patch's set fields onto the task.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.DueDate != nil {
		t.DueDate = p.DueDate
	}
	if p.DueTime != nil {
		t.DueTime = *p.DueTime
	}
	if p.DayPhase != nil {
		t.DayPhase = *p.DayPhase
	}
}
