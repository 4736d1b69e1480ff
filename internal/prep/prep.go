// Package prep turns free-text chef's notes and ingredient prep notes
// into discrete tasks bucketed onto a fixed service timeline.
package prep

import (
	"fmt"
	"regexp"
	"strings"

	"mise/internal/models"
	"mise/internal/repository"
)

// Bucket is one of the five fixed prep-urgency slots.
type Bucket string

// Timing buckets, in display order
const (
	DayBefore         Bucket = "day_before"
	MorningOf         Bucket = "morning_of"
	OneTwoHoursBefore Bucket = "1_2_hours_before"
	DuringService     Bucket = "during_service"
	LastMinute        Bucket = "last_minute"
)

// BucketOrder is the fixed order groups are emitted in.
var BucketOrder = []Bucket{DayBefore, MorningOf, OneTwoHoursBefore, DuringService, LastMinute}

var bucketLabels = map[Bucket]string{
	DayBefore:         "Day before",
	MorningOf:         "Morning of service",
	OneTwoHoursBefore: "1-2 hours before service",
	DuringService:     "During service",
	LastMinute:        "Last minute",
}

// Task sources
const (
	SourceChefsNotes     = "chefs_notes"
	SourceIngredientPrep = "ingredient_prep"
)

// Task is a single extracted prep task, not yet persisted.
type Task struct {
	Task   string `json:"task"`
	Dish   string `json:"dish"`
	Timing Bucket `json:"timing"`
	Source string `json:"source"`
}

// Group collects the tasks of one timing bucket.
type Group struct {
	Timing Bucket `json:"timing"`
	Label  string `json:"label"`
	Tasks  []Task `json:"tasks"`
}

// Result is the full prep timeline for a menu.
type Result struct {
	TaskGroups []Group `json:"task_groups"`
	TotalTasks int     `json:"total_tasks"`
}

// Service extracts prep timelines from persisted menus.
type Service struct {
	menus repository.MenuRepository
}

// NewService wires the extractor to a menu store.
func NewService(menus repository.MenuRepository) *Service {
	return &Service{menus: menus}
}

// BuildTimeline extracts and groups prep tasks for a menu.
func (s *Service) BuildTimeline(menuID string) (*Result, error) {
	menu, err := s.menus.GetMenu(menuID)
	if err != nil {
		return nil, err
	}
	return Extract(menu), nil
}

// Ordered, first-match-wins timing rules. The order is the tie-break:
// "prep the morning after resting overnight" is a day-before task.
var timingRules = []struct {
	bucket  Bucket
	pattern *regexp.Regexp
}{
	{DayBefore, regexp.MustCompile(`(?i)overnight|day before|24 ?h(ours?)?|night before`)},
	{MorningOf, regexp.MustCompile(`(?i)morning|same day|4-6 ?h(ours?)?|half.day|hours ahead`)},
	{OneTwoHoursBefore, regexp.MustCompile(`(?i)1-2 ?h(ours?)? before|hour before|2 hours`)},
	{LastMinute, regexp.MustCompile(`(?i)30 ?min|just before|right before|last minute|à la minute|a la minute`)},
}

// ExtractTiming buckets a task description by its timing keywords.
// Text with no recognizable timing phrase lands in during_service.
func ExtractTiming(text string) Bucket {
	for _, rule := range timingRules {
		if rule.pattern.MatchString(text) {
			return rule.bucket
		}
	}
	return DuringService
}

var fragmentSplitter = regexp.MustCompile(`[.\n;]+`)

// minFragmentLen is the inclusion floor for chef's-note fragments.
// Anything this long becomes a task; there is intentionally no verb or
// timing gate, a plain declarative sentence is still a task.
const minFragmentLen = 8

// TasksForDish extracts every prep task a single dish contributes:
// one per non-trivial chef's-note fragment plus one per ingredient
// line that carries a prep note.
func TasksForDish(dish *models.Dish) []Task {
	var tasks []Task

	for _, fragment := range fragmentSplitter.Split(dish.ChefsNotes, -1) {
		fragment = strings.TrimSpace(fragment)
		if len(fragment) < minFragmentLen {
			continue
		}
		tasks = append(tasks, Task{
			Task:   fragment,
			Dish:   dish.Name,
			Timing: ExtractTiming(fragment),
			Source: SourceChefsNotes,
		})
	}

	for _, line := range dish.Ingredients {
		if line.PrepNote == "" {
			continue
		}
		text := fmt.Sprintf("%s: %s", line.Ingredient.Name, line.PrepNote)
		tasks = append(tasks, Task{
			Task:   text,
			Dish:   dish.Name,
			Timing: ExtractTiming(line.PrepNote),
			Source: SourceIngredientPrep,
		})
	}

	return tasks
}

// Extract walks the menu's dishes in menu order and groups their prep
// tasks by timing bucket. Only non-empty buckets are emitted.
func Extract(menu *models.Menu) *Result {
	byBucket := make(map[Bucket][]Task)
	total := 0

	for _, menuDish := range menu.Dishes {
		for _, task := range TasksForDish(&menuDish.Dish) {
			byBucket[task.Timing] = append(byBucket[task.Timing], task)
			total++
		}
	}

	result := &Result{TaskGroups: []Group{}, TotalTasks: total}
	for _, bucket := range BucketOrder {
		tasks := byBucket[bucket]
		if len(tasks) == 0 {
			continue
		}
		result.TaskGroups = append(result.TaskGroups, Group{
			Timing: bucket,
			Label:  bucketLabels[bucket],
			Tasks:  tasks,
		})
	}

	return result
}
