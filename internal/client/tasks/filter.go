package tasks

import "github.com/todovault/todovault/internal/client/models"

// Filter selects the visible subset of the task list.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// ParseFilter validates a filter name.
func ParseFilter(s string) (Filter, bool) {
	switch Filter(s) {
	case FilterAll, FilterActive, FilterCompleted:
		return Filter(s), true
	}
	return "", false
}

// ApplyFilter returns the subset of todos matching f, preserving order.
// FilterAll returns the input unmodified.
func ApplyFilter(todos []models.Todo, f Filter) []models.Todo {
	if f == FilterAll {
		return todos
	}

	wantCompleted := f == FilterCompleted
	result := make([]models.Todo, 0, len(todos))
	for _, t := range todos {
		if t.Completed == wantCompleted {
			result = append(result, t)
		}
	}
	return result
}

// CountActive returns the number of tasks not yet completed.
func CountActive(todos []models.Todo) int {
	n := 0
	for _, t := range todos {
		if !t.Completed {
			n++
		}
	}
	return n
}
