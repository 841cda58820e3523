package domain

import (
	"encoding/json"
	"sort"
)

// Priority of a task. Older documents may omit it; deserialization
// defaults to Medium.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Weight orders priorities for sorting: High 3, Medium 2, Low 1.
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityLow:
		return 1
	default:
		return 2
	}
}

// Task is one tracked to-do item.
type Task struct {
	ID        string   `json:"id,omitempty"`
	Text      string   `json:"text"`
	Priority  Priority `json:"priority"`
	Completed bool     `json:"completed"`
}

// UnmarshalJSON defaults a missing or unknown priority to Medium so
// consumers never see an empty field.
func (t *Task) UnmarshalJSON(data []byte) error {
	type alias Task
	var raw alias
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw.Priority {
	case PriorityHigh, PriorityMedium, PriorityLow:
	default:
		raw.Priority = PriorityMedium
	}
	*t = Task(raw)
	return nil
}

// SortTasksByPriority orders tasks by descending priority weight,
// keeping insertion order within a priority band.
func SortTasksByPriority(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Priority.Weight() > tasks[j].Priority.Weight()
	})
}

// CompletedTasks returns the tasks marked complete, in order.
func CompletedTasks(tasks []Task) []Task {
	var out []Task
	for _, t := range tasks {
		if t.Completed {
			out = append(out, t)
		}
	}
	return out
}
