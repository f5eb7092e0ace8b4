package storage

import (
	"fmt"
	"slices"
	"strings"
)

// Status represents the progress of a task
type Status string

const (
	StatusNew        Status = "NEW"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

// ValidStatuses lists all valid status values
var ValidStatuses = []Status{StatusNew, StatusInProgress, StatusDone}

// IsValid checks if s is one of the known statuses
func (s Status) IsValid() bool {
	return slices.Contains(ValidStatuses, s)
}

// ParseStatus converts user input such as "done" or "in-progress" to a Status
func ParseStatus(s string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	status := Status(normalized)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: unknown status %q (use new, in_progress or done)", ErrInvalidArgument, s)
	}
	return status, nil
}

// Kind discriminates the three entity variants
type Kind string

const (
	KindTask    Kind = "TASK"
	KindEpic    Kind = "EPIC"
	KindSubtask Kind = "SUBTASK"
)

// Item is implemented by *Task, *Epic and *Subtask.
// Core exposes the shared fields; Kind tells the variants apart.
type Item interface {
	Core() *Task
	Kind() Kind
}

// Task is a standalone unit of work. It is also the common core
// embedded in Epic and Subtask.
//
// An ID of zero means the task has not been stored yet.
type Task struct {
	ID          int
	Name        string
	Description string
	Status      Status
}

// NewTask creates a task with status NEW
func NewTask(name, description string) (*Task, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	return &Task{Name: name, Description: description, Status: StatusNew}, nil
}

func (t *Task) Core() *Task { return t }
func (t *Task) Kind() Kind  { return KindTask }

// Equal reports whether two items have the same id. Identity is the id alone.
func (t *Task) Equal(other Item) bool {
	if t == nil || other == nil || other.Core() == nil {
		return false
	}
	return t.ID == other.Core().ID
}

// Clone returns an independent copy
func (t *Task) Clone() *Task {
	c := *t
	return &c
}

func (t *Task) String() string {
	return fmt.Sprintf("#%d %s [%s]", t.ID, t.Name, t.Status)
}

// Epic groups subtasks. Its status is derived from them by the store.
type Epic struct {
	Task

	subtaskIDs []int
}

// NewEpic creates an epic with no subtasks
func NewEpic(name, description string) (*Epic, error) {
	t, err := NewTask(name, description)
	if err != nil {
		return nil, err
	}
	return &Epic{Task: *t}, nil
}

func (e *Epic) Core() *Task {
	if e == nil {
		return nil
	}
	return &e.Task
}

func (e *Epic) Kind() Kind { return KindEpic }

// SubtaskIDs returns a copy of the child ids in insertion order
func (e *Epic) SubtaskIDs() []int {
	ids := make([]int, len(e.subtaskIDs))
	copy(ids, e.subtaskIDs)
	return ids
}

// AddSubtaskID appends a child id. The epic's own id and duplicates are rejected.
func (e *Epic) AddSubtaskID(id int) error {
	if id == e.ID {
		return fmt.Errorf("%w: epic %d cannot contain itself", ErrInvalidArgument, e.ID)
	}
	if slices.Contains(e.subtaskIDs, id) {
		return fmt.Errorf("%w: subtask %d already belongs to epic %d", ErrInvalidArgument, id, e.ID)
	}
	e.subtaskIDs = append(e.subtaskIDs, id)
	return nil
}

// RemoveSubtaskID removes a child id if present
func (e *Epic) RemoveSubtaskID(id int) {
	if i := slices.Index(e.subtaskIDs, id); i >= 0 {
		e.subtaskIDs = slices.Delete(e.subtaskIDs, i, i+1)
	}
}

// SetSubtaskIDs replaces the child list. A nil or empty slice clears it.
func (e *Epic) SetSubtaskIDs(ids []int) error {
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		if id == e.ID {
			return fmt.Errorf("%w: epic %d cannot contain itself", ErrInvalidArgument, e.ID)
		}
		if seen[id] {
			return fmt.Errorf("%w: duplicate subtask id %d", ErrInvalidArgument, id)
		}
		seen[id] = true
	}
	e.subtaskIDs = slices.Clone(ids)
	return nil
}

// Clone returns an independent copy, including the child list
func (e *Epic) Clone() *Epic {
	c := *e
	c.subtaskIDs = slices.Clone(e.subtaskIDs)
	return &c
}

func (e *Epic) String() string {
	return fmt.Sprintf("#%d %s [%s] subtasks=%v", e.ID, e.Name, e.Status, e.subtaskIDs)
}

// Subtask is a leaf task owned by exactly one epic
type Subtask struct {
	Task

	EpicID int
}

// NewSubtask creates a subtask that will belong to epicID
func NewSubtask(name, description string, epicID int) (*Subtask, error) {
	t, err := NewTask(name, description)
	if err != nil {
		return nil, err
	}
	return &Subtask{Task: *t, EpicID: epicID}, nil
}

func (s *Subtask) Core() *Task {
	if s == nil {
		return nil
	}
	return &s.Task
}

func (s *Subtask) Kind() Kind { return KindSubtask }

// Clone returns an independent copy
func (s *Subtask) Clone() *Subtask {
	c := *s
	return &c
}

func (s *Subtask) String() string {
	return fmt.Sprintf("#%d %s [%s] epic=%d", s.ID, s.Name, s.Status, s.EpicID)
}

// CloneItem copies any Item, preserving its concrete type
func CloneItem(it Item) Item {
	switch v := it.(type) {
	case *Epic:
		return v.Clone()
	case *Subtask:
		return v.Clone()
	case *Task:
		return v.Clone()
	default:
		return it
	}
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidArgument)
	}
	return nil
}
