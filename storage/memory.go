package storage

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// MemoryStore implements Store with in-memory maps.
//
// Entities passed in are copied on the way in and on the way out, so callers
// never hold a pointer into the store. Every delete path also evicts the
// deleted ids from the view history.
type MemoryStore struct {
	mu       sync.RWMutex
	tasks    map[int]*Task
	epics    map[int]*Epic
	subtasks map[int]*Subtask
	history  *History
	nextID   int
}

// NewMemoryStore creates an empty store with its own history
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tasks:    make(map[int]*Task),
		epics:    make(map[int]*Epic),
		subtasks: make(map[int]*Subtask),
		history:  NewHistory(),
		nextID:   1,
	}
}

// generateID hands out the next id. Ids are never reused, even after deletion.
func (s *MemoryStore) generateID() int {
	id := s.nextID
	s.nextID++
	return id
}

// CreateTask stores a copy of task and writes the assigned id back into task
func (s *MemoryStore) CreateTask(task *Task) (int, error) {
	if task == nil {
		return 0, fmt.Errorf("%w: task cannot be nil", ErrInvalidArgument)
	}
	if err := validateCore(task); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.generateID()
	task.ID = id

	stored := task.Clone()
	stored.Status = statusOrNew(stored.Status)
	s.tasks[id] = stored
	return id, nil
}

// CreateEpic stores a copy of epic. The epic starts with status NEW and no subtasks,
// whatever the argument carries.
func (s *MemoryStore) CreateEpic(epic *Epic) (int, error) {
	if epic == nil {
		return 0, fmt.Errorf("%w: epic cannot be nil", ErrInvalidArgument)
	}
	if err := validateName(epic.Name); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.generateID()
	epic.ID = id
	epic.Status = StatusNew

	stored := epic.Clone()
	stored.subtaskIDs = nil
	s.epics[id] = stored
	return id, nil
}

// CreateSubtask stores a copy of subtask under its epic and recomputes the epic's status
func (s *MemoryStore) CreateSubtask(subtask *Subtask) (int, error) {
	if subtask == nil {
		return 0, fmt.Errorf("%w: subtask cannot be nil", ErrInvalidArgument)
	}
	if subtask.ID != 0 && subtask.ID == subtask.EpicID {
		return 0, fmt.Errorf("%w: subtask %d cannot be its own epic", ErrInvalidArgument, subtask.ID)
	}
	if err := validateCore(&subtask.Task); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	epic, ok := s.epics[subtask.EpicID]
	if !ok {
		return 0, fmt.Errorf("%w: epic %d not found", ErrInvalidArgument, subtask.EpicID)
	}

	id := s.generateID()
	subtask.ID = id

	stored := subtask.Clone()
	stored.Status = statusOrNew(stored.Status)
	s.subtasks[id] = stored

	epic.subtaskIDs = append(epic.subtaskIDs, id)
	s.updateEpicStatus(epic)
	return id, nil
}

// UpdateTask replaces name, description and status of an existing task
func (s *MemoryStore) UpdateTask(task *Task) error {
	if task == nil {
		return fmt.Errorf("%w: task cannot be nil", ErrInvalidArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.tasks[task.ID]
	if !ok {
		return fmt.Errorf("%w: task %d", ErrNotFound, task.ID)
	}
	if err := validateCore(task); err != nil {
		return err
	}

	// Overwrite in place so history entries see the new state
	*existing = *task
	existing.Status = statusOrNew(existing.Status)
	return nil
}

// UpdateEpic changes only the name and description. Status and subtasks stay store-computed.
func (s *MemoryStore) UpdateEpic(epic *Epic) error {
	if epic == nil {
		return fmt.Errorf("%w: epic cannot be nil", ErrInvalidArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.epics[epic.ID]
	if !ok {
		return fmt.Errorf("%w: epic %d", ErrNotFound, epic.ID)
	}
	if err := validateName(epic.Name); err != nil {
		return err
	}

	existing.Name = epic.Name
	existing.Description = epic.Description
	return nil
}

// UpdateSubtask replaces a subtask and recomputes its epic's status.
// A changed EpicID moves the subtask to that epic, which must exist.
func (s *MemoryStore) UpdateSubtask(subtask *Subtask) error {
	if subtask == nil {
		return fmt.Errorf("%w: subtask cannot be nil", ErrInvalidArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.subtasks[subtask.ID]
	if !ok {
		return fmt.Errorf("%w: subtask %d", ErrNotFound, subtask.ID)
	}
	if subtask.ID == subtask.EpicID {
		return fmt.Errorf("%w: subtask %d cannot be its own epic", ErrInvalidArgument, subtask.ID)
	}
	if err := validateCore(&subtask.Task); err != nil {
		return err
	}

	oldEpicID := existing.EpicID
	newEpic, ok := s.epics[subtask.EpicID]
	if !ok {
		return fmt.Errorf("%w: epic %d not found", ErrInvalidArgument, subtask.EpicID)
	}

	*existing = *subtask
	existing.Status = statusOrNew(existing.Status)

	if oldEpicID != subtask.EpicID {
		if oldEpic, ok := s.epics[oldEpicID]; ok {
			oldEpic.RemoveSubtaskID(subtask.ID)
			s.updateEpicStatus(oldEpic)
		}
		newEpic.subtaskIDs = append(newEpic.subtaskIDs, subtask.ID)
	}
	s.updateEpicStatus(newEpic)
	return nil
}

// DeleteTask removes a task. Deleting a missing id is a no-op.
func (s *MemoryStore) DeleteTask(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tasks, id)
	s.history.Remove(id)
}

// DeleteEpic removes an epic together with all of its subtasks
func (s *MemoryStore) DeleteEpic(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	epic, ok := s.epics[id]
	if !ok {
		return
	}

	for _, subtaskID := range epic.subtaskIDs {
		delete(s.subtasks, subtaskID)
		s.history.Remove(subtaskID)
	}
	delete(s.epics, id)
	s.history.Remove(id)
}

// DeleteSubtask removes a subtask and detaches it from its epic
func (s *MemoryStore) DeleteSubtask(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	subtask, ok := s.subtasks[id]
	if !ok {
		return
	}

	delete(s.subtasks, id)
	s.history.Remove(id)

	if epic, ok := s.epics[subtask.EpicID]; ok {
		epic.RemoveSubtaskID(id)
		s.updateEpicStatus(epic)
	}
}

// DeleteAllTasks removes every standalone task
func (s *MemoryStore) DeleteAllTasks() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id := range s.tasks {
		s.history.Remove(id)
	}
	clear(s.tasks)
}

// DeleteAllEpics removes every epic and, with them, every subtask
func (s *MemoryStore) DeleteAllEpics() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id := range s.subtasks {
		s.history.Remove(id)
	}
	for id := range s.epics {
		s.history.Remove(id)
	}
	clear(s.subtasks)
	clear(s.epics)
}

// DeleteAllSubtasks removes every subtask. All epics end up empty and NEW.
func (s *MemoryStore) DeleteAllSubtasks() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id := range s.subtasks {
		s.history.Remove(id)
	}
	clear(s.subtasks)

	for _, epic := range s.epics {
		epic.subtaskIDs = nil
		s.updateEpicStatus(epic)
	}
}

// ListTasks returns copies of all tasks ordered by id
func (s *MemoryStore) ListTasks() []*Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]*Task, 0, len(s.tasks))
	for _, id := range slices.Sorted(maps.Keys(s.tasks)) {
		tasks = append(tasks, s.tasks[id].Clone())
	}
	return tasks
}

// ListEpics returns copies of all epics ordered by id
func (s *MemoryStore) ListEpics() []*Epic {
	s.mu.RLock()
	defer s.mu.RUnlock()

	epics := make([]*Epic, 0, len(s.epics))
	for _, id := range slices.Sorted(maps.Keys(s.epics)) {
		epics = append(epics, s.epics[id].Clone())
	}
	return epics
}

// ListSubtasks returns copies of all subtasks ordered by id
func (s *MemoryStore) ListSubtasks() []*Subtask {
	s.mu.RLock()
	defer s.mu.RUnlock()

	subtasks := make([]*Subtask, 0, len(s.subtasks))
	for _, id := range slices.Sorted(maps.Keys(s.subtasks)) {
		subtasks = append(subtasks, s.subtasks[id].Clone())
	}
	return subtasks
}

// TaskByID looks up a task without recording a view
func (s *MemoryStore) TaskByID(id int) (*Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, false
	}
	return t.Clone(), true
}

// EpicByID looks up an epic without recording a view
func (s *MemoryStore) EpicByID(id int) (*Epic, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.epics[id]
	if !ok {
		return nil, false
	}
	return e.Clone(), true
}

// SubtaskByID looks up a subtask without recording a view
func (s *MemoryStore) SubtaskByID(id int) (*Subtask, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.subtasks[id]
	if !ok {
		return nil, false
	}
	return st.Clone(), true
}

// GetTask looks up a task and records the view in history
func (s *MemoryStore) GetTask(id int) (*Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, false
	}
	s.history.Add(t)
	return t.Clone(), true
}

// GetEpic looks up an epic and records the view in history
func (s *MemoryStore) GetEpic(id int) (*Epic, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.epics[id]
	if !ok {
		return nil, false
	}
	s.history.Add(e)
	return e.Clone(), true
}

// GetSubtask looks up a subtask and records the view in history
func (s *MemoryStore) GetSubtask(id int) (*Subtask, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.subtasks[id]
	if !ok {
		return nil, false
	}
	s.history.Add(st)
	return st.Clone(), true
}

// EpicSubtasks returns the subtasks of an epic in the order they were added.
// Unknown epics yield an empty slice.
func (s *MemoryStore) EpicSubtasks(epicID int) []*Subtask {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []*Subtask{}
	epic, ok := s.epics[epicID]
	if !ok {
		return result
	}

	for _, id := range epic.subtaskIDs {
		if st, ok := s.subtasks[id]; ok {
			result = append(result, st.Clone())
		}
	}
	return result
}

// History returns copies of the viewed items, oldest first
func (s *MemoryStore) History() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.history.Items()
	for i, it := range items {
		items[i] = CloneItem(it)
	}
	return items
}

// updateEpicStatus derives an epic's status from its subtasks:
// NEW when empty or all NEW, DONE when all DONE, IN_PROGRESS otherwise.
func (s *MemoryStore) updateEpicStatus(epic *Epic) {
	if len(epic.subtaskIDs) == 0 {
		epic.Status = StatusNew
		return
	}

	allNew := true
	allDone := true
	for _, id := range epic.subtaskIDs {
		st, ok := s.subtasks[id]
		if !ok {
			continue
		}
		if st.Status != StatusNew {
			allNew = false
		}
		if st.Status != StatusDone {
			allDone = false
		}
	}

	switch {
	case allNew:
		epic.Status = StatusNew
	case allDone:
		epic.Status = StatusDone
	default:
		epic.Status = StatusInProgress
	}
}

func validateCore(t *Task) error {
	if err := validateName(t.Name); err != nil {
		return err
	}
	if t.Status != "" && !t.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, t.Status)
	}
	return nil
}

// statusOrNew treats the zero Status as NEW
func statusOrNew(st Status) Status {
	if st == "" {
		return StatusNew
	}
	return st
}
