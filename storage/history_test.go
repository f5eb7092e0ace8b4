package storage

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// newTestTask creates a task that already carries an id
func newTestTask(t *testing.T, id int) *Task {
	t.Helper()

	task, err := NewTask("Task", "Description")
	if err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}
	task.ID = id
	return task
}

func historyIDs(items []Item) []int {
	ids := make([]int, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.Core().ID)
	}
	return ids
}

func TestHistoryAdd(t *testing.T) {
	h := NewHistory()
	task := newTestTask(t, 1)

	h.Add(task)

	items := h.Items()
	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(items))
	}
	if !task.Equal(items[0]) {
		t.Errorf("Expected task 1, got %v", items[0])
	}
}

func TestHistoryEmpty(t *testing.T) {
	h := NewHistory()

	items := h.Items()
	if items == nil {
		t.Fatal("Items should return an empty slice, not nil")
	}
	if len(items) != 0 {
		t.Errorf("Expected empty history, got %d items", len(items))
	}
}

func TestHistoryAddNil(t *testing.T) {
	h := NewHistory()

	h.Add(nil)
	h.Add((*Task)(nil))
	h.Add((*Epic)(nil))
	h.Add((*Subtask)(nil))

	if h.Len() != 0 {
		t.Errorf("Nil items should be ignored, got %d items", h.Len())
	}
}

func TestHistoryOrder(t *testing.T) {
	testCases := []struct {
		name string
		adds []int
		want []int
	}{
		{"insertion order", []int{1, 2, 3}, []int{1, 2, 3}},
		{"revisit moves to newest", []int{1, 2, 3, 1}, []int{2, 3, 1}},
		{"revisit newest is stable", []int{1, 2, 3, 3}, []int{1, 2, 3}},
		{"revisit middle", []int{1, 2, 3, 2}, []int{1, 3, 2}},
		{"complex duplicates", []int{1, 2, 1, 3, 2, 1}, []int{3, 2, 1}},
		{"single item repeated", []int{7, 7, 7}, []int{7}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHistory()
			for _, id := range tc.adds {
				h.Add(newTestTask(t, id))
			}

			if diff := cmp.Diff(tc.want, historyIDs(h.Items())); diff != "" {
				t.Errorf("History order mismatch (-want +got):\n%s", diff)
			}
			if h.Len() != len(tc.want) {
				t.Errorf("Expected Len %d, got %d", len(tc.want), h.Len())
			}
		})
	}
}

func TestHistoryRemove(t *testing.T) {
	testCases := []struct {
		name   string
		remove int
		want   []int
	}{
		{"head", 1, []int{2, 3}},
		{"interior", 2, []int{1, 3}},
		{"tail", 3, []int{1, 2}},
		{"missing", 999, []int{1, 2, 3}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHistory()
			for id := 1; id <= 3; id++ {
				h.Add(newTestTask(t, id))
			}

			h.Remove(tc.remove)

			if diff := cmp.Diff(tc.want, historyIDs(h.Items())); diff != "" {
				t.Errorf("History mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHistoryRemoveThenAdd(t *testing.T) {
	h := NewHistory()
	for id := 1; id <= 3; id++ {
		h.Add(newTestTask(t, id))
	}

	// Removing head and tail must leave the links usable
	h.Remove(1)
	h.Remove(3)
	h.Add(newTestTask(t, 4))
	h.Add(newTestTask(t, 2))

	if diff := cmp.Diff([]int{4, 2}, historyIDs(h.Items())); diff != "" {
		t.Errorf("History mismatch (-want +got):\n%s", diff)
	}
}

func TestHistoryRemoveFromEmpty(t *testing.T) {
	h := NewHistory()
	h.Remove(1)

	if h.Len() != 0 {
		t.Errorf("History should stay empty, got %d items", h.Len())
	}
}

func TestHistoryRemoveOnlyEntry(t *testing.T) {
	h := NewHistory()
	h.Add(newTestTask(t, 1))
	h.Remove(1)

	if len(h.Items()) != 0 {
		t.Error("History should be empty after removing its only entry")
	}

	// The list must still accept new entries
	h.Add(newTestTask(t, 2))
	if diff := cmp.Diff([]int{2}, historyIDs(h.Items())); diff != "" {
		t.Errorf("History mismatch (-want +got):\n%s", diff)
	}
}

func TestHistoryUnbounded(t *testing.T) {
	h := NewHistory()
	for id := 1; id <= 100; id++ {
		h.Add(newTestTask(t, id))
	}

	items := h.Items()
	if len(items) != 100 {
		t.Fatalf("Expected 100 items, got %d", len(items))
	}
	if items[0].Core().ID != 1 || items[99].Core().ID != 100 {
		t.Errorf("Expected ids 1..100, got first=%d last=%d", items[0].Core().ID, items[99].Core().ID)
	}
}

func TestHistoryItemsIsCopy(t *testing.T) {
	h := NewHistory()
	h.Add(newTestTask(t, 1))

	first := h.Items()
	first[0] = nil

	second := h.Items()
	if len(second) != 1 || second[0] == nil {
		t.Errorf("Modifying the returned slice should not affect the history, got %v", second)
	}
}

func TestHistoryMixedKinds(t *testing.T) {
	h := NewHistory()

	task := newTestTask(t, 1)
	epic, _ := NewEpic("Epic", "Epic description")
	epic.ID = 2
	subtask, _ := NewSubtask("Subtask", "Subtask description", 2)
	subtask.ID = 3

	h.Add(task)
	h.Add(epic)
	h.Add(subtask)

	items := h.Items()
	wantKinds := []Kind{KindTask, KindEpic, KindSubtask}
	var gotKinds []Kind
	for _, it := range items {
		gotKinds = append(gotKinds, it.Kind())
	}
	if diff := cmp.Diff(wantKinds, gotKinds); diff != "" {
		t.Errorf("Kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestHistoryClear(t *testing.T) {
	h := NewHistory()
	h.Add(newTestTask(t, 1))
	h.Add(newTestTask(t, 2))

	h.Clear()

	if h.Len() != 0 || len(h.Items()) != 0 {
		t.Error("History should be empty after Clear")
	}
}
