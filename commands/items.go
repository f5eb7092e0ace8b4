package commands

import (
	"fmt"
	"strconv"
	"strings"

	"taskboard/storage"
)

// parseID accepts "7" or "#7"
func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(s, "#"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// lookup finds an item of any kind without recording a view
func lookup(id int) (storage.Item, bool) {
	s := GetStore()
	if t, ok := s.TaskByID(id); ok {
		return t, true
	}
	if e, ok := s.EpicByID(id); ok {
		return e, true
	}
	if st, ok := s.SubtaskByID(id); ok {
		return st, true
	}
	return nil, false
}

// lookupArg parses an id argument and resolves it, printing any error
func lookupArg(arg string) (storage.Item, bool) {
	id, err := parseID(arg)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return nil, false
	}
	item, ok := lookup(id)
	if !ok {
		fmt.Printf("Error: no task, epic or subtask with ID %d\n", id)
		return nil, false
	}
	return item, true
}

// updateItem writes a modified copy back through the matching store operation
func updateItem(item storage.Item) error {
	switch it := item.(type) {
	case *storage.Task:
		return GetStore().UpdateTask(it)
	case *storage.Epic:
		return GetStore().UpdateEpic(it)
	case *storage.Subtask:
		return GetStore().UpdateSubtask(it)
	}
	return fmt.Errorf("unsupported item type %T", item)
}

func kindName(k storage.Kind) string {
	return strings.ToLower(string(k))
}

func statusMark(s storage.Status) string {
	switch s {
	case storage.StatusDone:
		return "[✓]"
	case storage.StatusInProgress:
		return "[~]"
	default:
		return "[ ]"
	}
}

func printLine(indent string, t *storage.Task) {
	fmt.Printf("%s%s [%d] %s\n", indent, statusMark(t.Status), t.ID, t.Name)
}
