package commands

import (
	"strings"
	"testing"

	"taskboard/storage"
)

func TestEpicCommands(t *testing.T) {
	setupTestStore(t)

	output := captureCommandOutput(t, "/epic Release 1.0")
	if !strings.Contains(output, "Created epic: Release 1.0 (ID: 1)") {
		t.Errorf("Expected epic creation message, got: %s", output)
	}

	output = captureCommandOutput(t, "/subtasks 1")
	if !strings.Contains(output, "No subtasks yet") {
		t.Errorf("Expected empty epic, got: %s", output)
	}

	output = captureCommandOutput(t, "/subtask 1 Write changelog")
	if !strings.Contains(output, "Created subtask: Write changelog (ID: 2) in epic 1") {
		t.Errorf("Expected subtask creation message, got: %s", output)
	}
	captureCommandOutput(t, "/subtask 1 Tag release")

	output = captureCommandOutput(t, "/epics")
	if !strings.Contains(output, "[ ] [1] Release 1.0 (0/2 subtasks complete)") {
		t.Errorf("Expected epic with counts, got: %s", output)
	}

	output = captureCommandOutput(t, "/status 2 in_progress")
	if !strings.Contains(output, "Epic Release 1.0 is now IN_PROGRESS") {
		t.Errorf("Expected epic status report, got: %s", output)
	}

	captureCommandOutput(t, "/status 2 done")
	output = captureCommandOutput(t, "/status 3 done")
	if !strings.Contains(output, "Epic Release 1.0 is now DONE") {
		t.Errorf("Expected epic to be done, got: %s", output)
	}

	output = captureCommandOutput(t, "/epics")
	if !strings.Contains(output, "[✓] [1] Release 1.0 (2/2 subtasks complete)") {
		t.Errorf("Expected completed epic, got: %s", output)
	}

	output = captureCommandOutput(t, "/subtasks 1")
	if !strings.Contains(output, "Subtasks in Release 1.0 (DONE):") ||
		!strings.Contains(output, "[✓] [2] Write changelog") {
		t.Errorf("Expected subtask list, got: %s", output)
	}

	// A new subtask drags the epic back to IN_PROGRESS
	captureCommandOutput(t, "/subtask 1 Announce")
	if epic, _ := GetStore().EpicByID(1); epic.Status != storage.StatusInProgress {
		t.Errorf("Expected IN_PROGRESS, got %s", epic.Status)
	}

	output = captureCommandOutput(t, "/view 1")
	for _, want := range []string{"Epic 1: Release 1.0", "Status: IN_PROGRESS", "Subtasks:", "[ ] [4] Announce"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in view, got: %s", want, output)
		}
	}

	output = captureCommandOutput(t, "/view 2")
	if !strings.Contains(output, "Epic: [1] Release 1.0") {
		t.Errorf("Expected parent epic in subtask view, got: %s", output)
	}
}

func TestDeleteEpicDeletesSubtasks(t *testing.T) {
	setupTestStore(t)

	captureCommandOutput(t, "/epic Release")
	captureCommandOutput(t, "/subtask 1 One")
	captureCommandOutput(t, "/subtask 1 Two")
	captureCommandOutput(t, "/view 2")

	output := captureCommandOutput(t, "/delete 1")
	if !strings.Contains(output, "Deleted epic: Release (and 2 subtasks)") {
		t.Errorf("Expected cascade message, got: %s", output)
	}

	output = captureCommandOutput(t, "/subtasks")
	if !strings.Contains(output, "No subtasks yet") {
		t.Errorf("Subtasks should be gone, got: %s", output)
	}
	if n := len(GetStore().History()); n != 0 {
		t.Errorf("History should drop the deleted subtask, got %d entries", n)
	}

	// Ids are never reused
	output = captureCommandOutput(t, "/epic Next")
	if !strings.Contains(output, "(ID: 4)") {
		t.Errorf("Expected fresh id 4, got: %s", output)
	}
}

func TestDeleteSubtaskUpdatesEpic(t *testing.T) {
	setupTestStore(t)

	captureCommandOutput(t, "/epic Release")
	captureCommandOutput(t, "/subtask 1 Done part")
	captureCommandOutput(t, "/subtask 1 Open part")
	captureCommandOutput(t, "/status 2 done")

	output := captureCommandOutput(t, "/delete 3")
	if !strings.Contains(output, "Deleted subtask: Open part") {
		t.Errorf("Expected deletion message, got: %s", output)
	}

	if epic, _ := GetStore().EpicByID(1); epic.Status != storage.StatusDone {
		t.Errorf("Expected DONE after removing the open subtask, got %s", epic.Status)
	}
}

func TestSubtaskInNonexistentEpic(t *testing.T) {
	setupTestStore(t)

	captureCommandOutput(t, "/task Standalone")

	output := captureCommandOutput(t, "/subtask 99 Orphan")
	if !strings.Contains(output, "epic 99 not found") {
		t.Errorf("Expected epic not found error, got: %s", output)
	}

	// A task id is not an epic id
	output = captureCommandOutput(t, "/subtask 1 Orphan")
	if !strings.Contains(output, "epic 1 not found") {
		t.Errorf("Expected epic not found error, got: %s", output)
	}

	if n := len(GetStore().ListSubtasks()); n != 0 {
		t.Errorf("No subtask should be created, got %d", n)
	}

	output = captureCommandOutput(t, "/subtasks 1")
	if !strings.Contains(output, "not found") {
		t.Errorf("Expected not found for a task id, got: %s", output)
	}
}

func TestMoveCommand(t *testing.T) {
	setupTestStore(t)

	captureCommandOutput(t, "/epic Alpha")
	captureCommandOutput(t, "/epic Beta")
	captureCommandOutput(t, "/subtask 1 Wandering")
	captureCommandOutput(t, "/status 3 done")

	output := captureCommandOutput(t, "/move 3 2")
	if !strings.Contains(output, "Moved subtask Wandering to epic 2") {
		t.Errorf("Expected move message, got: %s", output)
	}

	output = captureCommandOutput(t, "/subtasks 1")
	if !strings.Contains(output, "No subtasks yet") {
		t.Errorf("Alpha should be empty, got: %s", output)
	}
	output = captureCommandOutput(t, "/subtasks 2")
	if !strings.Contains(output, "Wandering") {
		t.Errorf("Beta should hold the subtask, got: %s", output)
	}

	alpha, _ := GetStore().EpicByID(1)
	beta, _ := GetStore().EpicByID(2)
	if alpha.Status != storage.StatusNew || beta.Status != storage.StatusDone {
		t.Errorf("Expected NEW and DONE, got %s and %s", alpha.Status, beta.Status)
	}

	output = captureCommandOutput(t, "/move 3 99")
	if !strings.Contains(output, "Error moving subtask") {
		t.Errorf("Expected move error, got: %s", output)
	}
	output = captureCommandOutput(t, "/move 1 2")
	if !strings.Contains(output, "subtask 1") {
		t.Errorf("Expected not found for an epic id, got: %s", output)
	}
}
