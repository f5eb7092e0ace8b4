package commands

import (
	"fmt"
	"strings"

	"taskboard/storage"
)

func init() {
	Register(&Command{
		Name:        "/epic",
		Description: "Create a new epic. Its status is derived from the subtasks added to it.",
		Params: []Param{
			{Name: "name", Type: ParamTypeString, Description: "The name of the epic to create", Required: true},
		},
		Handler: func(args []string) bool {
			if len(args) == 0 {
				fmt.Println("Usage: /epic <name>")
				return false
			}

			epic := &storage.Epic{Task: storage.Task{Name: strings.Join(args, " ")}}
			id, err := GetStore().CreateEpic(epic)
			if err != nil {
				fmt.Printf("Error creating epic: %v\n", err)
				return false
			}

			fmt.Printf("Created epic: %s (ID: %d)\n", epic.Name, id)
			return false
		},
	})

	Register(&Command{
		Name:        "/epics",
		Description: "List all epics with their IDs. Use this to find an epic's ID when you have the name.",
		Handler: func(args []string) bool {
			epics := GetStore().ListEpics()
			if len(epics) == 0 {
				fmt.Println("No epics yet. Create one with /epic <name>")
				return false
			}

			fmt.Println("Epics:")
			for _, e := range epics {
				// Count subtasks for this epic
				subtasks := GetStore().EpicSubtasks(e.ID)
				done := 0
				for _, st := range subtasks {
					if st.Status == storage.StatusDone {
						done++
					}
				}

				fmt.Printf("  %s [%d] %s (%d/%d subtasks complete)\n",
					statusMark(e.Status), e.ID, e.Name, done, len(subtasks))
			}
			return false
		},
	})

	Register(&Command{
		Name:        "/subtask",
		Description: "Add a subtask to an epic",
		Params: []Param{
			{Name: "epic_id", Type: ParamTypeString, Description: "The ID of the epic to add the subtask to", Required: true},
			{Name: "name", Type: ParamTypeString, Description: "The name of the subtask to create", Required: true},
		},
		Handler: func(args []string) bool {
			if len(args) < 2 {
				fmt.Println("Usage: /subtask <epic-id> <name>")
				return false
			}

			epicID, err := parseID(args[0])
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return false
			}

			subtask := &storage.Subtask{
				Task:   storage.Task{Name: strings.Join(args[1:], " ")},
				EpicID: epicID,
			}
			id, err := GetStore().CreateSubtask(subtask)
			if err != nil {
				fmt.Printf("Error creating subtask: %v\n", err)
				return false
			}

			fmt.Printf("Created subtask: %s (ID: %d) in epic %d\n", subtask.Name, id, epicID)
			return false
		},
	})

	Register(&Command{
		Name:        "/subtasks",
		Description: "List the subtasks of an epic, or every subtask when no epic is given",
		Params: []Param{
			{Name: "epic_id", Type: ParamTypeString, Description: "The ID of the epic whose subtasks to list", Required: false},
		},
		Handler: func(args []string) bool {
			if len(args) == 0 {
				subtasks := GetStore().ListSubtasks()
				if len(subtasks) == 0 {
					fmt.Println("No subtasks yet. Add one with /subtask <epic-id> <name>")
					return false
				}

				fmt.Println("Subtasks:")
				for _, st := range subtasks {
					fmt.Printf("  %s [%d] %s (epic %d)\n", statusMark(st.Status), st.ID, st.Name, st.EpicID)
				}
				return false
			}

			epicID, err := parseID(args[0])
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return false
			}

			epic, ok := GetStore().EpicByID(epicID)
			if !ok {
				fmt.Printf("Error: epic %d: %v\n", epicID, storage.ErrNotFound)
				return false
			}

			fmt.Printf("Subtasks in %s (%s):\n", epic.Name, epic.Status)
			subtasks := GetStore().EpicSubtasks(epicID)
			if len(subtasks) == 0 {
				fmt.Printf("  No subtasks yet. Add one with /subtask %d <name>\n", epicID)
				return false
			}
			for _, st := range subtasks {
				printLine("  ", &st.Task)
			}
			return false
		},
	})

	Register(&Command{
		Name:        "/move",
		Description: "Move a subtask to another epic",
		Params: []Param{
			{Name: "subtask_id", Type: ParamTypeString, Description: "The ID of the subtask to move", Required: true},
			{Name: "epic_id", Type: ParamTypeString, Description: "The ID of the epic to move it to", Required: true},
		},
		Handler: func(args []string) bool {
			if len(args) < 2 {
				fmt.Println("Usage: /move <subtask-id> <epic-id>")
				return false
			}

			subtaskID, err := parseID(args[0])
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return false
			}
			epicID, err := parseID(args[1])
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return false
			}

			subtask, ok := GetStore().SubtaskByID(subtaskID)
			if !ok {
				fmt.Printf("Error: subtask %d: %v\n", subtaskID, storage.ErrNotFound)
				return false
			}

			subtask.EpicID = epicID
			if err := GetStore().UpdateSubtask(subtask); err != nil {
				fmt.Printf("Error moving subtask: %v\n", err)
				return false
			}

			fmt.Printf("Moved subtask %s to epic %d\n", subtask.Name, epicID)
			return false
		},
	})
}
