package commands

import (
	"fmt"
	"strings"

	"taskboard/storage"
)

func init() {
	Register(&Command{
		Name:        "/task",
		Description: "Create a standalone task",
		Params: []Param{
			{Name: "name", Type: ParamTypeString, Description: "The name of the task to create", Required: true},
		},
		Handler: func(args []string) bool {
			if len(args) == 0 {
				fmt.Println("Usage: /task <name>")
				return false
			}

			task := &storage.Task{Name: strings.Join(args, " ")}
			id, err := GetStore().CreateTask(task)
			if err != nil {
				fmt.Printf("Error creating task: %v\n", err)
				return false
			}

			fmt.Printf("Created task: %s (ID: %d)\n", task.Name, id)
			return false
		},
	})

	Register(&Command{
		Name:        "/tasks",
		Description: "List all standalone tasks with their IDs. Use this to find a task's ID when you have the name.",
		Handler: func(args []string) bool {
			tasks := GetStore().ListTasks()
			if len(tasks) == 0 {
				fmt.Println("No tasks yet. Create one with /task <name>")
				return false
			}

			fmt.Println("Tasks:")
			for _, t := range tasks {
				printLine("  ", t)
			}
			return false
		},
	})

	Register(&Command{
		Name:        "/status",
		Description: "Set the status of a task or subtask (new, in_progress, done). Epic status cannot be set.",
		Params: []Param{
			{Name: "id", Type: ParamTypeString, Description: "The ID of the task or subtask", Required: true},
			{Name: "status", Type: ParamTypeString, Description: "One of: new, in_progress, done", Required: true},
		},
		Handler: func(args []string) bool {
			if len(args) < 2 {
				fmt.Println("Usage: /status <id> <new|in_progress|done>")
				return false
			}

			status, err := storage.ParseStatus(args[1])
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return false
			}

			item, ok := lookupArg(args[0])
			if !ok {
				return false
			}
			if item.Kind() == storage.KindEpic {
				fmt.Println("Error: epic status is computed from its subtasks")
				return false
			}

			item.Core().Status = status
			if err := updateItem(item); err != nil {
				fmt.Printf("Error: %v\n", err)
				return false
			}

			fmt.Printf("Set %s %d to %s\n", kindName(item.Kind()), item.Core().ID, status)
			if st, ok := item.(*storage.Subtask); ok {
				if epic, found := GetStore().EpicByID(st.EpicID); found {
					fmt.Printf("Epic %s is now %s\n", epic.Name, epic.Status)
				}
			}
			return false
		},
	})

	Register(&Command{
		Name:        "/rename",
		Description: "Rename a task, epic or subtask",
		Params: []Param{
			{Name: "id", Type: ParamTypeString, Description: "The ID of the item to rename", Required: true},
			{Name: "name", Type: ParamTypeString, Description: "The new name", Required: true},
		},
		Handler: func(args []string) bool {
			if len(args) < 2 {
				fmt.Println("Usage: /rename <id> <new name>")
				return false
			}

			item, ok := lookupArg(args[0])
			if !ok {
				return false
			}

			item.Core().Name = strings.Join(args[1:], " ")
			if err := updateItem(item); err != nil {
				fmt.Printf("Error: %v\n", err)
				return false
			}

			fmt.Printf("Renamed %s %d to %s\n", kindName(item.Kind()), item.Core().ID, item.Core().Name)
			return false
		},
	})

	Register(&Command{
		Name:        "/describe",
		Description: "Set the description of a task, epic or subtask. Use 'none' to clear it.",
		Params: []Param{
			{Name: "id", Type: ParamTypeString, Description: "The ID of the item", Required: true},
			{Name: "description", Type: ParamTypeString, Description: "The new description, or 'none' to clear", Required: true},
		},
		Handler: func(args []string) bool {
			if len(args) < 2 {
				fmt.Println("Usage: /describe <id> <text|none>")
				return false
			}

			item, ok := lookupArg(args[0])
			if !ok {
				return false
			}

			description := strings.Join(args[1:], " ")
			if description == "none" {
				description = ""
			}

			item.Core().Description = description
			if err := updateItem(item); err != nil {
				fmt.Printf("Error: %v\n", err)
				return false
			}

			if description == "" {
				fmt.Printf("Cleared description of %s %d\n", kindName(item.Kind()), item.Core().ID)
			} else {
				fmt.Printf("Updated description of %s %d\n", kindName(item.Kind()), item.Core().ID)
			}
			return false
		},
	})

	Register(&Command{
		Name:        "/view",
		Description: "Show the details of a task, epic or subtask and record it as recently viewed",
		Params: []Param{
			{Name: "id", Type: ParamTypeString, Description: "The ID of the item to view", Required: true},
		},
		Handler: func(args []string) bool {
			if len(args) == 0 {
				fmt.Println("Usage: /view <id>")
				return false
			}

			item, ok := lookupArg(args[0])
			if !ok {
				return false
			}

			// Re-fetch through the tracked lookup so the view lands in history
			id := item.Core().ID
			switch item.Kind() {
			case storage.KindTask:
				item, ok = GetStore().GetTask(id)
			case storage.KindEpic:
				item, ok = GetStore().GetEpic(id)
			case storage.KindSubtask:
				item, ok = GetStore().GetSubtask(id)
			}
			if !ok {
				fmt.Printf("Error: item %d was removed\n", id)
				return false
			}

			printDetails(item)
			return false
		},
	})

	Register(&Command{
		Name:        "/delete",
		Description: "Delete a task, epic or subtask. Deleting an epic also deletes its subtasks.",
		Destructive: true,
		Params: []Param{
			{Name: "id", Type: ParamTypeString, Description: "The ID of the item to delete", Required: true},
		},
		Handler: func(args []string) bool {
			if len(args) == 0 {
				fmt.Println("Usage: /delete <id>")
				return false
			}

			item, ok := lookupArg(args[0])
			if !ok {
				return false
			}

			id := item.Core().ID
			switch item.Kind() {
			case storage.KindTask:
				GetStore().DeleteTask(id)
				fmt.Printf("Deleted task: %s\n", item.Core().Name)
			case storage.KindEpic:
				n := len(GetStore().EpicSubtasks(id))
				GetStore().DeleteEpic(id)
				fmt.Printf("Deleted epic: %s (and %d subtasks)\n", item.Core().Name, n)
			case storage.KindSubtask:
				GetStore().DeleteSubtask(id)
				fmt.Printf("Deleted subtask: %s\n", item.Core().Name)
			}
			return false
		},
	})

	Register(&Command{
		Name:        "/clear",
		Description: "Delete every item of one kind: tasks, epics (with their subtasks) or subtasks",
		Destructive: true,
		Params: []Param{
			{Name: "kind", Type: ParamTypeString, Description: "One of: tasks, epics, subtasks", Required: true},
		},
		Handler: func(args []string) bool {
			if len(args) == 0 {
				fmt.Println("Usage: /clear <tasks|epics|subtasks>")
				return false
			}

			switch strings.ToLower(args[0]) {
			case "tasks":
				GetStore().DeleteAllTasks()
				fmt.Println("Deleted all tasks")
			case "epics":
				GetStore().DeleteAllEpics()
				fmt.Println("Deleted all epics and their subtasks")
			case "subtasks":
				GetStore().DeleteAllSubtasks()
				fmt.Println("Deleted all subtasks")
			default:
				fmt.Printf("Error: %v: unknown kind %q\n", storage.ErrInvalidArgument, args[0])
			}
			return false
		},
	})
}

func printDetails(item storage.Item) {
	t := item.Core()
	kind := kindName(item.Kind())
	fmt.Printf("%s %d: %s\n", strings.ToUpper(kind[:1])+kind[1:], t.ID, t.Name)
	fmt.Printf("  Status: %s\n", t.Status)
	if t.Description != "" {
		fmt.Printf("  Description: %s\n", t.Description)
	}

	switch it := item.(type) {
	case *storage.Subtask:
		if epic, ok := GetStore().EpicByID(it.EpicID); ok {
			fmt.Printf("  Epic: [%d] %s\n", epic.ID, epic.Name)
		}
	case *storage.Epic:
		subtasks := GetStore().EpicSubtasks(it.ID)
		if len(subtasks) == 0 {
			fmt.Println("  No subtasks")
			return
		}
		fmt.Println("  Subtasks:")
		for _, st := range subtasks {
			printLine("    ", &st.Task)
		}
	}
}
