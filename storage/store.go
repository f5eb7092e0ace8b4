package storage

// Store defines the interface for the task manager.
// Tasks, epics and subtasks share one id space.
type Store interface {
	// Task operations
	CreateTask(task *Task) (int, error)
	UpdateTask(task *Task) error
	DeleteTask(id int)
	DeleteAllTasks()
	ListTasks() []*Task
	TaskByID(id int) (*Task, bool)
	GetTask(id int) (*Task, bool)

	// Epic operations
	CreateEpic(epic *Epic) (int, error)
	UpdateEpic(epic *Epic) error
	DeleteEpic(id int)
	DeleteAllEpics()
	ListEpics() []*Epic
	EpicByID(id int) (*Epic, bool)
	GetEpic(id int) (*Epic, bool)
	EpicSubtasks(epicID int) []*Subtask

	// Subtask operations
	CreateSubtask(subtask *Subtask) (int, error)
	UpdateSubtask(subtask *Subtask) error
	DeleteSubtask(id int)
	DeleteAllSubtasks()
	ListSubtasks() []*Subtask
	SubtaskByID(id int) (*Subtask, bool)
	GetSubtask(id int) (*Subtask, bool)

	// History of GetTask/GetEpic/GetSubtask hits, oldest first
	History() []Item
}
