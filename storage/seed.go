package storage

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Seed is a YAML description of tasks and epics used to populate a store
// or to dump its current contents.
//
//	tasks:
//	  - name: Move house
//	    description: Pack everything
//	epics:
//	  - name: Release 1.0
//	    subtasks:
//	      - name: Write changelog
//	        status: done
type Seed struct {
	Tasks []SeedTask `yaml:"tasks,omitempty"`
	Epics []SeedEpic `yaml:"epics,omitempty"`
}

// SeedTask describes a task or a subtask
type SeedTask struct {
	ID          int    `yaml:"id,omitempty"`
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Status      Status `yaml:"status,omitempty"`
}

// SeedEpic describes an epic and its subtasks. Status is written on export
// and ignored on apply, since the store derives it.
type SeedEpic struct {
	ID          int        `yaml:"id,omitempty"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Status      Status     `yaml:"status,omitempty"`
	Subtasks    []SeedTask `yaml:"subtasks,omitempty"`
}

// LoadSeed decodes a seed document. An empty document yields an empty seed.
func LoadSeed(r io.Reader) (*Seed, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var seed Seed
	if err := dec.Decode(&seed); err != nil {
		if errors.Is(err, io.EOF) {
			return &Seed{}, nil
		}
		return nil, fmt.Errorf("failed to decode seed: %w", err)
	}

	if err := seed.Validate(); err != nil {
		return nil, err
	}
	return &seed, nil
}

// LoadSeedFile reads a seed document from path
func LoadSeedFile(path string) (*Seed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return LoadSeed(f)
}

// Validate checks every entry so Apply never stops halfway
func (sd *Seed) Validate() error {
	for i, t := range sd.Tasks {
		if err := t.validate(); err != nil {
			return fmt.Errorf("tasks[%d]: %w", i, err)
		}
	}
	for i, e := range sd.Epics {
		if err := validateName(e.Name); err != nil {
			return fmt.Errorf("epics[%d]: %w", i, err)
		}
		for j, st := range e.Subtasks {
			if err := st.validate(); err != nil {
				return fmt.Errorf("epics[%d].subtasks[%d]: %w", i, j, err)
			}
		}
	}
	return nil
}

func (st SeedTask) validate() error {
	if err := validateName(st.Name); err != nil {
		return err
	}
	_, err := st.status()
	return err
}

// status accepts the same spellings as ParseStatus; empty means NEW
func (st SeedTask) status() (Status, error) {
	if st.Status == "" {
		return StatusNew, nil
	}
	return ParseStatus(string(st.Status))
}

// Apply creates every entry through the store's public operations and
// returns how many entities were created. Ids in the seed are ignored;
// the store assigns fresh ones.
func (sd *Seed) Apply(store Store) (int, error) {
	if err := sd.Validate(); err != nil {
		return 0, err
	}

	created := 0
	for _, t := range sd.Tasks {
		if _, err := store.CreateTask(t.task()); err != nil {
			return created, fmt.Errorf("failed to create task %q: %w", t.Name, err)
		}
		created++
	}

	for _, e := range sd.Epics {
		epicID, err := store.CreateEpic(&Epic{Task: Task{Name: e.Name, Description: e.Description}})
		if err != nil {
			return created, fmt.Errorf("failed to create epic %q: %w", e.Name, err)
		}
		created++

		for _, st := range e.Subtasks {
			subtask := &Subtask{Task: *st.task(), EpicID: epicID}
			if _, err := store.CreateSubtask(subtask); err != nil {
				return created, fmt.Errorf("failed to create subtask %q: %w", st.Name, err)
			}
			created++
		}
	}

	return created, nil
}

func (st SeedTask) task() *Task {
	status, _ := st.status()
	return &Task{Name: st.Name, Description: st.Description, Status: status}
}

// Snapshot captures the store's contents as a seed. It uses the
// non-tracking lookups, so history is left untouched.
func Snapshot(store Store) *Seed {
	seed := &Seed{}

	for _, t := range store.ListTasks() {
		seed.Tasks = append(seed.Tasks, seedTaskFrom(t))
	}

	for _, e := range store.ListEpics() {
		se := SeedEpic{
			ID:          e.ID,
			Name:        e.Name,
			Description: e.Description,
			Status:      e.Status,
		}
		for _, st := range store.EpicSubtasks(e.ID) {
			se.Subtasks = append(se.Subtasks, seedTaskFrom(&st.Task))
		}
		seed.Epics = append(seed.Epics, se)
	}

	return seed
}

func seedTaskFrom(t *Task) SeedTask {
	return SeedTask{ID: t.ID, Name: t.Name, Description: t.Description, Status: t.Status}
}

// Encode writes the seed as YAML
func (sd *Seed) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(sd); err != nil {
		return err
	}
	return enc.Close()
}
