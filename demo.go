package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"taskboard/commands"
)

// demoScript walks through epic status aggregation and view history
var demoScript = []string{
	"/task Buy groceries",
	"/task Call the bank",
	"/epic Release 1.0",
	"/subtask 3 Write changelog",
	"/subtask 3 Tag release",
	"/epics",
	"/status 4 done",
	"/status 5 in_progress",
	"/subtasks 3",
	"/status 5 done",
	"/epics",
	"/delete 4",
	"/view 3",
	"/view 1",
	"/view 3",
	"/view 2",
	"/history",
	"/status 3 done",
	"/delete 3",
	"/history",
	"/export",
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a scripted walkthrough against an empty board",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := setup()
		if err != nil {
			return err
		}
		return runScript(os.Stdout, cfg.Prompt, demoScript)
	},
}

// runScript echoes and executes each line, stopping at the first unknown
// command or quit
func runScript(w io.Writer, prompt string, script []string) error {
	for _, line := range script {
		fmt.Fprintf(w, "%s%s\n", prompt, line)

		quit, output, err := commands.ExecuteWithOutput(line)
		if err != nil {
			return fmt.Errorf("%s: %w", line, err)
		}
		if output != "" {
			fmt.Fprintln(w, output)
		}
		fmt.Fprintln(w)

		if quit {
			break
		}
	}
	return nil
}
