package commands

import (
	"fmt"
	"os"

	"taskboard/storage"
)

func init() {
	Register(&Command{
		Name:        "/history",
		Description: "List recently viewed items, oldest first",
		Handler: func(args []string) bool {
			items := GetStore().History()
			if len(items) == 0 {
				fmt.Println("Nothing viewed yet. Use /view <id>")
				return false
			}

			fmt.Println("Recently viewed:")
			for i, item := range items {
				t := item.Core()
				fmt.Printf("  %d. %s [%d] %s (%s)\n", i+1, statusMark(t.Status), t.ID, t.Name, kindName(item.Kind()))
			}
			return false
		},
	})

	Register(&Command{
		Name:        "/export",
		Description: "Print every task and epic as YAML",
		Handler: func(args []string) bool {
			if err := storage.Snapshot(GetStore()).Encode(os.Stdout); err != nil {
				fmt.Printf("Error exporting: %v\n", err)
			}
			return false
		},
	})
}
