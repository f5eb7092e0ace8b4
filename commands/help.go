package commands

import "fmt"

func init() {
	Register(&Command{
		Name:        "/help",
		Description: "Show available commands",
		Hidden:      true,
		Handler: func(args []string) bool {
			fmt.Println("Available commands:")

			for _, cmd := range List() {
				fmt.Printf("  %-12s - %s\n", cmd.Name, cmd.Description)
			}

			fmt.Println("\nAnything not starting with / is sent to the assistant.")

			return false
		},
	})
}
