package commands

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"taskboard/llm"
)

// chatHistory stores the conversation history for the /chat command
var chatHistory []*llm.Message

// Session usage tracking
var (
	sessionInputTokens  int64
	sessionOutputTokens int64
	sessionCost         float64
	sessionPromptCount  int
)

// maxCommandContextEntries limits how many command context entries to keep
const maxCommandContextEntries = 10

// AddCommandContext adds a direct command and its output to the chat history
// so the LLM has context about recent user actions.
func AddCommandContext(command string, output string) {
	contextMsg := fmt.Sprintf("User ran: %s\nOutput: %s", command, output)
	chatHistory = append(chatHistory, &llm.Message{
		Role:    llm.RoleSystem,
		Content: contextMsg,
	})

	// Trim old context entries to avoid unbounded growth
	// Keep only the most recent command context entries
	trimCommandContext()
}

// trimCommandContext removes old command context entries if there are too many
func trimCommandContext() {
	// Count system messages that are command context (not the initial system prompt)
	var contextCount int
	for _, msg := range chatHistory {
		if msg.Role == llm.RoleSystem && strings.HasPrefix(msg.Content, "User ran:") {
			contextCount++
		}
	}

	// Remove oldest context entries if over limit
	if contextCount > maxCommandContextEntries {
		toRemove := contextCount - maxCommandContextEntries
		var newHistory []*llm.Message
		for _, msg := range chatHistory {
			if toRemove > 0 && msg.Role == llm.RoleSystem && strings.HasPrefix(msg.Content, "User ran:") {
				toRemove--
				continue
			}
			newHistory = append(newHistory, msg)
		}
		chatHistory = newHistory
	}
}

func init() {
	Register(&Command{
		Name:        "/clearchat",
		Description: "Clear the chat conversation history",
		Hidden:      true,
		Handler: func(args []string) bool {
			chatHistory = nil
			fmt.Println("Chat history cleared.")
			return false
		},
	})

	Register(&Command{
		Name:        "/usage",
		Description: "Show session token usage and cost statistics",
		Hidden:      true,
		Handler: func(args []string) bool {
			if sessionPromptCount == 0 {
				fmt.Println("No chat usage in this session yet.")
				return false
			}

			fmt.Println("Session Usage Statistics:")
			fmt.Printf("  Prompts:       %d\n", sessionPromptCount)
			fmt.Printf("  Input tokens:  %d\n", sessionInputTokens)
			fmt.Printf("  Output tokens: %d\n", sessionOutputTokens)
			fmt.Printf("  Total tokens:  %d\n", sessionInputTokens+sessionOutputTokens)
			if sessionCost > 0 {
				if sessionCost < 0.01 {
					fmt.Printf("  Total cost:    $%.6f\n", sessionCost)
				} else {
					fmt.Printf("  Total cost:    $%.4f\n", sessionCost)
				}
			}
			return false
		},
	})

	Register(&Command{
		Name:        "/chat",
		Description: "Chat with the AI assistant",
		Hidden:      true, // Exclude from tool generation
		Params: []Param{
			{Name: "message", Type: ParamTypeString, Description: "The message to send to the assistant", Required: true},
		},
		Handler: func(args []string) bool {
			if len(args) == 0 {
				fmt.Println("Usage: /chat <message>")
				return false
			}

			client := GetLLMClient()
			if client == nil {
				fmt.Println("Error: LLM client not available. Set GEMINI_API_KEY in the environment or a .env file.")
				return false
			}

			message := strings.Join(args, " ")
			tools := GenerateToolDefinitions()

			ctx := context.Background()
			response, newHistory, err := client.ChatWithTools(ctx, message, chatHistory, tools, executeTool)
			if err != nil {
				logger.Debug("chat failed", "error", err, "history", len(newHistory))
				fmt.Printf("Error: %v\n", err)
				return false
			}

			// Update conversation history
			chatHistory = newHistory

			fmt.Println(response.Text)

			// Display usage statistics
			printUsageStats(response)
			return false
		},
	})
}

// printUsageStats displays token usage and cost information and updates session totals
func printUsageStats(response *llm.Response) {
	// Update session totals
	sessionInputTokens += response.InputTokens
	sessionOutputTokens += response.OutputTokens
	sessionCost += response.Cost
	sessionPromptCount++

	// Only display if we have token data
	if response.TokensUsed == 0 && response.InputTokens == 0 && response.OutputTokens == 0 {
		return
	}

	fmt.Printf("\n[Tokens: %d in / %d out", response.InputTokens, response.OutputTokens)

	// Display cost if available
	if response.Cost > 0 {
		// Format cost appropriately based on magnitude
		if response.Cost < 0.01 {
			fmt.Printf(" | Cost: $%.6f", response.Cost)
		} else {
			fmt.Printf(" | Cost: $%.4f", response.Cost)
		}
	}

	fmt.Println("]")
}

// executeTool runs the command behind a tool call and returns its output.
// Destructive commands only run when the confirm callback approves them.
func executeTool(name string, fnArgs map[string]any) string {
	cmd := GetByName(name)
	if cmd == nil || cmd.Hidden {
		return fmt.Sprintf("Error: unknown tool %q", name)
	}

	// Convert function arguments to command args slice
	cmdArgs := convertArgsToSlice(cmd, fnArgs)

	// Build the full command string
	cmdStr := cmd.Name
	if len(cmdArgs) > 0 {
		cmdStr += " " + strings.Join(cmdArgs, " ")
	}

	if cmd.Destructive {
		if confirm == nil || !confirm(fmt.Sprintf("Assistant wants to run: %s. Allow? [y/N] ", cmdStr)) {
			logger.Debug("destructive tool call refused", "command", cmdStr)
			return "The user declined to run " + cmdStr
		}
	}

	logger.Debug("tool call", "tool", name, "args", fnArgs, "command", cmdStr)

	// Capture stdout while executing the command
	output := captureOutput(func() {
		if _, err := Execute(cmdStr); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	})

	logger.Debug("tool result", "tool", name, "output", output)
	return output
}

// convertArgsToSlice converts function call arguments to a string slice
// in the order the command declares its Params
func convertArgsToSlice(cmd *Command, args map[string]any) []string {
	var result []string
	for _, p := range cmd.Params {
		val, ok := args[p.Name]
		if !ok {
			continue
		}
		str := strings.TrimSpace(fmt.Sprintf("%v", val))
		if str == "" {
			continue
		}
		result = append(result, str)
	}
	return result
}

// captureOutput captures stdout during execution of a function
func captureOutput(fn func()) string {
	// Save original stdout
	oldStdout := os.Stdout

	// Create a pipe
	r, w, err := os.Pipe()
	if err != nil {
		return fmt.Sprintf("Error capturing output: %v", err)
	}

	// Redirect stdout to the pipe
	os.Stdout = w

	// Drain the pipe while fn runs so large output cannot block it
	var buf bytes.Buffer
	done := make(chan struct{})
	go func() {
		io.Copy(&buf, r)
		close(done)
	}()

	// Run the function
	fn()

	// Close the write end of the pipe and restore stdout
	w.Close()
	os.Stdout = oldStdout
	<-done
	r.Close()

	return strings.TrimSpace(buf.String())
}
