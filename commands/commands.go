package commands

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"taskboard/llm"
	"taskboard/storage"
)

// ParamType is the JSON schema type advertised for a parameter
type ParamType string

const (
	ParamTypeString ParamType = "string"
)

// Param describes one positional argument. Params are listed in the order
// the handler reads them; the last one receives the rest of the line.
type Param struct {
	Name        string
	Type        ParamType
	Description string
	Required    bool
}

// Command is a slash command on the board
type Command struct {
	Name        string
	Description string
	Handler     func(args []string) bool // true ends the session
	Params      []Param
	Hidden      bool // session commands the assistant may not call
	Destructive bool // assistant calls need the user's approval
}

var (
	registry  = make(map[string]*Command)
	store     storage.Store
	llmClient llm.Client
	confirm   func(prompt string) bool
)

// Register adds cmd under its lower-cased name, replacing any previous one
func Register(cmd *Command) {
	registry[strings.ToLower(cmd.Name)] = cmd
}

// SetStore installs the board the commands operate on
func SetStore(s storage.Store) {
	store = s
}

func GetStore() storage.Store {
	return store
}

// SetLLMClient installs the assistant used by /chat. Nil disables chat.
func SetLLMClient(c llm.Client) {
	llmClient = c
}

func GetLLMClient() llm.Client {
	return llmClient
}

// SetConfirmFunc sets the callback that approves destructive commands
// requested by the assistant. Without one, such requests are refused.
func SetConfirmFunc(fn func(prompt string) bool) {
	confirm = fn
}

// Execute parses a "/name arg..." line and runs the handler. The bool is the
// handler's quit signal.
func Execute(input string) (bool, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return false, fmt.Errorf("empty command")
	}

	name := strings.ToLower(fields[0])
	cmd, ok := registry[name]
	if !ok {
		return false, fmt.Errorf("unknown command: %s", name)
	}

	logger.Debug("executing command", "command", name, "args", fields[1:])
	return cmd.Handler(fields[1:]), nil
}

// ExecuteWithOutput is Execute with the handler's stdout captured
func ExecuteWithOutput(input string) (quit bool, output string, err error) {
	output = captureOutput(func() {
		quit, err = Execute(input)
	})
	return quit, output, err
}

// List returns every registered command sorted by name
func List() []*Command {
	names := slices.Sorted(maps.Keys(registry))
	cmds := make([]*Command, 0, len(names))
	for _, name := range names {
		cmds = append(cmds, registry[name])
	}
	return cmds
}

// GetByName finds a command; the leading slash is optional
func GetByName(name string) *Command {
	name = strings.ToLower(name)
	if !strings.HasPrefix(name, "/") {
		name = "/" + name
	}
	return registry[name]
}

// GenerateToolDefinitions exposes every visible command to the assistant,
// one tool per command, sorted by name
func GenerateToolDefinitions() []*llm.Tool {
	var tools []*llm.Tool
	for _, cmd := range List() {
		if !cmd.Hidden {
			tools = append(tools, toolFor(cmd))
		}
	}
	return tools
}

func toolFor(cmd *Command) *llm.Tool {
	tool := &llm.Tool{
		Name:        strings.TrimPrefix(cmd.Name, "/"),
		Description: cmd.Description,
	}
	if len(cmd.Params) == 0 {
		return tool
	}

	tool.Parameters = &llm.ToolParameters{
		Type:       "object",
		Properties: make(map[string]*llm.ToolProperty, len(cmd.Params)),
	}
	for _, p := range cmd.Params {
		tool.Parameters.Properties[p.Name] = &llm.ToolProperty{
			Type:        string(p.Type),
			Description: p.Description,
		}
		if p.Required {
			tool.Parameters.Required = append(tool.Parameters.Required, p.Name)
		}
	}
	return tool
}
