package llm

// Message roles used in conversation history
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
	RoleSystem    = "system"
)

type Response struct {
	Text         string
	FinishReason string
	TokensUsed   int64
	InputTokens  int64
	OutputTokens int64
	Cost         float64
}

type Config struct {
	Model       string
	MaxTokens   int32
	Temperature float32
	System      string
}

func DefaultConfig() *Config {
	return &Config{
		Model:       "gemini-2.5-flash",
		MaxTokens:   8192,
		Temperature: 0.7,
		System:      "",
	}
}

// Message is one entry of a conversation, independent of the provider
type Message struct {
	Role       string
	Content    string
	ToolCalls  []ToolCall // set on assistant messages that request tools
	ToolCallID string     // set on tool messages
	Name       string     // tool name on tool messages
}

// ToolCall is a function invocation requested by the model
type ToolCall struct {
	ID        string
	Name      string
	Arguments map[string]any
}

// Tool describes a function the model may call
type Tool struct {
	Name        string
	Description string
	Parameters  *ToolParameters
}

// ToolParameters is a JSON-schema style object description
type ToolParameters struct {
	Type       string
	Properties map[string]*ToolProperty
	Required   []string
}

type ToolProperty struct {
	Type        string
	Description string
}
