package llm

import (
	"context"
	"os"
	"slices"
	"strings"

	"google.golang.org/genai"
)

// maxToolRounds bounds the tool calling loop of a single ChatWithTools call
const maxToolRounds = 10

type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a client using GEMINI_API_KEY. A nil config means DefaultConfig.
func NewGeminiClient(ctx context.Context, config *Config) (*GeminiClient, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	if config == nil {
		config = DefaultConfig()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	return &GeminiClient{client: client, config: config}, nil
}

func (g *GeminiClient) Chat(ctx context.Context, prompt string) (*Response, error) {
	return g.ChatWithConfig(ctx, prompt, g.config)
}

func (g *GeminiClient) ChatWithConfig(ctx context.Context, prompt string, config *Config) (*Response, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}

	if config == nil {
		config = g.config
	}

	genConfig := &genai.GenerateContentConfig{
		MaxOutputTokens: config.MaxTokens,
		Temperature:     genai.Ptr(config.Temperature),
	}

	if config.System != "" {
		genConfig.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: config.System}},
		}
	}

	result, err := g.client.Models.GenerateContent(ctx, config.Model, genai.Text(prompt), genConfig)
	if err != nil {
		return nil, err
	}

	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return nil, ErrNoResponse
	}

	var text string
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}

	response := &Response{
		Text:         text,
		FinishReason: string(result.Candidates[0].FinishReason),
	}
	addUsage(response, result.UsageMetadata)
	return response, nil
}

// ChatWithTools sends message after history and runs requested tools through executor
// until the model answers with text. It returns the extended history.
func (g *GeminiClient) ChatWithTools(ctx context.Context, message string, history []*Message, tools []*Tool, executor ToolExecutor) (*Response, []*Message, error) {
	if strings.TrimSpace(message) == "" {
		return nil, history, ErrEmptyPrompt
	}

	system := g.config.System
	if system == "" {
		system = getToolSystemPrompt()
	}

	genConfig := &genai.GenerateContentConfig{
		MaxOutputTokens: g.config.MaxTokens,
		Temperature:     genai.Ptr(g.config.Temperature),
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		},
		Tools: []*genai.Tool{
			{FunctionDeclarations: toFunctionDeclarations(tools)},
		},
	}

	// Build conversation contents from history plus new message
	contents := toContents(history)
	contents = append(contents, genai.NewContentFromText(message, genai.RoleUser))

	newHistory := slices.Clone(history)
	newHistory = append(newHistory, &Message{Role: RoleUser, Content: message})

	response := &Response{}

	for round := 0; round < maxToolRounds; round++ {
		result, err := g.client.Models.GenerateContent(ctx, g.config.Model, contents, genConfig)
		if err != nil {
			return nil, newHistory, err
		}
		addUsage(response, result.UsageMetadata)

		if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
			return nil, newHistory, ErrNoResponse
		}

		candidate := result.Candidates[0]
		contents = append(contents, candidate.Content)

		var functionCalls []*genai.FunctionCall
		var textParts []string
		for _, part := range candidate.Content.Parts {
			if part.FunctionCall != nil {
				functionCalls = append(functionCalls, part.FunctionCall)
			}
			if part.Text != "" {
				textParts = append(textParts, part.Text)
			}
		}

		assistantMsg := &Message{Role: RoleAssistant, Content: strings.Join(textParts, "")}

		// If no function calls, return the text response
		if len(functionCalls) == 0 {
			newHistory = append(newHistory, assistantMsg)
			response.Text = assistantMsg.Content
			response.FinishReason = string(candidate.FinishReason)
			return response, newHistory, nil
		}

		for _, fc := range functionCalls {
			assistantMsg.ToolCalls = append(assistantMsg.ToolCalls, ToolCall{ID: fc.ID, Name: fc.Name, Arguments: fc.Args})
		}
		newHistory = append(newHistory, assistantMsg)

		var functionResponses []*genai.Part
		for _, fc := range functionCalls {
			output := executor(fc.Name, fc.Args)
			functionResponses = append(functionResponses, &genai.Part{
				FunctionResponse: &genai.FunctionResponse{
					ID:       fc.ID,
					Name:     fc.Name,
					Response: map[string]any{"result": output},
				},
			})
			newHistory = append(newHistory, &Message{Role: RoleTool, Name: fc.Name, ToolCallID: fc.ID, Content: output})
		}

		contents = append(contents, &genai.Content{
			Role:  string(genai.RoleUser),
			Parts: functionResponses,
		})
	}

	return nil, newHistory, ErrTooManyToolCalls
}

func (g *GeminiClient) Close() error {
	// The genai client holds no resources that need releasing
	return nil
}

func addUsage(r *Response, usage *genai.GenerateContentResponseUsageMetadata) {
	if usage == nil {
		return
	}
	r.InputTokens += int64(usage.PromptTokenCount)
	r.OutputTokens += int64(usage.CandidatesTokenCount)
	r.TokensUsed += int64(usage.TotalTokenCount)
}

// toFunctionDeclarations converts provider-neutral tools to Gemini declarations
func toFunctionDeclarations(tools []*Tool) []*genai.FunctionDeclaration {
	decls := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, t := range tools {
		decl := &genai.FunctionDeclaration{
			Name:        t.Name,
			Description: t.Description,
		}
		if t.Parameters != nil {
			schema := &genai.Schema{
				Type:       genai.TypeObject,
				Properties: make(map[string]*genai.Schema, len(t.Parameters.Properties)),
				Required:   t.Parameters.Required,
			}
			for name, p := range t.Parameters.Properties {
				schema.Properties[name] = &genai.Schema{
					Type:        genai.TypeString,
					Description: p.Description,
				}
			}
			decl.Parameters = schema
		}
		decls = append(decls, decl)
	}
	return decls
}

// toContents converts stored history into Gemini contents. Command context
// (system messages) is replayed as user text; consecutive tool results are
// merged into one user turn.
func toContents(history []*Message) []*genai.Content {
	var contents []*genai.Content
	var pendingTool *genai.Content

	for _, msg := range history {
		if msg.Role == RoleTool {
			if pendingTool == nil {
				pendingTool = &genai.Content{Role: string(genai.RoleUser)}
				contents = append(contents, pendingTool)
			}
			pendingTool.Parts = append(pendingTool.Parts, &genai.Part{
				FunctionResponse: &genai.FunctionResponse{
					ID:       msg.ToolCallID,
					Name:     msg.Name,
					Response: map[string]any{"result": msg.Content},
				},
			})
			continue
		}
		pendingTool = nil

		switch msg.Role {
		case RoleAssistant:
			content := &genai.Content{Role: string(genai.RoleModel)}
			if msg.Content != "" {
				content.Parts = append(content.Parts, &genai.Part{Text: msg.Content})
			}
			for _, tc := range msg.ToolCalls {
				content.Parts = append(content.Parts, &genai.Part{
					FunctionCall: &genai.FunctionCall{ID: tc.ID, Name: tc.Name, Args: tc.Arguments},
				})
			}
			if len(content.Parts) > 0 {
				contents = append(contents, content)
			}
		default:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleUser))
		}
	}

	return contents
}

func getToolSystemPrompt() string {
	return `You are a helpful assistant for a task board that holds tasks, epics and subtasks.

IMPORTANT RULES:
1. Every item has a numeric ID. When a user refers to an item by NAME, FIRST call "tasks", "epics" or "subtasks" to find its ID.
2. NEVER ask the user for an ID. Always look it up using available tools.
3. Epic status is computed from its subtasks. Never try to set it; change the subtasks instead.
4. Use "view" when the user wants details about one item; it also records the item in the recently viewed list.

EXAMPLES:
- "what is left in the release epic" -> call epics, find its ID, call subtasks with that ID
- "mark the changelog done" -> find the subtask ID, then call status with "done"`
}
