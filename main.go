package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"taskboard/commands"
	"taskboard/config"
	"taskboard/llm"
	"taskboard/storage"
)

var (
	configPath string
	seedPath   string
	debug      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "taskboard",
		Short: "Track tasks, epics and subtasks from an interactive prompt",
		Long: `taskboard keeps tasks, epics and subtasks in memory for the session.

Epic status follows its subtasks. /view records an item in the recently
viewed list shown by /history. Lines that do not start with / go to the
assistant when GEMINI_API_KEY is set.`,
		RunE:          runREPL,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default ~/.taskboard/config.yaml then ./.taskboard.yaml)")
	rootCmd.PersistentFlags().StringVar(&seedPath, "seed", "", "YAML file of tasks and epics to load at startup")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(demoCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// setup loads .env and config, turns on debug logging if asked, and
// installs an empty store for the commands
func setup() (*config.Config, *storage.MemoryStore, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, sources, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if debug {
		cfg.Debug = true
	}
	commands.SetDebugMode(cfg.Debug)
	commands.Logger().Debug("config loaded", "sources", sources, "model", cfg.Model)

	store := storage.NewMemoryStore()
	commands.SetStore(store)
	return cfg, store, nil
}

func runREPL(cmd *cobra.Command, args []string) error {
	cfg, store, err := setup()
	if err != nil {
		return err
	}

	if seedPath != "" {
		cfg.SeedFile = seedPath
	}
	if cfg.SeedFile != "" {
		seed, err := storage.LoadSeedFile(cfg.SeedFile)
		if err != nil {
			return fmt.Errorf("failed to load seed: %w", err)
		}
		n, err := seed.Apply(store)
		if err != nil {
			return fmt.Errorf("failed to apply seed: %w", err)
		}
		fmt.Printf("Loaded %d items from %s\n", n, cfg.SeedFile)
	}

	client, err := llm.NewGeminiClient(cmd.Context(), cfg.LLMConfig())
	switch {
	case errors.Is(err, llm.ErrMissingAPIKey):
		fmt.Println("GEMINI_API_KEY not set; chat is disabled.")
	case err != nil:
		return fmt.Errorf("failed to create LLM client: %w", err)
	default:
		commands.SetLLMClient(client)
		defer client.Close()
	}

	if cfg.HistoryFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.HistoryFile), 0o755); err != nil {
			commands.Logger().Debug("history file disabled", "error", err)
			cfg.HistoryFile = ""
		}
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          cfg.Prompt,
		HistoryFile:     cfg.HistoryFile,
		AutoComplete:    completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "/quit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	commands.SetConfirmFunc(func(prompt string) bool {
		rl.SetPrompt(prompt)
		defer rl.SetPrompt(cfg.Prompt)

		line, err := rl.Readline()
		if err != nil {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	})

	fmt.Println("Welcome to taskboard! Type /help for available commands.")

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				break
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		if handleInput(input) {
			break // quit signal
		}
	}

	return nil
}

// handleInput runs one line of input and reports whether to quit
func handleInput(input string) bool {
	if !strings.HasPrefix(input, "/") {
		input = "/chat " + input
	}

	name := strings.Fields(input)[0]
	if cmd := commands.GetByName(name); cmd != nil && cmd.Hidden {
		// Chat and session commands print directly
		quit, err := commands.Execute(input)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
		}
		return quit
	}

	quit, output, err := commands.ExecuteWithOutput(input)
	if err != nil {
		fmt.Printf("%v. Type /help for available commands.\n", err)
		return false
	}
	if output != "" {
		fmt.Println(output)
	}

	// Give the assistant context about what the user did directly
	commands.AddCommandContext(input, output)
	return quit
}

func completer() *readline.PrefixCompleter {
	cmds := commands.List()
	items := make([]readline.PrefixCompleterInterface, 0, len(cmds))
	for _, c := range cmds {
		if c.Name == "/clear" {
			items = append(items, readline.PcItem(c.Name,
				readline.PcItem("tasks"),
				readline.PcItem("epics"),
				readline.PcItem("subtasks"),
			))
			continue
		}
		items = append(items, readline.PcItem(c.Name))
	}
	return readline.NewPrefixCompleter(items...)
}
