package commands

import (
	"fmt"
	"log/slog"
	"os"
)

var (
	debugMode bool
	logLevel  = new(slog.LevelVar)
	logger    = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
)

func init() {
	Register(&Command{
		Name:        "/debug",
		Description: "Toggle debug logging",
		Hidden:      true,
		Handler: func(args []string) bool {
			SetDebugMode(!debugMode)
			if debugMode {
				fmt.Println("Debug mode: ON")
			} else {
				fmt.Println("Debug mode: OFF")
			}
			return false
		},
	})
}

// SetDebugMode turns debug logging on or off
func SetDebugMode(on bool) {
	debugMode = on
	if on {
		logLevel.Set(slog.LevelDebug)
	} else {
		logLevel.Set(slog.LevelInfo)
	}
}

// IsDebugMode returns whether debug mode is enabled
func IsDebugMode() bool {
	return debugMode
}

// Logger returns the logger shared by the command layer. Debug records
// are only emitted while debug mode is on.
func Logger() *slog.Logger {
	return logger
}
