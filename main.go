package main

import (
	"fmt"
	"log/slog"
	"os"

	app "github.com/rocketscienceinc/tictactoe-viewer/internal"
	"github.com/rocketscienceinc/tictactoe-viewer/internal/config"
)

const defaultConfigPath = "config.yml"

func main() {
	os.Exit(run())
}

// run returns the exit code, so deferred cleanup in RunApp always completes first.
func run() (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "viewer stopped: %v\n", r)
			code = 1
		}
	}()

	conf := config.MustLoad(configPath())
	logger := newLogger(conf.LogLevel)

	if err := app.RunApp(logger, conf); err != nil {
		logger.Error("simulation run failed", "error", err)
		return 1
	}

	return 0
}

// configPath is CONFIG_PATH, or config.yml in the working directory.
func configPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}

	return defaultConfigPath
}

// newLogger writes JSON to stderr; stdout is reserved for the board.
func newLogger(levelName string) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelName)); err != nil {
		level = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
