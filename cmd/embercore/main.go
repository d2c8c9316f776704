// Embercore is a deterministic, data-driven progression engine for text
// adventures with combat, crafting, and quests.
// Usage: embercore [--version] [--plain] [--script <file>] [--seed <n>] <game_directory>
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"

	"github.com/nathoo/embercore/cli"
	"github.com/nathoo/embercore/engine"
	"github.com/nathoo/embercore/loader"
	"github.com/nathoo/embercore/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// config holds environment-driven settings. Flags override these.
type config struct {
	SaveDir  string `env:"EMBERCORE_SAVE_DIR"`
	Seed     int64  `env:"EMBERCORE_SEED"`
	LogLevel string `env:"EMBERCORE_LOG_LEVEL" envDefault:"warn"`
	LogFile  string `env:"EMBERCORE_LOG_FILE"`
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading environment: %v\n", err)
		os.Exit(1)
	}

	plain := false
	var gameDir string
	var scriptFile string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("embercore %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--script":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--script requires a file path\n")
				os.Exit(1)
			}
			i++
			scriptFile = args[i]
		case "--seed":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--seed requires a number\n")
				os.Exit(1)
			}
			i++
			seed, err := strconv.ParseInt(args[i], 10, 64)
			if err != nil {
				fmt.Fprintf(os.Stderr, "--seed: %v\n", err)
				os.Exit(1)
			}
			cfg.Seed = seed
		default:
			if gameDir == "" {
				gameDir = args[i]
			}
		}
	}

	if gameDir == "" {
		fmt.Fprintf(os.Stderr, "Usage: embercore [--version] [--plain] [--script <file>] [--seed <n>] <game_directory>\n")
		os.Exit(1)
	}

	log := newLogger(cfg)

	// Load the manifest and Lua world files.
	game, state, err := loader.Load(gameDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading game: %v\n", err)
		os.Exit(1)
	}
	state.RNGSeed = cfg.Seed

	eng := engine.New(game, state, log)

	// Script mode: open file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		fmt.Printf("%s v%s by %s\n\n", game.Title, game.Version, game.Author)
		c := cli.New(eng)
		c.In = f
		c.EchoInput = true
		if cfg.SaveDir != "" {
			c.SaveDir = cfg.SaveDir
		}
		c.Run()
		return
	}

	// Use plain CLI if --plain flag or stdout is not a terminal.
	if plain || !isTerminal() {
		fmt.Printf("%s v%s by %s\n\n", game.Title, game.Version, game.Author)
		c := cli.New(eng)
		if cfg.SaveDir != "" {
			c.SaveDir = cfg.SaveDir
		}
		c.Run()
		return
	}

	if err := tui.Run(eng); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds the logrus logger from config. Without a log file,
// output is discarded so game text stays clean.
func newLogger(cfg config) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot open log file: %v\n", err)
		} else {
			log.SetOutput(f)
			log.SetFormatter(&logrus.JSONFormatter{})
		}
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.WarnLevel
	}
	log.SetLevel(level)

	return log
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
