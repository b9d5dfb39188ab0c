// Command tally is a line-oriented front end for the calculator engine.
//
// A line that is a single operator (+ - * / ^) arms a chained binary
// operation, as on a keypad; any other line is typed into the display
// character by character and evaluated, so "2+3*4" uses full operator
// precedence while "2" / "+" / "3" across three lines chains left to right.
//
// Colon commands inspect and mutate the collaborating stores:
//
//	:history        print past evaluations, newest first
//	:clear-history  drop all history entries
//	:settings       print the feature toggles
//	:toggle <key>   flip one toggle (sound, vibration, history, theme)
//	:clear          reset the calculator state
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/mattn/go-isatty"

	"github.com/gophersatwork/tally"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("tally: ")

	configPath := flag.String("config", defaultConfigPath(), "path to the YAML config file")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeStore()

	history := tally.OpenHistory(store)
	settings := tally.OpenSettings(store)
	engine := tally.New(
		tally.WithHistory(history),
		tally.WithSettings(settings),
	)

	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())

	scanner := bufio.NewScanner(os.Stdin)
	for {
		if interactive {
			fmt.Print("> ")
		}
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "quit" || line == "exit":
			return
		case strings.HasPrefix(line, ":"):
			runCommand(engine, history, settings, line)
			continue
		}

		feedLine(engine, line)

		state := engine.State()
		if state.Preview != "" {
			fmt.Println(state.Preview)
		}
		fmt.Println(tally.Format(state.Display))
	}
	if err := scanner.Err(); err != nil {
		log.Fatal(err)
	}
}

// defaultConfigPath returns the per-user config file location.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "tally.yaml"
	}
	return filepath.Join(home, ".tally", "config.yaml")
}

// openStore opens the configured persistence backend and returns it with its
// cleanup function.
func openStore(cfg Config) (tally.Store, func(), error) {
	if cfg.Backend == "bolt" {
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		store, err := tally.OpenBoltStore(filepath.Join(cfg.DataDir, "tally.db"))
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	}

	store, err := tally.NewFileStore(cfg.DataDir)
	if err != nil {
		return nil, nil, err
	}
	return store, func() {}, nil
}

// feedLine replays one input line against the engine. A single operator
// symbol arms a chained binary operation; anything else is fed keystroke by
// keystroke and evaluated at the end of the line.
func feedLine(engine *tally.Engine, line string) {
	runes := []rune(line)
	if len(runes) == 1 {
		if op, ok := tally.ParseOperator(runes[0]); ok {
			engine.InputOperator(op)
			return
		}
		if runes[0] == '=' {
			engine.Evaluate()
			return
		}
	}

	feedExpression(engine, line)
	engine.Evaluate()
}

// feedExpression types a line into the display: digits and points as digit
// keystrokes, names as functions or constants, parentheses and operator
// characters as expression tokens. Unrecognized characters are ignored.
func feedExpression(engine *tally.Engine, line string) {
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
		case r >= '0' && r <= '9' || r == '.':
			engine.InputDigit(string(r))
		case r == '=':
			engine.Evaluate()
		case r == '!':
			engine.Factorial()
		case r == '%':
			engine.Percent()
		case r == '(' || r == ')':
			engine.InputParen(string(r))
		case unicode.IsLetter(r):
			start := i
			for i+1 < len(runes) && unicode.IsLetter(runes[i+1]) {
				i++
			}
			name := string(runes[start : i+1])
			switch name {
			case "pi", "π", "e":
				engine.InputConstant(name)
			default:
				engine.InputFunction(name)
				// The function token already carries its opening
				// parenthesis; a typed one is consumed with it.
				if i+1 < len(runes) && runes[i+1] == '(' {
					i++
				}
			}
		case r == '*' && i+1 < len(runes) && runes[i+1] == '*':
			engine.InputToken("**")
			i++
		default:
			if _, ok := tally.ParseOperator(r); ok {
				engine.InputToken(string(r))
			}
		}
	}
}

// runCommand handles the colon commands.
func runCommand(engine *tally.Engine, history *tally.History, settings *tally.Settings, line string) {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":history":
		entries := history.Entries()
		if len(entries) == 0 {
			fmt.Println("history is empty")
			return
		}
		for _, entry := range entries {
			fmt.Printf("%s = %s\n", entry.Expression, entry.Result)
		}
	case ":clear-history":
		if err := history.Clear(); err != nil {
			log.Print(err)
		}
	case ":settings":
		all := settings.All()
		keys := make([]string, 0, len(all))
		for key := range all {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Printf("%s=%v\n", key, all[key])
		}
	case ":toggle":
		if len(fields) != 2 {
			fmt.Println("usage: :toggle <key>")
			return
		}
		if err := engine.ToggleSetting(fields[1]); err != nil {
			fmt.Println(err)
		}
	case ":clear":
		engine.Clear()
	default:
		fmt.Printf("unknown command %s\n", fields[0])
	}
}
