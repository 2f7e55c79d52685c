package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/anthropics/witness/internal/brief"
	"github.com/anthropics/witness/internal/hookrun"
	"github.com/anthropics/witness/internal/store"
)

// runRepl opens the store once and lets the operator type session ids (or
// "reload" / "exit") to re-print a brief, instead of re-invoking the
// binary per query. It is a thin convenience layer over the same
// brief.Session call "witness brief" makes.
func runRepl(args []string) {
	s, err := store.Open(hookrun.StorePath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "witness repl: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	current := "default"
	if len(args) > 0 {
		current = args[0]
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[36mwitness>\033[0m ",
		HistoryFile:     ".witness/repl_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "witness repl: readline: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	fmt.Printf("witness repl — session %q. Type a session id to switch, \"exit\" to quit.\n", current)
	fmt.Print(brief.Session(s, current))

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			return
		}
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case line == "exit" || line == "quit":
			return
		case line == "reload":
			fmt.Print(brief.Session(s, current))
		default:
			current = line
			fmt.Print(brief.Session(s, current))
		}
	}
}
