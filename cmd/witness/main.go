// Command witness is the combined CLI: a single binary offering the pre
// and post pipeline bodies as subcommands (for installs that prefer one
// binary over three), a "brief" projection of the view layer, and an
// optional interactive "repl" mode for browsing a session's brief
// without re-invoking the binary per query.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/anthropics/witness/internal/brief"
	"github.com/anthropics/witness/internal/hookrun"
	"github.com/anthropics/witness/internal/store"
)

const version = "0.1.0"

func main() {
	showVersion := flag.Bool("version", false, "Show version")
	flag.Usage = usage

	flag.Parse()

	if *showVersion {
		fmt.Printf("witness v%s\n", version)
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	switch args[0] {
	case "pre":
		wd, _ := os.Getwd()
		hookrun.RunPre(os.Stdin, os.Stdout, os.Stderr, "", wd)
	case "post":
		wd, _ := os.Getwd()
		hookrun.RunPost(os.Stdin, os.Stderr, "", wd)
	case "brief":
		runBrief(args[1:])
	case "repl":
		runRepl(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "witness: unknown subcommand %q\n\n", args[0])
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `witness v%s - behavioral linter for AI coding agents

Usage: witness <subcommand> [options]

Subcommands:
  pre     run the pre-tool-call pipeline (reads hook payload on stdin)
  post    run the post-tool-call pipeline (reads hook payload on stdin)
  brief   print a one-shot view-layer report for a session
  repl    interactively browse brief reports across sessions

Environment Variables:
  WITNESS_DB       store path (default: .witness/witness.db)
  WITNESS_SESSION  session id (default: "default")

For more info: https://github.com/anthropics/witness
`, version)
}

func runBrief(args []string) {
	fs := flag.NewFlagSet("brief", flag.ExitOnError)
	session := fs.String("session", "default", "session id to report on")
	fs.Parse(args)

	s, err := store.Open(hookrun.StorePath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "witness brief: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	fmt.Print(brief.Session(s, *session))
}
