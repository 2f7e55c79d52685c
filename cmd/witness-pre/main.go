// Command witness-pre is the pre-tool-call pipeline entry point: it reads
// one hook payload from standard input, evaluates the configured rules,
// and writes an Allow/Warn/Block decision to standard output. It always
// exits 0 — the host agent is blocked on this process, and a non-zero
// exit or stray output would corrupt its hook protocol.
package main

import (
	"flag"
	"os"

	"github.com/anthropics/witness/internal/hookrun"
)

func main() {
	session := flag.String("session", "", "override session id (highest precedence)")
	flag.Parse()

	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	hookrun.RunPre(os.Stdin, os.Stdout, os.Stderr, *session, wd)
}
