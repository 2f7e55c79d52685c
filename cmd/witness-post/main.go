// Command witness-post is the post-tool-call pipeline entry point: it
// reads one hook payload (now carrying tool_output) from standard input,
// records the tool call and whatever facts its router-selected parser
// extracts, and always exits 0.
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
	hookrun.RunPost(os.Stdin, os.Stderr, *session, wd)
}
