package parser

import (
	"strconv"
	"strings"
)

// atoiSafe parses n as a base-10 integer, returning 0 on failure — used
// where a regex already constrains the capture to digits but a defensive
// fallback costs nothing.
func atoiSafe(n string) int {
	v, err := strconv.Atoi(n)
	if err != nil {
		return 0
	}
	return v
}

// truncate caps a failure message at n bytes, the way the teacher's git
// diff summaries get capped before being embedded in a commit message.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// lines splits tool output into its constituent lines without keeping
// trailing carriage returns, mirroring the line-walk style used throughout
// the teacher's git log/diff scanning.
func lines(s string) []string {
	raw := strings.Split(s, "\n")
	out := make([]string, len(raw))
	for i, l := range raw {
		out[i] = strings.TrimRight(l, "\r")
	}
	return out
}

// looksStructured reports whether s, once leading whitespace is trimmed,
// begins with a JSON object or array delimiter — the router's cue to try a
// structured parse before falling back to textual pattern matching.
func looksStructured(s string) bool {
	t := strings.TrimSpace(s)
	return strings.HasPrefix(t, "{") || strings.HasPrefix(t, "[")
}
