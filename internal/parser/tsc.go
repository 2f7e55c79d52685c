package parser

import (
	"regexp"
	"strings"

	"github.com/anthropics/witness/internal/fact"
)

var (
	tscParenForm  = regexp.MustCompile(`^(.+)\((\d+),(\d+)\):\s+error\s+(TS\d+):\s+(.+)$`)
	tscColonForm  = regexp.MustCompile(`^(.+):(\d+):(\d+)\s+-\s+error\s+(TS\d+):\s+(.+)$`)
)

func parseTSC(rec Input) (out []fact.Fact) {
	defer func() {
		if recover() != nil {
			out = nil
		}
	}()

	for _, l := range lines(rec.ToolOutput) {
		if m := tscParenForm.FindStringSubmatch(l); m != nil {
			out = append(out, fact.NewTypeError(m[1], atoiSafe(m[2]), m[4]+": "+strings.TrimSpace(m[5])))
			continue
		}
		if m := tscColonForm.FindStringSubmatch(l); m != nil {
			out = append(out, fact.NewTypeError(m[1], atoiSafe(m[2]), m[4]+": "+strings.TrimSpace(m[5])))
		}
	}
	return out
}
