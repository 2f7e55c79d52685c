package parser

import (
	"regexp"
	"strings"

	"github.com/anthropics/witness/internal/fact"
)

var (
	mypyNoteLine  = regexp.MustCompile(`:\s*note:\s*`)
	mypyColonForm = regexp.MustCompile(`^(.+):(\d+)(?::(\d+))?:\s+error:\s+(.+)$`)
	pyrightForm   = regexp.MustCompile(`^(.+):(\d+):(\d+)\s+-\s+error:\s+(.+)$`)
)

func parseMypy(rec Input) (out []fact.Fact) {
	defer func() {
		if recover() != nil {
			out = nil
		}
	}()

	for _, l := range lines(rec.ToolOutput) {
		if mypyNoteLine.MatchString(l) {
			continue
		}
		if m := mypyColonForm.FindStringSubmatch(l); m != nil {
			out = append(out, fact.NewTypeError(m[1], atoiSafe(m[2]), strings.TrimSpace(m[4])))
			continue
		}
		if m := pyrightForm.FindStringSubmatch(l); m != nil {
			out = append(out, fact.NewTypeError(m[1], atoiSafe(m[2]), strings.TrimSpace(m[4])))
		}
	}
	return out
}
