package parser

import (
	"regexp"
	"strings"

	"github.com/anthropics/witness/internal/fact"
)

var (
	bunPassLine = regexp.MustCompile(`^\(pass\)\s+(.+?)(?:\s+\[[\d.]+m?s\])?$`)
	bunFailLine = regexp.MustCompile(`^\(fail\)\s+(.+?)(?:\s+\[[\d.]+m?s\])?$`)
	bunErrLine  = regexp.MustCompile(`^\s*(?:error:|.*Error:)\s*(.+)$`)
)

// parseBunTest covers bun's own test runner, which has no structured
// report mode in the wild — only the "(pass) NAME" / "(fail) NAME" text
// form.
func parseBunTest(rec Input) (out []fact.Fact) {
	defer func() {
		if recover() != nil {
			out = nil
		}
	}()

	ls := lines(rec.ToolOutput)
	for i, l := range ls {
		if m := bunPassLine.FindStringSubmatch(l); m != nil {
			out = append(out, fact.NewTestResult(strings.TrimSpace(m[1]), fact.TestPass, ""))
			continue
		}
		if m := bunFailLine.FindStringSubmatch(l); m != nil {
			msg := ""
			for j := i + 1; j < len(ls) && j <= i+5; j++ {
				if em := bunErrLine.FindStringSubmatch(ls[j]); em != nil {
					msg = strings.TrimSpace(em[1])
					break
				}
			}
			out = append(out, fact.NewTestResult(strings.TrimSpace(m[1]), fact.TestFail, msg))
		}
	}
	return out
}
