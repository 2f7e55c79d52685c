package parser

import (
	"regexp"
	"strings"

	"github.com/anthropics/witness/internal/fact"
)

var (
	goFailHeader   = regexp.MustCompile(`^--- FAIL: (\S+)`)
	goResultLine   = regexp.MustCompile(`^--- (PASS|FAIL|SKIP): (\S+)`)
	goNextMarkerRE = regexp.MustCompile(`^(--- (PASS|FAIL|SKIP):|=== RUN|PASS$|FAIL$|ok\s|FAIL\s)`)
)

var goOutcomeMap = map[string]fact.TestOutcome{
	"PASS": fact.TestPass, "FAIL": fact.TestFail, "SKIP": fact.TestSkip,
}

// parseGoTest handles `go test -v` output: the first pass collects each
// failing test's indented detail block, the second emits an outcome for
// every --- PASS/FAIL/SKIP line, joining failure messages from the first
// pass.
func parseGoTest(rec Input) (out []fact.Fact) {
	defer func() {
		if recover() != nil {
			out = nil
		}
	}()

	ls := lines(rec.ToolOutput)
	messages := map[string]string{}

	for i, l := range ls {
		m := goFailHeader.FindStringSubmatch(l)
		if m == nil {
			continue
		}
		name := m[1]
		var detail []string
		for j := i + 1; j < len(ls); j++ {
			if goNextMarkerRE.MatchString(ls[j]) {
				break
			}
			detail = append(detail, strings.TrimSpace(ls[j]))
		}
		messages[name] = truncate(strings.TrimSpace(strings.Join(detail, " ")), 500)
	}

	for _, l := range ls {
		m := goResultLine.FindStringSubmatch(l)
		if m == nil {
			continue
		}
		outcome := goOutcomeMap[m[1]]
		name := m[2]
		msg := ""
		if outcome == fact.TestFail {
			msg = messages[name]
		}
		out = append(out, fact.NewTestResult(name, outcome, msg))
	}
	return out
}
