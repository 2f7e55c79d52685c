package parser

import (
	"regexp"
	"strings"

	"github.com/anthropics/witness/internal/fact"
)

var (
	cargoFailuresBanner = regexp.MustCompile(`^failures:\s*$`)
	cargoSummaryLine    = regexp.MustCompile(`^test result:`)
	cargoBlockHeader    = regexp.MustCompile(`^---- (\S+) stdout ----$`)
	cargoResultLine     = regexp.MustCompile(`^test (\S+) \.\.\. (ok|FAILED|ignored)$`)
)

var cargoOutcomeMap = map[string]fact.TestOutcome{
	"ok": fact.TestPass, "FAILED": fact.TestFail, "ignored": fact.TestSkip,
}

// parseCargo handles `cargo test` output: the first pass captures each
// failing test's "---- NAME stdout ----" block between the first
// "failures:" banner and the run summary (or a second "failures:" banner
// listing names only); the second pass emits an outcome for every
// "test NAME ... ok|FAILED|ignored" line.
func parseCargo(rec Input) (out []fact.Fact) {
	defer func() {
		if recover() != nil {
			out = nil
		}
	}()

	ls := lines(rec.ToolOutput)
	messages := map[string]string{}

	start := -1
	for i, l := range ls {
		if cargoFailuresBanner.MatchString(l) {
			start = i + 1
			break
		}
	}
	if start >= 0 {
		end := len(ls)
		for i := start; i < len(ls); i++ {
			if cargoSummaryLine.MatchString(ls[i]) || (i > start && cargoFailuresBanner.MatchString(ls[i])) {
				end = i
				break
			}
		}

		currentName := ""
		var detail []string
		flush := func() {
			if currentName != "" {
				messages[currentName] = truncate(strings.TrimSpace(strings.Join(detail, " ")), 500)
			}
		}
		for i := start; i < end; i++ {
			if m := cargoBlockHeader.FindStringSubmatch(ls[i]); m != nil {
				flush()
				currentName = m[1]
				detail = nil
				continue
			}
			if currentName != "" {
				detail = append(detail, strings.TrimSpace(ls[i]))
			}
		}
		flush()
	}

	for _, l := range ls {
		m := cargoResultLine.FindStringSubmatch(l)
		if m == nil {
			continue
		}
		outcome := cargoOutcomeMap[m[2]]
		name := m[1]
		msg := ""
		if outcome == fact.TestFail {
			msg = messages[name]
		}
		out = append(out, fact.NewTestResult(name, outcome, msg))
	}
	return out
}
