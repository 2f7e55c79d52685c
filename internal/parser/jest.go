package parser

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/anthropics/witness/internal/fact"
)

type jestReport struct {
	TestResults []struct {
		AssertionResults []struct {
			FullName         string   `json:"fullName"`
			AncestorTitles   []string `json:"ancestorTitles"`
			Title            string   `json:"title"`
			Status           string   `json:"status"`
			FailureMessages  []string `json:"failureMessages"`
		} `json:"assertionResults"`
	} `json:"testResults"`
}

var jestOutcomeMap = map[string]fact.TestOutcome{
	"passed":  fact.TestPass,
	"failed":  fact.TestFail,
	"pending": fact.TestSkip,
	"skipped": fact.TestSkip,
	"todo":    fact.TestSkip,
}

// parseJestLike handles both jest and vitest: their structured reports and
// their checkmark-based text output share the same shape closely enough
// that one parser covers both, matching the routing table's note that
// multiple command families can share a dedicated parser.
func parseJestLike(rec Input) (out []fact.Fact) {
	defer func() {
		if recover() != nil {
			out = nil
		}
	}()

	if looksStructured(rec.ToolOutput) {
		if facts, ok := parseJestStructured(rec.ToolOutput); ok {
			return facts
		}
	}
	return parseJestText(rec.ToolOutput)
}

func parseJestStructured(output string) ([]fact.Fact, bool) {
	var report jestReport
	if err := json.Unmarshal([]byte(output), &report); err != nil {
		return nil, false
	}

	var out []fact.Fact
	found := false
	for _, tr := range report.TestResults {
		for _, ar := range tr.AssertionResults {
			name := ar.FullName
			if name == "" {
				name = strings.TrimSpace(strings.Join(append(append([]string{}, ar.AncestorTitles...), ar.Title), " > "))
			}
			if name == "" {
				continue
			}
			outcome, ok := jestOutcomeMap[ar.Status]
			if !ok {
				continue
			}
			found = true
			msg := ""
			if outcome == fact.TestFail && len(ar.FailureMessages) > 0 {
				msg = truncate(ar.FailureMessages[0], 500)
			}
			out = append(out, fact.NewTestResult(name, outcome, msg))
		}
	}
	return out, found
}

var (
	jestPassLine = regexp.MustCompile(`^\s*[✓✔]\s+(.+)$`)
	jestFailLine = regexp.MustCompile(`^\s*[✗✘×]\s+(.+)$`)
	jestSkipLine = regexp.MustCompile(`^\s*[○◌⊘]\s+(.+)$`)
	vitestErrLine = regexp.MustCompile(`^\s*→\s*(Error:.+)$`)
)

func parseJestText(output string) []fact.Fact {
	var out []fact.Fact
	ls := lines(output)
	for i, l := range ls {
		if m := jestPassLine.FindStringSubmatch(l); m != nil {
			out = append(out, fact.NewTestResult(strings.TrimSpace(m[1]), fact.TestPass, ""))
			continue
		}
		if m := jestFailLine.FindStringSubmatch(l); m != nil {
			msg := ""
			if i+1 < len(ls) {
				if em := vitestErrLine.FindStringSubmatch(ls[i+1]); em != nil {
					msg = strings.TrimSpace(em[1])
				}
			}
			out = append(out, fact.NewTestResult(strings.TrimSpace(m[1]), fact.TestFail, msg))
			continue
		}
		if m := jestSkipLine.FindStringSubmatch(l); m != nil {
			out = append(out, fact.NewTestResult(strings.TrimSpace(m[1]), fact.TestSkip, ""))
		}
	}
	return out
}
