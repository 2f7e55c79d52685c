package parser

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/anthropics/witness/internal/fact"
)

type pytestReport struct {
	Tests []struct {
		NodeID  string `json:"nodeid"`
		Outcome string `json:"outcome"`
		Call    struct {
			LongRepr string `json:"longrepr"`
		} `json:"call"`
	} `json:"tests"`
}

var pytestOutcomeMap = map[string]fact.TestOutcome{
	"passed":  fact.TestPass,
	"failed":  fact.TestFail,
	"skipped": fact.TestSkip,
}

func parsePytest(rec Input) (out []fact.Fact) {
	defer func() {
		if recover() != nil {
			out = nil
		}
	}()

	if looksStructured(rec.ToolOutput) {
		if facts, ok := parsePytestStructured(rec.ToolOutput); ok {
			return facts
		}
	}
	return parsePytestText(rec.ToolOutput)
}

func parsePytestStructured(output string) ([]fact.Fact, bool) {
	var report pytestReport
	if err := json.Unmarshal([]byte(output), &report); err != nil {
		return nil, false
	}

	var out []fact.Fact
	found := false
	for _, tr := range report.Tests {
		outcome, ok := pytestOutcomeMap[tr.Outcome]
		if !ok || tr.NodeID == "" {
			continue
		}
		found = true
		msg := ""
		if outcome == fact.TestFail {
			msg = truncate(tr.Call.LongRepr, 500)
		}
		out = append(out, fact.NewTestResult(tr.NodeID, outcome, msg))
	}
	return out, found
}

var (
	pytestFailuresBanner = regexp.MustCompile(`^=+\s*FAILURES\s*=+$`)
	pytestSubBanner      = regexp.MustCompile(`^_{3,}\s*(.+?)\s*_{3,}$`)
	pytestErrLine        = regexp.MustCompile(`^E\s+(.+)$`)
	pytestResultLine     = regexp.MustCompile(`^(\S+)::(\S+)\s+(PASSED|FAILED|SKIPPED|ERROR)\b`)
)

// parsePytestText runs the two passes the text format requires: the first
// locates the FAILURES section and harvests one message per sub-banner
// name; the second walks the short-form result lines and joins each
// failure to the message collected for its test name.
func parsePytestText(output string) []fact.Fact {
	ls := lines(output)
	messages := map[string]string{}

	inFailures := false
	currentName := ""
	for _, l := range ls {
		if pytestFailuresBanner.MatchString(l) {
			inFailures = true
			continue
		}
		if !inFailures {
			continue
		}
		if m := pytestSubBanner.FindStringSubmatch(l); m != nil {
			currentName = m[1]
			continue
		}
		if currentName == "" {
			continue
		}
		if _, ok := messages[currentName]; ok {
			continue
		}
		if m := pytestErrLine.FindStringSubmatch(l); m != nil {
			messages[currentName] = truncate(strings.TrimSpace(m[1]), 500)
		}
	}

	var out []fact.Fact
	outcomeMap := map[string]fact.TestOutcome{
		"PASSED": fact.TestPass, "FAILED": fact.TestFail,
		"SKIPPED": fact.TestSkip, "ERROR": fact.TestError,
	}
	for _, l := range ls {
		m := pytestResultLine.FindStringSubmatch(l)
		if m == nil {
			continue
		}
		outcome := outcomeMap[m[3]]
		testName := m[2]
		msg := ""
		if outcome == fact.TestFail {
			msg = messages[testName]
		}
		out = append(out, fact.NewTestResult(testName, outcome, msg))
	}
	return out
}
