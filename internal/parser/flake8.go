package parser

import (
	"encoding/json"
	"regexp"
	"strconv"

	"github.com/anthropics/witness/internal/fact"
)

type flake8Finding struct {
	Filename string `json:"filename"`
	Location struct {
		Row    int `json:"row"`
		Column int `json:"column"`
	} `json:"location"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func parseFlake8(rec Input) (out []fact.Fact) {
	defer func() {
		if recover() != nil {
			out = nil
		}
	}()

	if looksStructured(rec.ToolOutput) {
		if facts, ok := parseFlake8Structured(rec.ToolOutput); ok {
			return facts
		}
	}
	return parseFlake8Text(rec.ToolOutput)
}

func flake8Severity(code string) fact.Severity {
	if code == "" {
		return fact.SeverityWarning
	}
	switch code[0] {
	case 'E', 'F':
		return fact.SeverityError
	case 'W':
		return fact.SeverityWarning
	default:
		return fact.SeverityWarning
	}
}

func parseFlake8Structured(output string) ([]fact.Fact, bool) {
	var findings []flake8Finding
	if err := json.Unmarshal([]byte(output), &findings); err != nil {
		return nil, false
	}

	var out []fact.Fact
	for _, f := range findings {
		out = append(out, fact.NewLintResult(f.Filename, f.Location.Row, f.Code, flake8Severity(f.Code)))
	}
	return out, true
}

var flake8TextLine = regexp.MustCompile(`^(.+):(\d+):(\d+):\s+([A-Z]\d+)\s+(.+)$`)

func parseFlake8Text(output string) []fact.Fact {
	var out []fact.Fact
	for _, l := range lines(output) {
		m := flake8TextLine.FindStringSubmatch(l)
		if m == nil {
			continue
		}
		line, _ := strconv.Atoi(m[2])
		out = append(out, fact.NewLintResult(m[1], line, m[4], flake8Severity(m[4])))
	}
	return out
}
