package parser

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/anthropics/witness/internal/fact"
)

type eslintFile struct {
	FilePath string `json:"filePath"`
	Messages []struct {
		Line     int    `json:"line"`
		Column   int    `json:"column"`
		RuleID   string `json:"ruleId"`
		Severity int    `json:"severity"`
		Message  string `json:"message"`
	} `json:"messages"`
}

func parseESLint(rec Input) (out []fact.Fact) {
	defer func() {
		if recover() != nil {
			out = nil
		}
	}()

	if looksStructured(rec.ToolOutput) {
		if facts, ok := parseESLintStructured(rec.ToolOutput); ok {
			return facts
		}
	}
	return parseESLintText(rec.ToolOutput)
}

func parseESLintStructured(output string) ([]fact.Fact, bool) {
	var files []eslintFile
	if err := json.Unmarshal([]byte(output), &files); err != nil {
		return nil, false
	}

	var out []fact.Fact
	for _, f := range files {
		for _, m := range f.Messages {
			sev := fact.SeverityError
			switch m.Severity {
			case 2:
				sev = fact.SeverityError
			case 1:
				sev = fact.SeverityWarning
			default:
				sev = fact.SeverityError
			}
			rule := m.RuleID
			if rule == "" {
				rule = "unknown"
			}
			out = append(out, fact.NewLintResult(f.FilePath, m.Line, rule, sev))
		}
	}
	return out, true
}

var (
	eslintIndented = regexp.MustCompile(`^\s*(\d+):(\d+)\s+(error|warning)\s+(.+?)\s+([\w\-/@]+)$`)
	eslintCompact  = regexp.MustCompile(`^(.+):(\d+):(\d+):\s+(error|warning)\s+(.+?)\s+\(([\w\-/@]+)\)$`)
)

func parseESLintText(output string) []fact.Fact {
	var out []fact.Fact
	currentFile := ""
	for _, l := range lines(output) {
		if strings.TrimSpace(l) == "" {
			continue
		}
		if m := eslintCompact.FindStringSubmatch(l); m != nil {
			line, _ := strconv.Atoi(m[2])
			sev := fact.SeverityWarning
			if m[4] == "error" {
				sev = fact.SeverityError
			}
			out = append(out, fact.NewLintResult(m[1], line, m[6], sev))
			continue
		}
		if m := eslintIndented.FindStringSubmatch(l); m != nil && currentFile != "" {
			line, _ := strconv.Atoi(m[1])
			sev := fact.SeverityWarning
			if m[3] == "error" {
				sev = fact.SeverityError
			}
			out = append(out, fact.NewLintResult(currentFile, line, m[5], sev))
			continue
		}
		if !strings.HasPrefix(l, " ") && !strings.HasPrefix(l, "\t") {
			currentFile = strings.TrimSpace(l)
		}
	}
	return out
}
