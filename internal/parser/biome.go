package parser

import (
	"encoding/json"
	"regexp"

	"github.com/anthropics/witness/internal/fact"
)

type biomeReport struct {
	Diagnostics []struct {
		Category string `json:"category"`
		Severity string `json:"severity"`
		Location struct {
			Path struct {
				File string `json:"file"`
			} `json:"path"`
		} `json:"location"`
	} `json:"diagnostics"`
}

func parseBiome(rec Input) (out []fact.Fact) {
	defer func() {
		if recover() != nil {
			out = nil
		}
	}()

	if looksStructured(rec.ToolOutput) {
		if facts, ok := parseBiomeStructured(rec.ToolOutput); ok {
			return facts
		}
	}
	return parseBiomeText(rec.ToolOutput)
}

func biomeSeverity(s string) fact.Severity {
	switch s {
	case "warning", "warn":
		return fact.SeverityWarning
	case "info", "information":
		return fact.SeverityInfo
	default:
		return fact.SeverityError
	}
}

func parseBiomeStructured(output string) ([]fact.Fact, bool) {
	var report biomeReport
	if err := json.Unmarshal([]byte(output), &report); err != nil {
		return nil, false
	}

	var out []fact.Fact
	for _, d := range report.Diagnostics {
		if d.Location.Path.File == "" {
			continue
		}
		out = append(out, fact.NewLintResult(d.Location.Path.File, 0, d.Category, biomeSeverity(d.Severity)))
	}
	return out, true
}

// Text-mode biome output carries no severity information in the wild, so
// every reported diagnostic is treated as an error.
var (
	biomeTextLine    = regexp.MustCompile(`^(.+):(\d+):(\d+)\s+(\S+)\s+━`)
	biomeCompactLine = regexp.MustCompile(`^(.+):(\d+):(\d+):\s+(\S+):\s+(.+)$`)
)

func parseBiomeText(output string) []fact.Fact {
	var out []fact.Fact
	for _, l := range lines(output) {
		if m := biomeTextLine.FindStringSubmatch(l); m != nil {
			out = append(out, fact.NewLintResult(m[1], atoiSafe(m[2]), m[4], fact.SeverityError))
			continue
		}
		if m := biomeCompactLine.FindStringSubmatch(l); m != nil {
			out = append(out, fact.NewLintResult(m[1], atoiSafe(m[2]), m[4], fact.SeverityError))
		}
	}
	return out
}
