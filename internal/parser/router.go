package parser

import (
	"regexp"

	"github.com/anthropics/witness/internal/fact"
)

// fileToolNames mirrors the teacher's case-variant string-set matching in
// ui/intent.go's action/file pattern tables — a tool name is recognized
// regardless of the casing convention the calling agent used.
var fileToolNames = map[string]bool{
	"Edit": true, "edit": true,
	"str_replace_editor": true,
	"Write":              true, "write": true,
	"file_create": true, "create_file": true,
	"Read": true, "read": true,
	"view": true, "cat": true,
}

var shellToolNames = map[string]bool{
	"Bash": true, "bash": true,
	"terminal": true, "execute_command": true,
}

// shellRoute is one ordered entry in the command-to-parser dispatch table.
// The dedicated parser for a command family is always listed ahead of any
// generic pattern it could also match (bun test before the generic
// node-test pattern, vitest before the generic node-test pattern), per the
// ambiguity policy.
type shellRoute struct {
	pattern *regexp.Regexp
	parse   Func
}

var shellRoutes = []shellRoute{
	{regexp.MustCompile(`\bbun\s+test\b`), parseBunTest},
	{regexp.MustCompile(`\b(?:bunx\s+vitest|npx\s+vitest|vitest)\b`), parseJestLike},
	{regexp.MustCompile(`\b(?:jest|mocha|npm\s+test|yarn\s+test|pnpm\s+test|npx\s+jest)\b`), parseJestLike},
	{regexp.MustCompile(`\b(?:pytest|python\s+-m\s+pytest|py\.test)\b`), parsePytest},
	{regexp.MustCompile(`\bgo\s+test\b`), parseGoTest},
	{regexp.MustCompile(`\bcargo\s+test\b`), parseCargo},
	{regexp.MustCompile(`\b(?:npx\s+eslint|yarn\s+eslint|pnpm\s+eslint|eslint)\b`), parseESLint},
	{regexp.MustCompile(`\b(?:ruff\s+check|ruff|python\s+-m\s+flake8|flake8)\b`), parseFlake8},
	{regexp.MustCompile(`\b(?:npx\s+tsc|bunx\s+tsc|tsc)\b`), parseTSC},
	{regexp.MustCompile(`\b(?:python\s+-m\s+mypy|python\s+-m\s+pyright|mypy|pyright)\b`), parseMypy},
	{regexp.MustCompile(`\b(?:npx\s+biome|bunx\s+biome|biome\s+check|biome\s+lint|biome\s+ci)\b`), parseBiome},
}

// Route inspects rec.ToolName (and, for shell tools, the command text) and
// runs the single matching parser, returning whatever facts it produced.
// It never panics and never returns an error: an unrecognized tool, an
// unmatched shell command, or a parser that somehow panics all yield nil.
func Route(rec Input) (out []fact.Fact) {
	defer func() {
		if recover() != nil {
			out = nil
		}
	}()

	switch {
	case fileToolNames[rec.ToolName]:
		return parseFile(rec)
	case shellToolNames[rec.ToolName]:
		command := firstNonEmpty(rec.ToolInput["command"], rec.ToolInput["cmd"])
		if command == "" {
			return nil
		}
		for _, route := range shellRoutes {
			if route.pattern.MatchString(command) {
				return route.parse(rec)
			}
		}
		return nil
	default:
		return nil
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
