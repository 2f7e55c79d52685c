// Package parser turns one recorded tool call into zero or more facts. The
// router (§4.4) picks at most one parser per call by tool name, or by a
// shell command's text when the tool is a generic executor; every parser
// downstream of it is never-throw — malformed or empty output yields an
// empty slice, never a panic or error return.
package parser

import "github.com/anthropics/witness/internal/fact"

// Input is the subset of a recorded tool call a parser needs. ToolInput
// uses string values because hook payloads arrive as JSON objects whose
// leaf values this package only ever treats as strings (a path, a shell
// command) — no parser needs nested structure from tool_input itself.
type Input struct {
	ToolName   string
	ToolInput  map[string]string
	ToolOutput string
}

// Func is the shape every parser implements. It must never panic; Route
// recovers defensively as a last resort, but each parser is written to
// return an empty slice on malformed input instead of relying on that.
type Func func(Input) []fact.Fact
