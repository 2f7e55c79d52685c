package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anthropics/witness/internal/fact"
)

func TestRouteFileToolEmitsFileEvent(t *testing.T) {
	out := Route(Input{
		ToolName:  "Edit",
		ToolInput: map[string]string{"file_path": "src/a.go"},
	})
	require.Len(t, out, 1)
	fe, ok := out[0].(fact.FileEvent)
	require.True(t, ok)
	require.Equal(t, fact.FileEdit, fe.Event)
	require.Equal(t, "src/a.go", fe.Path)
}

func TestRouteReadEmitsImports(t *testing.T) {
	out := Route(Input{
		ToolName:   "Read",
		ToolInput:  map[string]string{"path": "src/a.go"},
		ToolOutput: "package main\n\nimport \"fmt\"\n",
	})
	require.Len(t, out, 2)
	imp, ok := out[1].(fact.Import)
	require.True(t, ok)
	require.Equal(t, "fmt", imp.ImportedModule)
}

func TestRouteUnknownToolYieldsNil(t *testing.T) {
	out := Route(Input{ToolName: "SomeOtherTool"})
	require.Nil(t, out)
}

func TestRouteShellCommandDispatchesBunBeforeGeneric(t *testing.T) {
	out := Route(Input{
		ToolName:  "Bash",
		ToolInput: map[string]string{"command": "bun test"},
		ToolOutput: "(pass) adds numbers [2.00ms]\n(fail) subtracts numbers\n  error: expected 1 got 2\n",
	})
	require.Len(t, out, 2)
	tr1 := out[0].(fact.TestResult)
	require.Equal(t, fact.TestPass, tr1.Outcome)
	tr2 := out[1].(fact.TestResult)
	require.Equal(t, fact.TestFail, tr2.Outcome)
	require.Equal(t, "expected 1 got 2", tr2.Message)
}

func TestRouteShellCommandNoMatchYieldsNil(t *testing.T) {
	out := Route(Input{
		ToolName:  "Bash",
		ToolInput: map[string]string{"command": "ls -la"},
	})
	require.Nil(t, out)
}

func TestRouteNeverPanics(t *testing.T) {
	require.NotPanics(t, func() {
		Route(Input{ToolName: "Bash", ToolInput: map[string]string{"command": "go test"}, ToolOutput: "\x00\xff garbage"})
	})
}
