// Package fact defines the closed set of observation kinds Witness records:
// a tagged union over FileEvent, TestResult, LintResult, TypeError, Import,
// ToolCall and HookEvent. Facts are produced by parsers with a placeholder
// (session_id, t) = ("", 0); the store assigns real values at insertion time
// and dispatches on Kind to the matching table writer.
package fact

import "time"

// Kind identifies which variant of the fact union a Fact carries.
type Kind int

const (
	KindFileEvent Kind = iota
	KindTestResult
	KindLintResult
	KindTypeError
	KindImport
	KindToolCall
	KindHookEvent
)

// FileEventType enumerates the kinds of file observation a parser emits.
type FileEventType string

const (
	FileRead   FileEventType = "read"
	FileEdit   FileEventType = "edit"
	FileCreate FileEventType = "create"
	FileDelete FileEventType = "delete"
)

// TestOutcome enumerates the outcomes a test-output parser can report.
type TestOutcome string

const (
	TestPass  TestOutcome = "pass"
	TestFail  TestOutcome = "fail"
	TestSkip  TestOutcome = "skip"
	TestError TestOutcome = "error"
)

// Severity enumerates lint severities.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// HookPipeline enumerates which pipeline logged a HookEvent.
type HookPipeline string

const (
	HookLint   HookPipeline = "lint"
	HookRecord HookPipeline = "record"
)

// Common carries the fields every fact shares: the session it belongs to,
// its monotonic tick, and a wall-clock timestamp. Parsers leave SessionID
// empty and T zero; the store fills both in at insertion.
type Common struct {
	SessionID string
	T         int64
	WallClock time.Time
}

// FileEvent records an observed read/edit/create/delete of a file path.
type FileEvent struct {
	Common
	Event FileEventType
	Path  string
}

// TestResult records one test's outcome as reported by a test runner.
type TestResult struct {
	Common
	TestName string
	Outcome  TestOutcome
	Message  string // optional
}

// LintResult records one lint finding against a file.
type LintResult struct {
	Common
	FilePath string
	Line     int // 0 when absent
	Rule     string
	Severity Severity
}

// TypeError records one type-checker diagnostic against a file.
type TypeError struct {
	Common
	FilePath string
	Line     int // 0 when absent
	Message  string
}

// Import records a source file importing a module, as discovered by
// shallow import-regex extraction over a read file's contents.
type Import struct {
	Common
	SourceFile     string
	ImportedModule string
}

// ToolCall records a single post-hook invocation, including unrecognized
// tools. One row is always inserted regardless of whether a parser could
// make sense of the call.
type ToolCall struct {
	Common
	ToolName   string
	ToolInput  string // serialized tool_input
	ToolOutput string // optional
}

// HookEvent records a pre or post pipeline's decision, for post-facto
// tailing. Rules never consult HookEvent rows.
type HookEvent struct {
	Common
	Event         HookPipeline
	ToolName      string // optional
	Action        string
	Message       string // optional
	Payload       string // optional, opaque JSON
	Result        string // optional
	CorrelationID string // uuid generated fresh per pipeline invocation; the pre and post events of one tool call get different ids
}

// Fact is satisfied by every fact variant; it exists only so the store's
// insert dispatch can accept any of them through a single parameter when a
// parser returns a heterogeneous slice.
type Fact interface {
	FactKind() Kind
}

func (FileEvent) FactKind() Kind  { return KindFileEvent }
func (TestResult) FactKind() Kind { return KindTestResult }
func (LintResult) FactKind() Kind { return KindLintResult }
func (TypeError) FactKind() Kind  { return KindTypeError }
func (Import) FactKind() Kind     { return KindImport }
func (ToolCall) FactKind() Kind   { return KindToolCall }
func (HookEvent) FactKind() Kind  { return KindHookEvent }

// NewFileEvent constructs a FileEvent fact with placeholder session/tick.
func NewFileEvent(event FileEventType, path string) FileEvent {
	return FileEvent{Event: event, Path: path}
}

// NewTestResult constructs a TestResult fact with placeholder session/tick.
func NewTestResult(name string, outcome TestOutcome, message string) TestResult {
	return TestResult{TestName: name, Outcome: outcome, Message: message}
}

// NewLintResult constructs a LintResult fact with placeholder session/tick.
func NewLintResult(filePath string, line int, rule string, sev Severity) LintResult {
	return LintResult{FilePath: filePath, Line: line, Rule: rule, Severity: sev}
}

// NewTypeError constructs a TypeError fact with placeholder session/tick.
func NewTypeError(filePath string, line int, message string) TypeError {
	return TypeError{FilePath: filePath, Line: line, Message: message}
}

// NewImport constructs an Import fact with placeholder session/tick.
func NewImport(sourceFile, importedModule string) Import {
	return Import{SourceFile: sourceFile, ImportedModule: importedModule}
}
