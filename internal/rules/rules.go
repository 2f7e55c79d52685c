// Package rules implements the seven composable checks (§4.6): each a
// fast applies() predicate over the pending tool call plus an effectful
// check() that reads the view layer. The engine iterates them in a fixed
// order, collects whatever fires, and resolves block-over-warn-over-allow
// precedence exactly as the teacher's module registry resolves its
// priority-ordered hooks — keep iterating, never let one entry's failure
// stop the rest.
package rules

import (
	"github.com/anthropics/witness/internal/config"
	"github.com/anthropics/witness/internal/store"
)

// Input is everything a rule's applies/check pair needs: the pending tool
// call plus any path the router's file parser already extracted from it.
type Input struct {
	ToolName  string
	ToolInput map[string]string
	Command   string // resolved shell command, empty for file tools
	Path      string // resolved file path, empty for shell tools
}

// Rule is one named check with a pure applies predicate and an effectful
// check function. check returns ("", false) when the rule does not fire.
type Rule struct {
	Name    string
	Applies func(Input) bool
	Check   func(s *store.Store, sessionID string, in Input, rc config.RuleConfig) (message string, fires bool)
}

// Violation is one rule that fired, tagged with the action its
// configuration resolved to.
type Violation struct {
	RuleName string
	Message  string
	Action   config.Action
}

// All is the fixed, ordered rule table. Order decides which violation
// SelectBlocking picks when more than one would block, and the order in
// which warnings are reported; §4.6 does not
// otherwise require a particular iteration order, but a fixed one makes
// behavior reproducible across runs.
var All = []Rule{
	{Name: "no_edit_unread", Applies: appliesEditTool, Check: checkNoEditUnread},
	{Name: "test_after_edits", Applies: appliesEditTool, Check: checkTestAfterEdits},
	{Name: "fix_regressions_first", Applies: appliesEditTool, Check: checkFixRegressionsFirst},
	{Name: "no_thrashing", Applies: appliesEditTool, Check: checkNoThrashing},
	{Name: "no_commit_failing", Applies: appliesCommitCommand, Check: checkNoCommitFailing},
	{Name: "no_pointless_rerun", Applies: appliesTestRunnerCommand, Check: checkNoPointlessRerun},
	{Name: "scope_check", Applies: appliesEditTool, Check: checkScopeCheck},
}

// editToolNames are the file tools that mutate content; no_edit_unread and
// its siblings only ever fire on these, never on a pure read.
var editToolNames = map[string]bool{
	"Edit": true, "edit": true,
	"str_replace_editor": true,
	"Write":              true, "write": true,
	"file_create": true, "create_file": true,
}

func appliesEditTool(in Input) bool {
	return editToolNames[in.ToolName] && in.Path != ""
}

var shellToolNames = map[string]bool{
	"Bash": true, "bash": true,
	"terminal": true, "execute_command": true,
}

func appliesCommitCommand(in Input) bool {
	if !shellToolNames[in.ToolName] || in.Command == "" {
		return false
	}
	return commitCommandRE.MatchString(in.Command)
}

func appliesTestRunnerCommand(in Input) bool {
	if !shellToolNames[in.ToolName] || in.Command == "" {
		return false
	}
	return testRunnerCommandRE.MatchString(in.Command)
}

// Evaluate runs every applicable, enabled rule in fixed order and returns
// every violation collected, each tagged with its configured action. A
// rule whose check errors internally is treated as not firing — callers
// never see a store error here, matching §4.6 step 3's "never propagate a
// store error into the agent's flow".
func Evaluate(s *store.Store, sessionID string, in Input, cfg config.Config) []Violation {
	var violations []Violation
	for _, rule := range All {
		rc := cfg.For(rule.Name)
		if rc.Action == config.ActionOff {
			continue
		}
		if !rule.Applies(in) {
			continue
		}
		message, fires := safeCheck(rule, s, sessionID, in, rc)
		if !fires {
			continue
		}
		violations = append(violations, Violation{RuleName: rule.Name, Message: message, Action: rc.Action})
	}
	return violations
}

// safeCheck recovers from any panic inside a rule's check, treating it the
// same as a non-firing check — a single misbehaving rule must never abort
// evaluation of the rest.
func safeCheck(rule Rule, s *store.Store, sessionID string, in Input, rc config.RuleConfig) (message string, fires bool) {
	defer func() {
		if recover() != nil {
			message, fires = "", false
		}
	}()
	return rule.Check(s, sessionID, in, rc)
}

// SelectBlocking implements §4.6 step 5: if any violation has action
// block, the first one wins and only it is reported; otherwise every
// violation (necessarily warn) is reported together.
func SelectBlocking(violations []Violation) []Violation {
	for _, v := range violations {
		if v.Action == config.ActionBlock {
			return []Violation{v}
		}
	}
	return violations
}

// FromToolCall resolves a rules.Input from a recorded tool call, filling
// in Path (via the same key-trying the file parser uses) or Command (via
// the same command-extraction the shell router uses).
func FromToolCall(toolName string, toolInput map[string]string) Input {
	in := Input{ToolName: toolName, ToolInput: toolInput}
	if shellToolNames[toolName] {
		in.Command = firstNonEmpty(toolInput["command"], toolInput["cmd"])
		return in
	}
	in.Path = firstNonEmpty(toolInput["path"], toolInput["file_path"], toolInput["file"], toolInput["filename"])
	return in
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
