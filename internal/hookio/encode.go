package hookio

import (
	"encoding/json"
	"io"
	"strings"
)

// Violation is one rule firing, already tagged with its configured action.
// internal/rules produces these; this package only knows how to render
// them into the host agent's wire shapes.
type Violation struct {
	RuleName string
	Message  string
	Action   string // "warn" or "block"
}

type warnPayload struct {
	Decision          string `json:"decision"`
	AdditionalContext string `json:"additionalContext"`
}

type blockPayload struct {
	HookSpecificOutput blockInner `json:"hookSpecificOutput"`
}

type blockInner struct {
	HookEventName            string `json:"hookEventName"`
	PermissionDecision       string `json:"permissionDecision"`
	PermissionDecisionReason string `json:"permissionDecisionReason"`
}

// WriteDecision renders violations to w per §6: nothing for an empty list,
// a warn payload if every violation is a warning, or a block payload for
// the first block-action violation (block always takes precedence — the
// caller is expected to have already selected which violation, if any, is
// the blocking one via rules.SelectBlocking).
func WriteDecision(w io.Writer, violations []Violation) error {
	if len(violations) == 0 {
		return nil
	}

	for _, v := range violations {
		if v.Action == "block" {
			payload := blockPayload{HookSpecificOutput: blockInner{
				HookEventName:            "PreToolUse",
				PermissionDecision:       "deny",
				PermissionDecisionReason: "[witness] \U0001F6D1 " + v.RuleName + ": " + v.Message,
			}}
			return writeJSONLine(w, payload)
		}
	}

	lines := make([]string, 0, len(violations))
	for _, v := range violations {
		lines = append(lines, "[witness] ⚠️ "+v.RuleName+": "+v.Message)
	}
	payload := warnPayload{Decision: "approve", AdditionalContext: strings.Join(lines, "\n")}
	return writeJSONLine(w, payload)
}

func writeJSONLine(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
