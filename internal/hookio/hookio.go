// Package hookio decodes the pre/post tool-call JSON payload read from
// standard input and encodes the pre-pipeline's Allow/Warn/Block decision
// back to standard output, matching the exact shapes the host agent's hook
// protocol expects (§6).
package hookio

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
)

// RawInput is the JSON object shape the host agent sends on standard input
// for both the pre and post pipelines. Unknown fields are ignored by
// encoding/json's default decode behavior.
type RawInput struct {
	Hook         string          `json:"hook"`
	SessionID    string          `json:"session_id"`
	ToolName     string          `json:"tool_name"`
	ToolInput    json.RawMessage `json:"tool_input"`
	ToolOutput   string          `json:"tool_output"`
	ToolExitCode *int            `json:"tool_exit_code"`
}

// Decode reads and parses one RawInput from r. A malformed or empty
// payload returns a zero RawInput and an error — callers treat that as a
// ParseError and continue with an empty result rather than propagating it.
func Decode(r io.Reader) (RawInput, error) {
	var in RawInput
	data, err := io.ReadAll(r)
	if err != nil {
		return RawInput{}, err
	}
	if len(data) == 0 {
		return RawInput{}, io.ErrUnexpectedEOF
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return RawInput{}, err
	}
	return in, nil
}

// StringToolInput best-effort decodes ToolInput into a flat string map,
// the shape every parser in internal/parser expects. Non-string leaf
// values are stringified with fmt-free, %v-free simplicity: numbers and
// booleans round-trip through json.Number/bool formatting, anything else
// is dropped rather than risk emitting "<nil>" or similar noise.
func (in RawInput) StringToolInput() map[string]string {
	out := map[string]string{}
	if len(in.ToolInput) == 0 {
		return out
	}
	var generic map[string]any
	dec := json.NewDecoder(bytes.NewReader(in.ToolInput))
	dec.UseNumber()
	if err := dec.Decode(&generic); err != nil {
		return out
	}
	for k, v := range generic {
		switch s := v.(type) {
		case string:
			out[k] = s
		case json.Number:
			out[k] = s.String()
		case bool:
			out[k] = strconv.FormatBool(s)
		}
	}
	return out
}

// Decision is the outcome the pre-pipeline's rule evaluation produces.
type Decision struct {
	Action   string // "allow", "warn", "block"
	Messages []string
	RuleName string // the blocking rule's name, only meaningful for "block"
}
