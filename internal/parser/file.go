package parser

import "github.com/anthropics/witness/internal/fact"

// fileEventByToolName maps a recognized file-tool name to the FileEvent
// type it represents. Anything not listed (view, cat, and the other
// read-alikes) is treated as a read — they only ever observe content,
// they do not create or modify it.
var fileEventByToolName = map[string]fact.FileEventType{
	"Edit": fact.FileEdit, "edit": fact.FileEdit, "str_replace_editor": fact.FileEdit,
	"Write": fact.FileEdit, "write": fact.FileEdit,
	"file_create": fact.FileCreate, "create_file": fact.FileCreate,
	"Read": fact.FileRead, "read": fact.FileRead,
}

func parseFile(rec Input) []fact.Fact {
	path := firstNonEmpty(rec.ToolInput["path"], rec.ToolInput["file_path"], rec.ToolInput["file"], rec.ToolInput["filename"])
	if path == "" {
		return nil
	}

	event, ok := fileEventByToolName[rec.ToolName]
	if !ok {
		event = fact.FileRead
	}

	out := []fact.Fact{fact.NewFileEvent(event, path)}

	if event == fact.FileRead && rec.ToolOutput != "" {
		for _, imp := range ExtractImports(path, rec.ToolOutput) {
			out = append(out, imp)
		}
	}

	return out
}
