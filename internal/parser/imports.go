package parser

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/anthropics/witness/internal/fact"
)

type language int

const (
	langNone language = iota
	langJS
	langPython
	langRust
	langGo
)

var extToLang = map[string]language{
	".js": langJS, ".jsx": langJS, ".ts": langJS, ".tsx": langJS,
	".mjs": langJS, ".cjs": langJS, ".mts": langJS, ".cts": langJS,
	".py": langPython, ".pyi": langPython,
	".rs": langRust,
	".go": langGo,
}

// importPatterns holds, per language, anchored multiline patterns whose
// last capture group is the imported specifier or module path.
var importPatterns = map[language][]*regexp.Regexp{
	langJS: {
		regexp.MustCompile(`(?m)^\s*import\s+(?:[\w${}*\s,]+\s+from\s+)?['"]([^'"]+)['"]`),
		regexp.MustCompile(`(?m)\brequire\(\s*['"]([^'"]+)['"]\s*\)`),
		regexp.MustCompile(`(?m)\bexport\s+(?:[\w${}*\s,]+\s+from\s+)?['"]([^'"]+)['"]`),
	},
	langPython: {
		regexp.MustCompile(`(?m)^\s*import\s+([\w.]+)`),
		regexp.MustCompile(`(?m)^\s*from\s+([\w.]+)\s+import\b`),
	},
	langRust: {
		regexp.MustCompile(`(?m)^\s*use\s+([\w:]+)`),
		regexp.MustCompile(`(?m)^\s*mod\s+(\w+)\s*;`),
	},
	langGo: {
		regexp.MustCompile(`(?m)^\s*import\s+"([^"]+)"`),
		regexp.MustCompile(`(?ms)^\s*import\s*\(\s*(.*?)\)`),
	},
}

// goBlockLine pulls one quoted import path out of a parenthesized Go
// import block's body, ignoring a leading alias if present.
var goBlockLine = regexp.MustCompile(`"([^"]+)"`)

// ExtractImports infers a language from path's extension and runs that
// language's import patterns against content, returning one Import fact
// per distinct (source_file, imported_module) pair. Any failure — an
// unrecognized extension, no matches, a panicking regex engine — yields an
// empty slice rather than propagating.
func ExtractImports(path, content string) (out []fact.Import) {
	defer func() {
		if recover() != nil {
			out = nil
		}
	}()

	lang := extToLang[strings.ToLower(filepath.Ext(path))]
	if lang == langNone {
		return nil
	}

	seen := map[string]bool{}
	add := func(module string) {
		module = strings.TrimSpace(module)
		if module == "" || seen[module] {
			return
		}
		seen[module] = true
		out = append(out, fact.NewImport(path, module))
	}

	for i, pattern := range importPatterns[lang] {
		if lang == langGo && i == 1 {
			// Parenthesized import block: walk its body line by line.
			for _, block := range pattern.FindAllStringSubmatch(content, -1) {
				for _, line := range goBlockLine.FindAllStringSubmatch(block[1], -1) {
					add(line[1])
				}
			}
			continue
		}
		for _, m := range pattern.FindAllStringSubmatch(content, -1) {
			add(m[len(m)-1])
		}
	}

	return out
}
