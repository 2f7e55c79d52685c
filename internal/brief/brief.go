// Package brief renders the view layer into a short human-readable report
// for the witness CLI's "brief" and "repl" subcommands (SPEC_FULL.md §5). It is a mechanical projection: aggregate
// each view, then format — the same two-step shape the teacher's
// GetStats uses for session statistics — with no decision logic of its
// own.
package brief

import (
	"fmt"
	"strings"

	"github.com/anthropics/witness/internal/store"
	"github.com/anthropics/witness/internal/view"
)

// Session gathers every view for sessionID and renders them as a single
// multi-section report. Each section is skipped when its view has nothing
// to show, so a clean session produces a short report.
func Session(s *store.Store, sessionID string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "witness brief — session %q\n", sessionID)

	writeFailing(&b, s, sessionID)
	writeRegressions(&b, s, sessionID)
	writeThrashing(&b, s, sessionID)
	writeUntested(&b, s, sessionID)
	writeUnread(&b, s, sessionID)
	writeClusters(&b, s, sessionID)
	writeFixes(&b, s, sessionID)

	return b.String()
}

func writeFailing(b *strings.Builder, s *store.Store, sessionID string) {
	failing, err := view.FailingTests(s, sessionID)
	if err != nil || len(failing) == 0 {
		return
	}
	fmt.Fprintf(b, "\nFailing tests (%d):\n", len(failing))
	for _, f := range failing {
		fmt.Fprintf(b, "  - %s", f.TestName)
		if f.Message != "" {
			fmt.Fprintf(b, ": %s", f.Message)
		}
		b.WriteByte('\n')
	}
}

func writeRegressions(b *strings.Builder, s *store.Store, sessionID string) {
	regs, err := view.Regressions(s, sessionID)
	if err != nil || len(regs) == 0 {
		return
	}
	seen := map[string]bool{}
	fmt.Fprintf(b, "\nRegressions:\n")
	for _, r := range regs {
		if seen[r.TestName] {
			continue
		}
		seen[r.TestName] = true
		fmt.Fprintf(b, "  - %s likely caused by %s\n", r.TestName, r.LikelyCause)
	}
}

func writeThrashing(b *strings.Builder, s *store.Store, sessionID string) {
	th, err := view.Thrashings(s, sessionID)
	if err != nil || len(th) == 0 {
		return
	}
	fmt.Fprintf(b, "\nThrashing:\n")
	for _, t := range th {
		fmt.Fprintf(b, "  - %s edited %d times since last success\n", t.FilePath, t.EditCount)
	}
}

func writeUntested(b *strings.Builder, s *store.Store, sessionID string) {
	edits, err := view.UntestedEdits(s, sessionID)
	if err != nil || len(edits) == 0 {
		return
	}
	fmt.Fprintf(b, "\nUntested edits:\n")
	for _, e := range edits {
		fmt.Fprintf(b, "  - %s\n", e.FilePath)
	}
}

func writeUnread(b *strings.Builder, s *store.Store, sessionID string) {
	unread, err := view.EditedButUnreadFiles(s, sessionID)
	if err != nil || len(unread) == 0 {
		return
	}
	fmt.Fprintf(b, "\nEdited without reading first:\n")
	for _, u := range unread {
		fmt.Fprintf(b, "  - %s\n", u.FilePath)
	}
}

func writeClusters(b *strings.Builder, s *store.Store, sessionID string) {
	clusters, err := view.ErrorClusters(s, sessionID)
	if err != nil || len(clusters) == 0 {
		return
	}
	fmt.Fprintf(b, "\nError clusters:\n")
	for _, c := range clusters {
		fmt.Fprintf(b, "  - %q: %s\n", c.Message, strings.Join(c.Tests, ", "))
	}
}

func writeFixes(b *strings.Builder, s *store.Store, sessionID string) {
	fixes, err := view.LikelyFixes(s, sessionID)
	if err != nil || len(fixes) == 0 {
		return
	}
	fmt.Fprintf(b, "\nLikely fixes:\n")
	for _, f := range fixes {
		fmt.Fprintf(b, "  - %s fixed by editing %s\n", f.TestName, f.FilePath)
	}
}
