// Package view computes the eleven derived relations rules read from: test
// state, regressions, thrashing, dependency and blast-radius closures,
// edit/test staleness, clusters, and fixes. Views are computed per query
// against the store, never materialized, and always scoped to one session
// — no view here ever mixes rows from two sessions.
package view

// CurrentTestState is the most recent outcome recorded for one test.
type CurrentTestState struct {
	TestName string
	Outcome  string
	Message  string
	T        int64
}

// Regression is a test that currently fails, passed earlier in the
// session, and failed again after a specific file edit with no prior
// failure breaking that streak.
type Regression struct {
	TestName    string
	Message     string
	PassT       int64
	EditT       int64
	FailT       int64
	LikelyCause string // the edit's file_path
}

// Thrashing reports the edit count for a repeatedly-edited file, counting
// only edits since the last successful edit cycle (a pass that followed an
// edit before the next edit to the same file).
type Thrashing struct {
	FilePath  string
	EditCount int
	LastEditT int64
}

// EditsSinceLastTest reports how many edits have happened since the most
// recent test run in the session.
type EditsSinceLastTest struct {
	EditCount int
	LastTestT int64
}

// EditedButUnread is a file edited at least once with no prior read of the
// same path in the same session.
type EditedButUnread struct {
	FilePath string
	EditT    int64
}

// DependsOn is one hop (or transitive hop, depth-bounded at 10) in the
// import closure: source_file depends on imported_module at the given
// minimum depth.
type DependsOn struct {
	SourceFile     string
	ImportedModule string
	Depth          int
}

// BlastRadius is a file reachable along reversed import edges from an
// edited file.
type BlastRadius struct {
	EditedFile   string
	AffectedFile string
	Depth        int
}

// UntestedEdit is an edited file with no test result recorded after its
// most recent edit.
type UntestedEdit struct {
	FilePath  string
	LastEditT int64
}

// ErrorCluster groups currently-failing tests that share a failure
// message, where more than one test shares it.
type ErrorCluster struct {
	Message string
	Tests   []string
}

// LikelyFix is an edit event immediately followed — with no intervening
// edit — by the same test transitioning from fail to pass.
type LikelyFix struct {
	FilePath string
	EditT    int64
	TestName string
	FromT    int64
	ToT      int64
}

const maxDepth = 10
