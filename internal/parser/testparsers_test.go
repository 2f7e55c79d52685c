package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anthropics/witness/internal/fact"
)

func TestParseJestStructured(t *testing.T) {
	output := `{"testResults":[{"assertionResults":[
		{"fullName":"adds numbers","status":"passed"},
		{"ancestorTitles":["math"],"title":"subtracts numbers","status":"failed","failureMessages":["expected 1 got 2"]}
	]}]}`
	out := parseJestLike(Input{ToolOutput: output})
	require.Len(t, out, 2)
	require.Equal(t, fact.TestPass, out[0].(fact.TestResult).Outcome)
	tr := out[1].(fact.TestResult)
	require.Equal(t, "math > subtracts numbers", tr.TestName)
	require.Equal(t, fact.TestFail, tr.Outcome)
	require.Equal(t, "expected 1 got 2", tr.Message)
}

func TestParseJestTextWithVitestError(t *testing.T) {
	output := "✓ adds numbers\n✗ subtracts numbers\n  → Error: expected 1 got 2\n"
	out := parseJestLike(Input{ToolOutput: output})
	require.Len(t, out, 2)
	tr := out[1].(fact.TestResult)
	require.Equal(t, fact.TestFail, tr.Outcome)
	require.Equal(t, "Error: expected 1 got 2", tr.Message)
}

func TestParsePytestTextJoinsFailureMessage(t *testing.T) {
	output := `================================== FAILURES ===================================
________________________________ test_add ________________________________
tests/test_math.py:5: in test_add
    assert add(1, 1) == 3
E   assert 2 == 3
=========================== short test summary info ============================
tests/test_math.py::test_add FAILED
tests/test_math.py::test_sub PASSED
`
	out := parsePytest(Input{ToolOutput: output})
	require.Len(t, out, 2)
	var failed, passed fact.TestResult
	for _, f := range out {
		tr := f.(fact.TestResult)
		if tr.Outcome == fact.TestFail {
			failed = tr
		} else {
			passed = tr
		}
	}
	require.Equal(t, "assert 2 == 3", failed.Message)
	require.Equal(t, fact.TestPass, passed.Outcome)
}

func TestParseGoTestCollectsFailDetail(t *testing.T) {
	output := `=== RUN   TestAdd
--- FAIL: TestAdd (0.00s)
    math_test.go:10: expected 3 got 2
--- PASS: TestSub (0.00s)
FAIL
`
	out := parseGoTest(Input{ToolOutput: output})
	require.Len(t, out, 2)
	fail := out[0].(fact.TestResult)
	require.Equal(t, "TestAdd", fail.TestName)
	require.Equal(t, fact.TestFail, fail.Outcome)
	require.Contains(t, fail.Message, "expected 3 got 2")
}

func TestParseCargoTwoPass(t *testing.T) {
	output := `running 2 tests
test it_adds ... ok
test it_subs ... FAILED

failures:

---- it_subs stdout ----
thread 'main' panicked at 'assertion failed', src/lib.rs:10:5

failures:
    it_subs

test result: FAILED. 1 passed; 1 failed
`
	out := parseCargo(Input{ToolOutput: output})
	require.Len(t, out, 2)
	var fail fact.TestResult
	for _, f := range out {
		tr := f.(fact.TestResult)
		if tr.Outcome == fact.TestFail {
			fail = tr
		}
	}
	require.Equal(t, "it_subs", fail.TestName)
	require.Contains(t, fail.Message, "panicked")
}

func TestParseESLintStructured(t *testing.T) {
	output := `[{"filePath":"src/a.js","messages":[{"line":5,"column":1,"ruleId":"no-unused-vars","severity":2,"message":"x unused"}]}]`
	out := parseESLint(Input{ToolOutput: output})
	require.Len(t, out, 1)
	lr := out[0].(fact.LintResult)
	require.Equal(t, fact.SeverityError, lr.Severity)
	require.Equal(t, "no-unused-vars", lr.Rule)
}

func TestParseFlake8Text(t *testing.T) {
	output := "src/a.py:3:1: E501 line too long\n"
	out := parseFlake8(Input{ToolOutput: output})
	require.Len(t, out, 1)
	lr := out[0].(fact.LintResult)
	require.Equal(t, fact.SeverityError, lr.Severity)
	require.Equal(t, "E501", lr.Rule)
}

func TestParseTSCParenForm(t *testing.T) {
	output := "src/a.ts(10,5): error TS2322: Type 'string' is not assignable to type 'number'.\n"
	out := parseTSC(Input{ToolOutput: output})
	require.Len(t, out, 1)
	te := out[0].(fact.TypeError)
	require.Equal(t, "src/a.ts", te.FilePath)
	require.Equal(t, 10, te.Line)
	require.Contains(t, te.Message, "TS2322")
}

func TestParseMypySkipsNotes(t *testing.T) {
	output := "a.py:3: note: revealed type\na.py:5: error: Incompatible types\n"
	out := parseMypy(Input{ToolOutput: output})
	require.Len(t, out, 1)
	te := out[0].(fact.TypeError)
	require.Equal(t, 5, te.Line)
}
