package core

// TestCase is one input/expected pair the Test Runner drives against the
// submission. Immutable once constructed; the core never mutates it.
type TestCase struct {
	Input       map[string]DynamicValue
	Expected    DynamicValue
	Description string
	Hidden      bool // advisory, not enforced by the core
}

// TestVerdict is the pass/fail record for one test case.
type TestVerdict struct {
	TestCase     TestCase
	Passed       bool
	Actual       DynamicValue
	HasActual    bool // false on timeout, where Actual is meaningless
	ElapsedMs    int64
	ErrorMessage string
}

// SuiteVerdict is produced by RunSuite exactly once per submission.
type SuiteVerdict struct {
	Success        bool
	TestResults    []TestVerdict
	TotalElapsedMs int64
	Fatal          *ExecutionFault // set only for Syntax / WorkerCrashed
}

// DefaultDeadlineMs is used by callers that omit deadline_ms.
const DefaultDeadlineMs = 5000

// RunSuite iterates test cases in the caller's order, driving the
// Supervisor per case, and aggregates a SuiteVerdict with first-failure
// semantics: it stops at the first non-passing verdict.
func RunSuite(source string, testCases []TestCase, entryPoint string, deadlineMs int, sup *Supervisor) SuiteVerdict {
	if deadlineMs <= 0 {
		deadlineMs = DefaultDeadlineMs
	}
	// Callers can pass deadline_ms directly; the [1, 60000] bound applies to
	// every path, not just the env-loaded default.
	deadlineMs = clampDeadline(deadlineMs)
	if fault := ValidateSyntax(source); fault != nil {
		return SuiteVerdict{Success: false, Fatal: fault}
	}

	var results []TestVerdict
	var totalElapsed int64

	for _, tc := range testCases {
		outcome, fault := sup.RunOne(source, tc.Input, entryPoint, deadlineMs)

		if fault != nil {
			switch fault.Kind {
			case FaultWorkerCrashed:
				// Fatal for the suite; no partial verdicts are returned.
				return SuiteVerdict{Success: false, Fatal: fault}
			case FaultTimeout:
				results = append(results, TestVerdict{
					TestCase:     tc,
					Passed:       false,
					HasActual:    false,
					ElapsedMs:    int64(deadlineMs),
					ErrorMessage: fault.Error(),
				})
				return finalize(results, totalElapsed+int64(deadlineMs), len(testCases))
			default:
				results = append(results, TestVerdict{TestCase: tc, Passed: false, ErrorMessage: fault.Error()})
				return finalize(results, totalElapsed, len(testCases))
			}
		}

		if outcome.Fault != nil {
			switch outcome.Fault.Kind {
			case FaultMissingEntry:
				results = append(results, TestVerdict{
					TestCase:     tc,
					Passed:       false,
					HasActual:    false,
					ElapsedMs:    0,
					ErrorMessage: outcome.Fault.Error(),
				})
				return finalize(results, totalElapsed, len(testCases))
			default:
				results = append(results, TestVerdict{
					TestCase:     tc,
					Passed:       false,
					HasActual:    false,
					ElapsedMs:    outcome.ElapsedMs,
					ErrorMessage: outcome.Fault.Error(),
				})
				totalElapsed += outcome.ElapsedMs
				return finalize(results, totalElapsed, len(testCases))
			}
		}

		passed := Compare(outcome.Actual, tc.Expected)
		verdict := TestVerdict{
			TestCase:  tc,
			Passed:    passed,
			Actual:    outcome.Actual,
			HasActual: true,
			ElapsedMs: outcome.ElapsedMs,
		}
		if !passed {
			verdict.ErrorMessage = "Expected " + Repr(tc.Expected) + ", got " + Repr(outcome.Actual)
		}
		results = append(results, verdict)
		totalElapsed += outcome.ElapsedMs
		if !passed {
			return finalize(results, totalElapsed, len(testCases))
		}
	}

	return finalize(results, totalElapsed, len(testCases))
}

func finalize(results []TestVerdict, totalElapsed int64, caseCount int) SuiteVerdict {
	success := len(results) == caseCount
	if success {
		for _, r := range results {
			if !r.Passed {
				success = false
				break
			}
		}
	}
	return SuiteVerdict{Success: success, TestResults: results, TotalElapsedMs: totalElapsed}
}
