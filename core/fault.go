package core

import "fmt"

// FaultKind tags the variant of ExecutionFault, mirroring the tagged-variant
// data model: Syntax, Runtime, Timeout, MissingEntry, WorkerCrashed.
type FaultKind int

const (
	FaultSyntax FaultKind = iota
	FaultRuntime
	FaultTimeout
	FaultMissingEntry
	FaultWorkerCrashed
)

// ExecutionFault is the tagged variant produced anywhere the core fails
// without a result to compare. It is never thrown, only returned.
type ExecutionFault struct {
	Kind FaultKind

	Line    int    // Syntax
	Message string // Syntax, WorkerCrashed (detail)

	ExceptionClass string // Runtime
	ExceptionMsg   string // Runtime

	DeadlineMs int // Timeout

	EntryName string // MissingEntry
}

func (f *ExecutionFault) Error() string {
	switch f.Kind {
	case FaultSyntax:
		return fmt.Sprintf("line %d: %s", f.Line, f.Message)
	case FaultRuntime:
		return fmt.Sprintf("%s: %s", f.ExceptionClass, f.ExceptionMsg)
	case FaultTimeout:
		// Round the deadline up to whole seconds so a sub-second deadline
		// (e.g. 300ms) doesn't render as the self-contradictory "exceeded 0
		// seconds".
		return fmt.Sprintf("Timeout: exceeded %d seconds", (f.DeadlineMs+999)/1000)
	case FaultMissingEntry:
		return fmt.Sprintf("Function '%s' not found in code", f.EntryName)
	case FaultWorkerCrashed:
		return fmt.Sprintf("worker crashed: %s", f.Message)
	default:
		return "unknown execution fault"
	}
}

func syntaxFault(line int, message string) *ExecutionFault {
	return &ExecutionFault{Kind: FaultSyntax, Line: line, Message: message}
}

func runtimeFault(class, message string) *ExecutionFault {
	return &ExecutionFault{Kind: FaultRuntime, ExceptionClass: class, ExceptionMsg: message}
}

func timeoutFault(deadlineMs int) *ExecutionFault {
	return &ExecutionFault{Kind: FaultTimeout, DeadlineMs: deadlineMs}
}

func missingEntryFault(name string) *ExecutionFault {
	return &ExecutionFault{Kind: FaultMissingEntry, EntryName: name}
}

func workerCrashedFault(detail string) *ExecutionFault {
	return &ExecutionFault{Kind: FaultWorkerCrashed, Message: detail}
}
