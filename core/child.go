package core

import (
	"encoding/gob"
	"io"
	"time"

	"github.com/A1eksMa/PracticeRaptor/lang"
)

// ChildModeEnv is the sentinel environment variable cmd/server and cmd/worker
// check at the top of main() to re-enter as a Child Worker instead of
// running their normal entrypoint. Spawning os.Args[0] with this set is the
// only OS dependency this package requires: the ability to spawn a child of
// the same executable.
const ChildModeEnv = "PRACTICERAPTOR_CHILD_MODE"

// ChildRequest is what the Supervisor writes to the child's stdin.
type ChildRequest struct {
	Source     string
	Input      map[string]DynamicValue
	EntryPoint string
}

// ChildResponse is what the child writes back to its stdout. Exactly one of
// Fault or a success result is meaningful, distinguished by Success.
type ChildResponse struct {
	Success   bool
	Actual    DynamicValue
	ElapsedMs int64
	Fault     *ExecutionFault
}

// RunChild is the Child Worker entry point: it reads one ChildRequest
// from r, installs the Sandbox, evaluates the submission, invokes the entry
// point, and writes exactly one ChildResponse to w. Once the request is
// decoded, every failure in the submission produces a ChildResponse; a
// request that cannot be decoded is returned as an error and nothing is
// written.
func RunChild(r io.Reader, w io.Writer) error {
	var req ChildRequest
	if err := gob.NewDecoder(r).Decode(&req); err != nil {
		return err
	}
	resp := executeChild(req)
	return gob.NewEncoder(w).Encode(resp)
}

func executeChild(req ChildRequest) ChildResponse {
	program, err := lang.Parse(req.Source)
	if err != nil {
		return ChildResponse{Fault: faultFromParseErr(err)}
	}

	env := lang.NewSandboxEnv()
	interp := lang.NewInterp(env)
	if err := interp.Load(program); err != nil {
		return ChildResponse{Fault: faultFromRuntimeErr(err)}
	}

	fnVal, ok := env.Get(req.EntryPoint)
	if !ok || fnVal.Kind != lang.KindFunction {
		return ChildResponse{Fault: missingEntryFault(req.EntryPoint)}
	}

	kwargs := make(map[string]lang.Value, len(req.Input))
	for k, v := range req.Input {
		kwargs[k] = toLang(v)
	}

	start := time.Now()
	result, err := interp.CallEntryPoint(req.EntryPoint, kwargs)
	elapsed := time.Since(start)
	elapsedMs := elapsed.Round(time.Millisecond).Milliseconds()
	if elapsedMs < 0 {
		elapsedMs = 0
	}

	if err != nil {
		return ChildResponse{Fault: faultFromRuntimeErr(err)}
	}

	return ChildResponse{
		Success:   true,
		Actual:    fromLang(result),
		ElapsedMs: elapsedMs,
	}
}

func faultFromParseErr(err error) *ExecutionFault {
	if se, ok := err.(*lang.SyntaxError); ok {
		return syntaxFault(se.Line, se.Message)
	}
	return syntaxFault(0, err.Error())
}

func faultFromRuntimeErr(err error) *ExecutionFault {
	switch e := err.(type) {
	case *lang.PyError:
		return runtimeFault(e.Class, e.Message)
	case lang.MissingEntryError:
		return missingEntryFault(e.Name)
	default:
		return runtimeFault("RuntimeError", err.Error())
	}
}
