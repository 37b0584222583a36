package core

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"
)

// Supervisor owns exactly one Child Worker process for the lifetime of
// one test case and enforces its wall-clock deadline. It never returns while
// the child is still runnable.
type Supervisor struct {
	// GraceMs is how long the supervisor waits after requesting termination
	// before force-killing the child.
	GraceMs int
}

func NewSupervisor(graceMs int) *Supervisor {
	if graceMs <= 0 {
		graceMs = 150
	}
	return &Supervisor{GraceMs: graceMs}
}

// RunOne spawns a Child Worker with the given payload and waits at most
// deadlineMs for it to finish. On success it returns the child's outcome
// (either a passing result or an ExecutionFault); on timeout it returns a
// Timeout ExecutionFault after guaranteeing the child is terminated.
func (s *Supervisor) RunOne(source string, input map[string]DynamicValue, entryPoint string, deadlineMs int) (*ChildResponse, *ExecutionFault) {
	req := ChildRequest{Source: source, Input: deepCopyInput(input), EntryPoint: entryPoint}

	var reqBuf bytes.Buffer
	if err := gob.NewEncoder(&reqBuf).Encode(req); err != nil {
		return nil, workerCrashedFault(fmt.Sprintf("failed to encode request: %v", err))
	}

	cmd := exec.Command(os.Args[0])
	cmd.Env = append(os.Environ(), ChildModeEnv+"=1")
	cmd.Stdin = bytes.NewReader(reqBuf.Bytes())
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Start(); err != nil {
		return nil, workerCrashedFault(fmt.Sprintf("failed to start child: %v", err))
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case waitErr := <-done:
		if waitErr != nil && stdout.Len() == 0 {
			return nil, workerCrashedFault(fmt.Sprintf("child exited without output: %v", waitErr))
		}
		var resp ChildResponse
		if err := gob.NewDecoder(&stdout).Decode(&resp); err != nil {
			return nil, workerCrashedFault("no outcome")
		}
		return &resp, nil

	case <-time.After(time.Duration(deadlineMs) * time.Millisecond):
		s.terminate(cmd, done)
		return nil, timeoutFault(deadlineMs)
	}
}

// terminate requests termination, waits a bounded grace interval, then
// force-kills if the child is still alive. Idempotent and safe to call even
// if the child has already exited.
func (s *Supervisor) terminate(cmd *exec.Cmd, done <-chan error) {
	if cmd.Process == nil {
		return
	}
	_ = cmd.Process.Signal(syscall.SIGTERM)

	select {
	case <-done:
		return
	case <-time.After(time.Duration(s.GraceMs) * time.Millisecond):
	}

	_ = cmd.Process.Kill()
	<-done
}

// deepCopyInput ensures the child cannot observe mutations applied to the
// caller's test-case data after handoff, independent of whatever copying the
// gob encode/decode across the pipe already does.
func deepCopyInput(in map[string]DynamicValue) map[string]DynamicValue {
	out := make(map[string]DynamicValue, len(in))
	for k, v := range in {
		out[k] = deepCopyValue(v)
	}
	return out
}

func deepCopyValue(v DynamicValue) DynamicValue {
	out := v
	if v.Seq != nil {
		out.Seq = make([]DynamicValue, len(v.Seq))
		for i, it := range v.Seq {
			out.Seq[i] = deepCopyValue(it)
		}
	}
	if v.MapKeys != nil {
		out.MapKeys = append([]string{}, v.MapKeys...)
		out.MapVals = make([]DynamicValue, len(v.MapVals))
		for i, it := range v.MapVals {
			out.MapVals[i] = deepCopyValue(it)
		}
	}
	return out
}
