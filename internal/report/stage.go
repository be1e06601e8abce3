package report

import "fmt"

type Stage int

const (
	StageResolving Stage = iota
	StageEvaluating
	StageSwitching
	StageExecuting
	StageDone
)

var stageNames = [...]string{"resolving", "evaluating", "switching", "executing", "done"}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("stage(%d)", int(s))
	}
	return stageNames[s]
}

// Tracker records how far an invocation got. It only moves forward, and
// stops moving once a stage has failed.
type Tracker struct {
	stage  Stage
	failed bool
	err    error
}

func (t *Tracker) Stage() Stage { return t.stage }

func (t *Tracker) Failed() bool { return t.failed }

func (t *Tracker) Err() error { return t.err }

// Advance moves to next. Backward moves, and any move after Fail, are errors.
func (t *Tracker) Advance(next Stage) error {
	if t.failed {
		return fmt.Errorf("advance to %s: already failed at %s", next, t.stage)
	}
	if next < t.stage || next > StageDone {
		return fmt.Errorf("advance from %s to %s: not allowed", t.stage, next)
	}
	t.stage = next
	return nil
}

// Fail marks the current stage terminal. Only the first failure is kept.
func (t *Tracker) Fail(err error) {
	if t.failed {
		return
	}
	t.failed = true
	t.err = err
}
