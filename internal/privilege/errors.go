package privilege

import (
	"errors"
	"fmt"
)

var (
	ErrNotAuthorized  = errors.New("no allow decision for this switch")
	ErrAccountExpired = errors.New("account has expired")
	ErrTooManyGroups  = errors.New("too many supplementary groups")
	ErrVerifyFailed   = errors.New("identity after switch does not match target")
)

// Steps of a transition, in the order they run.
const (
	StepAuthorize = "authorize"
	StepAccount   = "account"
	StepSnapshot  = "snapshot"
	StepGroups    = "setgroups"
	StepGID       = "setresgid"
	StepUID       = "setresuid"
	StepVerify    = "verify"
)

// TransitionError reports a switch that did not complete. When Mutated is
// false the process identity was never touched.
type TransitionError struct {
	Step        string
	Err         error
	Mutated     bool
	RollbackErr error
}

func (e *TransitionError) Error() string {
	if e.RollbackErr != nil {
		return fmt.Sprintf("%s: %v (rollback: %v)", e.Step, e.Err, e.RollbackErr)
	}
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *TransitionError) Unwrap() error { return e.Err }
