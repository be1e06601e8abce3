package privilege

import (
	"fmt"
	"os"
	"time"

	"github.com/hnrobert/lusu/internal/identity"
	"github.com/hnrobert/lusu/internal/policy"
)

// NGroupsMax is the kernel limit on supplementary groups (NGROUPS_MAX).
const NGroupsMax = 65536

// Switcher is the single place process identity is changed.
type Switcher struct {
	prims     Primitives
	now       func() time.Time
	terminate func(err error)
}

type Option func(*Switcher)

// WithClock overrides the time used for account expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Switcher) { s.now = now }
}

// WithTerminate replaces the hook run when a partial switch cannot be
// undone. The default writes one line to stderr and exits with status 1.
func WithTerminate(fn func(err error)) Option {
	return func(s *Switcher) { s.terminate = fn }
}

func NewSwitcher(p Primitives, opts ...Option) *Switcher {
	s := &Switcher{prims: p, now: time.Now, terminate: exitOnMixedState}
	for _, o := range opts {
		o(s)
	}
	return s
}

func exitOnMixedState(err error) {
	fmt.Fprintf(os.Stderr, "lusu: unable to restore identity after failed switch: %v\n", err)
	os.Exit(1)
}

type step struct {
	name  string
	apply func() error
	undo  func() error
}

// Switch replaces the process identity with target's. grant must be the
// Allow result of the policy check for this switch.
//
// The group set is replaced, never merged: none of the invoker's groups
// survive unless target is itself a member.
func (s *Switcher) Switch(inv identity.InvokingContext, target identity.Account, grant policy.Result) (Credentials, error) {
	if !grant.Allowed() {
		return Credentials{}, &TransitionError{Step: StepAuthorize, Err: ErrNotAuthorized}
	}
	if target.Expired(s.now()) {
		return Credentials{}, &TransitionError{Step: StepAccount, Err: fmt.Errorf("%s: %w", target.Name, ErrAccountExpired)}
	}
	want := FromAccount(target)
	if len(want.Groups) > NGroupsMax {
		return Credentials{}, &TransitionError{Step: StepAccount, Err: ErrTooManyGroups}
	}

	prior, err := Snapshot(s.prims)
	if err != nil {
		return Credentials{}, &TransitionError{Step: StepSnapshot, Err: err}
	}

	uid, gid := int(want.UID), int(want.GID)
	steps := []step{
		{
			name:  StepGroups,
			apply: func() error { return s.prims.Setgroups(toInts(want.Groups)) },
			undo:  func() error { return s.prims.Setgroups(prior.Groups) },
		},
		{
			name:  StepGID,
			apply: func() error { return s.prims.Setresgid(gid, gid, gid) },
			undo:  func() error { return s.prims.Setresgid(prior.RGID, prior.EGID, prior.SGID) },
		},
		{
			name:  StepUID,
			apply: func() error { return s.prims.Setresuid(uid, uid, uid) },
			undo:  func() error { return s.prims.Setresuid(prior.RUID, prior.EUID, prior.SUID) },
		},
	}

	for i, st := range steps {
		if err := st.apply(); err != nil {
			return Credentials{}, s.rollback(steps[:i], &TransitionError{Step: st.name, Err: err, Mutated: i > 0})
		}
	}

	after, err := Snapshot(s.prims)
	if err != nil {
		return Credentials{}, s.rollback(steps, &TransitionError{Step: StepVerify, Err: err, Mutated: true})
	}
	if !after.Matches(want) {
		return Credentials{}, s.rollback(steps, &TransitionError{Step: StepVerify, Err: ErrVerifyFailed, Mutated: true})
	}
	return want, nil
}

// rollback undoes applied steps in reverse order. If any undo fails the
// identity is mixed and the terminate hook runs.
func (s *Switcher) rollback(applied []step, te *TransitionError) error {
	for i := len(applied) - 1; i >= 0; i-- {
		if err := applied[i].undo(); err != nil {
			te.RollbackErr = fmt.Errorf("%s: %w", applied[i].name, err)
			s.terminate(te)
			return te
		}
	}
	return te
}
