package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hnrobert/lusu/internal/identity"
	"github.com/hnrobert/lusu/internal/policy"
	"github.com/hnrobert/lusu/internal/privilege"
	"github.com/hnrobert/lusu/internal/runner"
)

// ExitFailure is the exit code for every failure before or while starting
// the command.
const ExitFailure = 1

const prefix = "lusu: "

// Diagnostic returns the one-line message for err, without prefix.
func Diagnostic(err error) string {
	var (
		fe *identity.FormatError
		ue *identity.UnknownIdentityError
		de *policy.DeniedError
		te *privilege.TransitionError
		ce *runner.ChildExecError
	)
	switch {
	case errors.As(err, &fe):
		return fmt.Sprintf("invalid user id: %s", fe.Literal)
	case errors.As(err, &ue):
		return fmt.Sprintf("unknown user: %s", ue.Literal)
	case errors.As(err, &de):
		return de.Error()
	case errors.As(err, &te):
		return fmt.Sprintf("unable to change to target identity: %s", te.Step)
	case errors.As(err, &ce):
		if errors.Is(ce.Err, runner.ErrNotFound) {
			return fmt.Sprintf("%s: command not found", ce.Command)
		}
		return fmt.Sprintf("unable to execute %s", ce.Command)
	}
	return singleLine(err.Error())
}

func singleLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// Reporter writes diagnostics for failed invocations.
type Reporter struct {
	W io.Writer
}

func New() *Reporter { return &Reporter{W: os.Stderr} }

// Failure prints the diagnostic for err and returns ExitFailure.
func (r *Reporter) Failure(err error) int {
	w := r.W
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, "%s%s\n", prefix, Diagnostic(err))
	return ExitFailure
}

// Success returns the command's own exit code; nothing is printed.
func (r *Reporter) Success(res runner.ExecResult) int {
	return res.ExitCode
}
