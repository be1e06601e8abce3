// Package pipeline runs one invocation: resolve the target, ask the
// policy, switch identity, then run the command.
package pipeline

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/hnrobert/lusu/internal/identity"
	"github.com/hnrobert/lusu/internal/logger"
	"github.com/hnrobert/lusu/internal/policy"
	"github.com/hnrobert/lusu/internal/privilege"
	"github.com/hnrobert/lusu/internal/report"
	"github.com/hnrobert/lusu/internal/runner"
)

var ErrNoCommand = errors.New("no command specified")

type Switcher interface {
	Switch(inv identity.InvokingContext, target identity.Account, grant policy.Result) (privilege.Credentials, error)
}

type Runner interface {
	Resolve(name string) (string, error)
	Run(path string, argv []string, env []string) (runner.ExecResult, error)
}

type Pipeline struct {
	Directory identity.Directory
	Policy    policy.Evaluator
	Switcher  Switcher
	Runner    Runner
	Reporter  *report.Reporter
	Env       runner.EnvOptions
}

// Invocation is one request: run Command as the account named by Spec.
type Invocation struct {
	Invoker identity.InvokingContext
	Spec    string
	Command []string
}

// Outcome is what Execute observed. Result is only meaningful when Err is
// nil and Tracker reached StageDone.
type Outcome struct {
	Session     string
	Tracker     report.Tracker
	Target      identity.Account
	Credentials privilege.Credentials
	Result      runner.ExecResult
	Err         error
}

// Run executes inv and returns the process exit code. Failures are
// reported through the Reporter.
func (p *Pipeline) Run(inv Invocation) int {
	out := p.Execute(inv)
	rep := p.Reporter
	if rep == nil {
		rep = report.New()
	}
	if out.Err != nil {
		return rep.Failure(out.Err)
	}
	return rep.Success(out.Result)
}

// Execute runs the stages in order and stops at the first failure. Nothing
// after the failing stage has any effect.
func (p *Pipeline) Execute(inv Invocation) Outcome {
	out := Outcome{Session: uuid.NewString()}
	fail := func(err error) Outcome {
		out.Tracker.Fail(err)
		out.Err = err
		logger.Warn("[%s] %s failed: %v", out.Session, out.Tracker.Stage(), err)
		return out
	}
	logger.Info("[%s] %s (uid %d) requests %q as %q", out.Session, inv.Invoker.Name, inv.Invoker.UID, strings.Join(inv.Command, " "), inv.Spec)

	if len(inv.Command) == 0 {
		return fail(ErrNoCommand)
	}

	target, err := identity.NewResolver(p.Directory).Resolve(inv.Spec)
	if err != nil {
		return fail(err)
	}
	out.Target = target

	_ = out.Tracker.Advance(report.StageEvaluating)
	// The policy decides before a failed lookup is reported. A denial
	// names the command as typed.
	path, lookupErr := p.Runner.Resolve(inv.Command[0])
	match := path
	if match == "" {
		match = inv.Command[0]
	}
	req := policy.Request{
		Invoker: inv.Invoker,
		Target:  target,
		Command: append([]string{match}, inv.Command[1:]...),
	}
	res := p.Policy.Evaluate(req)
	if !res.Allowed() {
		return fail(&policy.DeniedError{
			Invoker: inv.Invoker.Name,
			Target:  target.Name,
			Command: inv.Command,
			Result:  res,
		})
	}
	if lookupErr != nil {
		return fail(lookupErr)
	}
	logger.Info("[%s] allowed by rule %q", out.Session, res.Rule)

	_ = out.Tracker.Advance(report.StageSwitching)
	creds, err := p.Switcher.Switch(inv.Invoker, target, res)
	if err != nil {
		return fail(err)
	}
	out.Credentials = creds
	logger.Info("[%s] switched to %s", out.Session, creds)

	_ = out.Tracker.Advance(report.StageExecuting)
	env := runner.Environment(target, inv.Invoker, inv.Command, p.Env)
	result, err := p.Runner.Run(path, inv.Command, env)
	if err != nil {
		return fail(err)
	}
	out.Result = result
	_ = out.Tracker.Advance(report.StageDone)
	logger.Info("[%s] %s exited with %d", out.Session, path, result.ExitCode)
	return out
}
