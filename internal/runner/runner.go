package runner

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"golang.org/x/term"
)

// DefaultSecurePath is the PATH used to find commands and handed to them.
const DefaultSecurePath = "/usr/local/sbin:/usr/local/bin:/usr/sbin:/usr/bin:/sbin:/bin"

var ErrNotFound = errors.New("command not found")

// ExecResult is the outcome of a command that was started.
type ExecResult struct {
	ExitCode int
	// Signal is set when the command was killed by a signal; ExitCode is
	// then 128 plus the signal number.
	Signal syscall.Signal
}

// ChildExecError reports a command that could not be started.
type ChildExecError struct {
	Command string
	Err     error
}

func (e *ChildExecError) Error() string {
	if errors.Is(e.Err, ErrNotFound) {
		return fmt.Sprintf("%s: command not found", e.Command)
	}
	return fmt.Sprintf("unable to execute %s: %v", e.Command, e.Err)
}

func (e *ChildExecError) Unwrap() error { return e.Err }

// Runner starts one command with the caller's stdio and waits for it.
type Runner struct {
	SecurePath string
	UsePTY     bool
	Stdin      io.Reader
	Stdout     io.Writer
	Stderr     io.Writer
}

func New() *Runner {
	return &Runner{
		SecurePath: DefaultSecurePath,
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	}
}

// Resolve finds the executable for name. Names with a slash are used as
// given; others are searched in SecurePath only. On failure the returned
// path is the absolute candidate for a name with a slash, and empty
// otherwise.
func (r *Runner) Resolve(name string) (string, error) {
	if name == "" {
		return "", &ChildExecError{Command: name, Err: ErrNotFound}
	}
	if strings.Contains(name, "/") {
		abs, err := filepath.Abs(name)
		if err != nil {
			return "", &ChildExecError{Command: name, Err: err}
		}
		if err := findExecutable(abs); err != nil {
			return abs, &ChildExecError{Command: name, Err: err}
		}
		return abs, nil
	}
	for _, dir := range filepath.SplitList(r.securePath()) {
		if dir == "" || !filepath.IsAbs(dir) {
			continue
		}
		p := filepath.Join(dir, name)
		if findExecutable(p) == nil {
			return p, nil
		}
	}
	return "", &ChildExecError{Command: name, Err: ErrNotFound}
}

func (r *Runner) securePath() string {
	if r.SecurePath == "" {
		return DefaultSecurePath
	}
	return r.SecurePath
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound
		}
		return err
	}
	if m := d.Mode(); m.IsDir() || m&0111 == 0 {
		return os.ErrPermission
	}
	return nil
}

// Run executes path with argv (argv[0] is passed through as typed) and
// env. stdout and stderr of the command reach the runner's writers
// unmodified. Exactly one attempt is made.
func (r *Runner) Run(path string, argv []string, env []string) (ExecResult, error) {
	if len(argv) == 0 {
		return ExecResult{}, &ChildExecError{Command: path, Err: ErrNotFound}
	}
	cmd := exec.Command(path)
	cmd.Args = argv
	cmd.Env = env

	if tty, ok := r.Stdin.(*os.File); ok && r.UsePTY && term.IsTerminal(int(tty.Fd())) {
		return r.runPTY(cmd, tty)
	}

	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if err := cmd.Start(); err != nil {
		return ExecResult{}, &ChildExecError{Command: argv[0], Err: err}
	}
	stop := forwardSignals(cmd.Process)
	err := cmd.Wait()
	stop()
	return exitResult(err)
}

// forwardSignals relays termination signals sent to us to the child until
// stop is called.
func forwardSignals(p *os.Process) (stop func()) {
	ch := make(chan os.Signal, 4)
	signal.Notify(ch, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGUSR1, syscall.SIGUSR2)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-ch:
				_ = p.Signal(sig)
			case <-done:
				return
			}
		}
	}()
	return func() {
		signal.Stop(ch)
		close(done)
	}
}

func exitResult(err error) (ExecResult, error) {
	if err == nil {
		return ExecResult{ExitCode: 0}, nil
	}
	var ee *exec.ExitError
	if !errors.As(err, &ee) {
		return ExecResult{}, err
	}
	if ws, ok := ee.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return ExecResult{ExitCode: 128 + int(ws.Signal()), Signal: ws.Signal()}, nil
	}
	return ExecResult{ExitCode: ee.ExitCode()}, nil
}
