package runner

import (
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/creack/pty"
	"golang.org/x/term"
)

// runPTY runs cmd on a new pseudo terminal, with tty switched to raw mode
// so keystrokes reach the command unprocessed. The command's stdout and
// stderr both arrive through the pty.
func (r *Runner) runPTY(cmd *exec.Cmd, tty *os.File) (ExecResult, error) {
	// Size errors leave the pty at its default size.
	size, _ := pty.GetsizeFull(tty)
	ptmx, err := pty.StartWithSize(cmd, size)
	if err != nil {
		return ExecResult{}, &ChildExecError{Command: cmd.Args[0], Err: err}
	}
	defer func() { _ = ptmx.Close() }()

	winch := make(chan os.Signal, 1)
	signal.Notify(winch, syscall.SIGWINCH)
	defer func() {
		signal.Stop(winch)
		close(winch)
	}()
	go func() {
		for range winch {
			_ = pty.InheritSize(tty, ptmx)
		}
	}()

	if state, err := term.MakeRaw(int(tty.Fd())); err == nil {
		defer func() { _ = term.Restore(int(tty.Fd()), state) }()
	}

	stop := forwardSignals(cmd.Process)
	defer stop()

	go func() { _, _ = io.Copy(ptmx, tty) }()

	outDone := make(chan struct{})
	go func() {
		defer close(outDone)
		// Ends with EIO once every holder of the child side has closed it.
		_, _ = io.Copy(r.Stdout, ptmx)
	}()

	err = cmd.Wait()
	<-outDone
	return exitResult(err)
}
