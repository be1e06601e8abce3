//go:build linux

package privilege

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// System returns the Primitives of the running process.
//
// The setters go through package syscall, whose Linux implementations
// apply the change to all runtime threads; the unix variants only affect
// the calling thread.
func System() Primitives {
	return system{}
}

type system struct{}

func (system) Getresuid() (int, int, int) { return unix.Getresuid() }

func (system) Getresgid() (int, int, int) { return unix.Getresgid() }

func (system) Getgroups() ([]int, error) { return unix.Getgroups() }

func (system) Setgroups(gids []int) error { return syscall.Setgroups(gids) }

func (system) Setresgid(r, e, s int) error { return syscall.Setresgid(r, e, s) }

func (system) Setresuid(r, e, s int) error { return syscall.Setresuid(r, e, s) }
