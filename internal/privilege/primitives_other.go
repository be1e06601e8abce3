//go:build !linux

package privilege

import "errors"

var errUnsupported = errors.New("identity switching is only supported on linux")

// System returns Primitives that refuse every change on this platform.
func System() Primitives {
	return unsupported{}
}

type unsupported struct{}

func (unsupported) Getresuid() (int, int, int) { return -1, -1, -1 }
func (unsupported) Getresgid() (int, int, int) { return -1, -1, -1 }
func (unsupported) Getgroups() ([]int, error) { return nil, errUnsupported }
func (unsupported) Setgroups([]int) error { return errUnsupported }
func (unsupported) Setresgid(int, int, int) error { return errUnsupported }
func (unsupported) Setresuid(int, int, int) error { return errUnsupported }
