package config

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

var ErrUntrusted = errors.New("untrusted file")

// CheckTrusted refuses path unless it is a regular file owned by owner and
// not writable by group or others. A missing file passes; callers decide
// what absence means.
func CheckTrusted(path string, owner uint32) error {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		if errors.Is(err, unix.ENOENT) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if st.Mode&unix.S_IFMT != unix.S_IFREG {
		return fmt.Errorf("%s is not a regular file: %w", path, ErrUntrusted)
	}
	if st.Uid != owner {
		return fmt.Errorf("%s is owned by uid %d, should be %d: %w", path, st.Uid, owner, ErrUntrusted)
	}
	if os.FileMode(st.Mode)&0022 != 0 {
		return fmt.Errorf("%s is writable by group or others: %w", path, ErrUntrusted)
	}
	return nil
}
