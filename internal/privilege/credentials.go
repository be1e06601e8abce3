package privilege

import (
	"fmt"
	"sort"

	"github.com/hnrobert/lusu/internal/identity"
)

// Credentials is a complete process identity.
type Credentials struct {
	UID    uint32
	GID    uint32
	Groups []uint32
}

// FromAccount computes the identity a switch to a installs: uid and gid for
// real, effective and saved ids, and exactly the account's group set.
func FromAccount(a identity.Account) Credentials {
	return Credentials{UID: a.UID, GID: a.GID, Groups: a.GroupSet()}
}

// Equal compares uid, gid and the group sets (order insensitive).
func (c Credentials) Equal(o Credentials) bool {
	return c.UID == o.UID && c.GID == o.GID && sameGroups(c.Groups, o.Groups)
}

func (c Credentials) String() string {
	return fmt.Sprintf("uid=%d gid=%d groups=%v", c.UID, c.GID, c.Groups)
}

// State is a snapshot of every process identity attribute.
type State struct {
	RUID, EUID, SUID int
	RGID, EGID, SGID int
	Groups           []int
}

// Snapshot reads the current state through p.
func Snapshot(p Primitives) (State, error) {
	var s State
	s.RUID, s.EUID, s.SUID = p.Getresuid()
	s.RGID, s.EGID, s.SGID = p.Getresgid()
	groups, err := p.Getgroups()
	if err != nil {
		return State{}, err
	}
	s.Groups = groups
	return s, nil
}

// Matches reports whether s is uniformly c: real, effective and saved ids
// all equal c's, and the group set equal to c's.
func (s State) Matches(c Credentials) bool {
	if s.RUID != s.EUID || s.EUID != s.SUID || s.RGID != s.EGID || s.EGID != s.SGID {
		return false
	}
	if s.EUID < 0 || s.EGID < 0 {
		return false
	}
	return s.Credentials().Equal(c)
}

// Credentials returns the effective ids and groups of s.
func (s State) Credentials() Credentials {
	return Credentials{UID: uint32(s.EUID), GID: uint32(s.EGID), Groups: toUint32(s.Groups)}
}

func sameGroups(a, b []uint32) bool {
	as, bs := dedupSorted(a), dedupSorted(b)
	if len(as) != len(bs) {
		return false
	}
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

func dedupSorted(in []uint32) []uint32 {
	out := append([]uint32(nil), in...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	n := 0
	for i, g := range out {
		if i > 0 && out[n-1] == g {
			continue
		}
		out[n] = g
		n++
	}
	return out[:n]
}

func toInts(in []uint32) []int {
	out := make([]int, len(in))
	for i, g := range in {
		out[i] = int(g)
	}
	return out
}

func toUint32(in []int) []uint32 {
	out := make([]uint32, len(in))
	for i, g := range in {
		out[i] = uint32(g)
	}
	return out
}
