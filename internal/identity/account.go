package identity

import (
	"sort"
	"time"
)

// Account is a resolved local account.
type Account struct {
	Name string
	UID  uint32
	GID  uint32
	// Secondary holds the gids of the groups listing the account as a member.
	Secondary []uint32
	Home      string
	Shell     string
	// ExpiresAt is zero when the account never expires or its expiry is unknown.
	ExpiresAt time.Time
}

// GroupSet returns the supplementary group vector a login as this account
// gets: the primary gid first, then the secondary gids in ascending order,
// without duplicates.
func (a Account) GroupSet() []uint32 {
	out := make([]uint32, 0, len(a.Secondary)+1)
	out = append(out, a.GID)
	rest := make([]uint32, 0, len(a.Secondary))
	for _, g := range a.Secondary {
		if g != a.GID {
			rest = append(rest, g)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	for i, g := range rest {
		if i > 0 && rest[i-1] == g {
			continue
		}
		out = append(out, g)
	}
	return out
}

// Expired reports whether the account expiry lies at or before now.
func (a Account) Expired(now time.Time) bool {
	return !a.ExpiresAt.IsZero() && !now.Before(a.ExpiresAt)
}

// InvokingContext describes the user running the command.
type InvokingContext struct {
	UID        uint32
	GID        uint32
	Name       string
	Groups     []uint32
	GroupNames []string
}

// IsRoot reports whether the invoker's real uid is 0.
func (c InvokingContext) IsRoot() bool {
	return c.UID == 0
}
