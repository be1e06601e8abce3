package identity

import (
	"errors"
	"fmt"
)

// Directory looks up accounts. Lookups that find nothing return an error
// matching ErrNoAccount; any other error is a failure to read the database.
type Directory interface {
	UserByName(name string) (Account, error)
	UserByUID(uid uint32) (Account, error)
	GroupNames(gids []uint32) ([]string, error)
}

// Resolver turns target specifiers into accounts.
type Resolver struct {
	dir Directory
}

func NewResolver(dir Directory) *Resolver {
	return &Resolver{dir: dir}
}

// Resolve parses s and looks the account up. Every call reads the
// directory again.
func (r *Resolver) Resolve(s string) (Account, error) {
	spec, err := ParseSpec(s)
	if err != nil {
		return Account{}, err
	}
	return r.ResolveSpec(spec)
}

func (r *Resolver) ResolveSpec(spec TargetSpec) (Account, error) {
	var (
		acct Account
		err  error
	)
	switch spec.Kind {
	case ByUID:
		acct, err = r.dir.UserByUID(spec.UID)
	default:
		if spec.Name == "" {
			return Account{}, &UnknownIdentityError{Literal: spec.Literal}
		}
		acct, err = r.dir.UserByName(spec.Name)
	}
	if err != nil {
		if errors.Is(err, ErrNoAccount) {
			return Account{}, &UnknownIdentityError{Literal: spec.Literal}
		}
		return Account{}, fmt.Errorf("lookup %s: %w", spec.Literal, err)
	}
	return acct, nil
}

// CurrentInvoker builds the InvokingContext for real uid/gid and the
// caller's current supplementary groups.
func CurrentInvoker(dir Directory, uid, gid uint32, groups []uint32) (InvokingContext, error) {
	acct, err := dir.UserByUID(uid)
	if err != nil {
		if errors.Is(err, ErrNoAccount) {
			return InvokingContext{}, ErrInvokerUnknown
		}
		return InvokingContext{}, err
	}
	names, err := dir.GroupNames(groups)
	if err != nil {
		return InvokingContext{}, err
	}
	return InvokingContext{
		UID:        uid,
		GID:        gid,
		Name:       acct.Name,
		Groups:     append([]uint32(nil), groups...),
		GroupNames: names,
	}, nil
}
