package usermgr

import (
	"fmt"

	"github.com/hnrobert/lusu/internal/hostfs"
	"github.com/hnrobert/lusu/internal/identity"
)

var (
	ErrUserNotFound = fmt.Errorf("user not found: %w", identity.ErrNoAccount)
)

// Database implements identity.Directory over passwd, group and shadow files.
type Database struct {
	PasswdPath string
	ShadowPath string
	GroupPath  string
}

var _ identity.Directory = (*Database)(nil)

// NewDefault returns a Database for the files under the current hostfs root.
func NewDefault() (*Database, error) {
	passwd, err := hostfs.Path(hostfs.EtcPasswdRel)
	if err != nil {
		return nil, err
	}
	shadow, err := hostfs.Path(hostfs.EtcShadowRel)
	if err != nil {
		return nil, err
	}
	group, err := hostfs.Path(hostfs.EtcGroupRel)
	if err != nil {
		return nil, err
	}
	return &Database{PasswdPath: passwd, ShadowPath: shadow, GroupPath: group}, nil
}

func (d *Database) UserByName(name string) (identity.Account, error) {
	pw, err := LoadPasswd(d.PasswdPath)
	if err != nil {
		return identity.Account{}, err
	}
	pe := pw.Find(name)
	if pe == nil {
		return identity.Account{}, fmt.Errorf("%q: %w", name, ErrUserNotFound)
	}
	return d.account(pe)
}

func (d *Database) UserByUID(uid uint32) (identity.Account, error) {
	pw, err := LoadPasswd(d.PasswdPath)
	if err != nil {
		return identity.Account{}, err
	}
	pe := pw.FindByUID(uid)
	if pe == nil {
		return identity.Account{}, fmt.Errorf("uid %d: %w", uid, ErrUserNotFound)
	}
	return d.account(pe)
}

// GroupNames maps gids to group names, skipping gids without a group entry.
func (d *Database) GroupNames(gids []uint32) ([]string, error) {
	gr, err := LoadGroup(d.GroupPath)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(gids))
	for _, gid := range gids {
		if g := gr.FindByGID(gid); g != nil {
			out = append(out, g.Name)
		}
	}
	return out, nil
}

func (d *Database) account(pe *PasswdEntry) (identity.Account, error) {
	gr, err := LoadGroup(d.GroupPath)
	if err != nil {
		return identity.Account{}, err
	}
	acct := identity.Account{
		Name:      pe.Name,
		UID:       pe.UID,
		GID:       pe.GID,
		Secondary: gr.MemberOf(pe.Name),
		Home:      pe.Home,
		Shell:     pe.Shell,
	}
	if se := d.shadowEntry(pe.Name); se != nil {
		acct.ExpiresAt = se.ExpiresAt()
	}
	return acct, nil
}

// shadowEntry is best effort: shadow is often unreadable for the real uid
// and may be missing entirely.
func (d *Database) shadowEntry(name string) *ShadowEntry {
	if d.ShadowPath == "" {
		return nil
	}
	sh, err := LoadShadow(d.ShadowPath)
	if err != nil {
		return nil
	}
	return sh.Find(name)
}
