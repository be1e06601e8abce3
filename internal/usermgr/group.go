package usermgr

import (
	"sort"
	"strings"
)

type GroupFile struct {
	pf parsedFile[GroupEntry]
}

func LoadGroup(path string) (*GroupFile, error) {
	pf, err := loadColonFile(path, func(parts []string) *GroupEntry {
		if len(parts) < 4 || parts[0] == "" {
			return nil
		}
		gid, err := atou32(parts[2], "group.gid")
		if err != nil {
			return nil
		}
		members := []string{}
		for _, m := range strings.Split(parts[3], ",") {
			if m = strings.TrimSpace(m); m != "" {
				members = append(members, m)
			}
		}
		return &GroupEntry{Name: parts[0], Passwd: parts[1], GID: gid, Members: members}
	})
	if err != nil {
		return nil, err
	}
	return &GroupFile{pf: pf}, nil
}

func (f *GroupFile) FindByGID(gid uint32) *GroupEntry {
	for _, e := range f.pf.entries() {
		if e.GID == gid {
			return e
		}
	}
	return nil
}

// MemberOf returns the gids of all groups listing user as a member,
// ascending and without duplicates.
func (f *GroupFile) MemberOf(user string) []uint32 {
	seen := map[uint32]bool{}
	var out []uint32
	for _, g := range f.pf.entries() {
		if seen[g.GID] {
			continue
		}
		for _, m := range g.Members {
			if m == user {
				seen[g.GID] = true
				out = append(out, g.GID)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

