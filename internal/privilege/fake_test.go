package privilege

import "errors"

var errEPERM = errors.New("operation not permitted")

// fakeProcess records identity calls and can fail chosen setters.
type fakeProcess struct {
	ruid, euid, suid int
	rgid, egid, sgid int
	groups           []int

	// failX makes the n-th call (1-based) of a setter fail; 0 never fails.
	failGroups, failGID, failUID    int
	callsGroups, callsGID, callsUID int

	// lie makes Getresuid report root no matter what was set.
	lie   bool
	calls []string
}

func newFakeProcess(uid, gid int, groups ...int) *fakeProcess {
	return &fakeProcess{ruid: uid, euid: uid, suid: uid, rgid: gid, egid: gid, sgid: gid, groups: groups}
}

func (f *fakeProcess) Getresuid() (int, int, int) {
	if f.lie {
		return 0, 0, 0
	}
	return f.ruid, f.euid, f.suid
}

func (f *fakeProcess) Getresgid() (int, int, int) { return f.rgid, f.egid, f.sgid }

func (f *fakeProcess) Getgroups() ([]int, error) { return append([]int(nil), f.groups...), nil }

func (f *fakeProcess) Setgroups(gids []int) error {
	f.calls = append(f.calls, "setgroups")
	f.callsGroups++
	if f.callsGroups == f.failGroups || f.euid != 0 {
		return errEPERM
	}
	f.groups = append([]int(nil), gids...)
	return nil
}

func (f *fakeProcess) Setresgid(r, e, s int) error {
	f.calls = append(f.calls, "setresgid")
	f.callsGID++
	if f.callsGID == f.failGID || f.euid != 0 {
		return errEPERM
	}
	f.rgid, f.egid, f.sgid = r, e, s
	return nil
}

func (f *fakeProcess) Setresuid(r, e, s int) error {
	f.calls = append(f.calls, "setresuid")
	f.callsUID++
	if f.callsUID == f.failUID || f.euid != 0 {
		return errEPERM
	}
	f.ruid, f.euid, f.suid = r, e, s
	return nil
}

func (f *fakeProcess) state() State {
	return State{
		RUID: f.ruid, EUID: f.euid, SUID: f.suid,
		RGID: f.rgid, EGID: f.egid, SGID: f.sgid,
		Groups: append([]int(nil), f.groups...),
	}
}
