package usermgr

type PasswdFile struct {
	pf parsedFile[PasswdEntry]
}

func LoadPasswd(path string) (*PasswdFile, error) {
	pf, err := loadColonFile(path, func(parts []string) *PasswdEntry {
		if len(parts) < 7 || parts[0] == "" {
			return nil
		}
		uid, err := atou32(parts[2], "passwd.uid")
		if err != nil {
			return nil
		}
		gid, err := atou32(parts[3], "passwd.gid")
		if err != nil {
			return nil
		}
		return &PasswdEntry{
			Name:   parts[0],
			Passwd: parts[1],
			UID:    uid,
			GID:    gid,
			Gecos:  parts[4],
			Home:   parts[5],
			Shell:  parts[6],
		}
	})
	if err != nil {
		return nil, err
	}
	return &PasswdFile{pf: pf}, nil
}

// Find returns the first entry named name, like getpwnam(3).
func (f *PasswdFile) Find(name string) *PasswdEntry {
	for _, e := range f.pf.entries() {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// FindByUID returns the first entry with the given uid, like getpwuid(3).
func (f *PasswdFile) FindByUID(uid uint32) *PasswdEntry {
	for _, e := range f.pf.entries() {
		if e.UID == uid {
			return e
		}
	}
	return nil
}

