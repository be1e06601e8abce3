package usermgr

import (
	"strconv"
	"strings"
	"time"
)

type ShadowFile struct {
	pf parsedFile[ShadowEntry]
}

func LoadShadow(path string) (*ShadowFile, error) {
	pf, err := loadColonFile(path, func(parts []string) *ShadowEntry {
		if len(parts) < 2 || parts[0] == "" {
			return nil
		}
		for len(parts) < 9 {
			parts = append(parts, "")
		}
		return &ShadowEntry{
			Name:       parts[0],
			Hash:       parts[1],
			LastChange: parts[2],
			Min:        parts[3],
			Max:        parts[4],
			Warn:       parts[5],
			Inactive:   parts[6],
			Expire:     parts[7],
			Reserved:   parts[8],
		}
	})
	if err != nil {
		return nil, err
	}
	return &ShadowFile{pf: pf}, nil
}

func (f *ShadowFile) Find(name string) *ShadowEntry {
	for _, e := range f.pf.entries() {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// ExpiresAt converts the expire field (days since the epoch) to a time.
// An empty or unparsable field means the account never expires.
func (e *ShadowEntry) ExpiresAt() time.Time {
	days, err := strconv.ParseInt(strings.TrimSpace(e.Expire), 10, 64)
	if err != nil || days < 0 {
		return time.Time{}
	}
	return time.Unix(days*86400, 0).UTC()
}

