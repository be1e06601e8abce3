package identity

import (
	"fmt"
	"sync"
)

// MemoryDirectory is a Directory backed by an in-memory table.
type MemoryDirectory struct {
	mu       sync.RWMutex
	accounts []Account
	groups   map[uint32]string
}

func NewMemoryDirectory(accounts ...Account) *MemoryDirectory {
	d := &MemoryDirectory{groups: map[uint32]string{}}
	for _, a := range accounts {
		d.Add(a)
	}
	return d
}

// Add stores a copy of a, replacing any account with the same name.
func (d *MemoryDirectory) Add(a Account) {
	d.mu.Lock()
	defer d.mu.Unlock()
	a.Secondary = append([]uint32(nil), a.Secondary...)
	for i := range d.accounts {
		if d.accounts[i].Name == a.Name {
			d.accounts[i] = a
			return
		}
	}
	d.accounts = append(d.accounts, a)
}

// AddGroup names a gid for GroupNames.
func (d *MemoryDirectory) AddGroup(gid uint32, name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.groups[gid] = name
}

func (d *MemoryDirectory) UserByName(name string) (Account, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, a := range d.accounts {
		if a.Name == name {
			return clone(a), nil
		}
	}
	return Account{}, fmt.Errorf("user %q: %w", name, ErrNoAccount)
}

func (d *MemoryDirectory) UserByUID(uid uint32) (Account, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, a := range d.accounts {
		if a.UID == uid {
			return clone(a), nil
		}
	}
	return Account{}, fmt.Errorf("uid %d: %w", uid, ErrNoAccount)
}

func (d *MemoryDirectory) GroupNames(gids []uint32) ([]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]string, 0, len(gids))
	for _, g := range gids {
		if n, ok := d.groups[g]; ok {
			out = append(out, n)
		}
	}
	return out, nil
}

func clone(a Account) Account {
	a.Secondary = append([]uint32(nil), a.Secondary...)
	return a
}
