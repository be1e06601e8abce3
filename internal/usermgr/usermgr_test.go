package usermgr

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hnrobert/lusu/internal/hostfs"
	"github.com/hnrobert/lusu/internal/identity"
)

const passwdFixture = `# local accounts
root:x:0:0:root:/root:/bin/bash
daemon:x:1:1:daemon:/usr/sbin:/usr/sbin/nologin
broken:x:notanumber:0::/:/bin/sh
alice:x:1000:1000:Alice:/home/alice:/bin/bash

bob:x:1001:1001::/home/bob:/bin/sh
shadowed:x:1000:1000:dup uid:/tmp:/bin/sh
`

const groupFixture = `root:x:0:
sudo:x:27:alice
users:x:100:alice,bob
alice:x:1000:
bob:x:1001:
docker:x:999: bob , alice
badgid:x:-4:alice
`

const shadowFixture = `root:*:19000:0:99999:7:::
alice:$6$salt$hash:19000:0:99999:7:::
bob:!:19000:0:99999:7::1:
`

func writeFixture(t *testing.T, withShadow bool) *Database {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "etc"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "etc/passwd"), []byte(passwdFixture), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "etc/group"), []byte(groupFixture), 0644))
	if withShadow {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "etc/shadow"), []byte(shadowFixture), 0600))
	}

	require.NoError(t, hostfs.SetRoot(dir))
	t.Cleanup(func() { _ = hostfs.SetRoot("") })

	db, err := NewDefault()
	require.NoError(t, err)
	return db
}

func TestLoadPasswdKeepsMalformedLinesRaw(t *testing.T) {
	db := writeFixture(t, false)
	pw, err := LoadPasswd(db.PasswdPath)
	require.NoError(t, err)

	for _, name := range []string{"root", "daemon", "alice", "bob", "shadowed"} {
		assert.NotNil(t, pw.Find(name), name)
	}
	assert.Nil(t, pw.Find("broken"))
	assert.Equal(t, "alice", pw.FindByUID(1000).Name, "first entry wins for duplicate uids")
}

func TestGroupMemberOf(t *testing.T) {
	db := writeFixture(t, false)
	gr, err := LoadGroup(db.GroupPath)
	require.NoError(t, err)

	assert.Equal(t, []uint32{27, 100, 999}, gr.MemberOf("alice"))
	assert.Equal(t, []uint32{100, 999}, gr.MemberOf("bob"))
	assert.Empty(t, gr.MemberOf("root"))
	assert.Nil(t, gr.FindByGID(0x7fffffff))
	assert.Equal(t, "docker", gr.FindByGID(999).Name)
}

func TestDatabaseUserByName(t *testing.T) {
	db := writeFixture(t, false)

	got, err := db.UserByName("alice")
	require.NoError(t, err)

	want := identity.Account{
		Name:      "alice",
		UID:       1000,
		GID:       1000,
		Secondary: []uint32{27, 100, 999},
		Home:      "/home/alice",
		Shell:     "/bin/bash",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("UserByName(alice) mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []uint32{1000, 27, 100, 999}, got.GroupSet())
}

func TestDatabaseUserByUIDMatchesByName(t *testing.T) {
	db := writeFixture(t, true)

	for _, name := range []string{"root", "alice", "bob"} {
		byName, err := db.UserByName(name)
		require.NoError(t, err)
		byUID, err := db.UserByUID(byName.UID)
		require.NoError(t, err)
		if diff := cmp.Diff(byName, byUID); diff != "" {
			t.Errorf("%s: by-name and by-uid differ (-name +uid):\n%s", name, diff)
		}
	}
}

func TestDatabaseNotFound(t *testing.T) {
	db := writeFixture(t, false)

	_, err := db.UserByName("ghost")
	assert.ErrorIs(t, err, identity.ErrNoAccount)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = db.UserByUID(1234)
	assert.ErrorIs(t, err, identity.ErrNoAccount)
}

func TestDatabaseMissingPasswdIsNotNotFound(t *testing.T) {
	db := &Database{PasswdPath: filepath.Join(t.TempDir(), "nope")}
	_, err := db.UserByName("alice")
	require.Error(t, err)
	assert.NotErrorIs(t, err, identity.ErrNoAccount)
}

func TestDatabaseShadowExpiry(t *testing.T) {
	db := writeFixture(t, true)

	bob, err := db.UserByName("bob")
	require.NoError(t, err)
	assert.Equal(t, time.Unix(86400, 0).UTC(), bob.ExpiresAt)
	assert.True(t, bob.Expired(time.Now()))

	alice, err := db.UserByName("alice")
	require.NoError(t, err)
	assert.True(t, alice.ExpiresAt.IsZero())
}

func TestGroupNames(t *testing.T) {
	db := writeFixture(t, false)
	names, err := db.GroupNames([]uint32{1000, 27, 4242})
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "sudo"}, names)
}

func TestShadowEntry(t *testing.T) {
	e := ShadowEntry{Hash: "!$6$x", Expire: ""}
	assert.True(t, e.ExpiresAt().IsZero())

	e = ShadowEntry{Hash: "$6$x", Expire: "-1"}
	assert.True(t, e.ExpiresAt().IsZero())

	e = ShadowEntry{Hash: "$6$x", Expire: "20000"}
	assert.Equal(t, time.Date(2024, 10, 4, 0, 0, 0, 0, time.UTC), e.ExpiresAt())
}

func TestValidUsername(t *testing.T) {
	for _, ok := range []string{"alice", "_svc", "Bob", "host$", "a.b-c"} {
		assert.True(t, ValidUsername(ok), ok)
	}
	for _, bad := range []string{"", "-x", "1abc", "a b", "a:b", "%wheel"} {
		assert.False(t, ValidUsername(bad), bad)
	}
}
