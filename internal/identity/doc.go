// Package identity resolves target specifiers ("alice", "#1000") to local
// accounts and describes the invoking user.
//
// Account data comes from a Directory, which the host implementation in
// usermgr backs with /etc/passwd and /etc/group. Nothing here touches
// process credentials.
package identity
