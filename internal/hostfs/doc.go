package hostfs

// Package hostfs provides read helpers for the account files of the host.
//
// All paths are resolved under a root directory, "/" by default:
//   etc/passwd  -> <root>/etc/passwd
//   etc/group   -> <root>/etc/group
//   etc/shadow  -> <root>/etc/shadow
//
// The root can be moved (config key host_root) to run against a chroot or
// a test fixture tree.
