package usermgr

// Package usermgr reads the local account database from host files.
//
// Files are looked up under the hostfs root:
//   <root>/etc/passwd
//   <root>/etc/group
//   <root>/etc/shadow (optional, root-readable)
//
// Every lookup parses a fresh snapshot; nothing is cached between calls.
// Comment, blank and malformed lines are kept as raw lines and never match.
