// Package privilege moves the process from the invoking identity to a
// target account.
//
// The target identity is computed as a plain Credentials value. The only
// mutation happens in Switcher.Switch, which drives a Primitives
// implementation (the real one wraps setgroups(2), setresgid(2) and
// setresuid(2)) and either commits every attribute or none. If undoing a
// partial change fails, the process is terminated rather than left running
// with mixed credentials.
package privilege
