package usermgr

import "regexp"

// Portable user names plus the trailing '$' used for machine accounts.
var usernameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]{0,31}\$?$`)

// ValidUsername reports whether u can name a local account.
func ValidUsername(u string) bool {
	return usernameRe.MatchString(u)
}
