package runner

import (
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/hnrobert/lusu/internal/identity"
)

// EnvOptions controls Environment.
type EnvOptions struct {
	SecurePath string
	// Keep names caller variables copied into the command's environment.
	Keep []string
	// Lookup reads caller variables; os.LookupEnv when nil.
	Lookup func(string) (string, bool)
}

// Environment builds a fresh environment for running argv as target on
// behalf of inv. Nothing from the caller leaks in except TERM and the Keep
// names. The result is sorted.
func Environment(target identity.Account, inv identity.InvokingContext, argv []string, opts EnvOptions) []string {
	lookup := opts.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	path := opts.SecurePath
	if path == "" {
		path = DefaultSecurePath
	}
	shell := target.Shell
	if shell == "" {
		shell = "/bin/sh"
	}

	env := map[string]string{}
	for _, k := range append([]string{"TERM"}, opts.Keep...) {
		if v, ok := lookup(k); ok && validName(k) {
			env[k] = v
		}
	}
	env["HOME"] = target.Home
	env["SHELL"] = shell
	env["USER"] = target.Name
	env["LOGNAME"] = target.Name
	env["PATH"] = path
	env["SUDO_USER"] = inv.Name
	env["SUDO_UID"] = strconv.FormatUint(uint64(inv.UID), 10)
	env["SUDO_GID"] = strconv.FormatUint(uint64(inv.GID), 10)
	env["SUDO_COMMAND"] = strings.Join(argv, " ")

	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}

func validName(k string) bool {
	return k != "" && !strings.ContainsAny(k, "=\x00")
}
