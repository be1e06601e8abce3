// Package report turns the outcome of an invocation into an exit code and
// at most one line on stderr.
package report
