package runner

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRunner(stdin string) (*Runner, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	r := New()
	r.Stdin = strings.NewReader(stdin)
	r.Stdout = &stdout
	r.Stderr = &stderr
	return r, &stdout, &stderr
}

func TestResolveSearchesSecurePathOnly(t *testing.T) {
	dir := t.TempDir()
	tool := filepath.Join(dir, "tool")
	require.NoError(t, os.WriteFile(tool, []byte("#!/bin/sh\n"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data"), []byte("x"), 0644))

	r := New()
	t.Setenv("PATH", dir)
	_, err := r.Resolve("tool")
	assert.ErrorIs(t, err, ErrNotFound, "caller PATH must not be searched")

	r.SecurePath = "relative:" + dir
	got, err := r.Resolve("tool")
	require.NoError(t, err)
	assert.Equal(t, tool, got)

	_, err = r.Resolve("data")
	assert.ErrorIs(t, err, ErrNotFound)

	candidate, err := r.Resolve(filepath.Join(dir, "data"))
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.Equal(t, filepath.Join(dir, "data"), candidate)

	candidate, err = r.Resolve("data")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, candidate)

	got, err = r.Resolve(tool)
	require.NoError(t, err)
	assert.Equal(t, tool, got)
}

func TestResolveNotFoundMessage(t *testing.T) {
	_, err := New().Resolve("definitely-not-a-command-xyz")
	var ce *ChildExecError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "definitely-not-a-command-xyz: command not found", err.Error())
}

func TestRunPassesThroughOutputAndExitCode(t *testing.T) {
	r, stdout, stderr := testRunner("")
	sh, err := r.Resolve("sh")
	require.NoError(t, err)

	res, err := r.Run(sh, []string{"sh", "-c", "printf 'out\\n'; printf 'err\\n' >&2; exit 7"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 7, res.ExitCode)
	assert.Equal(t, "out\n", stdout.String())
	assert.Equal(t, "err\n", stderr.String())
}

func TestRunSuccess(t *testing.T) {
	r, stdout, _ := testRunner("hello")
	sh, err := r.Resolve("sh")
	require.NoError(t, err)

	res, err := r.Run(sh, []string{"sh", "-c", "cat; echo \" $FOO\""}, []string{"FOO=bar", "PATH=/usr/bin:/bin"})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "hello bar\n", stdout.String())
}

func TestRunSignalled(t *testing.T) {
	r, _, _ := testRunner("")
	sh, err := r.Resolve("sh")
	require.NoError(t, err)

	res, err := r.Run(sh, []string{"sh", "-c", "kill -TERM $$"}, nil)
	require.NoError(t, err)
	assert.Equal(t, syscall.SIGTERM, res.Signal)
	assert.Equal(t, 128+int(syscall.SIGTERM), res.ExitCode)
}

func TestRunStartFailure(t *testing.T) {
	r, _, _ := testRunner("")
	_, err := r.Run(filepath.Join(t.TempDir(), "gone"), []string{"gone"}, nil)
	var ce *ChildExecError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "gone", ce.Command)
}
