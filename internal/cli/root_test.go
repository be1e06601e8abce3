package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hnrobert/lusu/internal/config"
)

type call struct {
	opts Options
	argv []string
}

func newTestApp(code int) (*App, *[]call, *bytes.Buffer, *bytes.Buffer) {
	var calls []call
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	app := &App{
		Stdout: stdout,
		Stderr: stderr,
		Run: func(opts Options, argv []string) int {
			calls = append(calls, call{opts: opts, argv: argv})
			return code
		},
	}
	return app, &calls, stdout, stderr
}

func TestDefaults(t *testing.T) {
	app, calls, _, _ := newTestApp(0)
	code := ExecuteArgs(app, []string{"id"})
	assert.Equal(t, 0, code)
	require.Len(t, *calls, 1)
	assert.Equal(t, Options{User: "root", ConfigPath: config.DefaultPath}, (*calls)[0].opts)
	assert.Equal(t, []string{"id"}, (*calls)[0].argv)
}

func TestCommandFlagsPassThrough(t *testing.T) {
	app, calls, _, _ := newTestApp(7)
	code := ExecuteArgs(app, []string{"-u", "#1000", "--pty", "ls", "-u", "--config", "x"})
	assert.Equal(t, 7, code)
	require.Len(t, *calls, 1)
	assert.Equal(t, "#1000", (*calls)[0].opts.User)
	assert.True(t, (*calls)[0].opts.PTY)
	assert.Equal(t, config.DefaultPath, (*calls)[0].opts.ConfigPath)
	assert.Equal(t, []string{"ls", "-u", "--config", "x"}, (*calls)[0].argv)
}

func TestLongUserFlag(t *testing.T) {
	app, calls, _, _ := newTestApp(0)
	ExecuteArgs(app, []string{"--user=alice", "--config", "/tmp/lusu.yaml", "true"})
	require.Len(t, *calls, 1)
	assert.Equal(t, "alice", (*calls)[0].opts.User)
	assert.Equal(t, "/tmp/lusu.yaml", (*calls)[0].opts.ConfigPath)
}

func TestVersion(t *testing.T) {
	app, calls, stdout, _ := newTestApp(0)
	code := ExecuteArgs(app, []string{"-V"})
	assert.Equal(t, 0, code)
	assert.Empty(t, *calls)
	assert.Contains(t, stdout.String(), "lusu "+Version)
}

func TestNoCommand(t *testing.T) {
	app, calls, _, stderr := newTestApp(0)
	code := ExecuteArgs(app, []string{"-u", "alice"})
	assert.Equal(t, 1, code)
	assert.Empty(t, *calls)
	assert.Contains(t, stderr.String(), "lusu: no command specified")
	assert.Contains(t, stderr.String(), "Usage:")
}

func TestUnknownFlag(t *testing.T) {
	app, calls, _, stderr := newTestApp(0)
	code := ExecuteArgs(app, []string{"--bogus", "id"})
	assert.Equal(t, 1, code)
	assert.Empty(t, *calls)
	assert.Contains(t, stderr.String(), "unknown flag: --bogus")
}

func TestHelpExitsZero(t *testing.T) {
	app, calls, stdout, _ := newTestApp(5)
	code := ExecuteArgs(app, []string{"--help"})
	assert.Equal(t, 0, code)
	assert.Empty(t, *calls)
	assert.Contains(t, stdout.String(), "--user")
}

func TestDebugFlag(t *testing.T) {
	app, calls, _, _ := newTestApp(0)
	ExecuteArgs(app, []string{"--debug", "true"})
	require.Len(t, *calls, 1)
	assert.True(t, (*calls)[0].opts.Debug)
}
