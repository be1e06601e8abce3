package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hnrobert/lusu/internal/config"
	"github.com/hnrobert/lusu/internal/hostfs"
	"github.com/hnrobert/lusu/internal/identity"
	"github.com/hnrobert/lusu/internal/logger"
	"github.com/hnrobert/lusu/internal/pipeline"
	"github.com/hnrobert/lusu/internal/policy"
	"github.com/hnrobert/lusu/internal/privilege"
	"github.com/hnrobert/lusu/internal/report"
	"github.com/hnrobert/lusu/internal/runner"
	"github.com/hnrobert/lusu/internal/usermgr"
)

var ErrConfigNotAllowed = errors.New("only root may choose the config file")

// System is the process lusu runs in: its identity calls, the owner every
// config and policy file must have, and its stdio.
type System struct {
	Prims      privilege.Primitives
	TrustedUID uint32
	Stdin      io.Reader
	Stdout     io.Writer
	Stderr     io.Writer
}

func NewSystem() *System {
	return &System{
		Prims:  privilege.System(),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run wires the account files, policy, process identity and command
// runner into one pipeline run.
func (s *System) Run(opts Options, argv []string) int {
	rep := &report.Reporter{W: s.Stderr}

	st, err := privilege.Snapshot(s.Prims)
	if err != nil {
		return rep.Failure(err)
	}
	if opts.ConfigPath == "" {
		opts.ConfigPath = config.DefaultPath
	}
	if opts.ConfigPath != config.DefaultPath && st.RUID != 0 {
		return rep.Failure(ErrConfigNotAllowed)
	}

	store := config.NewStore(opts.ConfigPath)
	if err := config.CheckTrusted(store.Path(), s.TrustedUID); err != nil {
		return rep.Failure(err)
	}
	cfg, err := store.Get()
	if err != nil {
		return rep.Failure(fmt.Errorf("load config: %w", err))
	}

	if opts.Debug {
		logger.SetOutput(s.Stderr)
		defer logger.SetOutput(nil)
	}
	if err := logger.Init(cfg.LogDir); err != nil {
		return rep.Failure(fmt.Errorf("open log dir: %w", err))
	}
	defer logger.Close()

	if err := hostfs.SetRoot(cfg.HostRoot); err != nil {
		return rep.Failure(err)
	}
	db, err := usermgr.NewDefault()
	if err != nil {
		return rep.Failure(err)
	}
	if err := config.CheckTrusted(cfg.PolicyPath, s.TrustedUID); err != nil {
		return rep.Failure(err)
	}
	pol, err := policy.Load(cfg.PolicyPath)
	if err != nil {
		return rep.Failure(fmt.Errorf("load policy: %w", err))
	}

	inv, err := invoker(db, st)
	if err != nil {
		return rep.Failure(err)
	}

	run := runner.New()
	run.Stdin, run.Stdout, run.Stderr = s.Stdin, s.Stdout, s.Stderr
	run.SecurePath = cfg.SecurePath
	run.UsePTY = cfg.UsePTY || opts.PTY

	p := &pipeline.Pipeline{
		Directory: db,
		Policy:    policy.NewEngine(pol),
		Switcher:  privilege.NewSwitcher(s.Prims),
		Runner:    run,
		Reporter:  rep,
		Env:       runner.EnvOptions{SecurePath: cfg.SecurePath, Keep: cfg.EnvKeep},
	}
	return p.Run(pipeline.Invocation{Invoker: inv, Spec: opts.User, Command: argv})
}

// invoker describes the real (not effective) caller of the process.
func invoker(dir identity.Directory, st privilege.State) (identity.InvokingContext, error) {
	groups := make([]uint32, 0, len(st.Groups))
	for _, g := range st.Groups {
		groups = append(groups, uint32(g))
	}
	return identity.CurrentInvoker(dir, uint32(st.RUID), uint32(st.RGID), groups)
}
