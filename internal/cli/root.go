package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hnrobert/lusu/internal/config"
	"github.com/hnrobert/lusu/internal/report"
)

var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

// Options are the parsed command line flags.
type Options struct {
	User       string
	ConfigPath string
	PTY        bool
	Debug      bool
}

// App holds what the root command needs from its surroundings.
type App struct {
	Stdout io.Writer
	Stderr io.Writer
	// Run executes argv as opts.User and returns the exit code.
	Run func(opts Options, argv []string) int
}

// NewRootCommand builds the lusu command. The exit code of the last
// execution is stored in *code.
func NewRootCommand(app *App, code *int) *cobra.Command {
	var (
		opts        Options
		showVersion bool
	)
	cmd := &cobra.Command{
		Use:   "lusu [flags] <command> [args...]",
		Short: "Run a command as another user",
		Long: `lusu runs a command with the identity of another account.

The target is given by name or by numeric uid prefixed with '#':
  lusu -u alice id
  lusu -u '#1000' id
Flags after the command name are passed to the command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintf(app.Stdout, "lusu %s (%s)\n", Version, GitCommit)
				*code = 0
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("no command specified")
			}
			*code = app.Run(opts, args)
			return nil
		},
	}
	cmd.SetOut(app.Stdout)
	cmd.SetErr(app.Stderr)

	f := cmd.Flags()
	f.SetInterspersed(false)
	f.StringVarP(&opts.User, "user", "u", "root", "run the command as `user` (name or #uid)")
	f.StringVar(&opts.ConfigPath, "config", config.DefaultPath, "path to the config file")
	f.BoolVar(&opts.PTY, "pty", false, "run the command in a pseudo terminal")
	f.BoolVar(&opts.Debug, "debug", false, "mirror log lines to stderr")
	f.BoolVarP(&showVersion, "version", "V", false, "print version and exit")
	return cmd
}

// Execute runs lusu with os.Args and returns the process exit code.
func Execute() int {
	sys := NewSystem()
	return ExecuteArgs(&App{Stdout: sys.Stdout, Stderr: sys.Stderr, Run: sys.Run}, os.Args[1:])
}

func ExecuteArgs(app *App, args []string) int {
	code := 0
	cmd := NewRootCommand(app, &code)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(app.Stderr, "lusu: %v\n", err)
		cmd.SetOut(app.Stderr)
		_ = cmd.Usage()
		return report.ExitFailure
	}
	return code
}
