// Command cprintf formats text with C printf semantics and checks the
// formatter against corpora of expected outputs.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/happy-sdk/happy/pkg/logging"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/shogo82148/cprintf/internal/config"
)

// app is the state shared by the subcommands.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	stdout io.Writer
	stderr io.Writer

	pass *color.Color
	fail *color.Color
	dim  *color.Color
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		cfg:    config.Default(),
		logger: newLogger(stderr, false),
		stdout: stdout,
		stderr: stderr,
		pass:   color.New(color.FgGreen, color.Bold),
		fail:   color.New(color.FgRed, color.Bold),
		dim:    color.New(color.Faint),
	}

	root := &cobra.Command{
		Use:           "cprintf",
		Short:         "Format text with C printf semantics",
		Long:          "cprintf formats text byte-for-byte like glibc's printf family and checks\nthe formatter against corpora of expected outputs.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.String("config", "", "configuration file (default: nearest "+config.FileName+")")
	pf.String("color", "", "colorize output (auto|on|off)")
	pf.BoolP("verbose", "v", false, "log debug messages")

	root.AddCommand(a.formatCmd(), a.scanCmd(), a.checkCmd(), a.recordCmd())
	return root
}

// newLogger returns a text logger writing to w. It leaves the slog
// default untouched.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	opts := logging.DefaultOptions()
	opts.Level = logging.LevelInfo
	if verbose {
		opts.Level = logging.LevelDebug
	}
	opts.AddSource = false
	opts.NoTimestamp = true
	opts.SetSlogOutput = false
	return logging.NewTextLogger(context.Background(), w, opts).Logger()
}

// setup loads the configuration and applies the global flags.
func (a *app) setup(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	verbose, err := flags.GetBool("verbose")
	if err != nil {
		return err
	}
	a.logger = newLogger(a.stderr, verbose)

	path, err := flags.GetString("config")
	if err != nil {
		return err
	}
	cfg, err := config.Resolve(path, ".")
	if err != nil {
		return err
	}
	if flags.Changed("color") {
		if cfg.Color, err = flags.GetString("color"); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg
	if cfg.Path != "" {
		a.logger.Debug("loaded configuration", "path", cfg.Path)
	}

	enable := a.useColor()
	for _, c := range []*color.Color{a.pass, a.fail, a.dim} {
		if enable {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return nil
}

// useColor reports whether to colorize standard output.
func (a *app) useColor() bool {
	switch a.cfg.Color {
	case config.ColorOn:
		return true
	case config.ColorOff:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := a.stdout.(*os.File)
	return ok && isTerminal(f)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// errSilent is returned by commands that already reported their failure.
var errSilent = errors.New("failed")

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		if !errors.Is(err, errSilent) {
			fmt.Fprintln(os.Stderr, "cprintf:", err)
		}
		os.Exit(1)
	}
}
