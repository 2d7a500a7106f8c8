package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	apppkg "github.com/kk-code-lab/mdir/internal/app"
	"github.com/kk-code-lab/mdir/internal/config"
	"github.com/kk-code-lab/mdir/internal/logging"
	"github.com/kk-code-lab/mdir/internal/shellsetup"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// options collects the command line; zero values leave the config untouched.
type options struct {
	configPath string
	tick       time.Duration
	debug      bool
	logFile    string
	setup      string
	printDir   bool
	startPath  string
}

type runFunc func(opts options, stdout io.Writer) error

var parentShellDetector = shellsetup.DetectParentShellName

func newRootCmd(run runFunc) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:     "mdir [DIR]",
		Short:   "Modal terminal file browser",
		Long:    "mdir lists a directory, previews the selected file and exits in the directory you navigated to.",
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("setup") {
				// "--setup SHELL" leaves SHELL as a positional argument.
				if strings.TrimSpace(opts.setup) == "" && len(args) == 1 {
					opts.setup = args[0]
				}
				return shellsetup.PrintSetup(cmd.OutOrStdout(), opts.setup, shellsetup.Config{DetectParent: parentShellDetector})
			}
			if len(args) == 1 {
				opts.startPath = args[0]
			}
			return run(opts, cmd.OutOrStdout())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/mdir/config.yaml)")
	flags.DurationVar(&opts.tick, "tick", 0, "event loop tick interval (e.g. 250ms)")
	flags.BoolVarP(&opts.debug, "debug", "d", false, "write debug logs")
	flags.StringVar(&opts.logFile, "log-file", "", "log file path")
	flags.StringVarP(&opts.setup, "setup", "s", "", "print the shell integration snippet (optionally for SHELL)")
	flags.Lookup("setup").NoOptDefVal = " "
	flags.BoolVar(&opts.printDir, "print-dir", false, "print the final directory on stdout")

	return cmd
}

// loadConfig resolves the config file and applies flag overrides on top.
func loadConfig(opts options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.tick != 0 {
		cfg.TickInterval = opts.tick
	}
	if opts.debug {
		cfg.Debug = true
	}
	if opts.logFile != "" {
		cfg.LogFile = opts.logFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runBrowser(opts options, stdout io.Writer) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("stdin is not a terminal")
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger, closer, err := logging.New(logging.Options{File: cfg.LogFile, Debug: cfg.Debug})
	if err != nil {
		fmt.Fprintf(os.Stderr, "mdir: logging disabled: %v\n", err)
	}
	defer closer.Close()

	startPath := opts.startPath
	if startPath == "" {
		if startPath, err = apppkg.GetCwd(); err != nil {
			return err
		}
	}

	app, err := apppkg.NewApplication(cfg, logger, startPath)
	if err != nil {
		return err
	}
	runErr := app.Run()
	_ = app.Close()
	if runErr != nil {
		return runErr
	}

	dir := app.CurrentPath()
	if dir == "" {
		return nil
	}
	if opts.printDir {
		_, err := fmt.Fprintln(stdout, dir)
		return err
	}
	if err := shellsetup.WriteResult(dir); err != nil {
		logger.Warn("could not write result file", "err", err)
		fmt.Fprintf(os.Stderr, "mdir: could not write result file: %v\n", err)
	}
	return nil
}
