package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/crafted-tech/pkgexec"
	"github.com/crafted-tech/pkgexec/installer"
	"github.com/crafted-tech/pkgexec/platform"
)

type runOptions struct {
	dir        string
	shell      bool
	format     string
	resultFile string
}

func newRunCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run [flags] -- COMMANDLINE",
		Short: "Run an installer command line and print the structured result",
		Long: `Run resolves %PackageRoot%, %SystemDir%, %WinDir%, %Temp% and configured
variables in COMMANDLINE, runs it in --dir and prints the result.

Output is captured unless --shell is given. A launch that needs elevation or a
file association is retried once through the shell, without output capture.
The process is never timed out. Only one run at a time may hold the install
lock (lock.name in the config; empty disables it).`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommandLine(cmd, opts, strings.Join(args, " "))
		},
	}

	cmd.Flags().StringVarP(&opts.dir, "dir", "d", ".", "working directory (the package root)")
	cmd.Flags().BoolVar(&opts.shell, "shell", false, "launch through the OS shell (no output capture)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "json", "output format: json or yaml")
	cmd.Flags().StringVar(&opts.resultFile, "result-file", "", "also write the result to this file (.json or .yaml)")

	return cmd
}

func runCommandLine(cmd *cobra.Command, opts runOptions, commandLine string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Close()

	if name := viper.GetString(lockNameKey); name != "" {
		release, err := platform.AcquireInstanceLock(name)
		if errors.Is(err, platform.ErrLocked) {
			return fmt.Errorf("another installer run holds %q", name)
		}
		if err != nil {
			log.Warn("Could not take install lock %q: %v", name, err)
		} else {
			defer release()
		}
	}

	executor := pkgexec.New(
		pkgexec.WithLogger(log),
		pkgexec.WithMonitor(monitorConfig()),
		pkgexec.WithVariables(variables()),
	)

	res := executor.Run(opts.dir, commandLine, opts.shell)

	data, err := installer.Marshal(opts.format, res)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))

	if opts.resultFile != "" {
		if err := installer.WriteResultFile(opts.resultFile, res); err != nil {
			return fmt.Errorf("write result file: %w", err)
		}
	}

	if !res.Succeeded() {
		return &exitError{code: 1}
	}
	return nil
}
