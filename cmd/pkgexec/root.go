package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// exitError carries a process exit code without printing anything further.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

const rootLongDescription = `pkgexec runs vendor driver and firmware installers and evaluates
vendor version constraints.

Configuration is read from ./pkgexec.yaml and PKGEXEC_* environment variables.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "pkgexec",
		Short:         "Run package installers and check version constraints",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return loadConfig()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func init() {
	configureRootFlags(rootCmd)
	rootCmd.AddCommand(newRunCmd(), newMatchCmd(), newInventoryCmd(), newVersionCmd())
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("log-level", defaultLogLevel, "minimum log level (debug, info, warn, error)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup("log-level"), logLevelKey)

	cmd.PersistentFlags().String("log-dir", "", "directory for the rotating log file (default: temp dir)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup("log-dir"), logDirKey)

	cmd.PersistentFlags().Bool("verbose", false, "also write log lines to stderr")
	bindFlagToConfig(cmd.PersistentFlags().Lookup("verbose"), logConsoleKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute runs the root command and exits with its status.
func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.code)
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
