package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/crafted-tech/pkgexec/installer"
)

// Exit codes of the match command. Satisfied exits 0.
const (
	matchExitNotSatisfied = 1
	matchExitUnparseable  = 2
)

func newMatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match PATTERN SYSTEM_VERSION",
		Short: "Evaluate a vendor version constraint against a system version",
		Long: `Evaluate PATTERN against SYSTEM_VERSION.

PATTERN is an exact version ("1.2.3", "1f") or an inclusive range "LOW^HIGH"
with either side optional. Digits and dots are read as decimal; hex digits as a
single 32-bit hexadecimal value.

Exit status: 0 Satisfied, 1 NotSatisfied, 2 Unparseable.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			outcome := installer.Evaluate(args[0], args[1])
			fmt.Fprintln(cmd.OutOrStdout(), colorOutcome(outcome))

			switch outcome {
			case installer.NotSatisfied:
				return &exitError{code: matchExitNotSatisfied}
			case installer.Unparseable:
				return &exitError{code: matchExitUnparseable}
			}
			return nil
		},
	}
}

func colorOutcome(o installer.Outcome) string {
	switch o {
	case installer.Satisfied:
		return color.GreenString(o.String())
	case installer.NotSatisfied:
		return color.YellowString(o.String())
	default:
		return color.RedString(o.String())
	}
}
