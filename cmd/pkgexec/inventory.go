package main

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/crafted-tech/pkgexec/installer"
	"github.com/crafted-tech/pkgexec/platform"
)

func newInventoryCmd() *cobra.Command {
	var (
		filter     string
		constraint string
	)

	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "List installed driver versions",
		Long: `List installed signed drivers and their versions (Windows only).

With --constraint each driver version is evaluated against the pattern.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			drivers, err := platform.QueryDriverVersions(filter)
			if err != nil {
				return fmt.Errorf("query drivers: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "OS version: %s\n", platform.OSVersion())

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			header := []string{"Device", "Driver Version", "Manufacturer"}
			if constraint != "" {
				header = append(header, "Match")
			}
			table.SetHeader(header)
			table.SetAutoWrapText(false)

			for _, d := range drivers {
				row := []string{d.DeviceName, d.DriverVersion, d.Manufacturer}
				if constraint != "" {
					row = append(row, colorOutcome(installer.Evaluate(constraint, d.DriverVersion)))
				}
				table.Append(row)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "only drivers whose name or device id contains this text")
	cmd.Flags().StringVar(&constraint, "constraint", "", "evaluate each driver version against this pattern")

	return cmd
}
