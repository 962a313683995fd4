package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"pkt.systems/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the vp module path and version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.Module()+" "+version.Current())
			return err
		},
	}
}
