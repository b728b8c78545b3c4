// File: cmd/version.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"promptbuilder/pkg/version"
)

// newVersionCmd displays the current version. The --short flag prints the
// bare version number.
func newVersionCmd() *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display the version of promptbuilder",
		Long:  `Display the current version information of the promptbuilder CLI tool.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := version.Get()
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), v.Version)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), v.String())
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print the version number only")
	return cmd
}
