/*
Copyright © 2026 MSP Docs <maintainers@mspdocs.dev>
*/
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mspdocs/vendor-dump/vendors"
)

var listVendorsCmd = &cobra.Command{
	Use:   "vendors",
	Short: "Print the built-in vendor profiles",
	Long: `
Each vendor profile bundles the auth shape, pagination envelope, and field
mappings for one platform.  Pass one of these names to --vendor.
`,
	Args: cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("vendors:\n")
		for _, name := range vendors.Names() {
			profile, err := vendors.Lookup(name)
			if err != nil {
				return fmt.Errorf("list vendors: %w", err)
			}
			fmt.Printf("  - %s: %s (%s)\n", profile.Name, profile.DisplayName, profile.BaseURL)
		}

		return nil
	},
}

func init() {
	listCmd.AddCommand(listVendorsCmd)
}
