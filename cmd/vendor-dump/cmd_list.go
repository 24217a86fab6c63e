/*
Copyright © 2026 MSP Docs <maintainers@mspdocs.dev>
*/
package main

import (
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Commands to list items",
	Long: `
Commands in this namespace are to help you explore the vendor before
committing to a full export.
`,
}

func init() {
	rootCmd.AddCommand(listCmd)
}
