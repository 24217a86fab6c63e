/*
Copyright © 2026 MSP Docs <maintainers@mspdocs.dev>
*/
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Output current config",
	Long: `
Is something not working for you?  Have a look whether your config is as you expect.
`,
	Run: func(cmd *cobra.Command, args []string) {
		// Note, you can only talk about persistent flags here.  Command-specific ones won't be
		// visible.
		fmt.Printf("Dump current config state:\n\n")

		fmt.Printf("  Config file: %s\n", ConfigActual)
		fmt.Printf("  Debug: %v\n", Debug)
		fmt.Println()
		fmt.Printf("  Parsed YAML:\n%#v\n", ParsedConfig)
		fmt.Println()
		fmt.Printf("  Vendor: %s\n", Vendor)
		fmt.Printf("  Instance: %s\n", Instance)
		fmt.Printf("  LocalStore: %s\n", LocalStore)
		fmt.Printf("  APIKeyCmd: %v\n", APIKeyCmd)
	},
}

func init() {
	configCmd.AddCommand(showCmd)
}
