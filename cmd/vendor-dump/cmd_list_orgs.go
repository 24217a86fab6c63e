/*
Copyright © 2026 MSP Docs <maintainers@mspdocs.dev>
*/
package main

import (
	"fmt"
	"log"
	"net/http"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mspdocs/vendor-dump/vendorapi"
	"github.com/mspdocs/vendor-dump/vendors"
)

var listOrgsUsage = strings.TrimSpace(`
If you want to find out what organizations your vendor account can see, use
this command.  Handy for picking an --org-id before a full export.
`)

var listOrgsCmd = &cobra.Command{
	Use:   "orgs",
	Short: "Print list of organizations",
	Long:  listOrgsUsage,
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		api, profile, err := connectAPI(ctx, &http.Client{})
		if err != nil {
			return fmt.Errorf("list orgs: couldn't connect to vendor: %w", err)
		}

		log.Printf("Listing organizations on %s...\n", profile.DisplayName)

		fields := profile.Fields[vendors.KindOrganization]
		type orgLine struct{ id, name string }

		orgs := []orgLine{}
		err = api.ListPages(ctx, vendorapi.ListQuery{
			Path: profile.Organizations.Path,
			Page: profile.Page,
		}, func(record vendorapi.Record) error {
			orgs = append(orgs, orgLine{
				id:   fields.Resolve(record, "id"),
				name: fields.ResolveOr(record, "name", "(unnamed)"),
			})
			return nil
		})
		if err != nil {
			return fmt.Errorf("list orgs: couldn't list organizations: %w", err)
		}

		log.Printf("Found %d organizations.\n", len(orgs))

		sort.Slice(orgs, func(i, j int) bool { return orgs[i].name < orgs[j].name })

		fmt.Printf("organizations:\n")
		for _, org := range orgs {
			fmt.Printf("  - %s: %s\n", org.id, org.name)
		}

		return nil
	},
}

func init() {
	listCmd.AddCommand(listOrgsCmd)
}
