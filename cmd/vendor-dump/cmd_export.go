/*
Copyright © 2026 MSP Docs <maintainers@mspdocs.dev>
*/
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"gopkg.in/dnaeon/go-vcr.v3/cassette"
	"gopkg.in/dnaeon/go-vcr.v3/recorder"

	"github.com/mspdocs/vendor-dump/exportdump"
	"github.com/mspdocs/vendor-dump/htmlmd"
	"github.com/mspdocs/vendor-dump/render"
)

var exportUsage = strings.TrimSpace(`
Walk the vendor's resource hierarchy and write one Markdown file per entity:
organizations become directories with a README.md, nested resources (devices,
configurations, documents, assets, runbooks) become type-named subdirectories,
and the vendor's knowledge base lands flat in knowledge-base/ at the top.
`)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the vendor's documentation to local Markdown",
	Long:  exportUsage,
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		debugLog("  DryRun: %v\n", DryRun)
		return runExport(cmd)
	},
}

var (
	DryRun  bool
	Prune   bool
	WithVCR bool
	OrgID   string
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().BoolVarP(&DryRun, "dry-run", "n", false, "walk and render but write nothing")
	exportCmd.Flags().BoolVar(&Prune, "prune", false, "delete local files the vendor no longer has")
	exportCmd.Flags().BoolVar(&WithVCR, "with-vcr", false, "use go-vcr to cache responses")
	exportCmd.Flags().StringVar(&OrgID, "org-id", "", "only export the organization with this vendor ID")
}

func runExport(cmd *cobra.Command) error {
	ctx := cmd.Context()

	if LocalStore == "" {
		return fmt.Errorf("vendor-dump: no location set for the local store; use --store or set it in your config file")
	}

	storePath, err := homedir.Expand(LocalStore)
	if err != nil {
		return fmt.Errorf("vendor-dump: couldn't expand homedir: %w", err)
	}

	if err := os.MkdirAll(storePath, 0750); err != nil {
		return fmt.Errorf("vendor-dump: couldn't create store directory %s: %w", storePath, err)
	}

	client := &http.Client{}

	if WithVCR {
		// set up VCR recordings.
		opts := &recorder.Options{
			CassetteName:       "fixtures/vendor-stuff",
			Mode:               recorder.ModeReplayWithNewEpisodes,
			SkipRequestLatency: true,
			RealTransport:      http.DefaultTransport,
		}
		r, err := recorder.NewWithOptions(opts)
		if err != nil {
			return fmt.Errorf("vendor-dump: couldn't set up go-vcr recording: %w", err)
		}

		defer r.Stop() // Make sure recorder is stopped once done with it

		// Add a hook which removes auth headers from all requests
		hook := func(i *cassette.Interaction) error {
			delete(i.Request.Headers, "Authorization")
			delete(i.Request.Headers, "X-API-KEY")
			delete(i.Request.Headers, "X-Api-Key")
			return nil
		}
		r.AddHook(hook, recorder.AfterCaptureHook)
		r.SetReplayableInteractions(true)

		client = r.GetDefaultClient()
	}

	api, profile, err := connectAPI(ctx, client)
	if err != nil {
		return fmt.Errorf("vendor-dump: couldn't connect to vendor: %w", err)
	}

	renderer := render.NewRenderer(profile, htmlmd.New(api.BaseURI))

	exporter := &exportdump.Exporter{
		StorePath:    storePath,
		API:          api,
		Profile:      profile,
		Renderer:     renderer,
		WriteFiles:   !DryRun,
		Prune:        Prune,
		OrgID:        OrgID,
		ShowProgress: !Debug,
		Logger:       log.New(os.Stderr, "", log.LstdFlags),
	}

	if err := exporter.Run(ctx); err != nil {
		return fmt.Errorf("vendor-dump: export failed: %w", err)
	}

	return nil
}
