// Package exportdump walks a vendor's resource hierarchy and mirrors it into
// a local tree of Markdown files: one directory per organization, one
// type-named subdirectory per resource kind, plus a flat knowledge-base dump
// at the top of the store.
package exportdump

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"strings"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/mspdocs/vendor-dump/render"
	"github.com/mspdocs/vendor-dump/vendorapi"
	"github.com/mspdocs/vendor-dump/vendors"
)

type Exporter struct {
	StorePath string
	API       *vendorapi.API
	Profile   vendors.Profile
	Renderer  *render.Renderer

	// WriteFiles false means dry run: walk and render, touch nothing.
	WriteFiles bool
	// Prune deletes local .md files this run didn't produce.
	Prune bool
	// OrgID restricts the walk to a single organization.
	OrgID string
	// ShowProgress draws an mpb bar; off for tests and --debug runs.
	ShowProgress bool

	Logger *log.Logger

	freshLocalFiles map[string]bool
	usedPaths       map[string]string
}

// Run performs one export run, sequentially: list organizations (fatal on
// failure), then per organization fetch each nested resource kind, render,
// and write.  A failure in one nested collection is logged and skipped so the
// run makes maximum forward progress; the run itself still completes.
func (e *Exporter) Run(ctx context.Context) error {
	if e.Logger == nil {
		e.Logger = log.Default()
	}

	if _, err := os.Stat(e.StorePath); err != nil {
		return fmt.Errorf("exportdump: cannot stat store path '%s': %w", e.StorePath, err)
	}

	e.Logger.Println("Loading local Markdown files, if any...")
	index, err := LoadLocalIndex(e.StorePath)
	if err != nil {
		return fmt.Errorf("exportdump: failed to load local store: %w", err)
	}
	e.Logger.Printf("...found %d previously exported documents.\n", len(index))

	orgs, err := e.listOrganizations(ctx)
	if err != nil {
		return fmt.Errorf("exportdump: couldn't list organizations: %w", err)
	}
	e.Logger.Printf("Found %d organizations on %s.\n", len(orgs), e.Profile.DisplayName)

	progress, bar := e.progressBar(len(orgs), "orgs")

	for _, org := range orgs {
		if err := e.exportOrganization(ctx, org); err != nil {
			return err
		}
		bar.Increment()
	}
	// a zero-org run never completes the bar on its own
	bar.SetTotal(int64(len(orgs)), true)
	progress.Wait()

	if e.Profile.KnowledgeBase != nil {
		if err := e.exportKnowledgeBase(ctx); err != nil {
			return err
		}
	}

	if e.Prune && e.WriteFiles {
		if err := e.pruneStale(); err != nil {
			return fmt.Errorf("exportdump: failed to prune: %w", err)
		}
	}

	e.Logger.Println("...done.")
	return nil
}

func (e *Exporter) progressBar(total int, phaseName string) (*mpb.Progress, *mpb.Bar) {
	options := []mpb.ContainerOption{mpb.WithWidth(64)}
	if !e.ShowProgress {
		options = append(options, mpb.WithOutput(io.Discard))
	}
	progress := mpb.New(options...)

	bar := progress.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name(fmt.Sprintf("%s:", phaseName),
				decor.WC{C: decor.DindentRight | decor.DextraSpace}),
		),
		mpb.AppendDecorators(
			decor.CountersNoUnit("(%d/%d) "),
			decor.NewPercentage("%d"),
		),
	)

	return progress, bar
}

// listOrganizations pulls the complete top-level collection.  This is the one
// place we hold more than a page: the org list drives the whole walk.
func (e *Exporter) listOrganizations(ctx context.Context) ([]vendorapi.Record, error) {
	fields := e.Profile.Fields[vendors.KindOrganization]

	orgs := []vendorapi.Record{}
	err := e.API.ListPages(ctx, vendorapi.ListQuery{
		Path: e.Profile.Organizations.Path,
		Page: e.Profile.Page,
	}, func(record vendorapi.Record) error {
		if e.OrgID != "" && fields.Resolve(record, "id") != e.OrgID {
			return nil
		}
		orgs = append(orgs, record)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return orgs, nil
}

func (e *Exporter) exportOrganization(ctx context.Context, org vendorapi.Record) error {
	fields := e.Profile.Fields[vendors.KindOrganization]
	orgID := fields.Resolve(org, "id")
	orgName := fields.ResolveOr(org, "name", orgID)

	orgDir, err := e.allocateDir(orgName, orgID)
	if err != nil {
		return err
	}

	sections := []render.Section{}
	for _, kind := range vendors.NestedKinds {
		resource, ok := e.Profile.Nested[kind]
		if !ok {
			// this vendor has no equivalent of the kind
			continue
		}

		links, err := e.exportNested(ctx, orgID, orgDir, kind, resource)
		if err != nil {
			e.logCollectionFailure(orgName, kind, resource, err)
		}
		sections = append(sections, render.Section{Kind: kind, Links: links})
	}

	readme, err := e.Renderer.RenderOrgReadme(org, sections)
	if err != nil {
		return fmt.Errorf("exportdump: couldn't render README for %s: %w", orgName, err)
	}

	markdown, err := readme.Markdown()
	if err != nil {
		return err
	}

	return e.writeLocal(path.Join(orgDir, "README.md"), markdown)
}

// exportNested fetches one resource collection for one organization and
// writes a document per record.  Returns the links written so far even on
// error; a half-fetched collection stays on disk (re-running is the recovery
// path).
func (e *Exporter) exportNested(ctx context.Context, orgID, orgDir string, kind vendors.Kind, resource vendors.Resource) ([]render.Link, error) {
	resourcePath, filter := resource.Endpoint(orgID)
	dir := path.Join(orgDir, kind.Dir())
	fields := e.Profile.Fields[kind]

	links := []render.Link{}
	err := e.API.ListPages(ctx, vendorapi.ListQuery{
		Path:   resourcePath,
		Filter: filter,
		Page:   e.Profile.Page,
	}, func(record vendorapi.Record) error {
		doc, err := e.Renderer.Render(kind, record)
		if err != nil {
			return err
		}

		relative, err := e.allocateFile(dir, doc.Title, fields.Resolve(record, "id"))
		if err != nil {
			return err
		}

		markdown, err := doc.Markdown()
		if err != nil {
			return err
		}

		if err := e.writeLocal(relative, markdown); err != nil {
			return err
		}

		links = append(links, render.Link{
			Title: doc.Title,
			Path:  strings.TrimPrefix(relative, orgDir+"/"),
		})
		return nil
	})

	return links, err
}

// exportKnowledgeBase dumps the vendor-global knowledge base flat into
// knowledge-base/ at the top of the store.
func (e *Exporter) exportKnowledgeBase(ctx context.Context) error {
	resource := *e.Profile.KnowledgeBase
	resourcePath, filter := resource.Endpoint("")
	fields := e.Profile.Fields[vendors.KindKBArticle]

	e.Logger.Println("Fetching knowledge base...")
	written := 0
	err := e.API.ListPages(ctx, vendorapi.ListQuery{
		Path:   resourcePath,
		Filter: filter,
		Page:   e.Profile.Page,
	}, func(record vendorapi.Record) error {
		doc, err := e.Renderer.Render(vendors.KindKBArticle, record)
		if err != nil {
			return err
		}

		relative, err := e.allocateFile(vendors.KindKBArticle.Dir(), doc.Title, fields.Resolve(record, "id"))
		if err != nil {
			return err
		}

		markdown, err := doc.Markdown()
		if err != nil {
			return err
		}

		if err := e.writeLocal(relative, markdown); err != nil {
			return err
		}
		written++
		return nil
	})
	if err != nil {
		e.logCollectionFailure(e.Profile.DisplayName, vendors.KindKBArticle, resource, err)
		return nil
	}

	e.Logger.Printf("...wrote %d knowledge base articles.\n", written)
	return nil
}

// logCollectionFailure reports a skipped collection.  A 403 on an optional
// resource means the plan doesn't include it; anything else is a real
// failure, still scoped to this one collection.
func (e *Exporter) logCollectionFailure(scope string, kind vendors.Kind, resource vendors.Resource, err error) {
	var permission *vendorapi.PermissionError
	if resource.Optional && errors.As(err, &permission) {
		e.Logger.Printf("%s: %s unavailable on this plan, skipping.\n", scope, kind.Dir())
		return
	}

	e.Logger.Printf("WARNING: %s: failed fetching %s: %v\n", scope, kind.Dir(), err)
}
