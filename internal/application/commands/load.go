package commands

import (
	"context"
	"fmt"
	"path"

	"powerpages/internal/application"
	"powerpages/internal/application/pagesync"
	"powerpages/internal/domain"
	"powerpages/internal/ports"
)

// LoadCommand reads the page files for RootURL into the store and deletes
// records in that subtree that no longer have a file.
type LoadCommand struct {
	deps    Collaborators
	RootURL string
	Options SyncOptions
}

// NewLoadCommand creates a new LoadCommand
func NewLoadCommand(deps Collaborators, rootURL string, opts SyncOptions) *LoadCommand {
	return &LoadCommand{
		deps:    deps,
		RootURL: rootURL,
		Options: opts,
	}
}

// Validate checks if the load operation is valid
func (c *LoadCommand) Validate() error {
	return application.ValidatePageURL("rootURL", c.RootURL)
}

// Execute runs the load command. When some page files could not be parsed the
// result is returned together with a *application.FailedItemsError.
func (c *LoadCommand) Execute(ctx context.Context) (*SyncResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	loaders, err := c.loaders()
	if err != nil {
		return nil, err
	}

	run := newSyncRun(c.deps, c.Options)
	log := run.Log.WithField("root", c.RootURL)
	log.WithField("files", len(loaders)).Info("load started")

	seen := make(map[string]bool, len(loaders))
	for _, loader := range loaders {
		// Failed files still count as seen so their records are not deleted.
		seen[loader.URL()] = true
		if err := c.loadFile(ctx, run, loader); err != nil {
			return nil, err
		}
	}

	if err := c.deleteUnmatched(ctx, run, seen); err != nil {
		return nil, err
	}
	if c.Options.DryRun {
		run.info(dryRunWarning)
	}

	result := run.result(fmt.Sprintf("Loaded %d file(s) into %s", len(loaders), c.RootURL))
	if err := run.finish(); err != nil {
		return result, err
	}

	log.Info("load finished")
	return result, nil
}

// loaders resolves the root to a single leaf file or to every file of its directory.
func (c *LoadCommand) loaders() ([]*pagesync.Loader, error) {
	if c.RootURL != "/" {
		leaf := domain.URLToPath(c.RootURL, false)
		info, err := c.deps.Dir.Stat(leaf)
		if err != nil {
			return nil, err
		}
		if info.Exists && !info.IsDir {
			return []*pagesync.Loader{pagesync.NewLoader(c.deps.Pages, c.deps.Dir, leaf)}, nil
		}
	}

	indexPath := domain.URLToPath(c.RootURL, true)
	start := path.Dir(indexPath)
	check := indexPath
	if c.RootURL == "/" {
		check = start
	}
	info, err := c.deps.Dir.Stat(check)
	if err != nil {
		return nil, err
	}
	if !info.Exists {
		return nil, &application.RootNotFoundError{URL: c.RootURL}
	}

	files, err := c.deps.Dir.Files(start)
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", start, err)
	}
	loaders := make([]*pagesync.Loader, 0, len(files))
	for _, f := range files {
		loaders = append(loaders, pagesync.NewLoader(c.deps.Pages, c.deps.Dir, f))
	}
	return loaders, nil
}

func (c *LoadCommand) loadFile(ctx context.Context, run *syncRun, loader *pagesync.Loader) error {
	url := loader.URL()

	change, err := loader.Status(ctx)
	if err != nil {
		return run.fail(loader.RelativePath(), err)
	}
	page, err := loader.Page(ctx)
	if err != nil {
		return err
	}
	locallyEdited := page != nil && page.LocallyEdited

	status := domain.Status{Change: change}
	apply := true
	if change != domain.Unchanged {
		req := ports.ConfirmRequest{}
		if change == domain.Added {
			req.Messages = []string{"Page created: " + url}
		} else {
			req.Messages = []string{"Page modified: " + url}
			if req.Diff, err = loader.Diff(ctx); err != nil {
				return err
			}
			if locallyEdited {
				req.Messages = append(req.Messages, adminEditWarning)
			}
		}

		if locallyEdited && !c.Options.Force {
			apply = false
		} else if apply, err = run.confirm(ctx, req); err != nil {
			return err
		}

		if !apply {
			status.Note = domain.Skipped
		} else if locallyEdited {
			status.Note = domain.Forced
		}
	}
	run.record(status, url)

	if !apply || c.Options.DryRun {
		return nil
	}
	if change == domain.Unchanged {
		if locallyEdited {
			return c.deps.Pages.SetLocallyEdited(ctx, url, false)
		}
		return nil
	}
	if err := loader.Save(ctx); err != nil {
		return err
	}
	run.Log.WithField("url", url).Debug("page saved")
	return nil
}

// deleteUnmatched removes records under the root that had no file this run.
func (c *LoadCommand) deleteUnmatched(ctx context.Context, run *syncRun, seen map[string]bool) error {
	pages, err := c.deps.Pages.ListSubtree(ctx, c.RootURL)
	if err != nil {
		return fmt.Errorf("failed to list pages under %s: %w", c.RootURL, err)
	}

	for _, page := range pages {
		if seen[page.URL] || !domain.InSubtree(page.URL, c.RootURL) {
			continue
		}

		req := ports.ConfirmRequest{
			Messages: []string{fmt.Sprintf("Page to be deleted: %s (%d)", page.URL, page.ID)},
		}
		if page.LocallyEdited {
			req.Messages = append(req.Messages, adminEditWarning)
		}

		apply := false
		if !page.LocallyEdited || c.Options.Force {
			if apply, err = run.confirm(ctx, req); err != nil {
				return err
			}
		}

		status := domain.Status{Change: domain.Deleted}
		if !apply {
			status.Note = domain.Skipped
		} else if page.LocallyEdited {
			status.Note = domain.Forced
		}
		run.record(status, page.URL)

		if apply && !c.Options.DryRun {
			if err := c.deps.Pages.Delete(ctx, page.URL); err != nil {
				return fmt.Errorf("failed to delete page %s: %w", page.URL, err)
			}
			run.Log.WithField("url", page.URL).Debug("page deleted")
		}
	}
	return nil
}
