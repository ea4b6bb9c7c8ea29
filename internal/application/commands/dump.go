package commands

import (
	"context"
	"fmt"
	"path"

	"github.com/sirupsen/logrus"

	"powerpages/internal/application"
	"powerpages/internal/application/pagesync"
	"powerpages/internal/domain"
	"powerpages/internal/ports"
)

// DumpCommand writes the page subtree under RootURL into the sync directory
// and removes files in that subtree that no longer have a record.
type DumpCommand struct {
	deps    Collaborators
	RootURL string
	Options SyncOptions
}

// NewDumpCommand creates a new DumpCommand
func NewDumpCommand(deps Collaborators, rootURL string, opts SyncOptions) *DumpCommand {
	return &DumpCommand{
		deps:    deps,
		RootURL: rootURL,
		Options: opts,
	}
}

// Validate checks if the dump operation is valid
func (c *DumpCommand) Validate() error {
	if err := application.ValidatePageURL("rootURL", c.RootURL); err != nil {
		return err
	}
	if c.Options.GitAdd && c.deps.Stager == nil {
		return &application.ValidationError{
			Field:   "gitAdd",
			Message: "no version control stager configured",
		}
	}
	return nil
}

// Execute runs the dump command. When some page files could not be parsed the
// result is returned together with a *application.FailedItemsError.
func (c *DumpCommand) Execute(ctx context.Context) (*SyncResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	root, err := c.deps.Pages.GetByURL(ctx, c.RootURL)
	if err != nil {
		return nil, fmt.Errorf("failed to load root page: %w", err)
	}
	if root == nil {
		return nil, &application.RootNotFoundError{URL: c.RootURL}
	}

	subtree, err := c.deps.Pages.ListSubtree(ctx, root.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to list pages under %s: %w", root.URL, err)
	}
	pages := []*domain.Page{root}
	urls := []string{root.URL}
	for _, p := range subtree {
		if domain.IsDescendant(p.URL, root.URL) {
			pages = append(pages, p)
			urls = append(urls, p.URL)
		}
	}

	run := newSyncRun(c.deps, c.Options)
	log := run.Log.WithField("root", root.URL)
	log.WithField("pages", len(pages)).Info("dump started")

	hierarchy := domain.NewHierarchy(urls)
	retained := map[string]bool{".": true}
	for _, page := range pages {
		dumper := pagesync.NewDumper(c.deps.Pages, c.deps.Dir, page, hierarchy.HasChildren(page.URL))
		if err := c.dumpPage(ctx, run, dumper); err != nil {
			return nil, err
		}
		retainWithAncestors(retained, dumper.RelativePath())
	}

	deleteRoot := path.Dir(domain.URLToPath(root.URL, true))
	if err := c.deleteOrphans(ctx, run, deleteRoot, retained); err != nil {
		return nil, err
	}

	result := run.result(fmt.Sprintf("Dumped %d page(s) from %s", len(pages), root.URL))
	if err := run.finish(); err != nil {
		return result, err
	}

	staged, err := c.stage(ctx, run)
	if err != nil {
		return result, err
	}
	result.Staged = staged

	log.Info("dump finished")
	return result, nil
}

func (c *DumpCommand) dumpPage(ctx context.Context, run *syncRun, dumper *pagesync.Dumper) error {
	rel := dumper.RelativePath()
	page := dumper.Page()

	change, err := dumper.Status()
	if err != nil {
		return run.fail(rel, err)
	}

	status := domain.Status{Change: change}
	apply := true
	switch change {
	case domain.Added:
		apply, err = run.confirm(ctx, ports.ConfirmRequest{
			Messages: []string{"Page created: " + page.URL},
		})
	case domain.Modified:
		diff, diffErr := dumper.Diff()
		if diffErr != nil {
			return run.fail(rel, diffErr)
		}
		apply, err = run.confirm(ctx, ports.ConfirmRequest{
			Messages: []string{"Page modified: " + page.URL},
			Diff:     diff,
		})
	}
	if err != nil {
		return err
	}
	if !apply {
		status.Note = domain.Skipped
	}
	run.record(status, rel)

	if !apply || c.Options.DryRun {
		return nil
	}
	if change == domain.Unchanged {
		if page.LocallyEdited {
			return c.deps.Pages.SetLocallyEdited(ctx, page.URL, false)
		}
		return nil
	}
	if err := dumper.Save(ctx); err != nil {
		return err
	}
	run.Log.WithField("path", rel).Debug("page file written")
	return nil
}

// deleteOrphans removes files and directories under start that are not retained,
// deepest first. A declined deletion retains the entry's ancestors.
func (c *DumpCommand) deleteOrphans(ctx context.Context, run *syncRun, start string, retained map[string]bool) error {
	info, err := c.deps.Dir.Stat(start)
	if err != nil {
		return err
	}
	if !info.Exists || !info.IsDir {
		return nil
	}

	entries, err := c.deps.Dir.Tree(start)
	if err != nil {
		return fmt.Errorf("failed to walk %s: %w", start, err)
	}

	for _, entry := range entries {
		if retained[entry.Path] {
			continue
		}
		apply, err := run.confirm(ctx, ports.ConfirmRequest{
			Messages: []string{"Path to be deleted: " + entry.Path},
		})
		if err != nil {
			return err
		}

		status := domain.Status{Change: domain.Deleted}
		if !apply {
			status.Note = domain.Skipped
			retainWithAncestors(retained, entry.Path)
		}
		run.record(status, entry.Path)

		if apply && !c.Options.DryRun {
			if err := c.deps.Dir.Remove(entry.Path); err != nil {
				return fmt.Errorf("failed to delete %s: %w", entry.Path, err)
			}
			run.Log.WithFields(logrus.Fields{
				"path": entry.Path,
				"dir":  entry.IsDir,
			}).Debug("orphan removed")
		}
	}
	return nil
}

// stage adds created and removed files to version control after a real run
// that added or deleted something.
func (c *DumpCommand) stage(ctx context.Context, run *syncRun) (bool, error) {
	if !c.Options.GitAdd || c.Options.DryRun {
		return false, nil
	}
	if run.summary.AppliedCount(domain.Added) == 0 && run.summary.AppliedCount(domain.Deleted) == 0 {
		return false, nil
	}
	ok, err := run.confirm(ctx, ports.ConfirmRequest{Question: stageQuestion})
	if err != nil || !ok {
		return false, err
	}
	if err := c.deps.Stager.Stage(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func retainWithAncestors(retained map[string]bool, rel string) {
	for p := rel; p != "." && p != "/" && p != ""; p = path.Dir(p) {
		retained[p] = true
	}
}
