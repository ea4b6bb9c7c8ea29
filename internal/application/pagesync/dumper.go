package pagesync

import (
	"context"
	"fmt"

	"powerpages/internal/domain"
	"powerpages/internal/ports"
)

// Dumper writes one page record into its file.
type Dumper struct {
	pages       ports.PageRepository
	dir         ports.SyncDirectory
	page        *domain.Page
	hasChildren bool
}

// NewDumper creates a Dumper for page. hasChildren selects the index file layout.
func NewDumper(pages ports.PageRepository, dir ports.SyncDirectory, page *domain.Page, hasChildren bool) *Dumper {
	return &Dumper{
		pages:       pages,
		dir:         dir,
		page:        page,
		hasChildren: hasChildren,
	}
}

// Page returns the record being dumped.
func (d *Dumper) Page() *domain.Page {
	return d.page
}

// RelativePath returns the target file path relative to the sync root.
func (d *Dumper) RelativePath() string {
	return domain.URLToPath(d.page.URL, d.hasChildren)
}

// Fields returns the record's normalized field set.
func (d *Dumper) Fields() domain.Fields {
	return d.page.Fields()
}

// Content returns the serialized file content for the record.
func (d *Dumper) Content() (string, error) {
	return domain.MarshalPageFile(d.Fields())
}

// FileExists reports whether the target file is present.
func (d *Dumper) FileExists() (bool, error) {
	info, err := d.dir.Stat(d.RelativePath())
	if err != nil {
		return false, err
	}
	return info.Exists && !info.IsDir, nil
}

// Status compares the record against the file as it is on disk now.
func (d *Dumper) Status() (domain.Change, error) {
	exists, err := d.FileExists()
	if err != nil {
		return domain.Unchanged, err
	}
	if !exists {
		return domain.Added, nil
	}
	current, err := readPageFile(d.dir, d.RelativePath())
	if err != nil {
		return domain.Unchanged, err
	}
	return domain.Classify(true, !current.Equal(d.Fields())), nil
}

// Diff renders the change from the file on disk to the record.
func (d *Dumper) Diff() (string, error) {
	var current Side
	rel := d.RelativePath()

	info, err := d.dir.Stat(rel)
	if err != nil {
		return "", err
	}
	if info.Exists {
		fields, err := readPageFile(d.dir, rel)
		if err != nil {
			return "", err
		}
		if current.Content, err = domain.MarshalPageFile(fields); err != nil {
			return "", err
		}
		current.ModTime = info.ModTime
	}

	coming, err := d.Content()
	if err != nil {
		return "", err
	}
	return Diff(current, Side{Content: coming, ModTime: d.page.ChangedAt}), nil
}

// Save writes the whole file, then clears the record's locally-edited flag.
// A failed write leaves the flag untouched.
func (d *Dumper) Save(ctx context.Context) error {
	content, err := d.Content()
	if err != nil {
		return err
	}
	if err := d.dir.WriteFile(d.RelativePath(), content); err != nil {
		return fmt.Errorf("failed to write %s: %w", d.RelativePath(), err)
	}

	if err := d.pages.SetLocallyEdited(ctx, d.page.URL, false); err != nil {
		return fmt.Errorf("failed to clear locally edited flag of %s: %w", d.page.URL, err)
	}
	d.page.LocallyEdited = false
	return nil
}
