package pagesync

import (
	"context"
	"errors"
	"fmt"

	"powerpages/internal/domain"
	"powerpages/internal/ports"
)

// Loader reads one page file into its record.
type Loader struct {
	pages   ports.PageRepository
	dir     ports.SyncDirectory
	relPath string
}

// NewLoader creates a Loader for the file at relPath.
func NewLoader(pages ports.PageRepository, dir ports.SyncDirectory, relPath string) *Loader {
	return &Loader{
		pages:   pages,
		dir:     dir,
		relPath: relPath,
	}
}

// RelativePath returns the source file path relative to the sync root.
func (l *Loader) RelativePath() string {
	return l.relPath
}

// URL returns the page URL the file maps to.
func (l *Loader) URL() string {
	return domain.PathToURL(l.relPath)
}

// Fields parses the file into a normalized field set.
func (l *Loader) Fields() (domain.Fields, error) {
	return readPageFile(l.dir, l.relPath)
}

// Content returns the canonical serialization of the parsed file.
func (l *Loader) Content() (string, error) {
	fields, err := l.Fields()
	if err != nil {
		return "", err
	}
	return domain.MarshalPageFile(fields)
}

// Page looks up the matching record, nil when there is none.
func (l *Loader) Page(ctx context.Context) (*domain.Page, error) {
	return l.pages.GetByURL(ctx, l.URL())
}

// Status compares the file against the record as it is stored now.
func (l *Loader) Status(ctx context.Context) (domain.Change, error) {
	fields, err := l.Fields()
	if err != nil {
		return domain.Unchanged, err
	}
	page, err := l.Page(ctx)
	if err != nil {
		return domain.Unchanged, err
	}
	if page == nil {
		return domain.Added, nil
	}
	return domain.Classify(true, !page.Fields().Equal(fields)), nil
}

// Diff renders the change from the stored record to the file.
func (l *Loader) Diff(ctx context.Context) (string, error) {
	var current Side

	page, err := l.Page(ctx)
	if err != nil {
		return "", err
	}
	if page != nil {
		if current.Content, err = domain.MarshalPageFile(page.Fields()); err != nil {
			return "", err
		}
		current.ModTime = page.ChangedAt
	}

	coming, err := l.Content()
	if err != nil {
		return "", err
	}
	info, err := l.dir.Stat(l.relPath)
	if err != nil {
		return "", err
	}
	return Diff(current, Side{Content: coming, ModTime: info.ModTime}), nil
}

// Save finds or creates the record by URL, overwrites every synced field and
// clears the locally-edited flag.
func (l *Loader) Save(ctx context.Context) error {
	fields, err := l.Fields()
	if err != nil {
		return err
	}
	page, err := l.Page(ctx)
	if err != nil {
		return err
	}
	if page == nil {
		page = domain.NewPage(l.URL())
	}
	page.Assign(fields)
	page.LocallyEdited = false

	if err := l.pages.Save(ctx, page); err != nil {
		return fmt.Errorf("failed to save page %s: %w", page.URL, err)
	}
	return nil
}

func readPageFile(dir ports.SyncDirectory, rel string) (domain.Fields, error) {
	content, err := dir.ReadFile(rel)
	if err != nil {
		return domain.Fields{}, fmt.Errorf("failed to read %s: %w", rel, err)
	}
	fields, err := domain.UnmarshalPageFile(content)
	if err != nil {
		var formatErr *domain.FormatError
		if errors.As(err, &formatErr) {
			formatErr.Path = rel
			return domain.Fields{}, formatErr
		}
		return domain.Fields{}, err
	}
	return fields, nil
}
