package commands

import (
	"context"
	"fmt"

	"powerpages/internal/application"
	"powerpages/internal/application/processors"
	"powerpages/internal/domain"
	"powerpages/internal/ports"
)

// PageDraft holds the attributes an edit changes. Nil fields keep the
// stored value; ConfigSet distinguishes "clear the config" from "leave it".
type PageDraft struct {
	Alias         *string
	Title         *string
	Description   *string
	Keywords      *string
	Template      *string
	PageProcessor *string
	Config        map[string]any
	ConfigSet     bool
}

// DraftFromFields returns a draft that replaces every attribute with f.
func DraftFromFields(f domain.Fields) PageDraft {
	alias := ""
	if f.Alias != nil {
		alias = *f.Alias
	}
	return PageDraft{
		Alias:         &alias,
		Title:         &f.Title,
		Description:   &f.Description,
		Keywords:      &f.Keywords,
		Template:      &f.Template,
		PageProcessor: &f.PageProcessor,
		Config:        f.PageProcessorConfig,
		ConfigSet:     true,
	}
}

func (d PageDraft) apply(f domain.Fields) domain.Fields {
	if d.Alias != nil {
		alias := *d.Alias
		f.Alias = &alias
	}
	if d.Title != nil {
		f.Title = *d.Title
	}
	if d.Description != nil {
		f.Description = *d.Description
	}
	if d.Keywords != nil {
		f.Keywords = *d.Keywords
	}
	if d.Template != nil {
		f.Template = *d.Template
	}
	if d.PageProcessor != nil {
		f.PageProcessor = *d.PageProcessor
	}
	if d.ConfigSet {
		f.PageProcessorConfig = d.Config
	}
	return f.Normalize()
}

// EditPageResult contains the result of an edit
type EditPageResult struct {
	Page    *domain.Page
	Created bool
	Message string
}

// EditPageCommand creates or updates a page the way the admin does: the page
// is validated against its processor and marked as locally edited.
type EditPageCommand struct {
	pages    ports.PageRepository
	registry *processors.Registry
	URL      string
	Draft    PageDraft
}

// NewEditPageCommand creates a new EditPageCommand
func NewEditPageCommand(pages ports.PageRepository, registry *processors.Registry, url string, draft PageDraft) *EditPageCommand {
	return &EditPageCommand{
		pages:    pages,
		registry: registry,
		URL:      url,
		Draft:    draft,
	}
}

// Validate checks the parts of the edit that need no store access
func (c *EditPageCommand) Validate() error {
	if err := application.ValidatePageURL("url", c.URL); err != nil {
		return err
	}
	if c.Draft.PageProcessor != nil {
		if err := application.ValidateRequired("pageProcessor", *c.Draft.PageProcessor); err != nil {
			return err
		}
	}
	return nil
}

// Execute runs the edit command
func (c *EditPageCommand) Execute(ctx context.Context) (*EditPageResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	page, err := c.pages.GetByURL(ctx, c.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", c.URL, err)
	}
	created := page == nil
	if created {
		page = domain.NewPage(c.URL)
	}

	fields := c.Draft.apply(page.Fields())

	processor, err := c.registry.Lookup(fields.PageProcessor)
	if err != nil {
		return nil, &application.ValidationError{Field: "pageProcessor", Message: err.Error()}
	}

	if fields.Alias != nil {
		owner, err := c.pages.GetByAlias(ctx, *fields.Alias)
		if err != nil {
			return nil, fmt.Errorf("failed to check alias: %w", err)
		}
		if owner != nil && owner.URL != c.URL {
			return nil, &application.ValidationError{
				Field:   "alias",
				Message: fmt.Sprintf("%q is already used by %s", *fields.Alias, owner.URL),
			}
		}
	}

	page.Assign(fields)
	if err := processor.Validate(ctx, page, c.pages); err != nil {
		return nil, &application.ValidationError{Field: "processorConfig", Message: err.Error()}
	}

	page.LocallyEdited = true
	if err := c.pages.Save(ctx, page); err != nil {
		return nil, fmt.Errorf("failed to save %s: %w", c.URL, err)
	}

	verb := "Updated"
	if created {
		verb = "Created"
	}
	return &EditPageResult{
		Page:    page,
		Created: created,
		Message: fmt.Sprintf("%s page %s", verb, c.URL),
	}, nil
}

// ListPagesCommand lists the pages under a URL prefix
type ListPagesCommand struct {
	pages  ports.PageRepository
	Prefix string
}

// NewListPagesCommand creates a new ListPagesCommand. An empty prefix lists every page.
func NewListPagesCommand(pages ports.PageRepository, prefix string) *ListPagesCommand {
	if prefix == "" {
		prefix = "/"
	}
	return &ListPagesCommand{pages: pages, Prefix: prefix}
}

// Execute runs the list command
func (c *ListPagesCommand) Execute(ctx context.Context) ([]*domain.Page, error) {
	return c.pages.ListSubtree(ctx, c.Prefix)
}

// ShowPageResult holds a page and its page file rendition
type ShowPageResult struct {
	Page    *domain.Page
	Content string
}

// ShowPageCommand renders one page in the page file format
type ShowPageCommand struct {
	pages ports.PageRepository
	URL   string
}

// NewShowPageCommand creates a new ShowPageCommand
func NewShowPageCommand(pages ports.PageRepository, url string) *ShowPageCommand {
	return &ShowPageCommand{pages: pages, URL: url}
}

// Execute runs the show command
func (c *ShowPageCommand) Execute(ctx context.Context) (*ShowPageResult, error) {
	page, err := getPage(ctx, c.pages, c.URL)
	if err != nil {
		return nil, err
	}
	content, err := domain.MarshalPageFile(page.Fields())
	if err != nil {
		return nil, err
	}
	return &ShowPageResult{Page: page, Content: content}, nil
}

// RenderPageResult is what a page's processor hands to the web layer
type RenderPageResult struct {
	Page       *domain.Page
	Processor  string
	Accessible bool
	Output     string
}

// RenderPageCommand runs a page through its processor
type RenderPageCommand struct {
	pages    ports.PageRepository
	registry *processors.Registry
	URL      string
}

// NewRenderPageCommand creates a new RenderPageCommand
func NewRenderPageCommand(pages ports.PageRepository, registry *processors.Registry, url string) *RenderPageCommand {
	return &RenderPageCommand{pages: pages, registry: registry, URL: url}
}

// Execute runs the render command. Inaccessible pages are reported, not rendered.
func (c *RenderPageCommand) Execute(ctx context.Context) (*RenderPageResult, error) {
	page, err := getPage(ctx, c.pages, c.URL)
	if err != nil {
		return nil, err
	}
	processor, err := c.registry.Lookup(page.PageProcessor)
	if err != nil {
		return nil, err
	}

	result := &RenderPageResult{
		Page:       page,
		Processor:  processor.Name(),
		Accessible: processor.IsAccessible(),
	}
	if !result.Accessible {
		return result, nil
	}
	if result.Output, err = processor.Render(ctx, page, c.pages); err != nil {
		return nil, err
	}
	return result, nil
}

// DeletePageCommand removes one page record
type DeletePageCommand struct {
	pages ports.PageRepository
	URL   string
}

// NewDeletePageCommand creates a new DeletePageCommand
func NewDeletePageCommand(pages ports.PageRepository, url string) *DeletePageCommand {
	return &DeletePageCommand{pages: pages, URL: url}
}

// Validate checks if the delete operation is valid
func (c *DeletePageCommand) Validate() error {
	return application.ValidateRequired("url", c.URL)
}

// Execute runs the delete command
func (c *DeletePageCommand) Execute(ctx context.Context) (*DeleteResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := c.pages.Delete(ctx, c.URL); err != nil {
		return nil, fmt.Errorf("failed to delete %s: %w", c.URL, err)
	}
	return &DeleteResult{
		DeletedURL: c.URL,
		Message:    fmt.Sprintf("Deleted page %s", c.URL),
	}, nil
}

// DeleteResult contains the result of a delete operation
type DeleteResult struct {
	DeletedURL string
	Message    string
}

func getPage(ctx context.Context, pages ports.PageRepository, url string) (*domain.Page, error) {
	page, err := pages.GetByURL(ctx, url)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, fmt.Errorf("page %s: %w", url, application.ErrNotFound)
	}
	return page, nil
}
