package domain

import (
	"strings"
	"time"
)

// DefaultPageProcessor is the processor assigned to newly created pages.
const DefaultPageProcessor = "powerpages.DefaultPageProcessor"

// Page is a CMS page record. URL is the natural key used for sync matching;
// ID is assigned by the store and only used for admin linking.
type Page struct {
	ID                  int64
	URL                 string
	Alias               *string
	Title               string
	Description         string
	Keywords            string
	Template            string
	PageProcessor       string
	PageProcessorConfig map[string]any
	LocallyEdited       bool
	AddedAt             time.Time
	ChangedAt           time.Time
}

// NewPage returns an unsaved page for url with default field values.
func NewPage(url string) *Page {
	return &Page{
		URL:           url,
		PageProcessor: DefaultPageProcessor,
	}
}

// Fields returns the page's normalized field set.
func (p *Page) Fields() Fields {
	return Fields{
		Alias:               p.Alias,
		Title:               p.Title,
		Description:         p.Description,
		Keywords:            p.Keywords,
		Template:            p.Template,
		PageProcessor:       p.PageProcessor,
		PageProcessorConfig: p.PageProcessorConfig,
	}.Normalize()
}

// Assign overwrites every sync-relevant field with the normalized values of f.
func (p *Page) Assign(f Fields) {
	f = f.Normalize()
	p.Alias = f.Alias
	p.Title = f.Title
	p.Description = f.Description
	p.Keywords = f.Keywords
	p.Template = f.Template
	p.PageProcessor = f.PageProcessor
	p.PageProcessorConfig = f.PageProcessorConfig
}

// ParentURL returns the URL of the page's parent, or "" for the root page.
func (p *Page) ParentURL() string {
	return ParentURL(p.URL)
}

// AliasString returns the alias or "" when none is set.
func (p *Page) AliasString() string {
	if p.Alias == nil {
		return ""
	}
	return *p.Alias
}

// ParentURL returns the parent of url: "/a/b/" -> "/a/", "/a/robots.txt" -> "/a/".
// The root URL has no parent.
func ParentURL(url string) string {
	trimmed := strings.TrimSuffix(url, "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 {
		return ""
	}
	parent := trimmed[:idx+1]
	if parent == url {
		return ""
	}
	return parent
}

// IsDescendant reports whether url lies strictly below root. Only a root
// ending in "/" has descendants, so "/about/" is not below "/a".
func IsDescendant(url, root string) bool {
	if !strings.HasSuffix(root, "/") {
		return false
	}
	return url != root && strings.HasPrefix(url, root)
}

// InSubtree reports whether url is root itself or one of its descendants.
func InSubtree(url, root string) bool {
	return url == root || IsDescendant(url, root)
}
