package commands

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"powerpages/internal/adapters/filesystem"
	"powerpages/internal/application"
	"powerpages/internal/domain"
	"powerpages/internal/ports"
)

// memPages is an in-memory PageRepository. It hands out copies so commands
// cannot change stored records without calling Save.
type memPages struct {
	pages  map[string]*domain.Page
	nextID int64
	now    time.Time
}

var _ ports.PageRepository = (*memPages)(nil)

func newMemPages(pages ...*domain.Page) *memPages {
	m := &memPages{
		pages: make(map[string]*domain.Page),
		now:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	for _, p := range pages {
		if err := m.Save(context.Background(), p); err != nil {
			panic(err)
		}
		m.pages[p.URL].LocallyEdited = p.LocallyEdited
	}
	return m
}

func clonePage(p *domain.Page) *domain.Page {
	c := *p
	return &c
}

func (m *memPages) GetByURL(_ context.Context, url string) (*domain.Page, error) {
	if p, ok := m.pages[url]; ok {
		return clonePage(p), nil
	}
	return nil, nil
}

func (m *memPages) GetByAlias(_ context.Context, alias string) (*domain.Page, error) {
	for _, p := range m.pages {
		if p.Alias != nil && *p.Alias == alias {
			return clonePage(p), nil
		}
	}
	return nil, nil
}

func (m *memPages) ListSubtree(_ context.Context, prefix string) ([]*domain.Page, error) {
	var out []*domain.Page
	for url, p := range m.pages {
		if strings.HasPrefix(url, prefix) {
			out = append(out, clonePage(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].URL < out[j].URL })
	return out, nil
}

func (m *memPages) Save(_ context.Context, page *domain.Page) error {
	if page.Alias != nil {
		for url, p := range m.pages {
			if url != page.URL && p.Alias != nil && *p.Alias == *page.Alias {
				return application.ErrAliasTaken
			}
		}
	}
	m.now = m.now.Add(time.Second)
	if existing, ok := m.pages[page.URL]; ok {
		page.ID = existing.ID
		page.AddedAt = existing.AddedAt
	} else {
		m.nextID++
		page.ID = m.nextID
		page.AddedAt = m.now
	}
	page.ChangedAt = m.now
	m.pages[page.URL] = clonePage(page)
	return nil
}

func (m *memPages) Delete(_ context.Context, url string) error {
	if _, ok := m.pages[url]; !ok {
		return application.ErrNotFound
	}
	delete(m.pages, url)
	return nil
}

func (m *memPages) SetLocallyEdited(_ context.Context, url string, edited bool) error {
	p, ok := m.pages[url]
	if !ok {
		return application.ErrNotFound
	}
	p.LocallyEdited = edited
	return nil
}

// scriptedConfirmer answers every request with answer and keeps the requests.
type scriptedConfirmer struct {
	answer   bool
	requests []ports.ConfirmRequest
}

func (c *scriptedConfirmer) Confirm(_ context.Context, req ports.ConfirmRequest) (bool, error) {
	c.requests = append(c.requests, req)
	return c.answer, nil
}

type recordingReporter struct {
	items    []string
	infos    []string
	warnings []string
	summary  *domain.Summary
}

func (r *recordingReporter) Item(status domain.Status, item string) {
	r.items = append(r.items, fmt.Sprintf("%s %s", status.Code(), item))
}

func (r *recordingReporter) Info(message string) { r.infos = append(r.infos, message) }

func (r *recordingReporter) Warn(message string) { r.warnings = append(r.warnings, message) }

func (r *recordingReporter) Summary(summary *domain.Summary) { r.summary = summary }

type countingStager struct {
	calls int
	err   error
}

func (s *countingStager) Stage(context.Context) error {
	s.calls++
	return s.err
}

// syncFixture wires the fakes around an in-memory sync directory at /site.
type syncFixture struct {
	pages     *memPages
	fs        afero.Fs
	dir       *filesystem.Directory
	confirmer *scriptedConfirmer
	reporter  *recordingReporter
	stager    *countingStager
}

func newSyncFixture(t *testing.T, pages ...*domain.Page) *syncFixture {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/site", 0755))
	return &syncFixture{
		pages:     newMemPages(pages...),
		fs:        fs,
		dir:       filesystem.NewDirectoryFs(fs, "/site"),
		confirmer: &scriptedConfirmer{answer: true},
		reporter:  &recordingReporter{},
		stager:    &countingStager{},
	}
}

func (f *syncFixture) deps() Collaborators {
	return Collaborators{
		Pages:     f.pages,
		Dir:       f.dir,
		Confirmer: f.confirmer,
		Reporter:  f.reporter,
		Stager:    f.stager,
	}
}

func (f *syncFixture) writePage(t *testing.T, rel string, fields domain.Fields) {
	t.Helper()
	content, err := domain.MarshalPageFile(fields)
	require.NoError(t, err)
	f.writeRaw(t, rel, content)
}

func (f *syncFixture) writeRaw(t *testing.T, rel, content string) {
	t.Helper()
	require.NoError(t, f.fs.MkdirAll(path.Dir("/site/"+rel), 0755))
	require.NoError(t, afero.WriteFile(f.fs, "/site/"+rel, []byte(content), 0644))
}

func (f *syncFixture) exists(t *testing.T, rel string) bool {
	t.Helper()
	ok, err := afero.Exists(f.fs, "/site/"+rel)
	require.NoError(t, err)
	return ok
}

func (f *syncFixture) readPage(t *testing.T, rel string) domain.Fields {
	t.Helper()
	data, err := afero.ReadFile(f.fs, "/site/"+rel)
	require.NoError(t, err)
	fields, err := domain.UnmarshalPageFile(string(data))
	require.NoError(t, err)
	return fields
}

func testPage(url, title string) *domain.Page {
	p := domain.NewPage(url)
	p.Title = title
	return p
}

func fieldsWithTitle(title string) domain.Fields {
	return testPage("/", title).Fields()
}
