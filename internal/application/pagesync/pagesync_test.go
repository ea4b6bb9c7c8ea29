package pagesync

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"powerpages/internal/adapters/filesystem"
	"powerpages/internal/domain"
	"powerpages/internal/ports"
)

func TestDiff(t *testing.T) {
	changed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("identical content", func(t *testing.T) {
		assert.Empty(t, Diff(Side{Content: "a\nb\n"}, Side{Content: "a\nb\n"}))
	})

	t.Run("labels and timestamps", func(t *testing.T) {
		diff := Diff(Side{Content: "a\nb\n"}, Side{Content: "a\nc\n", ModTime: changed})
		lines := strings.Split(diff, "\n")
		require.GreaterOrEqual(t, len(lines), 4)
		assert.Equal(t, "--- Current content", lines[0])
		assert.Equal(t, "+++ Coming changes\t2024-05-01 12:00:00.000000000 +0000", lines[1])
		assert.Contains(t, lines, "-b")
		assert.Contains(t, lines, "+c")
	})

	t.Run("keeps the whole page as context", func(t *testing.T) {
		var current, coming strings.Builder
		for i := 0; i < 50; i++ {
			current.WriteString("line\n")
			coming.WriteString("line\n")
		}
		current.WriteString("old\n")
		coming.WriteString("new\n")

		diff := Diff(Side{Content: current.String()}, Side{Content: coming.String()})
		assert.Equal(t, 50, strings.Count(diff, " line\n"))
	})
}

func TestPaths(t *testing.T) {
	page := domain.NewPage("/docs/")

	assert.Equal(t, "docs/_index_.page", NewDumper(nil, nil, page, true).RelativePath())
	assert.Equal(t, "docs.page", NewDumper(nil, nil, page, false).RelativePath())
	assert.Equal(t, "/docs/", NewLoader(nil, nil, "docs/_index_.page").URL())
	assert.Equal(t, "/docs/", NewLoader(nil, nil, "docs.page").URL())
}

func TestDumper_StatusAgainstDisk(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/site", 0755))
	dir := filesystem.NewDirectoryFs(fs, "/site")

	page := domain.NewPage("/a/")
	page.Title = "A"
	dumper := NewDumper(nil, dir, page, false)

	change, err := dumper.Status()
	require.NoError(t, err)
	assert.Equal(t, domain.Added, change)

	content, err := dumper.Content()
	require.NoError(t, err)
	require.NoError(t, dir.WriteFile("a.page", strings.ReplaceAll(content, "\n", "\r\n")))

	change, err = dumper.Status()
	require.NoError(t, err)
	assert.Equal(t, domain.Unchanged, change)

	page.Title = "B"
	change, err = dumper.Status()
	require.NoError(t, err)
	assert.Equal(t, domain.Modified, change)

	require.NoError(t, dir.WriteFile("a.page", "garbage"))
	_, err = dumper.Status()
	var formatErr *domain.FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "a.page", formatErr.Path)
}

type flagPages struct {
	ports.PageRepository
	cleared []string
}

func (p *flagPages) SetLocallyEdited(_ context.Context, url string, edited bool) error {
	if !edited {
		p.cleared = append(p.cleared, url)
	}
	return nil
}

func TestDumper_Save(t *testing.T) {
	newPage := func() *domain.Page {
		page := domain.NewPage("/a/")
		page.Title = "A"
		page.LocallyEdited = true
		return page
	}

	t.Run("writes the file then clears the flag", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, fs.MkdirAll("/site", 0755))
		pages := &flagPages{}
		page := newPage()
		dumper := NewDumper(pages, filesystem.NewDirectoryFs(fs, "/site"), page, false)

		require.NoError(t, dumper.Save(context.Background()))

		exists, err := afero.Exists(fs, "/site/a.page")
		require.NoError(t, err)
		assert.True(t, exists)
		assert.Equal(t, []string{"/a/"}, pages.cleared)
		assert.False(t, page.LocallyEdited)
	})

	t.Run("failed write keeps the flag", func(t *testing.T) {
		base := afero.NewMemMapFs()
		require.NoError(t, base.MkdirAll("/site", 0755))
		pages := &flagPages{}
		page := newPage()
		dumper := NewDumper(pages, filesystem.NewDirectoryFs(afero.NewReadOnlyFs(base), "/site"), page, false)

		require.Error(t, dumper.Save(context.Background()))

		assert.Empty(t, pages.cleared)
		assert.True(t, page.LocallyEdited)
	})
}
