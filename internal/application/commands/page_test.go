package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"powerpages/internal/application"
	"powerpages/internal/application/processors"
	"powerpages/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestEditPageCommand_Validate(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		draft     PageDraft
		wantField string
	}{
		{name: "valid", url: "/a/"},
		{name: "missing url", url: "", wantField: "url"},
		{name: "relative url", url: "a/", wantField: "url"},
		{name: "blank processor", url: "/a/", draft: PageDraft{PageProcessor: strPtr("  ")}, wantField: "pageProcessor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewEditPageCommand(newMemPages(), processors.DefaultRegistry(), tt.url, tt.draft)
			err := cmd.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var vErr *application.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}
}

func TestEditPageCommand_CreatesLocallyEditedPage(t *testing.T) {
	pages := newMemPages()
	draft := PageDraft{
		Title:    strPtr("  About us \n"),
		Template: strPtr("<p>hi</p>"),
	}

	result, err := NewEditPageCommand(pages, processors.DefaultRegistry(), "/about/", draft).Execute(context.Background())
	require.NoError(t, err)

	assert.True(t, result.Created)
	assert.Equal(t, "Created page /about/", result.Message)

	stored := pages.pages["/about/"]
	require.NotNil(t, stored)
	assert.Equal(t, "About us", stored.Title)
	assert.Equal(t, "<p>hi</p>\n", stored.Template)
	assert.Equal(t, domain.DefaultPageProcessor, stored.PageProcessor)
	assert.True(t, stored.LocallyEdited)
}

func TestEditPageCommand_KeepsUntouchedFields(t *testing.T) {
	existing := testPage("/about/", "About")
	existing.Keywords = "company"
	existing.PageProcessorConfig = map[string]any{"cache": false}
	pages := newMemPages(existing)

	draft := PageDraft{Description: strPtr("Who we are")}
	result, err := NewEditPageCommand(pages, processors.DefaultRegistry(), "/about/", draft).Execute(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Created)

	stored := pages.pages["/about/"]
	assert.Equal(t, "About", stored.Title)
	assert.Equal(t, "company", stored.Keywords)
	assert.Equal(t, "Who we are", stored.Description)
	assert.Equal(t, map[string]any{"cache": false}, stored.PageProcessorConfig)
}

func TestEditPageCommand_ClearsConfigAndAlias(t *testing.T) {
	existing := testPage("/about/", "About")
	existing.Alias = strPtr("about")
	existing.PageProcessorConfig = map[string]any{"cache": false}
	pages := newMemPages(existing)

	draft := PageDraft{Alias: strPtr(""), ConfigSet: true}
	_, err := NewEditPageCommand(pages, processors.DefaultRegistry(), "/about/", draft).Execute(context.Background())
	require.NoError(t, err)

	stored := pages.pages["/about/"]
	assert.Nil(t, stored.Alias)
	assert.Nil(t, stored.PageProcessorConfig)
}

func TestEditPageCommand_Rejects(t *testing.T) {
	taken := testPage("/home/", "Home")
	taken.Alias = strPtr("home")

	tests := []struct {
		name      string
		draft     PageDraft
		wantField string
	}{
		{name: "alias owned by another page", draft: PageDraft{Alias: strPtr("home")}, wantField: "alias"},
		{name: "unknown processor", draft: PageDraft{PageProcessor: strPtr("custom.Processor")}, wantField: "pageProcessor"},
		{name: "unknown config key", draft: PageDraft{Config: map[string]any{"colour": "red"}, ConfigSet: true}, wantField: "processorConfig"},
		{
			name: "redirect to missing alias",
			draft: PageDraft{
				PageProcessor: strPtr(processors.RedirectName),
				Config:        map[string]any{"to alias": "nowhere"},
				ConfigSet:     true,
			},
			wantField: "processorConfig",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pages := newMemPages(taken)

			_, err := NewEditPageCommand(pages, processors.DefaultRegistry(), "/about/", tt.draft).Execute(context.Background())

			var vErr *application.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)
			assert.NotContains(t, pages.pages, "/about/")
		})
	}
}

func TestEditPageCommand_RedirectToExistingAlias(t *testing.T) {
	home := testPage("/home/", "Home")
	home.Alias = strPtr("home")
	pages := newMemPages(home)

	draft := PageDraft{
		PageProcessor: strPtr(processors.RedirectName),
		Config:        map[string]any{"to alias": "home", "permanent": true},
		ConfigSet:     true,
	}
	_, err := NewEditPageCommand(pages, processors.DefaultRegistry(), "/old-home/", draft).Execute(context.Background())
	require.NoError(t, err)

	result, err := NewRenderPageCommand(pages, processors.DefaultRegistry(), "/old-home/").Execute(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Accessible)
	assert.Equal(t, "/home/", result.Output)
}

func TestDraftFromFields_RoundTripsThroughEdit(t *testing.T) {
	pages := newMemPages(testPage("/a/", "Old"))
	fields := fieldsWithTitle("New")
	fields.Template = "<p>new</p>\n"

	_, err := NewEditPageCommand(pages, processors.DefaultRegistry(), "/a/", DraftFromFields(fields)).Execute(context.Background())
	require.NoError(t, err)

	assert.True(t, pages.pages["/a/"].Fields().Equal(fields))
}

func TestRenderPageCommand_NotAccessible(t *testing.T) {
	hidden := testPage("/hidden/", "Hidden")
	hidden.PageProcessor = processors.NotFoundName
	pages := newMemPages(hidden)

	result, err := NewRenderPageCommand(pages, processors.DefaultRegistry(), "/hidden/").Execute(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Accessible)
	assert.Empty(t, result.Output)
}

func TestListPagesCommand(t *testing.T) {
	pages := newMemPages(testPage("/", "Home"), testPage("/b/", "B"), testPage("/a/", "A"), testPage("/a/x/", "X"))

	all, err := NewListPagesCommand(pages, "").Execute(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 4)

	sub, err := NewListPagesCommand(pages, "/a/").Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, sub, 2)
	assert.Equal(t, "/a/", sub[0].URL)
	assert.Equal(t, "/a/x/", sub[1].URL)
}

func TestShowPageCommand(t *testing.T) {
	pages := newMemPages(testPage("/a/", "A"))

	result, err := NewShowPageCommand(pages, "/a/").Execute(context.Background())
	require.NoError(t, err)
	want, err := domain.MarshalPageFile(fieldsWithTitle("A"))
	require.NoError(t, err)
	assert.Equal(t, want, result.Content)

	_, err = NewShowPageCommand(pages, "/missing/").Execute(context.Background())
	assert.True(t, errors.Is(err, application.ErrNotFound))
}

func TestDeletePageCommand(t *testing.T) {
	pages := newMemPages(testPage("/a/", "A"))

	result, err := NewDeletePageCommand(pages, "/a/").Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/a/", result.DeletedURL)
	assert.Empty(t, pages.pages)

	_, err = NewDeletePageCommand(pages, "/a/").Execute(context.Background())
	assert.True(t, errors.Is(err, application.ErrNotFound))

	var vErr *application.ValidationError
	_, err = NewDeletePageCommand(pages, "").Execute(context.Background())
	assert.ErrorAs(t, err, &vErr)
}
