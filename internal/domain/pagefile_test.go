package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultPageFile = `{
  "alias": null,
  "description": "",
  "keywords": "",
  "page_processor": "powerpages.DefaultPageProcessor",
  "page_processor_config": null,
  "title": ""
}
## TEMPLATE SOURCE: ##
`

func TestMarshalPageFile_Defaults(t *testing.T) {
	content, err := MarshalPageFile(NewPage("/").Fields())
	require.NoError(t, err)
	assert.Equal(t, defaultPageFile, content)
}

func TestMarshalPageFile_TemplateAndConfig(t *testing.T) {
	alias := "home"
	f := Fields{
		Alias:               &alias,
		Title:               "  Home <b>page</b>  ",
		Template:            "<h1>X</h1>",
		PageProcessor:       DefaultPageProcessor,
		PageProcessorConfig: map[string]any{"cache": 60, "base template": "base.html"},
	}

	content, err := MarshalPageFile(f)
	require.NoError(t, err)

	want := `{
  "alias": "home",
  "description": "",
  "keywords": "",
  "page_processor": "powerpages.DefaultPageProcessor",
  "page_processor_config": {
    "base template": "base.html",
    "cache": 60
  },
  "title": "Home <b>page</b>"
}
## TEMPLATE SOURCE: ##
<h1>X</h1>
`
	assert.Equal(t, want, content)
}

func TestPageFile_RoundTrip(t *testing.T) {
	alias := "contact"
	fieldSets := []Fields{
		NewPage("/").Fields(),
		{Title: "T", Description: "d\r\n", Keywords: " k ", Template: "body"},
		{
			Alias:               &alias,
			Title:               "Contact",
			Template:            "line 1\n## TEMPLATE SOURCE: ##\nline 3\n",
			PageProcessor:       "powerpages.RedirectProcessor",
			PageProcessorConfig: map[string]any{"to url": "/", "args": []any{1, "x"}},
		},
	}

	for _, f := range fieldSets {
		normalized := f.Normalize()
		content, err := MarshalPageFile(normalized)
		require.NoError(t, err)

		parsed, err := UnmarshalPageFile(content)
		require.NoError(t, err)
		assert.True(t, normalized.Equal(parsed), "round trip changed %+v into %+v", normalized, parsed)
		assert.Equal(t, normalized.Template, parsed.Template)
	}
}

func TestUnmarshalPageFile_InteriorDelimiterBelongsToTemplate(t *testing.T) {
	content := "{}\n## TEMPLATE SOURCE: ##\na\n## TEMPLATE SOURCE: ##\nb\n"

	f, err := UnmarshalPageFile(content)
	require.NoError(t, err)
	assert.Equal(t, "a\n## TEMPLATE SOURCE: ##\nb\n", f.Template)
}

func TestUnmarshalPageFile_CRLF(t *testing.T) {
	content := "{\r\n  \"title\": \"Hi\"\r\n}\r\n## TEMPLATE SOURCE: ##\r\n<p>x</p>\r\n"

	f, err := UnmarshalPageFile(content)
	require.NoError(t, err)
	assert.Equal(t, "Hi", f.Title)
	assert.Equal(t, "<p>x</p>\n", f.Template)
}

func TestUnmarshalPageFile_MissingFinalNewline(t *testing.T) {
	f, err := UnmarshalPageFile("{\"title\": \"x\"}\n## TEMPLATE SOURCE: ##")
	require.NoError(t, err)
	assert.Equal(t, "x", f.Title)
	assert.Empty(t, f.Template)
}

func TestUnmarshalPageFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "no delimiter", content: "{}\n<h1>x</h1>\n"},
		{name: "not an object", content: "[]\n## TEMPLATE SOURCE: ##\n"},
		{name: "null metadata", content: "null\n## TEMPLATE SOURCE: ##\n"},
		{name: "invalid json", content: "{\"title\": }\n## TEMPLATE SOURCE: ##\n"},
		{name: "wrong field type", content: "{\"title\": 5}\n## TEMPLATE SOURCE: ##\n"},
		{name: "trailing data", content: "{} {}\n## TEMPLATE SOURCE: ##\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalPageFile(tt.content)
			require.Error(t, err)

			var formatErr *FormatError
			assert.True(t, errors.As(err, &formatErr))
		})
	}
}

func TestUnmarshalPageFile_IgnoresUnknownKeys(t *testing.T) {
	f, err := UnmarshalPageFile("{\"title\": \"x\", \"sitemap\": true}\n## TEMPLATE SOURCE: ##\n")
	require.NoError(t, err)
	assert.Equal(t, "x", f.Title)
}

func TestConfigCodec(t *testing.T) {
	cfg, err := DecodeConfig(`{"cache": 12345678901234567890, "headers": {"X-A": "b"}}`)
	require.NoError(t, err)

	encoded, err := EncodeConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, `{"cache":12345678901234567890,"headers":{"X-A":"b"}}`, encoded)

	empty, err := DecodeConfig("")
	require.NoError(t, err)
	assert.Nil(t, empty)

	encoded, err = EncodeConfig(map[string]any{})
	require.NoError(t, err)
	assert.Empty(t, encoded)
}
