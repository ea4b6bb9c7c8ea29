package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURLToPath(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		hasChildren bool
		want        string
	}{
		{name: "root", url: "/", want: "_index_.page"},
		{name: "root with children", url: "/", hasChildren: true, want: "_index_.page"},
		{name: "leaf", url: "/a/b/test/", want: "a/b/test.page"},
		{name: "leaf with children", url: "/a/b/test/", hasChildren: true, want: "a/b/test/_index_.page"},
		{name: "dotted leaf", url: "/robots.txt", want: "robots.txt"},
		{name: "dotted leaf without slash", url: "robots.txt", want: "robots.txt"},
		{name: "nested dotted leaf", url: "/static/humans.txt", want: "static/humans.txt"},
		{name: "top level", url: "/about/", want: "about.page"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, URLToPath(tt.url, tt.hasChildren))
		})
	}
}

func TestPathToURL(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "_index_.page", want: "/"},
		{path: "a/b/test.page", want: "/a/b/test/"},
		{path: "a/b/test/_index_.page", want: "/a/b/test/"},
		{path: "robots.txt", want: "/robots.txt"},
		{path: "static/humans.txt", want: "/static/humans.txt"},
		{path: "about", want: "/about/"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, PathToURL(tt.path))
		})
	}
}

func TestPathCodec_RoundTrip(t *testing.T) {
	leaves := []string{"/", "/a/", "/a/b/c/", "/robots.txt", "/a/sitemap.xml"}
	for _, u := range leaves {
		assert.Equal(t, u, PathToURL(URLToPath(u, false)), "leaf %s", u)
	}

	parents := []string{"/", "/a/", "/a/b/c/"}
	for _, u := range parents {
		assert.Equal(t, u, PathToURL(URLToPath(u, true)), "parent %s", u)
	}
}

func TestParentURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{url: "/", want: ""},
		{url: "/a/", want: "/"},
		{url: "/a/b/", want: "/a/"},
		{url: "/a/robots.txt", want: "/a/"},
		{url: "/robots.txt", want: "/"},
		{url: "robots.txt", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, ParentURL(tt.url))
		})
	}
}

func TestHierarchy_HasChildren(t *testing.T) {
	h := NewHierarchy([]string{"/", "/a/", "/a/b/", "/a/robots.txt", "/c/"})

	assert.True(t, h.HasChildren("/"))
	assert.True(t, h.HasChildren("/a/"))
	assert.False(t, h.HasChildren("/a/b/"))
	assert.False(t, h.HasChildren("/c/"))
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{url: "/", wantErr: false},
		{url: "/a/b/", wantErr: false},
		{url: "/robots.txt", wantErr: false},
		{url: "a/", wantErr: true},
		{url: "/a//b/", wantErr: true},
		{url: "/a/../b/", wantErr: true},
		{url: "/.git/", wantErr: true},
		{url: "/a b/", wantErr: true},
		{url: "/_index_.page", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
