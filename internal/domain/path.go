package domain

import (
	"fmt"
	"path"
	"strings"
)

const (
	// IndexFileName holds the page of a URL that has children.
	IndexFileName = "_index_.page"
	// FileExtension is appended to leaf segments that carry no extension of their own.
	FileExtension = ".page"
)

func urlSegments(url string) []string {
	var segments []string
	for _, s := range strings.Split(url, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// URLToPath maps a page URL to its slash-separated path relative to the sync root.
//
//	"/"                   -> "_index_.page"
//	"/a/b/" with children -> "a/b/_index_.page"
//	"/a/b/"               -> "a/b.page"
//	"/robots.txt"         -> "robots.txt"
func URLToPath(url string, hasChildren bool) string {
	segments := urlSegments(url)
	if url == "/" || len(segments) == 0 {
		return IndexFileName
	}
	if hasChildren {
		return path.Join(append(segments, IndexFileName)...)
	}
	last := len(segments) - 1
	if !strings.Contains(segments[last], ".") {
		segments[last] += FileExtension
	}
	return path.Join(segments...)
}

// PathToURL maps a path relative to the sync root back to a page URL.
// Index files are resolved first, so "a/_index_.page" is always "/a/".
func PathToURL(relPath string) string {
	segments := urlSegments(relPath)
	if len(segments) == 0 {
		return "/"
	}
	last := len(segments) - 1
	name := segments[last]
	segments = segments[:last]
	if name == IndexFileName {
		return "/" + joinWithSlash(segments)
	}
	name = strings.TrimSuffix(name, FileExtension)
	segments = append(segments, name)
	if strings.Contains(name, ".") {
		return "/" + strings.Join(segments, "/")
	}
	return "/" + joinWithSlash(segments)
}

func joinWithSlash(segments []string) string {
	if len(segments) == 0 {
		return ""
	}
	return strings.Join(segments, "/") + "/"
}

// IsHiddenName reports whether a file or directory name is hidden from sync.
func IsHiddenName(name string) bool {
	return strings.HasPrefix(name, ".")
}

// ValidateURL checks that url can be represented in the sync directory.
func ValidateURL(url string) error {
	if !strings.HasPrefix(url, "/") {
		return fmt.Errorf("url must start with /: %q", url)
	}
	if strings.Contains(url, "//") {
		return fmt.Errorf("url contains an empty segment: %q", url)
	}
	if strings.ContainsAny(url, " \t\r\n\\") {
		return fmt.Errorf("url contains whitespace or backslash: %q", url)
	}
	for _, s := range urlSegments(url) {
		if s == "." || s == ".." {
			return fmt.Errorf("url contains a relative segment: %q", url)
		}
		if IsHiddenName(s) {
			return fmt.Errorf("url segment %q would be hidden on disk", s)
		}
		if s == IndexFileName {
			return fmt.Errorf("url segment %q is reserved", s)
		}
	}
	return nil
}
