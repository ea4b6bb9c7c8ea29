package domain

// Hierarchy answers parent/child questions for one batch of URLs.
// It is built once per run instead of querying the store per page.
type Hierarchy struct {
	children map[string]int
}

// NewHierarchy indexes the parent of every URL in urls.
func NewHierarchy(urls []string) *Hierarchy {
	h := &Hierarchy{children: make(map[string]int, len(urls))}
	for _, u := range urls {
		if parent := ParentURL(u); parent != "" {
			h.children[parent]++
		}
	}
	return h
}

// HasChildren reports whether any indexed URL is a direct child of url.
func (h *Hierarchy) HasChildren(url string) bool {
	return h.children[url] > 0
}
