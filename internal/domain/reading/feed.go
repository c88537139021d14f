// Package reading defines core reading models.
package reading

import "strings"

// Article is a candidate item produced by a feed fetch. URL is its identity.
type Article struct {
	Title string
	URL   string
}

// NewArticle builds an Article from raw feed fields, trimming whitespace.
// ok is false when either field is empty; such items cannot be
// deduplicated or displayed and must be dropped.
func NewArticle(title, link string) (Article, bool) {
	a := Article{
		Title: strings.TrimSpace(title),
		URL:   strings.TrimSpace(link),
	}
	return a, a.Valid()
}

// Valid reports whether both title and URL are present.
func (a Article) Valid() bool {
	return a.Title != "" && a.URL != ""
}
