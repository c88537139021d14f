// Package subscription defines feed subscription models.
package subscription

// Site is one configured feed. Title labels notification subjects.
type Site struct {
	Title string
	URL   string
}
