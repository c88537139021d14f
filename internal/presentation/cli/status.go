package cli

import (
	"fmt"
	"io"

	"github.com/tesso57/things-rss/internal/domain/reading"
	"github.com/tesso57/things-rss/internal/domain/subscription"
)

// statusReporter prints progress lines unless quiet is set.
type statusReporter struct {
	w     io.Writer
	quiet bool
}

func (r statusReporter) Checking(site subscription.Site) {
	if r.quiet {
		return
	}
	_, _ = fmt.Fprintf(r.w, "Checking %s...\n", site.Title)
}

func (r statusReporter) Sending(site subscription.Site, article reading.Article) {
	if r.quiet {
		return
	}
	_, _ = fmt.Fprintf(r.w, "%s: %s\n", site.Title, article.Title)
}
