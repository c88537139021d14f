// Package feed provides functionality to fetch and parse RSS/Atom feeds.
package feed

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mmcdole/gofeed"
	"github.com/tesso57/things-rss/internal/application/usecase"
	"github.com/tesso57/things-rss/internal/domain/reading"
)

const feedAcceptHeader = "application/atom+xml, application/rss+xml, application/feed+json, application/xml;q=0.9, text/xml;q=0.8, */*;q=0.5"

// UserAgent is sent with every feed request.
const UserAgent = "things-rss/1.0"

type acceptTransport struct {
	base http.RoundTripper
}

func (t acceptTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	clone := req.Clone(req.Context())
	if clone.Header.Get("Accept") == "" {
		clone.Header.Set("Accept", feedAcceptHeader)
	}
	return base.RoundTrip(clone)
}

// ParserFunc is exposed for testing.
// It allows mocking the feed parsing logic.
var ParserFunc = defaultParser

func defaultParser(ctx context.Context, url string) (*gofeed.Feed, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = UserAgent
	fp.Client = &http.Client{Transport: acceptTransport{base: http.DefaultTransport}}
	return fp.ParseURLWithContext(url, ctx)
}

// Fetch parses the feed at url and returns its complete items in feed order.
// Items without a title or a link are dropped. Failures are *usecase.FetchError.
func Fetch(ctx context.Context, url string) ([]reading.Article, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, &usecase.FetchError{URL: url, Err: errors.New("feed url is empty")}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	parsed, err := ParserFunc(ctx, url)
	if err != nil {
		return nil, &usecase.FetchError{URL: url, Err: err}
	}
	if parsed == nil {
		return nil, &usecase.FetchError{URL: url, Err: errors.New("empty feed document")}
	}

	articles := make([]reading.Article, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		article, ok := reading.NewArticle(item.Title, item.Link)
		if !ok {
			slog.Debug("[feed.Fetch]: dropping incomplete item", "feed", url, "title", item.Title, "link", item.Link)
			continue
		}
		articles = append(articles, article)
	}
	return articles, nil
}

// Fetcher implements the usecase.FeedSource interface.
type Fetcher struct{}

// Fetch fetches a single feed.
func (Fetcher) Fetch(ctx context.Context, url string) ([]reading.Article, error) {
	return Fetch(ctx, url)
}
