package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/tesso57/things-rss/internal/domain/reading"
	"github.com/tesso57/things-rss/internal/domain/subscription"
)

// DefaultMaxMails caps the notifications sent by one run.
const DefaultMaxMails = 100

// FeedSource abstracts feed fetching. Returned articles are complete and in
// feed order.
type FeedSource interface {
	Fetch(ctx context.Context, url string) ([]reading.Article, error)
}

// SeenStore abstracts the persistent set of already-notified article URLs.
type SeenStore interface {
	Exists(ctx context.Context, url string) (bool, error)
	Record(ctx context.Context, siteTitle, url string) error
}

// Notifier delivers one message per call.
type Notifier interface {
	Send(ctx context.Context, site subscription.Site, article reading.Article, recipient, sender string) error
}

// Reporter receives progress events for status output.
type Reporter interface {
	Checking(site subscription.Site)
	Sending(site subscription.Site, article reading.Article)
}

// Result summarises one dispatch run.
type Result struct {
	Sites      int
	Checked    int
	Skipped    int
	Sent       int
	CapReached bool
}

// DispatchService polls sites, filters seen articles and sends notifications.
type DispatchService struct {
	Source    FeedSource
	Store     SeenStore
	Notifier  Notifier
	Reporter  Reporter
	Logger    *slog.Logger
	Recipient string
	Sender    string
	MaxMails  int
}

// NewDispatchService constructs a DispatchService with the default cap.
func NewDispatchService(source FeedSource, store SeenStore, notifier Notifier, recipient, sender string) DispatchService {
	return DispatchService{
		Source:    source,
		Store:     store,
		Notifier:  notifier,
		Recipient: recipient,
		Sender:    sender,
		MaxMails:  DefaultMaxMails,
	}
}

// Run processes sites in order and the articles of each site in feed order.
//
// Reaching the cap ends the run successfully. Any fetch, store or notify
// failure ends it with a typed error; nothing is retried. A URL is recorded
// only after its notification was sent, so a crash between the two resends
// that article on the next run.
func (s DispatchService) Run(ctx context.Context, sites []subscription.Site) (Result, error) {
	var res Result
	limit := s.maxMails()
	log := s.logger()

	for _, site := range sites {
		if res.Sent >= limit {
			res.CapReached = true
			break
		}
		res.Sites++
		s.reportChecking(site)

		articles, err := s.Source.Fetch(ctx, site.URL)
		if err != nil {
			return res, asFetchError(site.URL, err)
		}

		if err := s.dispatchSite(ctx, site, articles, limit, &res); err != nil {
			return res, err
		}
		if res.CapReached {
			break
		}
	}

	log.Debug("[usecase.Run]: dispatch finished",
		"sites", res.Sites, "checked", res.Checked, "skipped", res.Skipped,
		"sent", res.Sent, "cap_reached", res.CapReached)
	return res, nil
}

func (s DispatchService) dispatchSite(ctx context.Context, site subscription.Site, articles []reading.Article, limit int, res *Result) error {
	log := s.logger()
	for _, article := range articles {
		if res.Sent >= limit {
			res.CapReached = true
			return nil
		}
		if !article.Valid() {
			continue
		}
		res.Checked++

		seen, err := s.Store.Exists(ctx, article.URL)
		if err != nil {
			return asStoreError("exists", err)
		}
		if seen {
			res.Skipped++
			log.Debug("[usecase.Run]: already notified", "site", site.Title, "url", article.URL)
			continue
		}

		s.reportSending(site, article)
		if err := s.Notifier.Send(ctx, site, article, s.Recipient, s.Sender); err != nil {
			return asNotifyError(Subject(site, article), err)
		}
		res.Sent++

		if err := s.Store.Record(ctx, site.Title, article.URL); err != nil {
			return asStoreError("record", err)
		}
	}
	return nil
}

// Subject formats the notification subject for an article.
func Subject(site subscription.Site, article reading.Article) string {
	return site.Title + ": " + article.Title
}

func (s DispatchService) maxMails() int {
	if s.MaxMails > 0 {
		return s.MaxMails
	}
	return DefaultMaxMails
}

func (s DispatchService) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func (s DispatchService) reportChecking(site subscription.Site) {
	if s.Reporter != nil {
		s.Reporter.Checking(site)
	}
}

func (s DispatchService) reportSending(site subscription.Site, article reading.Article) {
	if s.Reporter != nil {
		s.Reporter.Sending(site, article)
	}
}

func asFetchError(url string, err error) error {
	var fe *FetchError
	if errors.As(err, &fe) {
		return err
	}
	return &FetchError{URL: url, Err: err}
}

func asStoreError(op string, err error) error {
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

func asNotifyError(subject string, err error) error {
	var ne *NotifyError
	if errors.As(err, &ne) {
		return err
	}
	return &NotifyError{Subject: subject, Err: err}
}
