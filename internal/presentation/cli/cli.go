// Package cli wires the command line to the dispatch service.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/alecthomas/kong"
	"github.com/tesso57/things-rss/internal/application/settings"
	"github.com/tesso57/things-rss/internal/application/usecase"
	"github.com/tesso57/things-rss/internal/infrastructure/config"
	"github.com/tesso57/things-rss/internal/infrastructure/feed"
	"github.com/tesso57/things-rss/internal/infrastructure/mail"
	"github.com/tesso57/things-rss/internal/infrastructure/store"
)

// Process exit codes.
const (
	ExitOK     = 0
	ExitNotify = 1
	ExitFatal  = 2
)

// FeedSourceFunc and NotifierFunc are exposed for testing.
// They allow replacing network fetches and mail delivery.
var (
	FeedSourceFunc = func() usecase.FeedSource { return feed.Fetcher{} }
	NotifierFunc   = func(command string) usecase.Notifier {
		return mail.NewSendmail(mail.Config{Command: command})
	}
)

// Run parses args, performs one dispatch run and returns the exit code.
func Run(ctx context.Context, args []string, stderr io.Writer) int {
	var opts settings.Settings
	exitCode := -1
	parser, err := kong.New(&opts,
		kong.Name("things-rss"),
		kong.Description("Mail one notification per new article found in the configured feeds."),
		kong.Writers(stderr, stderr),
		kong.Exit(func(code int) { exitCode = code }),
		kong.UsageOnError(),
	)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitFatal
	}
	_, err = parser.Parse(args)
	if exitCode >= 0 {
		// --help or a kong-level exit
		return exitCode
	}
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitFatal
	}

	logger := newLogger(stderr, opts.Verbose)
	slog.SetDefault(logger)
	_, err = execute(ctx, opts, stderr, logger)
	return report(stderr, err)
}

func execute(ctx context.Context, opts settings.Settings, stderr io.Writer, logger *slog.Logger) (usecase.Result, error) {
	sites, err := config.Load(opts.Config)
	if err != nil {
		return usecase.Result{}, err
	}
	logger.Debug("[cli.execute]: loaded feed list", "path", opts.Config, "sites", len(sites))

	st, err := store.Open(opts.Database)
	if err != nil {
		return usecase.Result{}, err
	}
	defer func() { _ = st.Close() }()

	svc := usecase.NewDispatchService(FeedSourceFunc(), st, NotifierFunc(opts.Sendmail), opts.To, opts.From)
	svc.Reporter = statusReporter{w: stderr, quiet: opts.Quiet}
	svc.Logger = logger
	svc.MaxMails = opts.Limit(usecase.DefaultMaxMails)

	res, err := svc.Run(ctx, sites)
	if res.CapReached {
		logger.Info("[cli.execute]: notification cap reached", "sent", res.Sent)
	}
	return res, err
}

// report prints err and maps it to an exit code.
func report(stderr io.Writer, err error) int {
	if err == nil {
		return ExitOK
	}
	var ne *usecase.NotifyError
	if errors.As(err, &ne) {
		_, _ = fmt.Fprintf(stderr, "Could not send email: %v\n", err)
		return ExitNotify
	}
	_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
	return ExitFatal
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
