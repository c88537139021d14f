// Command things-rss mails one notification per new article in a set of feeds.
package main

import (
	"context"
	"os"

	"github.com/tesso57/things-rss/internal/presentation/cli"
)

func main() {
	os.Exit(cli.Run(context.Background(), os.Args[1:], os.Stderr))
}
