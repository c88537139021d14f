// Package settings defines application-level configuration data.
package settings

// Settings represents one invocation's configuration, parsed from flags.
type Settings struct {
	Quiet    bool   `kong:"short='q',help='Suppress status lines'"`
	To       string `kong:"required,placeholder='ADDRESS',help='Notification recipient'"`
	From     string `kong:"required,placeholder='ADDRESS',help='Notification sender'"`
	Config   string `kong:"short='c',type='path',default='feeds.toml',help='Feed list file (TOML or YAML)'"`
	Database string `kong:"type='path',default='things-rss.sqlite3',help='Seen-article database file'"`
	Sendmail string `kong:"default='/usr/sbin/sendmail',help='Local mail submission command'"`
	MaxMails int    `kong:"default='100',help='Maximum notifications per run'"`
	Verbose  bool   `kong:"short='v',help='Print debug diagnostics'"`
}

// Limit returns the notification cap, falling back to fallback when unset.
func (s Settings) Limit(fallback int) int {
	if s.MaxMails > 0 {
		return s.MaxMails
	}
	return fallback
}
