// Package config loads the list of feeds to poll.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tesso57/things-rss/internal/domain/subscription"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the feed list read when no path is given.
const DefaultPath = "feeds.toml"

// ConfigError reports a missing or malformed feed list.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

type feedEntry struct {
	Title string `toml:"title" yaml:"title"`
	URL   string `toml:"url" yaml:"url"`
}

type fileFormat struct {
	Feeds *[]feedEntry `toml:"feeds" yaml:"feeds"`
}

// Load reads the feed list at path. The format follows the extension:
// .yaml/.yml is YAML, anything else is TOML. Sites keep file order.
func Load(path string) ([]subscription.Site, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	var file fileFormat
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = decodeYAML(data, &file)
	default:
		err = toml.Unmarshal(data, &file)
	}
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	if file.Feeds == nil {
		return nil, &ConfigError{Path: path, Err: errors.New("missing feeds list")}
	}

	sites := make([]subscription.Site, 0, len(*file.Feeds))
	for i, entry := range *file.Feeds {
		site := subscription.Site{
			Title: strings.TrimSpace(entry.Title),
			URL:   strings.TrimSpace(entry.URL),
		}
		if site.Title == "" {
			return nil, &ConfigError{Path: path, Err: fmt.Errorf("feed %d: title is empty", i+1)}
		}
		if site.URL == "" {
			return nil, &ConfigError{Path: path, Err: fmt.Errorf("feed %d (%s): url is empty", i+1, site.Title)}
		}
		if strings.ContainsAny(site.URL, " \t\r\n") {
			return nil, &ConfigError{Path: path, Err: fmt.Errorf("feed %d (%s): url contains whitespace", i+1, site.Title)}
		}
		sites = append(sites, site)
	}
	return sites, nil
}

func decodeYAML(data []byte, out *fileFormat) error {
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(out); err != nil {
		if err == io.EOF {
			return nil // empty document, reported as a missing feeds list
		}
		return err
	}
	return nil
}
