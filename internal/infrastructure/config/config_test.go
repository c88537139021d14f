package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoad_TOML(t *testing.T) {
	path := writeConfig(t, "feeds.toml", `
[[feeds]]
title = "Go Blog"
url = "https://go.dev/blog/feed.atom"

[[feeds]]
title = " Hacker News "
url = " https://news.ycombinator.com/rss "
`)

	sites, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(sites) != 2 {
		t.Fatalf("Expected 2 sites, got %d", len(sites))
	}
	if sites[0].Title != "Go Blog" || sites[0].URL != "https://go.dev/blog/feed.atom" {
		t.Errorf("unexpected first site: %#v", sites[0])
	}
	if sites[1].Title != "Hacker News" || sites[1].URL != "https://news.ycombinator.com/rss" {
		t.Errorf("expected trimmed second site, got %#v", sites[1])
	}
}

func TestLoad_YAML(t *testing.T) {
	for _, name := range []string{"feeds.yaml", "feeds.yml"} {
		t.Run(name, func(t *testing.T) {
			path := writeConfig(t, name, `feeds:
  - title: Go Blog
    url: https://go.dev/blog/feed.atom
  - title: Lobsters
    url: https://lobste.rs/rss
`)
			sites, err := Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if len(sites) != 2 || sites[1].Title != "Lobsters" {
				t.Fatalf("unexpected sites: %#v", sites)
			}
		})
	}
}

func TestLoad_EmptyFeedList(t *testing.T) {
	path := writeConfig(t, "feeds.toml", "feeds = []\n")
	sites, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(sites) != 0 {
		t.Fatalf("Expected no sites, got %#v", sites)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "corrupt toml", file: "feeds.toml", content: "[[feeds]\ntitle = "},
		{name: "corrupt yaml", file: "feeds.yaml", content: "feeds: ["},
		{name: "missing feeds toml", file: "feeds.toml", content: "title = \"x\"\n"},
		{name: "empty yaml", file: "feeds.yaml", content: ""},
		{name: "missing title", file: "feeds.toml", content: "[[feeds]]\nurl = \"https://example.com/rss\"\n"},
		{name: "missing url", file: "feeds.yaml", content: "feeds:\n  - title: Example\n"},
		{name: "whitespace in url", file: "feeds.toml", content: "[[feeds]]\ntitle = \"x\"\nurl = \"https://example.com/a b\"\n"},
		{name: "wrong shape", file: "feeds.toml", content: "feeds = \"https://example.com/rss\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.file, tt.content)
			_, err := Load(path)
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("Load error = %v, want ConfigError", err)
			}
			if ce.Path != path {
				t.Fatalf("Path = %q, want %q", ce.Path, path)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")
	_, err := Load(path)
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("Load error = %v, want ConfigError", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Load error = %v, want wrapped ErrNotExist", err)
	}
}

func TestLoad_DefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(DefaultPath, []byte("[[feeds]]\ntitle = \"x\"\nurl = \"https://example.com/rss\"\n"), 0600); err != nil {
		t.Fatal(err)
	}

	sites, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(sites) != 1 {
		t.Fatalf("Expected 1 site, got %d", len(sites))
	}
}
