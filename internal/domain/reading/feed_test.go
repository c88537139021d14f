package reading

import "testing"

func TestNewArticle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		link  string
		want  Article
		ok    bool
	}{
		{name: "complete", title: "Hello", link: "https://example.com/a", want: Article{Title: "Hello", URL: "https://example.com/a"}, ok: true},
		{name: "trimmed", title: "  Hello\n", link: "\thttps://example.com/a ", want: Article{Title: "Hello", URL: "https://example.com/a"}, ok: true},
		{name: "missing title", title: "", link: "https://example.com/a", want: Article{URL: "https://example.com/a"}, ok: false},
		{name: "blank title", title: " \t", link: "https://example.com/a", want: Article{URL: "https://example.com/a"}, ok: false},
		{name: "missing link", title: "Hello", link: "", want: Article{Title: "Hello"}, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NewArticle(tt.title, tt.link)
			if ok != tt.ok {
				t.Fatalf("NewArticle(%q, %q) ok = %v, want %v", tt.title, tt.link, ok, tt.ok)
			}
			if got != tt.want {
				t.Fatalf("NewArticle(%q, %q) = %#v, want %#v", tt.title, tt.link, got, tt.want)
			}
		})
	}
}
