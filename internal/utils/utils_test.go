package utils

import (
	"strings"
	"testing"
)

func TestRenderMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		contains []string
		excludes []string
	}{
		{
			name:     "emphasis",
			source:   "hello **world**",
			contains: []string{"<strong>world</strong>"},
		},
		{
			name:     "script is dropped",
			source:   "<script>alert(1)</script>text",
			excludes: []string{"<script>"},
		},
		{
			name:     "images are lazy",
			source:   "![pic](https://example.com/a.png)",
			contains: []string{`loading="lazy"`, `referrerpolicy="no-referrer"`, `class="img-fluid"`},
		},
		{
			name:     "headings are demoted",
			source:   "# Title",
			contains: []string{"<h3>Title</h3>"},
			excludes: []string{"<h1>"},
		},
		{
			name:     "external links open in new tab",
			source:   "[site](https://example.com)",
			contains: []string{`target="_blank"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(RenderMarkdown(tt.source))
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("RenderMarkdown(%q) = %q, want it to contain %q", tt.source, got, want)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("RenderMarkdown(%q) = %q, must not contain %q", tt.source, got, unwanted)
				}
			}
		})
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		in string
		id uint
		ok bool
	}{
		{"42", 42, true},
		{"0", 0, false},
		{"-1", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		id, ok := ParseID(tt.in)
		if id != tt.id || ok != tt.ok {
			t.Errorf("ParseID(%q) = %d, %v; want %d, %v", tt.in, id, ok, tt.id, tt.ok)
		}
	}
	if got := FormatID(42); got != "42" {
		t.Errorf("FormatID(42) = %q", got)
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if !CheckPasswordHash("s3cret-pass", hash) {
		t.Error("expected password to match its hash")
	}
	if CheckPasswordHash("other", hash) {
		t.Error("expected other password to be rejected")
	}
}

func TestRandomString(t *testing.T) {
	s := RandomString(12)
	if len(s) != 12 {
		t.Fatalf("expected 12 characters, got %d", len(s))
	}
	if strings.Trim(s, letterBytes) != "" {
		t.Errorf("unexpected characters in %q", s)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("Тестовый пост", 8); got != "Тестовый…" {
		t.Errorf("Truncate() = %q", got)
	}
	if got := Truncate("short", 8); got != "short" {
		t.Errorf("Truncate() = %q", got)
	}
}
