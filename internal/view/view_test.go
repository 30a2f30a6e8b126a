package view

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestTemplatesParseAllPages(t *testing.T) {
	tmpl, err := Templates()
	if err != nil {
		t.Fatalf("parse templates: %v", err)
	}

	for _, name := range []string{
		"home.html", "user_list.html", "user_new.html", "user_detail.html", "user_edit.html",
		"post_new.html", "post_detail.html", "post_edit.html",
		"tag_list.html", "tag_detail.html", "tag_new.html", "tag_edit.html",
		"not_found.html", "error.html",
	} {
		if tmpl.Lookup(name) == nil {
			t.Fatalf("expected template %s to be defined", name)
		}
	}
}

func TestMarkdownSanitizesOutput(t *testing.T) {
	got := string(Markdown("**bold**\n\n<script>alert(1)</script>"))

	if !strings.Contains(got, "<strong>bold</strong>") {
		t.Fatalf("expected markdown to be rendered, got %s", got)
	}
	if strings.Contains(got, "<script>") {
		t.Fatalf("expected script tag to be stripped, got %s", got)
	}
}

func TestFormatTime(t *testing.T) {
	if FormatTime(time.Time{}) != "" {
		t.Fatal("expected zero time to format as empty string")
	}
	if FormatTime(time.Now()) == "" {
		t.Fatal("expected non-empty formatted time")
	}
}

func TestNotFoundTemplateRenders(t *testing.T) {
	tmpl, err := Templates()
	if err != nil {
		t.Fatalf("parse templates: %v", err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "not_found.html", map[string]any{"title": "Not Found"}); err != nil {
		t.Fatalf("execute template: %v", err)
	}
	if !strings.Contains(buf.String(), "Not Found") {
		t.Fatalf("unexpected body: %s", buf.String())
	}
}
