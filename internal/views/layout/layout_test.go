package layout

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"pecalc/internal/views/theme"
)

func TestLayoutRendersProvidedContent(t *testing.T) {
	sidebar := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := w.Write([]byte("<aside-content>sidebar</aside-content>"))
		return err
	})
	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := w.Write([]byte("<main-content>content</main-content>"))
		return err
	})

	var buf bytes.Buffer
	err := Layout("Workspace", sidebar, content, true, theme.Resolve(theme.DefaultKey)).Render(context.Background(), &buf)
	if err != nil {
		t.Fatalf("render layout: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<title>Workspace</title>") {
		t.Fatalf("expected document title to be rendered: %s", out)
	}
	if !strings.Contains(out, "sidebar") || !strings.Contains(out, "content") {
		t.Fatalf("expected sidebar and content sections in output: %s", out)
	}
}

func TestLayoutSkipsSidebarWhenDisabled(t *testing.T) {
	sidebar := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := w.Write([]byte("sidebar-marker"))
		return err
	})
	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := w.Write([]byte("body-marker"))
		return err
	})

	var buf bytes.Buffer
	err := Layout("Report", sidebar, content, false, theme.Resolve(theme.DefaultKey)).Render(context.Background(), &buf)
	if err != nil {
		t.Fatalf("render layout: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "sidebar-marker") {
		t.Fatalf("expected sidebar to be skipped: %s", out)
	}
	if !strings.Contains(out, "body-marker") {
		t.Fatalf("expected content to be rendered: %s", out)
	}
}

func TestLayoutEscapesTitle(t *testing.T) {
	var buf bytes.Buffer
	err := Layout("<script>alert(1)</script>", nil, nil, false, theme.Resolve(theme.DefaultKey)).Render(context.Background(), &buf)
	if err != nil {
		t.Fatalf("render layout: %v", err)
	}
	if strings.Contains(buf.String(), "<script>alert(1)</script>") {
		t.Fatal("expected title to be HTML escaped")
	}
}

func TestBodyWrapperClassReflectsSidebarState(t *testing.T) {
	if bodyWrapperClass(true) == bodyWrapperClass(false) {
		t.Fatal("expected different body wrapper class depending on sidebar state")
	}
	if mainClass(true) == mainClass(false) {
		t.Fatal("expected different main class depending on sidebar state")
	}
}
