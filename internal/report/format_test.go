package report

import (
	"strings"
	"testing"
)

func TestReport_Format(t *testing.T) {
	rep := &Report{Markdown: "# Comments from Doc\n\n* Line 1 \"x\"\n. * Ann, today: hi\n\n"}

	md, err := rep.Format(FormatMarkdown)
	if err != nil {
		t.Fatalf("Format markdown failed: %v", err)
	}
	if md != rep.Markdown {
		t.Errorf("Expected markdown passthrough, got %q", md)
	}

	if md, _ := rep.Format(""); md != rep.Markdown {
		t.Error("Expected empty format to default to markdown")
	}

	html, err := rep.Format(FormatHTML)
	if err != nil {
		t.Fatalf("Format html failed: %v", err)
	}
	if !strings.Contains(html, "<h1>Comments from Doc</h1>") {
		t.Errorf("Expected heading in html, got %q", html)
	}
	if !strings.Contains(html, "<ul>") {
		t.Errorf("Expected list in html, got %q", html)
	}

	if _, err := rep.Format("pdf"); err == nil {
		t.Error("Expected error for unsupported format")
	}
}
