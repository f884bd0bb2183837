package styles

import (
	"strings"
	"testing"
)

func TestRenderMarkdown_Empty(t *testing.T) {
	out := RenderMarkdown("   ", 40)
	if !strings.Contains(out, "No content") {
		t.Errorf("expected placeholder, got %q", out)
	}
}

func TestRenderMarkdown_KeepsText(t *testing.T) {
	out := RenderMarkdown("ship the release", 40)
	if !strings.Contains(out, "release") {
		t.Errorf("expected rendered text to contain 'release', got %q", out)
	}
}

func TestRenderMarkdown_CachesRendererPerWidth(t *testing.T) {
	first, err := getRenderer(33)
	if err != nil {
		t.Fatalf("getRenderer failed: %v", err)
	}
	second, err := getRenderer(33)
	if err != nil {
		t.Fatalf("getRenderer failed: %v", err)
	}
	if first != second {
		t.Error("expected cached renderer for the same width")
	}
}

func TestField_ContainsLabelAndValue(t *testing.T) {
	out := Field("Column:", "Doing", false)
	if !strings.Contains(out, "Column:") || !strings.Contains(out, "Doing") {
		t.Errorf("expected label and value, got %q", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Errorf("expected a trailing newline, got %q", out)
	}
}
