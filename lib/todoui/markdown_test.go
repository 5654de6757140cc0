// Copyright 2026 The Taskdesk Authors
// SPDX-License-Identifier: Apache-2.0

package todoui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

// plain renders markdown and strips the ANSI styling, leaving only
// layout for assertions.
func plain(t *testing.T, input string, width int) string {
	t.Helper()
	return ansi.Strip(renderTerminalMarkdown(input, DefaultTheme, width))
}

func TestMarkdown_Empty(t *testing.T) {
	if out := renderTerminalMarkdown("", DefaultTheme, 80); out != "" {
		t.Errorf("empty input rendered %q", out)
	}
}

func TestMarkdown_SoftBreaksReflow(t *testing.T) {
	// Hard-wrapped source should reflow into one line at a wide width.
	out := plain(t, "alpha beta\ngamma delta", 200)
	if strings.Contains(out, "\n") {
		t.Errorf("soft break survived reflow:\n%q", out)
	}
	if !strings.Contains(out, "alpha beta gamma delta") {
		t.Errorf("text mangled: %q", out)
	}
}

func TestMarkdown_WrapsAtWidth(t *testing.T) {
	out := plain(t, strings.Repeat("word ", 30), 40)
	for _, line := range strings.Split(out, "\n") {
		if len(line) > 40 {
			t.Errorf("line exceeds width: %q", line)
		}
	}
}

func TestMarkdown_Headings(t *testing.T) {
	out := plain(t, "# Top\n\nbody text", 80)
	if !strings.Contains(out, "Top") || !strings.Contains(out, "body text") {
		t.Errorf("output = %q", out)
	}
}

func TestMarkdown_UnorderedList(t *testing.T) {
	out := plain(t, "- first\n- second", 80)
	if !strings.Contains(out, "- first") || !strings.Contains(out, "- second") {
		t.Errorf("bullets missing:\n%s", out)
	}
}

func TestMarkdown_OrderedListNumbering(t *testing.T) {
	out := plain(t, "1. one\n2. two\n3. three", 80)
	for _, want := range []string{"1. one", "2. two", "3. three"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestMarkdown_FencedCodePreservesLines(t *testing.T) {
	out := plain(t, "```\nline one\nline two\n```", 80)
	if !strings.Contains(out, "line one\nline two") {
		t.Errorf("code block reflowed:\n%s", out)
	}
}

func TestMarkdown_GoCodeHighlights(t *testing.T) {
	out := renderTerminalMarkdown("```go\nfunc main() {}\n```", DefaultTheme, 80)
	// Chroma output carries ANSI escapes; the stripped text is intact.
	if !strings.Contains(ansi.Strip(out), "func main() {}") {
		t.Errorf("code text mangled: %q", out)
	}
}

func TestMarkdown_Blockquote(t *testing.T) {
	out := plain(t, "> quoted text", 80)
	if !strings.Contains(out, "│ quoted text") {
		t.Errorf("blockquote prefix missing:\n%s", out)
	}
}

func TestMarkdown_LinkShowsDestination(t *testing.T) {
	out := plain(t, "[docs](https://example.com)", 80)
	if !strings.Contains(out, "docs") || !strings.Contains(out, "(https://example.com)") {
		t.Errorf("link = %q", out)
	}
}
