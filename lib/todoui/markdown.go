// Copyright 2026 The Taskdesk Authors
// SPDX-License-Identifier: Apache-2.0

package todoui

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// markdownParserInstance is initialized once and reused. The goldmark
// Parser is safe to share; actual parsing creates per-call state.
var (
	markdownParserInstance goldmark.Markdown
	markdownParserOnce     sync.Once
)

func getMarkdownParser() goldmark.Markdown {
	markdownParserOnce.Do(func() {
		markdownParserInstance = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		)
	})
	return markdownParserInstance
}

// renderTerminalMarkdown parses markdown and renders it as styled
// terminal output. Soft line breaks become spaces so hard-wrapped
// source text reflows at any terminal width; code blocks, lists, and
// blockquotes keep their structure.
func renderTerminalMarkdown(input string, theme Theme, width int) string {
	if input == "" {
		return ""
	}
	source := []byte(input)
	document := getMarkdownParser().Parser().Parse(text.NewReader(source))

	// Force ANSI256: this output is always for a bubbletea program, so
	// skip auto-detection (which yields uncolored output without a
	// TTY, including under tests).
	lipRenderer := lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256))
	lipRenderer.SetColorProfile(termenv.ANSI256)

	renderer := &markdownRenderer{
		source:      source,
		theme:       theme,
		width:       width,
		lipRenderer: lipRenderer,
	}
	ast.Walk(document, renderer.walk)

	return strings.TrimRight(renderer.output.String(), "\n")
}

// markdownRenderer walks a goldmark AST and produces styled terminal
// text. A direct ast.Walk fits better than goldmark's renderer
// interface: paragraph inline content accumulates in a buffer and gets
// word-wrapped as a unit when the paragraph closes.
type markdownRenderer struct {
	source []byte
	theme  Theme
	width  int

	output strings.Builder

	// Inline accumulator, flushed with word-wrap when the containing
	// block closes.
	inline strings.Builder

	// Prefix stack for nested containers (blockquotes, lists).
	prefixStack     []prefixLevel
	linePrefix      string
	linePrefixWidth int

	// Pending bullet: replaces linePrefix for the very next emitted
	// line, then clears.
	pendingBullet string

	// Inline style counters. Counters rather than booleans so nested
	// emphasis unwinds correctly.
	boldCount          int
	italicCount        int
	strikethroughCount int

	listStack []listState

	lipRenderer *lipgloss.Renderer

	// Trailing newlines at the end of output, for blank line
	// management.
	trailingNewlines int
}

type prefixLevel struct {
	text  string
	width int
}

type listState struct {
	ordered bool
	counter int
	tight   bool
}

func (r *markdownRenderer) newStyle() lipgloss.Style {
	return r.lipRenderer.NewStyle()
}

// currentWidth is the content width left after nesting prefixes,
// clamped so degenerate terminals still wrap somewhere.
func (r *markdownRenderer) currentWidth() int {
	width := r.width - r.linePrefixWidth
	if width < 10 {
		width = 10
	}
	return width
}

func (r *markdownRenderer) pushPrefix(text string, visibleWidth int) {
	r.prefixStack = append(r.prefixStack, prefixLevel{text: text, width: visibleWidth})
	r.linePrefix += text
	r.linePrefixWidth += visibleWidth
}

func (r *markdownRenderer) popPrefix() {
	if len(r.prefixStack) == 0 {
		return
	}
	top := r.prefixStack[len(r.prefixStack)-1]
	r.prefixStack = r.prefixStack[:len(r.prefixStack)-1]
	r.linePrefix = r.linePrefix[:len(r.linePrefix)-len(top.text)]
	r.linePrefixWidth -= top.width
}

func (r *markdownRenderer) inTightList() bool {
	if len(r.listStack) == 0 {
		return false
	}
	return r.listStack[len(r.listStack)-1].tight
}

func (r *markdownRenderer) writeOutput(s string) {
	if s == "" {
		return
	}
	r.output.WriteString(s)

	newTrailing := 0
	entirelyNewlines := true
	for index := len(s) - 1; index >= 0; index-- {
		if s[index] == '\n' {
			newTrailing++
		} else {
			entirelyNewlines = false
			break
		}
	}
	if entirelyNewlines {
		r.trailingNewlines += newTrailing
	} else {
		r.trailingNewlines = newTrailing
	}
}

func (r *markdownRenderer) ensureNewline() {
	if r.trailingNewlines < 1 {
		r.writeOutput("\n")
	}
}

func (r *markdownRenderer) ensureBlankLine() {
	for r.trailingNewlines < 2 {
		r.writeOutput("\n")
	}
}

func (r *markdownRenderer) consumeLinePrefix() string {
	if r.pendingBullet != "" {
		bullet := r.pendingBullet
		r.pendingBullet = ""
		return bullet
	}
	return r.linePrefix
}

// applyPrefixes prepends the line prefix to each line: the first line
// takes the pending bullet when set, the rest the regular prefix.
func (r *markdownRenderer) applyPrefixes(content string) string {
	lines := strings.Split(content, "\n")
	var result strings.Builder
	for index, line := range lines {
		if index == 0 {
			result.WriteString(r.consumeLinePrefix())
		} else {
			result.WriteString(r.linePrefix)
		}
		result.WriteString(line)
		if index < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

func (r *markdownRenderer) flushInline() string {
	content := r.inline.String()
	r.inline.Reset()
	if content == "" {
		return ""
	}
	content = ansi.Wrap(content, r.currentWidth(), " ,.;-+|")
	return r.applyPrefixes(content)
}

func (r *markdownRenderer) styledText(content string) string {
	style := r.newStyle().Foreground(r.theme.NormalText)
	if r.boldCount > 0 {
		style = style.Bold(true)
	}
	if r.italicCount > 0 {
		style = style.Italic(true)
	}
	if r.strikethroughCount > 0 {
		style = style.Strikethrough(true)
	}
	return style.Render(content)
}

// highlightCode syntax-highlights code via Chroma, falling back to
// FaintText-styled plain text for unknown languages.
func (r *markdownRenderer) highlightCode(code, language string) string {
	if language == "" {
		return r.newStyle().Foreground(r.theme.FaintText).Render(code)
	}
	var buffer strings.Builder
	if err := quick.Highlight(&buffer, code, language, "terminal256", "monokai"); err != nil {
		return r.newStyle().Foreground(r.theme.FaintText).Render(code)
	}
	return buffer.String()
}

func (r *markdownRenderer) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node.Kind() {

	case ast.KindDocument:

	case ast.KindParagraph, ast.KindTextBlock:
		if entering {
			r.inline.Reset()
		} else {
			flushed := r.flushInline()
			if flushed != "" {
				r.writeOutput(flushed)
				r.ensureNewline()
				if !r.inTightList() {
					r.ensureBlankLine()
				}
			}
		}

	case ast.KindHeading:
		if entering {
			r.inline.Reset()
		} else {
			r.leaveHeading(node.(*ast.Heading))
		}

	case ast.KindFencedCodeBlock:
		if entering {
			r.renderFencedCodeBlock(node.(*ast.FencedCodeBlock))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindBlockquote:
		if entering {
			r.pushPrefix("│ ", 2)
		} else {
			r.popPrefix()
			r.ensureBlankLine()
		}

	case ast.KindList:
		if entering {
			list := node.(*ast.List)
			startNumber := 0
			if list.IsOrdered() {
				startNumber = list.Start
			}
			r.listStack = append(r.listStack, listState{
				ordered: list.IsOrdered(),
				counter: startNumber,
				tight:   list.IsTight,
			})
		} else {
			if len(r.listStack) > 0 {
				r.listStack = r.listStack[:len(r.listStack)-1]
			}
			if !r.inTightList() {
				r.ensureBlankLine()
			}
		}

	case ast.KindListItem:
		if entering {
			r.enterListItem()
		} else {
			r.popPrefix()
			if r.inTightList() {
				r.ensureNewline()
			} else {
				r.ensureBlankLine()
			}
		}

	case ast.KindThematicBreak:
		if entering {
			rule := r.newStyle().Foreground(r.theme.BorderColor).
				Render(strings.Repeat("─", r.currentWidth()))
			r.ensureBlankLine()
			r.writeOutput(r.applyPrefixes(rule))
			r.ensureNewline()
			r.ensureBlankLine()
		}

	case ast.KindText:
		if entering {
			r.handleText(node.(*ast.Text))
		}

	case ast.KindString:
		if entering {
			r.inline.WriteString(r.styledText(string(node.(*ast.String).Value)))
		}

	case ast.KindEmphasis:
		emphasis := node.(*ast.Emphasis)
		delta := 1
		if !entering {
			delta = -1
		}
		if emphasis.Level >= 2 {
			r.boldCount += delta
		} else {
			r.italicCount += delta
		}

	case ast.KindCodeSpan:
		if entering {
			r.renderCodeSpan(node)
			return ast.WalkSkipChildren, nil
		}

	case ast.KindLink:
		if entering {
			r.renderLink(node.(*ast.Link))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindAutoLink:
		if entering {
			url := string(node.(*ast.AutoLink).URL(r.source))
			r.inline.WriteString(r.newStyle().Foreground(r.theme.FaintText).Render(url))
		}

	case extast.KindStrikethrough:
		if entering {
			r.strikethroughCount++
		} else {
			r.strikethroughCount--
		}
	}

	return ast.WalkContinue, nil
}

func (r *markdownRenderer) leaveHeading(heading *ast.Heading) {
	// Strip accumulated inline styling; the heading style replaces it.
	content := ansi.Strip(r.inline.String())
	r.inline.Reset()
	if content == "" {
		return
	}

	style := r.newStyle().Bold(true)
	if heading.Level <= 2 {
		style = style.Foreground(r.theme.HeaderForeground)
	} else {
		style = style.Foreground(r.theme.NormalText)
	}

	wrapped := ansi.Wrap(style.Render(content), r.currentWidth(), " ,.;-+|")
	r.ensureBlankLine()
	r.writeOutput(r.applyPrefixes(wrapped))
	r.ensureNewline()
	r.ensureBlankLine()
}

func (r *markdownRenderer) renderFencedCodeBlock(node *ast.FencedCodeBlock) {
	language := string(node.Language(r.source))
	var code strings.Builder
	lines := node.Lines()
	for index := 0; index < lines.Len(); index++ {
		segment := lines.At(index)
		code.Write(segment.Value(r.source))
	}

	highlighted := r.highlightCode(code.String(), language)
	r.ensureBlankLine()
	for _, line := range strings.Split(strings.TrimRight(highlighted, "\n"), "\n") {
		r.writeOutput(r.consumeLinePrefix() + line)
		r.ensureNewline()
	}
	r.ensureBlankLine()
}

func (r *markdownRenderer) enterListItem() {
	if len(r.listStack) == 0 {
		return
	}
	top := &r.listStack[len(r.listStack)-1]

	var bullet string
	if top.ordered {
		bullet = fmt.Sprintf("%d. ", top.counter)
		top.counter++
	} else {
		bullet = "- "
	}

	// ASCII bullets, so byte length is visual width.
	continuation := strings.Repeat(" ", len(bullet))
	r.pendingBullet = r.linePrefix + bullet
	r.pushPrefix(continuation, len(bullet))
}

func (r *markdownRenderer) handleText(node *ast.Text) {
	value := string(node.Segment.Value(r.source))
	r.inline.WriteString(r.styledText(value))

	if node.SoftLineBreak() {
		// Soft breaks become spaces so hard-wrapped source reflows.
		r.inline.WriteString(" ")
	}
	if node.HardLineBreak() {
		r.inline.WriteString("\n")
	}
}

func (r *markdownRenderer) renderCodeSpan(node ast.Node) {
	var code strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch typed := child.(type) {
		case *ast.Text:
			code.Write(typed.Segment.Value(r.source))
		case *ast.String:
			code.Write(typed.Value)
		}
	}
	r.inline.WriteString(r.newStyle().Foreground(r.theme.FaintText).Render(code.String()))
}

func (r *markdownRenderer) renderLink(node *ast.Link) {
	// Collect the link text with inline styling intact.
	saved := r.inline.String()
	r.inline.Reset()
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		ast.Walk(child, r.walk)
	}
	displayText := r.inline.String()
	r.inline.Reset()
	r.inline.WriteString(saved)

	r.inline.WriteString(displayText)
	if url := string(node.Destination); url != "" {
		r.inline.WriteString(" " + r.newStyle().Foreground(r.theme.FaintText).Render("("+url+")"))
	}
}
