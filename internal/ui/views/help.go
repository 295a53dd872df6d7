package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer renders markdown for the help overlay and recreates the
// renderer when the wrap width changes.
type MarkdownRenderer struct {
	width    int
	renderer *glamour.TermRenderer
}

// Render converts markdown into ANSI-styled terminal text. Rendering failures
// fall back to the raw markdown.
func (r *MarkdownRenderer) Render(markdown string, width int) string {
	markdown = strings.TrimSpace(markdown)
	if markdown == "" {
		return ""
	}

	wrapWidth := width
	if wrapWidth < 24 {
		wrapWidth = 24
	}

	if r.renderer == nil || r.width != wrapWidth {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(wrapWidth),
		)
		if err != nil {
			return markdown
		}
		r.renderer = renderer
		r.width = wrapWidth
	}

	rendered, err := r.renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return strings.TrimRight(rendered, "\n")
}

// HelpSection is one titled group of key bindings in the help overlay
type HelpSection struct {
	Title    string
	Bindings []key.Binding
}

// HelpMarkdown lays the sections out as markdown tables
func HelpMarkdown(sections []HelpSection) string {
	var b strings.Builder
	b.WriteString("# taskflow keys\n")
	for _, s := range sections {
		fmt.Fprintf(&b, "\n## %s\n\n| Key | Action |\n| --- | --- |\n", s.Title)
		for _, binding := range s.Bindings {
			h := binding.Help()
			fmt.Fprintf(&b, "| `%s` | %s |\n", h.Key, h.Desc)
		}
	}
	return b.String()
}

// Help renders the key reference through r
func Help(r *MarkdownRenderer, sections []HelpSection, width int) string {
	return r.Render(HelpMarkdown(sections), width)
}
