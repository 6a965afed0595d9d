package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer renders pill and variable descriptions. Renderers are
// cached per wrap width since glamour setup is expensive.
type MarkdownRenderer struct {
	mu        sync.Mutex
	renderers map[int]*glamour.TermRenderer
	style     string
}

// NewMarkdownRenderer creates a renderer. An empty style selects the dark
// glamour style, which matches the dashboard palette.
func NewMarkdownRenderer(style string) *MarkdownRenderer {
	if style == "" {
		style = "dark"
	}
	return &MarkdownRenderer{renderers: make(map[int]*glamour.TermRenderer), style: style}
}

func (r *MarkdownRenderer) get(width int) (*glamour.TermRenderer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if tr, ok := r.renderers[width]; ok {
		return tr, nil
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(r.style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	r.renderers[width] = tr
	return tr, nil
}

// Render renders md wrapped at width. On error the plain text is returned.
func (r *MarkdownRenderer) Render(md string, width int) string {
	if width < 10 {
		width = 10
	}
	tr, err := r.get(width)
	if err != nil {
		return md
	}
	out, err := tr.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}
