// Package content holds the opaque units the shell hosts in its content region. They are
// rendered from in-memory mock data; the shell imposes nothing on them beyond being a node.
package content

import (
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"
)

// Provider renders the content for a path. ok is false when the provider has nothing for it.
type Provider interface {
	Render(path string) (node g.Node, ok bool)
}

// Chain tries providers in order and returns the first match.
type Chain []Provider

func (c Chain) Render(path string) (g.Node, bool) {
	for _, p := range c {
		if n, ok := p.Render(path); ok {
			return n, true
		}
	}
	return nil, false
}

// NotFound is the placeholder for paths no provider serves.
func NotFound(path string) g.Node {
	return html.Div(
		html.Class("card not-found"),
		html.H2(g.Text("Page not found")),
		html.P(g.Textf("Nothing is published at %s yet.", path)),
		html.A(html.Href("/"), g.Text("Back to the firm overview")),
	)
}
