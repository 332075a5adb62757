// Package htmlutil wraps golang.org/x/net/html with the small set of
// traversal helpers the report parsers need. The NHL report pages are
// table soup; parsers locate cells by tag and class substring and read
// their flattened text.
package htmlutil

import (
	"strings"

	"golang.org/x/net/html"
)

// Parse parses an HTML document.
func Parse(doc string) (*html.Node, error) {
	return html.Parse(strings.NewReader(doc))
}

// Attr returns the value of the named attribute, or "".
func Attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// HasClass reports whether the node's class attribute contains substr.
func HasClass(n *html.Node, substr string) bool {
	return strings.Contains(Attr(n, "class"), substr)
}

// FindAll walks the tree in document order and returns every element node
// matching pred.
func FindAll(n *html.Node, pred func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && pred(node) {
			out = append(out, node)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

// FindAllTag returns every element with the given tag name.
func FindAllTag(n *html.Node, tag string) []*html.Node {
	return FindAll(n, func(node *html.Node) bool { return node.Data == tag })
}

// First returns the first element matching pred, or nil.
func First(n *html.Node, pred func(*html.Node) bool) *html.Node {
	matches := FindAll(n, pred)
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}

// Text flattens the node's text content. Line breaks become newlines so
// callers can normalize multi-line cells the way the source pages render
// them.
func Text(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		switch {
		case node.Type == html.TextNode:
			sb.WriteString(node.Data)
		case node.Type == html.ElementNode && node.Data == "br":
			sb.WriteString("\n")
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// CellText is Text with the report-page newline normalization applied:
// "\n " becomes ", " and remaining newlines are removed.
func CellText(n *html.Node) string {
	text := Text(n)
	text = strings.ReplaceAll(text, "\n ", ", ")
	text = strings.ReplaceAll(text, "\n", "")
	return text
}
