package htmlutil

import (
	"testing"

	"golang.org/x/net/html"
)

const doc = `
<html><body>
<table>
<tr><td class="bborder">one</td><td class="bborder + rborder">two</td></tr>
<tr><td class="other">three</td></tr>
</table>
<table><tr><td class="cell">line1<br> line2</td></tr></table>
</body></html>`

func TestFindAll(t *testing.T) {
	root, err := Parse(doc)
	if err != nil {
		t.Fatal(err)
	}

	cells := FindAll(root, func(n *html.Node) bool {
		return n.Data == "td" && HasClass(n, "bborder")
	})
	if len(cells) != 2 {
		t.Fatalf("expected 2 bborder cells, got %d", len(cells))
	}
	if Text(cells[0]) != "one" || Text(cells[1]) != "two" {
		t.Errorf("unexpected cell texts %q, %q", Text(cells[0]), Text(cells[1]))
	}
}

func TestCellText(t *testing.T) {
	root, err := Parse(doc)
	if err != nil {
		t.Fatal(err)
	}

	cell := First(root, func(n *html.Node) bool {
		return n.Data == "td" && HasClass(n, "cell")
	})
	if cell == nil {
		t.Fatal("expected the multiline cell")
	}

	if got := CellText(cell); got != "line1, line2" {
		t.Errorf("expected line break normalized, got %q", got)
	}
}

func TestAttr(t *testing.T) {
	root, err := Parse(`<html><body><table width="100%"></table></body></html>`)
	if err != nil {
		t.Fatal(err)
	}

	table := First(root, func(n *html.Node) bool { return n.Data == "table" })
	if Attr(table, "width") != "100%" {
		t.Errorf("unexpected width %q", Attr(table, "width"))
	}
	if Attr(table, "missing") != "" {
		t.Error("expected empty string for a missing attribute")
	}
}
