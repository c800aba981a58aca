package render

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
)

type policy int

const (
	keep policy = iota
	elide
	unwrap
)

// policies maps node kinds to what the restriction pass does with them.
// Kinds missing from the table are kept.
var policies = map[ast.NodeKind]policy{
	ast.KindImage:           elide,
	ast.KindCodeBlock:       elide,
	ast.KindFencedCodeBlock: elide,
	east.KindTable:          elide,
	ast.KindHTMLBlock:       elide,
	ast.KindRawHTML:         elide,
	ast.KindThematicBreak:   elide,
	ast.KindBlockquote:      unwrap,
}

// prunable kinds are removed when the pass leaves them without content.
// Inline wrappers are listed so that an image inside a link or emphasis
// does not leave an empty wrapper, and with it an empty block, behind.
var prunable = map[ast.NodeKind]bool{
	ast.KindParagraph:      true,
	ast.KindTextBlock:      true,
	ast.KindHeading:        true,
	ast.KindListItem:       true,
	ast.KindList:           true,
	ast.KindLink:           true,
	ast.KindEmphasis:       true,
	east.KindStrikethrough: true,
}

// restrict rewrites the children of parent in place so that only
// preview-safe nodes remain. Pruning runs bottom-up.
func restrict(parent ast.Node, source []byte) {
	for child := parent.FirstChild(); child != nil; {
		next := child.NextSibling()
		switch policies[child.Kind()] {
		case elide:
			parent.RemoveChild(parent, child)
		case unwrap:
			restrict(child, source)
			for gc := child.FirstChild(); gc != nil; {
				gcNext := gc.NextSibling()
				parent.InsertBefore(parent, child, gc)
				gc = gcNext
			}
			parent.RemoveChild(parent, child)
		default:
			restrict(child, source)
			if prunable[child.Kind()] && isBlank(child, source) {
				parent.RemoveChild(parent, child)
			}
		}
		child = next
	}
}

// isBlank reports whether n has no children other than whitespace text.
func isBlank(n ast.Node, source []byte) bool {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		t, ok := c.(*ast.Text)
		if !ok {
			return false
		}
		if len(bytes.TrimSpace(t.Segment.Value(source))) > 0 {
			return false
		}
	}
	return true
}
