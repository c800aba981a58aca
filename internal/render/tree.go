package render

import (
	"strings"

	mathjax "github.com/litao91/goldmark-mathjax"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/util"
)

// Kind tags a Tree node with its semantic role.
type Kind string

const (
	KindContainer  Kind = "container"
	KindHeading    Kind = "heading"
	KindParagraph  Kind = "paragraph"
	KindList       Kind = "list"
	KindListItem   Kind = "list-item"
	KindText       Kind = "text"
	KindInlineCode Kind = "inline-code"
	KindMath       Kind = "math"
)

// Node is one element of the restricted visual tree.
type Node struct {
	Kind Kind `json:"kind"`

	// Class is set on the container only.
	Class string `json:"class,omitempty"`

	// Text holds the content of text, inline-code and math nodes.
	Text string `json:"text,omitempty"`

	// Ordered and Start describe list nodes.
	Ordered bool `json:"ordered,omitempty"`
	Start   int  `json:"start,omitempty"`

	// Display marks block-level math.
	Display bool `json:"display,omitempty"`

	Children []*Node `json:"children,omitempty"`
}

// IsBlock reports whether the node renders as a styled block.
func (n *Node) IsBlock() bool {
	switch n.Kind {
	case KindHeading, KindParagraph, KindList:
		return true
	case KindMath:
		return n.Display
	}
	return false
}

// PlainText returns the concatenated text content of n and its descendants.
func (n *Node) PlainText() string {
	var sb strings.Builder
	n.plainText(&sb)
	return sb.String()
}

func (n *Node) plainText(sb *strings.Builder) {
	sb.WriteString(n.Text)
	for i, c := range n.Children {
		if n.Kind == KindList && i > 0 {
			sb.WriteByte('\n')
		}
		c.plainText(sb)
	}
}

// buildTree converts a restricted document into a Tree rooted at a container.
func buildTree(doc ast.Node, source []byte, className string) *Node {
	root := &Node{Kind: KindContainer, Class: className}
	for c := doc.FirstChild(); c != nil; c = c.NextSibling() {
		if b := buildBlock(c, source); b != nil {
			root.Children = append(root.Children, b)
		}
	}
	return root
}

func buildBlock(n ast.Node, source []byte) *Node {
	switch v := n.(type) {
	case *ast.Heading:
		return &Node{Kind: KindHeading, Children: buildInlines(v, source, nil)}
	case *ast.Paragraph, *ast.TextBlock:
		return &Node{Kind: KindParagraph, Children: buildInlines(v, source, nil)}
	case *ast.List:
		list := &Node{Kind: KindList, Ordered: v.IsOrdered()}
		if v.IsOrdered() {
			list.Start = v.Start
		}
		for item := v.FirstChild(); item != nil; item = item.NextSibling() {
			list.Children = append(list.Children, buildListItem(item, source))
		}
		return list
	case *mathjax.MathBlock:
		return &Node{Kind: KindMath, Display: true, Text: linesText(v, source)}
	}
	return nil
}

// buildListItem flattens the item's paragraphs into inline content; nested
// lists stay nested.
func buildListItem(item ast.Node, source []byte) *Node {
	li := &Node{Kind: KindListItem}
	for c := item.FirstChild(); c != nil; c = c.NextSibling() {
		switch c.(type) {
		case *ast.Paragraph, *ast.TextBlock:
			if len(li.Children) > 0 {
				li.Children = appendText(li.Children, "\n")
			}
			li.Children = buildInlines(c, source, li.Children)
		default:
			if b := buildBlock(c, source); b != nil {
				li.Children = append(li.Children, b)
			}
		}
	}
	return li
}

func buildInlines(parent ast.Node, source []byte, out []*Node) []*Node {
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *ast.Text:
			out = appendText(out, textValue(v, source))
			if v.SoftLineBreak() || v.HardLineBreak() {
				out = appendText(out, "\n")
			}
		case *ast.String:
			out = appendText(out, string(v.Value))
		case *ast.CodeSpan:
			out = append(out, &Node{Kind: KindInlineCode, Text: codeSpanText(v, source)})
		case *mathjax.InlineMath:
			out = append(out, &Node{Kind: KindMath, Text: codeSpanText(v, source)})
		case *ast.AutoLink:
			out = appendText(out, string(v.Label(source)))
		default:
			out = buildInlines(c, source, out)
		}
	}
	return out
}

// textValue returns the literal content of t with backslash escapes and
// character references resolved.
func textValue(t *ast.Text, source []byte) string {
	v := t.Segment.Value(source)
	if t.IsRaw() {
		return string(v)
	}
	v = util.UnescapePunctuations(v)
	v = util.ResolveNumericReferences(v)
	return string(util.ResolveEntityNames(v))
}

// appendText merges s into a trailing text node when there is one.
func appendText(out []*Node, s string) []*Node {
	if s == "" {
		return out
	}
	if n := len(out); n > 0 && out[n-1].Kind == KindText {
		out[n-1].Text += s
		return out
	}
	return append(out, &Node{Kind: KindText, Text: s})
}

// codeSpanText joins the raw text children of a code or math span. Line
// endings inside the span become spaces.
func codeSpanText(n ast.Node, source []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			v := t.Segment.Value(source)
			if len(v) > 0 && v[len(v)-1] == '\n' {
				sb.Write(v[:len(v)-1])
				sb.WriteByte(' ')
				continue
			}
			sb.Write(v)
		}
	}
	return sb.String()
}

func linesText(n ast.Node, source []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		sb.Write(line.Value(source))
	}
	return strings.TrimRight(sb.String(), "\n")
}
