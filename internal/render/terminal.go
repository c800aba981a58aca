package render

import (
	"strconv"
	"strings"
)

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`[`, `\[`,
	`]`, `\]`,
	`<`, `\<`,
	`#`, `\#`,
	`|`, `\|`,
	`~`, `\~`,
	`$`, `\$`,
)

// Markdown re-serializes a restricted tree as plain markdown. Headings come
// out as bold paragraphs, so the output carries no heading levels either.
func (n *Node) Markdown() string {
	var sb strings.Builder
	for i, b := range n.Children {
		if i > 0 {
			sb.WriteString("\n")
		}
		writeBlock(&sb, b, "")
	}
	return sb.String()
}

func writeBlock(sb *strings.Builder, n *Node, indent string) {
	switch n.Kind {
	case KindHeading:
		sb.WriteString(indent + "**")
		writeInlines(sb, n.Children, indent)
		sb.WriteString("**\n")
	case KindParagraph:
		sb.WriteString(indent)
		writeInlines(sb, n.Children, indent)
		sb.WriteString("\n")
	case KindList:
		for i, item := range n.Children {
			marker := "- "
			if n.Ordered {
				marker = strconv.Itoa(n.Start+i) + ". "
			}
			sb.WriteString(indent + marker)
			writeListItem(sb, item, indent+strings.Repeat(" ", len(marker)))
		}
	case KindMath:
		sb.WriteString(indent + "    " + strings.ReplaceAll(n.Text, "\n", "\n"+indent+"    ") + "\n")
	}
}

func writeListItem(sb *strings.Builder, item *Node, indent string) {
	var inline []*Node
	wroteLine := false
	flush := func() {
		writeInlines(sb, inline, indent)
		sb.WriteString("\n")
		inline = nil
		wroteLine = true
	}
	for _, c := range item.Children {
		if c.IsBlock() {
			if len(inline) > 0 || !wroteLine {
				flush()
			}
			writeBlock(sb, c, indent)
			continue
		}
		inline = append(inline, c)
	}
	if len(inline) > 0 || !wroteLine {
		flush()
	}
}

func writeInlines(sb *strings.Builder, nodes []*Node, indent string) {
	for _, c := range nodes {
		switch c.Kind {
		case KindText:
			sb.WriteString(strings.ReplaceAll(markdownEscaper.Replace(c.Text), "\n", "\n"+indent))
		case KindInlineCode:
			if strings.Contains(c.Text, "`") {
				sb.WriteString("`` " + c.Text + " ``")
			} else {
				sb.WriteString("`" + c.Text + "`")
			}
		case KindMath:
			sb.WriteString("`" + c.Text + "`")
		}
	}
}
