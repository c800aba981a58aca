package render

import (
	"regexp"

	mathjax "github.com/litao91/goldmark-mathjax"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/ojroom/preview/internal/config"
)

// blockRenderer emits the flat styled-block markup. It registers the stock
// goldmark HTML functions first and then overrides the block kinds, so
// inline formatting (emphasis, links, strikethrough) keeps its usual output.
type blockRenderer struct {
	base renderer.NodeRenderer
	opts Options
}

func newBlockRenderer(opts Options) *blockRenderer {
	return &blockRenderer{base: html.NewRenderer(), opts: opts}
}

// SetOption forwards renderer options to the stock HTML renderer.
func (r *blockRenderer) SetOption(name renderer.OptionName, value interface{}) {
	if so, ok := r.base.(renderer.SetOptioner); ok {
		so.SetOption(name, value)
	}
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *blockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	r.base.RegisterFuncs(reg)
	reg.Register(ast.KindHeading, r.renderHeading)
	reg.Register(ast.KindParagraph, r.renderParagraph)
	reg.Register(ast.KindList, r.renderList)
	reg.Register(ast.KindListItem, r.renderListItem)
	reg.Register(ast.KindCodeSpan, r.renderCodeSpan)
	reg.Register(mathjax.KindMathBlock, r.renderMathBlock)
}

func (r *blockRenderer) open(w util.BufWriter, tag string, classes ...string) {
	_, _ = w.WriteString("<" + tag + ` class="`)
	for i, c := range classes {
		if i > 0 {
			_ = w.WriteByte(' ')
		}
		_, _ = w.Write(util.EscapeHTML([]byte(c)))
	}
	_, _ = w.WriteString(`">`)
}

func (r *blockRenderer) renderHeading(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		r.open(w, "div", r.opts.class("block"), r.opts.class("heading"))
	} else {
		_, _ = w.WriteString("</div>\n")
	}
	return ast.WalkContinue, nil
}

func (r *blockRenderer) renderParagraph(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	// Loose list items hold paragraphs; they stay inline inside the item span.
	if _, inItem := n.Parent().(*ast.ListItem); inItem {
		if !entering && n.NextSibling() != nil && n.FirstChild() != nil {
			_ = w.WriteByte('\n')
		}
		return ast.WalkContinue, nil
	}
	if entering {
		r.open(w, "div", r.opts.class("block"))
	} else {
		_, _ = w.WriteString("</div>\n")
	}
	return ast.WalkContinue, nil
}

func (r *blockRenderer) renderList(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		r.open(w, "div", r.opts.class("block"), r.opts.class("list"))
		_ = w.WriteByte('\n')
	} else {
		_, _ = w.WriteString("</div>\n")
	}
	return ast.WalkContinue, nil
}

func (r *blockRenderer) renderListItem(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		r.open(w, "span", r.opts.class("li"))
	} else {
		_, _ = w.WriteString("</span>\n")
	}
	return ast.WalkContinue, nil
}

func (r *blockRenderer) renderCodeSpan(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	r.open(w, "code", r.opts.class("code"))
	_, _ = w.Write(util.EscapeHTML([]byte(codeSpanText(n, source))))
	_, _ = w.WriteString("</code>")
	return ast.WalkSkipChildren, nil
}

func (r *blockRenderer) renderMathBlock(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	r.open(w, "div", r.opts.class("block"))
	_, _ = w.WriteString(`<span class="math display">\[`)
	_, _ = w.Write(util.EscapeHTML([]byte(linesText(n, source))))
	_, _ = w.WriteString(`\]</span></div>` + "\n")
	return ast.WalkSkipChildren, nil
}

var (
	classPattern = regexp.MustCompile(`^` + config.ClassToken + `( ` + config.ClassToken + `)*$`)
	linkPattern  = regexp.MustCompile(`^(https?://|mailto:|/|#)`)
)

// newSanitizer builds the policy for preview HTML: the restricted block
// markup, inline formatting and links, nothing else.
func newSanitizer() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("div", "span", "code", "em", "strong", "del", "br")
	p.AllowAttrs("class").Matching(classPattern).OnElements("div", "span", "code")
	p.AllowStandardURLs()
	p.AllowAttrs("href").Matching(linkPattern).OnElements("a")
	p.RequireNoFollowOnLinks(true)
	return p
}
