package render

import (
	"bytes"
	"html"
	"strings"

	mathjax "github.com/litao91/goldmark-mathjax"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Request is a single render call: markdown source plus an optional class
// qualifier for the container. An empty ClassName falls back to
// Options.ClassName.
type Request struct {
	Text      string `json:"text"`
	ClassName string `json:"className,omitempty"`
}

// Result holds every representation of one rendered request.
type Result struct {
	Tree *Node
	HTML string
}

// Pipeline is a configured markdown preview renderer. It is safe for
// concurrent use; each call parses its input from scratch.
type Pipeline struct {
	opts      Options
	md        goldmark.Markdown
	sanitizer *bluemonday.Policy
}

// New builds a Pipeline for opts.
func New(opts Options) *Pipeline {
	exts := []goldmark.Extender{extension.GFM}
	if opts.Math {
		exts = append(exts, mathjax.MathJax)
	}
	md := goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithRenderer(renderer.NewRenderer(
			renderer.WithNodeRenderers(util.Prioritized(newBlockRenderer(opts), 100)),
		)),
	)
	p := &Pipeline{opts: opts, md: md}
	if opts.Sanitize {
		p.sanitizer = newSanitizer()
	}
	return p
}

// Options returns the options the pipeline was built with.
func (p *Pipeline) Options() Options {
	return p.opts
}

// Render parses req once and returns both the Tree and the HTML.
func (p *Pipeline) Render(req Request) Result {
	src := []byte(req.Text)
	doc := p.parse(src)
	return Result{
		Tree: buildTree(doc, src, p.className(req)),
		HTML: p.emit(doc, src, req),
	}
}

// Tree returns the restricted visual tree for req.
func (p *Pipeline) Tree(req Request) *Node {
	src := []byte(req.Text)
	return buildTree(p.parse(src), src, p.className(req))
}

// HTML returns the restricted markup for req wrapped in its container.
func (p *Pipeline) HTML(req Request) string {
	src := []byte(req.Text)
	return p.emit(p.parse(src), src, req)
}

func (p *Pipeline) parse(src []byte) ast.Node {
	doc := p.md.Parser().Parse(text.NewReader(src))
	restrict(doc, src)
	return doc
}

func (p *Pipeline) emit(doc ast.Node, src []byte, req Request) string {
	var body bytes.Buffer
	if err := p.md.Renderer().Render(&body, src, doc); err != nil {
		body.Reset()
	}
	out := body.Bytes()
	if p.sanitizer != nil {
		out = p.sanitizer.SanitizeBytes(out)
	}

	var sb strings.Builder
	sb.WriteString(`<div class="`)
	sb.WriteString(html.EscapeString(p.containerClass(req)))
	sb.WriteString(`">`)
	if len(out) > 0 {
		sb.WriteByte('\n')
		sb.Write(out)
	}
	sb.WriteString("</div>")
	return sb.String()
}

func (p *Pipeline) className(req Request) string {
	if req.ClassName != "" {
		return req.ClassName
	}
	return p.opts.ClassName
}

func (p *Pipeline) containerClass(req Request) string {
	c := p.opts.class("markdown")
	if q := strings.TrimSpace(p.className(req)); q != "" {
		c += " " + q
	}
	return c
}
