package render

import "strings"

// Markdown renders the restricted form of content for terminal display.
// Uses a pooled renderer for better performance and thread safety.
func Markdown(content string, opts Options) (string, error) {
	tree := globalPipelines.get(opts).Tree(Request{Text: content})
	if len(tree.Children) == 0 {
		return "", nil
	}

	renderer, err := globalPool.get(opts)
	if err != nil {
		return "", err
	}
	defer globalPool.put(opts, renderer)

	return renderer.Render(tree.Markdown())
}

// MarkdownWithWidth is a convenience function for rendering with specific width.
// Uses default options with the specified width.
func MarkdownWithWidth(content string, width int) (string, error) {
	opts := DefaultOptions().WithWidth(width)
	return Markdown(content, opts)
}

// HTML renders content as restricted preview markup. It never fails:
// malformed markdown degrades to literal text.
func HTML(content string, opts Options) string {
	return globalPipelines.get(opts).HTML(Request{Text: content})
}

// BuildTree returns the restricted visual tree for content.
func BuildTree(content string, opts Options) *Node {
	return globalPipelines.get(opts).Tree(Request{Text: content})
}

// Plain returns the restricted content as unstyled text, one block per
// paragraph. Useful for summaries and log lines.
func Plain(content string, opts Options) string {
	tree := BuildTree(content, opts)
	parts := make([]string, 0, len(tree.Children))
	for _, b := range tree.Children {
		parts = append(parts, strings.TrimSpace(b.PlainText()))
	}
	return strings.Join(parts, "\n\n")
}
