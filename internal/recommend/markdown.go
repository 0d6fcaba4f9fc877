package recommend

import (
	"strings"

	"github.com/jonathan/benefits-advisor/internal/types"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Markdown parses the reply as Markdown and takes titles from headings, from
// paragraph lines that are entirely bold, and from list items that open with
// bold text, such as
//
//	1. **Use your cashback card**: saves roughly $25 per month.
//
// Text following a title in the same block starts its description.
type Markdown struct {
	md goldmark.Markdown
}

// NewMarkdown creates a Markdown extractor with the default CommonMark parser
func NewMarkdown() *Markdown {
	return &Markdown{md: goldmark.New()}
}

// Extract implements Extractor
func (m *Markdown) Extract(reply string) []types.Recommendation {
	src := []byte(reply)
	root := m.md.Parser().Parse(text.NewReader(src))

	var c collector
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		m.block(&c, n, src)
	}
	return c.finish()
}

func (m *Markdown) block(c *collector, n ast.Node, src []byte) {
	switch node := n.(type) {
	case *ast.Heading:
		c.open(blockText(node, src), "")
	case *ast.List:
		for item := node.FirstChild(); item != nil; item = item.NextSibling() {
			m.block(c, item, src)
		}
	case *ast.ListItem:
		first := node.FirstChild()
		if title, rest, ok := leadingStrong(first, src); ok {
			c.open(title, rest)
			for sib := first.NextSibling(); sib != nil; sib = sib.NextSibling() {
				c.describe(blockText(sib, src))
			}
			return
		}
		c.describe(blockText(node, src))
	case *ast.Paragraph:
		m.paragraph(c, node, src)
	default:
		c.describe(blockText(node, src))
	}
}

// paragraph scans a paragraph line by line. A line that is entirely bold opens a
// new title, so bold lines with no blank line between them stay separate cards.
// The first line may also be "**Title**: text".
func (m *Markdown) paragraph(c *collector, p *ast.Paragraph, src []byte) {
	for i, line := range inlineLines(p) {
		if em, ok := strongOnly(line, src); ok {
			c.open(strongText(em, src), "")
			continue
		}
		if em, ok := line[0].(*ast.Emphasis); ok && em.Level == 2 && i == 0 {
			c.open(strongText(em, src), strings.TrimLeft(lineText(line[1:], src), ":- "))
			continue
		}
		c.describe(lineText(line, src))
	}
}

// inlineLines groups the inline children of n by source line. goldmark ends every
// line but the last with a Text node carrying the soft or hard break.
func inlineLines(n ast.Node) [][]ast.Node {
	var lines [][]ast.Node
	var cur []ast.Node
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		cur = append(cur, child)
		if t, ok := child.(*ast.Text); ok && (t.SoftLineBreak() || t.HardLineBreak()) {
			lines = append(lines, cur)
			cur = nil
		}
	}
	if len(cur) > 0 {
		lines = append(lines, cur)
	}
	return lines
}

// strongOnly reports whether a line holds one **strong** span and nothing but whitespace
func strongOnly(line []ast.Node, src []byte) (*ast.Emphasis, bool) {
	var found *ast.Emphasis
	for _, n := range line {
		if t, ok := n.(*ast.Text); ok && strings.TrimSpace(string(t.Segment.Value(src))) == "" {
			continue
		}
		em, ok := n.(*ast.Emphasis)
		if !ok || em.Level != 2 || found != nil {
			return nil, false
		}
		found = em
	}
	return found, found != nil
}

// leadingStrong reports whether an inline container starts with **strong** text
func leadingStrong(n ast.Node, src []byte) (title, rest string, ok bool) {
	if n == nil {
		return "", "", false
	}
	em, isEm := n.FirstChild().(*ast.Emphasis)
	if !isEm || em.Level != 2 {
		return "", "", false
	}

	var sb strings.Builder
	for sib := em.NextSibling(); sib != nil; sib = sib.NextSibling() {
		writeInline(sib, src, &sb)
	}
	rest = strings.TrimLeft(collapse(sb.String()), ":- ")
	return strongText(em, src), rest, true
}

func strongText(em *ast.Emphasis, src []byte) string {
	var sb strings.Builder
	inlineText(em, src, &sb)
	return collapse(strings.Trim(sb.String(), "*"))
}

func lineText(nodes []ast.Node, src []byte) string {
	var sb strings.Builder
	for _, n := range nodes {
		writeInline(n, src, &sb)
	}
	return collapse(sb.String())
}

// blockText flattens a block and its descendants into one line of text
func blockText(n ast.Node, src []byte) string {
	switch n.Kind() {
	case ast.KindParagraph, ast.KindTextBlock, ast.KindHeading:
		var sb strings.Builder
		inlineText(n, src, &sb)
		return collapse(sb.String())
	case ast.KindCodeBlock, ast.KindFencedCodeBlock:
		var sb strings.Builder
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			sb.Write(seg.Value(src))
			sb.WriteByte(' ')
		}
		return collapse(sb.String())
	}

	var parts []string
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if t := blockText(child, src); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

func inlineText(n ast.Node, src []byte, sb *strings.Builder) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		writeInline(child, src, sb)
	}
}

func writeInline(n ast.Node, src []byte, sb *strings.Builder) {
	switch t := n.(type) {
	case *ast.Text:
		sb.Write(t.Segment.Value(src))
		if t.SoftLineBreak() || t.HardLineBreak() {
			sb.WriteByte(' ')
		}
	case *ast.String:
		sb.Write(t.Value)
	default:
		inlineText(n, src, sb)
	}
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
