package markup

import (
	"strconv"
	"strings"
)

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Escape replaces the characters that could open or close markup
func Escape(s string) string {
	return textEscaper.Replace(s)
}

// Render converts an AI response into HTML. Empty input yields empty output.
func Render(text string) string {
	if text == "" {
		return ""
	}
	return RenderBlocks(Resolve(Assemble(ClassifyLines(text))))
}

// RenderBlocks writes blocks as HTML, one element per line. Ordered lists
// always number from one regardless of the indices in the source.
func RenderBlocks(blocks []Block) string {
	var b strings.Builder
	for _, block := range blocks {
		writeBlock(&b, block)
	}
	return b.String()
}

// RenderInline writes a run of spans as HTML
func RenderInline(run InlineRun) string {
	var b strings.Builder
	writeInline(&b, run)
	return b.String()
}

func writeBlock(b *strings.Builder, block Block) {
	switch block.Kind {
	case BlockHeader:
		tag := "h" + strconv.Itoa(clampLevel(block.Level))
		writeOpen(b, tag)
		writeInline(b, block.Inline)
		writeClose(b, tag)
		b.WriteByte('\n')
	case BlockParagraph:
		b.WriteString("<p>")
		writeInline(b, block.Inline)
		b.WriteString("</p>\n")
	case BlockList:
		tag := "ul"
		if block.Ordered {
			tag = "ol"
		}
		writeOpen(b, tag)
		b.WriteByte('\n')
		for _, item := range block.Items {
			b.WriteString("  <li>")
			writeInline(b, item)
			b.WriteString("</li>\n")
		}
		writeClose(b, tag)
		b.WriteByte('\n')
	case BlockBreak:
		b.WriteString("<br>\n")
	}
}

func writeInline(b *strings.Builder, run InlineRun) {
	for _, span := range run {
		switch span.Kind {
		case InlineStrong:
			b.WriteString("<strong>")
			writeInline(b, span.Children)
			b.WriteString("</strong>")
		case InlineEmphasis:
			b.WriteString("<em>")
			writeInline(b, span.Children)
			b.WriteString("</em>")
		default:
			b.WriteString(Escape(span.Content))
		}
	}
}

func writeOpen(b *strings.Builder, tag string) {
	b.WriteByte('<')
	b.WriteString(tag)
	b.WriteByte('>')
}

func writeClose(b *strings.Builder, tag string) {
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteByte('>')
}

// clampLevel keeps hand-built header blocks inside h1..h6
func clampLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > MaxHeaderLevel {
		return MaxHeaderLevel
	}
	return level
}
