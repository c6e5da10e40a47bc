package markup

import "strings"

// InlineKind identifies an inline span
type InlineKind int

const (
	InlineText InlineKind = iota
	InlineStrong
	InlineEmphasis
)

// String returns a readable name for the kind
func (k InlineKind) String() string {
	switch k {
	case InlineText:
		return "text"
	case InlineStrong:
		return "strong"
	case InlineEmphasis:
		return "emphasis"
	default:
		return "unknown"
	}
}

// Inline is a span of a line. Text spans carry Content. Strong and Emphasis
// spans carry Children, which is always a single literal Text span because
// emphasis content is never resolved again.
type Inline struct {
	Kind     InlineKind
	Content  string
	Children InlineRun
}

// InlineRun is an ordered sequence of inline spans
type InlineRun []Inline

// Text builds a literal text span
func Text(s string) Inline {
	return Inline{Kind: InlineText, Content: s}
}

// Strong builds a bold span around literal text
func Strong(s string) Inline {
	return Inline{Kind: InlineStrong, Children: InlineRun{Text(s)}}
}

// Emphasis builds an italic span around literal text
func Emphasis(s string) Inline {
	return Inline{Kind: InlineEmphasis, Children: InlineRun{Text(s)}}
}

const boldMarker = "**"

// ResolveInline splits raw line text into spans.
// Bold is resolved first; italics are then resolved inside the remaining
// text spans only.
func ResolveInline(raw string) InlineRun {
	bold := resolveBold(raw)

	run := make(InlineRun, 0, len(bold))
	for _, span := range bold {
		if span.Kind != InlineText {
			run = append(run, span)
			continue
		}
		run = append(run, resolveItalic(span.Content)...)
	}
	return run
}

// resolveBold scans for "**" pairs with two cursors. An opening marker that
// has no closing marker leaves it and everything after it as literal text.
func resolveBold(s string) InlineRun {
	var run InlineRun
	pos := 0
	for pos < len(s) {
		open := strings.Index(s[pos:], boldMarker)
		if open < 0 {
			break
		}
		open += pos

		contentStart := open + len(boldMarker)
		end := strings.Index(s[contentStart:], boldMarker)
		if end < 0 {
			break
		}
		end += contentStart

		if open > pos {
			run = append(run, Text(s[pos:open]))
		}
		run = append(run, Strong(s[contentStart:end]))
		pos = end + len(boldMarker)
	}

	if pos < len(s) {
		run = append(run, Text(s[pos:]))
	}
	return run
}

// resolveItalic pairs single asterisks that are not adjacent to another
// asterisk. Each pair wraps the text between them. An unpaired asterisk
// stays literal.
func resolveItalic(s string) InlineRun {
	stars := isolatedStars(s)
	if len(stars) < 2 {
		return InlineRun{Text(s)}
	}

	var run InlineRun
	pos := 0
	for i := 0; i+1 < len(stars); i += 2 {
		open, end := stars[i], stars[i+1]
		if open > pos {
			run = append(run, Text(s[pos:open]))
		}
		run = append(run, Emphasis(s[open+1:end]))
		pos = end + 1
	}

	if pos < len(s) {
		run = append(run, Text(s[pos:]))
	}
	return run
}

func isolatedStars(s string) []int {
	var stars []int
	for i := 0; i < len(s); i++ {
		if s[i] != '*' {
			continue
		}
		if i > 0 && s[i-1] == '*' {
			continue
		}
		if i+1 < len(s) && s[i+1] == '*' {
			continue
		}
		stars = append(stars, i)
	}
	return stars
}
