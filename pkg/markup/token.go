package markup

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// LineKind identifies the syntactic role of a single input line
type LineKind int

const (
	LineBlank LineKind = iota
	LineHeader
	LineUnorderedItem
	LineOrderedItem
	LinePlain
)

// String returns a readable name for the kind
func (k LineKind) String() string {
	switch k {
	case LineBlank:
		return "blank"
	case LineHeader:
		return "header"
	case LineUnorderedItem:
		return "unordered_item"
	case LineOrderedItem:
		return "ordered_item"
	case LinePlain:
		return "plain"
	default:
		return "unknown"
	}
}

// MaxHeaderLevel is the deepest header level recognised
const MaxHeaderLevel = 6

// LineToken is the classification of one line.
// Level is set for headers, Index for ordered items. Text keeps any inline
// markers untouched; those are resolved later by ResolveInline.
type LineToken struct {
	Kind  LineKind
	Level int
	Index int
	Text  string
}

// space is the whitespace class used for both blank detection and the line
// patterns: ASCII controls, every Unicode separator and the BOM. Go's \s
// alone is ASCII only, so a no-break space would not separate a marker.
const space = `[\t\n\v\f\r\x{FEFF}\p{Z}]`

var (
	headerPattern        = regexp.MustCompile(`^(#{1,6})` + space + `+(.+)$`)
	unorderedItemPattern = regexp.MustCompile(`^` + space + `*[*-]` + space + `+(.+)$`)
	orderedItemPattern   = regexp.MustCompile(`^` + space + `*(\d+)\.` + space + `+(.+)$`)
)

func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\uFEFF':
		return true
	}
	return unicode.In(r, unicode.Z)
}

// Classify determines the role of a single line. The first matching rule wins:
// blank, header, unordered item, ordered item, plain.
func Classify(line string) LineToken {
	if strings.TrimFunc(line, isSpace) == "" {
		return LineToken{Kind: LineBlank}
	}

	if m := headerPattern.FindStringSubmatch(line); m != nil {
		return LineToken{Kind: LineHeader, Level: len(m[1]), Text: m[2]}
	}

	if m := unorderedItemPattern.FindStringSubmatch(line); m != nil {
		return LineToken{Kind: LineUnorderedItem, Text: m[1]}
	}

	if m := orderedItemPattern.FindStringSubmatch(line); m != nil {
		// Indices are informational only; an overflowing number is kept as 0
		index, err := strconv.Atoi(m[1])
		if err != nil {
			index = 0
		}
		return LineToken{Kind: LineOrderedItem, Index: index, Text: m[2]}
	}

	return LineToken{Kind: LinePlain, Text: line}
}

// ClassifyLines splits text on newlines and classifies every line.
// A trailing carriage return is dropped so CRLF input behaves like LF input.
func ClassifyLines(text string) []LineToken {
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	tokens := make([]LineToken, 0, len(lines))
	for _, line := range lines {
		tokens = append(tokens, Classify(strings.TrimSuffix(line, "\r")))
	}
	return tokens
}
