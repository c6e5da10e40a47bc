package markup

// BlockKind identifies a structural block of the document
type BlockKind int

const (
	BlockHeader BlockKind = iota
	BlockParagraph
	BlockList
	BlockBreak
)

// String returns a readable name for the kind
func (k BlockKind) String() string {
	switch k {
	case BlockHeader:
		return "header"
	case BlockParagraph:
		return "paragraph"
	case BlockList:
		return "list"
	case BlockBreak:
		return "break"
	default:
		return "unknown"
	}
}

// Block is one structural element of the rendered document.
// Headers use Level, paragraphs use neither, lists use Ordered. Breaks carry
// no data. Assemble fills only the raw fields (Raw for headers and
// paragraphs, RawItems for lists); Resolve turns them into Inline and Items,
// which are what RenderBlocks reads.
type Block struct {
	Kind     BlockKind
	Level    int
	Ordered  bool
	Raw      string
	RawItems []string
	Inline   InlineRun
	Items    []InlineRun
}

// assemblerState tracks whether the assembler is inside a list
type assemblerState int

const (
	stateNone assemblerState = iota
	stateInUnorderedList
	stateInOrderedList
)

// assembler groups line tokens into blocks
type assembler struct {
	state  assemblerState
	items  []string
	blocks []Block
}

// Assemble groups classified lines into blocks.
// Consecutive items of the same list type form one list. Any other line, a
// blank line or an item of the other type closes the open list first.
func Assemble(tokens []LineToken) []Block {
	a := &assembler{blocks: make([]Block, 0, len(tokens))}
	for _, tok := range tokens {
		a.feed(tok)
	}
	a.closeList()
	return a.blocks
}

func (a *assembler) feed(tok LineToken) {
	switch tok.Kind {
	case LineHeader:
		a.closeList()
		a.emit(Block{Kind: BlockHeader, Level: tok.Level, Raw: tok.Text})
	case LineUnorderedItem:
		a.appendItem(stateInUnorderedList, tok.Text)
	case LineOrderedItem:
		a.appendItem(stateInOrderedList, tok.Text)
	case LineBlank:
		a.closeList()
		a.emit(Block{Kind: BlockBreak})
	default:
		a.closeList()
		a.emit(Block{Kind: BlockParagraph, Raw: tok.Text})
	}
}

func (a *assembler) appendItem(want assemblerState, text string) {
	if a.state != want {
		a.closeList()
		a.state = want
	}
	a.items = append(a.items, text)
}

func (a *assembler) closeList() {
	if a.state == stateNone {
		return
	}
	a.emit(Block{
		Kind:     BlockList,
		Ordered:  a.state == stateInOrderedList,
		RawItems: a.items,
	})
	a.state = stateNone
	a.items = nil
}

func (a *assembler) emit(b Block) {
	a.blocks = append(a.blocks, b)
}

// Resolve returns a copy of blocks with the inline spans of every header,
// paragraph and list item resolved from its raw text. The input is not
// modified.
func Resolve(blocks []Block) []Block {
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		switch b.Kind {
		case BlockHeader, BlockParagraph:
			b.Inline = ResolveInline(b.Raw)
		case BlockList:
			b.Items = make([]InlineRun, len(b.RawItems))
			for j, raw := range b.RawItems {
				b.Items[j] = ResolveInline(raw)
			}
		}
		out[i] = b
	}
	return out
}
