package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(blocks []Block) []BlockKind {
	out := make([]BlockKind, len(blocks))
	for i, b := range blocks {
		out[i] = b.Kind
	}
	return out
}

func TestAssemble(t *testing.T) {
	t.Run("ConsecutiveItems_ShouldFormOneList", func(t *testing.T) {
		blocks := Assemble(ClassifyLines("- a\n* b\n- c"))

		require.Len(t, blocks, 1)
		assert.Equal(t, BlockList, blocks[0].Kind)
		assert.False(t, blocks[0].Ordered)
		assert.Equal(t, []string{"a", "b", "c"}, blocks[0].RawItems)
	})

	t.Run("TypeSwitch_ShouldStartNewList", func(t *testing.T) {
		blocks := Assemble(ClassifyLines("- a\n1. b\n2. c\n- d"))

		require.Len(t, blocks, 3)
		assert.False(t, blocks[0].Ordered)
		assert.True(t, blocks[1].Ordered)
		assert.Len(t, blocks[1].RawItems, 2)
		assert.False(t, blocks[2].Ordered)
	})

	t.Run("BlankLine_ShouldCloseListAndBreak", func(t *testing.T) {
		blocks := Assemble(ClassifyLines("- a\n\n- b"))

		assert.Equal(t, []BlockKind{BlockList, BlockBreak, BlockList}, kinds(blocks))
	})

	t.Run("HeaderAndPlain_ShouldCloseList", func(t *testing.T) {
		blocks := Assemble(ClassifyLines("1. a\n# H\n1. b\ntext"))

		assert.Equal(t, []BlockKind{BlockList, BlockHeader, BlockList, BlockParagraph}, kinds(blocks))
		assert.Equal(t, 1, blocks[1].Level)
	})

	t.Run("ListAtEnd_ShouldBeClosed", func(t *testing.T) {
		blocks := Assemble(ClassifyLines("intro\n- a"))

		assert.Equal(t, []BlockKind{BlockParagraph, BlockList}, kinds(blocks))
	})

	t.Run("NoTokens_ShouldYieldNoBlocks", func(t *testing.T) {
		assert.Empty(t, Assemble(nil))
	})

	t.Run("InlineMarkers_ShouldStayRaw", func(t *testing.T) {
		blocks := Assemble(ClassifyLines("## **Bold** head\n- *x*\nplain **y**"))

		require.Len(t, blocks, 3)
		assert.Equal(t, "**Bold** head", blocks[0].Raw)
		assert.Nil(t, blocks[0].Inline)
		assert.Equal(t, []string{"*x*"}, blocks[1].RawItems)
		assert.Nil(t, blocks[1].Items)
		assert.Equal(t, "plain **y**", blocks[2].Raw)
		assert.Nil(t, blocks[2].Inline)
	})
}

func TestResolve(t *testing.T) {
	// Arrange
	blocks := Assemble(ClassifyLines("# **T**\n1. *a*\n2. b\n\ntext"))

	// Act
	resolved := Resolve(blocks)

	// Assert
	require.Len(t, resolved, 4)
	assert.Equal(t, InlineRun{Strong("T")}, resolved[0].Inline)
	assert.Equal(t, []InlineRun{{Emphasis("a")}, {Text("b")}}, resolved[1].Items)
	assert.Equal(t, BlockBreak, resolved[2].Kind)
	assert.Equal(t, InlineRun{Text("text")}, resolved[3].Inline)
	assert.Nil(t, blocks[0].Inline, "input blocks must not be modified")
}

func TestBlockKindString(t *testing.T) {
	assert.Equal(t, "list", BlockList.String())
	assert.Equal(t, "unknown", BlockKind(42).String())
}
