package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChunk_Overlap(t *testing.T) {
	c := NewCharacter(10, 4)
	chunks := c.Chunk("abcdefghijklmnopqrst")

	require.Equal(t, []string{"abcdefghij", "ghijklmnop", "mnopqrst"}, chunks)
	// Neighbouring chunks share the overlap.
	require.Equal(t, chunks[0][6:], chunks[1][:4])
}

func TestChunk_ShorterThanSize(t *testing.T) {
	c := NewCharacter(1000, 200)
	require.Equal(t, []string{"short"}, c.Chunk("short"))
}

func TestChunk_Empty(t *testing.T) {
	c := NewCharacter(1000, 200)
	require.Empty(t, c.Chunk(""))
}

func TestChunk_ExactMultiple(t *testing.T) {
	c := NewCharacter(5, 0)
	require.Equal(t, []string{"aaaaa", "bbbbb"}, c.Chunk("aaaaabbbbb"))
}

func TestChunk_Unicode(t *testing.T) {
	c := NewCharacter(4, 1)
	chunks := c.Chunk("héllo wörld")
	require.NotEmpty(t, chunks)
	require.Equal(t, "héll", chunks[0])
	// Reassembly covers the original content.
	require.Contains(t, strings.Join(chunks, ""), "wörld"[0:1])
}

func TestNewCharacter_Defaults(t *testing.T) {
	c := NewCharacter(0, -1)
	require.Equal(t, 1000, c.size)
	require.Equal(t, 0, c.overlap)

	c = NewCharacter(10, 10)
	require.Equal(t, 9, c.overlap)
}
