// Package chunker splits document text into fixed-size character
// windows with an overlap between neighbours.
package chunker

// CharacterChunker produces overlapping chunks of at most size runes.
type CharacterChunker struct {
	size    int
	overlap int
}

// NewCharacter creates a chunker. Non-positive size falls back to
// 1000 characters; the overlap is clamped below the chunk size so the
// window always advances.
func NewCharacter(size, overlap int) *CharacterChunker {
	if size <= 0 {
		size = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size - 1
	}
	return &CharacterChunker{size: size, overlap: overlap}
}

// Chunk splits content into ordered chunks. Each chunk after the first
// starts overlap runes before the end of its predecessor. Empty
// content yields no chunks.
func (c *CharacterChunker) Chunk(content string) []string {
	runes := []rune(content)
	if len(runes) == 0 {
		return nil
	}

	step := c.size - c.overlap
	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + c.size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return chunks
}
