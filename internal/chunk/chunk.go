// Package chunk implements the UTF-8-safe character-window chunker (C1).
//
// It walks input text by Unicode scalar value, not by byte, and emits
// fixed-width overlapping windows whose byte spans always land on
// character boundaries. This is the only place in Shebe that decides how
// a file's text is split into indexable units.
package chunk

import (
	"unicode/utf8"

	shebeerrors "github.com/shebe-oss/shebe/internal/errors"
)

// MinSize and MaxSize bound the characters-per-chunk parameter accepted
// by Split, per the spec's chunking-parameter constraints.
const (
	MinSize = 100
	MaxSize = 2000
)

// Chunk is one overlapping character window of a source file.
type Chunk struct {
	// Index is the zero-based position of this chunk within its file,
	// in emission order.
	Index int
	// ByteStart and ByteEnd give the half-open byte range [ByteStart,
	// ByteEnd) this chunk occupies in the original text. Both always
	// fall on UTF-8 character boundaries.
	ByteStart int
	ByteEnd   int
	// Content is the chunk's text, exactly text[ByteStart:ByteEnd].
	Content string
}

// Split divides text into overlapping chunks of size characters with
// overlap characters of repetition between consecutive chunks.
//
// size must be in [MinSize, MaxSize]; overlap must be in [0, size-1].
// Violating either returns an *errors.Error with code InvalidArgument.
//
// Empty text yields zero chunks. Text that fits within a single window
// yields exactly one chunk. Chunk k covers character range
// [k*(size-overlap), k*(size-overlap)+size), clipped to the text length.
func Split(text string, size, overlap int) ([]Chunk, error) {
	if size < MinSize || size > MaxSize {
		return nil, shebeerrors.Newf(shebeerrors.InvalidArgument,
			"chunk size %d out of range [%d, %d]", size, MinSize, MaxSize)
	}
	if overlap < 0 || overlap >= size {
		return nil, shebeerrors.Newf(shebeerrors.InvalidArgument,
			"overlap %d out of range [0, %d)", overlap, size)
	}
	if text == "" {
		return nil, nil
	}

	// Precompute byte offsets for every character boundary so window
	// edges can be looked up by character index in O(1).
	boundaries := charBoundaries(text)
	numChars := len(boundaries) - 1

	stride := size - overlap
	var chunks []Chunk
	idx := 0
	for charStart := 0; charStart < numChars; charStart += stride {
		charEnd := charStart + size
		if charEnd > numChars {
			charEnd = numChars
		}

		byteStart := boundaries[charStart]
		byteEnd := boundaries[charEnd]

		chunks = append(chunks, Chunk{
			Index:     idx,
			ByteStart: byteStart,
			ByteEnd:   byteEnd,
			Content:   text[byteStart:byteEnd],
		})
		idx++

		if charEnd == numChars {
			break
		}
	}

	return chunks, nil
}

// charBoundaries returns the byte offset of every character boundary in
// text, including 0 and len(text), so boundaries[i] is the byte offset
// of the i-th rune and boundaries[len(boundaries)-1] == len(text).
func charBoundaries(text string) []int {
	boundaries := make([]int, 0, len(text)+1)
	offset := 0
	for offset < len(text) {
		boundaries = append(boundaries, offset)
		_, size := utf8.DecodeRuneInString(text[offset:])
		offset += size
	}
	boundaries = append(boundaries, len(text))
	return boundaries
}

// Count returns the number of chunks Split would produce for a text of
// numChars characters, without materializing the chunks themselves.
func Count(numChars, size, overlap int) int {
	if numChars <= 0 {
		return 0
	}
	if numChars <= size {
		return 1
	}
	stride := size - overlap
	// One chunk covers the first `size` chars; each additional stride
	// of uncovered characters needs one more chunk.
	remaining := numChars - size
	extra := (remaining + stride - 1) / stride
	return 1 + extra
}
