package sourcemap

import (
	"sort"
	"unicode/utf8"
)

// LineIndex converts byte offsets in a generated file to the positions a
// Cache is queried with. Line starts are precomputed so each conversion is a
// binary search, and columns are counted in UTF-16 code units because that
// is the unit the mappings string addresses.
type LineIndex struct {
	text       string
	lineStarts []int
}

// NewLineIndex builds a LineIndex over the generated file's text. LF, CRLF,
// and lone CR all terminate a line.
func NewLineIndex(text string) *LineIndex {
	idx := &LineIndex{
		text:       text,
		lineStarts: []int{0},
	}

	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			if i+1 < len(text) {
				idx.lineStarts = append(idx.lineStarts, i+1)
			}
		case '\r':
			next := i + 1
			if next < len(text) && text[next] == '\n' {
				next++
				i++
			}
			if next < len(text) {
				idx.lineStarts = append(idx.lineStarts, next)
			}
		}
	}

	return idx
}

// LineCount returns the number of lines in the indexed text.
func (idx *LineIndex) LineCount() int {
	return len(idx.lineStarts)
}

// QueryPosition converts a byte offset to a position suitable for
// Cache.MappingForGeneratedPosition: 1-based line, 0-based UTF-16 column.
// Offsets outside the text are clamped.
func (idx *LineIndex) QueryPosition(offset int) CodePosition {
	if offset < 0 {
		offset = 0
	}
	if offset > len(idx.text) {
		offset = len(idx.text)
	}

	line := sort.Search(len(idx.lineStarts), func(i int) bool {
		return idx.lineStarts[i] > offset
	}) - 1
	if line < 0 {
		line = 0
	}

	start := idx.lineStarts[line]
	return CodePosition{
		Line:   uint32(line + 1),
		Column: uint32(utf16Column(idx.text[start:], offset-start)),
	}
}

// utf16Column counts the UTF-16 code units before byteOffset in s.
func utf16Column(s string, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset > len(s) {
		byteOffset = len(s)
	}

	col := 0
	for i := 0; i < byteOffset; {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			// Invalid UTF-8, count the byte as one unit.
			col++
			i++
			continue
		}
		if r >= 0x10000 {
			// Outside the BMP, a surrogate pair.
			col += 2
		} else {
			col++
		}
		i += size
	}
	return col
}
