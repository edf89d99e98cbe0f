package parser

import (
	"sort"
	"unicode/utf16"
)

// Position is a zero-based line and column. Column counts UTF-16 code
// units, the unit editors speaking LSP use.
type Position struct {
	Line   int
	Column int
}

// LineIndex converts between character offsets and positions.
type LineIndex struct {
	runes []rune
	lines []int // character offset of the first character of each line
}

func NewLineIndex(source string) *LineIndex {
	idx := &LineIndex{runes: []rune(source), lines: []int{0}}
	for i, r := range idx.runes {
		if r == '\n' {
			idx.lines = append(idx.lines, i+1)
		}
	}
	return idx
}

func (idx *LineIndex) Position(offset int) Position {
	offset = max(0, min(offset, len(idx.runes)))
	line := sort.Search(len(idx.lines), func(i int) bool { return idx.lines[i] > offset }) - 1
	col := 0
	for _, r := range idx.runes[idx.lines[line]:offset] {
		col += utf16Len(r)
	}
	return Position{Line: line, Column: col}
}

func (idx *LineIndex) Offset(pos Position) int {
	if pos.Line < 0 {
		return 0
	}
	if pos.Line >= len(idx.lines) {
		return len(idx.runes)
	}
	offset := idx.lines[pos.Line]
	for col := 0; offset < len(idx.runes) && idx.runes[offset] != '\n'; offset++ {
		if col >= pos.Column {
			break
		}
		col += utf16Len(idx.runes[offset])
	}
	return offset
}

func utf16Len(r rune) int {
	if n := utf16.RuneLen(r); n > 0 {
		return n
	}
	return 1
}
