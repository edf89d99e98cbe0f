package parser

import "testing"

func TestLineIndex(t *testing.T) {
	idx := NewLineIndex("ab\ncd\n😀x")
	tests := []struct {
		offset int
		pos    Position
	}{
		{0, Position{0, 0}},
		{2, Position{0, 2}},
		{3, Position{1, 0}},
		{4, Position{1, 1}},
		{6, Position{2, 0}},
		{7, Position{2, 2}},
		{8, Position{2, 3}},
	}
	for _, tt := range tests {
		if got := idx.Position(tt.offset); got != tt.pos {
			t.Errorf("Position(%d) = %+v, want %+v", tt.offset, got, tt.pos)
		}
		if got := idx.Offset(tt.pos); got != tt.offset {
			t.Errorf("Offset(%+v) = %d, want %d", tt.pos, got, tt.offset)
		}
	}
}

func TestLineIndexClamps(t *testing.T) {
	idx := NewLineIndex("ab\ncd")
	if got := idx.Position(100); got != (Position{1, 2}) {
		t.Errorf("Position(100) = %+v", got)
	}
	if got := idx.Offset(Position{0, 50}); got != 2 {
		t.Errorf("Offset past end of line = %d, want 2", got)
	}
	if got := idx.Offset(Position{9, 0}); got != 5 {
		t.Errorf("Offset past last line = %d, want 5", got)
	}
}
