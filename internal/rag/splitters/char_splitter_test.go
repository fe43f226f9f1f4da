package splitters

import (
	"strings"
	"testing"
)

func TestSplitEmpty(t *testing.T) {
	s := NewCharacterSplitter(1000, 200)
	if got := s.Split(""); got != nil {
		t.Fatalf("expected no chunks, got %d", len(got))
	}
}

func TestSplitShortText(t *testing.T) {
	s := NewCharacterSplitter(1000, 200)
	got := s.Split("short document")
	if len(got) != 1 || got[0] != "short document" {
		t.Fatalf("got %v", got)
	}
}

func TestSplitOverlap(t *testing.T) {
	s := NewCharacterSplitter(10, 4)
	text := "abcdefghijklmnopqrstuvwxyz"
	got := s.Split(text)

	// step = 6, so chunks start at 0, 6, 12, 18.
	want := []string{"abcdefghij", "ghijklmnop", "mnopqrstuv", "stuvwxyz"}
	if len(got) != len(want) {
		t.Fatalf("got %d chunks %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("chunk %d = %q, want %q", i, got[i], want[i])
		}
	}

	// Adjacent chunks share the trailing overlap.
	for i := 0; i < len(got)-1; i++ {
		tail := got[i][len(got[i])-4:]
		if !strings.HasPrefix(got[i+1], tail) {
			t.Errorf("chunk %d does not start with overlap %q", i+1, tail)
		}
	}

	// Last chunk ends at the end of the text.
	if !strings.HasSuffix(text, got[len(got)-1]) {
		t.Errorf("last chunk %q is not a suffix of the text", got[len(got)-1])
	}
}

func TestSplitDeterministic(t *testing.T) {
	s := NewCharacterSplitter(100, 20)
	text := strings.Repeat("education systems of the world ", 40)
	a := s.Split(text)
	b := s.Split(text)
	if len(a) != len(b) {
		t.Fatalf("chunk counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("chunk %d differs between runs", i)
		}
	}
}

func TestSplitRunes(t *testing.T) {
	s := NewCharacterSplitter(4, 1)
	got := s.Split("教育制度は国ごとに異なる")
	for i, c := range got {
		if n := len([]rune(c)); n > 4 {
			t.Errorf("chunk %d has %d runes", i, n)
		}
	}
}
