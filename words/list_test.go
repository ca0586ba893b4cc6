package words

import (
	"strings"
	"testing"
)

func TestList_Sanity(t *testing.T) {
	seen := map[string]bool{}
	for _, w := range List {
		if len(w) != 5 {
			t.Errorf("word %q has length %d, want 5", w, len(w))
		}
		if w != strings.ToLower(w) {
			t.Errorf("word %q is not lower-case", w)
		}
		if seen[w] {
			t.Errorf("word %q appears more than once", w)
		}
		seen[w] = true
	}
}

func TestRandomExcept(t *testing.T) {
	previous := List[0]
	for i := 0; i < 50; i++ {
		if w := RandomExcept(previous); w == previous {
			t.Fatalf("RandomExcept returned the excluded word %q", w)
		}
	}
}
