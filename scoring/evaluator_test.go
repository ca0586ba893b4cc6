package scoring

import (
	"strings"
	"testing"

	"wordle-arena/apperrors"
)

func statuses(v Verdict) []string {
	out := make([]string, len(v))
	for i, lv := range v {
		out[i] = lv.Status
	}
	return out
}

func TestEvaluate_AnswerAgainstItself(t *testing.T) {
	for _, answer := range []string{"apple", "chess", "a", "zesty"} {
		v, err := Evaluate(answer, answer)
		if err != nil {
			t.Fatalf("Evaluate(%q, %q): %v", answer, answer, err)
		}
		if !v.AllCorrect() {
			t.Fatalf("Evaluate(%q, %q) = %v, want all correct", answer, answer, statuses(v))
		}
	}
}

func TestEvaluate_Vectors(t *testing.T) {
	tests := []struct {
		guess  string
		answer string
		want   []string
	}{
		// Duplicate letters: the second 'a' in the guess is misplaced because
		// the answer's second 'a' (index 2) is unconsumed after pass 1.
		{"aabbc", "ababc", []string{StatusCorrect, StatusMisplaced, StatusMisplaced, StatusCorrect, StatusCorrect}},
		// Only one 'l' in the answer — the guess's second 'l' must be absent.
		{"allee", "apple", []string{StatusCorrect, StatusMisplaced, StatusAbsent, StatusAbsent, StatusCorrect}},
		{"speed", "abide", []string{StatusAbsent, StatusAbsent, StatusMisplaced, StatusAbsent, StatusMisplaced}},
		{"crane", "crane", []string{StatusCorrect, StatusCorrect, StatusCorrect, StatusCorrect, StatusCorrect}},
		{"xxxxx", "crane", []string{StatusAbsent, StatusAbsent, StatusAbsent, StatusAbsent, StatusAbsent}},
		// Case-insensitive comparison.
		{"APPLE", "apple", []string{StatusCorrect, StatusCorrect, StatusCorrect, StatusCorrect, StatusCorrect}},
		{"Earth", "heart", []string{StatusMisplaced, StatusMisplaced, StatusMisplaced, StatusMisplaced, StatusMisplaced}},
	}

	for _, tt := range tests {
		v, err := Evaluate(tt.guess, tt.answer)
		if err != nil {
			t.Fatalf("Evaluate(%q, %q): %v", tt.guess, tt.answer, err)
		}
		got := statuses(v)
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("Evaluate(%q, %q)[%d] = %s, want %s", tt.guess, tt.answer, i, got[i], tt.want[i])
			}
		}
	}
}

// For every letter, the correct+misplaced verdicts never exceed the letter's
// count in the answer, nor its count in the guess.
func TestEvaluate_DuplicateCountBound(t *testing.T) {
	pairs := [][2]string{
		{"aabbc", "ababc"},
		{"allee", "apple"},
		{"eeeee", "abide"},
		{"aaaaa", "aabbb"},
		{"llama", "level"},
	}

	for _, p := range pairs {
		guess, answer := strings.ToLower(p[0]), strings.ToLower(p[1])
		v, err := Evaluate(guess, answer)
		if err != nil {
			t.Fatalf("Evaluate(%q, %q): %v", guess, answer, err)
		}

		matched := map[string]int{}
		for _, lv := range v {
			if lv.Status == StatusCorrect || lv.Status == StatusMisplaced {
				matched[lv.Letter]++
			}
		}
		for letter, n := range matched {
			inAnswer := strings.Count(answer, letter)
			inGuess := strings.Count(guess, letter)
			if n > inAnswer {
				t.Errorf("Evaluate(%q, %q): letter %q matched %d times, answer only has %d", guess, answer, letter, n, inAnswer)
			}
			if n > inGuess {
				t.Errorf("Evaluate(%q, %q): letter %q matched %d times, guess only has %d", guess, answer, letter, n, inGuess)
			}
		}
	}
}

func TestEvaluate_LengthMismatch(t *testing.T) {
	if _, err := Evaluate("tall", "apple"); err == nil {
		t.Fatal("expected error for mismatched lengths")
	} else if !apperrors.IsValidation(err) {
		t.Fatalf("expected a validation error, got %v", err)
	}
}

func TestEvaluate_DoesNotErrorOnNoMatch(t *testing.T) {
	v, err := Evaluate("xxxxx", "crane")
	if err != nil {
		t.Fatalf("a fully absent verdict is not an error: %v", err)
	}
	if v.AllCorrect() {
		t.Fatal("fully absent verdict reported as all correct")
	}
}
