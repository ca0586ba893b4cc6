// scoring/evaluator.go
package scoring

import (
	"strings"

	"wordle-arena/apperrors"
)

// Letter statuses of a verdict.
const (
	StatusCorrect   = "correct"
	StatusMisplaced = "misplaced"
	StatusAbsent    = "absent"
)

// LetterVerdict is the outcome for one position of a guess.
type LetterVerdict struct {
	Letter string `json:"letter"`
	Status string `json:"status"`
}

// Verdict is the per-position outcome of comparing a guess against the answer.
type Verdict []LetterVerdict

// AllCorrect reports whether every position matched — a winning guess.
func (v Verdict) AllCorrect() bool {
	if len(v) == 0 {
		return false
	}
	for _, lv := range v {
		if lv.Status != StatusCorrect {
			return false
		}
	}
	return true
}

// Evaluate compares guess against answer and produces a verdict, handling
// duplicate letters correctly. Comparison is case-insensitive.
//
// Two passes over the guess: the first consumes every exact match from the
// answer's letter multiset, the second resolves the remaining positions to
// misplaced or absent. The first pass must fully complete before the second
// begins — otherwise a duplicate letter could be marked misplaced before its
// later exact match is seen.
func Evaluate(guess, answer string) (Verdict, error) {
	guess = strings.ToLower(guess)
	answer = strings.ToLower(answer)

	g := []rune(guess)
	a := []rune(answer)
	if len(g) != len(a) {
		return nil, apperrors.Validation("length mismatch")
	}

	remaining := make(map[rune]int, len(a))
	for _, r := range a {
		remaining[r]++
	}

	verdict := make(Verdict, len(g))

	// Pass 1: exact matches.
	for i, r := range g {
		if r == a[i] {
			verdict[i] = LetterVerdict{Letter: string(r), Status: StatusCorrect}
			remaining[r]--
		}
	}

	// Pass 2: misplaced or absent for everything left.
	for i, r := range g {
		if verdict[i].Status != "" {
			continue
		}
		if remaining[r] > 0 {
			verdict[i] = LetterVerdict{Letter: string(r), Status: StatusMisplaced}
			remaining[r]--
		} else {
			verdict[i] = LetterVerdict{Letter: string(r), Status: StatusAbsent}
		}
	}

	return verdict, nil
}
