package problemgen

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// EmptyAnswerPrompt is shown when the learner submits an empty answer.
const EmptyAnswerPrompt = "Please enter your answer."

var (
	// ErrEmptyAnswer is returned when the learner submits nothing.
	ErrEmptyAnswer = errors.New("empty answer")

	// ErrNotANumber is returned when the input cannot be coerced to a number.
	ErrNotANumber = errors.New("answer must be a number")
)

// ParseAnswer coerces the learner's typed answer into an integer.
//
// Coercion rules:
// - Whitespace is trimmed
// - An optional leading sign is accepted ("-3", "+7")
// - Integral decimals are accepted ("42.0" is 42)
//
// No range checks are applied; a wildly wrong sum is still a valid answer
// for the verifier to judge.
func ParseAnswer(input string) (int, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, ErrEmptyAnswer
	}

	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrNotANumber
	}
	// Beyond 2^53 a float64 no longer represents every integer exactly.
	if f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, ErrNotANumber
	}
	return int(f), nil
}
