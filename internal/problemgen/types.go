package problemgen

import "fmt"

// MaxOperand is the exclusive upper bound for generated operands.
const MaxOperand = 100

// Problem is a single addition problem shown to the learner.
// It is generated once per round and never mutated afterwards.
type Problem struct {
	Num1 int `json:"num1"`
	Num2 int `json:"num2"`
}

// Text renders the problem as it is displayed, e.g. "40 + 2".
func (p Problem) Text() string {
	return fmt.Sprintf("%d + %d", p.Num1, p.Num2)
}

// String implements fmt.Stringer.
func (p Problem) String() string {
	return p.Text()
}
