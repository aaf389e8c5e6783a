package server

import (
	"encoding/json"
	"fmt"

	"github.com/abhisek/mathwhiz/internal/problemgen"
)

// Number is an integer that may arrive as a JSON number or a numeric
// string. Coercion follows problemgen.ParseAnswer, so "42", 42 and 42.0
// are all 42.
type Number int

// Int returns n as an int.
func (n Number) Int() int {
	return int(n)
}

func (n *Number) UnmarshalJSON(b []byte) error {
	raw := string(b)
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
	}
	if raw == "null" {
		return fmt.Errorf("number expected, got null")
	}

	v, err := problemgen.ParseAnswer(raw)
	if err != nil {
		return fmt.Errorf("%q: %w", raw, err)
	}
	*n = Number(v)
	return nil
}
