package practice

import (
	"github.com/abhisek/mathwhiz/internal/round"
	"github.com/abhisek/mathwhiz/internal/verify"
)

// verifiedMsg carries a verification outcome back to the screen.
type verifiedMsg struct {
	Ticket round.Ticket
	Result *verify.Result
	Err    error
}
