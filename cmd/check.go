package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathwhiz/internal/problemgen"
	"github.com/abhisek/mathwhiz/internal/round"
	"github.com/abhisek/mathwhiz/internal/verify"
)

var checkCmd = &cobra.Command{
	Use:   "check NUM1 NUM2 SUM",
	Short: "Ask the model to check one addition",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		var nums [3]int
		for i, arg := range args {
			n, err := problemgen.ParseAnswer(arg)
			if err != nil {
				return fmt.Errorf("argument %d (%q): %w", i+1, arg, err)
			}
			nums[i] = n
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		verifier, err := newVerifier(cmd.Context(), st)
		if err != nil {
			return err
		}

		a := verify.Attempt{Num1: nums[0], Num2: nums[1], UserSum: nums[2]}
		res, err := verifier.Verify(cmd.Context(), a)
		if err != nil {
			fmt.Fprintln(os.Stderr, round.FailureNotice.Title)
			fmt.Fprintln(os.Stderr, round.FailureNotice.Description)
			return err
		}

		fmt.Print(formatResult(a, res))
		return nil
	},
}

// formatResult renders a verification result the way the practice screen
// words it.
func formatResult(a verify.Attempt, res *verify.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d + %d = %d\n\n", a.Num1, a.Num2, a.UserSum)
	if res.IsCorrect {
		b.WriteString("✓ Correct!\nGreat job! You got the right answer.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "✗ Not quite...\nThe correct answer is %d.\n", res.CorrectSum)
	if res.Explanation != "" {
		fmt.Fprintf(&b, "\nHere's how to solve it:\n%s\n", res.Explanation)
	}
	return b.String()
}
