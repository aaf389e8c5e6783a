package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathwhiz/internal/problemgen"
)

var problemCmd = &cobra.Command{
	Use:   "problem",
	Short: "Print random addition problems",
	RunE: func(cmd *cobra.Command, args []string) error {
		n, _ := cmd.Flags().GetInt("count")
		asJSON, _ := cmd.Flags().GetBool("json")
		if n < 1 {
			return fmt.Errorf("count must be at least 1, got %d", n)
		}

		gen := newGenerator(cmd)
		problems := make([]problemgen.Problem, n)
		for i := range problems {
			problems[i] = gen.Generate()
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(problems)
		}
		for _, p := range problems {
			fmt.Printf("%s = ?\n", p.Text())
		}
		return nil
	},
}

func init() {
	problemCmd.Flags().IntP("count", "n", 1, "Number of problems to print")
	problemCmd.Flags().Uint64("seed", 0, "Seed the problem generator (0 = random)")
	problemCmd.Flags().Bool("json", false, "Print problems as JSON")
}
