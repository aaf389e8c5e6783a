package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathwhiz/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the recorded LLM request log",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		repo := s.EventRepo()

		if !yes {
			events, err := repo.QueryLLMEvents(ctx, store.QueryOpts{})
			if err != nil {
				return fmt.Errorf("query events: %w", err)
			}
			if len(events) == 0 {
				fmt.Println("Nothing to reset.")
				return nil
			}
			fmt.Printf("Delete all %d recorded LLM events? [y/N] ", len(events))
			line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		n, err := repo.PurgeLLMEvents(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d events.\n", n)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
