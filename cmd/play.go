package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathwhiz/internal/app"
	"github.com/abhisek/mathwhiz/internal/llm"
	"github.com/abhisek/mathwhiz/internal/problemgen"
	"github.com/abhisek/mathwhiz/internal/store"
	"github.com/abhisek/mathwhiz/internal/verify"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Practice addition in the terminal",
	RunE:  runApp,
}

func init() {
	addPlayFlags(playCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().Uint64("seed", 0, "Seed the problem generator for a repeatable sequence (0 = random)")
	cmd.Flags().Bool("skip-welcome", false, "Start directly at the practice screen")
}

// runApp opens the store, builds the verifier, and launches the TUI.
func runApp(cmd *cobra.Command, _ []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	verifier, err := newVerifier(cmd.Context(), st)
	if err != nil {
		return err
	}

	skip, _ := cmd.Flags().GetBool("skip-welcome")
	return app.Run(app.Options{
		Generator:   newGenerator(cmd),
		Verifier:    verifier,
		ModelID:     verifier.ModelID(),
		SkipWelcome: skip,
	})
}

// newVerifier builds the configured LLM provider, logging every call to
// the store, and wraps it in a verification service.
func newVerifier(ctx context.Context, st *store.Store) (*verify.Service, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
	if err != nil {
		return nil, fmt.Errorf("LLM provider not configured (set GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY or OPENROUTER_API_KEY): %w", err)
	}
	return verify.NewService(provider, verify.DefaultConfig()), nil
}

func newGenerator(cmd *cobra.Command) problemgen.Generator {
	if seed, _ := cmd.Flags().GetUint64("seed"); seed != 0 {
		return problemgen.NewSeeded(seed)
	}
	return problemgen.NewRandom()
}
