package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/mathwhiz/internal/store"
)

const defaultEnvFile = ".env"

var rootCmd = &cobra.Command{
	Use:   "mathwhiz",
	Short: "Addition practice checked by an AI tutor",
	Long: "MathWhiz is a terminal addition drill. Each answer is checked by a generative model,\n" +
		"which also explains how to solve the problems you get wrong.",
	SilenceUsage:      true,
	PersistentPreRunE: loadEnvFile,
	RunE:              runApp,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MATHWHIZ_DB env var)")
	rootCmd.PersistentFlags().String("env-file", defaultEnvFile, "Load environment variables from this file")
	addPlayFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(problemCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadEnvFile loads the --env-file into the environment without overriding
// variables that are already set. A missing default .env is not an error.
func loadEnvFile(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("env-file")
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("env-file") {
		return nil
	}
	return fmt.Errorf("load env file %s: %w", path, err)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then MATHWHIZ_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the audit database selected by resolveDBPath.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
