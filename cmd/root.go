package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/frontendschool-official/interview-engine/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "interview-engine",
	Short: "AI interview simulation engine",
	Long:  "interview-engine generates interview problems from versioned prompt templates and drives multi-round mock interview sessions.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides INTENGINE_DB env var)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(roundCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then INTENGINE_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

func openStore(cmd *cobra.Command) (*store.SQLiteStore, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}
