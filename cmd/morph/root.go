package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/morph/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "morph",
	Short: "morph rewrites configuration documents by value shape",
	Long: `morph reads a YAML or JSON configuration mapping and rewrites each entry
according to its shape: texts are re-cased or reversed, integers are
rewritten by position and long lists keep only their doubled numbers.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Settings file (optional)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
}
