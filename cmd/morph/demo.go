package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/morph/internal/demo"
	"github.com/aretw0/morph/internal/presentation/tui"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Walk through users and a sample transformation",
	Run: func(cmd *cobra.Command, args []string) {
		a, err := newApp(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing morph: %v\n", err)
			os.Exit(1)
		}
		defer a.close()

		if tui.IsTerminal(os.Stdout) {
			tui.PrintBanner(os.Stdout)
		}

		if err := demo.Run(context.Background(), os.Stdout, a.engine); err != nil {
			fmt.Fprintf(os.Stderr, "Demo failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}
