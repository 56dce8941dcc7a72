package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/morph"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of morph",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("morph version %s\n", morph.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
