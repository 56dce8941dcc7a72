package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/morph/pkg/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts morph as an MCP Server over Standard Input/Output.
Agents get the transform_config and get_result tools and the morph://results resource.
Logs go to stderr so they never corrupt the JSON-RPC stream.`,
	Run: func(cmd *cobra.Command, args []string) {
		a, err := newApp(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing morph: %v\n", err)
			os.Exit(1)
		}
		defer a.close()

		srv := mcp.NewServer(a.engine)

		a.logger.Info("starting morph MCP server (stdio)")
		if err := srv.ServeStdio(); err != nil {
			a.logger.Error("MCP server execution failed", "error", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("store-dir", "", "Directory for published results (default in-memory)")
	mcpCmd.Flags().String("schema", "", "Schema file every document must satisfy")
	mcpCmd.Flags().String("redis-addr", "", "Redis address for published results (default in-memory)")
}
