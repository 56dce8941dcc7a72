package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/morph/internal/presentation/tui"
	"github.com/aretw0/morph/pkg/codec"
	"github.com/aretw0/morph/pkg/value"
)

var transformCmd = &cobra.Command{
	Use:   "transform [file]",
	Short: "Transform a configuration document",
	Long: `Reads a YAML or JSON mapping from a file (or stdin when the file is omitted
or "-") and writes the transformed mapping to stdout.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runTransform(cmd, args, os.Stdin, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Transform failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(transformCmd)

	transformCmd.Flags().String("store-dir", "", "Directory for published results (default in-memory)")
	transformCmd.Flags().String("format", "", "Output format: yaml or json")
	transformCmd.Flags().String("input-format", "", "Input format when reading stdin (default yaml)")
	transformCmd.Flags().String("schema", "", "Schema file the input must satisfy")
	transformCmd.Flags().String("publish", "", "Store the result under this name")
	transformCmd.Flags().String("redis-addr", "", "Redis address for --publish (default in-memory)")
	transformCmd.Flags().Bool("table", false, "Print a before/after table instead of the document")
}

func runTransform(cmd *cobra.Command, args []string, stdin io.Reader, stdout io.Writer) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	format, err := a.settings.OutputFormat()
	if err != nil {
		return err
	}

	in, err := readInput(cmd, args, stdin)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	out, err := a.engine.Transform(ctx, in)
	if err != nil {
		return err
	}

	// Nothing is published unless it can also be printed.
	table, _ := cmd.Flags().GetBool("table")
	var doc []byte
	if !table {
		if doc, err = codec.Encode(out, format); err != nil {
			return err
		}
	}

	if name, _ := cmd.Flags().GetString("publish"); name != "" {
		if err := a.engine.Publish(ctx, name, out); err != nil {
			return err
		}
		a.logger.Info("result published", "name", name)
	}

	if table {
		return tui.WriteMarkdown(stdout, tui.ResultTable(in, out))
	}
	_, err = stdout.Write(doc)
	return err
}

func readInput(cmd *cobra.Command, args []string, stdin io.Reader) (value.Map, error) {
	if len(args) > 0 && args[0] != "-" {
		return codec.LoadFile(args[0])
	}

	format := codec.FormatYAML
	if name, _ := cmd.Flags().GetString("input-format"); name != "" {
		f, err := codec.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		format = f
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return codec.Decode(data, format)
}

func writeDocument(w io.Writer, m value.Map, format codec.Format) error {
	data, err := codec.Encode(m, format)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
