package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/morph/pkg/domain"
	"github.com/aretw0/morph/pkg/value"
	"github.com/aretw0/morph/pkg/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-transform a document every time it changes",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := runWatch(ctx, cmd, args[0], os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Watch failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().String("store-dir", "", "Directory for published results (default in-memory)")
	watchCmd.Flags().String("format", "", "Output format: yaml or json")
	watchCmd.Flags().String("schema", "", "Schema file the document must satisfy")
	watchCmd.Flags().String("publish", "", "Store every result under this name")
	watchCmd.Flags().Bool("diff", false, "After the first result, print only changed entries (removed ones as null)")
}

func runWatch(ctx context.Context, cmd *cobra.Command, path string, stdout io.Writer) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	name, _ := cmd.Flags().GetString("publish")
	diffOnly, _ := cmd.Flags().GetBool("diff")
	format, err := a.settings.OutputFormat()
	if err != nil {
		return err
	}

	// The watcher invokes the callback from one goroutine at a time.
	var previous value.Map

	onChange := func(doc value.Map) {
		out, err := a.engine.Transform(ctx, doc)
		if err != nil {
			a.logger.Error("document rejected", "path", path, "error", err)
			return
		}
		if name != "" {
			if err := a.engine.Publish(ctx, name, out); err != nil {
				a.logger.Error("publish failed", "name", name, "error", err)
			}
		}

		printed := out
		if diffOnly && previous != nil {
			d := domain.Diff(name, previous, out)
			if d.IsEmpty() {
				a.logger.Info("document changed without affecting the result", "path", path)
				previous = out
				return
			}
			printed = d.Changes
		}
		previous = out

		fmt.Fprintln(stdout, "---")
		if err := writeDocument(stdout, printed, format); err != nil {
			a.logger.Error("write failed", "error", err)
		}
	}

	w, err := watch.NewWatcher(path, onChange,
		watch.WithLogger(a.logger),
		watch.WithErrorCallback(func(err error) {
			a.logger.Warn("document not reloaded", "path", path, "error", err)
		}),
	)
	if err != nil {
		return err
	}

	if err := w.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	return w.Stop()
}
