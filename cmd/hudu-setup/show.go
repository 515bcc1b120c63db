// cmd/hudu-setup/show.go
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pankajbeniwal/hudu-setup/internal/envfile"
	"github.com/pankajbeniwal/hudu-setup/internal/executor"
	"github.com/pankajbeniwal/hudu-setup/internal/hudu"
	"github.com/pankajbeniwal/hudu-setup/internal/ui"
	"github.com/spf13/cobra"
)

var (
	showOutputFlag string
	revealFlag     bool
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the settings of an existing env file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := outputPath(showOutputFlag)
		if err := show(cmd.Context(), executor.NewLocalExecutor(), path, os.Stdout, revealFlag); err != nil {
			return err
		}
		if info, err := os.Stat(path); err == nil && info.Mode().Perm()&0077 != 0 {
			ui.Warn(fmt.Sprintf("%s is readable by other users; run: chmod 600 %s", path, path))
		}
		return nil
	},
}

func init() {
	showCmd.Flags().StringVarP(&showOutputFlag, "output", "o", "", "env file to read (default $HUDU_SETUP_OUTPUT or .env)")
	showCmd.Flags().BoolVar(&revealFlag, "reveal", false, "print secret values instead of masking them")
	rootCmd.AddCommand(showCmd)
}

func show(ctx context.Context, exec executor.Executor, path string, w io.Writer, reveal bool) error {
	data, err := exec.ReadFile(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	entries, err := envfile.Parse(data)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	ui.Header(path)
	fmt.Fprintln(w)
	for _, e := range entries {
		fmt.Fprintf(w, "  %-26s %s\n", e.Key, displayValue(e, reveal))
	}
	fmt.Fprintln(w)

	for _, key := range hudu.Keys {
		if _, ok := envfile.Lookup(entries, key); !ok {
			ui.Warn("Missing " + key)
		}
	}
	return nil
}

func displayValue(e envfile.Entry, reveal bool) string {
	switch {
	case e.Value == "":
		return "(empty)"
	case hudu.IsSecret(e.Key) && !reveal:
		return fmt.Sprintf("******** (%d chars)", len(e.Value))
	default:
		return e.Value
	}
}
