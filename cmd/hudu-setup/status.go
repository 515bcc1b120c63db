// cmd/hudu-setup/status.go
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pankajbeniwal/hudu-setup/internal/compose"
	"github.com/pankajbeniwal/hudu-setup/internal/docker"
	"github.com/pankajbeniwal/hudu-setup/internal/envfile"
	"github.com/pankajbeniwal/hudu-setup/internal/executor"
	"github.com/pankajbeniwal/hudu-setup/internal/ui"
	"github.com/spf13/cobra"
)

var statusOutputFlag string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the containers of the Hudu compose stack",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return status(cmd.Context(), executor.NewLocalExecutor(), outputPath(statusOutputFlag), os.Stdout)
	},
}

func init() {
	statusCmd.Flags().StringVarP(&statusOutputFlag, "output", "o", "", "env file of the install (default $HUDU_SETUP_OUTPUT or .env)")
	rootCmd.AddCommand(statusCmd)
}

func status(ctx context.Context, exec executor.Executor, envPath string, w io.Writer) error {
	composePath := filepath.Join(filepath.Dir(envPath), compose.FileName)
	ok, err := exec.Exists(ctx, composePath)
	if err != nil {
		return err
	}
	if !ok {
		ui.Info("No " + compose.FileName + " next to " + envPath)
		return nil
	}

	v, err := docker.Check(ctx, exec)
	if err != nil {
		return err
	}
	statuses, err := docker.ComposeStatus(ctx, exec, v, composePath)
	if err != nil {
		return fmt.Errorf("failed to list containers: %w", err)
	}

	ui.Header("Hudu containers")
	if len(statuses) == 0 {
		ui.Info("No containers running; start them with: docker compose up -d")
		return nil
	}
	fmt.Fprintf(w, "\n  %-24s %s\n", "NAME", "STATUS")
	fmt.Fprintf(w, "  %-24s %s\n", "----", "------")
	for _, s := range statuses {
		fmt.Fprintf(w, "  %-24s %s\n", s.Name, s.Status)
	}
	fmt.Fprintln(w)

	if data, err := exec.ReadFile(ctx, envPath); err == nil {
		if entries, err := envfile.Parse(data); err == nil {
			if host, ok := envfile.Lookup(entries, "DOMAIN"); ok && host != "" {
				ui.Result("https://" + host)
			}
		}
	}
	return nil
}
