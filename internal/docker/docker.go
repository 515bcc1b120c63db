// internal/docker/docker.go
package docker

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pankajbeniwal/hudu-setup/internal/envfile"
	"github.com/pankajbeniwal/hudu-setup/internal/executor"
)

// Versions reports what the preflight found. Compose is empty when neither
// the plugin nor the standalone binary is installed.
type Versions struct {
	Docker  string
	Compose string
	// Legacy is set when only docker-compose v1 is available.
	Legacy bool
}

// Check looks for docker and a compose implementation.
func Check(ctx context.Context, exec executor.Executor) (Versions, error) {
	var v Versions
	out, err := exec.Run(ctx, "docker --version")
	if err != nil {
		return v, fmt.Errorf("docker is not installed (see https://docs.docker.com/engine/install/): %w", err)
	}
	v.Docker = strings.TrimSpace(out)

	if out, err := exec.Run(ctx, "docker compose version"); err == nil {
		v.Compose = strings.TrimSpace(out)
		return v, nil
	}
	if out, err := exec.Run(ctx, "docker-compose --version"); err == nil {
		v.Compose = strings.TrimSpace(out)
		v.Legacy = true
		return v, nil
	}
	return v, fmt.Errorf("docker compose is not installed")
}

func composeCommand(v Versions, composePath, envPath string) string {
	bin := "docker compose"
	if v.Legacy {
		bin = "docker-compose"
	}
	cmd := fmt.Sprintf("%s -f %s", bin, envfile.Escape(composePath))
	if envPath != "" && filepath.Base(envPath) != ".env" {
		cmd += " --env-file " + envfile.Escape(envPath)
	}
	return cmd
}

func ComposeUp(ctx context.Context, exec executor.Executor, v Versions, composePath, envPath string) error {
	cmd := composeCommand(v, composePath, envPath)
	if _, err := exec.Run(ctx, cmd+" pull 2>&1"); err != nil {
		return fmt.Errorf("failed to pull images: %w", err)
	}
	if _, err := exec.Run(ctx, cmd+" up -d"); err != nil {
		return fmt.Errorf("failed to start containers: %w", err)
	}
	return nil
}

type ServiceStatus struct {
	Name   string
	Status string // "running" or "exited"
}

func ComposeStatus(ctx context.Context, exec executor.Executor, v Versions, composePath string) ([]ServiceStatus, error) {
	cmd := composeCommand(v, composePath, "") + " ps --format '{{.Name}} {{.State}}'"
	out, err := exec.Run(ctx, cmd)
	if err != nil {
		return nil, err
	}

	var statuses []ServiceStatus
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		parts := strings.Fields(line)
		if len(parts) >= 2 {
			statuses = append(statuses, ServiceStatus{Name: parts[0], Status: parts[1]})
		}
	}
	return statuses, nil
}
