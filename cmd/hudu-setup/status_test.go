// cmd/hudu-setup/status_test.go
package main

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/pankajbeniwal/hudu-setup/internal/executor"
	"github.com/pankajbeniwal/hudu-setup/internal/ui"
)

func TestStatus(t *testing.T) {
	var messages bytes.Buffer
	prevOut := ui.Out
	ui.Out = &messages
	t.Cleanup(func() { ui.Out = prevOut })

	mock := executor.NewMockExecutor()
	mock.Files["/srv/hudu/.env"] = []byte("DOMAIN='hudu.example.com'\n")
	mock.Files["/srv/hudu/docker-compose.yml"] = []byte("services: {}\n")
	mock.RunOutputs["docker --version"] = "Docker version 27.0.1"
	mock.RunOutputs["docker compose version"] = "Docker Compose version v2.29.0"
	mock.RunOutputs["docker compose -f '/srv/hudu/docker-compose.yml' ps --format '{{.Name}} {{.State}}'"] = "hudu-app-1 running\nhudu-db-1 running\n"

	var out bytes.Buffer
	if err := status(context.Background(), mock, "/srv/hudu/.env", &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "hudu-app-1") || !strings.Contains(out.String(), "running") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
	if !strings.Contains(messages.String(), "https://hudu.example.com") {
		t.Fatalf("expected URL, got:\n%s", messages.String())
	}
}

func TestStatus_NoComposeFile(t *testing.T) {
	prevOut := ui.Out
	ui.Out = io.Discard
	t.Cleanup(func() { ui.Out = prevOut })

	mock := executor.NewMockExecutor()
	if err := status(context.Background(), mock, ".env", io.Discard); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mock.Calls) != 1 {
		t.Fatalf("expected only an existence check, got %v", mock.Calls)
	}
}
