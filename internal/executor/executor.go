// internal/executor/executor.go
package executor

import (
	"context"
	"os"
)

// Executor runs shell commands and moves files on the machine being set up.
type Executor interface {
	Run(ctx context.Context, cmd string) (string, error)
	WriteFile(ctx context.Context, path string, content []byte, mode os.FileMode) error
	ReadFile(ctx context.Context, path string) ([]byte, error)
	Exists(ctx context.Context, path string) (bool, error)
}
