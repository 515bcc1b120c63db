// cmd/hudu-setup/main.go
package main

import (
	"os"

	"github.com/pankajbeniwal/hudu-setup/internal/ui"
)

var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		ui.Error(err.Error())
		os.Exit(1)
	}
}
