// cmd/hudu-setup/secret.go
package main

import (
	"fmt"
	"strconv"

	"github.com/pankajbeniwal/hudu-setup/internal/secret"
	"github.com/spf13/cobra"
)

var secretCmd = &cobra.Command{
	Use:   "secret <hex|alnum> <length>",
	Short: "Print one random secret",
	Long: `Print one random secret from the operating system's secure random source.

  hex N     N random bytes as 2N lowercase hex characters
  alnum N   N characters from A-Z, a-z and 0-9`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"hex", "alnum"},
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid length %q", args[1])
		}
		s, err := generateSecret(secret.NewGenerator(), args[0], n)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), s)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(secretCmd)
}

func generateSecret(g *secret.Generator, kind string, n int) (string, error) {
	switch kind {
	case "hex":
		return g.Hex(n)
	case "alnum":
		return g.Alnum(n)
	}
	return "", fmt.Errorf("unknown secret kind %q (want hex or alnum)", kind)
}
