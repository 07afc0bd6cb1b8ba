// Command umtoctl is the operational CLI: user creation, secret generation
// and database backup/restore.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "umtoctl",
		Short:         "Operational tooling for the umto backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newCreateUserCmd(),
		newHashPasswordCmd(),
		newGenSecretsCmd(),
		newBackupCmd(),
		newRestoreCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
