package main

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"umto/internal/config"
)

const backupDir = "backups"

func newBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Create a database backup with pg_dump",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "schema",
			Short: "Back up the schema only (no data)",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runBackup("schema", true)
			},
		},
		&cobra.Command{
			Use:   "full",
			Short: "Back up schema and data",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runBackup("full", false)
			},
		},
	)

	return cmd
}

func runBackup(kind string, schemaOnly bool) error {
	cfg := config.Load()

	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return fmt.Errorf("create backup directory: %w", err)
	}

	timestamp := time.Now().Format("02012006_150405")
	file := filepath.Join(backupDir, fmt.Sprintf("%s_backup_%s.sql", kind, timestamp))

	dumpArgs := []string{
		cfg.DatabaseDSN,
		"--no-owner",
		"--no-privileges",
		"--inserts",
		"--clean",
		"--if-exists",
	}
	if schemaOnly {
		dumpArgs = append(dumpArgs, "--schema-only")
	}

	fmt.Printf("Creating %s backup: %s\n", kind, file)

	out, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("create backup file: %w", err)
	}
	defer out.Close()

	header := fmt.Sprintf("--\n-- PostgreSQL database %s backup\n-- Generated on: %s\n--\n\n",
		kind, time.Now().Format("2006-01-02 15:04:05"))
	if _, err := out.WriteString(header); err != nil {
		return err
	}

	dump := exec.Command("pg_dump", dumpArgs...)
	dump.Stdout = out
	dump.Stderr = os.Stderr
	if err := dump.Run(); err != nil {
		os.Remove(file)
		return fmt.Errorf("pg_dump: %w (is the PostgreSQL client installed?)", err)
	}

	info, err := os.Stat(file)
	if err != nil {
		return err
	}
	fmt.Printf("Backup created successfully: %s (%.1f KB)\n", file, float64(info.Size())/1024)
	return nil
}

func newRestoreCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "restore <backup-file>",
		Short: "Restore the database from a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := args[0]
			if _, err := os.Stat(file); err != nil {
				return fmt.Errorf("backup file %q not found", file)
			}

			if !force {
				fmt.Print("This will overwrite the current database. Continue? (y/N): ")
				reader := bufio.NewReader(os.Stdin)
				answer, _ := reader.ReadString('\n')
				if strings.ToLower(strings.TrimSpace(answer)) != "y" {
					fmt.Println("Restore cancelled.")
					return nil
				}
			}

			cfg := config.Load()

			fmt.Printf("Restoring database from: %s\n", file)
			restore := exec.Command("psql", cfg.DatabaseDSN, "-v", "ON_ERROR_STOP=1", "-f", file)
			restore.Stdout = os.Stdout
			restore.Stderr = os.Stderr
			if err := restore.Run(); err != nil {
				return fmt.Errorf("psql: %w (is the PostgreSQL client installed?)", err)
			}

			fmt.Println("Database restored successfully!")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "skip the confirmation prompt")
	return cmd
}
