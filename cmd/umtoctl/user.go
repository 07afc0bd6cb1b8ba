package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"umto/internal/auth"
	"umto/internal/config"
	"umto/internal/db"
	"umto/internal/repository"
	"umto/internal/service"
)

func newCreateUserCmd() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a new user directly in the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			gormDB, err := db.NewPostgres(cfg.DatabaseDSN)
			if err != nil {
				return err
			}
			defer db.Close(gormDB)

			hasher := auth.NewHasher(cfg.PasswordSalt)
			codec := auth.NewTokenCodec(cfg.JWTSecret)
			authSvc := service.NewAuthService(
				repository.NewUserRepository(gormDB),
				repository.NewTokenRepository(gormDB),
				hasher,
				codec,
			)

			user, err := authSvc.Register(context.Background(), name, email, password)
			if err != nil {
				return fmt.Errorf("create user: %w", err)
			}

			fmt.Printf("User created successfully with ID: %d\n", user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "full name of the new user")
	cmd.Flags().StringVar(&email, "email", "", "email of the new user")
	cmd.Flags().StringVar(&password, "password", "", "password of the new user")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")

	return cmd
}

func newHashPasswordCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Print the salted hash of a password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				return fmt.Errorf("password cannot be empty")
			}
			cfg := config.Load()
			hash, err := auth.NewHasher(cfg.PasswordSalt).Hash(password)
			if err != nil {
				return err
			}
			fmt.Printf("pwd_hash: %q\n", hash)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "password to hash")
	return cmd
}

func newGenSecretsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gen-secrets",
		Short: "Generate fresh values for the secret environment variables",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("JWT_SECRET_KEY=%s\n", randomHex(32))
			fmt.Printf("PWD_SALT=%s\n", randomHex(16))
			return nil
		},
	}
}

func randomHex(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
