package main

import (
	"fmt"
	"os"
	_ "time/tzdata"

	"github.com/spf13/cobra"

	"github.com/clinicadev/clinic-api/internal/audit"
	"github.com/clinicadev/clinic-api/internal/config"
	dbpkg "github.com/clinicadev/clinic-api/internal/db"
	"github.com/clinicadev/clinic-api/internal/infra/repository"
	"github.com/clinicadev/clinic-api/internal/logger"
	"github.com/clinicadev/clinic-api/internal/security"
	useruc "github.com/clinicadev/clinic-api/internal/usecase/user"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "clinic-api",
		Short:        "Clinic scheduling API",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(createAdminCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), config.Load(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.memory, "memory", false, "Keep all records in process memory instead of Postgres")
	cmd.Flags().StringVar(&opts.adminUsername, "admin-username", "", "Admin account to seed in memory mode")
	cmd.Flags().StringVar(&opts.adminPassword, "admin-password", "", "Password for the seeded admin")
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			log := logger.New(os.Stdout, cfg.LogLevel)

			db, err := dbpkg.NewDB(cfg)
			if err != nil {
				return err
			}
			defer dbpkg.Close(db)

			if err := dbpkg.Migrate(db); err != nil {
				return err
			}
			log.Info().Msg("migrations applied")
			return nil
		},
	}
}

func createAdminCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			log := logger.New(os.Stdout, cfg.LogLevel)

			db, err := dbpkg.NewDB(cfg)
			if err != nil {
				return err
			}
			defer dbpkg.Close(db)

			dispatcher := audit.NewDispatcher(audit.New(db), log, 0)
			defer dispatcher.Close()

			u, err := useruc.NewCreateUser(repository.NewUserGormRepository(db), security.HashPassword, dispatcher).
				Bootstrap(cmd.Context(), username, password)
			if err != nil {
				return fmt.Errorf("create admin: %w", err)
			}

			log.Info().Uint("user_id", u.ID).Str("username", u.Username).Msg("admin created")
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Login name")
	cmd.Flags().StringVar(&password, "password", "", "Password (at least 6 characters)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
