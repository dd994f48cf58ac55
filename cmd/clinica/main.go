package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/dougladias/Clinica-vida-plena-sub000/internal/config"
	"github.com/dougladias/Clinica-vida-plena-sub000/internal/database"
	"github.com/dougladias/Clinica-vida-plena-sub000/internal/routes"
	"github.com/dougladias/Clinica-vida-plena-sub000/internal/services"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinica",
		Short: "Clínica Vida Plena API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(userCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	return logger.Level(level)
}

// setup loads the configuration and opens the database.
func setup() (*config.Config, zerolog.Logger, *gorm.DB, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, zerolog.Nop(), nil, fmt.Errorf("load config: %w", err)
	}
	logger := newLogger(cfg)

	db, err := database.Open(cfg, logger)
	if err != nil {
		return nil, logger, nil, err
	}
	return cfg, logger, db, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, db, err := setup()
			if err != nil {
				return err
			}
			defer database.Close(db)

			if err := database.Migrate(cmd.Context(), db); err != nil {
				return err
			}
			logger.Info().Msg("migrations applied")
			return nil
		},
	}
}

func userCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage dashboard users",
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			role, _ := cmd.Flags().GetString("role")

			_, _, db, err := setup()
			if err != nil {
				return err
			}
			defer database.Close(db)

			user, err := services.NewUserService(db).Create(cmd.Context(), services.UserInput{
				Name: name, Email: email, Password: password, Role: role,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (%s)\n", user.Email, user.ID)
			return nil
		},
	}
	createCmd.Flags().String("name", "", "User name")
	createCmd.Flags().String("email", "", "User email")
	createCmd.Flags().String("password", "", "User password")
	createCmd.Flags().String("role", "admin", "User role")
	_ = createCmd.MarkFlagRequired("email")
	_ = createCmd.MarkFlagRequired("password")
	cmd.AddCommand(createCmd)

	return cmd
}

func runServer() error {
	cfg, logger, db, err := setup()
	if err != nil {
		if cfg != nil {
			logger.Error().Err(err).Msg("failed to connect to database")
		}
		return err
	}
	defer database.Close(db)

	if cfg.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		err := database.Migrate(ctx, db)
		cancel()
		if err != nil {
			logger.Error().Err(err).Msg("failed to migrate database")
			return err
		}
		logger.Info().Msg("database schema up to date")
	}

	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.ListenPort,
		Handler:           routes.Setup(cfg, db, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info().Bool("auth_required", cfg.AuthRequired).Msg("routes ready")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	return serve(srv, quit, logger, 30*time.Second)
}

// serve runs srv until it fails or a signal arrives on quit, then drains
// in-flight requests for at most drain.
func serve(srv *http.Server, quit <-chan os.Signal, logger zerolog.Logger, drain time.Duration) error {
	serveErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		logger.Error().Err(err).Msg("server error")
		return err
	case <-quit:
	}

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), drain)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
