package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"catalog/config"
	"catalog/internal/database"
	"catalog/internal/email"
	"catalog/internal/handler"
	"catalog/internal/logger"
	"catalog/internal/middleware"
	"catalog/internal/router"
	"catalog/internal/service"
	"catalog/internal/ws"
	"catalog/pkg/cloudinary"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var migrate bool
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(migrate)
		},
	}
	serve.Flags().BoolVar(&migrate, "migrate", true, "Run schema migrations before serving")

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Product catalog and enquiry API",
		RunE:  serve.RunE,
	}
	cmd.Flags().AddFlagSet(serve.Flags())
	cmd.AddCommand(serve, migrateCmd(), hashPasswordCmd())
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if err := cfg.Validate(); err != nil {
				return err
			}
			access, err := database.Open(&cfg.Database)
			if err != nil {
				return err
			}
			defer access.Close()
			if err := database.AutoMigrate(access.Admin); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
		Long:  "Print a bcrypt hash for ADMIN_PASSWORD_HASH. Reads the password from stdin when no argument is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}
			if password == "" {
				return errors.New("password must not be empty")
			}
			hash, err := service.HashPassword(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

func runServe(migrate bool) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}
	log, err := logger.New(cfg.Server.Env, cfg.Log)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	access, err := database.Open(&cfg.Database)
	if err != nil {
		return err
	}
	defer access.Close()
	if migrate {
		if err := database.AutoMigrate(access.Admin); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	deps := router.Deps{
		Config:         cfg,
		DB:             access,
		Log:            log,
		Hub:            ws.NewHub(),
		EnquiryLimiter: middleware.NewInMemoryRateLimiter(cfg.RateLimit.EnquiryLimit, cfg.RateLimit.EnquiryWindow),
	}
	defer deps.EnquiryLimiter.Stop()

	// Interface fields stay nil unless the backing service is configured.
	if up := newUploader(cfg, log); up != nil {
		deps.Uploader = up
	}
	if m := email.New(cfg.SMTP); m != nil {
		deps.Alerter = m
		log.Info("enquiry e-mail alerts enabled", zap.Strings("to", cfg.SMTP.NotifyTo))
	} else {
		log.Info("enquiry e-mail alerts disabled: set SMTP_HOST and SMTP_NOTIFY_TO to enable")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.Setup(deps),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Server.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}

func newUploader(cfg *config.Config, log *zap.Logger) handler.Uploader {
	client, err := cloudinary.NewClientFromParams(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
	if err != nil {
		log.Warn("image uploads disabled", zap.Error(err))
		return nil
	}
	return client
}
