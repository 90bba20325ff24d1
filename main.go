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

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"klinik-sentosa-server/internal/access"
	"klinik-sentosa-server/internal/config"
	"klinik-sentosa-server/internal/logger"
	"klinik-sentosa-server/internal/middleware"
	"klinik-sentosa-server/internal/models"
	"klinik-sentosa-server/internal/registration"
	"klinik-sentosa-server/internal/repository"
	"klinik-sentosa-server/internal/routes"
	"klinik-sentosa-server/internal/session"
	"klinik-sentosa-server/internal/staticdata"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "klinik",
		Short:        "Klinik Sentosa API server",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(assignRoleCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
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
		Short: "Create or update the database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			if err := models.Migrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			log.Info("migrations applied", zap.String("driver", cfg.Database.Driver))
			return nil
		},
	}
}

func assignRoleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assign-role",
		Short: "Give an identity its application role",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			roleName, _ := cmd.Flags().GetString("role")

			role, err := models.ParseRole(roleName)
			if err != nil {
				return err
			}

			_, log, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			ctx := cmd.Context()
			user, err := repository.NewUserRepository(db).FindByEmail(ctx, email)
			if err != nil {
				return fmt.Errorf("find identity %s: %w", email, err)
			}
			if _, err := repository.NewRoleRepository(db).AssignRole(ctx, user.ID, role); err != nil {
				return fmt.Errorf("assign role: %w", err)
			}
			log.Info("role assigned", zap.String("user_id", user.ID), zap.String("role", string(role)))
			return nil
		},
	}
	cmd.Flags().String("email", "", "Email of the identity")
	cmd.Flags().String("role", "", "One of admin_pendaftaran, dokter, pasien, apoteker, pembayaran")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("role")
	return cmd
}

// bootstrap loads configuration and opens the logger and database shared by
// every subcommand.
func bootstrap() (*config.Config, *zap.Logger, *gorm.DB, error) {
	// A missing .env is fine; the environment may already be set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, nil, nil, fmt.Errorf("load .env: %w", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, "klinik-sentosa")
	if err != nil {
		return nil, nil, nil, fmt.Errorf("build logger: %w", err)
	}

	db, err := models.InitDB(models.DatabaseConfig{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.DSN,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect database: %w", err)
	}
	return cfg, log, db, nil
}

func runServer() error {
	cfg, log, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	var store session.Store
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		if err := client.Ping(context.Background()).Err(); err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		store = session.NewRedisStore(client)
		log.Info("session store: redis", zap.String("addr", cfg.Redis.Addr))
	} else {
		store = session.NewMemoryStore()
		log.Warn("REDIS_ADDR not set, sessions are kept in memory")
	}

	sessions := session.NewManager(store, cfg.SessionSecret, cfg.SessionTTL(), log)
	resolver := access.NewResolver(
		repository.NewRoleRepository(db),
		repository.NewProfileRepository(db),
		log,
	)
	workflow := registration.NewWorkflow(repository.NewPatientRepository(db), log)
	fetcher := staticdata.NewFetcher(cfg.StaticDocument.URL, cfg.StaticDocument.Timeout, log)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	routes.SetupRoutes(router, routes.Dependencies{
		DB:       db,
		Config:   cfg,
		Logger:   log,
		Sessions: sessions,
		Resolver: resolver,
		Workflow: workflow,
		Fetcher:  fetcher,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Info("server stopped")
	return nil
}
