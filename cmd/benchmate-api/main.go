package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"benchmate/internal/auth"
	"benchmate/internal/config"
	"benchmate/internal/db"
	"benchmate/internal/handlers"
	"benchmate/internal/mail"
	"benchmate/internal/otel"
	"benchmate/internal/otp"
	"benchmate/internal/queue"
	"benchmate/internal/resources"
	"benchmate/internal/storage"
	"benchmate/internal/token"
	"benchmate/internal/users"
	"benchmate/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	cleanup, err := otel.Init(ctx, version.Name, cfg.OTLPEndpoint)
	if err != nil {
		log.Fatal().Err(err).Msg("init otel")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := cleanup(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown otel")
		}
	}()

	database, err := db.Connect(ctx, cfg.DBDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}
	defer func() {
		if err := db.Close(database); err != nil {
			log.Error().Err(err).Msg("close database")
		}
	}()

	if err := db.Migrate(ctx, database); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	bus, err := queue.Connect(cfg.NATSURL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect queue")
	}
	defer bus.Close()

	var store storage.ObjectStore
	if cfg.S3Bucket != "" {
		s3Store, err := storage.NewS3Store(ctx, storage.S3Config{
			Endpoint:  cfg.S3Endpoint,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Region:    cfg.S3Region,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("init object store")
		}
		store = s3Store
	}

	tokens := token.NewManager([]byte(cfg.JWTSecret), cfg.TokenTTL)

	api, err := handlers.New(
		auth.NewService(database, tokens, otp.NewGenerator(cfg.OTPTTL), bus),
		users.NewService(database, bus),
		resources.NewService(database, store),
		tokens,
		handlers.Config{CookieMaxAge: cfg.CookieMaxAge},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("init api")
	}

	// With SMTP configured the email worker runs in-process; otherwise a
	// separate benchmate-worker instance drains the queue.
	if cfg.SMTPHost != "" {
		mailer, err := mail.NewSMTPMailer(mail.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.EmailFrom,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("init mailer")
		}
		go func() {
			if err := queue.NewWorker(bus, mailer).Run(ctx); err != nil {
				log.Error().Err(err).Msg("email worker")
			}
		}()
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.Routes(handlers.RouterOptions{AllowedOrigins: cfg.AllowedOrigins}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr).Msg("starting benchmate-api")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown server")
	}
}
