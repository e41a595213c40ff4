// benchmate-worker drains the notification queue and delivers emails over
// SMTP. Run it standalone when the API is deployed without SMTP settings.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"benchmate/internal/config"
	"benchmate/internal/mail"
	"benchmate/internal/queue"
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
	if cfg.SMTPHost == "" {
		log.Fatal().Msg("SMTP_HOST is required for the worker")
	}

	bus, err := queue.Connect(cfg.NATSURL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect queue")
	}
	defer bus.Close()

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

	if err := queue.NewWorker(bus, mailer).Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("email worker")
	}
}
