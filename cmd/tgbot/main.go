package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"scartix/internal/config"
	"scartix/internal/logging"
	"scartix/internal/notify"
	"scartix/internal/repo"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.Log.Level, cfg.Log.Format)
	if !cfg.Telegram.Enabled() {
		log.Fatal().Msg("TOKEN_BOT or ADMIN_PEER_ID missing")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db, dialect, err := repo.Open(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()

	bot := &notify.Bot{
		Client:      notify.NewClient(cfg.Telegram.BotToken),
		AdminChatID: cfg.Telegram.AdminChatID,
		Repo:        repo.New(db, dialect),
	}
	log.Info().Int64("admin_chat", cfg.Telegram.AdminChatID).Msg("support bot started")
	if err := bot.Run(ctx); err != nil {
		log.Error().Err(err).Msg("bot stopped")
	}
	log.Info().Msg("support bot stopped")
}
