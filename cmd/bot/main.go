package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/spicy-vs-sweet/internal/app"
	"github.com/aliskhannn/spicy-vs-sweet/internal/config"
	"github.com/aliskhannn/spicy-vs-sweet/internal/delivery/telegram"
	"github.com/aliskhannn/spicy-vs-sweet/internal/health"
	"github.com/aliskhannn/spicy-vs-sweet/internal/infra/postgres"
	"github.com/aliskhannn/spicy-vs-sweet/internal/logger"
	"github.com/aliskhannn/spicy-vs-sweet/internal/repository"
	"github.com/aliskhannn/spicy-vs-sweet/internal/service"
	"github.com/aliskhannn/spicy-vs-sweet/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	if err := run(cfg, lg); err != nil {
		lg.Fatal("bot stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, lg *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		return err
	}
	bot.Debug = cfg.Env == "local"
	lg.Info("authorized on telegram", zap.String("username", bot.Self.UserName))

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{Command: "question", Description: "Open a question (sweet or spicy)"},
		{Command: "answer", Description: "Answer the open question"},
		{Command: "close", Description: "Reveal the answer"},
		{Command: "score", Description: "Show the scoreboard"},
		{Command: "lang", Description: "Change the question language"},
		{Command: "reset", Description: "Reset the scoreboard"},
		{Command: "help", Description: "Help"},
	}
	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	// Initialize storage.
	dsn, err := cfg.DB.DSN()
	if err != nil {
		return err
	}
	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		return err
	}

	questions, err := repository.NewQuestionRepository(cfg.QuestionsPath)
	if err != nil {
		return err
	}
	lg.Info("question bank loaded", zap.Strings("locales", questions.Locales()))

	// Initialize the judge and services.
	fuzzy, err := app.NewFuzzyJudge(ctx, cfg, lg)
	if err != nil {
		return err
	}
	defer func() { _ = fuzzy.Close() }()

	retryOpts := cfg.Retry.Options()
	rooms := storage.NewRoomStorage()
	validator := service.NewAnswerValidator(fuzzy, retryOpts, lg)
	game := service.NewGameService(
		questions,
		rooms,
		validator,
		repository.NewVerdictStore(pool),
		retryOpts,
		cfg.DefaultLocale,
		lg,
	)

	// Health and metrics.
	if cfg.Metrics.Addr != "" {
		checks := fuzzy.Checks
		checks["postgres"] = pool
		srv := health.NewServer(cfg.Metrics.Addr, checks, lg)
		go func() {
			if err := srv.Start(); err != nil {
				lg.Error("health server failed", zap.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Stop(shutdownCtx)
		}()
	}

	handler := telegram.NewHandler(bot, lg, game, questions)

	janitor := service.NewRoomJanitor(
		game,
		rooms,
		cfg.Rooms.SweepSchedule,
		cfg.Rooms.QuestionTTL,
		cfg.Rooms.IdleTTL,
		lg,
	)
	janitor.SetNotifier(handler)
	go func() {
		if err := janitor.Start(ctx); err != nil {
			lg.Error("room janitor failed", zap.Error(err))
		}
	}()

	err = handler.Run(ctx)
	bot.StopReceivingUpdates()

	if errors.Is(err, context.Canceled) {
		lg.Info("shutdown signal received")
		return nil
	}
	return err
}
