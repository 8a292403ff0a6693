package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nice_day_bot/internal/app"
	"nice_day_bot/internal/infra/config"
	idb "nice_day_bot/internal/infra/database"
	"nice_day_bot/internal/infra/logger"
	"nice_day_bot/internal/infra/refdata"
	"nice_day_bot/internal/infra/scheduler"
	"nice_day_bot/internal/infra/telegram"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

func main() {
	fmt.Println("Nice Day Bot starting...")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Could not load application configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg)
	mainLogger := logger.Component("main")
	mainLogger.WithFields(logrus.Fields{
		"log_level":   cfg.LogLevel,
		"environment": cfg.Environment,
		"admin_id":    cfg.AdminTelegramID,
		"timezone":    cfg.Timezone,
	}).Info("Configuration loaded.")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize Database Connection
	db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not connect to database")
	}
	defer db.Close()
	mainLogger.Info("Database connection established successfully.")

	if err := idb.EnsureSchema(ctx, db); err != nil {
		mainLogger.WithError(err).Fatal("Could not apply database schema")
	}

	// Initialize Repositories
	subscriberRepo := idb.NewPostgresSubscriberRepository(db)
	digestRepo := idb.NewPostgresDigestRepository(db)
	mainLogger.Info("Repositories initialized.")

	organs, err := refdata.LoadOrganSchedule()
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not load organ clock reference data")
	}

	// Initialize Telegram Bot
	pref := telebot.Settings{
		Token:  cfg.TelegramToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) { // Global error handler
			entry := logger.Component("telebot").WithError(err)
			if c != nil && c.Sender() != nil && c.Chat() != nil {
				entry = entry.WithFields(logrus.Fields{"text": c.Text(), "sender_id": c.Sender().ID, "chat_id": c.Chat().ID})
			}
			entry.Error("Telegram handler error")
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not create Telegram bot")
	}
	telegramClient := telegram.NewTelebotAdapter(bot)

	// Initialize Services
	subscriberService := app.NewSubscriberService(subscriberRepo, cfg.AdminTelegramID, cfg.Location, logger.Component("subscriber_service"))
	biorhythmService := app.NewBiorhythmService(subscriberRepo, cfg.Location, cfg.RangeDaysBefore, cfg.RangeDaysAfter, logger.Component("biorhythm_service"))
	digestService := app.NewDigestService(subscriberRepo, digestRepo, telegramClient, logger.Component("digest_service"))
	mainLogger.Info("Services initialized.")

	// Initialize DigestScheduler
	digestScheduler, err := scheduler.NewDigestScheduler(
		digestService,
		logger.Component("scheduler"),
		cfg.Location,
		cfg.CronSpecDailyDigest,
		cfg.CronSpecMonthlyOutlook,
	)
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not create digest scheduler")
	}
	digestScheduler.Start() // Start the cron jobs

	// Register Handlers
	handlerLogger := logger.Component("telegram")
	telegram.RegisterBotCommands(ctx, bot, subscriberService, handlerLogger)
	telegram.RegisterBiorhythmHandlers(ctx, bot, subscriberService, biorhythmService, organs, cfg.Location, handlerLogger)
	telegram.RegisterCallbackHandlers(ctx, bot, subscriberService, biorhythmService, handlerLogger)
	telegram.RegisterAdminHandlers(ctx, bot, subscriberService, digestService, biorhythmService, cfg.AdminTelegramID, handlerLogger)
	mainLogger.Info("Command handlers registered.")

	mainLogger.Info("Application setup complete. Bot and Scheduler are starting...")

	// Start bot in a goroutine so it doesn't block graceful shutdown handling
	go bot.Start()

	<-ctx.Done() // Block until a signal is received

	mainLogger.Info("Shutting down application...")
	digestScheduler.Stop()
	bot.Stop()
	// db.Close() is handled by defer
	mainLogger.Info("Application shut down gracefully.")
}
