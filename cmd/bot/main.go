package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kiruha311/micro-learning-bot/internal/config"
	"github.com/kiruha311/micro-learning-bot/internal/delivery/status"
	"github.com/kiruha311/micro-learning-bot/internal/delivery/telegram"
	"github.com/kiruha311/micro-learning-bot/internal/domain/entities"
	"github.com/kiruha311/micro-learning-bot/internal/logger"
	"github.com/kiruha311/micro-learning-bot/internal/service"
	"github.com/kiruha311/micro-learning-bot/internal/wiki"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zapLogger, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zapLogger.Sync() }()

	if err := run(cfg, zapLogger); err != nil {
		zapLogger.Fatal("bot stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, zapLogger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Validated by config.Load.
	location, _ := cfg.Schedule.Location()
	cronSpec, _ := cfg.Schedule.CronSpec()
	calendar := entities.NewCalendar(location)

	st, err := openStore(ctx, cfg, calendar, zapLogger)
	if err != nil {
		return err
	}
	defer st.close()

	source := wiki.NewSource(wiki.Config{
		RandomURL:    cfg.Wiki.RandomURL,
		UserAgent:    cfg.Wiki.UserAgent,
		Timeout:      cfg.Wiki.Timeout,
		SummaryLimit: cfg.Wiki.SummaryLimit,
	}, zapLogger.Named("wiki"))

	userService := service.NewUserService(st.users, st.actions, zapLogger)
	historyService := service.NewHistoryService(st.sent, cfg.History.Limit)
	deliveryService := service.NewDeliveryService(st.sent, source, zapLogger.Named("delivery"))

	bot, err := telegram.NewBot(cfg.Telegram.Token, cfg.Telegram.RatePerSecond, cfg.Telegram.Debug, zapLogger)
	if err != nil {
		return err
	}
	if err := bot.RegisterCommands(); err != nil {
		zapLogger.Warn("failed to set bot commands", zap.Error(err))
	}

	deliveryService.SetNotifier(telegram.NewNotifier(bot))

	handler := telegram.NewHandler(
		bot,
		zapLogger.Named("telegram"),
		userService,
		historyService,
		deliveryService,
		cfg.Schedule.DailyAt,
	)

	broadcaster := service.NewBroadcastService(
		st.users,
		deliveryService,
		cronSpec,
		location,
		cfg.Broadcast.Workers,
		zapLogger.Named("broadcast"),
	)

	statusServer := status.NewServer(cfg.HTTP.Addr, status.NewHandler(st.pinger, st.overview, zapLogger.Named("status")))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		updates := bot.Updates()
		go func() {
			<-gctx.Done()
			bot.StopUpdates()
		}()
		return handler.Run(gctx, updates)
	})
	g.Go(func() error { return broadcaster.Run(gctx) })
	g.Go(func() error { return statusServer.Run(gctx) })

	zapLogger.Info("bot started",
		zap.String("env", cfg.Env),
		zap.String("driver", cfg.DB.Driver),
		zap.String("daily_at", cfg.Schedule.DailyAt),
		zap.String("timezone", location.String()),
	)

	err = g.Wait()
	zapLogger.Info("shutdown complete")

	return err
}
