package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/kiruha311/micro-learning-bot/internal/domain/entities"
	"github.com/kiruha311/micro-learning-bot/internal/logger"
)

// BroadcastReport summarizes one daily broadcast.
type BroadcastReport struct {
	Total      int
	Delivered  int
	Skipped    int
	SendFailed int
	Failed     int
}

func (r *BroadcastReport) add(status entities.DeliveryStatus) {
	switch status {
	case entities.StatusDelivered:
		r.Delivered++
	case entities.StatusSkippedAlreadySent:
		r.Skipped++
	case entities.StatusSendFailed:
		r.SendFailed++
	default:
		r.Failed++
	}
}

// BroadcastService sends the daily article to every active subscriber.
type BroadcastService struct {
	userRepo  UserRepository
	deliverer Deliverer
	spec      string
	location  *time.Location
	workers   int
	logger    *zap.Logger
}

// NewBroadcastService creates a broadcast service firing on the given
// five-field cron spec in the given timezone.
func NewBroadcastService(
	userRepo UserRepository,
	deliverer Deliverer,
	spec string,
	location *time.Location,
	workers int,
	logger *zap.Logger,
) *BroadcastService {
	if workers <= 0 {
		workers = 1
	}
	if location == nil {
		location = time.Local
	}
	return &BroadcastService{
		userRepo:  userRepo,
		deliverer: deliverer,
		spec:      spec,
		location:  location,
		workers:   workers,
		logger:    logger,
	}
}

// Run starts the daily trigger and blocks until ctx is done.
// Triggers missed while the process is down are not replayed.
func (s *BroadcastService) Run(ctx context.Context) error {
	cronLogger := logger.NewCronLogger(s.logger)

	c := cron.New(
		cron.WithLocation(s.location),
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)

	_, err := c.AddFunc(s.spec, func() {
		s.logger.Info("cron triggered: daily broadcast")
		s.Broadcast(ctx)
	})
	if err != nil {
		return fmt.Errorf("add cron job %q: %w", s.spec, err)
	}

	c.Start()
	s.logger.Info("broadcast scheduler started",
		zap.String("spec", s.spec),
		zap.String("location", s.location.String()),
	)

	<-ctx.Done()

	// Wait for a running broadcast to finish.
	<-c.Stop().Done()
	s.logger.Info("broadcast scheduler stopped")

	return nil
}

// Broadcast delivers today's article to a snapshot of active subscribers.
// A failure for one subscriber never stops the others.
func (s *BroadcastService) Broadcast(ctx context.Context) BroadcastReport {
	started := time.Now()

	chatIDs, err := s.userRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error("failed to list active users", zap.Error(err))
		return BroadcastReport{}
	}

	p := pool.NewWithResults[entities.DeliveryStatus]().WithMaxGoroutines(s.workers)
	for _, chatID := range chatIDs {
		p.Go(func() entities.DeliveryStatus {
			return s.deliverer.Deliver(ctx, chatID, entities.ArticleKindDaily).Status
		})
	}

	report := BroadcastReport{Total: len(chatIDs)}
	for _, status := range p.Wait() {
		report.add(status)
	}

	fields := []zap.Field{
		zap.Int("total", report.Total),
		zap.Int("delivered", report.Delivered),
		zap.Int("skipped", report.Skipped),
		zap.Int("send_failed", report.SendFailed),
		zap.Int("failed", report.Failed),
		zap.Duration("took", time.Since(started)),
	}
	if report.SendFailed+report.Failed > 0 {
		s.logger.Warn("daily broadcast finished with failures", fields...)
	} else {
		s.logger.Info("daily broadcast finished", fields...)
	}

	return report
}
