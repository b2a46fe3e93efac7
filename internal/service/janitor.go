package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/aliskhannn/spicy-vs-sweet/internal/metrics"
)

// RoomJanitor periodically closes questions nobody closed and forgets idle rooms.
type RoomJanitor struct {
	closer      RoundCloser
	rooms       RoomSweeper
	notifier    QuestionNotifier
	schedule    string
	questionTTL time.Duration
	idleTTL     time.Duration
	logger      *zap.Logger
	now         func() time.Time
}

// NewRoomJanitor creates a janitor running on the given cron schedule.
func NewRoomJanitor(
	closer RoundCloser,
	rooms RoomSweeper,
	schedule string,
	questionTTL, idleTTL time.Duration,
	logger *zap.Logger,
) *RoomJanitor {
	return &RoomJanitor{
		closer:      closer,
		rooms:       rooms,
		schedule:    schedule,
		questionTTL: questionTTL,
		idleTTL:     idleTTL,
		logger:      logger,
		now:         time.Now,
	}
}

// SetNotifier sets the notifier (called after handler is created).
func (j *RoomJanitor) SetNotifier(notifier QuestionNotifier) {
	j.notifier = notifier
}

// Start runs sweeps on the schedule until ctx is done.
func (j *RoomJanitor) Start(ctx context.Context) error {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)

	_, err := c.AddFunc(j.schedule, func() {
		j.Sweep(ctx)
	})
	if err != nil {
		return fmt.Errorf("add sweep job %q: %w", j.schedule, err)
	}

	c.Start()
	j.logger.Info("room janitor started", zap.String("schedule", j.schedule))

	<-ctx.Done()

	<-c.Stop().Done()
	j.logger.Info("room janitor stopped")
	return nil
}

// Sweep closes rounds open longer than the question TTL, notifying their rooms,
// then evicts rooms idle longer than the idle TTL.
func (j *RoomJanitor) Sweep(ctx context.Context) (closed, evicted int) {
	now := j.now()

	for _, r := range j.rooms.OpenedBefore(now.Add(-j.questionTTL)) {
		if ctx.Err() != nil {
			return closed, evicted
		}

		q, records, err := j.closer.CloseRound(ctx, r.RoomID, r.AskedAt)
		if errors.Is(err, ErrNoOpenQuestion) {
			// Closed or replaced since it was listed.
			continue
		}
		if err != nil {
			j.logger.Error("failed to close expired question",
				zap.Int64("room_id", r.RoomID),
				zap.String("question_id", r.Question.ID),
				zap.Error(err),
			)
			continue
		}

		closed++
		metrics.RoomsSweptTotal.WithLabelValues("closed").Inc()

		if j.notifier == nil {
			continue
		}
		if err := j.notifier.QuestionExpired(r.RoomID, q, records); err != nil {
			j.logger.Warn("failed to notify room of expired question",
				zap.Int64("room_id", r.RoomID),
				zap.Error(err),
			)
		}
	}

	evicted = j.rooms.EvictIdle(now.Add(-j.idleTTL))
	metrics.RoomsSweptTotal.WithLabelValues("evicted").Add(float64(evicted))

	if closed > 0 || evicted > 0 {
		j.logger.Info("rooms swept",
			zap.Int("closed", closed),
			zap.Int("evicted", evicted),
		)
	}
	return closed, evicted
}
