package reminders

import (
	"context"
	"mediport-service/internal/app/config"
	"mediport-service/internal/app/contracts"
	"mediport-service/internal/pkg/constvars"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Worker periodically dispatches due appointment reminders. Only one
// instance across the deployment does the work at a time, guarded by a
// redis leader lock.
type Worker struct {
	log             *zap.Logger
	cfg             *config.InternalConfig
	locker          contracts.LockerService
	reminderUsecase contracts.ReminderUsecase
	cron            *cron.Cron
	runCtx          context.Context
	cancel          context.CancelFunc
}

func NewWorker(log *zap.Logger, cfg *config.InternalConfig, lockerSvc contracts.LockerService, reminderUsecase contracts.ReminderUsecase) *Worker {
	return &Worker{log: log, cfg: cfg, locker: lockerSvc, reminderUsecase: reminderUsecase}
}

// Start begins the periodic loop.
func (w *Worker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New()
	spec := w.cfg.Reminder.CronSpec
	_, err := c.AddFunc(spec, func() { w.runOnce(w.runCtx) })
	if err != nil {
		w.log.Warn("reminders.worker: failed to schedule with provided cron spec; falling back to */5 * * * *", zap.Error(err))
		c = cron.New()
		_, _ = c.AddFunc("*/5 * * * *", func() { w.runOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c
}

// Stop gracefully stops the cron and waits for an in-flight dispatch.
func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		ctx := w.cron.Stop()
		<-ctx.Done()
	}
}

func (w *Worker) runOnce(ctx context.Context) {
	ttl := time.Duration(w.cfg.Reminder.LeaderLockTTLInSeconds) * time.Second
	acquired, token, err := w.locker.TryLock(ctx, constvars.ReminderLeaderLockKey, ttl)
	if err != nil {
		w.log.Warn("reminders.worker: leader lock attempt failed", zap.Error(err))
		return
	}
	if !acquired {
		w.log.Info("reminders.worker: leader lock not acquired; another instance is dispatching")
		return
	}
	defer w.locker.Unlock(ctx, constvars.ReminderLeaderLockKey, token)

	// Keep the lock alive while a large batch drains.
	refreshCtx, cancelRefresh := context.WithCancel(ctx)
	defer cancelRefresh()
	go func() {
		tick := time.NewTicker(ttl / 2)
		defer tick.Stop()
		for {
			select {
			case <-refreshCtx.Done():
				return
			case <-tick.C:
				if err := w.locker.Refresh(ctx, constvars.ReminderLeaderLockKey, token, ttl); err != nil {
					w.log.Warn("reminders.worker: failed to refresh leader lock TTL", zap.Error(err))
				}
			}
		}
	}()

	sent, err := w.reminderUsecase.DispatchDue(ctx)
	if err != nil {
		w.log.Warn("reminders.worker: dispatch failed", zap.Error(err))
		return
	}
	if sent > 0 {
		w.log.Info("reminders.worker: dispatched reminders", zap.Int("sent_count", sent))
	}
}
