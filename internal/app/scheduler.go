package app

import (
	"edugame_backend/pkg/logger"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// maintenanceScheduler runs the periodic housekeeping jobs: daily challenge
// rotation, expiry sweeps and the Monday weekly goal reset.
type maintenanceScheduler struct {
	inner gocron.Scheduler
}

func (m *maintenanceScheduler) Stop() {
	if err := m.inner.Shutdown(); err != nil {
		logger.Log.Error("Scheduler shutdown failed", zap.Error(err))
	}
}

func (a *App) startScheduler(repos *repositories, s *services) error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	// Rotate the daily challenge and expire yesterday's unfinished takes
	// shortly after midnight. The challenge is also created lazily on first
	// request, so a missed run is harmless.
	_, err = sched.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(0, 5, 0))),
		gocron.NewTask(func() {
			if _, err := s.challenge.EnsureDailyChallenge(time.Now()); err != nil {
				logger.Log.Error("Daily challenge rotation failed", zap.Error(err))
			}
			if n, err := s.challenge.ExpireStale(); err != nil {
				logger.Log.Error("Challenge expiry sweep failed", zap.Error(err))
			} else if n > 0 {
				logger.Log.Info("Expired stale challenges", zap.Int64("count", n))
			}
		}),
	)
	if err != nil {
		return err
	}

	// Streaks break a day after the last activity.
	_, err = sched.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(0, 10, 0))),
		gocron.NewTask(func() {
			if n, err := s.streak.ResetExpiredStreaks(); err != nil {
				logger.Log.Error("Streak sweep failed", zap.Error(err))
			} else if n > 0 {
				logger.Log.Info("Reset expired streaks", zap.Int("count", n))
			}
		}),
	)
	if err != nil {
		return err
	}

	// Redemptions carry their own expiry timestamp; the sweep just flips the
	// status so listings stay honest.
	_, err = sched.NewJob(
		gocron.DurationJob(time.Hour),
		gocron.NewTask(func() {
			if n, err := s.reward.ExpireOld(); err != nil {
				logger.Log.Error("Reward expiry sweep failed", zap.Error(err))
			} else if n > 0 {
				logger.Log.Info("Expired redemptions", zap.Int64("count", n))
			}
		}),
	)
	if err != nil {
		return err
	}

	// Weekly goals start fresh every Monday.
	_, err = sched.NewJob(
		gocron.WeeklyJob(1, gocron.NewWeekdays(time.Monday), gocron.NewAtTimes(gocron.NewAtTime(0, 0, 0))),
		gocron.NewTask(func() {
			if err := repos.progress.ResetWeeklyProgress(); err != nil {
				logger.Log.Error("Weekly progress reset failed", zap.Error(err))
			}
		}),
	)
	if err != nil {
		return err
	}

	sched.Start()
	a.scheduler = &maintenanceScheduler{inner: sched}
	logger.Log.Info("Maintenance scheduler started")
	return nil
}
