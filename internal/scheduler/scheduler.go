// Package scheduler runs background jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/futurologia/internal/datasource"
	"github.com/yourusername/futurologia/internal/metrics"
	"github.com/yourusername/futurologia/internal/models"
)

// StandingsRefresher fetches league standings bypassing the cache
type StandingsRefresher interface {
	RefreshStandings(ctx context.Context, leagueID, season int) ([]datasource.Standing, error)
	Season() int
	IsEnabled() bool
}

// Scheduler manages the standings cache warm-up job
type Scheduler struct {
	cron            *cron.Cron
	refresher       StandingsRefresher
	logger          logrus.FieldLogger
	mu              sync.RWMutex
	isRunning       bool
	jobIDs          []cron.EntryID
	jobTimeout      time.Duration
	gracefulTimeout time.Duration
}

// NewScheduler creates a new scheduler
func NewScheduler(refresher StandingsRefresher, logger logrus.FieldLogger) *Scheduler {
	return &Scheduler{
		cron:            cron.New(cron.WithLocation(time.UTC)),
		refresher:       refresher,
		logger:          logger.WithField("component", "scheduler"),
		jobIDs:          make([]cron.EntryID, 0),
		jobTimeout:      5 * time.Minute,
		gracefulTimeout: 30 * time.Second,
	}
}

// ScheduleCacheWarm refreshes the standings of every league with an upstream
// ID on the given cron expression
func (s *Scheduler) ScheduleCacheWarm(cronExpression string, leagues []models.League) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
		defer cancel()

		warmed, failed := s.WarmCache(ctx, leagues)
		s.logger.WithFields(logrus.Fields{
			"warmed": warmed,
			"failed": failed,
		}).Info("Standings cache warm-up completed")
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("schedule", cronExpression).Info("Scheduled standings cache warm-up")

	return nil
}

// WarmCache refreshes each league once and returns how many succeeded and
// failed. It does nothing while the upstream source is disabled.
func (s *Scheduler) WarmCache(ctx context.Context, leagues []models.League) (warmed, failed int) {
	if !s.refresher.IsEnabled() {
		s.logger.Debug("Upstream disabled, skipping cache warm-up")
		return 0, 0
	}

	season := s.refresher.Season()
	for _, league := range leagues {
		if league.UpstreamID <= 0 {
			continue
		}
		if ctx.Err() != nil {
			break
		}

		_, err := s.refresher.RefreshStandings(ctx, league.UpstreamID, season)
		metrics.RecordCacheWarmup(league.Name, err == nil)
		if err != nil {
			failed++
			s.logger.WithFields(logrus.Fields{
				"league":     league.Name,
				"error_code": datasource.ErrorCode(err),
			}).WithError(err).Warn("Failed to warm standings cache")
			continue
		}
		warmed++
	}

	return warmed, failed
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}

	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")

	return nil
}

// Stop waits for running jobs up to the graceful timeout, then stops
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	s.isRunning = false
	select {
	case <-s.cron.Stop().Done():
		s.logger.Info("Scheduler stopped")
		return nil
	case <-time.After(s.gracefulTimeout):
		return fmt.Errorf("scheduler jobs still running after %s", s.gracefulTimeout)
	}
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRun returns the time of the next scheduled job run
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning || len(s.jobIDs) == 0 {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			if nextRun.IsZero() || entry.Next.Before(nextRun) {
				nextRun = entry.Next
			}
		}
	}

	return nextRun
}
