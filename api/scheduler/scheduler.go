package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/akshitarai30/MediCareAssistant/databases"
)

// Scheduler runs the periodic backstop jobs around the live dose engine: on
// start it resumes monitors for every active medication, and every minute it
// sweeps for doses that slipped past their grace window while no monitor was
// running (typically across a process restart).
type Scheduler struct {
	cron   *cron.Cron
	engine *Engine
	MDB    databases.MedicationDatabase
}

// NewScheduler creates a new scheduler instance
func NewScheduler(engine *Engine, mDB databases.MedicationDatabase) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		engine: engine,
		MDB:    mDB,
	}
}

// Start resumes monitors and begins the sweep job
func (s *Scheduler) Start() {
	s.Resume()

	_, err := s.cron.AddFunc("@every 1m", s.SweepOverdue)
	if err != nil {
		zap.S().Errorw("failed to register overdue sweep job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("dose scheduler started")
}

// Stop gracefully stops the sweep job and all live monitors
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.engine.Stop()
	zap.S().Info("dose scheduler stopped")
}

// Resume restarts a monitor for every medication that still has a scheduled
// next dose. Doses already past the grace window are resolved as missed instead.
func (s *Scheduler) Resume() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	medications, err := s.MDB.GetActiveMedications(ctx)
	if err != nil {
		zap.S().Errorw("failed to load active medications", "error", err)
		return
	}

	resumed, expired := 0, 0
	for _, med := range medications {
		if s.engine.ExpireIfOverdue(ctx, med) {
			expired++
			continue
		}
		s.engine.Track(med)
		resumed++
	}

	zap.S().Infow("dose monitors resumed",
		"resumed", resumed,
		"expired", expired,
	)
}

// SweepOverdue resolves any Upcoming medication whose due time passed more than
// a grace window ago.
func (s *Scheduler) SweepOverdue() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	medications, err := s.MDB.GetActiveMedications(ctx)
	if err != nil {
		zap.S().Errorw("failed to load active medications for sweep", "error", err)
		return
	}

	expired := 0
	for _, med := range medications {
		if s.engine.ExpireIfOverdue(ctx, med) {
			expired++
		}
	}

	if expired > 0 {
		zap.S().Infow("overdue sweep complete", "expired", expired)
	}
}
