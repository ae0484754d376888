package scheduler

import (
	"context"
	"time"

	"github.com/akshitarai30/MediCareAssistant/models"
)

// monitor holds the cancellation handles for one medication's countdown: the
// per-second watch goroutine and, once a dose is announced, the grace-window
// timer.
type monitor struct {
	target time.Time
	cancel context.CancelFunc
	grace  *time.Timer
}

// Track starts (or restarts) the dose-due monitor for a medication. Any
// previous monitor, grace timer and alert dedup state for the same medication
// is cancelled first, so retargeting never leaves an orphaned timer firing
// against stale state. Only Upcoming medications with a scheduled next dose are
// watched.
func (e *Engine) Track(med models.Medication) {
	id := med.ID.Hex()
	e.Untrack(id)

	if med.Medication.Status != models.StatusUpcoming || med.Medication.NextDoseDate == nil {
		return
	}
	target := med.Medication.NextDoseDate.Time()

	ctx, cancel := context.WithCancel(context.Background())
	e.mu.Lock()
	e.monitors[id] = &monitor{target: target, cancel: cancel}
	e.mu.Unlock()

	go e.watch(ctx, id, target)
}

// Untrack cancels the monitor, pending grace timer and alert dedup keys for a
// medication. Safe to call for untracked ids.
func (e *Engine) Untrack(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if m, ok := e.monitors[id]; ok {
		m.cancel()
		if m.grace != nil {
			m.grace.Stop()
		}
		delete(e.monitors, id)
	}
	e.clearAlerts(id)
}

// Stop cancels every monitor. Used on shutdown.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	for id, m := range e.monitors {
		m.cancel()
		if m.grace != nil {
			m.grace.Stop()
		}
		delete(e.monitors, id)
	}
}

// Tracked reports whether a monitor is currently running for the medication.
func (e *Engine) Tracked(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.monitors[id]
	return ok
}

// watch recomputes the remaining seconds to the target once per tick and hands
// off to handleDue at the first tick where nothing remains. The loop exits when
// cancelled or once the due handling is settled; the grace timer owns the rest
// of the lifecycle from there.
func (e *Engine) watch(ctx context.Context, id string, target time.Time) {
	ticker := time.NewTicker(e.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if int(target.Sub(e.now()).Seconds()) <= 0 {
				if e.handleDue(id, target) {
					return
				}
			}
		}
	}
}
