package scheduler

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/akshitarai30/MediCareAssistant/databases"
	"github.com/akshitarai30/MediCareAssistant/models"
)

// Notifier delivers human-readable alerts for dose events. Implemented by the
// websocket alert hub in the handlers package.
type Notifier interface {
	// NotifyDoseDue tells the medication's owner that a dose is due now.
	NotifyDoseDue(med models.Medication)
	// NotifyCaregivers tells every caregiver linked to the medication's owner
	// that a dose was missed.
	NotifyCaregivers(ctx context.Context, med models.Medication)
}

// Actor identifies who performed a status change. CaregiverProxy is true when a
// caregiver acts on a patient's dashboard; proxy actions never trigger the
// caregiver notification side effect.
type Actor struct {
	UserID         string
	CaregiverProxy bool
}

// Engine owns the dose lifecycle state machine. All monitor handles and alert
// deduplication state live on the engine instance, keyed by medication id, so
// cancelling a medication cancels everything associated with it.
type Engine struct {
	meds     databases.MedicationDatabase
	logs     databases.MedicationLogDatabase
	notifier Notifier

	graceWindow  time.Duration
	snoozeDelay  time.Duration
	tickInterval time.Duration
	now          func() time.Time

	mu       sync.Mutex
	monitors map[string]*monitor
	alerted  map[string]struct{} // "medicationID|HH:mm" pairs already announced
}

// NewEngine creates a dose engine with the standard 5 minute grace window and
// 10 minute snooze delay.
func NewEngine(meds databases.MedicationDatabase, logs databases.MedicationLogDatabase, notifier Notifier) *Engine {
	return &Engine{
		meds:         meds,
		logs:         logs,
		notifier:     notifier,
		graceWindow:  5 * time.Minute,
		snoozeDelay:  10 * time.Minute,
		tickInterval: time.Second,
		now:          time.Now,
		monitors:     make(map[string]*monitor),
		alerted:      make(map[string]struct{}),
	}
}

// MarkTaken records a taken dose and recomputes the next occurrence from now.
// When the recomputed occurrence falls after the prescription end date (or the
// medication has no timings) the schedule is cleared and the medication stays
// Taken: the prescription is complete.
func (e *Engine) MarkTaken(ctx context.Context, id string, actor Actor) (*models.Medication, error) {
	med, err := e.meds.GetMedicationByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// already completed, nothing left to schedule
	if med.Medication.Status == models.StatusTaken && med.Medication.NextDoseDate == nil {
		return med, nil
	}

	now := e.now()
	next, nextTime, err := NextDose(med.Medication.Timings, now)
	if err != nil {
		return nil, err
	}

	if next != nil && med.Medication.EndDate != nil && next.After(med.Medication.EndDate.Time()) {
		next = nil
	}

	status := models.StatusUpcoming
	var nextTimePtr *string
	if next == nil {
		status = models.StatusTaken
	} else {
		nextTimePtr = &nextTime
	}

	if err := e.meds.UpdateMedicationSchedule(ctx, id, status, next, nextTimePtr); err != nil {
		return nil, err
	}
	e.appendLog(ctx, *med, models.StatusTaken)

	applySchedule(med, status, next, nextTimePtr)
	if next != nil {
		e.Track(*med)
	} else {
		e.Untrack(id)
	}
	return med, nil
}

// MarkSnoozed pushes the next dose out by exactly the snooze delay from now,
// regardless of the original due time.
func (e *Engine) MarkSnoozed(ctx context.Context, id string, actor Actor) (*models.Medication, error) {
	med, err := e.meds.GetMedicationByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next := e.now().Add(e.snoozeDelay)
	nextTime := FormatDoseTime(next)

	if err := e.meds.UpdateMedicationSchedule(ctx, id, models.StatusSnoozed, &next, &nextTime); err != nil {
		return nil, err
	}
	e.appendLog(ctx, *med, models.StatusSnoozed)

	applySchedule(med, models.StatusSnoozed, &next, &nextTime)
	// a snoozed dose is no longer announced; cancel the due monitor and any
	// pending grace timer for the old target
	e.Untrack(id)
	return med, nil
}

// MarkMissed records a manually missed dose. Caregivers are notified only when
// the actor is the patient, never for a caregiver acting through the proxy view.
func (e *Engine) MarkMissed(ctx context.Context, id string, actor Actor) (*models.Medication, error) {
	med, err := e.meds.GetMedicationByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next := doseDate(med)
	if err := e.meds.UpdateMedicationSchedule(ctx, id, models.StatusMissed, next, med.Medication.NextDoseTime); err != nil {
		return nil, err
	}
	e.appendLog(ctx, *med, models.StatusMissed)

	if !actor.CaregiverProxy {
		e.notifier.NotifyCaregivers(ctx, *med)
	}

	med.Medication.Status = models.StatusMissed
	e.Untrack(id)
	return med, nil
}

// ExpireIfOverdue marks an Upcoming medication Missed when its due time passed
// more than a grace window ago. Used by the sweep job to resolve doses that came
// due while the process was down. Returns true when the medication was expired.
func (e *Engine) ExpireIfOverdue(ctx context.Context, med models.Medication) bool {
	if med.Medication.Status != models.StatusUpcoming || med.Medication.NextDoseDate == nil {
		return false
	}
	due := med.Medication.NextDoseDate.Time()
	if e.now().Sub(due) < e.graceWindow {
		return false
	}
	e.missNow(ctx, med)
	return true
}

// autoMiss is the grace-window callback. It re-reads the medication before
// mutating: a user action during the window changes the status or retargets the
// next dose, and either one cancels the auto-miss.
func (e *Engine) autoMiss(id string, target time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	med, err := e.meds.GetMedicationByID(ctx, id)
	if err != nil {
		zap.S().Warnw("grace timer fired for unknown medication", "medicationId", id, "error", err)
		e.Untrack(id)
		return
	}
	if med.Medication.Status != models.StatusUpcoming {
		return
	}
	if med.Medication.NextDoseDate == nil || med.Medication.NextDoseDate.Time().UnixMilli() != target.UnixMilli() {
		return
	}

	e.missNow(ctx, *med)
}

// missNow applies the system-attributed Missed transition: schedule update, log
// entry, caregiver notification, monitor teardown.
func (e *Engine) missNow(ctx context.Context, med models.Medication) {
	id := med.ID.Hex()
	next := doseDate(&med)
	if err := e.meds.UpdateMedicationSchedule(ctx, id, models.StatusMissed, next, med.Medication.NextDoseTime); err != nil {
		zap.S().Errorw("failed to mark medication missed", "medicationId", id, "error", err)
		return
	}
	e.appendLog(ctx, med, models.StatusMissed)
	e.notifier.NotifyCaregivers(ctx, med)
	e.Untrack(id)

	zap.S().Infow("medication auto-missed after grace window",
		"medicationId", id,
		"name", med.Medication.Name,
	)
}

// handleDue runs when the countdown for a tracked medication reaches zero. It
// re-reads current state, announces the dose at most once per
// (medication id, nextDoseTime) pair and arms the grace-window timer. The
// returned value tells the monitor loop whether it can stop ticking.
func (e *Engine) handleDue(id string, target time.Time) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	med, err := e.meds.GetMedicationByID(ctx, id)
	if err != nil {
		zap.S().Warnw("due monitor lost its medication", "medicationId", id, "error", err)
		e.Untrack(id)
		return true
	}
	if med.Medication.NextDoseDate == nil || med.Medication.NextDoseDate.Time().UnixMilli() != target.UnixMilli() {
		// retargeted elsewhere, this monitor is stale
		return true
	}
	if med.Medication.Status != models.StatusUpcoming {
		return true
	}

	nextTime := ""
	if med.Medication.NextDoseTime != nil {
		nextTime = *med.Medication.NextDoseTime
	}
	key := id + "|" + nextTime

	e.mu.Lock()
	if _, dup := e.alerted[key]; dup {
		e.mu.Unlock()
		return true
	}
	e.alerted[key] = struct{}{}
	m := e.monitors[id]
	if m != nil && m.target.UnixMilli() == target.UnixMilli() {
		m.grace = time.AfterFunc(e.graceWindow, func() {
			e.autoMiss(id, target)
		})
	}
	e.mu.Unlock()

	e.notifier.NotifyDoseDue(*med)
	return true
}

func (e *Engine) appendLog(ctx context.Context, med models.Medication, status string) {
	entry := &models.MedicationLog{
		Log: models.MedicationLogDetails{
			UserID:         med.Medication.UserID,
			MedicationID:   med.ID.Hex(),
			MedicationName: med.Medication.Name,
			Status:         status,
			Timestamp:      primitive.NewDateTimeFromTime(e.now()),
		},
	}
	// the log write is independent of the status write; a failed append is
	// logged and the transition stands
	if err := e.logs.CreateLog(ctx, entry); err != nil {
		zap.S().Errorw("failed to append medication log",
			"medicationId", med.ID.Hex(),
			"status", status,
			"error", err,
		)
	}
}

// clearAlerts drops the dedup keys for one medication so a rescheduled dose can
// announce again.
func (e *Engine) clearAlerts(id string) {
	for key := range e.alerted {
		if strings.HasPrefix(key, id+"|") {
			delete(e.alerted, key)
		}
	}
}

func applySchedule(med *models.Medication, status string, next *time.Time, nextTime *string) {
	med.Medication.Status = status
	med.Medication.NextDoseTime = nextTime
	if next != nil {
		dt := primitive.NewDateTimeFromTime(*next)
		med.Medication.NextDoseDate = &dt
	} else {
		med.Medication.NextDoseDate = nil
	}
}

func doseDate(med *models.Medication) *time.Time {
	if med.Medication.NextDoseDate == nil {
		return nil
	}
	t := med.Medication.NextDoseDate.Time()
	return &t
}
