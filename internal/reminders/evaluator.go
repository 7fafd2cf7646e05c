package reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/farmtrackhq/farmtrack-backend/pkg/db/models"
	"github.com/farmtrackhq/farmtrack-backend/pkg/enums"
	pkgerrors "github.com/farmtrackhq/farmtrack-backend/pkg/errors"
	"github.com/farmtrackhq/farmtrack-backend/pkg/logger"
	"github.com/farmtrackhq/farmtrack-backend/pkg/metrics"
	"github.com/farmtrackhq/farmtrack-backend/pkg/types"
)

// windowDays is the inclusive look-ahead horizon for due-date reminders.
const windowDays = 7

const (
	sourceCrop     = "crop"
	sourceActivity = "activity"
)

const noCropLabel = "No crop"

type notificationStore interface {
	Create(ctx context.Context, notification *models.Notification) error
	ExistsUnread(ctx context.Context, ownerID uuid.UUID, cropID *uuid.UUID, message string) (bool, error)
}

// Evaluator inspects freshly saved crops and activities and raises ALERT
// notifications for due dates that fall inside the reminder window. It runs
// after the record is persisted and never fails the save: storage errors are
// logged and counted, not returned.
type Evaluator struct {
	store   notificationStore
	logg    *logger.Logger
	metrics *metrics.ReminderMetrics
}

// NewEvaluator wires the evaluator dependencies.
func NewEvaluator(store notificationStore, logg *logger.Logger, m *metrics.ReminderMetrics) (*Evaluator, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notification store required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &Evaluator{store: store, logg: logg, metrics: m}, nil
}

// CropSaved evaluates the harvest-date rule for a crop that was just created
// or updated.
func (e *Evaluator) CropSaved(ctx context.Context, crop *models.Crop, now time.Time) {
	start := time.Now()
	defer func() { e.metrics.ObserveDuration(sourceCrop, time.Since(start)) }()
	e.metrics.IncEvaluated(sourceCrop)

	if crop == nil {
		return
	}
	if crop.OwnerID == uuid.Nil {
		ctx = e.logg.WithField(ctx, "crop_id", crop.ID.String())
		e.logg.Warn(ctx, "skipping reminder evaluation for crop without owner")
		return
	}

	days, due := daysUntilDue(crop.HarvestDate, now)
	if !due {
		return
	}

	message := fmt.Sprintf(
		"Your crop %s (%s) is due for harvest in %d day(s) on %s.",
		crop.Name, crop.Variety, days, crop.HarvestDate,
	)
	cropID := crop.ID
	e.emit(ctx, sourceCrop, crop.OwnerID, &cropID, message)
}

// ActivitySaved evaluates the due-date rule for an activity that was just
// created or updated. The crop is the activity's parent when one is linked;
// a nil crop falls back to the "No crop" label.
func (e *Evaluator) ActivitySaved(ctx context.Context, activity *models.Activity, crop *models.Crop, now time.Time) {
	start := time.Now()
	defer func() { e.metrics.ObserveDuration(sourceActivity, time.Since(start)) }()
	e.metrics.IncEvaluated(sourceActivity)

	if activity == nil {
		return
	}
	if activity.OwnerID == uuid.Nil {
		ctx = e.logg.WithField(ctx, "activity_id", activity.ID.String())
		e.logg.Warn(ctx, "skipping reminder evaluation for activity without owner")
		return
	}

	days, due := daysUntilDue(activity.Date, now)
	if !due {
		return
	}

	cropName := noCropLabel
	if crop != nil {
		cropName = crop.Name
	}

	message := fmt.Sprintf(
		"Activity '%s' for %s is due in %d day(s) on %s.",
		activity.Description, cropName, days, activity.Date,
	)

	var cropID *uuid.UUID
	if activity.CropID != uuid.Nil {
		id := activity.CropID
		cropID = &id
	}
	e.emit(ctx, sourceActivity, activity.OwnerID, cropID, message)
}

// emit creates the ALERT notification unless an identical unread one already
// exists for the same owner and crop.
func (e *Evaluator) emit(ctx context.Context, source string, ownerID uuid.UUID, cropID *uuid.UUID, message string) {
	exists, err := e.store.ExistsUnread(ctx, ownerID, cropID, message)
	if err != nil {
		e.metrics.IncFailure(source)
		e.logg.Error(ctx, "reminder dedup check failed", err)
		return
	}
	if exists {
		e.metrics.IncDeduped(source)
		return
	}

	notification := &models.Notification{
		OwnerID: ownerID,
		CropID:  cropID,
		Message: message,
		Type:    enums.NotificationTypeAlert,
	}
	if err := e.store.Create(ctx, notification); err != nil {
		e.metrics.IncFailure(source)
		e.logg.Error(ctx, "reminder notification create failed", err)
		return
	}
	e.metrics.IncFired(source)
}

// daysUntilDue reports how many whole days remain until the due date and
// whether the date falls inside [today, today+windowDays], both ends
// inclusive.
func daysUntilDue(date types.Date, now time.Time) (int, bool) {
	if date.IsZero() {
		return 0, false
	}
	today := types.DateOf(now)
	days := today.DaysUntil(date)
	if days < 0 || days > windowDays {
		return 0, false
	}
	return days, true
}
