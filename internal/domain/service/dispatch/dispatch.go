package dispatch

import (
	"context"

	"emergency_response/internal/domain/entity"
	"emergency_response/internal/observability"
	"emergency_response/internal/usage"
	"emergency_response/pkg/contextx"
	"emergency_response/pkg/logx"
)

// estimatedCallMinutes is the per-call budget reservation. The spoken
// summary is short, one minute covers it.
const estimatedCallMinutes = 1

type caller interface {
	Call(ctx context.Context, toNumber, message string) (string, error)
}

type guard interface {
	AcquireCall(ctx context.Context, estimatedMinutes int) bool
}

// Dispatcher places the outbound voice call to a facility. Every outcome is
// a Notification value, never an error: a dispatch problem must not undo an
// already completed assessment.
type Dispatcher struct {
	caller  caller
	guard   guard
	metrics *observability.Metrics
}

func NewDispatcher(guard guard, metrics *observability.Metrics) *Dispatcher {
	return &Dispatcher{
		guard:   guard,
		metrics: metrics,
	}
}

// WithCaller attaches a telephony provider. Without one every notification
// is skipped as disabled.
func (d *Dispatcher) WithCaller(c caller) *Dispatcher {
	d.caller = c
	return d
}

// Notify calls the facility and reports what happened. Skips are decided in
// order: facility without a phone number, provider disabled, budget
// exhausted.
func (d *Dispatcher) Notify(ctx context.Context, caseID string, facility *entity.Facility, message string) entity.Notification {
	logger := contextx.LoggerFromContextOrDefault(ctx)

	notification := d.notify(ctx, facility, message)
	d.metrics.Notifications.WithLabelValues(string(notification.Status)).Inc()

	switch notification.Status {
	case entity.NotificationPlaced:
		logger.Info("notification call placed", logx.FieldCaseID, caseID, "call_id", notification.CallID)
	case entity.NotificationSkipped:
		logger.Info("notification skipped", logx.FieldCaseID, caseID, "reason", string(notification.Reason))
	case entity.NotificationFailed:
		logger.Warn("notification call failed", logx.FieldCaseID, caseID, "cause", notification.Cause)
	}

	return notification
}

func (d *Dispatcher) notify(ctx context.Context, facility *entity.Facility, message string) entity.Notification {
	if facility == nil || facility.Phone == "" {
		return entity.NotificationWasSkipped(entity.SkipNoNumber)
	}
	if d.caller == nil {
		return entity.NotificationWasSkipped(entity.SkipDisabled)
	}
	if !d.guard.AcquireCall(ctx, estimatedCallMinutes) {
		d.metrics.ExternalCalls.WithLabelValues(string(usage.ServiceTelephony), "refused").Inc()
		return entity.NotificationWasSkipped(entity.SkipQuotaExceeded)
	}

	callID, err := d.caller.Call(ctx, facility.Phone, message)
	if err != nil {
		d.metrics.ExternalCalls.WithLabelValues(string(usage.ServiceTelephony), "error").Inc()
		return entity.NotificationHasFailed(err)
	}
	d.metrics.ExternalCalls.WithLabelValues(string(usage.ServiceTelephony), "success").Inc()

	return entity.NotificationWasPlaced(callID)
}
