package entity

type NotificationStatus string

const (
	NotificationPlaced  NotificationStatus = "placed"
	NotificationSkipped NotificationStatus = "skipped"
	NotificationFailed  NotificationStatus = "failed"
)

type SkipReason string

const (
	SkipNoNumber      SkipReason = "no_number"
	SkipDisabled      SkipReason = "disabled"
	SkipQuotaExceeded SkipReason = "quota_exceeded"
)

// Notification is the outcome of the at-most-once outbound call per Case.
type Notification struct {
	Status NotificationStatus
	CallID string
	Reason SkipReason
	Cause  string
}

func NotificationWasPlaced(callID string) Notification {
	return Notification{Status: NotificationPlaced, CallID: callID}
}

func NotificationWasSkipped(reason SkipReason) Notification {
	return Notification{Status: NotificationSkipped, Reason: reason}
}

func NotificationHasFailed(cause error) Notification {
	return Notification{Status: NotificationFailed, Cause: cause.Error()}
}
