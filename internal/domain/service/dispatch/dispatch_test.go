package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"emergency_response/internal/domain/entity"
	"emergency_response/internal/observability"
)

type callerFunc func(ctx context.Context, toNumber, message string) (string, error)

func (f callerFunc) Call(ctx context.Context, toNumber, message string) (string, error) {
	return f(ctx, toNumber, message)
}

type guardStub struct {
	allow bool
	calls int
}

func (g *guardStub) AcquireCall(_ context.Context, _ int) bool {
	g.calls++
	return g.allow
}

func facilityWithPhone() *entity.Facility {
	return &entity.Facility{Name: "St Mary Hospital", Address: "1 Hospital Rd", Phone: "+15550100"}
}

func TestDispatcher_Placed(t *testing.T) {
	rq := require.New(t)

	d := NewDispatcher(&guardStub{allow: true}, observability.NewMetricsForTesting()).
		WithCaller(callerFunc(func(_ context.Context, toNumber, message string) (string, error) {
			rq.Equal("+15550100", toNumber)
			rq.Contains(message, "major trauma")
			return "CA123", nil
		}))

	n := d.Notify(context.Background(), "c1", facilityWithPhone(), "major trauma reported downtown")
	rq.Equal(entity.NotificationPlaced, n.Status)
	rq.Equal("CA123", n.CallID)
}

func TestDispatcher_Skips(t *testing.T) {
	tests := []struct {
		name       string
		facility   *entity.Facility
		withCaller bool
		allow      bool
		wantReason entity.SkipReason
	}{
		{"nil facility", nil, true, true, entity.SkipNoNumber},
		{"facility without phone", &entity.Facility{Name: "City Clinic", Address: "2 Clinic Rd"}, true, true, entity.SkipNoNumber},
		{"provider disabled", facilityWithPhone(), false, true, entity.SkipDisabled},
		{"budget exhausted", facilityWithPhone(), true, false, entity.SkipQuotaExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rq := require.New(t)

			providerCalls := 0
			d := NewDispatcher(&guardStub{allow: tt.allow}, observability.NewMetricsForTesting())
			if tt.withCaller {
				d = d.WithCaller(callerFunc(func(context.Context, string, string) (string, error) {
					providerCalls++
					return "CA123", nil
				}))
			}

			n := d.Notify(context.Background(), "c1", tt.facility, "message")
			rq.Equal(entity.NotificationSkipped, n.Status)
			rq.Equal(tt.wantReason, n.Reason)
			rq.Zero(providerCalls)
		})
	}
}

func TestDispatcher_ProviderErrorIsFailed(t *testing.T) {
	rq := require.New(t)

	d := NewDispatcher(&guardStub{allow: true}, observability.NewMetricsForTesting()).
		WithCaller(callerFunc(func(context.Context, string, string) (string, error) {
			return "", errors.New("twilio: 401 unauthorized")
		}))

	n := d.Notify(context.Background(), "c1", facilityWithPhone(), "message")
	rq.Equal(entity.NotificationFailed, n.Status)
	rq.Contains(n.Cause, "unauthorized")
}

func TestDispatcher_NoNumberSkipsBeforeBudget(t *testing.T) {
	rq := require.New(t)

	g := &guardStub{allow: true}
	d := NewDispatcher(g, observability.NewMetricsForTesting()).
		WithCaller(callerFunc(func(context.Context, string, string) (string, error) {
			return "CA123", nil
		}))

	d.Notify(context.Background(), "c1", nil, "message")
	rq.Zero(g.calls, "no budget reserved when there is nobody to call")
}
