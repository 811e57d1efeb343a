package server

import (
	"context"
	"net/http"

	"emergency_response/internal/usage"
	"emergency_response/pkg/httpx/reply"
	"emergency_response/pkg/rest"
)

type usageGuard interface {
	Report() usage.Report
	SetDemoMode(ctx context.Context, enabled bool)
	DemoMode() bool
}

type UsageServer struct {
	guard usageGuard
}

func NewUsageServer(guard usageGuard) UsageServer {
	return UsageServer{
		guard: guard,
	}
}

func (s UsageServer) getV1Usage(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	reply.JSON(ctx, w, http.StatusOK, newRESTUsageReport(s.guard.Report()))

	return nil
}

func (s UsageServer) getV1DemoMode(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	reply.JSON(ctx, w, http.StatusOK, rest.DemoMode{Enabled: s.guard.DemoMode()})

	return nil
}

func (s UsageServer) postV1DemoModeEnable(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	s.guard.SetDemoMode(ctx, true)
	reply.JSON(ctx, w, http.StatusOK, rest.DemoMode{Enabled: true})

	return nil
}

func (s UsageServer) postV1DemoModeDisable(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	s.guard.SetDemoMode(ctx, false)
	reply.JSON(ctx, w, http.StatusOK, rest.DemoMode{Enabled: false})

	return nil
}
