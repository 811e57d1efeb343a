package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"emergency_response/internal/domain"
	"emergency_response/internal/domain/entity"
	"emergency_response/internal/domain/value"
	"emergency_response/internal/usage"
	"emergency_response/pkg/errcodes"
	"emergency_response/pkg/rest"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type pipelineStub struct {
	result entity.Result
	err    error

	lastDescription string
	lastCoords      value.Coordinates
}

func (p *pipelineStub) Handle(_ context.Context, description string, coords value.Coordinates) (entity.Result, error) {
	p.lastDescription = description
	p.lastCoords = coords
	return p.result, p.err
}

type guardStub struct {
	report   usage.Report
	demoMode bool
}

func (g *guardStub) Report() usage.Report { return g.report }

func (g *guardStub) SetDemoMode(_ context.Context, enabled bool) { g.demoMode = enabled }

func (g *guardStub) DemoMode() bool { return g.demoMode }

func newTestServer(p casePipeline, g usageGuard) *httptest.Server {
	r := chi.NewRouter()
	NewServer(NewCaseServer(p), NewUsageServer(g)).RegisterRoutes(r)
	return httptest.NewServer(r)
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func getJSON(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestPostV1Cases(t *testing.T) {
	rq := require.New(t)

	notification := entity.NotificationWasPlaced("CA77")
	p := &pipelineStub{result: entity.Result{
		Case: entity.Case{ID: "case-1"},
		Assessment: entity.Assessment{
			Severity: value.SeverityMajorTrauma,
			FirstAid: "Apply pressure.",
			Location: "48.860000, 2.350000",
			Summary:  "Truck collision",
		},
		Facilities: entity.FacilityList{Facilities: []entity.Facility{
			{Name: "St Mary Hospital", Address: "1 Hospital Rd", Rating: lo.ToPtr(4.7)},
			{Name: "City Clinic", Address: "2 Clinic Rd"},
		}},
		Notification: &notification,
	}}

	srv := newTestServer(p, &guardStub{})
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/v1/cases", `{"description":"truck collision","latitude":48.86,"longitude":2.35}`)
	rq.Equal(http.StatusOK, resp.StatusCode)

	var result rest.CaseResult
	rq.NoError(json.NewDecoder(resp.Body).Decode(&result))

	rq.Equal("case-1", result.CaseID)
	rq.Equal("major_trauma", result.Severity)
	rq.Len(result.Facilities, 2)
	rq.NotNil(result.BestFacility)
	rq.Equal("St Mary Hospital", result.BestFacility.Name)
	rq.NotNil(result.Notification)
	rq.Equal("placed", result.Notification.Status)
	rq.Equal("CA77", result.Notification.CallID)
	rq.Empty(result.Degraded)

	rq.Equal("truck collision", p.lastDescription)
	rq.InDelta(48.86, p.lastCoords.Latitude, 1e-9)
	rq.InDelta(2.35, p.lastCoords.Longitude, 1e-9)
}

func TestPostV1Cases_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"broken json", `{"description":`},
		{"missing description", `{"latitude":48.86,"longitude":2.35}`},
		{"latitude out of range", `{"description":"crash","latitude":91,"longitude":0}`},
		{"longitude out of range", `{"description":"crash","latitude":0,"longitude":-181}`},
	}

	srv := newTestServer(&pipelineStub{}, &guardStub{})
	defer srv.Close()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rq := require.New(t)

			resp := postJSON(t, srv.URL+"/v1/cases", tt.body)
			rq.Equal(http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestPostV1Cases_PipelineInvalidInput(t *testing.T) {
	rq := require.New(t)

	p := &pipelineStub{err: domain.InvalidInput(errcodes.InvalidDescription, errors.New("description is empty"))}
	srv := newTestServer(p, &guardStub{})
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/v1/cases", `{"description":"   ","latitude":0,"longitude":0}`)
	rq.Equal(http.StatusBadRequest, resp.StatusCode)
}

func TestGetV1Usage(t *testing.T) {
	rq := require.New(t)

	g := &guardStub{report: usage.Report{
		Date:     "2026-08-28",
		DemoMode: false,
		Services: map[usage.Service]usage.ServiceUsage{
			usage.ServiceLLM:       {Used: 3, Limit: 100, Cost: 0.006},
			usage.ServiceTelephony: {Used: 1, Limit: 10, Minutes: 1, Cost: 0.013},
		},
		TotalCost: 0.019,
	}}

	srv := newTestServer(&pipelineStub{}, g)
	defer srv.Close()

	resp := getJSON(t, srv.URL+"/v1/usage")
	rq.Equal(http.StatusOK, resp.StatusCode)

	var report rest.UsageReport
	rq.NoError(json.NewDecoder(resp.Body).Decode(&report))
	rq.Equal("2026-08-28", report.Date)
	rq.Equal(3, report.Services["llm"].Used)
	rq.Equal(1, report.Services["telephony"].Minutes)
	rq.InDelta(0.019, report.TotalCost, 1e-9)
}

func TestDemoModeToggle(t *testing.T) {
	rq := require.New(t)

	g := &guardStub{}
	srv := newTestServer(&pipelineStub{}, g)
	defer srv.Close()

	readState := func(resp *http.Response) bool {
		var state rest.DemoMode
		rq.NoError(json.NewDecoder(resp.Body).Decode(&state))
		return state.Enabled
	}

	resp := getJSON(t, srv.URL+"/v1/demo-mode")
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.False(readState(resp))

	resp = postJSON(t, srv.URL+"/v1/demo-mode/enable", "")
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.True(readState(resp))
	rq.True(g.demoMode)

	resp = postJSON(t, srv.URL+"/v1/demo-mode/disable", "")
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.False(readState(resp))
	rq.False(g.demoMode)
}
