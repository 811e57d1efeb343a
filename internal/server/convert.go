package server

import (
	"github.com/samber/lo"

	"emergency_response/internal/domain/entity"
	"emergency_response/internal/usage"
	"emergency_response/pkg/rest"
)

func newRESTCaseResult(result entity.Result) rest.CaseResult {
	out := rest.CaseResult{
		CaseID:     result.Case.ID,
		Severity:   string(result.Assessment.Severity),
		FirstAid:   result.Assessment.FirstAid,
		Location:   result.Assessment.Location,
		Summary:    result.Assessment.Summary,
		Facilities: lo.Map(result.Facilities.Facilities, newRESTFacility),
		Degraded:   result.Degraded(),
	}

	if best := result.Facilities.Best(); best != nil {
		out.BestFacility = lo.ToPtr(newRESTFacility(*best, 0))
	}

	if result.Notification != nil {
		out.Notification = &rest.Notification{
			Status: string(result.Notification.Status),
			CallID: result.Notification.CallID,
			Reason: string(result.Notification.Reason),
			Cause:  result.Notification.Cause,
		}
	}

	return out
}

func newRESTFacility(facility entity.Facility, _ int) rest.Facility {
	return rest.Facility{
		Name:        facility.Name,
		Address:     facility.Address,
		Rating:      facility.Rating,
		ReviewCount: facility.ReviewCount,
		Phone:       facility.Phone,
	}
}

func newRESTUsageReport(report usage.Report) rest.UsageReport {
	services := make(map[string]rest.ServiceUsage, len(report.Services))
	for service, usageLine := range report.Services {
		services[string(service)] = rest.ServiceUsage{
			Used:    usageLine.Used,
			Limit:   usageLine.Limit,
			Minutes: usageLine.Minutes,
			Cost:    usageLine.Cost,
		}
	}

	return rest.UsageReport{
		Date:      report.Date,
		DemoMode:  report.DemoMode,
		Services:  services,
		TotalCost: report.TotalCost,
	}
}
