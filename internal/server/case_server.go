package server

import (
	"context"
	"fmt"
	"net/http"

	"git.appkode.ru/pub/go/failure"

	"emergency_response/internal/domain/entity"
	"emergency_response/internal/domain/value"
	"emergency_response/pkg/errcodes"
	"emergency_response/pkg/httpx/reply"
	"emergency_response/pkg/httpx/req"
	"emergency_response/pkg/rest"
)

type casePipeline interface {
	Handle(ctx context.Context, description string, coords value.Coordinates) (entity.Result, error)
}

type CaseServer struct {
	pipeline casePipeline
}

func NewCaseServer(pipeline casePipeline) CaseServer {
	return CaseServer{
		pipeline: pipeline,
	}
}

func (s CaseServer) postV1Cases(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.Case

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	coords, err := value.NewCoordinates(request.Latitude, request.Longitude)
	if err != nil {
		return failure.NewInvalidArgumentErrorFromError(
			fmt.Errorf("value.NewCoordinates: %w", err),
			failure.WithCode(errcodes.InvalidCoordinates),
		)
	}

	result, err := s.pipeline.Handle(ctx, request.Description, coords)
	if err != nil {
		return fmt.Errorf("pipeline.Handle: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTCaseResult(result))

	return nil
}
