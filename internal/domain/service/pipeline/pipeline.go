package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/xid"

	"emergency_response/internal/domain/entity"
	"emergency_response/internal/domain/value"
	"emergency_response/internal/observability"
	"emergency_response/pkg/contextx"
	"emergency_response/pkg/logx"
)

type classifier interface {
	Classify(ctx context.Context, accident entity.Case) (entity.Assessment, error)
}

type locator interface {
	Locate(ctx context.Context, coords value.Coordinates) entity.FacilityList
}

type dispatcher interface {
	Notify(ctx context.Context, caseID string, facility *entity.Facility, message string) entity.Notification
}

// stage is a pipeline position. Transitions are linear; the only branch is
// after locate, on severity.
type stage string

const (
	stageClassify   stage = "classify"
	stageLocate     stage = "locate"
	stageNotify     stage = "notify"
	stageSkipNotify stage = "skip_notify"
	stageDone       stage = "done"
)

// Pipeline runs a case through classify, locate and notify in order. Each
// stage has its own deadline. Stages never undo earlier work: once the
// classification is in hand, every later failure degrades, it does not
// abort.
type Pipeline struct {
	classifier classifier
	locator    locator
	dispatcher dispatcher
	metrics    *observability.Metrics

	clock        clockwork.Clock
	stageTimeout time.Duration
}

func NewPipeline(
	classifier classifier,
	locator locator,
	dispatcher dispatcher,
	metrics *observability.Metrics,
	stageTimeout time.Duration,
) *Pipeline {
	return &Pipeline{
		classifier:   classifier,
		locator:      locator,
		dispatcher:   dispatcher,
		metrics:      metrics,
		clock:        clockwork.NewRealClock(),
		stageTimeout: stageTimeout,
	}
}

func (p *Pipeline) WithClock(clock clockwork.Clock) *Pipeline {
	p.clock = clock
	return p
}

// Handle processes one accident report end to end. The only error it can
// return is an invalid-input error from the classify stage; everything else
// resolves to a degraded but complete Result.
func (p *Pipeline) Handle(ctx context.Context, description string, coords value.Coordinates) (entity.Result, error) {
	logger := contextx.LoggerFromContextOrDefault(ctx)
	started := p.clock.Now()

	result := entity.Result{
		Case: entity.Case{
			ID:          xid.New().String(),
			Description: description,
			Coordinates: coords,
			CreatedAt:   started.UTC(),
		},
	}
	logger = logger.With(logx.FieldCaseID, result.Case.ID)
	ctx = contextx.WithLogger(ctx, logger)

	for current := stageClassify; current != stageDone; {
		logger.Debug("pipeline stage", logx.FieldStage, string(current))

		next, err := p.run(ctx, current, &result)
		if err != nil {
			return entity.Result{}, fmt.Errorf("stage %s: %w", current, err)
		}
		current = next
	}

	p.metrics.CasesTotal.WithLabelValues(string(result.Assessment.Severity)).Inc()
	p.metrics.PipelineDuration.Observe(p.clock.Since(started).Seconds())

	logger.Info("case processed",
		logx.FieldSeverity, string(result.Assessment.Severity),
		"degraded", result.Degraded(),
	)

	return result, nil
}

func (p *Pipeline) run(ctx context.Context, current stage, result *entity.Result) (stage, error) {
	ctx, cancel := context.WithTimeout(ctx, p.stageTimeout)
	defer cancel()

	switch current {
	case stageClassify:
		assessment, err := p.classifier.Classify(ctx, result.Case)
		if err != nil {
			return stageDone, err
		}
		result.Assessment = assessment
		if assessment.Fallback {
			p.metrics.Fallbacks.WithLabelValues(string(stageClassify)).Inc()
		}
		return stageLocate, nil

	case stageLocate:
		result.Facilities = p.locator.Locate(ctx, result.Case.Coordinates)
		if result.Facilities.Fallback {
			p.metrics.Fallbacks.WithLabelValues(string(stageLocate)).Inc()
		}
		if result.Assessment.Severity.IsMajorTrauma() {
			return stageNotify, nil
		}
		return stageSkipNotify, nil

	case stageNotify:
		notification := p.dispatcher.Notify(ctx, result.Case.ID, result.Facilities.Best(), callMessage(*result))
		result.Notification = &notification
		return stageDone, nil

	case stageSkipNotify:
		// Minor severity: the notify stage is skipped entirely, which is
		// distinct from a skipped notification.
		return stageDone, nil
	}

	return stageDone, fmt.Errorf("unknown stage %q", current)
}

// callMessage builds the text spoken on the outbound call.
func callMessage(result entity.Result) string {
	var b strings.Builder

	b.WriteString("Emergency alert. Severity: ")
	b.WriteString(strings.ReplaceAll(string(result.Assessment.Severity), "_", " "))
	b.WriteString(". ")
	b.WriteString(result.Assessment.Summary)
	if !strings.HasSuffix(result.Assessment.Summary, ".") {
		b.WriteString(".")
	}
	b.WriteString(" Location: ")
	b.WriteString(result.Assessment.Location)
	b.WriteString(".")

	if best := result.Facilities.Best(); best != nil {
		b.WriteString(" Nearest facility: ")
		b.WriteString(best.Name)
		b.WriteString(", ")
		b.WriteString(best.Address)
		b.WriteString(".")
	}

	return b.String()
}
