package triage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"emergency_response/internal/domain"
	"emergency_response/internal/domain/entity"
	"emergency_response/internal/domain/value"
	"emergency_response/internal/observability"
	"emergency_response/internal/usage"
	"emergency_response/pkg/contextx"
	"emergency_response/pkg/errcodes"
	"emergency_response/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type model interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

type guard interface {
	Acquire(ctx context.Context, service usage.Service) bool
}

// Classifier assigns a severity to an accident description. When a language
// model is attached and the usage guard admits the call, the model decides;
// in every other case the keyword rules in fallback.go do.
type Classifier struct {
	model   model
	guard   guard
	metrics *observability.Metrics
}

func NewClassifier(guard guard, metrics *observability.Metrics) *Classifier {
	return &Classifier{
		guard:   guard,
		metrics: metrics,
	}
}

// WithModel attaches a language model. Without one the classifier runs in
// rule-based mode only.
func (c *Classifier) WithModel(m model) *Classifier {
	c.model = m
	return c
}

type modelReply struct {
	Severity string `json:"severity"`
	FirstAid string `json:"first_aid"`
	Location string `json:"location"`
	Summary  string `json:"summary"`
}

// Classify produces an assessment for the given case. The only error it can
// return is an invalid-input error for an empty description; every upstream
// problem is absorbed by the rule-based fallback.
func (c *Classifier) Classify(ctx context.Context, accident entity.Case) (entity.Assessment, error) {
	logger := contextx.LoggerFromContextOrDefault(ctx)

	description := strings.TrimSpace(accident.Description)
	if description == "" {
		return entity.Assessment{}, domain.InvalidInput(errcodes.InvalidDescription, errors.New("description is empty"))
	}
	locationHint := accident.Coordinates.String()

	if c.model == nil {
		return classifyByRules(description, locationHint), nil
	}
	if !c.guard.Acquire(ctx, usage.ServiceLLM) {
		logger.Warn("llm call budget exhausted, classifying by rules",
			logx.FieldCaseID, accident.ID, logx.Error(domain.ErrQuotaExceeded))
		c.metrics.ExternalCalls.WithLabelValues(string(usage.ServiceLLM), "refused").Inc()
		return classifyByRules(description, locationHint), nil
	}

	assessment, err := c.classifyByModel(ctx, description, locationHint)
	if err != nil {
		logger.Warn("model classification failed, classifying by rules",
			logx.FieldCaseID, accident.ID, logx.Error(domain.Unavailable(err)))
		c.metrics.ExternalCalls.WithLabelValues(string(usage.ServiceLLM), "error").Inc()
		return classifyByRules(description, locationHint), nil
	}
	c.metrics.ExternalCalls.WithLabelValues(string(usage.ServiceLLM), "success").Inc()
	return assessment, nil
}

func (c *Classifier) classifyByModel(ctx context.Context, description, locationHint string) (entity.Assessment, error) {
	prompt := userPrompt(description, locationHint)

	reply, err := c.model.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		return entity.Assessment{}, fmt.Errorf("complete: %w", err)
	}
	assessment, err := parseReply(reply, description, locationHint)
	if err == nil {
		return assessment, nil
	}

	// One retry with a stricter instruction, then give up.
	reply, retryErr := c.model.Complete(ctx, strictSystemPrompt, prompt)
	if retryErr != nil {
		return entity.Assessment{}, fmt.Errorf("complete retry: %w", retryErr)
	}
	assessment, retryErr = parseReply(reply, description, locationHint)
	if retryErr != nil {
		return entity.Assessment{}, fmt.Errorf("parse reply: %w", errors.Join(err, retryErr))
	}
	return assessment, nil
}

func userPrompt(description, locationHint string) string {
	return fmt.Sprintf("Accident description: %s\nLocation: %s", description, locationHint)
}

func parseReply(reply, description, locationHint string) (entity.Assessment, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end < start {
		return entity.Assessment{}, errors.New("no json object in reply")
	}

	var parsed modelReply
	if err := json.UnmarshalFromString(reply[start:end+1], &parsed); err != nil {
		return entity.Assessment{}, fmt.Errorf("unmarshal reply: %w", err)
	}
	severity, err := value.ParseSeverity(parsed.Severity)
	if err != nil {
		return entity.Assessment{}, fmt.Errorf("parse severity: %w", err)
	}
	if strings.TrimSpace(parsed.FirstAid) == "" {
		return entity.Assessment{}, errors.New("empty first_aid in reply")
	}

	assessment := entity.Assessment{
		Severity: severity,
		FirstAid: strings.TrimSpace(parsed.FirstAid),
		Location: strings.TrimSpace(parsed.Location),
		Summary:  strings.TrimSpace(parsed.Summary),
	}
	if assessment.Location == "" || strings.EqualFold(assessment.Location, "unknown") {
		assessment.Location = locationHint
	}
	if assessment.Summary == "" {
		assessment.Summary = "Emergency reported: " + description
	}
	return assessment, nil
}
