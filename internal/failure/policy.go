package failure

import (
	"go.uber.org/zap"

	"go-best-stories/internal/interfaces"
	"go-best-stories/internal/metrics"
	"go-best-stories/internal/models"
)

// Ensure Policy implements interfaces.FailurePolicy
var _ interfaces.FailurePolicy = (*Policy)(nil)

// Policy decides whether a pipeline error aborts the request.
// By default every error aborts. With tolerateDetailErrors a story whose
// detail fetch failed upstream is skipped instead; cache errors, ranked-id
// errors and cancellation still abort.
type Policy struct {
	tolerateDetailErrors bool
	logger               *zap.Logger
}

// NewPolicy creates a failure policy
func NewPolicy(tolerateDetailErrors bool, logger *zap.Logger) *Policy {
	return &Policy{
		tolerateDetailErrors: tolerateDetailErrors,
		logger:               logger,
	}
}

// Classify returns the decision for err raised at stage
func (p *Policy) Classify(stage models.FailureStage, err error) models.FailureDecision {
	category := Categorize(err)
	decision := p.decide(stage, category)

	metrics.RecordFailureDecision(string(stage), string(category), decision.String())
	if decision == models.DecisionTolerate && err != nil {
		p.logger.Warn("Tolerating pipeline error",
			zap.String("stage", string(stage)),
			zap.String("category", string(category)),
			zap.Error(err))
	}

	return decision
}

func (p *Policy) decide(stage models.FailureStage, category Category) models.FailureDecision {
	if category == NoError {
		return models.DecisionTolerate
	}
	if !p.tolerateDetailErrors || stage != models.StageDetail {
		return models.DecisionAbort
	}

	switch category {
	case UpstreamUnavailable, MalformedResponse:
		return models.DecisionTolerate
	default:
		return models.DecisionAbort
	}
}
