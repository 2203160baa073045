package models

// FailureStage names the pipeline step an error came from
type FailureStage string

const (
	StageRankedIDs FailureStage = "ranked_ids"
	StageDetail    FailureStage = "detail"
	StageCache     FailureStage = "cache"
)

// FailureDecision is the outcome of classifying an error
type FailureDecision int

const (
	// DecisionAbort fails the whole request
	DecisionAbort FailureDecision = iota
	// DecisionTolerate drops the affected story and carries on
	DecisionTolerate
)

func (d FailureDecision) String() string {
	switch d {
	case DecisionAbort:
		return "abort"
	case DecisionTolerate:
		return "tolerate"
	default:
		return "unknown"
	}
}
