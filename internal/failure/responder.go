package failure

import (
	"encoding/json"
	"net/http"
	"os"

	"go.uber.org/zap"
)

const (
	problemContentType = "application/problem+json"
	problemType        = "https://tools.ietf.org/html/rfc9110#section-15.6.1"
	problemTitle       = "An error occurred while processing your request."

	// GenericDetail is the only failure text production callers see
	GenericDetail = "Hacker News Api does not work."
)

// ProblemDetails is an RFC 9457 problem document
type ProblemDetails struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail"`
	Instance string `json:"instance"`
}

// Responder renders aborted requests. Production hides the error text
// behind GenericDetail; development passes it through.
type Responder struct {
	production bool
	instance   string
	logger     *zap.Logger
}

// NewResponder creates a responder. An empty instance falls back to the host name.
func NewResponder(production bool, instance string, logger *zap.Logger) *Responder {
	if instance == "" {
		instance = hostname()
	}
	return &Responder{
		production: production,
		instance:   instance,
		logger:     logger,
	}
}

func hostname() string {
	name, err := os.Hostname()
	if err != nil || name == "" {
		return "unknown"
	}
	return name
}

// Problem builds the problem document for err
func (r *Responder) Problem(err error) ProblemDetails {
	detail := GenericDetail
	if !r.production && err != nil {
		detail = err.Error()
	}

	return ProblemDetails{
		Type:     problemType,
		Title:    problemTitle,
		Status:   http.StatusInternalServerError,
		Detail:   detail,
		Instance: r.instance,
	}
}

// Write sends the problem document for err as a 500 response
func (r *Responder) Write(w http.ResponseWriter, err error) {
	problem := r.Problem(err)

	r.logger.Error("Request aborted",
		zap.String("category", string(Categorize(err))),
		zap.Error(err))

	w.Header().Set("Content-Type", problemContentType)
	w.WriteHeader(problem.Status)
	if encErr := json.NewEncoder(w).Encode(problem); encErr != nil {
		r.logger.Error("Failed to encode problem response", zap.Error(encErr))
	}
}
