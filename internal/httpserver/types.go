package httpserver

import "time"

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}

// ErrorResponse reports a rejected request
type ErrorResponse struct {
	Error string `json:"error"`
}
