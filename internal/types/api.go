package types

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Strategy string `json:"strategy"`
}

// ErrorResponse is the body of every failed API request.
type ErrorResponse struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}
