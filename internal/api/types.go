package api

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is returned by the health check
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// Error codes returned in ErrorResponse.Error
const (
	CodeInvalidInput     = "invalid_input"
	CodeEmptyContent     = "empty_content"
	CodeUpstreamProvider = "upstream_provider_error"
	CodeMalformedInput   = "malformed_input"
	CodeStorage          = "storage_error"
	CodeInternal         = "internal_error"
)
