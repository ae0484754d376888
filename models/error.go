package models

// ErrorMessageResponse returns the body of an error response
type ErrorMessageResponse struct {
	Response MessageError `json:"response"`
}

// MessageError contains the inner details for the error message response
type MessageError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// HealthCheckResponse returns the body of the healthcheck response
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}

// Pagination represents pagination information
type Pagination struct {
	CurrentPage  int64 `json:"currentPage"`
	TotalPages   int64 `json:"totalPages"`
	TotalRecords int64 `json:"totalRecords"`
	Limit        int64 `json:"limit"`
}
