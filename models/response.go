package models

type ErrorResponse struct {
	Message string `json:"message"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationErrorResponse struct {
	Errors []FieldError `json:"errors"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

type PhotoResponse struct {
	PhotoURL string `json:"photo_url"`
}

// TableCount is one line of the maintenance "check" report.
type TableCount struct {
	Table string
	Count int
}

const ServiceUnavailableMessage = "Servicio no disponible."
