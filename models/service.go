package models

// Service is an offering published by a technician. Price is optional.
type Service struct {
	ID           int      `json:"id"`
	TechnicianID int      `json:"technician_id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Price        *float64 `json:"price"`
}
