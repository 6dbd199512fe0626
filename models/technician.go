package models

import "time"

// Technician is the stored profile row.
type Technician struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	CategoryID  int       `json:"category_id"`
	Description string    `json:"description"`
	PhotoURL    string    `json:"photo_url"`
	WhatsApp    string    `json:"whatsapp"`
	CreatedAt   time.Time `json:"created_at"`
}

// TechnicianSummary is one row of the directory listing with its
// aggregated rating.
type TechnicianSummary struct {
	ID          int     `json:"id"`
	UserID      int     `json:"user_id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	PhotoURL    string  `json:"photo_url"`
	WhatsApp    string  `json:"whatsapp"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
}

type TechnicianDetail struct {
	TechnicianSummary
	Services []Service      `json:"services"`
	Reviews  []ReviewDetail `json:"reviews"`
}

// TechnicianContact is what the review notifier needs to reach a technician.
type TechnicianContact struct {
	TechnicianID int
	Name         string
	Email        string
}
