package models

import "time"

type Review struct {
	ID           int       `json:"id"`
	TechnicianID int       `json:"technician_id"`
	UserID       int       `json:"user_id"`
	Rating       int       `json:"rating"`
	Comment      *string   `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
}

// ReviewDetail is a review as shown on a technician page, with the
// reviewer's display name.
type ReviewDetail struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UserName  string    `json:"user_name"`
}
