package dto

import "time"

type ReportResponseDTO struct {
	ID          int       `json:"id" example:"1"`
	Status      string    `json:"status" example:"PROCESSED"`
	Fee         int64     `json:"fee" example:"25"`
	Body        string    `json:"body,omitempty" example:"Your top genre this month is synthwave."`
	RequestedAt time.Time `json:"requested_at" example:"2020-12-09T16:09:57+03:00"`
}
