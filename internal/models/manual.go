package models

import "time"

type ManualType string

const (
	ManualFPM   ManualType = "FPM" // Fleet Procedures Manual
	ManualSMM   ManualType = "SMM" // Safety Management Manual
	ManualCPM   ManualType = "CPM" // Company Procedures Manual
	ManualOther ManualType = "Other"
)

type Manual struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	ManualType  ManualType `json:"manual_type"`
	Version     string     `json:"version"`
	FileURL     string     `json:"file_url"`
	Description string     `json:"description,omitempty"`
	CreatedBy   string     `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
