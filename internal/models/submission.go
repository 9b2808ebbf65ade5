package models

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusSubmitted Status = "submitted"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusFlagged   Status = "flagged"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusSubmitted, StatusApproved, StatusRejected, StatusFlagged:
		return true
	}
	return false
}

type Submission struct {
	ID              string         `json:"id"`
	TemplateID      string         `json:"template_id"`
	TemplateName    string         `json:"template_name"`
	VesselID        string         `json:"vessel_id"`
	VesselName      string         `json:"vessel_name"`
	FilledData      map[string]any `json:"filled_data"`
	Status          Status         `json:"status"`
	AssignedTo      string         `json:"assigned_to,omitempty"`
	AssignedToName  string         `json:"assigned_to_name,omitempty"`
	AssignedBy      string         `json:"assigned_by,omitempty"`
	AssignedByName  string         `json:"assigned_by_name,omitempty"`
	AssignedAt      *time.Time     `json:"assigned_at,omitempty"`
	SubmittedBy     string         `json:"submitted_by,omitempty"`
	SubmittedByName string         `json:"submitted_by_name,omitempty"`
	SubmittedAt     *time.Time     `json:"submitted_at,omitempty"`
	ReviewedBy      string         `json:"reviewed_by,omitempty"`
	ReviewedByName  string         `json:"reviewed_by_name,omitempty"`
	ReviewedAt      *time.Time     `json:"reviewed_at,omitempty"`
	ApprovalNotes   string         `json:"approval_notes,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// TriggerWorkRequest asks the backend to fan templates out into pending
// submissions for a vessel.
type TriggerWorkRequest struct {
	VesselID        string   `json:"vessel_id" validate:"required"`
	FormCategory    Category `json:"form_category,omitempty" validate:"omitempty,oneof=Checklist Report ISM PMS HR"`
	TemplateIDs     []string `json:"template_ids,omitempty"`
	AssignedCrewIDs []string `json:"assigned_crew_ids,omitempty"`
	AssignToAllCrew bool     `json:"assign_to_all_crew"`
}

// SubmissionUpdate is the body of PUT /documents/submissions/{id}.
type SubmissionUpdate struct {
	FilledData    map[string]any `json:"filled_data,omitempty"`
	Status        Status         `json:"status,omitempty" validate:"omitempty,oneof=pending submitted approved rejected flagged"`
	ApprovalNotes string         `json:"approval_notes,omitempty"`
}

type SubmissionFilter struct {
	VesselID   string
	Status     Status
	TemplateID string
	AssignedTo string
}
