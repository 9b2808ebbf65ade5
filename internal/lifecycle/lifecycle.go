// Package lifecycle owns the submission state machine and the role rules
// around it. The server applies it before persisting; the console uses the
// same rules to decide what to offer.
//
//	pending --save draft--> pending
//	pending --submit------> submitted
//	submitted --approve---> approved
//	submitted --reject----> rejected
//
// flagged is a reserved status; nothing moves into or out of it.
package lifecycle

import (
	"fmt"
	"time"

	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/models"
)

type Action string

const (
	ActionSaveDraft Action = "save_draft"
	ActionSubmit    Action = "submit"
	ActionApprove   Action = "approve"
	ActionReject    Action = "reject"
)

// Terminal reports whether no further transition leaves s.
func Terminal(s models.Status) bool {
	return s == models.StatusApproved || s == models.StatusRejected
}

// Editable reports whether the viewer may change the answers: only the
// assigned crew member, and only while the form is pending.
func Editable(s models.Session, sub *models.Submission) bool {
	return Check(s, sub, ActionSaveDraft) == nil
}

// Check returns nil when the caller may perform action on sub in its
// current state.
func Check(s models.Session, sub *models.Submission, action Action) error {
	if !s.Active {
		return fmt.Errorf("user account is inactive: %w", models.ErrForbidden)
	}
	switch action {
	case ActionSaveDraft, ActionSubmit:
		if !s.IsCrew() || sub.AssignedTo == "" || sub.AssignedTo != s.UserID {
			return fmt.Errorf("only the assigned crew member can fill this form: %w", models.ErrForbidden)
		}
		if sub.Status != models.StatusPending {
			return fmt.Errorf("cannot edit a %s form: %w", sub.Status, models.ErrInvalidTransition)
		}
	case ActionApprove, ActionReject:
		if !s.IsMaster() {
			return fmt.Errorf("master access required: %w", models.ErrForbidden)
		}
		if sub.Status != models.StatusSubmitted {
			return fmt.Errorf("form is not in submitted state: %w", models.ErrInvalidTransition)
		}
	default:
		return fmt.Errorf("unknown action %q: %w", action, models.ErrValidation)
	}
	return nil
}

// Change carries the payload of a transition.
type Change struct {
	FilledData map[string]any
	Notes      string
	At         time.Time
}

// Apply checks and performs action on sub in place.
func Apply(s models.Session, sub *models.Submission, action Action, c Change) error {
	if err := Check(s, sub, action); err != nil {
		return err
	}
	at := c.At
	if at.IsZero() {
		at = time.Now().UTC()
	}
	switch action {
	case ActionSaveDraft:
		if c.FilledData != nil {
			sub.FilledData = copyData(c.FilledData)
		}
	case ActionSubmit:
		if c.FilledData != nil {
			sub.FilledData = copyData(c.FilledData)
		}
		sub.Status = models.StatusSubmitted
		sub.SubmittedBy = s.UserID
		sub.SubmittedByName = s.Name
		sub.SubmittedAt = &at
	case ActionApprove, ActionReject:
		sub.Status = models.StatusApproved
		if action == ActionReject {
			sub.Status = models.StatusRejected
		}
		sub.ReviewedBy = s.UserID
		sub.ReviewedByName = s.Name
		sub.ReviewedAt = &at
		if c.Notes != "" {
			sub.ApprovalNotes = c.Notes
		}
	}
	sub.UpdatedAt = at
	return nil
}

// ActionFor maps the status requested in an update body onto an action.
// An empty or pending status is a draft save.
func ActionFor(status models.Status) (Action, error) {
	switch status {
	case "", models.StatusPending:
		return ActionSaveDraft, nil
	case models.StatusSubmitted:
		return ActionSubmit, nil
	case models.StatusApproved:
		return ActionApprove, nil
	case models.StatusRejected:
		return ActionReject, nil
	}
	return "", fmt.Errorf("status %q cannot be requested: %w", status, models.ErrInvalidTransition)
}

func copyData(d map[string]any) map[string]any {
	out := make(map[string]any, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}
