package lifecycle

import "github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/models"

// Tab is one of the submission list filters.
type Tab string

const (
	TabAll     Tab = "all"
	TabPending Tab = "pending"
	TabAction  Tab = "action"
)

// Visible returns the submissions the viewer may list. Crew see exactly the
// forms assigned to them; staff and masters see everything.
func Visible(s models.Session, subs []models.Submission) []models.Submission {
	out := make([]models.Submission, 0, len(subs))
	for _, sub := range subs {
		if s.IsCrew() && (sub.AssignedTo == "" || sub.AssignedTo != s.UserID) {
			continue
		}
		out = append(out, sub)
	}
	return out
}

// NeedsAction reports whether sub is waiting on the viewer: masters and
// staff review submitted forms, crew fill their pending ones.
func NeedsAction(s models.Session, sub *models.Submission) bool {
	switch s.Role {
	case models.RoleMaster, models.RoleStaff:
		return sub.Status == models.StatusSubmitted
	case models.RoleCrew:
		return sub.Status == models.StatusPending && sub.AssignedTo == s.UserID
	}
	return false
}

// FilterTab applies visibility and then the tab filter.
func FilterTab(s models.Session, subs []models.Submission, tab Tab) []models.Submission {
	visible := Visible(s, subs)
	out := visible[:0]
	for _, sub := range visible {
		switch tab {
		case TabPending:
			if sub.Status != models.StatusPending {
				continue
			}
		case TabAction:
			if !NeedsAction(s, &sub) {
				continue
			}
		}
		out = append(out, sub)
	}
	return out
}
