package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/forms"
	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/lifecycle"
	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/models"
	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/repository"
)

type SubmissionService struct {
	subs      *repository.SubmissionRepo
	templates *repository.TemplateRepo
	vessels   *repository.VesselRepo
	users     *repository.UserRepo
}

func NewSubmissionService(subs *repository.SubmissionRepo, templates *repository.TemplateRepo, vessels *repository.VesselRepo, users *repository.UserRepo) *SubmissionService {
	return &SubmissionService{subs: subs, templates: templates, vessels: vessels, users: users}
}

// TriggerWork expands a request into one pending submission per template
// and assignee. Explicit crew ids win over assign_to_all_crew; with neither,
// each template gets one vessel-wide submission with no assignee.
func (s *SubmissionService) TriggerWork(ctx context.Context, sess models.Session, req models.TriggerWorkRequest) ([]models.Submission, error) {
	if !sess.Active || !sess.CanManageTemplates() {
		return nil, fmt.Errorf("staff or master access required: %w", models.ErrForbidden)
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	vessel, err := s.vessels.FindByID(ctx, req.VesselID)
	if err != nil {
		return nil, err
	}
	if vessel == nil {
		return nil, fmt.Errorf("vessel: %w", models.ErrNotFound)
	}

	templates, err := s.resolveTemplates(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		return nil, fmt.Errorf("no templates found: %w", models.ErrNotFound)
	}

	assignees, scoped, err := s.resolveAssignees(ctx, vessel.ID, req)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var subs []models.Submission
	for _, t := range templates {
		base := models.Submission{
			TemplateID:     t.ID,
			TemplateName:   t.Name,
			VesselID:       vessel.ID,
			VesselName:     vessel.Name,
			FilledData:     map[string]any{},
			Status:         models.StatusPending,
			AssignedBy:     sess.UserID,
			AssignedByName: sess.Name,
			AssignedAt:     &now,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if !scoped {
			subs = append(subs, base)
			continue
		}
		for _, u := range assignees {
			sub := base
			sub.FilledData = map[string]any{}
			sub.AssignedTo = u.ID
			sub.AssignedToName = u.Name
			subs = append(subs, sub)
		}
	}
	if len(subs) == 0 {
		slog.Warn("trigger work resolved no assignees", "vessel_id", vessel.ID, "templates", len(templates), "by", sess.UserID)
		return []models.Submission{}, nil
	}
	if err := s.subs.CreateBatch(ctx, subs); err != nil {
		return nil, fmt.Errorf("create submissions: %w", err)
	}
	slog.Info("work triggered",
		"vessel_id", vessel.ID,
		"templates", len(templates),
		"assignees", len(assignees),
		"submissions", len(subs),
		"by", sess.UserID,
	)
	return subs, nil
}

func (s *SubmissionService) resolveTemplates(ctx context.Context, req models.TriggerWorkRequest) ([]models.Template, error) {
	if len(req.TemplateIDs) > 0 {
		return s.templates.FindByIDs(ctx, dedupe(req.TemplateIDs))
	}
	if req.FormCategory != "" {
		return s.templates.FindAll(ctx, req.FormCategory)
	}
	return nil, fmt.Errorf("template_ids or form_category is required: %w", models.ErrValidation)
}

// resolveAssignees returns the crew to assign and whether the request is
// crew-scoped at all. Explicit ids that are not active crew on the vessel
// are skipped.
func (s *SubmissionService) resolveAssignees(ctx context.Context, vesselID string, req models.TriggerWorkRequest) ([]models.User, bool, error) {
	switch {
	case len(req.AssignedCrewIDs) > 0:
		users, err := s.users.FindByIDs(ctx, dedupe(req.AssignedCrewIDs))
		if err != nil {
			return nil, true, err
		}
		out := make([]models.User, 0, len(users))
		for _, u := range users {
			if u.Active && u.IsCrewOn(vesselID) {
				out = append(out, u)
			}
		}
		return out, true, nil
	case req.AssignToAllCrew:
		users, err := s.users.Find(ctx, vesselID, models.RoleCrew)
		if err != nil {
			return nil, true, err
		}
		return activeOnly(users), true, nil
	}
	return nil, false, nil
}

// List returns the submissions the caller may see. Crew are pinned to their
// own assignments and a master with a ship to that vessel.
func (s *SubmissionService) List(ctx context.Context, sess models.Session, f models.SubmissionFilter) ([]models.Submission, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, fmt.Errorf("unknown status %q: %w", f.Status, models.ErrValidation)
	}
	switch {
	case sess.IsCrew():
		f.AssignedTo = sess.UserID
	case sess.IsMaster() && sess.ShipID != "":
		if f.VesselID != "" && f.VesselID != sess.ShipID {
			return []models.Submission{}, nil
		}
		f.VesselID = sess.ShipID
	}
	subs, err := s.subs.Find(ctx, f)
	if err != nil {
		return nil, err
	}
	return lifecycle.Visible(sess, subs), nil
}

func (s *SubmissionService) Get(ctx context.Context, sess models.Session, id string) (*models.Submission, error) {
	sub, err := s.subs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, fmt.Errorf("submission: %w", models.ErrNotFound)
	}
	if !canSee(sess, sub) {
		return nil, fmt.Errorf("submission %s: %w", id, models.ErrForbidden)
	}
	return sub, nil
}

func canSee(sess models.Session, sub *models.Submission) bool {
	switch {
	case sess.IsCrew():
		return sub.AssignedTo == sess.UserID
	case sess.IsMaster() && sess.ShipID != "":
		return sub.VesselID == sess.ShipID
	}
	return true
}

// Update applies a PUT body. The requested status picks the lifecycle
// action; a reviewer sending only notes annotates without a transition.
func (s *SubmissionService) Update(ctx context.Context, sess models.Session, id string, upd models.SubmissionUpdate) (*models.Submission, error) {
	if err := validateStruct(upd); err != nil {
		return nil, err
	}
	sub, err := s.Get(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	if !sess.IsCrew() && upd.Status == "" && upd.FilledData == nil {
		return s.annotate(ctx, sess, sub, upd.ApprovalNotes)
	}
	action, err := lifecycle.ActionFor(upd.Status)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, sess, sub, action, lifecycle.Change{
		FilledData: upd.FilledData,
		Notes:      upd.ApprovalNotes,
	})
}

func (s *SubmissionService) Approve(ctx context.Context, sess models.Session, id, notes string) (*models.Submission, error) {
	sub, err := s.Get(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, sess, sub, lifecycle.ActionApprove, lifecycle.Change{Notes: notes})
}

func (s *SubmissionService) Reject(ctx context.Context, sess models.Session, id, notes string) (*models.Submission, error) {
	sub, err := s.Get(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, sess, sub, lifecycle.ActionReject, lifecycle.Change{Notes: notes})
}

func (s *SubmissionService) transition(ctx context.Context, sess models.Session, sub *models.Submission, action lifecycle.Action, c lifecycle.Change) (*models.Submission, error) {
	if err := lifecycle.Check(sess, sub, action); err != nil {
		return nil, err
	}
	if action == lifecycle.ActionSubmit {
		t, err := s.templates.FindByID(ctx, sub.TemplateID)
		if err != nil {
			return nil, err
		}
		if t == nil {
			return nil, fmt.Errorf("template %s: %w", sub.TemplateID, models.ErrNotFound)
		}
		answers := c.FilledData
		if answers == nil {
			answers = sub.FilledData
		}
		if err := forms.ValidateAnswers(t.Fields, answers); err != nil {
			return nil, err
		}
	}
	from := sub.Status
	if err := lifecycle.Apply(sess, sub, action, c); err != nil {
		return nil, err
	}
	if err := s.subs.Transition(ctx, sub, from); err != nil {
		return nil, fmt.Errorf("submission %s: %w", sub.ID, err)
	}
	slog.Info("submission updated", "submission_id", sub.ID, "action", action, "from", from, "to", sub.Status, "by", sess.UserID)
	return sub, nil
}

func (s *SubmissionService) annotate(ctx context.Context, sess models.Session, sub *models.Submission, notes string) (*models.Submission, error) {
	if !sess.Active {
		return nil, fmt.Errorf("user account is inactive: %w", models.ErrForbidden)
	}
	from := sub.Status
	sub.ApprovalNotes = notes
	sub.UpdatedAt = time.Now().UTC()
	if err := s.subs.Transition(ctx, sub, from); err != nil {
		return nil, fmt.Errorf("submission %s: %w", sub.ID, err)
	}
	return sub, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
