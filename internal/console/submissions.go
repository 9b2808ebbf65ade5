// Package console holds the screen-level workflows of the back-office
// console. Each operation returns a result or a classified error and never
// touches presentation.
package console

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/forms"
	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/lifecycle"
	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/models"
	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/outcome"
)

type SubmissionsBackend interface {
	ListSubmissions(ctx context.Context, f models.SubmissionFilter) ([]models.Submission, error)
	GetTemplate(ctx context.Context, id string) (*models.Template, error)
	UpdateSubmission(ctx context.Context, id string, upd models.SubmissionUpdate) (*models.Submission, error)
	ApproveSubmission(ctx context.Context, id, notes string) (*models.Submission, error)
	RejectSubmission(ctx context.Context, id, notes string) (*models.Submission, error)
}

// Submissions is the submission list with its fill and review actions.
type Submissions struct {
	backend SubmissionsBackend
	session models.Session

	Filter models.SubmissionFilter
	Tab    lifecycle.Tab

	loaded []models.Submission

	mu   sync.Mutex
	busy bool
}

func NewSubmissions(b SubmissionsBackend, s models.Session) *Submissions {
	return &Submissions{backend: b, session: s, Tab: lifecycle.TabAll}
}

// Load fetches the list again. On failure the previous rows stay.
func (s *Submissions) Load(ctx context.Context) error {
	subs, err := s.backend.ListSubmissions(ctx, s.Filter)
	if err != nil {
		return outcome.Backend("load submissions", err)
	}
	s.loaded = lifecycle.Visible(s.session, subs)
	return nil
}

// Rows returns the loaded submissions that fall under the current tab.
func (s *Submissions) Rows() []models.Submission {
	rows := append([]models.Submission{}, s.loaded...)
	return lifecycle.FilterTab(s.session, rows, s.Tab)
}

// FormView is an opened submission: its template, rendered fields and the
// answers being edited.
type FormView struct {
	Submission models.Submission
	Template   models.Template
	Fields     []forms.FieldView
	Editable   bool
	Answers    map[string]any
}

// Open fetches the submission's template fresh and renders the form,
// read-only unless the viewer may still fill it.
func (s *Submissions) Open(ctx context.Context, sub models.Submission) (*FormView, error) {
	t, err := s.backend.GetTemplate(ctx, sub.TemplateID)
	if err != nil {
		return nil, outcome.Backend("load template", err)
	}
	fv := &FormView{Template: *t}
	if err := fv.refresh(s.session, sub); err != nil {
		return nil, err
	}
	return fv, nil
}

func (fv *FormView) refresh(sess models.Session, sub models.Submission) error {
	editable := lifecycle.Editable(sess, &sub)
	fields, err := forms.Render(&fv.Template, sub.FilledData, !editable)
	if err != nil {
		return outcome.Denied("render form", err)
	}
	fv.Submission = sub
	fv.Editable = editable
	fv.Fields = fields
	fv.Answers = make(map[string]any, len(sub.FilledData))
	for k, v := range sub.FilledData {
		fv.Answers[k] = v
	}
	return nil
}

// SetAnswer records a local answer on an editable form.
func (fv *FormView) SetAnswer(fieldID string, v any) error {
	if !fv.Editable {
		return outcome.Invalid("answer", "this form is read-only")
	}
	fv.Answers[fieldID] = v
	return nil
}

// SaveDraft stores the current answers without changing status.
func (s *Submissions) SaveDraft(ctx context.Context, fv *FormView) error {
	return s.act(ctx, fv, lifecycle.ActionSaveDraft, "save draft", func() (*models.Submission, error) {
		return s.backend.UpdateSubmission(ctx, fv.Submission.ID, models.SubmissionUpdate{
			FilledData: fv.Answers,
			Status:     models.StatusPending,
		})
	})
}

// Submit sends the answers for review.
func (s *Submissions) Submit(ctx context.Context, fv *FormView) error {
	return s.act(ctx, fv, lifecycle.ActionSubmit, "submit form", func() (*models.Submission, error) {
		return s.backend.UpdateSubmission(ctx, fv.Submission.ID, models.SubmissionUpdate{
			FilledData: fv.Answers,
			Status:     models.StatusSubmitted,
		})
	})
}

func (s *Submissions) Approve(ctx context.Context, fv *FormView, notes string) error {
	return s.act(ctx, fv, lifecycle.ActionApprove, "approve form", func() (*models.Submission, error) {
		return s.backend.ApproveSubmission(ctx, fv.Submission.ID, notes)
	})
}

func (s *Submissions) Reject(ctx context.Context, fv *FormView, notes string) error {
	return s.act(ctx, fv, lifecycle.ActionReject, "reject form", func() (*models.Submission, error) {
		return s.backend.RejectSubmission(ctx, fv.Submission.ID, notes)
	})
}

// act runs one lifecycle action: a local check, a single request, then a
// re-render and list reload on success. A failed request leaves fv,
// including unsaved answers, untouched. Once the request has succeeded the
// action counts as done; a failed reload only keeps the old rows.
func (s *Submissions) act(ctx context.Context, fv *FormView, action lifecycle.Action, op string, send func() (*models.Submission, error)) error {
	if err := lifecycle.Check(s.session, &fv.Submission, action); err != nil {
		return outcome.Denied(op, err)
	}
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return outcome.Busy(op)
	}
	s.busy = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	updated, err := send()
	if err != nil {
		return outcome.Backend(op, err)
	}
	if err := fv.refresh(s.session, *updated); err != nil {
		return err
	}
	if err := s.Load(ctx); err != nil {
		slog.Warn("reload after action failed", "op", op, "submission_id", updated.ID, "err", err)
	}
	return nil
}

// Busy reports whether an action is in flight.
func (s *Submissions) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}
