package console

import (
	"context"
	"errors"
	"testing"

	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/lifecycle"
	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/models"
	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/outcome"
)

var (
	ana    = models.Session{UserID: "ana", Role: models.RoleCrew, ShipID: "v1", Active: true}
	capt   = models.Session{UserID: "capt", Role: models.RoleMaster, ShipID: "v1", Active: true}
	office = models.Session{UserID: "office", Role: models.RoleStaff, Active: true}
)

// fakeAPI keeps submissions in memory and applies the same lifecycle the
// server does.
type fakeAPI struct {
	subs     map[string]*models.Submission
	tmpl     models.Template
	fail     error
	listErr  error
	updates  int
	listings int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		tmpl: models.Template{ID: "t1", Name: "Round", Fields: []models.FieldSchema{
			{ID: "f1", Label: "Remarks", Type: models.FieldText, Required: true},
		}},
		subs: map[string]*models.Submission{
			"s1": {ID: "s1", TemplateID: "t1", VesselID: "v1", Status: models.StatusPending, AssignedTo: "ana", FilledData: map[string]any{}},
			"s2": {ID: "s2", TemplateID: "t1", VesselID: "v1", Status: models.StatusSubmitted, AssignedTo: "ben", FilledData: map[string]any{"f1": "done"}},
		},
	}
}

func (a *fakeAPI) ListSubmissions(_ context.Context, _ models.SubmissionFilter) ([]models.Submission, error) {
	a.listings++
	if a.listErr != nil {
		return nil, a.listErr
	}
	out := []models.Submission{}
	for _, id := range []string{"s1", "s2"} {
		out = append(out, *a.subs[id])
	}
	return out, nil
}

func (a *fakeAPI) GetTemplate(context.Context, string) (*models.Template, error) {
	t := a.tmpl
	return &t, nil
}

func (a *fakeAPI) UpdateSubmission(_ context.Context, id string, upd models.SubmissionUpdate) (*models.Submission, error) {
	a.updates++
	if a.fail != nil {
		return nil, a.fail
	}
	sub := a.subs[id]
	action, _ := lifecycle.ActionFor(upd.Status)
	if err := lifecycle.Apply(ana, sub, action, lifecycle.Change{FilledData: upd.FilledData}); err != nil {
		return nil, err
	}
	out := *sub
	return &out, nil
}

func (a *fakeAPI) ApproveSubmission(_ context.Context, id, notes string) (*models.Submission, error) {
	return a.review(id, lifecycle.ActionApprove, notes)
}

func (a *fakeAPI) RejectSubmission(_ context.Context, id, notes string) (*models.Submission, error) {
	return a.review(id, lifecycle.ActionReject, notes)
}

func (a *fakeAPI) review(id string, action lifecycle.Action, notes string) (*models.Submission, error) {
	if a.fail != nil {
		return nil, a.fail
	}
	sub := a.subs[id]
	if err := lifecycle.Apply(capt, sub, action, lifecycle.Change{Notes: notes}); err != nil {
		return nil, err
	}
	out := *sub
	return &out, nil
}

func TestSubmissions_Tabs(t *testing.T) {
	api := newFakeAPI()
	ctx := context.Background()

	crew := NewSubmissions(api, ana)
	if err := crew.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if rows := crew.Rows(); len(rows) != 1 || rows[0].ID != "s1" {
		t.Fatalf("crew rows = %+v", rows)
	}

	master := NewSubmissions(api, capt)
	master.Load(ctx)
	master.Tab = lifecycle.TabAction
	if rows := master.Rows(); len(rows) != 1 || rows[0].ID != "s2" {
		t.Fatalf("master action rows = %+v", rows)
	}
	master.Tab = lifecycle.TabAll
	if rows := master.Rows(); len(rows) != 2 {
		t.Fatalf("master all rows = %d", len(rows))
	}
}

func TestSubmissions_FillAndSubmit(t *testing.T) {
	api := newFakeAPI()
	ctx := context.Background()
	s := NewSubmissions(api, ana)

	fv, err := s.Open(ctx, *api.subs["s1"])
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !fv.Editable || fv.Fields[0].ReadOnly {
		t.Fatalf("own pending form should be editable: %+v", fv)
	}
	if err := fv.SetAnswer("f1", "half"); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if err := s.SaveDraft(ctx, fv); err != nil {
		t.Fatalf("save draft: %v", err)
	}
	if fv.Submission.Status != models.StatusPending || api.subs["s1"].FilledData["f1"] != "half" {
		t.Fatalf("after draft: %+v", fv.Submission)
	}

	fv.SetAnswer("f1", "All clear")
	if err := s.Submit(ctx, fv); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if fv.Submission.Status != models.StatusSubmitted || fv.Editable {
		t.Fatalf("after submit: editable=%v %+v", fv.Editable, fv.Submission)
	}
	if err := fv.SetAnswer("f1", "late"); outcome.KindOf(err) != outcome.KindValidation {
		t.Fatalf("answer after submit: %v", err)
	}
	if api.listings < 2 {
		t.Fatal("list not reloaded after actions")
	}
}

func TestSubmissions_FailureKeepsAnswers(t *testing.T) {
	api := newFakeAPI()
	cause := errors.New("gateway timeout")
	api.fail = cause
	s := NewSubmissions(api, ana)
	ctx := context.Background()

	fv, _ := s.Open(ctx, *api.subs["s1"])
	fv.SetAnswer("f1", "All clear")
	err := s.Submit(ctx, fv)
	if outcome.KindOf(err) != outcome.KindBackend || !errors.Is(err, cause) {
		t.Fatalf("submit: %v", err)
	}
	if fv.Answers["f1"] != "All clear" || fv.Submission.Status != models.StatusPending || s.Busy() {
		t.Fatalf("form changed after failure: %+v", fv)
	}
}

func TestSubmissions_ReloadFailureAfterSubmit(t *testing.T) {
	api := newFakeAPI()
	s := NewSubmissions(api, ana)
	ctx := context.Background()
	if err := s.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	fv, _ := s.Open(ctx, *api.subs["s1"])
	fv.SetAnswer("f1", "All clear")
	api.listErr = errors.New("connection reset")
	if err := s.Submit(ctx, fv); err != nil {
		t.Fatalf("submit went through but reported: %v", err)
	}
	if fv.Submission.Status != models.StatusSubmitted || api.subs["s1"].Status != models.StatusSubmitted {
		t.Fatalf("after submit: %+v", fv.Submission)
	}
	if rows := s.Rows(); len(rows) != 1 || rows[0].ID != "s1" {
		t.Fatalf("previous rows lost: %+v", rows)
	}
}

func TestSubmissions_LocalChecks(t *testing.T) {
	api := newFakeAPI()
	ctx := context.Background()

	staff := NewSubmissions(api, office)
	fv, err := staff.Open(ctx, *api.subs["s2"])
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if fv.Editable || !fv.Fields[0].ReadOnly {
		t.Fatal("staff view should be read-only")
	}
	if err := staff.Approve(ctx, fv, ""); !errors.Is(err, models.ErrForbidden) || outcome.KindOf(err) != outcome.KindValidation {
		t.Fatalf("staff approve: %v", err)
	}

	crew := NewSubmissions(api, ana)
	pending, _ := crew.Open(ctx, *api.subs["s1"])
	master := NewSubmissions(api, capt)
	if err := master.Approve(ctx, pending, ""); !errors.Is(err, models.ErrInvalidTransition) {
		t.Fatalf("approve pending: %v", err)
	}
	if api.updates != 0 {
		t.Fatal("a refused action reached the backend")
	}

	submitted, _ := master.Open(ctx, *api.subs["s2"])
	if err := master.Reject(ctx, submitted, "redo"); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if submitted.Submission.Status != models.StatusRejected || submitted.Submission.ApprovalNotes != "redo" {
		t.Fatalf("after reject: %+v", submitted.Submission)
	}
}
